package severity_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/internal/domain/severity"
)

func TestClassify(t *testing.T) {
	Convey("Given the default thresholds", t, func() {
		th := severity.DefaultThresholds()

		Convey("When scouted and official agree", func() {
			So(severity.Classify(4, 4, th), ShouldEqual, model.SeverityNone)
			So(severity.Classify(0, 0, th), ShouldEqual, model.SeverityNone)
		})

		Convey("When the counts are tiny and the relative error is huge", func() {
			Convey("Then a one-piece disagreement never escalates", func() {
				// 0 vs 1 is a 100% error but only one game piece.
				So(severity.Classify(0, 1, th), ShouldEqual, model.SeverityNone)
				So(severity.Classify(1, 0, th), ShouldEqual, model.SeverityNone)
			})
		})

		Convey("When the absolute difference walks up the cutoffs", func() {
			So(severity.Classify(6, 4, th), ShouldEqual, model.SeverityMinor)     // diff 2
			So(severity.Classify(10, 7, th), ShouldEqual, model.SeverityWarning)  // diff 3
			So(severity.Classify(12, 7, th), ShouldEqual, model.SeverityCritical) // diff 5
		})

		Convey("When a large count has a modest absolute error", func() {
			Convey("Then the percentage keeps it from over-escalating", func() {
				// 20 vs 23: diff 3 clears the warning bar but is only a
				// 13% error, so it stays a warning.
				So(severity.Classify(20, 23, th), ShouldEqual, model.SeverityWarning)
			})
		})

		Convey("When a 4-vs-8 disagreement occurs", func() {
			Convey("Then the 50% relative error holds it at warning and the 75% bar stays out of reach", func() {
				So(severity.Classify(4, 8, th), ShouldEqual, model.SeverityWarning)
			})
		})

		Convey("When the relative error crosses the critical percentage", func() {
			// 1 vs 4: diff 3, 75% error.
			So(severity.Classify(1, 4, th), ShouldEqual, model.SeverityCritical)
		})
	})

	Convey("Given category thresholds with percentages disabled", t, func() {
		th := severity.Thresholds{
			MinorAbsolute:    1,
			WarningAbsolute:  2,
			CriticalAbsolute: 5,
		}

		Convey("Then only the absolute cutoffs decide", func() {
			So(severity.Classify(0, 1, th), ShouldEqual, model.SeverityMinor)
			So(severity.Classify(0, 3, th), ShouldEqual, model.SeverityWarning)
			// Without the zero-cutoff guard a 60% error would have
			// escalated this to critical.
			So(severity.Classify(2, 5, th), ShouldEqual, model.SeverityWarning)
			So(severity.Classify(0, 5, th), ShouldEqual, model.SeverityCritical)
		})
	})

	Convey("Given symmetric inputs", t, func() {
		th := severity.DefaultThresholds()

		Convey("Then over-count and under-count classify the same", func() {
			for _, pair := range [][2]int{{2, 7}, {7, 2}, {0, 4}, {4, 0}} {
				So(severity.Classify(pair[0], pair[1], th), ShouldEqual, severity.Classify(pair[1], pair[0], th))
			}
		})
	})
}

func TestPercentDiff(t *testing.T) {
	Convey("Given two counts", t, func() {
		Convey("When both are zero the difference is zero", func() {
			So(severity.PercentDiff(0, 0), ShouldEqual, 0)
		})

		Convey("When one is zero the difference is total", func() {
			So(severity.PercentDiff(0, 4), ShouldEqual, 100)
			So(severity.PercentDiff(4, 0), ShouldEqual, 100)
		})

		Convey("When they differ the larger is the base", func() {
			So(severity.PercentDiff(4, 8), ShouldEqual, 50)
			So(severity.PercentDiff(8, 4), ShouldEqual, 50)
			So(severity.PercentDiff(3, 4), ShouldEqual, 25)
		})
	})
}
