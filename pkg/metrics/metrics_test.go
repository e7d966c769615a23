package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When created with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it registers its collectors there", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When created with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("audit_test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)
			So(manager, ShouldNotBeNil)

			Convey("Then metric names carry the namespace", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(f.GetName(), ShouldStartWith, "audit_test_unit_")
				}
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then every helper records without panicking", func() {
			So(func() {
				RecordImported(3)
				RecordReplaced(1)
				RecordSkipped(2)
				RecordConflict("corrected-vs-uncorrected")
				RecordMergeResolution("replace")
				RecordMatchValidated()
				RecordMatchSkipped("no-official-data")
				RecordDiscrepancy("warning")
				RecordMatchStatus("passed")
				RecordValidationLatency(0.042)
				UpdateQueueDepth(5)
				UpdateQueueCapacity(1024)
				RecordQueueRejected()
				RecordBatchQueued()
				RecordBatchMerged()
				RecordFeedRequest("ok")
				RecordFeedCacheHit()
				RecordHTTPRequest("POST", "import", "202")
				RecordHTTPDuration("POST", "import", 0.01)
			}, ShouldNotPanic)
		})

		Convey("Then the registry exposes what was recorded", func() {
			RecordMatchValidated()
			families, err := Registry().Gather()
			So(err, ShouldBeNil)

			found := false
			for _, f := range families {
				if f.GetName() == "matchaudit_core_matches_validated_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
