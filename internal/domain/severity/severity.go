// Package severity classifies scouted-vs-official deltas.
package severity

import (
	"math"

	"github.com/vibescout/matchaudit/internal/domain/model"
)

const percentScale = 100.0

// Thresholds holds the absolute and percentage cutoffs for one category
// (or the default set when a category has no override).
type Thresholds struct {
	MinorAbsolute    int     `json:"minorAbsolute" koanf:"minor_absolute"`
	WarningAbsolute  int     `json:"warningAbsolute" koanf:"warning_absolute"`
	CriticalAbsolute int     `json:"criticalAbsolute" koanf:"critical_absolute"`
	MinorPercent     float64 `json:"minorPercent" koanf:"minor_percent"`
	WarningPercent   float64 `json:"warningPercent" koanf:"warning_percent"`
	CriticalPercent  float64 `json:"criticalPercent" koanf:"critical_percent"`
}

// DefaultThresholds is the hard-coded fallback cutoff set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinorAbsolute:    2,
		WarningAbsolute:  3,
		CriticalAbsolute: 5,
		MinorPercent:     25,
		WarningPercent:   50,
		CriticalPercent:  75,
	}
}

// PercentDiff computes the relative difference of two counts against the
// larger of the two, as a percentage. Zero when both counts are zero.
func PercentDiff(scouted, official int) float64 {
	larger := scouted
	if official > larger {
		larger = official
	}
	if larger == 0 {
		return 0
	}
	return math.Abs(float64(scouted-official)) / float64(larger) * percentScale
}

// Classify decides how severe a scouted-vs-official delta is.
//
// Absolute-difference gating takes priority over percentage. A delta
// below the warning-absolute bar is always none, no matter how large the
// relative error: a 0-vs-1 disagreement is a 100% error on one game
// piece and must never escalate. Percentage gets a say only after the
// absolute difference has already cleared the warning bar, and then the
// highest firing percentage cutoff wins. This two-stage gate is what
// lets the same engine judge a 1-piece auto count and a 20-piece teleop
// count with one rule set.
func Classify(scouted, official int, t Thresholds) model.Severity {
	diff := scouted - official
	if diff < 0 {
		diff = -diff
	}

	level := model.SeverityNone
	switch {
	case diff >= t.CriticalAbsolute:
		level = model.SeverityCritical
	case diff >= t.WarningAbsolute:
		level = model.SeverityWarning
	case diff >= t.MinorAbsolute:
		level = model.SeverityMinor
	}

	if diff < t.WarningAbsolute {
		// Low-count guard: below the warning bar the absolute verdict
		// stands and percentage never gets a say.
		return level
	}

	// Percentage escalation. A cutoff of zero or below means the
	// percentage rule is disabled for that level.
	pct := PercentDiff(scouted, official)
	switch {
	case t.CriticalPercent > 0 && pct >= t.CriticalPercent && level < model.SeverityCritical:
		level = model.SeverityCritical
	case t.WarningPercent > 0 && pct >= t.WarningPercent && level < model.SeverityWarning:
		level = model.SeverityWarning
	case t.MinorPercent > 0 && pct >= t.MinorPercent && level < model.SeverityMinor:
		level = model.SeverityMinor
	}
	return level
}
