// Package compare runs the field-level comparison between an alliance's
// scouted aggregate and its official results.
package compare

import (
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/internal/domain/severity"
)

// Config is the user-tunable validation configuration. It is passed
// explicitly into every comparison; the engine holds no ambient copy.
//
// The alliance-level and match-level critical cutoffs are deliberately
// separate fields. They historically shared one knob, which made the
// alliance "failed" cutoff and the match "flagged" cutoff impossible to
// tune independently.
type Config struct {
	// Default thresholds apply to any category without an override.
	Default severity.Thresholds `json:"default" koanf:"default"`

	// Categories holds per-category threshold overrides, keyed by
	// category tag.
	Categories map[string]severity.Thresholds `json:"categories" koanf:"categories"`

	// Enabled toggles checking per category. A category absent from the
	// map is checked.
	Enabled map[string]bool `json:"enabled" koanf:"enabled"`

	// AllianceFailCriticalCount is the per-alliance critical-discrepancy
	// count at which the alliance status becomes failed.
	AllianceFailCriticalCount int `json:"allianceFailCriticalCount" koanf:"alliance_fail_critical_count"`

	// MatchFlagCriticalCount and MatchFailCriticalCount apply to the
	// combined critical count across both alliances.
	MatchFlagCriticalCount int `json:"matchFlagCriticalCount" koanf:"match_flag_critical_count"`
	MatchFailCriticalCount int `json:"matchFailCriticalCount" koanf:"match_fail_critical_count"`
}

// DefaultConfig is the hard-coded fallback configuration.
func DefaultConfig() Config {
	return Config{
		Default:                   severity.DefaultThresholds(),
		Categories:                map[string]severity.Thresholds{},
		Enabled:                   map[string]bool{},
		AllianceFailCriticalCount: 3,
		MatchFlagCriticalCount:    3,
		MatchFailCriticalCount:    5,
	}
}

// ThresholdsFor returns the category's override or the default set.
func (c *Config) ThresholdsFor(cat model.Category) severity.Thresholds {
	if t, ok := c.Categories[string(cat)]; ok {
		return t
	}
	return c.Default
}

// CategoryEnabled reports whether a category should be checked.
func (c *Config) CategoryEnabled(cat model.Category) bool {
	if v, ok := c.Enabled[string(cat)]; ok {
		return v
	}
	return true
}
