package model

import "time"

// Severity ranks a field-level delta. Ordering matters: comparisons use
// the ordinal (None < Minor < Warning < Critical).
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMinor
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "minor"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "none"
	}
}

// MarshalJSON encodes the severity as its string name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Status is the verdict for an alliance or a match.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFlagged Status = "flagged"
	StatusFailed  Status = "failed"
)

// ordinal lets status comparisons pick the worse of two verdicts.
func (s Status) ordinal() int {
	switch s {
	case StatusFailed:
		return 2
	case StatusFlagged:
		return 1
	default:
		return 0
	}
}

// Worse returns the more severe of two statuses.
func (s Status) Worse(other Status) Status {
	if other.ordinal() > s.ordinal() {
		return other
	}
	return s
}

// Confidence expresses how much to trust a verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func (c Confidence) ordinal() int {
	switch c {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// Worst returns the lower of two confidences.
func (c Confidence) Worst(other Confidence) Confidence {
	if other.ordinal() < c.ordinal() {
		return other
	}
	return c
}

// Category tags a tracked comparison field group.
type Category string

const (
	CategoryAutoCoral   Category = "autoCoral"
	CategoryTeleopCoral Category = "teleopCoral"
	CategoryAlgae       Category = "algae"
	CategoryMobility    Category = "mobility"
	CategoryEndgame     Category = "endgame"
)

// Discrepancy is one flagged field-level delta between scouted and
// official values. "none" results are filtered out before they ever
// reach a Discrepancy.
type Discrepancy struct {
	Category    Category `json:"category"`
	Field       string   `json:"field"`
	Scouted     int      `json:"scouted"`
	Official    int      `json:"official"`
	Difference  int      `json:"difference"`
	PercentDiff float64  `json:"percentDiff"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
}

// ScoreBreakdownSide holds component-wise point subtotals for one side of
// the scouted-vs-official score comparison.
type ScoreBreakdownSide struct {
	AutoCoral   int `json:"autoCoral"`
	TeleopCoral int `json:"teleopCoral"`
	Algae       int `json:"algae"`
	Mobility    int `json:"mobility"`
	Endgame     int `json:"endgame"`
	Total       int `json:"total"`
}

// AllianceValidation is one alliance's verdict for one match.
type AllianceValidation struct {
	Alliance          Alliance             `json:"alliance"`
	Status            Status               `json:"status"`
	Confidence        Confidence           `json:"confidence"`
	Discrepancies     []Discrepancy        `json:"discrepancies"`
	EstimatedPoints   int                  `json:"estimatedPoints"`
	OfficialPoints    int                  `json:"officialPoints"`
	ScoreDifference   int                  `json:"scoreDifference"`
	ScorePercentDiff  float64              `json:"scorePercentDiff"`
	ScoutedBreakdown  ScoreBreakdownSide   `json:"scoutedBreakdown"`
	OfficialBreakdown ScoreBreakdownSide   `json:"officialBreakdown"`
	Aggregate         AllianceAggregate    `json:"aggregate"`
	Official          OfficialAllianceData `json:"official"`
}

// CountBySeverity tallies the alliance's discrepancies at one severity.
func (v *AllianceValidation) CountBySeverity(s Severity) int {
	n := 0
	for _, d := range v.Discrepancies {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// TeamValidation is the flattened per-team view attached to a match
// verdict, one entry per team the official roster names.
type TeamValidation struct {
	TeamKey        string     `json:"teamKey"`
	Alliance       Alliance   `json:"alliance"`
	ScoutName      string     `json:"scoutName,omitempty"`
	HasScoutedData bool       `json:"hasScoutedData"`
	Confidence     Confidence `json:"confidence"`
	NeedsReview    bool       `json:"needsReview"`
	Notes          string     `json:"notes,omitempty"`

	IsCorrected     bool      `json:"isCorrected"`
	CorrectionCount int       `json:"correctionCount"`
	LastCorrectedAt time.Time `json:"lastCorrectedAt,omitempty"`
	LastCorrectedBy string    `json:"lastCorrectedBy,omitempty"`

	EstimatedPoints int `json:"estimatedPoints"`
}

// MatchValidationResult is the match-level verdict. Each validation run
// supersedes the previous result wholesale.
type MatchValidationResult struct {
	EventKey    string `json:"eventKey"`
	MatchNumber string `json:"matchNumber"`
	MatchKey    string `json:"matchKey"`
	CompLevel   string `json:"compLevel"`

	Status     Status     `json:"status"`
	Confidence Confidence `json:"confidence"`

	Red  AllianceValidation `json:"red"`
	Blue AllianceValidation `json:"blue"`

	Teams []TeamValidation `json:"teams"`

	CriticalCount int `json:"criticalCount"`
	WarningCount  int `json:"warningCount"`
	MinorCount    int `json:"minorCount"`

	FlaggedForReview bool `json:"flaggedForReview"`
	RequiresReScout  bool `json:"requiresReScout"`

	ValidatedAt time.Time `json:"validatedAt"`
}

// ValidationSummary aggregates an event's validation results for display.
type ValidationSummary struct {
	EventKey          string  `json:"eventKey"`
	MatchesValidated  int     `json:"matchesValidated"`
	Passed            int     `json:"passed"`
	Flagged           int     `json:"flagged"`
	Failed            int     `json:"failed"`
	CriticalCount     int     `json:"criticalCount"`
	WarningCount      int     `json:"warningCount"`
	MinorCount        int     `json:"minorCount"`
	RequireReScout    int     `json:"requireReScout"`
	AverageConfidence float64 `json:"averageConfidence"`
}
