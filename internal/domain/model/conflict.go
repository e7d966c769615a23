package model

// ConflictKind classifies why an incoming record needs human review.
type ConflictKind string

const (
	// ConflictCorrectedVsUncorrected: the canonical record carries a
	// deliberate correction, the incoming one does not.
	ConflictCorrectedVsUncorrected ConflictKind = "corrected-vs-uncorrected"
	// ConflictCorrectedVsCorrected: both records carry corrections.
	ConflictCorrectedVsCorrected ConflictKind = "corrected-vs-corrected"
)

// FieldChange is one differing field between a canonical and an incoming
// record. Alliance appears here when it differs even though it never
// participates in record identity.
type FieldChange struct {
	Field    string `json:"field"`
	Local    string `json:"local"`
	Incoming string `json:"incoming"`
}

// ConflictInfo pairs a canonical record with an incoming competitor for
// the same (event, match, team) key. Ephemeral: discarded once resolved.
type ConflictInfo struct {
	Local         ScoutingRecord `json:"local"`
	Incoming      ScoutingRecord `json:"incoming"`
	Kind          ConflictKind   `json:"kind"`
	ChangedFields []FieldChange  `json:"changedFields"`
}

// ImportSummary reports the outcome of one merge pass.
type ImportSummary struct {
	AddedCount       int `json:"addedCount"`
	ReplacedCount    int `json:"replacedCount"`
	SkippedIdentical int `json:"skippedIdentical"`
	UserReplaced     int `json:"userReplaced"`
	UserSkipped      int `json:"userSkipped"`
	PendingConflicts int `json:"pendingConflicts"`
}
