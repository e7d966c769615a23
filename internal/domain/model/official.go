package model

// OfficialAllianceData is the normalized official-results view of one
// alliance in one match. Read-only ground truth; when the feed publishes
// no score breakdown every derived count is zero and only Score survives.
type OfficialAllianceData struct {
	Alliance Alliance
	Score    int

	// Per-category point subtotals from the breakdown.
	AutoMobilityPoints int
	AutoCoralPoints    int
	TeleopCoralPoints  int
	AlgaePoints        int
	EndgamePoints      int
	FoulPoints         int

	// Auto-period coral counts by level (trough is L1, top row is L4).
	AutoCoralL1 int
	AutoCoralL2 int
	AutoCoralL3 int
	AutoCoralL4 int

	// Teleop coral counts by level, CUMULATIVE: the feed publishes final
	// reef state, so these already include the auto-period contribution.
	// Use TeleopOnlyCoral to recover the teleop-only figure.
	CumulativeCoralL1 int
	CumulativeCoralL2 int
	CumulativeCoralL3 int
	CumulativeCoralL4 int

	// Algae counts are published match-combined with no period breakdown.
	NetAlgaeCount       int
	ProcessorAlgaeCount int

	// Mobility and endgame robot counts.
	MobilityCount     int
	DeepClimbCount    int
	ShallowClimbCount int
	ParkCount         int

	// Bonus flags.
	AutoBonus  bool
	CoralBonus bool
	BargeBonus bool

	FoulCount     int
	TechFoulCount int

	// TeamKeys is the official roster for the alliance.
	TeamKeys []string

	// HasBreakdown reports whether the feed published a detailed
	// breakdown for this match at all.
	HasBreakdown bool
}

// TeleopOnlyCoral recovers the teleop-only count for a level from the
// cumulative figure, clamped at zero to guard against an inconsistent
// source feed where cumulative < auto.
func (o *OfficialAllianceData) TeleopOnlyCoral(level int) int {
	var cum, auto int
	switch level {
	case 1:
		cum, auto = o.CumulativeCoralL1, o.AutoCoralL1
	case 2:
		cum, auto = o.CumulativeCoralL2, o.AutoCoralL2
	case 3:
		cum, auto = o.CumulativeCoralL3, o.AutoCoralL3
	case 4:
		cum, auto = o.CumulativeCoralL4, o.AutoCoralL4
	default:
		return 0
	}
	if v := cum - auto; v > 0 {
		return v
	}
	return 0
}

// AutoCoralTotal sums the auto-period coral counts across levels.
func (o *OfficialAllianceData) AutoCoralTotal() int {
	return o.AutoCoralL1 + o.AutoCoralL2 + o.AutoCoralL3 + o.AutoCoralL4
}

// TeleopOnlyCoralTotal sums the derived teleop-only coral counts.
func (o *OfficialAllianceData) TeleopOnlyCoralTotal() int {
	return o.TeleopOnlyCoral(1) + o.TeleopOnlyCoral(2) + o.TeleopOnlyCoral(3) + o.TeleopOnlyCoral(4)
}

// BreakdownPoints is the sum of the breakdown's own per-category point
// subtotals. Bonus and foul points are excluded: scouts never record
// them, so they can never be validated against.
func (o *OfficialAllianceData) BreakdownPoints() int {
	return o.AutoMobilityPoints + o.AutoCoralPoints + o.TeleopCoralPoints + o.AlgaePoints + o.EndgamePoints
}
