package model

// AllianceAggregate is the sum of up to three scouting records for one
// alliance in one match. Derived and ephemeral: recomputed on demand,
// never persisted.
type AllianceAggregate struct {
	EventKey    string
	MatchNumber string
	Alliance    Alliance

	// Coral placements by level and period.
	AutoCoralL1 int
	AutoCoralL2 int
	AutoCoralL3 int
	AutoCoralL4 int

	TeleopCoralL1 int
	TeleopCoralL2 int
	TeleopCoralL3 int
	TeleopCoralL4 int

	// Algae placements by target and period.
	AutoAlgaeNet         int
	AutoAlgaeProcessor   int
	TeleopAlgaeNet       int
	TeleopAlgaeProcessor int

	// Compound totals.
	AutoCoralTotal   int
	TeleopCoralTotal int
	CoralL1Total     int
	CoralL2Total     int
	CoralL3Total     int
	CoralL4Total     int
	TotalCoral       int

	AlgaeNetTotal       int
	AlgaeProcessorTotal int
	TotalAlgae          int

	// Flag counts (records where the flag was set).
	LeaveCount        int
	ParkCount         int
	ShallowClimbCount int
	DeepClimbCount    int
	NoEndgameCount    int
	ClimbFailedCount  int
	BrokeDownCount    int
	DefenseCount      int

	// Contributing teams, in record order.
	Teams []string
	// Teams the official roster names that contributed no record. Filled
	// in only once official data is available; empty until then.
	MissingTeams []string

	RecordCount int
	// IsComplete is strictly "exactly three contributing records".
	IsComplete bool
}
