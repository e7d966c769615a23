// Package points holds the season point-value table and the scouted
// point estimation derived from it.
package points

import "github.com/vibescout/matchaudit/internal/domain/model"

// Table maps scouted actions to point values. It is threaded explicitly
// into every comparison so one engine instance can serve multiple
// seasons; nothing in the core reads an ambient table.
type Table struct {
	AutoCoralL1 int `koanf:"auto_coral_l1"`
	AutoCoralL2 int `koanf:"auto_coral_l2"`
	AutoCoralL3 int `koanf:"auto_coral_l3"`
	AutoCoralL4 int `koanf:"auto_coral_l4"`

	TeleopCoralL1 int `koanf:"teleop_coral_l1"`
	TeleopCoralL2 int `koanf:"teleop_coral_l2"`
	TeleopCoralL3 int `koanf:"teleop_coral_l3"`
	TeleopCoralL4 int `koanf:"teleop_coral_l4"`

	AlgaeNet       int `koanf:"algae_net"`
	AlgaeProcessor int `koanf:"algae_processor"`

	AutoLeave int `koanf:"auto_leave"`

	EndgamePark         int `koanf:"endgame_park"`
	EndgameShallowClimb int `koanf:"endgame_shallow_climb"`
	EndgameDeepClimb    int `koanf:"endgame_deep_climb"`
}

// Reefscape2025 is the default season table.
func Reefscape2025() Table {
	return Table{
		AutoCoralL1:   3,
		AutoCoralL2:   4,
		AutoCoralL3:   6,
		AutoCoralL4:   7,
		TeleopCoralL1: 2,
		TeleopCoralL2: 3,
		TeleopCoralL3: 4,
		TeleopCoralL4: 5,

		AlgaeNet:       4,
		AlgaeProcessor: 6,

		AutoLeave: 3,

		EndgamePark:         2,
		EndgameShallowClimb: 6,
		EndgameDeepClimb:    12,
	}
}

// Estimate applies the table to every scouted count in the aggregate.
// A closed arithmetic function of the aggregate, independent of any
// official data.
func (t Table) Estimate(agg *model.AllianceAggregate) model.ScoreBreakdownSide {
	var b model.ScoreBreakdownSide

	b.AutoCoral = agg.AutoCoralL1*t.AutoCoralL1 +
		agg.AutoCoralL2*t.AutoCoralL2 +
		agg.AutoCoralL3*t.AutoCoralL3 +
		agg.AutoCoralL4*t.AutoCoralL4

	b.TeleopCoral = agg.TeleopCoralL1*t.TeleopCoralL1 +
		agg.TeleopCoralL2*t.TeleopCoralL2 +
		agg.TeleopCoralL3*t.TeleopCoralL3 +
		agg.TeleopCoralL4*t.TeleopCoralL4

	b.Algae = agg.AlgaeNetTotal*t.AlgaeNet + agg.AlgaeProcessorTotal*t.AlgaeProcessor

	b.Mobility = agg.LeaveCount * t.AutoLeave

	b.Endgame = agg.ParkCount*t.EndgamePark +
		agg.ShallowClimbCount*t.EndgameShallowClimb +
		agg.DeepClimbCount*t.EndgameDeepClimb

	b.Total = b.AutoCoral + b.TeleopCoral + b.Algae + b.Mobility + b.Endgame
	return b
}

// OfficialBreakdown arranges the official per-category subtotals into the
// same shape as Estimate for side-by-side display. Bonus and foul points
// are excluded: scouts never record them.
func OfficialBreakdown(o *model.OfficialAllianceData) model.ScoreBreakdownSide {
	b := model.ScoreBreakdownSide{
		AutoCoral:   o.AutoCoralPoints,
		TeleopCoral: o.TeleopCoralPoints,
		Algae:       o.AlgaePoints,
		Mobility:    o.AutoMobilityPoints,
		Endgame:     o.EndgamePoints,
	}
	b.Total = b.AutoCoral + b.TeleopCoral + b.Algae + b.Mobility + b.Endgame
	return b
}
