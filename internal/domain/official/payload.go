// Package official parses the authoritative results feed for a match and
// normalizes one alliance's share of it.
//
// The payload shape is owned by the feed, not by us; every field is
// optional and absent values default to zero. Parsing never fails on a
// missing section.
package official

// MatchPayload mirrors the feed's match object for the fields this engine
// reads. ScoreBreakdown is nil when the feed has not published a detailed
// breakdown for the match.
type MatchPayload struct {
	Key         string    `json:"key"`
	CompLevel   string    `json:"comp_level"`
	MatchNumber int       `json:"match_number"`
	EventKey    string    `json:"event_key"`
	Alliances   Alliances `json:"alliances"`

	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown"`
}

// Alliances holds both rosters and raw final scores.
type Alliances struct {
	Red  AllianceEntry `json:"red"`
	Blue AllianceEntry `json:"blue"`
}

// AllianceEntry is one alliance's roster and final score.
type AllianceEntry struct {
	Score    int      `json:"score"`
	TeamKeys []string `json:"team_keys"`
}

// ScoreBreakdown carries the per-alliance detail sections.
type ScoreBreakdown struct {
	Red  *AllianceBreakdown `json:"red"`
	Blue *AllianceBreakdown `json:"blue"`
}

// ReefRow counts scored coral by reef row. The trough is level 1 and the
// top row is level 4.
type ReefRow struct {
	Trough      int `json:"trough"`
	BotRowCount int `json:"tba_botRowCount"`
	MidRowCount int `json:"tba_midRowCount"`
	TopRowCount int `json:"tba_topRowCount"`
}

// AllianceBreakdown is the detailed per-alliance section of the feed.
// Teleop reef counts are cumulative final-state figures that include the
// auto-period contribution; algae counts are match-combined.
type AllianceBreakdown struct {
	AutoLineRobot1 string `json:"autoLineRobot1"`
	AutoLineRobot2 string `json:"autoLineRobot2"`
	AutoLineRobot3 string `json:"autoLineRobot3"`

	AutoMobilityPoints int     `json:"autoMobilityPoints"`
	AutoCoralCount     int     `json:"autoCoralCount"`
	AutoCoralPoints    int     `json:"autoCoralPoints"`
	AutoReef           ReefRow `json:"autoReef"`

	TeleopCoralCount  int     `json:"teleopCoralCount"`
	TeleopCoralPoints int     `json:"teleopCoralPoints"`
	TeleopReef        ReefRow `json:"teleopReef"`

	AlgaePoints    int `json:"algaePoints"`
	NetAlgaeCount  int `json:"netAlgaeCount"`
	WallAlgaeCount int `json:"wallAlgaeCount"`

	EndGameRobot1      string `json:"endGameRobot1"`
	EndGameRobot2      string `json:"endGameRobot2"`
	EndGameRobot3      string `json:"endGameRobot3"`
	EndGameBargePoints int    `json:"endGameBargePoints"`

	AutoBonusAchieved  bool `json:"autoBonusAchieved"`
	CoralBonusAchieved bool `json:"coralBonusAchieved"`
	BargeBonusAchieved bool `json:"bargeBonusAchieved"`

	FoulCount     int `json:"foulCount"`
	TechFoulCount int `json:"techFoulCount"`
	FoulPoints    int `json:"foulPoints"`

	TotalPoints int `json:"totalPoints"`
}
