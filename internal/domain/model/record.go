// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Alliance identifies one of the two 3-team coalitions in a match.
type Alliance string

const (
	AllianceRed  Alliance = "red"
	AllianceBlue Alliance = "blue"
)

// Normalize maps free-form alliance strings to the canonical values.
// Unknown input defaults to red so a record is never dropped for a bad
// alliance tag; alliance is informational and never part of identity.
func (a Alliance) Normalize() Alliance {
	switch strings.ToLower(strings.TrimSpace(string(a))) {
	case "blue", "b":
		return AllianceBlue
	default:
		return AllianceRed
	}
}

// RecordKey is the logical identity of a scouting record.
// Alliance is deliberately excluded: two devices disagreeing on alliance
// color still describe the same (event, match, team) observation.
type RecordKey struct {
	EventKey    string
	MatchNumber string
	TeamKey     string
}

// ScoutingRecord is one team's performance in one match as entered by one
// scout on one device. Numeric counters and flags mirror the season's
// scouting sheet; correction metadata travels with the record when a scout
// deliberately supersedes an earlier entry.
type ScoutingRecord struct {
	ID          string   `json:"id" msgpack:"id"`
	EventKey    string   `json:"eventKey" msgpack:"eventKey"`
	MatchNumber string   `json:"matchNumber" msgpack:"matchNumber"`
	TeamKey     string   `json:"teamKey" msgpack:"teamKey"`
	Alliance    Alliance `json:"alliance" msgpack:"alliance"`
	ScoutName   string   `json:"scoutName" msgpack:"scoutName"`

	// Auto period counters.
	AutoCoralPlaceL1Count   int `json:"autoCoralPlaceL1Count" msgpack:"autoCoralPlaceL1Count"`
	AutoCoralPlaceL2Count   int `json:"autoCoralPlaceL2Count" msgpack:"autoCoralPlaceL2Count"`
	AutoCoralPlaceL3Count   int `json:"autoCoralPlaceL3Count" msgpack:"autoCoralPlaceL3Count"`
	AutoCoralPlaceL4Count   int `json:"autoCoralPlaceL4Count" msgpack:"autoCoralPlaceL4Count"`
	AutoCoralPlaceDropMiss  int `json:"autoCoralPlaceDropMissCount" msgpack:"autoCoralPlaceDropMissCount"`
	AutoCoralPickGround     int `json:"autoCoralPickGroundCount" msgpack:"autoCoralPickGroundCount"`
	AutoCoralPickStation    int `json:"autoCoralPickStationCount" msgpack:"autoCoralPickStationCount"`
	AutoAlgaePlaceNetShot   int `json:"autoAlgaePlaceNetShot" msgpack:"autoAlgaePlaceNetShot"`
	AutoAlgaePlaceProcessor int `json:"autoAlgaePlaceProcessor" msgpack:"autoAlgaePlaceProcessor"`
	AutoAlgaePlaceDropMiss  int `json:"autoAlgaePlaceDropMissCount" msgpack:"autoAlgaePlaceDropMissCount"`
	AutoAlgaePickGround     int `json:"autoAlgaePickGroundCount" msgpack:"autoAlgaePickGroundCount"`
	AutoAlgaePickReef       int `json:"autoAlgaePickReefCount" msgpack:"autoAlgaePickReefCount"`

	// Teleop period counters.
	TeleopCoralPlaceL1Count   int `json:"teleopCoralPlaceL1Count" msgpack:"teleopCoralPlaceL1Count"`
	TeleopCoralPlaceL2Count   int `json:"teleopCoralPlaceL2Count" msgpack:"teleopCoralPlaceL2Count"`
	TeleopCoralPlaceL3Count   int `json:"teleopCoralPlaceL3Count" msgpack:"teleopCoralPlaceL3Count"`
	TeleopCoralPlaceL4Count   int `json:"teleopCoralPlaceL4Count" msgpack:"teleopCoralPlaceL4Count"`
	TeleopCoralPlaceDropMiss  int `json:"teleopCoralPlaceDropMissCount" msgpack:"teleopCoralPlaceDropMissCount"`
	TeleopCoralPickGround     int `json:"teleopCoralPickGroundCount" msgpack:"teleopCoralPickGroundCount"`
	TeleopCoralPickStation    int `json:"teleopCoralPickStationCount" msgpack:"teleopCoralPickStationCount"`
	TeleopAlgaePlaceNetShot   int `json:"teleopAlgaePlaceNetShot" msgpack:"teleopAlgaePlaceNetShot"`
	TeleopAlgaePlaceProcessor int `json:"teleopAlgaePlaceProcessor" msgpack:"teleopAlgaePlaceProcessor"`
	TeleopAlgaePlaceDropMiss  int `json:"teleopAlgaePlaceDropMissCount" msgpack:"teleopAlgaePlaceDropMissCount"`
	TeleopAlgaePickGround     int `json:"teleopAlgaePickGroundCount" msgpack:"teleopAlgaePickGroundCount"`
	TeleopAlgaePickReef       int `json:"teleopAlgaePickReefCount" msgpack:"teleopAlgaePickReefCount"`

	// Flags.
	AutoLeave           bool `json:"autoLeave" msgpack:"autoLeave"`
	EndgameParked       bool `json:"endgameParked" msgpack:"endgameParked"`
	EndgameShallowClimb bool `json:"endgameShallowClimb" msgpack:"endgameShallowClimb"`
	EndgameDeepClimb    bool `json:"endgameDeepClimb" msgpack:"endgameDeepClimb"`
	ClimbFailed         bool `json:"climbFailed" msgpack:"climbFailed"`
	BrokeDown           bool `json:"brokeDown" msgpack:"brokeDown"`
	PlayedDefense       bool `json:"playedDefense" msgpack:"playedDefense"`

	Comments string `json:"comments" msgpack:"comments"`

	// Correction metadata. A corrected record is a deliberate human
	// supersession of an earlier entry and must never be silently
	// clobbered during merge.
	IsCorrected     bool      `json:"isCorrected" msgpack:"isCorrected"`
	CorrectionCount int       `json:"correctionCount" msgpack:"correctionCount"`
	LastCorrectedAt time.Time `json:"lastCorrectedAt,omitempty" msgpack:"lastCorrectedAt"`
	LastCorrectedBy string    `json:"lastCorrectedBy,omitempty" msgpack:"lastCorrectedBy"`
	CorrectionNotes string    `json:"correctionNotes,omitempty" msgpack:"correctionNotes"`

	CreatedAt time.Time `json:"createdAt" msgpack:"createdAt"`
}

// Key returns the record's logical identity.
func (r *ScoutingRecord) Key() RecordKey {
	return RecordKey{
		EventKey:    r.EventKey,
		MatchNumber: r.MatchNumber,
		TeamKey:     r.TeamKey,
	}
}

// NoEndgameAction reports whether none of the three endgame outcomes was
// recorded for this robot.
func (r *ScoutingRecord) NoEndgameAction() bool {
	return !r.EndgameParked && !r.EndgameShallowClimb && !r.EndgameDeepClimb
}
