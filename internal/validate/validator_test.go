package validate

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vibescout/matchaudit/internal/domain/compare"
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/internal/domain/official"
	"github.com/vibescout/matchaudit/internal/domain/points"
)

const matchPayloadJSON = `{
	"key": "2025test_qm10",
	"comp_level": "qm",
	"match_number": 10,
	"event_key": "2025test",
	"alliances": {
		"red": {"score": 92, "team_keys": ["frc100", "frc200", "frc300"]},
		"blue": {"score": 78, "team_keys": ["frc400", "frc500", "frc600"]}
	},
	"score_breakdown": {
		"red": {
			"autoLineRobot1": "Yes",
			"autoLineRobot2": "Yes",
			"autoLineRobot3": "No",
			"autoReef": {"trough": 1, "tba_botRowCount": 0, "tba_midRowCount": 0, "tba_topRowCount": 2},
			"teleopReef": {"trough": 4, "tba_botRowCount": 2, "tba_midRowCount": 3, "tba_topRowCount": 7},
			"netAlgaeCount": 3,
			"wallAlgaeCount": 2,
			"endGameRobot1": "DeepCage",
			"endGameRobot2": "Parked",
			"endGameRobot3": "None",
			"totalPoints": 92
		},
		"blue": {
			"autoReef": {"trough": 0, "tba_botRowCount": 0, "tba_midRowCount": 0, "tba_topRowCount": 0},
			"teleopReef": {"trough": 2, "tba_botRowCount": 1, "tba_midRowCount": 0, "tba_topRowCount": 3},
			"endGameRobot1": "ShallowCage",
			"endGameRobot2": "ShallowCage",
			"endGameRobot3": "DeepCage",
			"totalPoints": 78
		}
	}
}`

func matchPayload(t *testing.T) *official.MatchPayload {
	t.Helper()
	var payload official.MatchPayload
	if err := json.Unmarshal([]byte(matchPayloadJSON), &payload); err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	return &payload
}

// agreeingRecords scouted counts that reproduce the payload's breakdown
// exactly on both alliances.
func agreeingRecords() []model.ScoutingRecord {
	base := func(team string, alliance model.Alliance) model.ScoutingRecord {
		return model.ScoutingRecord{
			ID:          "rec-" + team,
			EventKey:    "2025test",
			MatchNumber: "10",
			TeamKey:     team,
			Alliance:    alliance,
			ScoutName:   "scout-" + team,
		}
	}

	r100 := base("100", model.AllianceRed)
	r100.AutoCoralPlaceL1Count = 1
	r100.AutoLeave = true
	r100.TeleopCoralPlaceL4Count = 5
	r100.TeleopAlgaePlaceNetShot = 3
	r100.EndgameDeepClimb = true

	r200 := base("200", model.AllianceRed)
	r200.AutoCoralPlaceL4Count = 2
	r200.AutoLeave = true
	r200.TeleopCoralPlaceL1Count = 3
	r200.TeleopCoralPlaceL2Count = 2
	r200.TeleopAlgaePlaceProcessor = 2
	r200.EndgameParked = true

	r300 := base("300", model.AllianceRed)
	r300.TeleopCoralPlaceL3Count = 3

	r400 := base("400", model.AllianceBlue)
	r400.TeleopCoralPlaceL1Count = 2
	r400.EndgameShallowClimb = true

	r500 := base("500", model.AllianceBlue)
	r500.TeleopCoralPlaceL2Count = 1
	r500.EndgameShallowClimb = true

	r600 := base("600", model.AllianceBlue)
	r600.TeleopCoralPlaceL4Count = 3
	r600.EndgameDeepClimb = true

	return []model.ScoutingRecord{r100, r200, r300, r400, r500, r600}
}

func TestMatchAgreement(t *testing.T) {
	Convey("Given scouted data that matches the official breakdown", t, func() {
		payload := matchPayload(t)
		cfg := compare.DefaultConfig()

		result := Match("2025test", payload, agreeingRecords(), &cfg, points.Reefscape2025())

		Convey("The match identity carries through", func() {
			So(result.EventKey, ShouldEqual, "2025test")
			So(result.MatchNumber, ShouldEqual, "10")
			So(result.MatchKey, ShouldEqual, "2025test_qm10")
			So(result.CompLevel, ShouldEqual, "qm")
		})

		Convey("Both alliances pass and the match passes", func() {
			So(result.Red.Status, ShouldEqual, model.StatusPassed)
			So(result.Blue.Status, ShouldEqual, model.StatusPassed)
			So(result.Status, ShouldEqual, model.StatusPassed)
			So(result.Confidence, ShouldEqual, model.ConfidenceHigh)
			So(result.CriticalCount, ShouldEqual, 0)
			So(result.FlaggedForReview, ShouldBeFalse)
			So(result.RequiresReScout, ShouldBeFalse)
		})

		Convey("Every rostered team appears with its scouted entry", func() {
			So(result.Teams, ShouldHaveLength, 6)
			for _, entry := range result.Teams {
				So(entry.HasScoutedData, ShouldBeTrue)
				So(entry.ScoutName, ShouldEqual, "scout-"+entry.TeamKey)
				So(entry.NeedsReview, ShouldBeFalse)
			}
		})
	})
}

func TestMatchSplitTrustsRoster(t *testing.T) {
	Convey("Given a blue-roster record mistagged as red", t, func() {
		payload := matchPayload(t)
		cfg := compare.DefaultConfig()
		records := agreeingRecords()
		for i := range records {
			if records[i].TeamKey == "400" {
				records[i].Alliance = model.AllianceRed
			}
		}

		result := Match("2025test", payload, records, &cfg, points.Reefscape2025())

		Convey("The official roster wins and both alliances still pass", func() {
			So(result.Red.Status, ShouldEqual, model.StatusPassed)
			So(result.Blue.Status, ShouldEqual, model.StatusPassed)
		})
	})
}

func TestMatchDrift(t *testing.T) {
	Convey("Given one scouted count past the warning bar", t, func() {
		payload := matchPayload(t)
		cfg := compare.DefaultConfig()
		records := agreeingRecords()
		records[0].TeleopCoralPlaceL4Count += 3

		result := Match("2025test", payload, records, &cfg, points.Reefscape2025())

		Convey("The red alliance drags the match to flagged", func() {
			So(result.Red.Status, ShouldEqual, model.StatusFlagged)
			So(result.Blue.Status, ShouldEqual, model.StatusPassed)
			So(result.Status, ShouldEqual, model.StatusFlagged)
			So(result.FlaggedForReview, ShouldBeTrue)
			So(result.RequiresReScout, ShouldBeFalse)
		})

		Convey("Team entries inherit the review flag", func() {
			for _, entry := range result.Teams {
				So(entry.NeedsReview, ShouldBeTrue)
			}
		})
	})

	Convey("Given combined criticals at the match fail cutoff", t, func() {
		payload := matchPayload(t)
		cfg := compare.DefaultConfig()
		cfg.MatchFailCriticalCount = 2
		records := agreeingRecords()
		// one category far enough off that the level and the total both
		// go critical
		records[0].TeleopCoralPlaceL4Count += 6

		result := Match("2025test", payload, records, &cfg, points.Reefscape2025())

		Convey("The match fails and demands a re-scout", func() {
			So(result.CriticalCount, ShouldBeGreaterThanOrEqualTo, 2)
			So(result.Status, ShouldEqual, model.StatusFailed)
			So(result.RequiresReScout, ShouldBeTrue)
		})
	})
}

func TestMatchMissingTeam(t *testing.T) {
	Convey("Given no scouted record for one rostered team", t, func() {
		payload := matchPayload(t)
		cfg := compare.DefaultConfig()
		var records []model.ScoutingRecord
		for _, r := range agreeingRecords() {
			if r.TeamKey != "300" {
				records = append(records, r)
			}
		}

		result := Match("2025test", payload, records, &cfg, points.Reefscape2025())

		Convey("The missing roster slot is called out", func() {
			So(result.Red.Aggregate.MissingTeams, ShouldResemble, []string{"300"})
			So(result.Confidence, ShouldEqual, model.ConfidenceLow)
		})

		Convey("Its team entry says so explicitly", func() {
			var missing *model.TeamValidation
			for i := range result.Teams {
				if result.Teams[i].TeamKey == "300" {
					missing = &result.Teams[i]
				}
			}
			So(missing, ShouldNotBeNil)
			So(missing.HasScoutedData, ShouldBeFalse)
			So(missing.Confidence, ShouldEqual, model.ConfidenceLow)
			So(missing.Notes, ShouldEqual, "No scouted data for team 300")
			So(missing.EstimatedPoints, ShouldEqual, 0)
		})
	})
}
