package conflict

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vibescout/matchaudit/internal/domain/model"
)

func record(team string, corrected bool) model.ScoutingRecord {
	return model.ScoutingRecord{
		EventKey:                "2025test",
		MatchNumber:             "12",
		TeamKey:                 team,
		Alliance:                model.AllianceRed,
		ScoutName:               "alice",
		AutoCoralPlaceL4Count:   2,
		TeleopCoralPlaceL4Count: 5,
		TeleopAlgaePlaceNetShot: 1,
		AutoLeave:               true,
		EndgameDeepClimb:        true,
		IsCorrected:             corrected,
	}
}

func storeOf(records ...model.ScoutingRecord) Lookup {
	byKey := make(map[model.RecordKey]model.ScoutingRecord, len(records))
	for _, r := range records {
		byKey[r.Key()] = r
	}
	return func(key model.RecordKey) (model.ScoutingRecord, bool) {
		rec, ok := byKey[key]
		return rec, ok
	}
}

func TestClassify(t *testing.T) {
	Convey("Given an incoming batch and a canonical store", t, func() {
		Convey("When no local record exists for the key", func() {
			incoming := record("254", false)
			plan := Classify([]model.ScoutingRecord{incoming}, storeOf())

			Convey("The record is auto-imported", func() {
				So(plan.AutoImport, ShouldHaveLength, 1)
				So(plan.AutoImport[0].TeamKey, ShouldEqual, "254")
				So(plan.AutoReplace, ShouldBeEmpty)
				So(plan.Conflicts, ShouldBeEmpty)
			})
		})

		Convey("When the local record is uncorrected", func() {
			local := record("254", false)
			incoming := record("254", false)
			incoming.TeleopCoralPlaceL4Count = 8

			plan := Classify([]model.ScoutingRecord{incoming}, storeOf(local))

			Convey("The incoming record auto-replaces it", func() {
				So(plan.AutoReplace, ShouldHaveLength, 1)
				So(plan.AutoReplace[0].Local.TeleopCoralPlaceL4Count, ShouldEqual, 5)
				So(plan.AutoReplace[0].Incoming.TeleopCoralPlaceL4Count, ShouldEqual, 8)
				So(plan.Conflicts, ShouldBeEmpty)
			})
		})

		Convey("When the local record is uncorrected and the incoming one is corrected", func() {
			local := record("254", false)
			incoming := record("254", true)
			incoming.Comments = "fixed endgame"

			plan := Classify([]model.ScoutingRecord{incoming}, storeOf(local))

			Convey("The correction still auto-replaces", func() {
				So(plan.AutoReplace, ShouldHaveLength, 1)
				So(plan.Conflicts, ShouldBeEmpty)
			})
		})

		Convey("When the local record is corrected and the data is identical", func() {
			local := record("254", true)
			incoming := record("254", false)

			plan := Classify([]model.ScoutingRecord{incoming}, storeOf(local))

			Convey("The duplicate is skipped without a conflict", func() {
				So(plan.IdenticalSkips, ShouldHaveLength, 1)
				So(plan.Conflicts, ShouldBeEmpty)
				So(plan.AutoReplace, ShouldBeEmpty)
			})
		})

		Convey("When the local record is corrected and the data differs", func() {
			local := record("254", true)
			incoming := record("254", false)
			incoming.TeleopCoralPlaceL4Count = 9
			incoming.EndgameDeepClimb = false
			incoming.EndgameParked = true

			plan := Classify([]model.ScoutingRecord{incoming}, storeOf(local))

			Convey("A conflict is raised for review", func() {
				So(plan.Conflicts, ShouldHaveLength, 1)
				So(plan.Conflicts[0].Kind, ShouldEqual, model.ConflictCorrectedVsUncorrected)
				So(plan.Conflicts[0].ChangedFields, ShouldHaveLength, 3)
			})

			Convey("A corrected incoming record changes the conflict kind", func() {
				incoming.IsCorrected = true
				plan = Classify([]model.ScoutingRecord{incoming}, storeOf(local))
				So(plan.Conflicts, ShouldHaveLength, 1)
				So(plan.Conflicts[0].Kind, ShouldEqual, model.ConflictCorrectedVsCorrected)
			})
		})

		Convey("When a batch mixes every case", func() {
			kept := record("1000", true)
			replaced := record("2000", false)

			fresh := record("3000", false)
			dup := record("1000", false)
			update := record("2000", false)
			update.AutoLeave = false

			plan := Classify([]model.ScoutingRecord{fresh, dup, update}, storeOf(kept, replaced))

			Convey("Each record lands in its own bucket", func() {
				So(plan.AutoImport, ShouldHaveLength, 1)
				So(plan.IdenticalSkips, ShouldHaveLength, 1)
				So(plan.AutoReplace, ShouldHaveLength, 1)
				So(plan.Conflicts, ShouldBeEmpty)
			})
		})
	})
}

func TestDiffFields(t *testing.T) {
	Convey("Given two records for the same key", t, func() {
		local := record("254", true)
		incoming := record("254", false)

		Convey("Identical data yields no changes", func() {
			So(DiffFields(&local, &incoming), ShouldBeEmpty)
		})

		Convey("Correction metadata never counts as a difference", func() {
			incoming.IsCorrected = true
			So(DiffFields(&local, &incoming), ShouldBeEmpty)
		})

		Convey("A disagreeing alliance tag is a changed field, not a new identity", func() {
			incoming.Alliance = model.AllianceBlue
			changes := DiffFields(&local, &incoming)
			So(changes, ShouldHaveLength, 1)
			So(changes[0].Field, ShouldEqual, "alliance")
			So(changes[0].Local, ShouldEqual, "red")
			So(changes[0].Incoming, ShouldEqual, "blue")
			So(local.Key(), ShouldResemble, incoming.Key())
		})

		Convey("Numeric drift reports both values as strings", func() {
			incoming.AutoCoralPlaceL4Count = 4
			changes := DiffFields(&local, &incoming)
			So(changes, ShouldHaveLength, 1)
			So(changes[0].Field, ShouldEqual, "autoCoralPlaceL4Count")
			So(changes[0].Local, ShouldEqual, "2")
			So(changes[0].Incoming, ShouldEqual, "4")
		})
	})
}
