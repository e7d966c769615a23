// Package conflict classifies incoming scouting records against the
// canonical store during a multi-device merge.
package conflict

import (
	"strconv"

	"github.com/vibescout/matchaudit/internal/domain/model"
)

// Lookup resolves the current canonical record for a key, if any.
type Lookup func(key model.RecordKey) (model.ScoutingRecord, bool)

// Replacement pairs a canonical record with the incoming record that
// auto-replaces it.
type Replacement struct {
	Local    model.ScoutingRecord
	Incoming model.ScoutingRecord
}

// Plan is the classification of one incoming batch.
//
// Needs-review records are pre-split: exact duplicates are skipped
// without a dialog, only records with at least one differing field
// become true conflicts.
type Plan struct {
	AutoImport     []model.ScoutingRecord
	AutoReplace    []Replacement
	IdenticalSkips []model.ScoutingRecord
	Conflicts      []model.ConflictInfo
}

// Classify runs the corrected-vs-uncorrected decision matrix over an
// incoming batch. The matching key is (event, match, team); alliance is
// deliberately excluded from identity, a disagreement there surfaces as
// a changed field instead.
//
//	existing    incoming    result
//	none        any         auto-import
//	uncorrected uncorrected auto-replace
//	uncorrected corrected   auto-replace
//	corrected   uncorrected needs-review
//	corrected   corrected   needs-review
//
// Corrected records are deliberate human interventions and are never
// silently clobbered; everything else is ordinary multi-device traffic.
func Classify(incoming []model.ScoutingRecord, lookup Lookup) Plan {
	var plan Plan
	for i := range incoming {
		rec := incoming[i]
		local, ok := lookup(rec.Key())
		if !ok {
			plan.AutoImport = append(plan.AutoImport, rec)
			continue
		}

		if !local.IsCorrected {
			plan.AutoReplace = append(plan.AutoReplace, Replacement{Local: local, Incoming: rec})
			continue
		}

		changed := DiffFields(&local, &rec)
		if len(changed) == 0 {
			plan.IdenticalSkips = append(plan.IdenticalSkips, rec)
			continue
		}

		kind := model.ConflictCorrectedVsUncorrected
		if rec.IsCorrected {
			kind = model.ConflictCorrectedVsCorrected
		}
		plan.Conflicts = append(plan.Conflicts, model.ConflictInfo{
			Local:         local,
			Incoming:      rec,
			Kind:          kind,
			ChangedFields: changed,
		})
	}
	return plan
}

// fieldProbe extracts one comparable field from a record as a string.
type fieldProbe struct {
	name string
	get  func(*model.ScoutingRecord) string
}

func intField(name string, get func(*model.ScoutingRecord) int) fieldProbe {
	return fieldProbe{name: name, get: func(r *model.ScoutingRecord) string {
		return strconv.Itoa(get(r))
	}}
}

func boolField(name string, get func(*model.ScoutingRecord) bool) fieldProbe {
	return fieldProbe{name: name, get: func(r *model.ScoutingRecord) string {
		return strconv.FormatBool(get(r))
	}}
}

// probes covers every substantive data field. Record identity, creation
// time, and correction metadata stay out: two observations of the same
// robot are "identical" when the data agrees, regardless of who entered
// it first or corrected it.
var probes = []fieldProbe{
	{name: "alliance", get: func(r *model.ScoutingRecord) string { return string(r.Alliance.Normalize()) }},
	{name: "scoutName", get: func(r *model.ScoutingRecord) string { return r.ScoutName }},

	intField("autoCoralPlaceL1Count", func(r *model.ScoutingRecord) int { return r.AutoCoralPlaceL1Count }),
	intField("autoCoralPlaceL2Count", func(r *model.ScoutingRecord) int { return r.AutoCoralPlaceL2Count }),
	intField("autoCoralPlaceL3Count", func(r *model.ScoutingRecord) int { return r.AutoCoralPlaceL3Count }),
	intField("autoCoralPlaceL4Count", func(r *model.ScoutingRecord) int { return r.AutoCoralPlaceL4Count }),
	intField("autoCoralPlaceDropMissCount", func(r *model.ScoutingRecord) int { return r.AutoCoralPlaceDropMiss }),
	intField("autoCoralPickGroundCount", func(r *model.ScoutingRecord) int { return r.AutoCoralPickGround }),
	intField("autoCoralPickStationCount", func(r *model.ScoutingRecord) int { return r.AutoCoralPickStation }),
	intField("autoAlgaePlaceNetShot", func(r *model.ScoutingRecord) int { return r.AutoAlgaePlaceNetShot }),
	intField("autoAlgaePlaceProcessor", func(r *model.ScoutingRecord) int { return r.AutoAlgaePlaceProcessor }),
	intField("autoAlgaePlaceDropMissCount", func(r *model.ScoutingRecord) int { return r.AutoAlgaePlaceDropMiss }),
	intField("autoAlgaePickGroundCount", func(r *model.ScoutingRecord) int { return r.AutoAlgaePickGround }),
	intField("autoAlgaePickReefCount", func(r *model.ScoutingRecord) int { return r.AutoAlgaePickReef }),

	intField("teleopCoralPlaceL1Count", func(r *model.ScoutingRecord) int { return r.TeleopCoralPlaceL1Count }),
	intField("teleopCoralPlaceL2Count", func(r *model.ScoutingRecord) int { return r.TeleopCoralPlaceL2Count }),
	intField("teleopCoralPlaceL3Count", func(r *model.ScoutingRecord) int { return r.TeleopCoralPlaceL3Count }),
	intField("teleopCoralPlaceL4Count", func(r *model.ScoutingRecord) int { return r.TeleopCoralPlaceL4Count }),
	intField("teleopCoralPlaceDropMissCount", func(r *model.ScoutingRecord) int { return r.TeleopCoralPlaceDropMiss }),
	intField("teleopCoralPickGroundCount", func(r *model.ScoutingRecord) int { return r.TeleopCoralPickGround }),
	intField("teleopCoralPickStationCount", func(r *model.ScoutingRecord) int { return r.TeleopCoralPickStation }),
	intField("teleopAlgaePlaceNetShot", func(r *model.ScoutingRecord) int { return r.TeleopAlgaePlaceNetShot }),
	intField("teleopAlgaePlaceProcessor", func(r *model.ScoutingRecord) int { return r.TeleopAlgaePlaceProcessor }),
	intField("teleopAlgaePlaceDropMissCount", func(r *model.ScoutingRecord) int { return r.TeleopAlgaePlaceDropMiss }),
	intField("teleopAlgaePickGroundCount", func(r *model.ScoutingRecord) int { return r.TeleopAlgaePickGround }),
	intField("teleopAlgaePickReefCount", func(r *model.ScoutingRecord) int { return r.TeleopAlgaePickReef }),

	boolField("autoLeave", func(r *model.ScoutingRecord) bool { return r.AutoLeave }),
	boolField("endgameParked", func(r *model.ScoutingRecord) bool { return r.EndgameParked }),
	boolField("endgameShallowClimb", func(r *model.ScoutingRecord) bool { return r.EndgameShallowClimb }),
	boolField("endgameDeepClimb", func(r *model.ScoutingRecord) bool { return r.EndgameDeepClimb }),
	boolField("climbFailed", func(r *model.ScoutingRecord) bool { return r.ClimbFailed }),
	boolField("brokeDown", func(r *model.ScoutingRecord) bool { return r.BrokeDown }),
	boolField("playedDefense", func(r *model.ScoutingRecord) bool { return r.PlayedDefense }),

	{name: "comments", get: func(r *model.ScoutingRecord) string { return r.Comments }},
}

// DiffFields lists every substantive field on which two records for the
// same key disagree.
func DiffFields(local, incoming *model.ScoutingRecord) []model.FieldChange {
	var changes []model.FieldChange
	for _, p := range probes {
		lv, iv := p.get(local), p.get(incoming)
		if lv != iv {
			changes = append(changes, model.FieldChange{Field: p.name, Local: lv, Incoming: iv})
		}
	}
	return changes
}
