// Package aggregate reduces per-team scouting records into one
// alliance-level numeric summary.
package aggregate

import "github.com/vibescout/matchaudit/internal/domain/model"

// allianceSize is the number of robots on a full alliance.
const allianceSize = 3

// Sum reduces a set of scouting records believed to belong to one
// alliance of one match. An empty input yields a fully-zeroed aggregate
// with IsComplete=false; downstream logic treats that as a valid
// "incomplete alliance" input, never as an error.
func Sum(records []model.ScoutingRecord) model.AllianceAggregate {
	var agg model.AllianceAggregate
	agg.Teams = make([]string, 0, len(records))

	for i := range records {
		r := &records[i]
		if agg.EventKey == "" {
			agg.EventKey = r.EventKey
			agg.MatchNumber = r.MatchNumber
			agg.Alliance = r.Alliance.Normalize()
		}

		agg.AutoCoralL1 += r.AutoCoralPlaceL1Count
		agg.AutoCoralL2 += r.AutoCoralPlaceL2Count
		agg.AutoCoralL3 += r.AutoCoralPlaceL3Count
		agg.AutoCoralL4 += r.AutoCoralPlaceL4Count

		agg.TeleopCoralL1 += r.TeleopCoralPlaceL1Count
		agg.TeleopCoralL2 += r.TeleopCoralPlaceL2Count
		agg.TeleopCoralL3 += r.TeleopCoralPlaceL3Count
		agg.TeleopCoralL4 += r.TeleopCoralPlaceL4Count

		agg.AutoAlgaeNet += r.AutoAlgaePlaceNetShot
		agg.AutoAlgaeProcessor += r.AutoAlgaePlaceProcessor
		agg.TeleopAlgaeNet += r.TeleopAlgaePlaceNetShot
		agg.TeleopAlgaeProcessor += r.TeleopAlgaePlaceProcessor

		if r.AutoLeave {
			agg.LeaveCount++
		}
		if r.EndgameParked {
			agg.ParkCount++
		}
		if r.EndgameShallowClimb {
			agg.ShallowClimbCount++
		}
		if r.EndgameDeepClimb {
			agg.DeepClimbCount++
		}
		if r.NoEndgameAction() {
			agg.NoEndgameCount++
		}
		if r.ClimbFailed {
			agg.ClimbFailedCount++
		}
		if r.BrokeDown {
			agg.BrokeDownCount++
		}
		if r.PlayedDefense {
			agg.DefenseCount++
		}

		agg.Teams = append(agg.Teams, r.TeamKey)
	}

	agg.AutoCoralTotal = agg.AutoCoralL1 + agg.AutoCoralL2 + agg.AutoCoralL3 + agg.AutoCoralL4
	agg.TeleopCoralTotal = agg.TeleopCoralL1 + agg.TeleopCoralL2 + agg.TeleopCoralL3 + agg.TeleopCoralL4
	agg.CoralL1Total = agg.AutoCoralL1 + agg.TeleopCoralL1
	agg.CoralL2Total = agg.AutoCoralL2 + agg.TeleopCoralL2
	agg.CoralL3Total = agg.AutoCoralL3 + agg.TeleopCoralL3
	agg.CoralL4Total = agg.AutoCoralL4 + agg.TeleopCoralL4
	agg.TotalCoral = agg.AutoCoralTotal + agg.TeleopCoralTotal

	agg.AlgaeNetTotal = agg.AutoAlgaeNet + agg.TeleopAlgaeNet
	agg.AlgaeProcessorTotal = agg.AutoAlgaeProcessor + agg.TeleopAlgaeProcessor
	agg.TotalAlgae = agg.AlgaeNetTotal + agg.AlgaeProcessorTotal

	agg.RecordCount = len(records)
	agg.IsComplete = len(records) == allianceSize

	return agg
}

// MarkMissing fills MissingTeams by cross-referencing the official
// roster. Detecting who is absent needs the roster, so this runs only
// once official data for the match is in hand.
func MarkMissing(agg *model.AllianceAggregate, roster []string) {
	present := make(map[string]struct{}, len(agg.Teams))
	for _, t := range agg.Teams {
		present[t] = struct{}{}
	}
	agg.MissingTeams = agg.MissingTeams[:0]
	for _, t := range roster {
		if _, ok := present[t]; !ok {
			agg.MissingTeams = append(agg.MissingTeams, t)
		}
	}
}
