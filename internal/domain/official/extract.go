package official

import "github.com/vibescout/matchaudit/internal/domain/model"

// Endgame states published by the feed.
const (
	endGameParked   = "Parked"
	endGameShallow  = "ShallowCage"
	endGameDeep     = "DeepCage"
	autoLineCrossed = "Yes"
)

// Extract normalizes one alliance's share of a match payload into the
// shape the comparator consumes. When the payload carries no breakdown
// every derived count is zero, HasBreakdown is false, and only the raw
// final score and roster survive. Never returns an error: partial
// official data is an expected condition, not a failure.
func Extract(payload *MatchPayload, alliance model.Alliance) model.OfficialAllianceData {
	out := model.OfficialAllianceData{Alliance: alliance}
	if payload == nil {
		return out
	}

	entry := payload.Alliances.Red
	if alliance == model.AllianceBlue {
		entry = payload.Alliances.Blue
	}
	out.Score = entry.Score
	out.TeamKeys = append(out.TeamKeys, entry.TeamKeys...)

	var bd *AllianceBreakdown
	if payload.ScoreBreakdown != nil {
		if alliance == model.AllianceBlue {
			bd = payload.ScoreBreakdown.Blue
		} else {
			bd = payload.ScoreBreakdown.Red
		}
	}
	if bd == nil {
		return out
	}
	out.HasBreakdown = true

	out.AutoMobilityPoints = bd.AutoMobilityPoints
	out.AutoCoralPoints = bd.AutoCoralPoints
	out.TeleopCoralPoints = bd.TeleopCoralPoints
	out.AlgaePoints = bd.AlgaePoints
	out.EndgamePoints = bd.EndGameBargePoints
	out.FoulPoints = bd.FoulPoints

	out.AutoCoralL1 = bd.AutoReef.Trough
	out.AutoCoralL2 = bd.AutoReef.BotRowCount
	out.AutoCoralL3 = bd.AutoReef.MidRowCount
	out.AutoCoralL4 = bd.AutoReef.TopRowCount

	// Cumulative: the teleop reef is the final field state and already
	// includes the auto-period contribution.
	out.CumulativeCoralL1 = bd.TeleopReef.Trough
	out.CumulativeCoralL2 = bd.TeleopReef.BotRowCount
	out.CumulativeCoralL3 = bd.TeleopReef.MidRowCount
	out.CumulativeCoralL4 = bd.TeleopReef.TopRowCount

	// Algae is published match-combined; keep it combined.
	out.NetAlgaeCount = bd.NetAlgaeCount
	out.ProcessorAlgaeCount = bd.WallAlgaeCount

	for _, line := range []string{bd.AutoLineRobot1, bd.AutoLineRobot2, bd.AutoLineRobot3} {
		if line == autoLineCrossed {
			out.MobilityCount++
		}
	}
	for _, eg := range []string{bd.EndGameRobot1, bd.EndGameRobot2, bd.EndGameRobot3} {
		switch eg {
		case endGameParked:
			out.ParkCount++
		case endGameShallow:
			out.ShallowClimbCount++
		case endGameDeep:
			out.DeepClimbCount++
		}
	}

	out.AutoBonus = bd.AutoBonusAchieved
	out.CoralBonus = bd.CoralBonusAchieved
	out.BargeBonus = bd.BargeBonusAchieved
	out.FoulCount = bd.FoulCount
	out.TechFoulCount = bd.TechFoulCount

	return out
}
