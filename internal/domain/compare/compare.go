package compare

import (
	"fmt"
	"math"

	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/internal/domain/points"
	"github.com/vibescout/matchaudit/internal/domain/severity"
)

// Escalation counts for the alliance status ladder.
const (
	flagWarningCount = 2 // more than this many warnings flags the alliance
	flagMinorCount   = 3 // more than this many minors flags the alliance
)

// check is one tracked field comparison inside a category sweep.
type check struct {
	category model.Category
	field    string
	scouted  int
	official int
}

// Alliance compares one alliance's scouted aggregate against its
// official data and produces the alliance verdict. Pure function of its
// inputs: safe to run concurrently across matches.
func Alliance(agg model.AllianceAggregate, off model.OfficialAllianceData, cfg *Config, table points.Table) model.AllianceValidation {
	v := model.AllianceValidation{
		Alliance:  agg.Alliance,
		Aggregate: agg,
		Official:  off,
	}
	if v.Alliance == "" {
		v.Alliance = off.Alliance
	}

	if off.HasBreakdown {
		for _, c := range checks(&agg, &off) {
			if !cfg.CategoryEnabled(c.category) {
				continue
			}
			t := cfg.ThresholdsFor(c.category)
			level := severity.Classify(c.scouted, c.official, t)
			if level == model.SeverityNone {
				continue
			}
			diff := c.scouted - c.official
			if diff < 0 {
				diff = -diff
			}
			pct := severity.PercentDiff(c.scouted, c.official)
			v.Discrepancies = append(v.Discrepancies, model.Discrepancy{
				Category:    c.category,
				Field:       c.field,
				Scouted:     c.scouted,
				Official:    c.official,
				Difference:  diff,
				PercentDiff: pct,
				Severity:    level,
				Message: fmt.Sprintf("%s: scouted %d, official %d (diff %d, %.1f%%)",
					c.field, c.scouted, c.official, diff, pct),
			})
		}
	}

	v.ScoutedBreakdown = table.Estimate(&agg)
	v.OfficialBreakdown = points.OfficialBreakdown(&off)
	v.EstimatedPoints = v.ScoutedBreakdown.Total
	v.OfficialPoints = v.OfficialBreakdown.Total

	diff := v.EstimatedPoints - v.OfficialPoints
	if diff < 0 {
		diff = -diff
	}
	v.ScoreDifference = diff
	if v.OfficialPoints != 0 {
		v.ScorePercentDiff = math.Abs(float64(v.EstimatedPoints-v.OfficialPoints)) / float64(v.OfficialPoints) * 100
	}

	critical := v.CountBySeverity(model.SeverityCritical)
	warning := v.CountBySeverity(model.SeverityWarning)
	minor := v.CountBySeverity(model.SeverityMinor)

	switch {
	case cfg.AllianceFailCriticalCount > 0 && critical >= cfg.AllianceFailCriticalCount:
		v.Status = model.StatusFailed
	case critical > 0:
		v.Status = model.StatusFlagged
	case warning > flagWarningCount:
		v.Status = model.StatusFlagged
	case warning > 0 || minor > flagMinorCount:
		v.Status = model.StatusFlagged
	default:
		v.Status = model.StatusPassed
	}

	switch {
	case len(agg.MissingTeams) > 0 || critical > 0 || !off.HasBreakdown:
		v.Confidence = model.ConfidenceLow
	case warning > flagWarningCount:
		v.Confidence = model.ConfidenceMedium
	default:
		v.Confidence = model.ConfidenceHigh
	}

	return v
}

// checks builds the tracked-category comparison list. Teleop coral uses
// the back-calculated teleop-only figures; algae stays match-combined
// because the feed publishes no period breakdown for it.
func checks(agg *model.AllianceAggregate, off *model.OfficialAllianceData) []check {
	return []check{
		{model.CategoryAutoCoral, "Auto Coral L1", agg.AutoCoralL1, off.AutoCoralL1},
		{model.CategoryAutoCoral, "Auto Coral L2", agg.AutoCoralL2, off.AutoCoralL2},
		{model.CategoryAutoCoral, "Auto Coral L3", agg.AutoCoralL3, off.AutoCoralL3},
		{model.CategoryAutoCoral, "Auto Coral L4", agg.AutoCoralL4, off.AutoCoralL4},
		{model.CategoryAutoCoral, "Auto Coral Total", agg.AutoCoralTotal, off.AutoCoralTotal()},

		{model.CategoryTeleopCoral, "Teleop Coral L1", agg.TeleopCoralL1, off.TeleopOnlyCoral(1)},
		{model.CategoryTeleopCoral, "Teleop Coral L2", agg.TeleopCoralL2, off.TeleopOnlyCoral(2)},
		{model.CategoryTeleopCoral, "Teleop Coral L3", agg.TeleopCoralL3, off.TeleopOnlyCoral(3)},
		{model.CategoryTeleopCoral, "Teleop Coral L4", agg.TeleopCoralL4, off.TeleopOnlyCoral(4)},
		{model.CategoryTeleopCoral, "Teleop Coral Total", agg.TeleopCoralTotal, off.TeleopOnlyCoralTotal()},

		{model.CategoryAlgae, "Algae Net", agg.AlgaeNetTotal, off.NetAlgaeCount},
		{model.CategoryAlgae, "Algae Processor", agg.AlgaeProcessorTotal, off.ProcessorAlgaeCount},
		{model.CategoryAlgae, "Algae Total", agg.TotalAlgae, off.NetAlgaeCount + off.ProcessorAlgaeCount},

		{model.CategoryMobility, "Auto Leave", agg.LeaveCount, off.MobilityCount},

		{model.CategoryEndgame, "Deep Climb", agg.DeepClimbCount, off.DeepClimbCount},
		{model.CategoryEndgame, "Shallow Climb", agg.ShallowClimbCount, off.ShallowClimbCount},
		{model.CategoryEndgame, "Park", agg.ParkCount, off.ParkCount},
	}
}
