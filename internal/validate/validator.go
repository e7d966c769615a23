// Package validate produces match-level verdicts by reconciling scouted
// records against the official results feed.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vibescout/matchaudit/internal/domain/aggregate"
	"github.com/vibescout/matchaudit/internal/domain/compare"
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/internal/domain/official"
	"github.com/vibescout/matchaudit/internal/domain/points"
)

// stripTeamPrefix maps the feed's "frc254" keys into scouted team space.
func stripTeamPrefix(key string) string {
	return strings.TrimPrefix(key, "frc")
}

// splitByRoster assigns scouted records to alliances. The official
// roster decides when it can: the scouted alliance tag is informational
// and devices get it wrong, so it is only a fallback.
func splitByRoster(records []model.ScoutingRecord, red, blue []string) (redRecs, blueRecs []model.ScoutingRecord) {
	inRoster := func(team string, roster []string) bool {
		for _, k := range roster {
			if stripTeamPrefix(k) == team {
				return true
			}
		}
		return false
	}
	for i := range records {
		r := records[i]
		team := stripTeamPrefix(r.TeamKey)
		switch {
		case inRoster(team, red):
			redRecs = append(redRecs, r)
		case inRoster(team, blue):
			blueRecs = append(blueRecs, r)
		case r.Alliance.Normalize() == model.AllianceBlue:
			blueRecs = append(blueRecs, r)
		default:
			redRecs = append(redRecs, r)
		}
	}
	return redRecs, blueRecs
}

// Match runs both alliance comparisons for one match and merges them
// into the match-level verdict. Pure function of its inputs; the caller
// owns persistence and skip decisions.
func Match(eventKey string, payload *official.MatchPayload, records []model.ScoutingRecord, cfg *compare.Config, table points.Table) model.MatchValidationResult {
	matchNumber := strconv.Itoa(payload.MatchNumber)

	redRoster := payload.Alliances.Red.TeamKeys
	blueRoster := payload.Alliances.Blue.TeamKeys
	redRecs, blueRecs := splitByRoster(records, redRoster, blueRoster)

	redAgg := aggregate.Sum(redRecs)
	blueAgg := aggregate.Sum(blueRecs)
	redAgg.Alliance, blueAgg.Alliance = model.AllianceRed, model.AllianceBlue

	redOff := official.Extract(payload, model.AllianceRed)
	blueOff := official.Extract(payload, model.AllianceBlue)

	aggregate.MarkMissing(&redAgg, stripRoster(redRoster))
	aggregate.MarkMissing(&blueAgg, stripRoster(blueRoster))

	red := compare.Alliance(redAgg, redOff, cfg, table)
	blue := compare.Alliance(blueAgg, blueOff, cfg, table)

	result := model.MatchValidationResult{
		EventKey:    eventKey,
		MatchNumber: matchNumber,
		MatchKey:    payload.Key,
		CompLevel:   payload.CompLevel,
		Red:         red,
		Blue:        blue,
		ValidatedAt: time.Now().UTC(),
	}

	result.CriticalCount = red.CountBySeverity(model.SeverityCritical) + blue.CountBySeverity(model.SeverityCritical)
	result.WarningCount = red.CountBySeverity(model.SeverityWarning) + blue.CountBySeverity(model.SeverityWarning)
	result.MinorCount = red.CountBySeverity(model.SeverityMinor) + blue.CountBySeverity(model.SeverityMinor)

	// The match layer applies its own, coarser threshold pair to the
	// combined critical count on top of the per-alliance verdicts.
	// Thresholds only ever add severity: the match is never better than
	// the worse of its alliances.
	status := red.Status.Worse(blue.Status)
	switch {
	case cfg.MatchFailCriticalCount > 0 && result.CriticalCount >= cfg.MatchFailCriticalCount:
		status = model.StatusFailed
	case cfg.MatchFlagCriticalCount > 0 && result.CriticalCount >= cfg.MatchFlagCriticalCount:
		status = status.Worse(model.StatusFlagged)
	}
	result.Status = status
	result.Confidence = red.Confidence.Worst(blue.Confidence)

	result.RequiresReScout = result.Status == model.StatusFailed
	result.FlaggedForReview = result.Status == model.StatusFlagged || result.Status == model.StatusFailed

	result.Teams = teamEntries(payload, records, &result, table)

	return result
}

func stripRoster(roster []string) []string {
	out := make([]string, len(roster))
	for i, k := range roster {
		out[i] = stripTeamPrefix(k)
	}
	return out
}

// teamEntries flattens a per-team view over the official rosters. Teams
// with no scouted record are marked explicitly with low confidence, the
// count of discrepancies never enters into it.
func teamEntries(payload *official.MatchPayload, records []model.ScoutingRecord, result *model.MatchValidationResult, table points.Table) []model.TeamValidation {
	byTeam := make(map[string]*model.ScoutingRecord, len(records))
	for i := range records {
		byTeam[stripTeamPrefix(records[i].TeamKey)] = &records[i]
	}

	allianceFor := func(a model.Alliance, v *model.AllianceValidation) []model.TeamValidation {
		roster := payload.Alliances.Red.TeamKeys
		if a == model.AllianceBlue {
			roster = payload.Alliances.Blue.TeamKeys
		}
		entries := make([]model.TeamValidation, 0, len(roster))
		for _, key := range roster {
			team := stripTeamPrefix(key)
			entry := model.TeamValidation{
				TeamKey:     team,
				Alliance:    a,
				Confidence:  v.Confidence,
				NeedsReview: result.FlaggedForReview,
			}
			if rec, ok := byTeam[team]; ok {
				entry.HasScoutedData = true
				entry.ScoutName = rec.ScoutName
				entry.IsCorrected = rec.IsCorrected
				entry.CorrectionCount = rec.CorrectionCount
				entry.LastCorrectedAt = rec.LastCorrectedAt
				entry.LastCorrectedBy = rec.LastCorrectedBy
				single := aggregate.Sum([]model.ScoutingRecord{*rec})
				entry.EstimatedPoints = table.Estimate(&single).Total
			} else {
				entry.Confidence = model.ConfidenceLow
				entry.Notes = fmt.Sprintf("No scouted data for team %s", team)
			}
			entries = append(entries, entry)
		}
		return entries
	}

	out := allianceFor(model.AllianceRed, &result.Red)
	return append(out, allianceFor(model.AllianceBlue, &result.Blue)...)
}
