package validate

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vibescout/matchaudit/internal/adapters/repository"
	"github.com/vibescout/matchaudit/internal/adapters/tba"
	"github.com/vibescout/matchaudit/internal/domain/compare"
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/internal/domain/official"
	"github.com/vibescout/matchaudit/internal/domain/points"
	"github.com/vibescout/matchaudit/pkg/logger"
	"github.com/vibescout/matchaudit/pkg/metrics"
)

// Phase names a stage of the per-match pipeline for progress reporting.
type Phase string

const (
	PhaseFetch    Phase = "fetch"
	PhaseValidate Phase = "validate"
	PhaseStore    Phase = "store"
)

// Progress is delivered to the caller's callback once per match.
// Index is 1-based. The callback runs serialized; keep it quick.
type Progress struct {
	Index    int
	Total    int
	MatchKey string
	Phase    Phase
}

// EventReport summarizes a whole-event run.
type EventReport struct {
	EventKey          string `json:"eventKey"`
	MatchesValidated  int    `json:"matchesValidated"`
	SkippedNoOfficial int    `json:"skippedNoOfficial"`
	SkippedNoScouted  int    `json:"skippedNoScouted"`
	Failed            int    `json:"failed"`
	Flagged           int    `json:"flagged"`
}

const (
	skipNoOfficial = "no-official-data"
	skipNoScouted  = "no-scouted-data"
)

// scoreDivergenceLogThreshold triggers a diagnostic log entry when the
// estimated and official totals drift further apart than the per-field
// checks alone would suggest.
const scoreDivergenceLogThreshold = 10

const defaultWorkerCount = 4

// Runner validates an event's matches against the official feed and
// persists the results.
type Runner struct {
	provider tba.Provider
	records  repository.RecordStore
	results  repository.ResultStore
	table    points.Table
	workers  int
	log      logger.Logger
}

type RunnerOption func(*Runner)

func WithWorkerCount(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithPointsTable(t points.Table) RunnerOption {
	return func(r *Runner) { r.table = t }
}

func WithRunnerLogger(l logger.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

func NewRunner(provider tba.Provider, records repository.RecordStore, results repository.ResultStore, opts ...RunnerOption) *Runner {
	r := &Runner{
		provider: provider,
		records:  records,
		results:  results,
		table:    points.Reefscape2025(),
		workers:  defaultWorkerCount,
		log:      logger.Named("validate"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunMatch validates a single match and stores the result. Skips are
// reported through the reason string with a zero result.
func (r *Runner) RunMatch(ctx context.Context, eventKey, matchKey string, cfg *compare.Config) (model.MatchValidationResult, string, error) {
	payload, err := r.provider.GetMatch(ctx, eventKey, matchKey)
	if err != nil {
		return model.MatchValidationResult{}, "", err
	}
	return r.validateOne(ctx, eventKey, payload, cfg)
}

// RunEvent fetches the event's match list and validates every played
// match that has scouted data, fanning work across the worker pool.
// Cancellation is honored between matches; matches already in flight
// run to completion.
func (r *Runner) RunEvent(ctx context.Context, eventKey string, cfg *compare.Config, progress func(Progress)) (EventReport, error) {
	report := EventReport{EventKey: eventKey}

	var mu sync.Mutex
	notify := func(p Progress) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		progress(p)
	}

	notify(Progress{Phase: PhaseFetch})
	payloads, err := r.provider.GetEventMatches(ctx, eventKey)
	if err != nil {
		return report, err
	}
	total := len(payloads)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range payloads {
		if gctx.Err() != nil {
			break
		}
		idx, payload := i+1, &payloads[i]
		g.Go(func() error {
			notify(Progress{Index: idx, Total: total, MatchKey: payload.Key, Phase: PhaseValidate})

			result, skipped, err := r.validateOne(gctx, eventKey, payload, cfg)
			if err != nil {
				return err
			}
			notify(Progress{Index: idx, Total: total, MatchKey: payload.Key, Phase: PhaseStore})

			mu.Lock()
			defer mu.Unlock()
			switch skipped {
			case skipNoOfficial:
				report.SkippedNoOfficial++
			case skipNoScouted:
				report.SkippedNoScouted++
			default:
				report.MatchesValidated++
				switch result.Status {
				case model.StatusFailed:
					report.Failed++
				case model.StatusFlagged:
					report.Flagged++
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	r.log.Info(ctx, "event validation finished",
		logger.String("event", eventKey),
		logger.Int("validated", report.MatchesValidated),
		logger.Int("skipped_no_official", report.SkippedNoOfficial),
		logger.Int("skipped_no_scouted", report.SkippedNoScouted),
	)
	return report, nil
}

func (r *Runner) validateOne(ctx context.Context, eventKey string, payload *official.MatchPayload, cfg *compare.Config) (model.MatchValidationResult, string, error) {
	if payload == nil || payload.ScoreBreakdown == nil {
		metrics.RecordMatchSkipped(skipNoOfficial)
		return model.MatchValidationResult{}, skipNoOfficial, nil
	}

	matchNumber := strconv.Itoa(payload.MatchNumber)
	records, err := r.records.QueryByFields(ctx, eventKey, matchNumber)
	if err != nil {
		return model.MatchValidationResult{}, "", err
	}
	if len(records) == 0 {
		metrics.RecordMatchSkipped(skipNoScouted)
		return model.MatchValidationResult{}, skipNoScouted, nil
	}

	start := time.Now()
	result := Match(eventKey, payload, records, cfg, r.table)
	metrics.RecordValidationLatency(time.Since(start).Seconds())

	r.logDivergence(ctx, &result)

	if err := r.results.Put(ctx, result); err != nil {
		return model.MatchValidationResult{}, "", err
	}
	metrics.RecordMatchValidated()
	metrics.RecordMatchStatus(string(result.Status))
	for _, d := range result.Red.Discrepancies {
		metrics.RecordDiscrepancy(d.Severity.String())
	}
	for _, d := range result.Blue.Discrepancies {
		metrics.RecordDiscrepancy(d.Severity.String())
	}

	return result, "", nil
}

func (r *Runner) logDivergence(ctx context.Context, result *model.MatchValidationResult) {
	for _, side := range []struct {
		name string
		v    *model.AllianceValidation
	}{
		{"red", &result.Red},
		{"blue", &result.Blue},
	} {
		if !side.v.Official.HasBreakdown {
			continue
		}
		diff := side.v.ScoreDifference
		if diff < 0 {
			diff = -diff
		}
		if diff > scoreDivergenceLogThreshold {
			r.log.Debug(ctx, "score estimate diverges from official breakdown",
				logger.String("match", result.MatchKey),
				logger.String("alliance", side.name),
				logger.Int("estimated", side.v.EstimatedPoints),
				logger.Int("official", side.v.OfficialPoints),
			)
		}
	}
}
