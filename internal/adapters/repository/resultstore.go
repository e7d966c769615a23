package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vibescout/matchaudit/internal/domain/model"
)

// confidence weights for the summary average.
const (
	confidenceHighWeight   = 1.0
	confidenceMediumWeight = 0.5
)

type resultKey struct {
	event string
	match string
}

// MemResultStore is the in-memory ResultStore.
type MemResultStore struct {
	mu      sync.RWMutex
	results map[resultKey]model.MatchValidationResult
}

// NewMemResultStore creates an empty result store.
func NewMemResultStore() *MemResultStore {
	return &MemResultStore{results: map[resultKey]model.MatchValidationResult{}}
}

// Put stores a match verdict, superseding any previous run wholesale.
func (s *MemResultStore) Put(_ context.Context, result model.MatchValidationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[resultKey{result.EventKey, result.MatchNumber}] = result
	return nil
}

// Get returns one stored verdict.
func (s *MemResultStore) Get(_ context.Context, eventKey, matchNumber string) (model.MatchValidationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[resultKey{eventKey, matchNumber}]
	if !ok {
		return model.MatchValidationResult{}, fmt.Errorf("%w: %s match %s", ErrNotFound, eventKey, matchNumber)
	}
	return r, nil
}

// ListByEvent returns every stored verdict for an event, ordered by
// match number.
func (s *MemResultStore) ListByEvent(_ context.Context, eventKey string) ([]model.MatchValidationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.MatchValidationResult
	for key, r := range s.results {
		if key.event == eventKey {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].MatchNumber) != len(out[j].MatchNumber) {
			return len(out[i].MatchNumber) < len(out[j].MatchNumber)
		}
		return out[i].MatchNumber < out[j].MatchNumber
	})
	return out, nil
}

// Summary computes the event-level roll-up of stored verdicts.
func (s *MemResultStore) Summary(ctx context.Context, eventKey string) (model.ValidationSummary, error) {
	results, err := s.ListByEvent(ctx, eventKey)
	if err != nil {
		return model.ValidationSummary{}, err
	}

	summary := model.ValidationSummary{EventKey: eventKey}
	confidenceTotal := 0.0
	for i := range results {
		r := &results[i]
		summary.MatchesValidated++
		switch r.Status {
		case model.StatusPassed:
			summary.Passed++
		case model.StatusFlagged:
			summary.Flagged++
		case model.StatusFailed:
			summary.Failed++
		}
		summary.CriticalCount += r.CriticalCount
		summary.WarningCount += r.WarningCount
		summary.MinorCount += r.MinorCount
		if r.RequiresReScout {
			summary.RequireReScout++
		}
		switch r.Confidence {
		case model.ConfidenceHigh:
			confidenceTotal += confidenceHighWeight
		case model.ConfidenceMedium:
			confidenceTotal += confidenceMediumWeight
		}
	}
	if summary.MatchesValidated > 0 {
		summary.AverageConfidence = confidenceTotal / float64(summary.MatchesValidated)
	}
	return summary, nil
}
