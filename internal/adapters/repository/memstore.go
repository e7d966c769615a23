package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vibescout/matchaudit/internal/domain/model"
)

// In-memory RecordStore.
//
// One mutex guards both the id map and the key index, so a Replace is
// atomic relative to every reader of the same key. Per-key advisory
// locking is unnecessary at scouting-data scale.
type MemStore struct {
	mu      sync.RWMutex
	byID    map[string]model.ScoutingRecord
	byKey   map[model.RecordKey]string // key -> current record id
	initial int
}

// NewMemStore creates an empty in-memory record store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{initial: defaultInitialCapacity}
	for _, opt := range opts {
		opt(s)
	}
	s.byID = make(map[string]model.ScoutingRecord, s.initial)
	s.byKey = make(map[model.RecordKey]string, s.initial)
	return s
}

// QueryByFields returns every current record for one match of one event.
func (s *MemStore) QueryByFields(_ context.Context, eventKey, matchNumber string) ([]model.ScoutingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.ScoutingRecord
	for key, id := range s.byKey {
		if key.EventKey == eventKey && key.MatchNumber == matchNumber {
			out = append(out, s.byID[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamKey < out[j].TeamKey })
	return out, nil
}

// FindByKey returns the current record for a logical key.
func (s *MemStore) FindByKey(_ context.Context, key model.RecordKey) (model.ScoutingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byKey[key]
	if !ok {
		return model.ScoutingRecord{}, ErrNotFound
	}
	return s.byID[id], nil
}

// Put inserts a record.
func (s *MemStore) Put(_ context.Context, rec model.ScoutingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(rec)
}

func (s *MemStore) insertLocked(rec model.ScoutingRecord) error {
	key := rec.Key()
	if _, ok := s.byKey[key]; ok {
		return fmt.Errorf("%w: %s/%s/%s", ErrDuplicateKey, key.EventKey, key.MatchNumber, key.TeamKey)
	}
	s.byID[rec.ID] = rec
	s.byKey[key] = rec.ID
	return nil
}

// Delete removes a record by id.
func (s *MemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(id)
}

func (s *MemStore) deleteLocked(id string) error {
	rec, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	delete(s.byID, id)
	if current, ok := s.byKey[rec.Key()]; ok && current == id {
		delete(s.byKey, rec.Key())
	}
	return nil
}

// Replace deletes oldID and inserts rec under one lock acquisition: a
// reader can never observe the key half-replaced.
func (s *MemStore) Replace(_ context.Context, oldID string, rec model.ScoutingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[oldID]; !ok {
		return fmt.Errorf("%w: id %s", ErrStoreConflict, oldID)
	}
	if err := s.deleteLocked(oldID); err != nil {
		return err
	}
	return s.insertLocked(rec)
}

// ListAll returns every current record, ordered for deterministic output.
func (s *MemStore) ListAll(_ context.Context) ([]model.ScoutingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ScoutingRecord, 0, len(s.byKey))
	for _, id := range s.byKey {
		out = append(out, s.byID[id])
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.EventKey != b.EventKey {
			return a.EventKey < b.EventKey
		}
		if a.MatchNumber != b.MatchNumber {
			return a.MatchNumber < b.MatchNumber
		}
		return a.TeamKey < b.TeamKey
	})
	return out, nil
}

// Count returns the number of current records.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}
