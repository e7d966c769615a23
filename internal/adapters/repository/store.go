// Package repository defines the record and result store interfaces and
// errors.
package repository

import (
	"context"

	"github.com/vibescout/matchaudit/internal/domain/model"
)

// RecordStore provides read/write access to the canonical scouting
// records. (event, match, team) should be unique among current records;
// the store tolerates concurrent devices violating that upstream by
// keeping exactly one current record per key and letting the merge
// workflow decide replacements.
type RecordStore interface {
	// QueryByFields returns every current record for one match of one
	// event.
	QueryByFields(ctx context.Context, eventKey, matchNumber string) ([]model.ScoutingRecord, error)

	// FindByKey returns the current record for a logical key.
	// Returns ErrNotFound if no record exists for the key.
	FindByKey(ctx context.Context, key model.RecordKey) (model.ScoutingRecord, error)

	// Put inserts a record. Returns ErrDuplicateKey if a current record
	// already holds the same logical key.
	Put(ctx context.Context, rec model.ScoutingRecord) error

	// Delete removes a record by id. Deleting an unknown id returns
	// ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Replace atomically deletes the record with oldID and inserts rec
	// as one unit relative to concurrent readers of the same key.
	Replace(ctx context.Context, oldID string, rec model.ScoutingRecord) error

	// ListAll returns every current record.
	ListAll(ctx context.Context) ([]model.ScoutingRecord, error)

	// Count returns the number of current records.
	Count(ctx context.Context) int
}

// ResultStore keeps match validation results keyed by (event, match).
// Each validation run supersedes the stored result wholesale.
type ResultStore interface {
	Put(ctx context.Context, result model.MatchValidationResult) error
	Get(ctx context.Context, eventKey, matchNumber string) (model.MatchValidationResult, error)
	ListByEvent(ctx context.Context, eventKey string) ([]model.MatchValidationResult, error)
	Summary(ctx context.Context, eventKey string) (model.ValidationSummary, error)
}
