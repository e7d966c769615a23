// Package merge sequences conflict classification into storage
// operations and exposes the interactive resolution state machine.
package merge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vibescout/matchaudit/internal/adapters/repository"
	"github.com/vibescout/matchaudit/internal/domain/conflict"
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/pkg/logger"
	"github.com/vibescout/matchaudit/pkg/metrics"
)

// State names the resolution machine's position.
//
//	Idle -> Importing -> (auto-applied) -> [BatchReview] -> ConflictPending(i) ... -> Idle
type State string

const (
	StateIdle            State = "idle"
	StateImporting       State = "importing"
	StateBatchReview     State = "batch-review"
	StateConflictPending State = "conflict-pending"
)

// Action is a per-conflict decision.
type Action string

const (
	ActionReplace Action = "replace"
	ActionSkip    Action = "skip"
)

// BatchAction is a bulk-triage decision over the batch-review bucket.
type BatchAction string

const (
	BatchReplaceAll BatchAction = "replace-all"
	BatchSkipAll    BatchAction = "skip-all"
	BatchReviewEach BatchAction = "review-each"
)

// decision remembers the one user choice that can be undone.
type decision struct {
	conflict  model.ConflictInfo
	action    Action
	prevIndex int
}

// Orchestrator applies conflict classifications to the canonical store
// and drives the interactive resolution workflow.
type Orchestrator struct {
	mu    sync.Mutex
	store repository.RecordStore
	log   logger.Logger

	batchReviewThreshold int

	state   State
	pending []model.ConflictInfo
	bucket  []model.ConflictInfo
	index   int
	summary model.ImportSummary

	// Single-slot undo: exactly the previous decision can be rewound,
	// anything older is gone.
	last *decision
}

// Option applies a configuration option to the Orchestrator.
type Option func(*Orchestrator)

// WithBatchReviewThreshold sets the conflict count at which an incoming
// batch is staged for bulk triage instead of per-item dialogs.
func WithBatchReviewThreshold(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.batchReviewThreshold = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// defaultBatchReviewThreshold is the conflict count that triggers bulk triage.
const defaultBatchReviewThreshold = 5

// New constructs an Orchestrator over the canonical record store.
func New(store repository.RecordStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:                store,
		state:                StateIdle,
		batchReviewThreshold: defaultBatchReviewThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Get().Named("merge")
	}
	return o
}

// Import reconciles an incoming batch against the canonical store.
// Auto-resolvable records are applied immediately; needs-review records
// either enter the batch-review bucket (large batches) or the ordinary
// conflict queue. Partial success is reported, not aborted: one record's
// store failure never stops the rest of the batch.
func (o *Orchestrator) Import(ctx context.Context, records []model.ScoutingRecord) (model.ImportSummary, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateIdle {
		o.summary = model.ImportSummary{}
		o.last = nil
	}
	o.state = StateImporting

	plan := conflict.Classify(records, func(key model.RecordKey) (model.ScoutingRecord, bool) {
		rec, err := o.store.FindByKey(ctx, key)
		return rec, err == nil
	})

	var failures []error

	for i := range plan.AutoImport {
		if err := o.store.Put(ctx, plan.AutoImport[i]); err != nil {
			failures = append(failures, fmt.Errorf("import %s: %w", plan.AutoImport[i].ID, err))
			continue
		}
		o.summary.AddedCount++
		metrics.RecordImported(1)
	}

	for i := range plan.AutoReplace {
		r := plan.AutoReplace[i]
		// Delete-then-insert as one store call: a crash in between
		// would strand the key, so the store owns the pairing.
		if err := o.store.Replace(ctx, r.Local.ID, r.Incoming); err != nil {
			failures = append(failures, fmt.Errorf("replace %s: %w", r.Local.ID, err))
			continue
		}
		o.summary.ReplacedCount++
		metrics.RecordReplaced(1)
	}

	o.summary.SkippedIdentical += len(plan.IdenticalSkips)
	metrics.RecordSkipped(len(plan.IdenticalSkips))

	for i := range plan.Conflicts {
		metrics.RecordConflict(string(plan.Conflicts[i].Kind))
	}

	if len(plan.Conflicts) >= o.batchReviewThreshold {
		o.bucket = append(o.bucket, plan.Conflicts...)
		o.state = StateBatchReview
	} else {
		o.pending = append(o.pending, plan.Conflicts...)
		if o.hasPendingLocked() {
			o.state = StateConflictPending
		} else {
			o.finishLocked(ctx)
		}
	}
	o.summary.PendingConflicts = len(o.pending) - o.index + len(o.bucket)

	if len(failures) > 0 {
		return o.summary, fmt.Errorf("%w: %w", ErrPartialFailure, errors.Join(failures...))
	}
	return o.summary, nil
}

// State returns the machine's current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Current returns the conflict awaiting a decision, if any.
func (o *Orchestrator) Current() (model.ConflictInfo, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateConflictPending || !o.hasPendingLocked() {
		return model.ConflictInfo{}, false
	}
	return o.pending[o.index], true
}

// Pending returns every unresolved conflict, current first.
func (o *Orchestrator) Pending() []model.ConflictInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]model.ConflictInfo, 0, len(o.pending)-o.index+len(o.bucket))
	out = append(out, o.pending[o.index:]...)
	out = append(out, o.bucket...)
	return out
}

// Summary returns the running counts for the current session.
func (o *Orchestrator) Summary() model.ImportSummary {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.summary
	s.PendingConflicts = len(o.pending) - o.index + len(o.bucket)
	return s
}

// Resolve applies the user's decision to the current conflict and
// advances the queue. Replace persists the incoming record with its own
// correction metadata verbatim; the local correction history is
// discarded, which is the documented design choice. A store failure is
// surfaced so the caller can re-prompt instead of assuming success.
func (o *Orchestrator) Resolve(ctx context.Context, action Action) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateConflictPending || !o.hasPendingLocked() {
		return ErrNoConflictPending
	}
	c := o.pending[o.index]

	switch action {
	case ActionReplace:
		if err := o.store.Replace(ctx, c.Local.ID, c.Incoming); err != nil {
			return fmt.Errorf("%w: %w", ErrResolveFailed, err)
		}
		o.summary.UserReplaced++
	case ActionSkip:
		o.summary.UserSkipped++
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	metrics.RecordMergeResolution(string(action))

	o.last = &decision{conflict: c, action: action, prevIndex: o.index}
	o.index++
	if !o.hasPendingLocked() {
		o.finishLocked(ctx)
	}
	return nil
}

// Undo rewinds exactly one step: the previous conflict index is restored
// and its decision un-applied. With nothing to rewind it is a no-op.
func (o *Orchestrator) Undo(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.last == nil {
		return nil
	}
	d := o.last

	switch d.action {
	case ActionReplace:
		if err := o.store.Replace(ctx, d.conflict.Incoming.ID, d.conflict.Local); err != nil {
			return fmt.Errorf("%w: %w", ErrResolveFailed, err)
		}
		o.summary.UserReplaced--
	case ActionSkip:
		o.summary.UserSkipped--
	}
	metrics.RecordMergeResolution("undo")

	o.index = d.prevIndex
	if !o.hasPendingLocked() {
		// The session already finished and the queue was released; put
		// the conflict back so it can be re-decided.
		o.pending = append(o.pending, d.conflict)
		o.index = len(o.pending) - 1
	}
	o.last = nil
	o.state = StateConflictPending
	return nil
}

// ResolveBatch applies a bulk-triage decision to the batch-review
// bucket. Replace-all and skip-all handle every bucketed conflict in one
// pass and never enter per-item review; review-each demotes the bucket
// into the ordinary conflict queue.
func (o *Orchestrator) ResolveBatch(ctx context.Context, action BatchAction) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateBatchReview {
		return ErrNoBatchPending
	}

	switch action {
	case BatchReviewEach:
		o.pending = append(o.pending, o.bucket...)
		o.bucket = nil
		o.state = StateConflictPending
		return nil
	case BatchReplaceAll:
		var failures []error
		for i := range o.bucket {
			c := o.bucket[i]
			if err := o.store.Replace(ctx, c.Local.ID, c.Incoming); err != nil {
				failures = append(failures, fmt.Errorf("replace %s: %w", c.Local.ID, err))
				continue
			}
			o.summary.UserReplaced++
			metrics.RecordMergeResolution(string(ActionReplace))
		}
		o.bucket = nil
		if !o.hasPendingLocked() {
			o.finishLocked(ctx)
		} else {
			o.state = StateConflictPending
		}
		if len(failures) > 0 {
			return fmt.Errorf("%w: %w", ErrPartialFailure, errors.Join(failures...))
		}
		return nil
	case BatchSkipAll:
		o.summary.UserSkipped += len(o.bucket)
		for range o.bucket {
			metrics.RecordMergeResolution(string(ActionSkip))
		}
		o.bucket = nil
		if !o.hasPendingLocked() {
			o.finishLocked(ctx)
		} else {
			o.state = StateConflictPending
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

func (o *Orchestrator) hasPendingLocked() bool {
	return o.index < len(o.pending)
}

// finishLocked returns the machine to Idle and emits the session summary.
func (o *Orchestrator) finishLocked(ctx context.Context) {
	o.state = StateIdle
	o.pending = nil
	o.index = 0
	o.log.Info(ctx, "merge session complete",
		logger.Int("added", o.summary.AddedCount),
		logger.Int("replaced", o.summary.ReplacedCount),
		logger.Int("skippedIdentical", o.summary.SkippedIdentical),
		logger.Int("userReplaced", o.summary.UserReplaced),
		logger.Int("userSkipped", o.summary.UserSkipped),
	)
}
