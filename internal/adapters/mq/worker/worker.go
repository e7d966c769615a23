// Package worker drains the import queue into the merge engine.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vibescout/matchaudit/internal/adapters/mq/queue"
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/pkg/logger"
	"github.com/vibescout/matchaudit/pkg/metrics"
)

const (
	defaultPoolSize       = 2
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Merger runs a decoded batch through conflict detection and the
// automatic merge rules.
type Merger interface {
	Import(ctx context.Context, records []model.ScoutingRecord) (model.ImportSummary, error)
}

// Queue defines how workers receive batches.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Batch
}

// Worker processes import batches until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker. Any batch in flight is
	// processed before stopping.
	Shutdown(ctx context.Context) error
}

// MergeWorker implements Worker over a Merger.
type MergeWorker struct {
	queue  Queue
	merger Merger
	name   string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewMergeWorker creates a new worker with configuration options.
func NewMergeWorker(q Queue, merger Merger, opts ...Option) *MergeWorker {
	w := &MergeWorker{
		queue:    q,
		merger:   merger,
		name:     "merge-worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "merge-worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *MergeWorker) Run(ctx context.Context) {
	defer close(w.done)

	batches := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case batch, ok := <-batches:
			if !ok {
				return
			}
			if err := w.processBatch(ctx, batch); err != nil {
				w.logger.Error(ctx, "error merging batch", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *MergeWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, workerShutdownTimeout)
		defer cancel()
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *MergeWorker) processBatch(ctx context.Context, batch queue.Batch) error {
	start := time.Now()

	summary, err := w.merger.Import(ctx, batch.Records)
	if err != nil {
		w.logger.Error(ctx, "batch merge failed",
			logger.String("source", batch.Source),
			logger.Int("records", len(batch.Records)),
			logger.Error(err),
		)
		return fmt.Errorf("merge batch from %q: %w", batch.Source, err)
	}

	metrics.RecordBatchMerged()
	w.logger.Info(ctx, "batch merged",
		logger.String("source", batch.Source),
		logger.Int("records", len(batch.Records)),
		logger.Int("added", summary.AddedCount),
		logger.Int("replaced", summary.ReplacedCount),
		logger.Int("pending_conflicts", summary.PendingConflicts),
		logger.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers []*MergeWorker
	queue   Queue

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, merger Merger) *Pool {
	if workerCount < 1 {
		workerCount = defaultPoolSize
	}

	pool := &Pool{
		workers:  make([]*MergeWorker, workerCount),
		queue:    q,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewMergeWorker(
			q,
			merger,
			WithName("merge-worker-"+strconv.Itoa(i)),
		)
	}

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown gracefully shuts down the entire worker pool. The queue is
// closed first so drained workers exit on their own.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
