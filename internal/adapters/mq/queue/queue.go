// Package queue defines the contract for enqueuing and consuming import
// batches.
//
// Implementations may use channels or more advanced structures; the
// service runs on an in-memory bounded queue.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
	defaultBufferSize    = 1024
)

// Batch is one decoded upload from a scouting device, queued for the
// merge workers.
type Batch struct {
	Source     string
	Records    []model.ScoutingRecord
	ReceivedAt time.Time
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a batch to the queue.
	// Returns false if the queue is full and the batch was not enqueued.
	Enqueue(ctx context.Context, b Batch) bool

	// Dequeue returns a channel that will receive batches as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Batch

	// Len returns the current number of queued batches.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue. After closing, no new
	// batches can be enqueued and the dequeue channel will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	batches    chan Batch
	capacity   int
	bufferSize int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity:   defaultQueueCapacity,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(q)
	}

	// The channel buffer is what actually bounds the queue; capacity is
	// checked separately so the two can be tuned apart.
	q.batches = make(chan Batch, q.bufferSize)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueDepth(0)

	return q
}

// Enqueue adds a batch to the queue without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, b Batch) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueRejected()
		return false
	}

	if len(q.batches) >= q.capacity {
		metrics.RecordQueueRejected()
		return false
	}

	select {
	case q.batches <- b:
		metrics.RecordBatchQueued()
		metrics.UpdateQueueDepth(len(q.batches))
		return true
	case <-ctx.Done():
		metrics.RecordQueueRejected()
		return false
	default:
		metrics.RecordQueueRejected()
		return false
	}
}

// Dequeue returns a channel that will receive batches as they become
// available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Batch {
	out := make(chan Batch)
	go func() {
		defer close(out)
		for b := range q.batches {
			select {
			case out <- b:
				metrics.UpdateQueueDepth(len(q.batches))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued batches.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.batches)
	metrics.UpdateQueueDepth(size)
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.batches)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
