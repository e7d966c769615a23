package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibescout/matchaudit/internal/domain/model"
)

func batch(source string) Batch {
	return Batch{
		Source:     source,
		Records:    []model.ScoutingRecord{{EventKey: "2025test", MatchNumber: "1", TeamKey: "100"}},
		ReceivedAt: time.Now(),
	}
}

func TestEnqueueDequeue(t *testing.T) {
	ctx := context.Background()
	q := NewInMemoryQueue()
	defer q.Close()

	require.True(t, q.Enqueue(ctx, batch("tablet-1")))
	require.True(t, q.Enqueue(ctx, batch("tablet-2")))
	assert.Equal(t, 2, q.Len(ctx))

	out := q.Dequeue(ctx)
	first := <-out
	second := <-out
	assert.Equal(t, "tablet-1", first.Source)
	assert.Equal(t, "tablet-2", second.Source)
}

func TestEnqueueFullQueue(t *testing.T) {
	ctx := context.Background()
	q := NewInMemoryQueue(WithCapacity(2))
	defer q.Close()

	assert.True(t, q.Enqueue(ctx, batch("a")))
	assert.True(t, q.Enqueue(ctx, batch("b")))
	assert.False(t, q.Enqueue(ctx, batch("c")), "full queue must reject, not block")
	assert.Equal(t, 2, q.Len(ctx))
}

func TestEnqueueCancelledContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// a cancelled producer never enqueues even with room available
	assert.False(t, q.Enqueue(ctx, batch("late")))
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	q := NewInMemoryQueue()

	require.True(t, q.Enqueue(ctx, batch("a")))
	require.NoError(t, q.Close())
	assert.True(t, q.IsClosed())
	assert.NoError(t, q.Close(), "double close is a no-op")

	assert.False(t, q.Enqueue(ctx, batch("b")))

	// batches queued before close still drain, then the channel closes
	out := q.Dequeue(ctx)
	got, ok := <-out
	require.True(t, ok)
	assert.Equal(t, "a", got.Source)

	_, ok = <-out
	assert.False(t, ok)
}

func TestDequeueStopsOnContextCancel(t *testing.T) {
	q := NewInMemoryQueue()
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	out := q.Dequeue(ctx)
	cancel()

	require.True(t, q.Enqueue(context.Background(), batch("a")))

	// with nobody receiving, the consumer goroutine observes the cancel
	// and closes its channel instead of holding the batch forever
	time.Sleep(50 * time.Millisecond)

	select {
	case _, ok := <-out:
		assert.False(t, ok, "cancelled consumer channel must close, not deliver")
	case <-time.After(time.Second):
		t.Fatal("dequeue channel did not close after context cancel")
	}
}
