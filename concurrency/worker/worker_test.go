package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, (&Config{MaxWorkers: 0, QueueSize: 1}).Validate())
	assert.Error(t, (&Config{MaxWorkers: 1, QueueSize: 0}).Validate())
	assert.Error(t, (&Config{MaxWorkers: 1, QueueSize: 1, TaskTimeout: -1}).Validate())
}

func TestPoolRunsTasksAndCountsFailures(t *testing.T) {
	pool, cleanup, err := ProvidePool(&Config{MaxWorkers: 3, QueueSize: 10})
	require.NoError(t, err)

	var ran atomic.Int32
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Submit(ctx, func(context.Context) error {
			ran.Add(1)
			return nil
		}))
	}
	require.NoError(t, pool.Submit(ctx, func(context.Context) error { return errors.New("boom") }))
	require.NoError(t, pool.Submit(ctx, func(context.Context) error { panic("oops") }))

	cleanup()

	assert.Equal(t, int32(5), ran.Load())
	m := pool.GetMetrics()
	assert.Equal(t, int64(5), m["completed_tasks"])
	assert.Equal(t, int64(2), m["failed_tasks"])
	assert.Zero(t, m["pending_tasks"])
	assert.Zero(t, m["active_workers"])
}

func TestSubmitAfterStop(t *testing.T) {
	pool := NewPool(&Config{MaxWorkers: 1, QueueSize: 1})
	pool.Start()
	require.NoError(t, pool.Stop(context.Background()))
	require.NoError(t, pool.Stop(context.Background()))

	assert.ErrorIs(t, pool.Submit(context.Background(), func(context.Context) error { return nil }), ErrPoolClosed)
}

func TestSubmitWaitsForRoom(t *testing.T) {
	pool := NewPool(&Config{MaxWorkers: 1, QueueSize: 1})
	// not started, so nothing drains the queue
	require.NoError(t, pool.Submit(context.Background(), func(context.Context) error { return nil }))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Submit(ctx, func(context.Context) error { return nil }), context.DeadlineExceeded)

	pool.Start()
	require.NoError(t, pool.Stop(context.Background()))
}

func TestTaskTimeout(t *testing.T) {
	pool := NewPool(&Config{MaxWorkers: 1, QueueSize: 1, TaskTimeout: 10 * time.Millisecond})
	pool.Start()

	got := make(chan error, 1)
	require.NoError(t, pool.Submit(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		got <- ctx.Err()
		return ctx.Err()
	}))

	select {
	case err := <-got:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("task was not timed out")
	}
	require.NoError(t, pool.Stop(context.Background()))
}

func TestStopDeadlineCancelsRunningTasks(t *testing.T) {
	pool := NewPool(&Config{MaxWorkers: 1, QueueSize: 1})
	pool.Start()

	started := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Stop(ctx), context.DeadlineExceeded)
}

func TestBatchWaitsForAll(t *testing.T) {
	pool, cleanup, err := ProvidePool(&Config{MaxWorkers: 2, QueueSize: 2})
	require.NoError(t, err)
	defer cleanup()

	var sum atomic.Int64
	b := pool.NewBatch(context.Background())
	for i := 1; i <= 10; i++ {
		n := int64(i)
		b.Go(func(context.Context) { sum.Add(n) }, func(err error) { t.Errorf("rejected: %v", err) })
	}
	b.Wait()
	assert.Equal(t, int64(55), sum.Load())
}

func TestBatchReportsRejection(t *testing.T) {
	pool := NewPool(nil)
	pool.Start()
	require.NoError(t, pool.Stop(context.Background()))

	var rejected error
	b := pool.NewBatch(context.Background())
	b.Go(func(context.Context) {}, func(err error) { rejected = err })
	b.Wait()
	assert.ErrorIs(t, rejected, ErrPoolClosed)
}
