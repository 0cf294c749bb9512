package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(&testJob{executed: &executed, err: errors.New("boom")}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == TestExpectedJobCount
	}, time.Second, 5*time.Millisecond)

	pool.Stop()
}

func TestPool_EnqueueFullQueueDoesNotBlock(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1) // not started: nothing drains the queue

	assert.True(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
	pool.Stop()
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
}

func TestPool_NoGoroutineLeak(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed int32
	pool := NewPool(4, TestQueueSize)
	pool.Start()
	for i := 0; i < 5; i++ {
		pool.Enqueue(&testJob{executed: &executed})
	}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 5 }, time.Second, 5*time.Millisecond)
	pool.Stop()

	checker.Check(1)
}
