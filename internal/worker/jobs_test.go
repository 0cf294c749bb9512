package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/duel"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xpevent"
)

type MockDuelSweeper struct{ mock.Mock }

func (m *MockDuelSweeper) Sweep(ctx context.Context) (duel.SweepResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(duel.SweepResult), args.Error(1)
}

type MockXPEventSweeper struct{ mock.Mock }

func (m *MockXPEventSweeper) Sweep(ctx context.Context) (xpevent.SweepResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(xpevent.SweepResult), args.Error(1)
}

type MockBoostPurger struct{ mock.Mock }

func (m *MockBoostPurger) PurgeExpiredBoosts(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

func TestDuelSweepJob(t *testing.T) {
	svc := new(MockDuelSweeper)
	svc.On("Sweep", mock.Anything).Return(duel.SweepResult{Completed: 2, Declined: 1}, nil).Once()
	svc.On("Sweep", mock.Anything).Return(duel.SweepResult{}, errors.New("db down")).Once()

	job := NewDuelSweepJob(svc)
	assert.Equal(t, JobDuelSweep, job.Name())
	require.NoError(t, job.Process(context.Background()))
	assert.Error(t, job.Process(context.Background()))
	svc.AssertExpectations(t)
}

func TestXPEventSweepJob(t *testing.T) {
	svc := new(MockXPEventSweeper)
	svc.On("Sweep", mock.Anything).Return(xpevent.SweepResult{Started: 1}, nil)

	job := NewXPEventSweepJob(svc)
	require.NoError(t, job.Process(context.Background()))
	assert.Equal(t, JobXPEventSweep, job.Name())
	svc.AssertExpectations(t)
}

func TestBoostPurgeJob(t *testing.T) {
	svc := new(MockBoostPurger)
	svc.On("PurgeExpiredBoosts", mock.Anything, 24*time.Hour).Return(int64(3), nil)

	job := NewBoostPurgeJob(svc, 24*time.Hour)
	require.NoError(t, job.Process(context.Background()))
	svc.AssertExpectations(t)
}

func TestEventLogCleanupJob_WrapsName(t *testing.T) {
	var executed int32
	job := NewEventLogCleanupJob(&testJob{executed: &executed})

	require.NoError(t, job.Process(context.Background()))
	assert.Equal(t, JobEventLogCleanup, job.Name())
	assert.Equal(t, int32(1), executed)
}
