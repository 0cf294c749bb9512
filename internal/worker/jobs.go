package worker

import (
	"context"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/duel"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/metrics"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xpevent"
)

// DuelSweeper completes expired duels and declines stale challenges
type DuelSweeper interface {
	Sweep(ctx context.Context) (duel.SweepResult, error)
}

// XPEventSweeper announces global event starts and ends
type XPEventSweeper interface {
	Sweep(ctx context.Context) (xpevent.SweepResult, error)
}

// BoostPurger deletes long-expired boosts
type BoostPurger interface {
	PurgeExpiredBoosts(ctx context.Context, retention time.Duration) (int64, error)
}

// SweepJob adapts a function to Job and records its outcome in metrics
type SweepJob struct {
	name string
	run  func(ctx context.Context) error
}

// NewSweepJob wraps run under name
func NewSweepJob(name string, run func(ctx context.Context) error) *SweepJob {
	return &SweepJob{name: name, run: run}
}

// Name returns the job name
func (j *SweepJob) Name() string { return j.name }

// Process runs the job once
func (j *SweepJob) Process(ctx context.Context) error {
	err := j.run(ctx)
	metrics.RecordSweep(j.name, err)
	return err
}

// NewDuelSweepJob builds the periodic duel sweep
func NewDuelSweepJob(svc DuelSweeper) *SweepJob {
	return NewSweepJob(JobDuelSweep, func(ctx context.Context) error {
		res, err := svc.Sweep(ctx)
		if err != nil {
			return err
		}
		if res.Completed+res.Declined+res.BonusesPaid+res.Failed > 0 {
			logger.FromContext(ctx).Info(LogMsgDuelSweepCompleted,
				"completed", res.Completed, "declined", res.Declined,
				"bonuses_paid", res.BonusesPaid, "failed", res.Failed)
		}
		return nil
	})
}

// NewXPEventSweepJob builds the periodic global event bookkeeping sweep
func NewXPEventSweepJob(svc XPEventSweeper) *SweepJob {
	return NewSweepJob(JobXPEventSweep, func(ctx context.Context) error {
		res, err := svc.Sweep(ctx)
		if err != nil {
			return err
		}
		if res.Started+res.Ended > 0 {
			logger.FromContext(ctx).Info(LogMsgXPEventSweepCompleted, "started", res.Started, "ended", res.Ended)
		}
		return nil
	})
}

// NewBoostPurgeJob builds the expired boost cleanup
func NewBoostPurgeJob(svc BoostPurger, retention time.Duration) *SweepJob {
	return NewSweepJob(JobBoostPurge, func(ctx context.Context) error {
		n, err := svc.PurgeExpiredBoosts(ctx, retention)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.FromContext(ctx).Info(LogMsgBoostPurgeCompleted, "deleted", n)
		}
		return nil
	})
}

// NewEventLogCleanupJob wraps an existing job so it reports under the cleanup name
func NewEventLogCleanupJob(job Job) *SweepJob {
	return NewSweepJob(JobEventLogCleanup, job.Process)
}
