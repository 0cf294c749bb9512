package bootstrap

import (
	"context"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/config"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/eventlog"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/worker"
)

// Scheduler registers periodic jobs
type Scheduler interface {
	Schedule(interval time.Duration, job worker.Job, runNow bool)
}

// ScheduleJobs registers the periodic sweeps. A zero interval disables a job.
func ScheduleJobs(ctx context.Context, cfg *config.Config, sched Scheduler, svcs *Services) {
	sched.Schedule(cfg.DuelSweepInterval, worker.NewDuelSweepJob(svcs.Duels), true)
	sched.Schedule(cfg.XPEventSweepInterval, worker.NewXPEventSweepJob(svcs.XPEvents), true)
	sched.Schedule(cfg.BoostCleanupInterval, worker.NewBoostPurgeJob(svcs.Economy, BoostPurgeRetention), false)

	if cfg.EventLogRetention > 0 {
		cleanup := eventlog.NewCleanupJob(svcs.EventLog, cfg.EventLogRetention)
		sched.Schedule(EventLogCleanupInterval, worker.NewEventLogCleanupJob(cleanup), false)
	}

	logger.FromContext(ctx).Info(LogMsgJobsScheduled,
		"duel_sweep", cfg.DuelSweepInterval,
		"xp_event_sweep", cfg.XPEventSweepInterval,
		"boost_cleanup", cfg.BoostCleanupInterval,
		"event_log_retention_days", cfg.EventLogRetention)
}
