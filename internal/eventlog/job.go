package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// CleanupJob prunes the event log on a schedule
type CleanupJob struct {
	svc       Service
	retention int
	since     func(time.Time) time.Duration
}

// NewCleanupJob keeps retentionDays of history. A non-positive value makes
// the job a no-op.
func NewCleanupJob(svc Service, retentionDays int) *CleanupJob {
	return &CleanupJob{svc: svc, retention: retentionDays, since: time.Since}
}

// Process deletes events older than the retention window
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With(LogFieldRetentionDays, j.retention)
	if j.retention <= 0 {
		log.Debug(LogMsgCleanupJobDisabled)
		return nil
	}

	started := time.Now()
	deleted, err := j.svc.CleanupOldEvents(ctx, j.retention)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, LogFieldError, err, LogFieldDuration, j.since(started))
		return fmt.Errorf("%s: %w", ErrMsgCleanupFailed, err)
	}

	log.Info(LogMsgCleanupJobCompleted, LogFieldDeletedCount, deleted, LogFieldDuration, j.since(started))
	return nil
}
