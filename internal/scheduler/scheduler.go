package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/worker"
)

const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgJobSkipped   = "Scheduled job skipped, queue full"
)

// Enqueuer accepts jobs for asynchronous execution
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler enqueues jobs on fixed intervals
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job every interval. With runNow the first run is
// enqueued immediately, so a restart does not wait a full interval.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job, runNow bool) {
	if interval <= 0 {
		return
	}

	logger.FromContext(context.Background()).Info(LogMsgJobScheduled, "job", name(job), "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if runNow {
			s.enqueue(job)
		}
		for {
			select {
			case <-ticker.C:
				s.enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

func (s *Scheduler) enqueue(job worker.Job) {
	if !s.pool.Enqueue(job) {
		logger.FromContext(context.Background()).Warn(LogMsgJobSkipped, "job", name(job))
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}

func name(job worker.Job) string {
	if n, ok := job.(worker.Named); ok {
		return n.Name()
	}
	return "anonymous"
}
