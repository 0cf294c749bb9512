package worker

import (
	"context"
	"sync"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Named is implemented by jobs that want their name in logs
type Named interface {
	Name() string
}

// Pool runs jobs on a fixed number of goroutines
type Pool struct {
	workers  int
	timeout  time.Duration
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		timeout:  DefaultJobTimeout,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	name := jobName(job)
	log := logger.FromContext(ctx).With("job", name)
	start := time.Now()
	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgWorkerJobFailed, "error", err, "duration", time.Since(start))
		return
	}
	log.Debug(LogMsgWorkerJobCompleted, "duration", time.Since(start))
}

// Enqueue adds a job to the queue without blocking. It reports false when
// the queue is full or the pool is stopping; the caller's next tick retries.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}

	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.FromContext(context.Background()).Warn(LogMsgQueueFull, "job", jobName(job))
		return false
	}
}

// Stop stops the workers and waits for in-flight jobs to finish
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}

func jobName(job Job) string {
	if n, ok := job.(Named); ok {
		return n.Name()
	}
	return "anonymous"
}
