package worker

import "time"

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed    = "Worker job failed"
	LogMsgWorkerJobCompleted = "Worker job completed"
	LogMsgQueueFull          = "Worker queue full, job dropped"
)

// Log messages - sweep jobs
const (
	LogMsgDuelSweepCompleted    = "Duel sweep completed"
	LogMsgXPEventSweepCompleted = "XP event sweep completed"
	LogMsgBoostPurgeCompleted   = "Expired boost purge completed"
)

// Job names, used as the metrics label
const (
	JobDuelSweep       = "duel_sweep"
	JobXPEventSweep    = "xp_event_sweep"
	JobBoostPurge      = "boost_purge"
	JobEventLogCleanup = "event_log_cleanup"
)

// DefaultJobTimeout bounds one job execution
const DefaultJobTimeout = 2 * time.Minute

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
