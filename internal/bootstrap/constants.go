package bootstrap

import (
	"os"
	"time"
)

// DirPermission is used for the dead-letter directory
const DirPermission os.FileMode = 0755

// Event system defaults, applied when config leaves them zero
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// BoostPurgeRetention is how long an expired boost is kept before the purge job deletes it
const BoostPurgeRetention = 24 * time.Hour

// EventLogCleanupInterval is how often the event log retention job runs
const EventLogCleanupInterval = 24 * time.Hour

// Log messages
const (
	LogMsgStarting                   = "Starting progression engine"
	LogMsgConfigurationLoaded        = "Configuration loaded"
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgAnnouncerRegistered        = "Discord announcer registered"
	LogMsgRulesLoaded                = "Rule tables loaded"
	LogMsgUsingDefaultWeights        = "No stat weight file configured, using built-in weights"
	LogMsgUsingDefaultCatalog        = "No action catalog configured, using built-in catalog"
	LogMsgJobsScheduled              = "Background jobs scheduled"

	LogMsgShuttingDown               = "Shutting down..."
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgShuttingDownEventPublisher = "Flushing event publisher"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgStopped                    = "Shutdown complete"
)

// Error messages
const (
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLog        = "failed to subscribe event logger"
	ErrMsgFailedLoadWeights              = "failed to load stat weights"
	ErrMsgFailedLoadCatalog              = "failed to load action catalog"
)
