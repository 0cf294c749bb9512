package eventlog

// Log messages - service events
const (
	LogMsgPayloadEncodeFailed = "Event payload could not be encoded, skipping log"
	LogMsgFailedToLogEvent    = "Failed to log event to database"
	LogMsgEventLogged         = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobDisabled  = "Event log retention disabled, skipping cleanup"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Error messages
const (
	ErrMsgCleanupFailed = "event log cleanup failed"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldUserID        = "user_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retention_days"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deleted_count"
)

// Payload keys added alongside the event body
const (
	PayloadKeyVersion = "_version"
)
