package repository

import (
	"context"
	"time"
)

// EventLog is the audit store for engine events
type EventLog interface {
	// LogEvent appends one event. userID is nil for events without an owner,
	// such as global XP event announcements.
	LogEvent(ctx context.Context, eventType string, userID *string, payload map[string]interface{}) error
	GetEventsByUser(ctx context.Context, userID string, limit int) ([]EventLogEntry, error)
	// CleanupOldEvents deletes rows older than retentionDays and reports how many
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

// EventLogEntry is one persisted event, newest first when listed
type EventLogEntry struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	UserID    *string                `json:"user_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}
