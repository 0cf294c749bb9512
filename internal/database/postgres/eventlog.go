package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/database/generated"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

// EventLogRepository implements repository.EventLog
type EventLogRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

var _ repository.EventLog = (*EventLogRepository)(nil)

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{
		db: db,
		q:  generated.New(db),
	}
}

// LogEvent stores an event in the database
func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, userID *string, payload map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLogEvent, err)
	}

	err = r.q.LogEvent(ctx, generated.LogEventParams{
		EventType: eventType,
		UserID:    userID,
		Payload:   payloadJSON,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLogEvent, err)
	}
	return nil
}

// GetEventsByUser retrieves events for a specific user, newest first
func (r *EventLogRepository) GetEventsByUser(ctx context.Context, userID string, limit int) ([]repository.EventLogEntry, error) {
	rows, err := r.q.GetEventsByUser(ctx, generated.GetEventsByUserParams{
		UserID:   userID,
		RowLimit: rowLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryEvents, err)
	}

	entries := make([]repository.EventLogEntry, 0, len(rows))
	for _, row := range rows {
		e := repository.EventLogEntry{
			ID:        row.ID,
			EventType: row.EventType,
			UserID:    row.UserID,
			CreatedAt: row.CreatedAt,
		}
		if err := json.Unmarshal(row.Payload, &e.Payload); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgQueryEvents, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// CleanupOldEvents removes events older than the specified number of days
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	n, err := r.q.CleanupOldEvents(ctx, int32(retentionDays))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgCleanupEvents, err)
	}
	return n, nil
}
