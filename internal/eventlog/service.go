// Package eventlog persists every engine event for audit.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all events
	Subscribe(bus event.Bus) error

	// GetUserEvents returns a user's logged events, newest first
	GetUserEvents(ctx context.Context, userID string, limit int) ([]repository.EventLogEntry, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo repository.EventLog
}

// NewService creates a new event logging service
func NewService(repo repository.EventLog) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range event.AllTypes() {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent processes and logs events to the database
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := toMap(evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadEncodeFailed, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}
	payload[PayloadKeyVersion] = evt.Version

	var userID *string
	if uid := evt.UserID(); uid != "" {
		userID = &uid
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, payload); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldUserID, evt.UserID())
	return nil
}

// toMap flattens a typed payload into its JSON object form
func toMap(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		out := make(map[string]interface{}, len(m)+1)
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("payload is not an object: %w", err)
	}
	return out, nil
}

func (s *service) GetUserEvents(ctx context.Context, userID string, limit int) ([]repository.EventLogEntry, error) {
	return s.repo.GetEventsByUser(ctx, userID, limit)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
