package sse

import (
	"context"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// Subscriber forwards every engine event from the bus to the hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a bus-to-hub bridge
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Register subscribes to every engine event type
func (s *Subscriber) Register(bus event.Bus) {
	for _, t := range event.AllTypes() {
		bus.Subscribe(t, s.HandleEvent)
	}
	logger.Info(LogMsgSubscriberReady, "types", len(event.AllTypes()))
}

// HandleEvent broadcasts evt. Stream delivery is best effort, so a full
// buffer is logged and never fails the publisher.
func (s *Subscriber) HandleEvent(ctx context.Context, evt event.Event) error {
	if !s.hub.Broadcast(string(evt.Type), evt.UserID(), evt.Payload) {
		logger.FromContext(ctx).Warn(LogMsgEventDropped, "event_type", evt.Type, "dropped_total", s.hub.Dropped())
	}
	return nil
}
