package bootstrap

import (
	"context"
	"fmt"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/discord"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/eventlog"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/metrics"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/sse"
)

// RegisterEventHandlers attaches every bus subscriber. announcer may be nil
// when Discord is not configured.
func RegisterEventHandlers(ctx context.Context, bus event.Bus, eventLog eventlog.Service, stream *sse.Hub, announcer *discord.Announcer) error {
	log := logger.FromContext(ctx)

	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	log.Info(LogMsgMetricsCollectorRegistered)

	if err := eventLog.Subscribe(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLog, err)
	}
	log.Info(LogMsgEventLoggerInitialized)

	if stream != nil {
		sse.NewSubscriber(stream).Register(bus)
	}

	if announcer != nil {
		announcer.Register(bus)
		log.Info(LogMsgAnnouncerRegistered, "types", len(discord.AnnouncedTypes()))
	}

	return nil
}
