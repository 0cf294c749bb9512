package metrics

import (
	"context"
	"strconv"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes() {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := e.record(evt); err != nil {
		logger.FromContext(ctx).Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) record(evt event.Event) error {
	switch evt.Type {
	case event.XPAwarded:
		p, err := event.DecodePayload[event.XPAwardedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		XPAwarded.WithLabelValues(p.Source).Add(float64(p.FinalXP))
		MultiplierApplied.WithLabelValues(p.Source).Observe(p.Multiplier)

	case event.LevelUp:
		LevelUps.Inc()

	case event.ArchetypeEvolved:
		p, err := event.DecodePayload[event.ArchetypeEvolvedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		ArchetypeEvolutions.WithLabelValues(string(p.To)).Inc()

	case event.SecondaryAwarded:
		p, err := event.DecodePayload[event.SecondaryAwardPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		SecondaryAwards.WithLabelValues(p.Category, OutcomeGranted).Inc()

	case event.SecondaryRefused:
		p, err := event.DecodePayload[event.SecondaryAwardPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		SecondaryAwards.WithLabelValues(p.Category, string(p.Reason)).Inc()

	case event.BoostUnlocked:
		BoostsUnlocked.Inc()

	case event.DuelCreated:
		DuelsCreated.Inc()

	case event.DuelPenalized:
		DuelPenalties.Inc()

	case event.DuelCompleted:
		p, err := event.DecodePayload[event.DuelCompletedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		DuelsCompleted.WithLabelValues(string(p.Kind), strconv.FormatBool(p.PerfectBalance)).Inc()

	case event.GlobalEventStart:
		XPEventTransitions.WithLabelValues(PhaseStarted).Inc()

	case event.GlobalEventEnded:
		XPEventTransitions.WithLabelValues(PhaseEnded).Inc()
	}
	return nil
}

// RecordSweep counts one run of a periodic job
func RecordSweep(job string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	SweepRuns.WithLabelValues(job, result).Inc()
}
