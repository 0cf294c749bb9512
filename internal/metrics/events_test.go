package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestEventMetricsCollector(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	xpBefore := counterValue(t, XPAwarded.WithLabelValues("stat_submission"))
	refusedBefore := counterValue(t, SecondaryAwards.WithLabelValues("chat", string(domain.AwardOnCooldown)))
	drawsBefore := counterValue(t, DuelsCompleted.WithLabelValues(string(domain.DuelOutcomeDraw), "false"))

	require.NoError(t, bus.Publish(ctx, event.New(event.XPAwarded, event.XPAwardedPayloadV1{UserID: "u1", Source: "stat_submission", FinalXP: 60, Multiplier: 1.2})))
	require.NoError(t, bus.Publish(ctx, event.New(event.SecondaryRefused, event.SecondaryAwardPayloadV1{UserID: "u1", Category: "chat", Action: "engagement", Reason: domain.AwardOnCooldown})))
	// payloads read back from JSON arrive as maps
	require.NoError(t, bus.Publish(ctx, event.New(event.DuelCompleted, map[string]interface{}{"kind": "draw", "perfect_balance": false})))

	assert.Equal(t, xpBefore+60, counterValue(t, XPAwarded.WithLabelValues("stat_submission")))
	assert.Equal(t, refusedBefore+1, counterValue(t, SecondaryAwards.WithLabelValues("chat", string(domain.AwardOnCooldown))))
	assert.Equal(t, drawsBefore+1, counterValue(t, DuelsCompleted.WithLabelValues(string(domain.DuelOutcomeDraw), "false")))
}

func TestRecordSweep(t *testing.T) {
	before := counterValue(t, SweepRuns.WithLabelValues("duel_sweep", ResultError))
	RecordSweep("duel_sweep", assert.AnError)
	assert.Equal(t, before+1, counterValue(t, SweepRuns.WithLabelValues("duel_sweep", ResultError)))
}
