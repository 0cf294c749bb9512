package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got Event

	bus.Subscribe(LevelUp, func(ctx context.Context, evt Event) error {
		got = evt
		return nil
	})

	evt := NewLevelUpEvent("u1", "stats", domain.LevelUp{OldLevel: 1, NewLevel: 2, OldClass: "Novice", NewClass: "Novice"})
	require.NoError(t, bus.Publish(context.Background(), evt))

	assert.Equal(t, LevelUp, got.Type)
	assert.Equal(t, EventSchemaVersion, got.Version)
	assert.Equal(t, "u1", got.UserID())

	payload, err := DecodePayload[LevelUpPayloadV1](got.Payload)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.NewLevel)
}

func TestMemoryBus_MultipleHandlersAndNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, evt Event) error {
		count++
		return nil
	}

	bus.Subscribe(XPAwarded, handler)
	bus.Subscribe(XPAwarded, handler)

	require.NoError(t, bus.Publish(context.Background(), New(XPAwarded, XPAwardedPayloadV1{UserID: "u1"})))
	require.NoError(t, bus.Publish(context.Background(), New(DuelCreated, nil)))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(DuelCompleted, func(ctx context.Context, evt Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), New(DuelCompleted, DuelCompletedPayloadV1{}))

	assert.ErrorContains(t, err, "encountered 1 errors")
}

func TestEvent_UserID(t *testing.T) {
	winner := "w"
	assert.Equal(t, "w", New(DuelCompleted, DuelCompletedPayloadV1{ChallengerID: "c", WinnerID: &winner}).UserID())
	assert.Equal(t, "c", New(DuelCompleted, DuelCompletedPayloadV1{ChallengerID: "c"}).UserID())
	assert.Equal(t, "", New(GlobalEventStart, GlobalXPEventPayloadV1{}).UserID())
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"user_id": "u9", "from": "mage", "to": "templar"}

	payload, err := DecodePayload[ArchetypeEvolvedPayloadV1](raw)

	require.NoError(t, err)
	assert.Equal(t, domain.ArchetypeTemplar, payload.To)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 0))
}
