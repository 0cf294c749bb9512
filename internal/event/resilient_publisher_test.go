package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyBus struct {
	mu       sync.Mutex
	calls    []Event
	failWhen func(call int) bool
	delay    time.Duration
}

func (b *flakyBus) Publish(ctx context.Context, evt Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, evt)
	n := len(b.calls)
	b.mu.Unlock()

	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if b.failWhen != nil && b.failWhen(n) {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(eventType Type, handler Handler) {}

func (b *flakyBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	out, skipped, err := ReadDeadLetters(path)
	require.NoError(t, err)
	require.Zero(t, skipped)
	return out
}

func TestResilientPublisher_FirstAttemptSucceeds(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), New(XPAwarded, XPAwardedPayloadV1{UserID: "u1"}))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.count())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetriesThenSucceeds(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failWhen: func(call int) bool { return call == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), New(LevelUp, LevelUpPayloadV1{UserID: "u1"}))

	assert.Eventually(t, func() bool { return bus.count() == 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedGoesToDeadLetter(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failWhen: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 2, 10*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), New(DuelCompleted, DuelCompletedPayloadV1{ChallengerID: "c"}))

	// initial + 2 retries
	assert.Eventually(t, func() bool { return bus.count() >= 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, DuelCompleted, entries[0].Event.Type)
	assert.Equal(t, 2, entries[0].Attempts)
	assert.Equal(t, "bus unavailable", entries[0].LastError)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failWhen: func(int) bool { return true }, delay: 10 * time.Millisecond}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		shutdown:   make(chan struct{}),
	}
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	rp.deadLetter = dl

	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), New(XPAwarded, XPAwardedPayloadV1{UserID: "u"}))
	}

	// no worker running: two queued, three overflowed
	assert.Len(t, readDeadLetters(t, path), 3)
	require.NoError(t, dl.Close())
}

func TestResilientPublisher_ShutdownDrainsQueue(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failWhen: func(call int) bool { return call <= 2 }}

	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rp.PublishWithRetry(context.Background(), New(XPAwarded, XPAwardedPayloadV1{UserID: "u"}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	// 3 initial attempts + one final attempt for each of the 2 queued failures
	assert.Equal(t, 5, bus.count())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_AfterShutdownDeadLetters(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{failWhen: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 1, time.Millisecond, path)
	require.NoError(t, err)
	close(rp.shutdown)
	rp.wg.Wait()

	rp.PublishWithRetry(context.Background(), New(XPAwarded, XPAwardedPayloadV1{UserID: "u"}))

	assert.Len(t, readDeadLetters(t, path), 1)
}
