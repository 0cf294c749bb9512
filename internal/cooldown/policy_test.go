package cooldown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

type fakeLedger struct {
	claimed  bool
	lastUsed *time.Time
	count    int
	err      error
}

func (f *fakeLedger) HasClaimed(ctx context.Context, userID, category, action string) (bool, error) {
	return f.claimed, f.err
}

func (f *fakeLedger) LastAwardTime(ctx context.Context, userID, category, action string) (*time.Time, error) {
	return f.lastUsed, f.err
}

func (f *fakeLedger) CountAwardsOnDay(ctx context.Context, userID, category, action string, day time.Time) (int, error) {
	return f.count, f.err
}

func TestHashUserAction(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		action string
	}{
		{"normal", "user123", "course.module_complete"},
		{"empty", "", ""},
		{"symbols", "user!@#", "action$%^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := hashUserAction(tt.userID, tt.action)
			h2 := hashUserAction(tt.userID, tt.action)

			assert.Equal(t, h1, h2, "hash should be deterministic")
			assert.GreaterOrEqual(t, h1, int64(0), "hash should be positive")
		})
	}

	t.Run("collisions", func(t *testing.T) {
		assert.NotEqual(t, LockKey("user1", "chat", "engagement"), LockKey("user1", "duel", "win"))
		assert.NotEqual(t, LockKey("user1", "chat", "engagement"), LockKey("user2", "chat", "engagement"))
	})
}

func TestCheckCooldownInternal(t *testing.T) {
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	duration := 5 * time.Minute

	tests := []struct {
		name           string
		lastUsed       *time.Time
		wantOnCooldown bool
		wantRemaining  time.Duration
	}{
		{"nil lastUsed", nil, false, 0},
		{"just used", ptr(now), true, duration},
		{"mid cooldown", ptr(now.Add(-2 * time.Minute)), true, 3 * time.Minute},
		{"exactly elapsed", ptr(now.Add(-duration)), false, 0},
		{"long ago", ptr(now.Add(-time.Hour)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onCooldown, remaining := checkCooldownInternal(tt.lastUsed, duration, now)
			assert.Equal(t, tt.wantOnCooldown, onCooldown)
			assert.Equal(t, tt.wantRemaining, remaining)
		})
	}
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	day := domain.Day(now)

	tests := []struct {
		name       string
		ledger     *fakeLedger
		policy     Policy
		wantOK     bool
		wantReason domain.AwardFailureReason
		wantSlot   *int
	}{
		{"no limits", &fakeLedger{}, Policy{}, true, "", nil},
		{"one time unclaimed", &fakeLedger{}, Policy{OneTime: true}, true, "", nil},
		{"one time claimed", &fakeLedger{claimed: true}, Policy{OneTime: true}, false, domain.AwardAlreadyClaimed, nil},
		{"cooldown active", &fakeLedger{lastUsed: ptr(now.Add(-time.Minute))}, Policy{Cooldown: time.Hour}, false, domain.AwardOnCooldown, nil},
		{"cooldown elapsed", &fakeLedger{lastUsed: ptr(now.Add(-2 * time.Hour))}, Policy{Cooldown: time.Hour}, true, "", nil},
		{"under daily cap", &fakeLedger{count: 1}, Policy{MaxPerDay: 3}, true, "", intPtr(2)},
		{"at daily cap", &fakeLedger{count: 3}, Policy{MaxPerDay: 3}, false, domain.AwardDailyLimitReached, nil},
		{"claimed wins over cooldown", &fakeLedger{claimed: true, lastUsed: ptr(now)}, Policy{OneTime: true, Cooldown: time.Hour}, false, domain.AwardAlreadyClaimed, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Evaluate(ctx, tt.ledger, "u1", "chat", "engagement", tt.policy, now, day)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, d.Allowed)
			assert.Equal(t, tt.wantReason, d.Reason)
			assert.Equal(t, tt.wantSlot, d.DailySlot)
		})
	}
}

func TestEvaluate_CooldownReportsRemaining(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	ledger := &fakeLedger{lastUsed: ptr(now.Add(-90 * time.Second))}

	d, err := Evaluate(context.Background(), ledger, "u1", "chat", "engagement", Policy{Cooldown: 5 * time.Minute}, now, domain.Day(now))

	require.NoError(t, err)
	assert.Equal(t, 210*time.Second, d.Remaining)
	assert.Equal(t, int64(210), RemainingSeconds(d.Remaining))
}

func TestEvaluate_PropagatesStorageErrors(t *testing.T) {
	boom := errors.New("connection reset")
	ledger := &fakeLedger{err: boom}

	_, err := Evaluate(context.Background(), ledger, "u1", "c", "a", Policy{OneTime: true}, time.Now(), domain.Day(time.Now()))

	assert.ErrorIs(t, err, boom)
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "You can chat again in 2m 5s", FormatRemaining("chat", 125*time.Second))
	assert.Equal(t, "You can chat again in 9s", FormatRemaining("chat", 8500*time.Millisecond))
}

func ptr(t time.Time) *time.Time {
	return &t
}

func intPtr(i int) *int {
	return &i
}
