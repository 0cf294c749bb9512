package economy

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/level"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/multiplier"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/testing/memstore"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	svc   Service
	store *memstore.Store
	pub   *memstore.Publisher
	clock *clock
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	c := &clock{t: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)}
	store := memstore.New()
	store.SetClock(c.now)
	pub := &memstore.Publisher{}
	engine := multiplier.NewEngine(store, store, nil, multiplier.DefaultConfig(), multiplier.WithClock(c.now))

	opts = append([]Option{WithClock(c.now)}, opts...)
	svc := NewService(store, store, engine, level.DefaultTable(), DefaultCatalog(), pub, opts...)
	return &fixture{svc: svc, store: store, pub: pub, clock: c}
}

func TestAwardSecondaryXP_InvalidAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name     string
		category string
		action   string
	}{
		{"unknown category", "nope", "daily"},
		{"unknown action", CategoryCheckin, "weekly"},
		{"disabled category", CategoryAnalytics, ActionRiskReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.svc.AwardSecondaryXP(ctx, "u1", tt.category, tt.action, nil)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Equal(t, domain.AwardInvalidAction, res.Error)
		})
	}

	assert.Len(t, f.pub.OfType(event.SecondaryRefused), 3)
	assert.Empty(t, f.store.Ledger())
}

func TestAwardSecondaryXP_RequiresUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AwardSecondaryXP(context.Background(), "", CategoryCheckin, ActionDaily, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAwardSecondaryXP_OneTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.AwardSecondaryXP(ctx, "u1", CategoryOnboarding, ActionProfileComplete, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(150), res.XP)
	require.NotNil(t, res.LevelUp)
	assert.Equal(t, 1, res.LevelUp.OldLevel)
	assert.Equal(t, 2, res.LevelUp.NewLevel)

	// a later day does not reset a one-time claim
	f.clock.advance(72 * time.Hour)
	res, err = f.svc.AwardSecondaryXP(ctx, "u1", CategoryOnboarding, ActionProfileComplete, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.AwardAlreadyClaimed, res.Error)

	p, err := f.store.GetProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(150), p.CumulativeXP)
}

func TestAwardSecondaryXP_ZeroXPStillRecorded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.AwardSecondaryXP(ctx, "u1", CategoryCourse, ActionFirstVideo, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Zero(t, res.XP)
	assert.Nil(t, res.LevelUp)

	assert.Len(t, f.store.Ledger(), 1)
	assert.Empty(t, f.pub.OfType(event.XPAwarded))
	assert.Len(t, f.pub.OfType(event.SecondaryAwarded), 1)

	res, err = f.svc.AwardSecondaryXP(ctx, "u1", CategoryCourse, ActionFirstVideo, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AwardAlreadyClaimed, res.Error)
}

func TestAwardSecondaryXP_CooldownThenDailyCap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.AwardSecondaryXP(ctx, "u1", CategoryWingman, ActionSessionComplete, nil)
	require.NoError(t, err)
	require.True(t, res.Success)

	f.clock.advance(10 * time.Minute)
	res, err = f.svc.AwardSecondaryXP(ctx, "u1", CategoryWingman, ActionSessionComplete, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.AwardOnCooldown, res.Error)
	assert.Equal(t, int64(50*60), res.RemainingSeconds)

	f.clock.advance(time.Hour)
	res, err = f.svc.AwardSecondaryXP(ctx, "u1", CategoryWingman, ActionSessionComplete, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)

	f.clock.advance(2 * time.Hour)
	res, err = f.svc.AwardSecondaryXP(ctx, "u1", CategoryWingman, ActionSessionComplete, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.AwardDailyLimitReached, res.Error)

	// next calendar day opens the cap again
	f.clock.advance(12 * time.Hour)
	res, err = f.svc.AwardSecondaryXP(ctx, "u1", CategoryWingman, ActionSessionComplete, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestAwardSecondaryXP_DayFollowsLocation(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC-5", -5*60*60)
	f := newFixture(t, WithLocation(loc))
	f.clock.t = time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)

	res, err := f.svc.AwardSecondaryXP(ctx, "u1", CategoryCheckin, ActionDaily, nil)
	require.NoError(t, err)
	require.True(t, res.Success)

	ledger := f.store.Ledger()
	require.Len(t, ledger, 1)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), ledger[0].AwardDay)
	require.NotNil(t, ledger[0].DailySlot)
	assert.Equal(t, 1, *ledger[0].DailySlot)

	// 06:00 UTC is already March 10 locally
	f.clock.advance(4 * time.Hour)
	res, err = f.svc.AwardSecondaryXP(ctx, "u1", CategoryCheckin, ActionDaily, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestAwardSecondaryXP_Unlocks(t *testing.T) {
	tests := []struct {
		name       string
		metadata   map[string]interface{}
		wantBoost  bool
		multiplier float64
		duration   time.Duration
	}{
		{"perfect score", map[string]interface{}{MetadataKeyScore: 97.0}, true, 1.5, time.Hour},
		{"good score as int", map[string]interface{}{MetadataKeyScore: 85}, true, 1.25, 30 * time.Minute},
		{"boundary score", map[string]interface{}{MetadataKeyScore: 95}, true, 1.5, time.Hour},
		{"low score", map[string]interface{}{MetadataKeyScore: 60}, false, 0, 0},
		{"no metadata", nil, false, 0, 0},
		{"wrong type", map[string]interface{}{MetadataKeyScore: "high"}, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)

			res, err := f.svc.AwardSecondaryXP(ctx, "u1", CategoryCourse, ActionQuizPassed, tt.metadata)
			require.NoError(t, err)
			require.True(t, res.Success)

			if !tt.wantBoost {
				assert.Nil(t, res.Unlocked)
				assert.Empty(t, f.pub.OfType(event.BoostUnlocked))
				return
			}
			require.NotNil(t, res.Unlocked)
			assert.Equal(t, tt.multiplier, res.Unlocked.Multiplier)
			assert.Equal(t, f.clock.t.Add(tt.duration), res.Unlocked.ExpiresAt)

			boosts, err := f.svc.GetActiveBoosts(ctx, "u1")
			require.NoError(t, err)
			assert.Len(t, boosts, 1)
			assert.Len(t, f.pub.OfType(event.BoostUnlocked), 1)
		})
	}
}

func TestAwardSecondaryXP_GlobalEventMultiplies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.store.CreateXPEvent(ctx, &domain.GlobalXPEvent{
		ID:               uuid.New(),
		Name:             "Double XP",
		StartTime:        f.clock.t.Add(-time.Hour),
		EndTime:          f.clock.t.Add(time.Hour),
		MultiplierFactor: 2.0,
	}))

	res, err := f.svc.AwardSecondaryXP(ctx, "u1", CategoryCheckin, ActionDaily, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, int64(20), res.XP)
	assert.Equal(t, 2.0, res.Multiplier)

	awarded := f.pub.OfType(event.XPAwarded)
	require.Len(t, awarded, 1)
	payload := awarded[0].Payload.(event.XPAwardedPayloadV1)
	assert.Equal(t, int64(10), payload.BaseXP)
	assert.Equal(t, int64(20), payload.FinalXP)
}

type racingEconomy struct {
	*memstore.Store
}

func (r racingEconomy) BeginAwardTx(ctx context.Context, userID, category, action string) (repository.AwardTx, error) {
	tx, err := r.Store.BeginAwardTx(ctx, userID, category, action)
	if err != nil {
		return nil, err
	}
	return racingTx{AwardTx: tx}, nil
}

// racingTx simulates a concurrent writer winning the unique index
type racingTx struct {
	repository.AwardTx
}

func (racingTx) InsertLedgerEntry(ctx context.Context, entry *domain.AwardLedgerEntry) error {
	return domain.ErrDuplicateAward
}

func TestAwardSecondaryXP_LedgerRaceMapsToRefusal(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)}
	store := memstore.New()
	svc := NewService(racingEconomy{store}, store, nil, nil, DefaultCatalog(), nil, WithClock(c.now))

	res, err := svc.AwardSecondaryXP(ctx, "u1", CategoryOnboarding, ActionIntroPost, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AwardAlreadyClaimed, res.Error)

	res, err = svc.AwardSecondaryXP(ctx, "u1", CategoryCheckin, ActionDaily, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AwardDailyLimitReached, res.Error)

	p, err := store.GetProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, p.CumulativeXP)
}

func TestAwardSecondaryXP_ReferenceIsPaidOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := map[string]interface{}{domain.MetadataKeyReference: "duel-1"}
	second := map[string]interface{}{domain.MetadataKeyReference: "duel-2"}

	res, err := f.svc.AwardSecondaryXP(ctx, "u1", CategoryDuel, ActionWin, first)
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = f.svc.AwardSecondaryXP(ctx, "u1", CategoryDuel, ActionWin, first)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.AwardAlreadyClaimed, res.Error)

	res, err = f.svc.AwardSecondaryXP(ctx, "u1", CategoryDuel, ActionWin, second)
	require.NoError(t, err)
	assert.True(t, res.Success, "a new reference is a new award")

	ledger := f.store.Ledger()
	require.Len(t, ledger, 2)
	require.NotNil(t, ledger[0].Reference)
	assert.Equal(t, "duel-1", *ledger[0].Reference)

	p, err := f.store.GetProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(400), p.CumulativeXP)
}

func TestGetAwardHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		res, err := f.svc.AwardSecondaryXP(ctx, "u1", CategoryCourse, ActionModuleComplete, nil)
		require.NoError(t, err)
		require.True(t, res.Success)
	}
	res, err := f.svc.AwardSecondaryXP(ctx, "u1", CategoryCourse, ActionModuleComplete, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AwardDailyLimitReached, res.Error)

	history, err := f.svc.GetAwardHistory(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	history, err = f.svc.GetAwardHistory(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, history, 3)
	for i, e := range history {
		require.NotNil(t, e.DailySlot)
		assert.Equal(t, 3-i, *e.DailySlot)
	}
}

func TestPurgeExpiredBoosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.store.AddBoost(domain.MultiplierBoost{ID: uuid.New(), UserID: "u1", Multiplier: 1.5, ExpiresAt: f.clock.t.Add(-48 * time.Hour)})
	f.store.AddBoost(domain.MultiplierBoost{ID: uuid.New(), UserID: "u1", Multiplier: 1.5, ExpiresAt: f.clock.t.Add(-time.Hour)})
	f.store.AddBoost(domain.MultiplierBoost{ID: uuid.New(), UserID: "u1", Multiplier: 1.5, ExpiresAt: f.clock.t.Add(time.Hour)})

	n, err := f.svc.PurgeExpiredBoosts(ctx, BoostRetention)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	active, err := f.svc.GetActiveBoosts(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
