package progression

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/level"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/multiplier"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/testing/memstore"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xp"
)

type MockDuelTracker struct {
	mock.Mock
}

func (m *MockDuelTracker) TrackDuelStat(ctx context.Context, userID, statName string, value int, xpEarned, warriorDelta, mageDelta int64) error {
	args := m.Called(ctx, userID, statName, value, xpEarned, warriorDelta, mageDelta)
	return args.Error(0)
}

type MockAwarder struct {
	mock.Mock
}

func (m *MockAwarder) AwardSecondaryXP(ctx context.Context, userID, category, action string, metadata map[string]interface{}) (*domain.SecondaryAwardResult, error) {
	args := m.Called(ctx, userID, category, action, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SecondaryAwardResult), args.Error(1)
}

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	svc     Service
	store   *memstore.Store
	pub     *memstore.Publisher
	duels   *MockDuelTracker
	awarder *MockAwarder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := func() time.Time { return testNow }
	store := memstore.New()
	store.SetClock(now)
	pub := &memstore.Publisher{}
	duels := &MockDuelTracker{}
	awarder := &MockAwarder{}
	engine := multiplier.NewEngine(store, store, nil, multiplier.DefaultConfig(), multiplier.WithClock(now))

	svc := NewService(Deps{
		Repo:       store,
		Boosts:     store,
		Calculator: xp.NewCalculator(xp.DefaultWeightTable()),
		Multiplier: engine,
		Levels:     level.DefaultTable(),
		Awarder:    awarder,
		Duels:      duels,
		Publisher:  pub,
		Now:        now,
	})
	return &fixture{svc: svc, store: store, pub: pub, duels: duels, awarder: awarder}
}

func intPtr(i int) *int { return &i }

func markActive(t *testing.T, store *memstore.Store, userID string, day time.Time, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := store.UpsertDailyActivity(context.Background(), domain.DailyActivityUpdate{
			UserID: userID,
			Day:    day.AddDate(0, 0, -i),
			Active: true,
		})
		require.NoError(t, err)
	}
}

func TestSubmitStats_NewUserBaseline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.duels.On("TrackDuelStat", mock.Anything, "u1", xp.StatApproaches, 5, int64(50), int64(10), int64(0)).Return(nil)

	res, err := f.svc.SubmitStats(ctx, Submission{
		UserID: "u1",
		Stats:  map[string]int{xp.StatApproaches: 5},
		State:  intPtr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), res.BaseXP)
	assert.Equal(t, 1.0, res.Multiplier)
	assert.Equal(t, int64(50), res.FinalXP)
	assert.Equal(t, 1, res.Components.EffectiveStreak)
	assert.Equal(t, 1.0, res.DampeningFactor)
	assert.Nil(t, res.LevelUp)
	require.NotNil(t, res.ArchetypeEvolution)
	assert.Equal(t, domain.ArchetypeNone, res.ArchetypeEvolution.From)
	assert.Equal(t, domain.ArchetypeWarrior, res.ArchetypeEvolution.To)

	p, err := f.store.GetProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), p.CumulativeXP)
	assert.Equal(t, int64(10), p.WarriorAffinity)
	assert.Equal(t, 10.0, p.ArchetypeWarrior)

	assert.Len(t, f.pub.OfType(event.XPAwarded), 1)
	assert.Len(t, f.pub.OfType(event.ArchetypeEvolved), 1)
	f.duels.AssertExpectations(t)
}

func TestSubmitStats_StreakAndState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	markActive(t, f.store, "u1", domain.Day(testNow), 14)
	f.duels.On("TrackDuelStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := f.svc.SubmitStats(ctx, Submission{
		UserID: "u1",
		Stats:  map[string]int{xp.StatApproaches: 5},
		State:  intPtr(9),
	})
	require.NoError(t, err)

	assert.Equal(t, 14, res.Components.BaseStreak)
	assert.Equal(t, 15, res.Components.EffectiveStreak)
	assert.InDelta(t, 0.10, res.Components.StreakBonus, 1e-9)
	assert.InDelta(t, 0.10, res.Components.StateBonus, 1e-9)
	assert.Greater(t, res.Multiplier, 1.0)
	assert.Equal(t, multiplier.ApplyXP(50, res.Multiplier), res.FinalXP)
	assert.Equal(t, int64(60), res.FinalXP)
}

func TestSubmitStats_TemplarDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.duels.On("TrackDuelStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// 2 warrior from Approaches and 2 mage from Meditation put the day at 50%
	res, err := f.svc.SubmitStats(ctx, Submission{
		UserID: "u1",
		Stats:  map[string]int{xp.StatApproaches: 1, xp.StatMeditation: 1},
	})
	require.NoError(t, err)
	assert.InDelta(t, multiplier.DefaultTemplarDayBonus, res.Components.TemplarBonus, 1e-9)
	assert.Equal(t, int64(23), res.FinalXP)

	rec, err := f.store.GetDailyActivity(ctx, "u1", domain.Day(testNow))
	require.NoError(t, err)
	assert.Equal(t, domain.ArchetypeTemplar, rec.DominantArchetype)
}

func TestSubmitStats_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name string
		sub  Submission
		want error
	}{
		{"missing user", Submission{Stats: map[string]int{xp.StatApproaches: 1}}, domain.ErrInvalidInput},
		{"state too low", Submission{UserID: "u1", State: intPtr(0)}, domain.ErrInvalidState},
		{"state too high", Submission{UserID: "u1", State: intPtr(11)}, domain.ErrInvalidState},
		{"negative count", Submission{UserID: "u1", Stats: map[string]int{xp.StatApproaches: -1}}, domain.ErrNegativeStat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitStats(ctx, tt.sub)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := f.store.GetProgression(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSubmitStats_ZeroAndUnknownStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.SubmitStats(ctx, Submission{
		UserID: "u1",
		Stats:  map[string]int{xp.StatApproaches: 0, "Juggling": 4},
		State:  intPtr(8),
	})
	require.NoError(t, err)
	assert.Zero(t, res.BaseXP)
	assert.Zero(t, res.FinalXP)
	assert.Empty(t, res.Breakdown)
	assert.Empty(t, f.pub.OfType(event.XPAwarded))

	rec, err := f.store.GetDailyActivity(ctx, "u1", domain.Day(testNow))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.Active)
	assert.Equal(t, 8, *rec.State)
	f.duels.AssertNotCalled(t, "TrackDuelStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitStats_BoostsScaleMatchingStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.duels.On("TrackDuelStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	f.store.AddBoost(domain.MultiplierBoost{ID: uuid.New(), UserID: "u1", Multiplier: 1.5, AppliesToStats: []string{xp.StatApproaches}, ExpiresAt: testNow.Add(time.Hour)})
	f.store.AddBoost(domain.MultiplierBoost{ID: uuid.New(), UserID: "u1", Multiplier: 1.25, AppliesToStats: []string{xp.StatApproaches}, ExpiresAt: testNow.Add(time.Hour)})
	f.store.AddBoost(domain.MultiplierBoost{ID: uuid.New(), UserID: "u1", Multiplier: 3.0, ExpiresAt: testNow.Add(-time.Minute)})
	// created already expired
	f.store.AddBoost(domain.MultiplierBoost{ID: uuid.New(), UserID: "u1", Multiplier: 2.0, ExpiresAt: testNow})

	res, err := f.svc.SubmitStats(ctx, Submission{
		UserID: "u1",
		Stats:  map[string]int{xp.StatApproaches: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), res.BaseXP)
	assert.Equal(t, int64(75), res.BoostedXP)
	assert.Equal(t, int64(75), res.FinalXP)
	require.Len(t, res.Boosts, 1)
	assert.Equal(t, 1.5, res.Boosts[0].Multiplier)
}

func TestSubmitStats_LevelUpEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.duels.On("TrackDuelStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := f.svc.SubmitStats(ctx, Submission{
		UserID: "u1",
		Stats:  map[string]int{xp.StatApproaches: 10},
	})
	require.NoError(t, err)
	require.NotNil(t, res.LevelUp)
	assert.Equal(t, 1, res.LevelUp.OldLevel)
	assert.Equal(t, 2, res.LevelUp.NewLevel)
	assert.Equal(t, res.LevelUp.OldClass, res.LevelUp.NewClass)
	assert.Len(t, f.pub.OfType(event.LevelUp), 1)
}

func TestSubmitStats_DuelTrackingFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.duels.On("TrackDuelStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	res, err := f.svc.SubmitStats(ctx, Submission{
		UserID: "u1",
		Stats:  map[string]int{xp.StatApproaches: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.FinalXP)
}

// failingDeltaStore fails the progression write of every submission transaction
type failingDeltaStore struct {
	*memstore.Store
}

func (s failingDeltaStore) BeginTx(ctx context.Context) (repository.ProgressionTx, error) {
	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return failingDeltaTx{tx}, nil
}

type failingDeltaTx struct {
	repository.ProgressionTx
}

func (failingDeltaTx) ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (*domain.UserProgression, *domain.UserProgression, error) {
	return nil, nil, errors.New("connection reset by peer")
}

func TestSubmitStats_FailedDeltaLeavesDayUntouched(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return testNow }
	store := memstore.New()
	store.SetClock(now)
	duels := &MockDuelTracker{}

	svc := NewService(Deps{
		Repo:       failingDeltaStore{store},
		Boosts:     store,
		Calculator: xp.NewCalculator(xp.DefaultWeightTable()),
		Multiplier: multiplier.NewEngine(store, store, nil, multiplier.DefaultConfig(), multiplier.WithClock(now)),
		Levels:     level.DefaultTable(),
		Awarder:    &MockAwarder{},
		Duels:      duels,
		Now:        now,
	})

	tests := []struct {
		name  string
		setup func(t *testing.T)
		want  *domain.DailyActivityRecord
	}{
		{
			name: "no record before",
		},
		{
			name: "existing record is restored",
			setup: func(t *testing.T) {
				_, err := store.UpsertDailyActivity(ctx, domain.DailyActivityUpdate{
					UserID: "u1", Day: testNow, State: intPtr(3), MageAdd: 4,
				})
				require.NoError(t, err)
			},
			want: &domain.DailyActivityRecord{
				UserID: "u1", Day: domain.Day(testNow), State: intPtr(3), DayMage: 4,
				DominantArchetype: domain.ArchetypeMage,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}

			_, err := svc.SubmitStats(ctx, Submission{
				UserID: "u1",
				Stats:  map[string]int{xp.StatApproaches: 5},
				State:  intPtr(9),
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), ErrMsgApplyDelta)

			rec, err := store.GetDailyActivity(ctx, "u1", testNow)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, rec)
				return
			}
			require.NotNil(t, rec)
			assert.Equal(t, tt.want.Active, rec.Active)
			assert.Equal(t, tt.want.State, rec.State)
			assert.Equal(t, tt.want.DayWarrior, rec.DayWarrior)
			assert.Equal(t, tt.want.DayMage, rec.DayMage)
			assert.Equal(t, tt.want.DominantArchetype, rec.DominantArchetype)
		})
	}

	p, err := store.GetProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, p.CumulativeXP)
	duels.AssertNotCalled(t, "TrackDuelStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitStats_DampensVeteranDeltas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.duels.On("TrackDuelStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, _, err := f.store.ApplyDelta(ctx, "vet", domain.ProgressionDelta{XP: 25500})
	require.NoError(t, err)

	res, err := f.svc.SubmitStats(ctx, Submission{
		UserID: "vet",
		Stats:  map[string]int{xp.StatApproaches: 10},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.65, res.DampeningFactor, 1e-9)
	assert.InDelta(t, 13.0, res.ArchetypeDeltas.Warrior, 1e-9)

	p, err := f.store.GetProgression(ctx, "vet")
	require.NoError(t, err)
	assert.Equal(t, int64(20), p.WarriorAffinity, "raw affinity is not dampened")
	assert.InDelta(t, 13.0, p.ArchetypeWarrior, 1e-9)
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.duels.On("TrackDuelStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	markActive(t, f.store, "u1", domain.Day(testNow), 3)
	_, err = f.svc.SubmitStats(ctx, Submission{UserID: "u1", Stats: map[string]int{xp.StatApproaches: 5}})
	require.NoError(t, err)

	profile, err := f.svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, profile.Streak)
	assert.Equal(t, domain.ArchetypeWarrior, profile.Archetype)
	assert.Equal(t, domain.ArchetypeWarrior, profile.DampenedArchetype)
	assert.Equal(t, 1, profile.Level.Level)
	assert.NotNil(t, profile.ActiveBoosts)
	require.NotNil(t, profile.Today)
	assert.True(t, profile.Today.Active)
}

func TestRecordChatEngagement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	want := &domain.SecondaryAwardResult{Success: true, XP: 5}
	f.awarder.On("AwardSecondaryXP", mock.Anything, "u1", ChatCategory, ChatAction, mock.Anything).Return(want, nil)

	res, err := f.svc.RecordChatEngagement(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, want, res)

	rec, err := f.store.GetDailyActivity(ctx, "u1", domain.Day(testNow))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.ChatEngaged)
	assert.False(t, rec.Active)
}

func TestSetFactionAndReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.svc.SetFaction(ctx, "u1", " red "))
	p, err := f.store.GetProgression(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p.Faction)
	assert.Equal(t, "red", *p.Faction)

	require.NoError(t, f.svc.SetFaction(ctx, "u1", ""))
	p, err = f.store.GetProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p.Faction)

	_, _, err = f.store.ApplyDelta(ctx, "u1", domain.ProgressionDelta{XP: 500, WarriorAffinity: 4, ArchetypeMage: 2})
	require.NoError(t, err)
	require.NoError(t, f.svc.ResetUser(ctx, "u1"))
	p, err = f.store.GetProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, p.CumulativeXP)
	assert.Zero(t, p.WarriorAffinity)
	assert.Zero(t, p.ArchetypeMage)

	assert.ErrorIs(t, f.svc.ResetUser(ctx, "ghost"), domain.ErrUserNotFound)
}
