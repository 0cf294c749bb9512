package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

func TestProgressionRepository_EnsureAndApplyDelta(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewProgressionRepository(pool)

	_, err := repo.GetProgression(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	p, err := repo.EnsureProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.CumulativeXP)

	p, err = repo.EnsureProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)

	before, after, err := repo.ApplyDelta(ctx, "u1", domain.ProgressionDelta{
		XP: 120, WarriorAffinity: 30, MageAffinity: 10, ArchetypeWarrior: 12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), before.CumulativeXP)
	assert.Equal(t, int64(120), after.CumulativeXP)
	assert.Equal(t, int64(30), after.WarriorAffinity)
	assert.InDelta(t, 12.5, after.ArchetypeWarrior, 1e-9)

	before, after, err = repo.ApplyDelta(ctx, "u1", domain.ProgressionDelta{XP: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(120), before.CumulativeXP)
	assert.Equal(t, int64(125), after.CumulativeXP)

	// First contact through a delta creates the row
	_, after, err = repo.ApplyDelta(ctx, "u2", domain.ProgressionDelta{XP: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), after.CumulativeXP)
}

func TestProgressionRepository_FactionAndReset(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewProgressionRepository(pool)

	faction := "night_owls"
	require.NoError(t, repo.SetFaction(ctx, "u1", &faction))
	_, _, err := repo.ApplyDelta(ctx, "u1", domain.ProgressionDelta{XP: 500, MageAffinity: 40, ArchetypeMage: 3})
	require.NoError(t, err)

	require.NoError(t, repo.ResetProgression(ctx, "u1"))
	p, err := repo.GetProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.CumulativeXP)
	assert.Equal(t, int64(0), p.MageAffinity)
	assert.Zero(t, p.ArchetypeMage)
	assert.Equal(t, "night_owls", p.FactionName())

	require.NoError(t, repo.SetFaction(ctx, "u1", nil))
	p, err = repo.GetProgression(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p.Faction)

	assert.ErrorIs(t, repo.ResetProgression(ctx, "ghost"), domain.ErrUserNotFound)
}

func TestProgressionRepository_UpsertDailyActivityIsMonotone(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewProgressionRepository(pool)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	state := 8

	rec, err := repo.UpsertDailyActivity(ctx, domain.DailyActivityUpdate{
		UserID: "u1", Day: day, Active: true, State: &state, WarriorAdd: 50, MageAdd: 10,
	})
	require.NoError(t, err)
	assert.True(t, rec.Active)
	assert.Equal(t, domain.ArchetypeWarrior, rec.DominantArchetype)
	require.NotNil(t, rec.State)
	assert.Equal(t, 8, *rec.State)

	// A chat-only update neither clears active nor the state
	rec, err = repo.UpsertDailyActivity(ctx, domain.DailyActivityUpdate{UserID: "u1", Day: day, ChatEngaged: true, MageAdd: 40})
	require.NoError(t, err)
	assert.True(t, rec.Active)
	assert.True(t, rec.ChatEngaged)
	require.NotNil(t, rec.State)
	assert.Equal(t, 8, *rec.State)
	assert.Equal(t, int64(50), rec.DayWarrior)
	assert.Equal(t, int64(50), rec.DayMage)
	assert.Equal(t, domain.ArchetypeTemplar, rec.DominantArchetype)
	assert.True(t, rec.Day.Equal(day))

	got, err := repo.GetDailyActivity(ctx, "u1", day)
	require.NoError(t, err)
	assert.Equal(t, rec.DayMage, got.DayMage)

	none, err := repo.GetDailyActivity(ctx, "u1", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestProgressionRepository_ListActiveDays(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewProgressionRepository(pool)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, offset := range []int{-1, -2, -4} {
		_, err := repo.UpsertDailyActivity(ctx, domain.DailyActivityUpdate{UserID: "u1", Day: today.AddDate(0, 0, offset), Active: true})
		require.NoError(t, err)
	}
	// Chat-only days are not active
	_, err := repo.UpsertDailyActivity(ctx, domain.DailyActivityUpdate{UserID: "u1", Day: today.AddDate(0, 0, -3), ChatEngaged: true})
	require.NoError(t, err)
	_, err = repo.UpsertDailyActivity(ctx, domain.DailyActivityUpdate{UserID: "u1", Day: today, Active: true})
	require.NoError(t, err)

	days, err := repo.ListActiveDays(ctx, "u1", today.AddDate(0, 0, -30), today)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.True(t, days[0].Equal(today.AddDate(0, 0, -1)))
	assert.True(t, days[2].Equal(today.AddDate(0, 0, -4)))
}

func TestProgressionRepository_SubmissionTx(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewProgressionRepository(pool)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		commit   bool
		wantXP   int64
		wantRows bool
	}{
		{name: "rollback discards both writes", commit: false},
		{name: "commit keeps both writes", commit: true, wantXP: 40, wantRows: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := "u-" + tt.name
			tx, err := repo.BeginTx(ctx)
			require.NoError(t, err)
			defer repository.SafeRollback(ctx, tx)

			rec, err := tx.UpsertDailyActivity(ctx, domain.DailyActivityUpdate{UserID: userID, Day: day, Active: true, WarriorAdd: 40})
			require.NoError(t, err)
			assert.Equal(t, int64(40), rec.DayWarrior)
			_, after, err := tx.ApplyDelta(ctx, userID, domain.ProgressionDelta{XP: 40, WarriorAffinity: 40})
			require.NoError(t, err)
			assert.Equal(t, int64(40), after.CumulativeXP)

			if tt.commit {
				require.NoError(t, tx.Commit(ctx))
			} else {
				require.NoError(t, tx.Rollback(ctx))
			}

			got, err := repo.GetDailyActivity(ctx, userID, day)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, got != nil)

			p, err := repo.GetProgression(ctx, userID)
			if !tt.wantRows {
				assert.ErrorIs(t, err, domain.ErrUserNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantXP, p.CumulativeXP)
		})
	}
}
