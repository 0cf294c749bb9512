package repository

import (
	"context"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

// Progression defines storage for per-user XP state and daily activity
type Progression interface {
	// GetProgression returns domain.ErrUserNotFound when the user has no row
	GetProgression(ctx context.Context, userID string) (*domain.UserProgression, error)

	// EnsureProgression returns the user's row, creating a zeroed one on first contact
	EnsureProgression(ctx context.Context, userID string) (*domain.UserProgression, error)

	// ApplyDelta atomically increments the row and returns its state before and after
	ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (before, after *domain.UserProgression, err error)

	SetFaction(ctx context.Context, userID string, faction *string) error

	// ResetProgression zeroes XP, affinities and archetype scores. The ledger is untouched.
	ResetProgression(ctx context.Context, userID string) error

	// UpsertDailyActivity merges an update into the day's record monotonically
	UpsertDailyActivity(ctx context.Context, update domain.DailyActivityUpdate) (*domain.DailyActivityRecord, error)

	// GetDailyActivity returns nil, nil when no record exists for the day
	GetDailyActivity(ctx context.Context, userID string, day time.Time) (*domain.DailyActivityRecord, error)

	// ListActiveDays returns days in [since, before) marked active, newest first
	ListActiveDays(ctx context.Context, userID string, since, before time.Time) ([]time.Time, error)

	// BeginTx opens a transaction for a submission's daily record and XP writes
	BeginTx(ctx context.Context) (ProgressionTx, error)
}

// ProgressionTx applies the writes of one stat submission together: either
// the day's record and the progression increment both land or neither does.
type ProgressionTx interface {
	Tx

	UpsertDailyActivity(ctx context.Context, update domain.DailyActivityUpdate) (*domain.DailyActivityRecord, error)
	ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (before, after *domain.UserProgression, err error)
}
