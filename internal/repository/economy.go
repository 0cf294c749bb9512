package repository

import (
	"context"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

// Economy defines storage for the award ledger and multiplier boosts
type Economy interface {
	// BeginAwardTx opens a transaction serialized per (user, category, action)
	BeginAwardTx(ctx context.Context, userID, category, action string) (AwardTx, error)

	ListAwards(ctx context.Context, userID string, limit int) ([]domain.AwardLedgerEntry, error)
	ListActiveBoosts(ctx context.Context, userID string, at time.Time) ([]domain.MultiplierBoost, error)

	// DeleteExpiredBoosts removes boosts that expired before cutoff
	DeleteExpiredBoosts(ctx context.Context, cutoff time.Time) (int64, error)
}

// AwardTx is the transactional unit of one secondary award: ledger reads for
// the limit checks, then the ledger write, XP write and boost write together.
type AwardTx interface {
	Tx

	HasClaimed(ctx context.Context, userID, category, action string) (bool, error)
	LastAwardTime(ctx context.Context, userID, category, action string) (*time.Time, error)
	CountAwardsOnDay(ctx context.Context, userID, category, action string, day time.Time) (int, error)

	// InsertLedgerEntry returns domain.ErrDuplicateAward when a uniqueness constraint rejects the row
	InsertLedgerEntry(ctx context.Context, entry *domain.AwardLedgerEntry) error
	ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (before, after *domain.UserProgression, err error)
	CreateBoost(ctx context.Context, boost *domain.MultiplierBoost) error
}
