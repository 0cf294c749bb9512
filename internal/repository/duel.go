package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

// Duel defines the interface for duel data access.
// State transitions are conditional writes on the current status.
type Duel interface {
	CreateDuel(ctx context.Context, duel *domain.Duel) error
	GetDuel(ctx context.Context, id uuid.UUID) (*domain.Duel, error)

	// GetOpenDuelForUser returns the user's pending or active duel, or nil
	GetOpenDuelForUser(ctx context.Context, userID string) (*domain.Duel, error)

	// GetActiveDuelForUser returns the user's active duel, or nil
	GetActiveDuelForUser(ctx context.Context, userID string) (*domain.Duel, error)

	// AcceptDuel returns domain.ErrDuelNotPending unless the duel was pending
	AcceptDuel(ctx context.Context, id uuid.UUID, acceptedAt, expiresAt time.Time) error

	// DeclineDuel returns domain.ErrDuelNotPending unless the duel was pending
	DeclineDuel(ctx context.Context, id uuid.UUID) error

	// SetPenalty sets the participant's sticky flag and reports whether it was newly set
	SetPenalty(ctx context.Context, id uuid.UUID, userID string) (bool, error)

	RecordDuelStat(ctx context.Context, stat *domain.DuelStat) error

	// CompleteDuel stores final snapshots, winner and the bonus-pending flag.
	// Returns domain.ErrDuelNotActive unless the duel was still active.
	CompleteDuel(ctx context.Context, duel *domain.Duel) error

	// MarkBonusPaid clears the bonus-pending flag once every bonus is settled
	MarkBonusPaid(ctx context.Context, id uuid.UUID) error

	// ListPendingBonusDuels returns completed duels whose bonuses are still owed
	ListPendingBonusDuels(ctx context.Context) ([]domain.Duel, error)

	ListExpiredActiveDuels(ctx context.Context, now time.Time) ([]domain.Duel, error)
	ListStalePendingDuels(ctx context.Context, createdBefore time.Time) ([]domain.Duel, error)
}
