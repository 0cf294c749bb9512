package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/database/generated"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

// DuelRepository implements repository.Duel
type DuelRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

var _ repository.Duel = (*DuelRepository)(nil)

// NewDuelRepository creates a new PostgreSQL duel repository
func NewDuelRepository(db *pgxpool.Pool) *DuelRepository {
	return &DuelRepository{
		db: db,
		q:  generated.New(db),
	}
}

// finalSnapshot rebuilds a participant's final snapshot from its nullable columns
func finalSnapshot(xp, warrior, mage *int64) *domain.DuelSnapshot {
	if xp == nil {
		return nil
	}
	s := domain.DuelSnapshot{XP: *xp}
	if warrior != nil {
		s.Warrior = *warrior
	}
	if mage != nil {
		s.Mage = *mage
	}
	return &s
}

func snapshotArgs(s *domain.DuelSnapshot) (xp, warrior, mage *int64) {
	if s == nil {
		return nil, nil, nil
	}
	return &s.XP, &s.Warrior, &s.Mage
}

func toDuel(row generated.Duel) *domain.Duel {
	return &domain.Duel{
		ID:           row.ID,
		ChallengerID: row.ChallengerID,
		OpponentID:   row.OpponentID,
		Status:       domain.DuelStatus(row.Status),
		CreatedAt:    row.CreatedAt,
		AcceptedAt:   row.AcceptedAt,
		ExpiresAt:    row.ExpiresAt,
		CompletedAt:  row.CompletedAt,
		ChallengerStart: domain.DuelSnapshot{
			XP:      row.ChallengerStartXP,
			Warrior: row.ChallengerStartWarrior,
			Mage:    row.ChallengerStartMage,
		},
		OpponentStart: domain.DuelSnapshot{
			XP:      row.OpponentStartXP,
			Warrior: row.OpponentStartWarrior,
			Mage:    row.OpponentStartMage,
		},
		ChallengerFinal:     finalSnapshot(row.ChallengerFinalXP, row.ChallengerFinalWarrior, row.ChallengerFinalMage),
		OpponentFinal:       finalSnapshot(row.OpponentFinalXP, row.OpponentFinalWarrior, row.OpponentFinalMage),
		ChallengerPenalized: row.ChallengerPenalized,
		OpponentPenalized:   row.OpponentPenalized,
		WinnerID:            row.WinnerID,
		BonusPending:        row.BonusPending,
	}
}

func toDuels(rows []generated.Duel) []domain.Duel {
	duels := make([]domain.Duel, len(rows))
	for i, row := range rows {
		duels[i] = *toDuel(row)
	}
	return duels
}

// CreateDuel inserts a pending duel unless either participant already has an
// open one. Both users' locks are taken in a fixed order.
func (r *DuelRepository) CreateDuel(ctx context.Context, d *domain.Duel) error {
	h, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, h)

	first, second := d.ChallengerID, d.OpponentID
	if second < first {
		first, second = second, first
	}
	for _, u := range []string{first, second} {
		if err := h.q.LockDuelParticipant(ctx, duelLockPrefix+u); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgAcquireLock, err)
		}
	}

	open, err := h.q.HasOpenDuel(ctx, generated.HasOpenDuelParams{FirstID: d.ChallengerID, SecondID: d.OpponentID})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueryDuel, err)
	}
	if open {
		return domain.ErrDuelAlreadyActive
	}

	err = h.q.InsertDuel(ctx, generated.InsertDuelParams{
		ID:                     d.ID,
		ChallengerID:           d.ChallengerID,
		OpponentID:             d.OpponentID,
		Status:                 string(d.Status),
		CreatedAt:              d.CreatedAt,
		ChallengerStartXP:      d.ChallengerStart.XP,
		ChallengerStartWarrior: d.ChallengerStart.Warrior,
		ChallengerStartMage:    d.ChallengerStart.Mage,
		OpponentStartXP:        d.OpponentStart.XP,
		OpponentStartWarrior:   d.OpponentStart.Warrior,
		OpponentStartMage:      d.OpponentStart.Mage,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertDuel, err)
	}

	return h.Commit(ctx)
}

// GetDuel returns domain.ErrDuelNotFound for an unknown id
func (r *DuelRepository) GetDuel(ctx context.Context, id uuid.UUID) (*domain.Duel, error) {
	row, err := r.q.GetDuel(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDuelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryDuel, err)
	}
	return toDuel(row), nil
}

func optionalDuel(row generated.Duel, err error) (*domain.Duel, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryDuel, err)
	}
	return toDuel(row), nil
}

// GetOpenDuelForUser returns the user's pending or active duel, or nil
func (r *DuelRepository) GetOpenDuelForUser(ctx context.Context, userID string) (*domain.Duel, error) {
	return optionalDuel(r.q.GetOpenDuelForUser(ctx, userID))
}

// GetActiveDuelForUser returns the user's active duel, or nil
func (r *DuelRepository) GetActiveDuelForUser(ctx context.Context, userID string) (*domain.Duel, error) {
	return optionalDuel(r.q.GetActiveDuelForUser(ctx, userID))
}

// transitionFailed tells a missing duel apart from one in the wrong state
func (r *DuelRepository) transitionFailed(ctx context.Context, id uuid.UUID, wrongState error) error {
	exists, err := r.q.DuelExists(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueryDuel, err)
	}
	if !exists {
		return domain.ErrDuelNotFound
	}
	return wrongState
}

// AcceptDuel activates a pending duel
func (r *DuelRepository) AcceptDuel(ctx context.Context, id uuid.UUID, acceptedAt, expiresAt time.Time) error {
	n, err := r.q.AcceptDuel(ctx, generated.AcceptDuelParams{
		AcceptedAt: &acceptedAt,
		ExpiresAt:  &expiresAt,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateDuel, err)
	}
	if n == 0 {
		return r.transitionFailed(ctx, id, domain.ErrDuelNotPending)
	}
	return nil
}

// DeclineDuel closes a pending duel
func (r *DuelRepository) DeclineDuel(ctx context.Context, id uuid.UUID) error {
	n, err := r.q.DeclineDuel(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateDuel, err)
	}
	if n == 0 {
		return r.transitionFailed(ctx, id, domain.ErrDuelNotPending)
	}
	return nil
}

// SetPenalty flips the participant's sticky flag. Only the caller that
// changed it from false gets true back.
func (r *DuelRepository) SetPenalty(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	n, err := r.q.SetDuelPenalty(ctx, generated.SetDuelPenaltyParams{UserID: userID, ID: id})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgUpdateDuel, err)
	}
	if n > 0 {
		return true, nil
	}

	d, err := r.GetDuel(ctx, id)
	if err != nil {
		return false, err
	}
	if !d.IsParticipant(userID) {
		return false, domain.ErrNotDuelParticipant
	}
	return false, nil
}

// RecordDuelStat appends one tracked submission
func (r *DuelRepository) RecordDuelStat(ctx context.Context, s *domain.DuelStat) error {
	err := r.q.RecordDuelStat(ctx, generated.RecordDuelStatParams{
		DuelID:       s.DuelID,
		UserID:       s.UserID,
		StatName:     s.StatName,
		Value:        int32(s.Value),
		XPEarned:     s.XPEarned,
		WarriorDelta: s.WarriorDelta,
		MageDelta:    s.MageDelta,
		Balanced:     s.Balanced,
		RecordedAt:   s.RecordedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertDuelStat, err)
	}
	return nil
}

// CompleteDuel stores the final snapshots, winner and bonus flag of a
// still-active duel
func (r *DuelRepository) CompleteDuel(ctx context.Context, d *domain.Duel) error {
	cxp, cw, cm := snapshotArgs(d.ChallengerFinal)
	oxp, ow, om := snapshotArgs(d.OpponentFinal)
	n, err := r.q.CompleteDuel(ctx, generated.CompleteDuelParams{
		ID:                     d.ID,
		CompletedAt:            d.CompletedAt,
		ChallengerFinalXP:      cxp,
		ChallengerFinalWarrior: cw,
		ChallengerFinalMage:    cm,
		OpponentFinalXP:        oxp,
		OpponentFinalWarrior:   ow,
		OpponentFinalMage:      om,
		WinnerID:               d.WinnerID,
		BonusPending:           d.BonusPending,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateDuel, err)
	}
	if n == 0 {
		return r.transitionFailed(ctx, d.ID, domain.ErrDuelNotActive)
	}
	return nil
}

// MarkBonusPaid clears the bonus flag. Clearing an already clear flag is a no-op.
func (r *DuelRepository) MarkBonusPaid(ctx context.Context, id uuid.UUID) error {
	n, err := r.q.MarkBonusPaid(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateDuel, err)
	}
	if n == 0 {
		return r.transitionFailed(ctx, id, nil)
	}
	return nil
}

// ListPendingBonusDuels returns completed duels that still owe bonuses
func (r *DuelRepository) ListPendingBonusDuels(ctx context.Context) ([]domain.Duel, error) {
	rows, err := r.q.ListPendingBonusDuels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryDuel, err)
	}
	return toDuels(rows), nil
}

// ListExpiredActiveDuels returns active duels whose window has closed
func (r *DuelRepository) ListExpiredActiveDuels(ctx context.Context, now time.Time) ([]domain.Duel, error) {
	rows, err := r.q.ListExpiredActiveDuels(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryDuel, err)
	}
	return toDuels(rows), nil
}

// ListStalePendingDuels returns challenges nobody answered in time
func (r *DuelRepository) ListStalePendingDuels(ctx context.Context, createdBefore time.Time) ([]domain.Duel, error) {
	rows, err := r.q.ListStalePendingDuels(ctx, createdBefore)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryDuel, err)
	}
	return toDuels(rows), nil
}
