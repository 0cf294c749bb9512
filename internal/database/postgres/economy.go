package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/cooldown"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/database/generated"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

// EconomyRepository implements repository.Economy
type EconomyRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

var _ repository.Economy = (*EconomyRepository)(nil)

// NewEconomyRepository creates a new PostgreSQL economy repository
func NewEconomyRepository(db *pgxpool.Pool) *EconomyRepository {
	return &EconomyRepository{
		db: db,
		q:  generated.New(db),
	}
}

// BeginAwardTx opens a transaction holding the advisory lock of the user's
// action, so concurrent awards of the same action evaluate limits in turn.
func (r *EconomyRepository) BeginAwardTx(ctx context.Context, userID, category, action string) (repository.AwardTx, error) {
	h, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return nil, err
	}

	if _, err := h.tx.Exec(ctx, cooldown.SQLAdvisoryLock, cooldown.LockKey(userID, category, action)); err != nil {
		repository.SafeRollback(ctx, h.tx)
		return nil, fmt.Errorf("%s: %w", ErrMsgAcquireLock, err)
	}

	return &awardTx{txHelper: h}, nil
}

func toLedgerEntry(row generated.AwardLedger) (domain.AwardLedgerEntry, error) {
	e := domain.AwardLedgerEntry{
		ID:        row.ID,
		UserID:    row.UserID,
		Category:  row.Category,
		Action:    row.Action,
		XPEarned:  row.XPEarned,
		AwardDay:  domain.Day(row.AwardDay),
		DailySlot: intPtr(row.DailySlot),
		OneTime:   row.OneTime,
		Reference: row.Reference,
		CreatedAt: row.CreatedAt,
	}
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &e.Metadata); err != nil {
			return e, err
		}
	}
	return e, nil
}

func toBoost(row generated.MultiplierBoost) domain.MultiplierBoost {
	return domain.MultiplierBoost{
		ID:             row.ID,
		UserID:         row.UserID,
		Multiplier:     row.Multiplier,
		AppliesToStats: row.AppliesTo,
		ExpiresAt:      row.ExpiresAt,
		Source:         row.Source,
		CreatedAt:      row.CreatedAt,
	}
}

// ListAwards reads the user's ledger newest first
func (r *EconomyRepository) ListAwards(ctx context.Context, userID string, limit int) ([]domain.AwardLedgerEntry, error) {
	rows, err := r.q.ListAwards(ctx, generated.ListAwardsParams{UserID: userID, RowLimit: rowLimit(limit)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryLedger, err)
	}

	entries := make([]domain.AwardLedgerEntry, 0, len(rows))
	for _, row := range rows {
		e, err := toLedgerEntry(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgQueryLedger, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ListActiveBoosts returns boosts that have not expired at the given time
func (r *EconomyRepository) ListActiveBoosts(ctx context.Context, userID string, at time.Time) ([]domain.MultiplierBoost, error) {
	rows, err := r.q.ListActiveBoosts(ctx, generated.ListActiveBoostsParams{UserID: userID, At: at})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryBoosts, err)
	}

	boosts := make([]domain.MultiplierBoost, len(rows))
	for i, row := range rows {
		boosts[i] = toBoost(row)
	}
	return boosts, nil
}

// DeleteExpiredBoosts removes boosts that expired before cutoff
func (r *EconomyRepository) DeleteExpiredBoosts(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.q.DeleteExpiredBoosts(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgDeleteBoosts, err)
	}
	return n, nil
}

// awardTx implements repository.AwardTx on a pgx transaction
type awardTx struct {
	*txHelper
}

func (t *awardTx) HasClaimed(ctx context.Context, userID, category, action string) (bool, error) {
	claimed, err := t.q.HasClaimed(ctx, generated.HasClaimedParams{
		UserID:   userID,
		Category: category,
		Action:   action,
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgQueryLedger, err)
	}
	return claimed, nil
}

func (t *awardTx) LastAwardTime(ctx context.Context, userID, category, action string) (*time.Time, error) {
	last, err := t.q.LastAwardTime(ctx, generated.LastAwardTimeParams{
		UserID:   userID,
		Category: category,
		Action:   action,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryLedger, err)
	}
	return &last, nil
}

func (t *awardTx) CountAwardsOnDay(ctx context.Context, userID, category, action string, day time.Time) (int, error) {
	n, err := t.q.CountAwardsOnDay(ctx, generated.CountAwardsOnDayParams{
		UserID:   userID,
		Category: category,
		Action:   action,
		AwardDay: domain.Day(day),
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgQueryLedger, err)
	}
	return int(n), nil
}

// InsertLedgerEntry maps a unique index violation to domain.ErrDuplicateAward.
// The transaction is aborted afterwards and must be rolled back.
func (t *awardTx) InsertLedgerEntry(ctx context.Context, e *domain.AwardLedgerEntry) error {
	var metadata []byte
	if e.Metadata != nil {
		var err error
		if metadata, err = json.Marshal(e.Metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgMarshalMetadata, err)
		}
	}

	err := t.q.InsertLedgerEntry(ctx, generated.InsertLedgerEntryParams{
		ID:        e.ID,
		UserID:    e.UserID,
		Category:  e.Category,
		Action:    e.Action,
		XPEarned:  e.XPEarned,
		Metadata:  metadata,
		AwardDay:  domain.Day(e.AwardDay),
		DailySlot: int32Ptr(e.DailySlot),
		OneTime:   e.OneTime,
		Reference: e.Reference,
		CreatedAt: e.CreatedAt,
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateAward
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertLedger, err)
	}
	return nil
}

func (t *awardTx) ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (*domain.UserProgression, *domain.UserProgression, error) {
	return applyDelta(ctx, t.q, userID, delta)
}

func (t *awardTx) CreateBoost(ctx context.Context, b *domain.MultiplierBoost) error {
	err := t.q.CreateBoost(ctx, generated.CreateBoostParams{
		ID:         b.ID,
		UserID:     b.UserID,
		Multiplier: b.Multiplier,
		AppliesTo:  nonNilStrings(b.AppliesToStats),
		ExpiresAt:  b.ExpiresAt,
		Source:     b.Source,
		CreatedAt:  b.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertBoost, err)
	}
	return nil
}
