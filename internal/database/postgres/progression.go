package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/database/generated"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

// ProgressionRepository implements repository.Progression
type ProgressionRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

var _ repository.Progression = (*ProgressionRepository)(nil)

// NewProgressionRepository creates a new PostgreSQL progression repository
func NewProgressionRepository(db *pgxpool.Pool) *ProgressionRepository {
	return &ProgressionRepository{
		db: db,
		q:  generated.New(db),
	}
}

func toProgression(row generated.UserProgression) *domain.UserProgression {
	return &domain.UserProgression{
		UserID:           row.UserID,
		CumulativeXP:     row.CumulativeXP,
		WarriorAffinity:  row.WarriorAffinity,
		MageAffinity:     row.MageAffinity,
		ArchetypeWarrior: row.ArchetypeWarrior,
		ArchetypeMage:    row.ArchetypeMage,
		ArchetypeTemplar: row.ArchetypeTemplar,
		Faction:          row.Faction,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func toActivity(row generated.DailyActivity) *domain.DailyActivityRecord {
	return &domain.DailyActivityRecord{
		UserID:            row.UserID,
		Day:               domain.Day(row.Day),
		Active:            row.Active,
		State:             intPtr(row.State),
		DayWarrior:        row.DayWarrior,
		DayMage:           row.DayMage,
		DominantArchetype: domain.Archetype(row.DominantArchetype),
		ChatEngaged:       row.ChatEngaged,
		UpdatedAt:         row.UpdatedAt,
	}
}

// GetProgression returns the user's row
func (r *ProgressionRepository) GetProgression(ctx context.Context, userID string) (*domain.UserProgression, error) {
	row, err := r.q.GetProgression(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetProgression, err)
	}
	return toProgression(row), nil
}

// EnsureProgression creates a zeroed row on first contact
func (r *ProgressionRepository) EnsureProgression(ctx context.Context, userID string) (*domain.UserProgression, error) {
	row, err := r.q.EnsureProgression(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetProgression, err)
	}
	return toProgression(row), nil
}

// ApplyDelta atomically increments the row, creating it when missing
func (r *ProgressionRepository) ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (*domain.UserProgression, *domain.UserProgression, error) {
	return applyDelta(ctx, r.q, userID, delta)
}

// applyDelta runs one increment upsert. The state before is derived from the
// returned row, since the increment is the only change the statement makes.
func applyDelta(ctx context.Context, q *generated.Queries, userID string, d domain.ProgressionDelta) (*domain.UserProgression, *domain.UserProgression, error) {
	row, err := q.ApplyProgressionDelta(ctx, generated.ApplyProgressionDeltaParams{
		UserID:           userID,
		CumulativeXP:     d.XP,
		WarriorAffinity:  d.WarriorAffinity,
		MageAffinity:     d.MageAffinity,
		ArchetypeWarrior: d.ArchetypeWarrior,
		ArchetypeMage:    d.ArchetypeMage,
		ArchetypeTemplar: d.ArchetypeTemplar,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgApplyDelta, err)
	}

	after := toProgression(row)
	before := *after
	before.CumulativeXP -= d.XP
	before.WarriorAffinity -= d.WarriorAffinity
	before.MageAffinity -= d.MageAffinity
	before.ArchetypeWarrior -= d.ArchetypeWarrior
	before.ArchetypeMage -= d.ArchetypeMage
	before.ArchetypeTemplar -= d.ArchetypeTemplar
	return &before, after, nil
}

// SetFaction sets or clears the user's faction
func (r *ProgressionRepository) SetFaction(ctx context.Context, userID string, faction *string) error {
	if err := r.q.SetFaction(ctx, generated.SetFactionParams{UserID: userID, Faction: faction}); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSetFaction, err)
	}
	return nil
}

// ResetProgression zeroes XP, affinities and archetype scores
func (r *ProgressionRepository) ResetProgression(ctx context.Context, userID string) error {
	n, err := r.q.ResetProgression(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgResetProgression, err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpsertDailyActivity merges an update into the day's record in one statement
func (r *ProgressionRepository) UpsertDailyActivity(ctx context.Context, u domain.DailyActivityUpdate) (*domain.DailyActivityRecord, error) {
	return upsertActivity(ctx, r.q, u)
}

func upsertActivity(ctx context.Context, q *generated.Queries, u domain.DailyActivityUpdate) (*domain.DailyActivityRecord, error) {
	row, err := q.UpsertDailyActivity(ctx, generated.UpsertDailyActivityParams{
		UserID:      u.UserID,
		Day:         domain.Day(u.Day),
		Active:      u.Active,
		State:       int16Ptr(u.State),
		WarriorAdd:  u.WarriorAdd,
		MageAdd:     u.MageAdd,
		ChatEngaged: u.ChatEngaged,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgUpsertActivity, err)
	}
	return toActivity(row), nil
}

// GetDailyActivity returns nil, nil when the day has no record
func (r *ProgressionRepository) GetDailyActivity(ctx context.Context, userID string, day time.Time) (*domain.DailyActivityRecord, error) {
	row, err := r.q.GetDailyActivity(ctx, generated.GetDailyActivityParams{UserID: userID, Day: domain.Day(day)})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetActivity, err)
	}
	return toActivity(row), nil
}

// ListActiveDays returns active days in [since, before), newest first
func (r *ProgressionRepository) ListActiveDays(ctx context.Context, userID string, since, before time.Time) ([]time.Time, error) {
	days, err := r.q.ListActiveDays(ctx, generated.ListActiveDaysParams{
		UserID: userID,
		Since:  domain.Day(since),
		Before: domain.Day(before),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListActiveDays, err)
	}
	for i := range days {
		days[i] = domain.Day(days[i])
	}
	return days, nil
}

// BeginTx opens a submission transaction
func (r *ProgressionRepository) BeginTx(ctx context.Context) (repository.ProgressionTx, error) {
	h, err := beginTx(ctx, r.db, r.q)
	if err != nil {
		return nil, err
	}
	return &progressionTx{txHelper: h}, nil
}

// progressionTx implements repository.ProgressionTx
type progressionTx struct {
	*txHelper
}

func (t *progressionTx) UpsertDailyActivity(ctx context.Context, u domain.DailyActivityUpdate) (*domain.DailyActivityRecord, error) {
	return upsertActivity(ctx, t.q, u)
}

func (t *progressionTx) ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (*domain.UserProgression, *domain.UserProgression, error) {
	return applyDelta(ctx, t.q, userID, delta)
}
