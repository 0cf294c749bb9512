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

// XPEventRepository implements repository.XPEvent
type XPEventRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

var _ repository.XPEvent = (*XPEventRepository)(nil)

// NewXPEventRepository creates a new PostgreSQL global XP event repository
func NewXPEventRepository(db *pgxpool.Pool) *XPEventRepository {
	return &XPEventRepository{
		db: db,
		q:  generated.New(db),
	}
}

func toXPEvent(row generated.GlobalXPEvent) domain.GlobalXPEvent {
	return domain.GlobalXPEvent{
		ID:               row.ID,
		Name:             row.Name,
		StartTime:        row.StartTime,
		EndTime:          row.EndTime,
		MultiplierFactor: row.MultiplierFactor,
		Faction:          row.Faction,
		StartAnnounced:   row.StartAnnounced,
		EndAnnounced:     row.EndAnnounced,
		CreatedAt:        row.CreatedAt,
	}
}

func toXPEvents(rows []generated.GlobalXPEvent, err error) ([]domain.GlobalXPEvent, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryXPEvent, err)
	}
	events := make([]domain.GlobalXPEvent, len(rows))
	for i, row := range rows {
		events[i] = toXPEvent(row)
	}
	return events, nil
}

// CreateXPEvent inserts a new event
func (r *XPEventRepository) CreateXPEvent(ctx context.Context, ev *domain.GlobalXPEvent) error {
	err := r.q.CreateXPEvent(ctx, generated.CreateXPEventParams{
		ID:               ev.ID,
		Name:             ev.Name,
		StartTime:        ev.StartTime,
		EndTime:          ev.EndTime,
		MultiplierFactor: ev.MultiplierFactor,
		Faction:          ev.Faction,
		StartAnnounced:   ev.StartAnnounced,
		EndAnnounced:     ev.EndAnnounced,
		CreatedAt:        ev.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertXPEvent, err)
	}
	return nil
}

// GetXPEvent returns domain.ErrXPEventNotFound for an unknown id
func (r *XPEventRepository) GetXPEvent(ctx context.Context, id uuid.UUID) (*domain.GlobalXPEvent, error) {
	row, err := r.q.GetXPEvent(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrXPEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryXPEvent, err)
	}
	ev := toXPEvent(row)
	return &ev, nil
}

// ListActiveXPEvents returns events whose window contains at
func (r *XPEventRepository) ListActiveXPEvents(ctx context.Context, at time.Time) ([]domain.GlobalXPEvent, error) {
	return toXPEvents(r.q.ListActiveXPEvents(ctx, at))
}

// EndXPEvent pulls the end time forward to at. An event that has not started
// yet collapses to an empty window.
func (r *XPEventRepository) EndXPEvent(ctx context.Context, id uuid.UUID, at time.Time) error {
	n, err := r.q.EndXPEvent(ctx, generated.EndXPEventParams{At: at, ID: id})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateXPEvent, err)
	}
	if n == 0 {
		return domain.ErrXPEventNotFound
	}
	return nil
}

// ListUnannouncedStarts returns running events whose start was not announced
func (r *XPEventRepository) ListUnannouncedStarts(ctx context.Context, now time.Time) ([]domain.GlobalXPEvent, error) {
	return toXPEvents(r.q.ListUnannouncedStarts(ctx, now))
}

// ListUnannouncedEnds returns finished events that were announced as started
func (r *XPEventRepository) ListUnannouncedEnds(ctx context.Context, now time.Time) ([]domain.GlobalXPEvent, error) {
	return toXPEvents(r.q.ListUnannouncedEnds(ctx, now))
}

func flipped(n int64, err error) (bool, error) {
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgUpdateXPEvent, err)
	}
	return n == 1, nil
}

// MarkStartAnnounced reports whether this caller flipped the flag
func (r *XPEventRepository) MarkStartAnnounced(ctx context.Context, id uuid.UUID) (bool, error) {
	return flipped(r.q.MarkStartAnnounced(ctx, id))
}

// MarkEndAnnounced reports whether this caller flipped the flag
func (r *XPEventRepository) MarkEndAnnounced(ctx context.Context, id uuid.UUID) (bool, error) {
	return flipped(r.q.MarkEndAnnounced(ctx, id))
}
