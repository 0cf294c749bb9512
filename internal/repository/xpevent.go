package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

// XPEvent defines storage for global XP events
type XPEvent interface {
	CreateXPEvent(ctx context.Context, ev *domain.GlobalXPEvent) error
	GetXPEvent(ctx context.Context, id uuid.UUID) (*domain.GlobalXPEvent, error)

	// ListActiveXPEvents is read on every multiplier computation and must not be cached
	ListActiveXPEvents(ctx context.Context, at time.Time) ([]domain.GlobalXPEvent, error)

	// EndXPEvent moves the end time to at when the event is still running
	EndXPEvent(ctx context.Context, id uuid.UUID, at time.Time) error

	ListUnannouncedStarts(ctx context.Context, now time.Time) ([]domain.GlobalXPEvent, error)
	ListUnannouncedEnds(ctx context.Context, now time.Time) ([]domain.GlobalXPEvent, error)

	// MarkStartAnnounced and MarkEndAnnounced report whether this caller flipped the flag
	MarkStartAnnounced(ctx context.Context, id uuid.UUID) (bool, error)
	MarkEndAnnounced(ctx context.Context, id uuid.UUID) (bool, error)
}
