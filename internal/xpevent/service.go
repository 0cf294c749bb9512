// Package xpevent administers global XP events and announces their start
// and end exactly once.
package xpevent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

// CreateRequest describes a new global XP event
type CreateRequest struct {
	Name             string
	StartTime        time.Time
	EndTime          time.Time
	MultiplierFactor float64
	Faction          string
}

// SweepResult counts the announcements made by one sweep
type SweepResult struct {
	Started int `json:"started"`
	Ended   int `json:"ended"`
}

// Service defines global XP event administration
type Service interface {
	CreateEvent(ctx context.Context, req CreateRequest) (*domain.GlobalXPEvent, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.GlobalXPEvent, error)
	ListActive(ctx context.Context) ([]domain.GlobalXPEvent, error)
	EndEvent(ctx context.Context, id uuid.UUID) error
	Sweep(ctx context.Context) (SweepResult, error)
}

type service struct {
	repo      repository.XPEvent
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new xp event service. A nil now uses time.Now.
func NewService(repo repository.XPEvent, publisher event.Publisher, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, publisher: publisher, now: now}
}

func (s *service) CreateEvent(ctx context.Context, req CreateRequest) (*domain.GlobalXPEvent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if req.MultiplierFactor <= 0 {
		return nil, fmt.Errorf("%w: multiplier factor must be positive", domain.ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, domain.ErrInvalidXPWindow
	}

	ev := &domain.GlobalXPEvent{
		ID:               uuid.New(),
		Name:             name,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		MultiplierFactor: req.MultiplierFactor,
		CreatedAt:        s.now(),
	}
	if f := strings.TrimSpace(req.Faction); f != "" {
		ev.Faction = &f
	}

	if err := s.repo.CreateXPEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateEvent, err)
	}

	logger.FromContext(ctx).Info(LogMsgEventCreated,
		"event_id", ev.ID, "name", ev.Name, "factor", ev.MultiplierFactor,
		"start", ev.StartTime, "end", ev.EndTime, "faction", req.Faction)
	return ev, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*domain.GlobalXPEvent, error) {
	ev, err := s.repo.GetXPEvent(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrXPEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetEvent, err)
	}
	return ev, nil
}

func (s *service) ListActive(ctx context.Context) ([]domain.GlobalXPEvent, error) {
	events, err := s.repo.ListActiveXPEvents(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListActive, err)
	}
	return events, nil
}

// EndEvent moves the event's end to now. Events already over are left as they are.
func (s *service) EndEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	if err := s.repo.EndXPEvent(ctx, id, s.now()); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEndEvent, err)
	}
	logger.FromContext(ctx).Info(LogMsgEventEnded, "event_id", id)
	return nil
}

// Sweep announces events that have started or ended since the last sweep.
// The announced flags are flipped conditionally so concurrent sweeps
// announce each transition once.
func (s *service) Sweep(ctx context.Context) (SweepResult, error) {
	log := logger.FromContext(ctx)
	var res SweepResult
	now := s.now()

	starts, err := s.repo.ListUnannouncedStarts(ctx, now)
	if err != nil {
		return res, fmt.Errorf("%s: %w", ErrMsgListStarts, err)
	}
	for _, ev := range starts {
		flipped, err := s.repo.MarkStartAnnounced(ctx, ev.ID)
		if err != nil {
			log.Error(LogMsgAnnounceFailed, "event_id", ev.ID, "error", err)
			continue
		}
		if !flipped {
			continue
		}
		res.Started++
		log.Info(LogMsgEventStarted, "event_id", ev.ID, "name", ev.Name)
		s.publish(ctx, event.NewGlobalXPEvent(event.GlobalEventStart, ev))
	}

	ends, err := s.repo.ListUnannouncedEnds(ctx, now)
	if err != nil {
		return res, fmt.Errorf("%s: %w", ErrMsgListEnds, err)
	}
	for _, ev := range ends {
		flipped, err := s.repo.MarkEndAnnounced(ctx, ev.ID)
		if err != nil {
			log.Error(LogMsgAnnounceFailed, "event_id", ev.ID, "error", err)
			continue
		}
		if !flipped {
			continue
		}
		res.Ended++
		log.Info(LogMsgEventFinished, "event_id", ev.ID, "name", ev.Name)
		s.publish(ctx, event.NewGlobalXPEvent(event.GlobalEventEnded, ev))
	}

	return res, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
