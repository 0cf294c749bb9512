package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

func copyDuel(d *domain.Duel) *domain.Duel {
	cp := *d
	return &cp
}

func (s *Store) CreateDuel(ctx context.Context, duel *domain.Duel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.duels {
		if d.Status != domain.DuelStatusPending && d.Status != domain.DuelStatusActive {
			continue
		}
		if d.IsParticipant(duel.ChallengerID) || d.IsParticipant(duel.OpponentID) {
			return domain.ErrDuelAlreadyActive
		}
	}
	s.duels[duel.ID] = copyDuel(duel)
	return nil
}

func (s *Store) GetDuel(ctx context.Context, id uuid.UUID) (*domain.Duel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.duels[id]
	if !ok {
		return nil, domain.ErrDuelNotFound
	}
	return copyDuel(d), nil
}

func (s *Store) findForUser(userID string, statuses ...domain.DuelStatus) *domain.Duel {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.duels {
		if !d.IsParticipant(userID) {
			continue
		}
		for _, st := range statuses {
			if d.Status == st {
				return copyDuel(d)
			}
		}
	}
	return nil
}

func (s *Store) GetOpenDuelForUser(ctx context.Context, userID string) (*domain.Duel, error) {
	return s.findForUser(userID, domain.DuelStatusPending, domain.DuelStatusActive), nil
}

func (s *Store) GetActiveDuelForUser(ctx context.Context, userID string) (*domain.Duel, error) {
	return s.findForUser(userID, domain.DuelStatusActive), nil
}

func (s *Store) AcceptDuel(ctx context.Context, id uuid.UUID, acceptedAt, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.duels[id]
	if !ok {
		return domain.ErrDuelNotFound
	}
	if d.Status != domain.DuelStatusPending {
		return domain.ErrDuelNotPending
	}
	d.Status = domain.DuelStatusActive
	d.AcceptedAt = &acceptedAt
	d.ExpiresAt = &expiresAt
	return nil
}

func (s *Store) DeclineDuel(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.duels[id]
	if !ok {
		return domain.ErrDuelNotFound
	}
	if d.Status != domain.DuelStatusPending {
		return domain.ErrDuelNotPending
	}
	d.Status = domain.DuelStatusDeclined
	now := s.now()
	d.CompletedAt = &now
	return nil
}

func (s *Store) SetPenalty(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.duels[id]
	if !ok {
		return false, domain.ErrDuelNotFound
	}
	switch userID {
	case d.ChallengerID:
		if d.ChallengerPenalized {
			return false, nil
		}
		d.ChallengerPenalized = true
	case d.OpponentID:
		if d.OpponentPenalized {
			return false, nil
		}
		d.OpponentPenalized = true
	default:
		return false, domain.ErrNotDuelParticipant
	}
	return true, nil
}

func (s *Store) RecordDuelStat(ctx context.Context, stat *domain.DuelStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duelStats = append(s.duelStats, *stat)
	return nil
}

// DuelStats returns the recorded stats of a duel
func (s *Store) DuelStats(id uuid.UUID) []domain.DuelStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.DuelStat
	for _, st := range s.duelStats {
		if st.DuelID == id {
			out = append(out, st)
		}
	}
	return out
}

func (s *Store) CompleteDuel(ctx context.Context, duel *domain.Duel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.duels[duel.ID]
	if !ok {
		return domain.ErrDuelNotFound
	}
	if d.Status != domain.DuelStatusActive {
		return domain.ErrDuelNotActive
	}
	d.Status = domain.DuelStatusCompleted
	d.CompletedAt = duel.CompletedAt
	d.ChallengerFinal = duel.ChallengerFinal
	d.OpponentFinal = duel.OpponentFinal
	d.WinnerID = duel.WinnerID
	d.BonusPending = duel.BonusPending
	return nil
}

func (s *Store) MarkBonusPaid(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.duels[id]
	if !ok {
		return domain.ErrDuelNotFound
	}
	d.BonusPending = false
	return nil
}

func (s *Store) ListPendingBonusDuels(ctx context.Context) ([]domain.Duel, error) {
	return s.listDuels(func(d *domain.Duel) bool {
		return d.Status == domain.DuelStatusCompleted && d.BonusPending
	}), nil
}

func (s *Store) listDuels(match func(*domain.Duel) bool) []domain.Duel {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Duel
	for _, d := range s.duels {
		if match(d) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) ListExpiredActiveDuels(ctx context.Context, now time.Time) ([]domain.Duel, error) {
	return s.listDuels(func(d *domain.Duel) bool {
		return d.Status == domain.DuelStatusActive && d.ExpiresAt != nil && !now.Before(*d.ExpiresAt)
	}), nil
}

func (s *Store) ListStalePendingDuels(ctx context.Context, createdBefore time.Time) ([]domain.Duel, error) {
	return s.listDuels(func(d *domain.Duel) bool {
		return d.Status == domain.DuelStatusPending && d.CreatedAt.Before(createdBefore)
	}), nil
}

// XP events

func (s *Store) CreateXPEvent(ctx context.Context, ev *domain.GlobalXPEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ev
	s.xpEvents[ev.ID] = &cp
	return nil
}

func (s *Store) GetXPEvent(ctx context.Context, id uuid.UUID) (*domain.GlobalXPEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.xpEvents[id]
	if !ok {
		return nil, domain.ErrXPEventNotFound
	}
	cp := *ev
	return &cp, nil
}

func (s *Store) listXPEvents(match func(*domain.GlobalXPEvent) bool) []domain.GlobalXPEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.GlobalXPEvent
	for _, ev := range s.xpEvents {
		if match(ev) {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (s *Store) ListActiveXPEvents(ctx context.Context, at time.Time) ([]domain.GlobalXPEvent, error) {
	return s.listXPEvents(func(ev *domain.GlobalXPEvent) bool { return ev.ActiveAt(at) }), nil
}

func (s *Store) EndXPEvent(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.xpEvents[id]
	if !ok {
		return domain.ErrXPEventNotFound
	}
	if at.Before(ev.EndTime) {
		ev.EndTime = at
		if ev.EndTime.Before(ev.StartTime) {
			ev.StartTime = at
		}
	}
	return nil
}

func (s *Store) ListUnannouncedStarts(ctx context.Context, now time.Time) ([]domain.GlobalXPEvent, error) {
	return s.listXPEvents(func(ev *domain.GlobalXPEvent) bool {
		return !ev.StartAnnounced && !now.Before(ev.StartTime) && now.Before(ev.EndTime)
	}), nil
}

func (s *Store) ListUnannouncedEnds(ctx context.Context, now time.Time) ([]domain.GlobalXPEvent, error) {
	return s.listXPEvents(func(ev *domain.GlobalXPEvent) bool {
		return ev.StartAnnounced && !ev.EndAnnounced && !now.Before(ev.EndTime)
	}), nil
}

func (s *Store) markXPEvent(id uuid.UUID, flag func(*domain.GlobalXPEvent) *bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.xpEvents[id]
	if !ok {
		return false, domain.ErrXPEventNotFound
	}
	f := flag(ev)
	if *f {
		return false, nil
	}
	*f = true
	return true, nil
}

func (s *Store) MarkStartAnnounced(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.markXPEvent(id, func(ev *domain.GlobalXPEvent) *bool { return &ev.StartAnnounced })
}

func (s *Store) MarkEndAnnounced(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.markXPEvent(id, func(ev *domain.GlobalXPEvent) *bool { return &ev.EndAnnounced })
}

// Event log

func (s *Store) LogEvent(ctx context.Context, eventType string, userID *string, payload map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEventID++
	s.events = append(s.events, repository.EventLogEntry{
		ID:        s.nextEventID,
		EventType: eventType,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: s.now(),
	})
	return nil
}

func (s *Store) GetEventsByUser(ctx context.Context, userID string, limit int) ([]repository.EventLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []repository.EventLogEntry
	for i := len(s.events) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		e := s.events[i]
		if e.UserID != nil && *e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	kept := s.events[:0]
	var n int64
	for _, e := range s.events {
		if e.CreatedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	return n, nil
}
