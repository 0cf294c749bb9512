// Package memstore is an in-memory implementation of the repository
// interfaces for service tests. It honors the same uniqueness and
// conditional-transition rules as the Postgres store.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/repository"
)

type activityKey struct {
	userID string
	day    time.Time
}

// Store holds every table in memory
type Store struct {
	mu sync.Mutex
	// txMu serializes award transactions the way the advisory lock does
	txMu sync.Mutex

	progressions map[string]*domain.UserProgression
	activity     map[activityKey]*domain.DailyActivityRecord
	ledger       []domain.AwardLedgerEntry
	boosts       []domain.MultiplierBoost
	duels        map[uuid.UUID]*domain.Duel
	duelStats    []domain.DuelStat
	xpEvents     map[uuid.UUID]*domain.GlobalXPEvent
	events       []repository.EventLogEntry
	nextEventID  int64

	now func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{
		progressions: make(map[string]*domain.UserProgression),
		activity:     make(map[activityKey]*domain.DailyActivityRecord),
		duels:        make(map[uuid.UUID]*domain.Duel),
		xpEvents:     make(map[uuid.UUID]*domain.GlobalXPEvent),
		now:          time.Now,
	}
}

// SetClock overrides the clock used for created/updated timestamps
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

var (
	_ repository.Progression = (*Store)(nil)
	_ repository.Economy     = (*Store)(nil)
	_ repository.Duel        = (*Store)(nil)
	_ repository.XPEvent     = (*Store)(nil)
	_ repository.EventLog    = (*Store)(nil)
)

// Progression

func (s *Store) GetProgression(ctx context.Context, userID string) (*domain.UserProgression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progressions[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) EnsureProgression(ctx context.Context, userID string) (*domain.UserProgression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.ensureLocked(userID)
	return &cp, nil
}

func (s *Store) ensureLocked(userID string) *domain.UserProgression {
	p, ok := s.progressions[userID]
	if !ok {
		now := s.now()
		p = &domain.UserProgression{UserID: userID, CreatedAt: now, UpdatedAt: now}
		s.progressions[userID] = p
	}
	return p
}

func (s *Store) ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (*domain.UserProgression, *domain.UserProgression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before, after := s.applyLocked(userID, delta)
	return before, after, nil
}

func (s *Store) applyLocked(userID string, delta domain.ProgressionDelta) (*domain.UserProgression, *domain.UserProgression) {
	p := s.ensureLocked(userID)
	before := *p
	p.CumulativeXP += delta.XP
	p.WarriorAffinity += delta.WarriorAffinity
	p.MageAffinity += delta.MageAffinity
	p.ArchetypeWarrior += delta.ArchetypeWarrior
	p.ArchetypeMage += delta.ArchetypeMage
	p.ArchetypeTemplar += delta.ArchetypeTemplar
	p.UpdatedAt = s.now()
	after := *p
	return &before, &after
}

func (s *Store) SetFaction(ctx context.Context, userID string, faction *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ensureLocked(userID)
	if faction != nil {
		f := *faction
		faction = &f
	}
	p.Faction = faction
	p.UpdatedAt = s.now()
	return nil
}

func (s *Store) ResetProgression(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progressions[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	p.CumulativeXP, p.WarriorAffinity, p.MageAffinity = 0, 0, 0
	p.ArchetypeWarrior, p.ArchetypeMage, p.ArchetypeTemplar = 0, 0, 0
	p.UpdatedAt = s.now()
	return nil
}

func (s *Store) UpsertDailyActivity(ctx context.Context, u domain.DailyActivityUpdate) (*domain.DailyActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertActivityLocked(u), nil
}

func (s *Store) upsertActivityLocked(u domain.DailyActivityUpdate) *domain.DailyActivityRecord {
	key := activityKey{userID: u.UserID, day: domain.Day(u.Day)}
	rec, ok := s.activity[key]
	if !ok {
		rec = &domain.DailyActivityRecord{UserID: u.UserID, Day: key.day}
		s.activity[key] = rec
	}
	rec.Active = rec.Active || u.Active
	rec.ChatEngaged = rec.ChatEngaged || u.ChatEngaged
	if u.State != nil {
		st := *u.State
		rec.State = &st
	}
	rec.DayWarrior += u.WarriorAdd
	rec.DayMage += u.MageAdd
	rec.DominantArchetype = dominantOfDay(rec.DayWarrior, rec.DayMage)
	rec.UpdatedAt = s.now()

	cp := *rec
	return &cp
}

// dominantOfDay mirrors the SQL CASE used by the Postgres upsert
func dominantOfDay(warrior, mage int64) domain.Archetype {
	total := warrior + mage
	switch {
	case total == 0:
		return domain.ArchetypeNone
	case warrior*100 >= 40*total && warrior*100 <= 60*total:
		return domain.ArchetypeTemplar
	case warrior > mage:
		return domain.ArchetypeWarrior
	default:
		return domain.ArchetypeMage
	}
}

func (s *Store) GetDailyActivity(ctx context.Context, userID string, day time.Time) (*domain.DailyActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.activity[activityKey{userID: userID, day: domain.Day(day)}]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *Store) ListActiveDays(ctx context.Context, userID string, since, before time.Time) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var days []time.Time
	for k, rec := range s.activity {
		if k.userID != userID || !rec.Active {
			continue
		}
		if k.day.Before(since) || !k.day.Before(before) {
			continue
		}
		days = append(days, k.day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days, nil
}

// BeginTx returns a transaction that writes through and undoes on Rollback
func (s *Store) BeginTx(ctx context.Context) (repository.ProgressionTx, error) {
	return &progressionTx{store: s}, nil
}

type progressionTx struct {
	store *Store
	undo  []func()
	done  bool
}

func (t *progressionTx) UpsertDailyActivity(ctx context.Context, u domain.DailyActivityUpdate) (*domain.DailyActivityRecord, error) {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := activityKey{userID: u.UserID, day: domain.Day(u.Day)}
	if prev, ok := s.activity[key]; ok {
		saved := *prev
		t.undo = append(t.undo, func() { s.activity[key] = &saved })
	} else {
		t.undo = append(t.undo, func() { delete(s.activity, key) })
	}
	return s.upsertActivityLocked(u), nil
}

func (t *progressionTx) ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (*domain.UserProgression, *domain.UserProgression, error) {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	before, after := s.applyLocked(userID, delta)
	t.undo = append(t.undo, func() {
		p := s.progressions[userID]
		addDelta(p, domain.ProgressionDelta{
			XP:               -delta.XP,
			WarriorAffinity:  -delta.WarriorAffinity,
			MageAffinity:     -delta.MageAffinity,
			ArchetypeWarrior: -delta.ArchetypeWarrior,
			ArchetypeMage:    -delta.ArchetypeMage,
			ArchetypeTemplar: -delta.ArchetypeTemplar,
		})
	})
	return before, after, nil
}

func (t *progressionTx) Commit(ctx context.Context) error {
	t.done = true
	return nil
}

func (t *progressionTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	return nil
}

// Economy

func (s *Store) BeginAwardTx(ctx context.Context, userID, category, action string) (repository.AwardTx, error) {
	s.txMu.Lock()
	return &awardTx{store: s}, nil
}

func (s *Store) ListAwards(ctx context.Context, userID string, limit int) ([]domain.AwardLedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AwardLedgerEntry
	for i := len(s.ledger) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if s.ledger[i].UserID == userID {
			out = append(out, s.ledger[i])
		}
	}
	return out, nil
}

func (s *Store) ListActiveBoosts(ctx context.Context, userID string, at time.Time) ([]domain.MultiplierBoost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.MultiplierBoost
	for _, b := range s.boosts {
		if b.UserID == userID && b.ActiveAt(at) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) DeleteExpiredBoosts(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.boosts[:0]
	var n int64
	for _, b := range s.boosts {
		if b.ExpiresAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, b)
	}
	s.boosts = kept
	return n, nil
}

// Ledger returns a copy of every committed ledger row
func (s *Store) Ledger() []domain.AwardLedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AwardLedgerEntry(nil), s.ledger...)
}

// AddBoost inserts a boost directly
func (s *Store) AddBoost(b domain.MultiplierBoost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boosts = append(s.boosts, b)
}

// AddLedgerEntry inserts a ledger row directly, bypassing limits
func (s *Store) AddLedgerEntry(e domain.AwardLedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = append(s.ledger, e)
}

// awardTx stages writes until Commit
type awardTx struct {
	store  *Store
	ledger []domain.AwardLedgerEntry
	deltas []stagedDelta
	boosts []domain.MultiplierBoost
	done   bool
}

type stagedDelta struct {
	userID string
	delta  domain.ProgressionDelta
}

func (t *awardTx) rows() []domain.AwardLedgerEntry {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	out := append([]domain.AwardLedgerEntry(nil), t.store.ledger...)
	return append(out, t.ledger...)
}

func (t *awardTx) HasClaimed(ctx context.Context, userID, category, action string) (bool, error) {
	for _, e := range t.rows() {
		if e.UserID == userID && e.Category == category && e.Action == action {
			return true, nil
		}
	}
	return false, nil
}

func (t *awardTx) LastAwardTime(ctx context.Context, userID, category, action string) (*time.Time, error) {
	var last *time.Time
	for _, e := range t.rows() {
		if e.UserID == userID && e.Category == category && e.Action == action {
			if last == nil || e.CreatedAt.After(*last) {
				ts := e.CreatedAt
				last = &ts
			}
		}
	}
	return last, nil
}

func (t *awardTx) CountAwardsOnDay(ctx context.Context, userID, category, action string, day time.Time) (int, error) {
	day = domain.Day(day)
	n := 0
	for _, e := range t.rows() {
		if e.UserID == userID && e.Category == category && e.Action == action && e.AwardDay.Equal(day) {
			n++
		}
	}
	return n, nil
}

func (t *awardTx) InsertLedgerEntry(ctx context.Context, entry *domain.AwardLedgerEntry) error {
	for _, e := range t.rows() {
		if e.UserID != entry.UserID || e.Category != entry.Category || e.Action != entry.Action {
			continue
		}
		if entry.OneTime && e.OneTime {
			return domain.ErrDuplicateAward
		}
		if entry.DailySlot != nil && e.DailySlot != nil && *e.DailySlot == *entry.DailySlot && e.AwardDay.Equal(entry.AwardDay) {
			return domain.ErrDuplicateAward
		}
		if entry.Reference != nil && e.Reference != nil && *e.Reference == *entry.Reference {
			return domain.ErrDuplicateAward
		}
	}
	t.ledger = append(t.ledger, *entry)
	return nil
}

func (t *awardTx) ApplyDelta(ctx context.Context, userID string, delta domain.ProgressionDelta) (*domain.UserProgression, *domain.UserProgression, error) {
	t.store.mu.Lock()
	base := *t.store.ensureLocked(userID)
	t.store.mu.Unlock()

	for _, d := range t.deltas {
		if d.userID == userID {
			addDelta(&base, d.delta)
		}
	}
	before := base
	addDelta(&base, delta)
	t.deltas = append(t.deltas, stagedDelta{userID: userID, delta: delta})
	return &before, &base, nil
}

func addDelta(p *domain.UserProgression, d domain.ProgressionDelta) {
	p.CumulativeXP += d.XP
	p.WarriorAffinity += d.WarriorAffinity
	p.MageAffinity += d.MageAffinity
	p.ArchetypeWarrior += d.ArchetypeWarrior
	p.ArchetypeMage += d.ArchetypeMage
	p.ArchetypeTemplar += d.ArchetypeTemplar
}

func (t *awardTx) CreateBoost(ctx context.Context, boost *domain.MultiplierBoost) error {
	t.boosts = append(t.boosts, *boost)
	return nil
}

func (t *awardTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.store.mu.Lock()
	t.store.ledger = append(t.store.ledger, t.ledger...)
	t.store.boosts = append(t.store.boosts, t.boosts...)
	t.store.mu.Unlock()
	for _, d := range t.deltas {
		t.store.mu.Lock()
		t.store.applyLocked(d.userID, d.delta)
		t.store.mu.Unlock()
	}
	t.finish()
	return nil
}

func (t *awardTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *awardTx) finish() {
	t.done = true
	t.store.txMu.Unlock()
}
