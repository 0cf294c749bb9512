package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version   string                 `json:"version"` // Event schema version (e.g., "1.0")
	Type      Type                   `json:"type"`
	Payload   interface{}            `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// UserScoped is implemented by payloads that belong to a single user
type UserScoped interface {
	EventUserID() string
}

// UserID returns the owning user of the event payload, or ""
func (e Event) UserID() string {
	if p, ok := e.Payload.(UserScoped); ok {
		return p.EventUserID()
	}
	return ""
}

// Engine event types
const (
	XPAwarded        Type = "progression.xp_awarded"
	LevelUp          Type = "progression.level_up"
	ArchetypeEvolved Type = "progression.archetype_evolved"
	SecondaryAwarded Type = "economy.secondary_awarded"
	SecondaryRefused Type = "economy.secondary_refused"
	BoostUnlocked    Type = "economy.boost_unlocked"
	DuelCreated      Type = "duel.created"
	DuelPenalized    Type = "duel.penalized"
	DuelCompleted    Type = "duel.completed"
	GlobalEventStart Type = "xpevent.started"
	GlobalEventEnded Type = "xpevent.ended"
)

// AllTypes lists every engine event type
func AllTypes() []Type {
	return []Type{
		XPAwarded, LevelUp, ArchetypeEvolved,
		SecondaryAwarded, SecondaryRefused, BoostUnlocked,
		DuelCreated, DuelPenalized, DuelCompleted,
		GlobalEventStart, GlobalEventEnded,
	}
}

// Typed event payloads

// XPAwardedPayloadV1 is emitted for every XP-bearing stat submission or secondary award
type XPAwardedPayloadV1 struct {
	UserID     string  `json:"user_id"`
	Source     string  `json:"source"`
	BaseXP     int64   `json:"base_xp"`
	FinalXP    int64   `json:"final_xp"`
	Multiplier float64 `json:"multiplier"`
	Day        string  `json:"day"`
}

func (p XPAwardedPayloadV1) EventUserID() string { return p.UserID }

// LevelUpPayloadV1 reports a level transition
type LevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	OldClass string `json:"old_class"`
	NewClass string `json:"new_class"`
	Source   string `json:"source,omitempty"`
}

func (p LevelUpPayloadV1) EventUserID() string { return p.UserID }

// ArchetypeEvolvedPayloadV1 reports a change of the raw archetype label
type ArchetypeEvolvedPayloadV1 struct {
	UserID string           `json:"user_id"`
	From   domain.Archetype `json:"from"`
	To     domain.Archetype `json:"to"`
}

func (p ArchetypeEvolvedPayloadV1) EventUserID() string { return p.UserID }

// SecondaryAwardPayloadV1 reports the outcome of a secondary award attempt
type SecondaryAwardPayloadV1 struct {
	UserID   string                    `json:"user_id"`
	Category string                    `json:"category"`
	Action   string                    `json:"action"`
	XP       int64                     `json:"xp"`
	Reason   domain.AwardFailureReason `json:"reason,omitempty"`
}

func (p SecondaryAwardPayloadV1) EventUserID() string { return p.UserID }

// BoostUnlockedPayloadV1 reports a newly created multiplier boost
type BoostUnlockedPayloadV1 struct {
	UserID     string    `json:"user_id"`
	BoostID    uuid.UUID `json:"boost_id"`
	Multiplier float64   `json:"multiplier"`
	AppliesTo  []string  `json:"applies_to"`
	ExpiresAt  time.Time `json:"expires_at"`
	Source     string    `json:"source"`
}

func (p BoostUnlockedPayloadV1) EventUserID() string { return p.UserID }

// DuelCreatedPayloadV1 reports a new challenge
type DuelCreatedPayloadV1 struct {
	DuelID       uuid.UUID `json:"duel_id"`
	ChallengerID string    `json:"challenger_id"`
	OpponentID   string    `json:"opponent_id"`
}

func (p DuelCreatedPayloadV1) EventUserID() string { return p.ChallengerID }

// DuelPenalizedPayloadV1 reports a participant leaving the balance window
type DuelPenalizedPayloadV1 struct {
	DuelID uuid.UUID `json:"duel_id"`
	UserID string    `json:"user_id"`
}

func (p DuelPenalizedPayloadV1) EventUserID() string { return p.UserID }

// DuelCompletedPayloadV1 reports a finished duel
type DuelCompletedPayloadV1 struct {
	DuelID             uuid.UUID              `json:"duel_id"`
	Kind               domain.DuelOutcomeKind `json:"kind"`
	WinnerID           *string                `json:"winner_id,omitempty"`
	ChallengerID       string                 `json:"challenger_id"`
	OpponentID         string                 `json:"opponent_id"`
	ChallengerXPGained int64                  `json:"challenger_xp_gained"`
	OpponentXPGained   int64                  `json:"opponent_xp_gained"`
	PerfectBalance     bool                   `json:"perfect_balance"`
}

func (p DuelCompletedPayloadV1) EventUserID() string {
	if p.WinnerID != nil {
		return *p.WinnerID
	}
	return p.ChallengerID
}

// GlobalXPEventPayloadV1 reports a global XP event starting or ending
type GlobalXPEventPayloadV1 struct {
	EventID   uuid.UUID `json:"event_id"`
	Name      string    `json:"name"`
	Factor    float64   `json:"factor"`
	Faction   *string   `json:"faction,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Type-safe event constructors

// New wraps a payload in a versioned event
func New(t Type, payload interface{}) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewLevelUpEvent creates a level up event from a detected transition
func NewLevelUpEvent(userID, source string, up domain.LevelUp) Event {
	return New(LevelUp, LevelUpPayloadV1{
		UserID:   userID,
		OldLevel: up.OldLevel,
		NewLevel: up.NewLevel,
		OldClass: up.OldClass,
		NewClass: up.NewClass,
		Source:   source,
	})
}

// NewArchetypeEvolvedEvent creates an archetype evolution event
func NewArchetypeEvolvedEvent(userID string, evo domain.ArchetypeEvolution) Event {
	return New(ArchetypeEvolved, ArchetypeEvolvedPayloadV1{UserID: userID, From: evo.From, To: evo.To})
}

// NewGlobalXPEvent creates a start or end event for a global XP event
func NewGlobalXPEvent(t Type, ev domain.GlobalXPEvent) Event {
	return New(t, GlobalXPEventPayloadV1{
		EventID:   ev.ID,
		Name:      ev.Name,
		Factor:    ev.MultiplierFactor,
		Faction:   ev.Faction,
		StartTime: ev.StartTime,
		EndTime:   ev.EndTime,
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services.
// Delivery failures never reach the caller.
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
