package domain

import (
	"time"

	"github.com/google/uuid"
)

// GlobalXPEvent is a time-boxed multiplicative XP modifier.
// A nil Faction applies to every user; otherwise only to members of that faction.
type GlobalXPEvent struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	MultiplierFactor float64   `json:"multiplier_factor"`
	Faction          *string   `json:"faction,omitempty"`
	StartAnnounced   bool      `json:"start_announced"`
	EndAnnounced     bool      `json:"end_announced"`
	CreatedAt        time.Time `json:"created_at"`
}

// ActiveAt reports whether t lies in [StartTime, EndTime)
func (e GlobalXPEvent) ActiveAt(t time.Time) bool {
	return !t.Before(e.StartTime) && t.Before(e.EndTime)
}

// AppliesToFaction reports whether the event affects a member of faction
func (e GlobalXPEvent) AppliesToFaction(faction string) bool {
	return e.Faction == nil || *e.Faction == faction
}
