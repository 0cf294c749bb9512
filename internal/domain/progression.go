package domain

import "time"

// Archetype is a play-style label derived from the warrior/mage axis
type Archetype string

const (
	ArchetypeNone    Archetype = "none"
	ArchetypeWarrior Archetype = "warrior"
	ArchetypeMage    Archetype = "mage"
	ArchetypeTemplar Archetype = "templar"
)

// Valid reports whether a is one of the known archetype labels
func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeNone, ArchetypeWarrior, ArchetypeMage, ArchetypeTemplar:
		return true
	}
	return false
}

// UserProgression is the per-user XP and affinity state.
//
// WarriorAffinity and MageAffinity are raw running totals used for duel balance
// and the raw archetype label. ArchetypeWarrior/Mage/Templar are dampened scores
// written only by the dampening path. The two sets are never reconciled.
type UserProgression struct {
	UserID           string    `json:"user_id"`
	CumulativeXP     int64     `json:"cumulative_xp"`
	WarriorAffinity  int64     `json:"warrior_affinity"`
	MageAffinity     int64     `json:"mage_affinity"`
	ArchetypeWarrior float64   `json:"archetype_warrior"`
	ArchetypeMage    float64   `json:"archetype_mage"`
	ArchetypeTemplar float64   `json:"archetype_templar"`
	Faction          *string   `json:"faction,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FactionName returns the faction or "" when the user has none
func (p *UserProgression) FactionName() string {
	if p == nil || p.Faction == nil {
		return ""
	}
	return *p.Faction
}

// ProgressionDelta is an atomic increment applied to a UserProgression row
type ProgressionDelta struct {
	XP               int64
	WarriorAffinity  int64
	MageAffinity     int64
	ArchetypeWarrior float64
	ArchetypeMage    float64
	ArchetypeTemplar float64
}

// IsZero reports whether applying d would change nothing
func (d ProgressionDelta) IsZero() bool {
	return d == ProgressionDelta{}
}

// DailyActivityRecord is one user's activity summary for one calendar day
type DailyActivityRecord struct {
	UserID            string    `json:"user_id"`
	Day               time.Time `json:"day"`
	Active            bool      `json:"active"`
	State             *int      `json:"state,omitempty"`
	DayWarrior        int64     `json:"day_warrior"`
	DayMage           int64     `json:"day_mage"`
	DominantArchetype Archetype `json:"dominant_archetype"`
	ChatEngaged       bool      `json:"chat_engaged"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DailyActivityUpdate is merged into the stored record monotonically:
// booleans only turn on, State overwrites only when set, day totals accumulate.
type DailyActivityUpdate struct {
	UserID      string
	Day         time.Time
	Active      bool
	State       *int
	WarriorAdd  int64
	MageAdd     int64
	ChatEngaged bool
}

// LevelUp describes a level transition caused by an XP change
type LevelUp struct {
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	OldClass string `json:"old_class"`
	NewClass string `json:"new_class"`
}

// ArchetypeEvolution describes a change of the raw archetype label
type ArchetypeEvolution struct {
	From Archetype `json:"from"`
	To   Archetype `json:"to"`
}
