package domain

import (
	"time"

	"github.com/google/uuid"
)

// DuelStatus is the lifecycle state of a duel
type DuelStatus string

const (
	DuelStatusPending   DuelStatus = "pending"
	DuelStatusActive    DuelStatus = "active"
	DuelStatusCompleted DuelStatus = "completed"
	DuelStatusDeclined  DuelStatus = "declined"
)

// DuelSnapshot captures a participant's XP and raw affinities at a point in time
type DuelSnapshot struct {
	XP      int64 `json:"xp"`
	Warrior int64 `json:"warrior"`
	Mage    int64 `json:"mage"`
}

// Duel is a balance-constrained XP race between two users
type Duel struct {
	ID                  uuid.UUID     `json:"id"`
	ChallengerID        string        `json:"challenger_id"`
	OpponentID          string        `json:"opponent_id"`
	Status              DuelStatus    `json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
	AcceptedAt          *time.Time    `json:"accepted_at,omitempty"`
	ExpiresAt           *time.Time    `json:"expires_at,omitempty"`
	CompletedAt         *time.Time    `json:"completed_at,omitempty"`
	ChallengerStart     DuelSnapshot  `json:"challenger_start"`
	OpponentStart       DuelSnapshot  `json:"opponent_start"`
	ChallengerFinal     *DuelSnapshot `json:"challenger_final,omitempty"`
	OpponentFinal       *DuelSnapshot `json:"opponent_final,omitempty"`
	ChallengerPenalized bool          `json:"challenger_penalized"`
	OpponentPenalized   bool          `json:"opponent_penalized"`
	WinnerID            *string       `json:"winner_id,omitempty"`
	// BonusPending is set when a completed duel still owes its winner bonuses
	BonusPending bool `json:"bonus_pending"`
}

// IsParticipant reports whether userID is one of the two duelists
func (d *Duel) IsParticipant(userID string) bool {
	return d.ChallengerID == userID || d.OpponentID == userID
}

// Penalized returns the sticky penalty flag for a participant
func (d *Duel) Penalized(userID string) bool {
	switch userID {
	case d.ChallengerID:
		return d.ChallengerPenalized
	case d.OpponentID:
		return d.OpponentPenalized
	}
	return false
}

// DuelStat is one tracked submission made by a participant during an active duel
type DuelStat struct {
	DuelID       uuid.UUID `json:"duel_id"`
	UserID       string    `json:"user_id"`
	StatName     string    `json:"stat_name"`
	Value        int       `json:"value"`
	XPEarned     int64     `json:"xp_earned"`
	WarriorDelta int64     `json:"warrior_delta"`
	MageDelta    int64     `json:"mage_delta"`
	Balanced     bool      `json:"balanced"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// DuelOutcomeKind classifies how a duel ended
type DuelOutcomeKind string

const (
	DuelOutcomeWin  DuelOutcomeKind = "win"
	DuelOutcomeDraw DuelOutcomeKind = "draw"
)

// DuelOutcome is the result of completing a duel
type DuelOutcome struct {
	DuelID              uuid.UUID             `json:"duel_id"`
	Kind                DuelOutcomeKind       `json:"kind"`
	WinnerID            *string               `json:"winner_id,omitempty"`
	ChallengerXPGained  int64                 `json:"challenger_xp_gained"`
	OpponentXPGained    int64                 `json:"opponent_xp_gained"`
	ChallengerPenalized bool                  `json:"challenger_penalized"`
	OpponentPenalized   bool                  `json:"opponent_penalized"`
	PerfectBalance      bool                  `json:"perfect_balance"`
	WinBonus            *SecondaryAwardResult `json:"win_bonus,omitempty"`
	PerfectBonus        *SecondaryAwardResult `json:"perfect_bonus,omitempty"`
}
