package domain

import (
	"time"

	"github.com/google/uuid"
)

// AwardLedgerEntry is an immutable record of a secondary XP award.
// The ledger is the only source for cooldown, daily cap and one-time checks.
type AwardLedgerEntry struct {
	ID        uuid.UUID              `json:"id"`
	UserID    string                 `json:"user_id"`
	Category  string                 `json:"category"`
	Action    string                 `json:"action"`
	XPEarned  int64                  `json:"xp_earned"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	AwardDay  time.Time              `json:"award_day"`
	DailySlot *int                   `json:"daily_slot,omitempty"`
	OneTime   bool                   `json:"one_time"`
	Reference *string                `json:"reference,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// MetadataKeyReference names the award metadata value that makes an award
// idempotent. A second award of the same action with the same reference is
// refused as AlreadyClaimed.
const MetadataKeyReference = "reference"

// ReferenceOf returns the string reference carried in award metadata, or nil
func ReferenceOf(metadata map[string]interface{}) *string {
	ref, ok := metadata[MetadataKeyReference].(string)
	if !ok || ref == "" {
		return nil
	}
	return &ref
}

// ActionKey returns "category.action"
func (e AwardLedgerEntry) ActionKey() string {
	return ActionKey(e.Category, e.Action)
}

// ActionKey joins a category and action into the catalog key form
func ActionKey(category, action string) string {
	return category + "." + action
}

// MultiplierBoost is a temporary stat multiplier unlocked by a secondary action
type MultiplierBoost struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	Multiplier     float64   `json:"multiplier"`
	AppliesToStats []string  `json:"applies_to_stats"`
	ExpiresAt      time.Time `json:"expires_at"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}

// ActiveAt reports whether the boost is still live at t
func (b MultiplierBoost) ActiveAt(t time.Time) bool {
	return t.Before(b.ExpiresAt)
}

// AppliesTo reports whether the boost covers stat. An empty list covers every stat.
func (b MultiplierBoost) AppliesTo(stat string) bool {
	if len(b.AppliesToStats) == 0 {
		return true
	}
	for _, s := range b.AppliesToStats {
		if s == stat {
			return true
		}
	}
	return false
}

// AwardFailureReason is the reason string callers branch on when an award is refused
type AwardFailureReason string

const (
	AwardInvalidAction     AwardFailureReason = "InvalidAction"
	AwardAlreadyClaimed    AwardFailureReason = "AlreadyClaimed"
	AwardOnCooldown        AwardFailureReason = "OnCooldown"
	AwardDailyLimitReached AwardFailureReason = "DailyLimitReached"
)

// SecondaryAwardResult is the typed outcome of a secondary XP award.
// Refusals are expected outcomes: Success is false and Error names the reason.
type SecondaryAwardResult struct {
	Success          bool               `json:"success"`
	XP               int64              `json:"xp"`
	Description      string             `json:"description,omitempty"`
	Multiplier       float64            `json:"multiplier,omitempty"`
	Unlocked         *MultiplierBoost   `json:"unlocked,omitempty"`
	LevelUp          *LevelUp           `json:"level_up,omitempty"`
	Error            AwardFailureReason `json:"error,omitempty"`
	RemainingSeconds int64              `json:"remaining_seconds,omitempty"`
}

// Refused builds a failed award result
func Refused(reason AwardFailureReason) *SecondaryAwardResult {
	return &SecondaryAwardResult{Success: false, Error: reason}
}
