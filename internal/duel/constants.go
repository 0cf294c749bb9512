package duel

import "time"

// Defaults
const (
	DefaultDuration   = 24 * time.Hour
	DefaultPendingTTL = 48 * time.Hour
)

// Bonus catalog actions paid through the secondary economy
const (
	BonusCategory       = "duel"
	BonusActionWin      = "win"
	BonusActionPerfect  = "perfect_balance"
	MetadataKeyDuelID   = "duel_id"
	MetadataKeyOpponent = "opponent_id"
)

// Error messages
const (
	ErrMsgSnapshot         = "failed to snapshot participant"
	ErrMsgCreateDuel       = "failed to create duel"
	ErrMsgGetDuel          = "failed to get duel"
	ErrMsgOpenDuel         = "failed to check open duels"
	ErrMsgAcceptDuel       = "failed to accept duel"
	ErrMsgDeclineDuel      = "failed to decline duel"
	ErrMsgActiveDuel       = "failed to get active duel"
	ErrMsgRecordStat       = "failed to record duel stat"
	ErrMsgSetPenalty       = "failed to set duel penalty"
	ErrMsgCompleteDuel     = "failed to complete duel"
	ErrMsgListExpired      = "failed to list expired duels"
	ErrMsgListStale        = "failed to list stale duels"
	ErrMsgPayBonus         = "failed to pay duel bonus"
	ErrMsgMarkBonusPaid    = "failed to mark duel bonus paid"
	ErrMsgListPendingBonus = "failed to list duels owing bonuses"
	ErrMsgMissingFinals    = "completed duel has no final snapshots"
)

// Log messages
const (
	LogMsgDuelCreated    = "Duel created"
	LogMsgDuelAccepted   = "Duel accepted"
	LogMsgDuelDeclined   = "Duel declined"
	LogMsgDuelPenalized  = "Duel participant left the balance window"
	LogMsgDuelCompleted  = "Duel completed"
	LogMsgBonusFailed    = "Failed to award duel bonus"
	LogMsgBonusRefused   = "Duel bonus refused by the economy"
	LogMsgPayoutRetried  = "Retrying owed duel bonus"
	LogMsgSweepFailed    = "Failed to settle duel during sweep"
	LogMsgSweepCompleted = "Duel sweep completed"
	LogMsgAlreadySettled = "Duel already settled by another worker"
)
