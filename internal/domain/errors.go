package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Input errors
	ErrMsgInvalidInput     = "invalid input"
	ErrMsgNegativeStat     = "stat count must not be negative"
	ErrMsgStatOverflow     = "stat yield exceeds the supported range"
	ErrMsgInvalidState     = "state must be between 1 and 10"
	ErrMsgInvalidDay       = "invalid day key"
	ErrMsgInvalidLevelData = "invalid level threshold table"

	// Duel errors
	ErrMsgDuelNotFound       = "duel not found"
	ErrMsgSelfDuel           = "cannot duel yourself"
	ErrMsgDuelAlreadyActive  = "participant already has an open duel"
	ErrMsgDuelNotPending     = "duel is not pending"
	ErrMsgDuelNotActive      = "duel is not active"
	ErrMsgDuelNotExpired     = "duel has not expired yet"
	ErrMsgNotDuelParticipant = "user is not the duel opponent"

	// Global XP event errors
	ErrMsgXPEventNotFound = "xp event not found"
	ErrMsgInvalidXPWindow = "xp event must end after it starts"

	// Ledger errors
	ErrMsgDuplicateAward = "award rejected by ledger uniqueness constraint"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)
	ErrNegativeStat     = errors.New(ErrMsgNegativeStat)
	ErrStatOverflow     = errors.New(ErrMsgStatOverflow)
	ErrInvalidState     = errors.New(ErrMsgInvalidState)
	ErrInvalidDay       = errors.New(ErrMsgInvalidDay)
	ErrInvalidLevelData = errors.New(ErrMsgInvalidLevelData)

	ErrDuelNotFound       = errors.New(ErrMsgDuelNotFound)
	ErrSelfDuel           = errors.New(ErrMsgSelfDuel)
	ErrDuelAlreadyActive  = errors.New(ErrMsgDuelAlreadyActive)
	ErrDuelNotPending     = errors.New(ErrMsgDuelNotPending)
	ErrDuelNotActive      = errors.New(ErrMsgDuelNotActive)
	ErrDuelNotExpired     = errors.New(ErrMsgDuelNotExpired)
	ErrNotDuelParticipant = errors.New(ErrMsgNotDuelParticipant)

	ErrXPEventNotFound = errors.New(ErrMsgXPEventNotFound)
	ErrInvalidXPWindow = errors.New(ErrMsgInvalidXPWindow)

	ErrDuplicateAward = errors.New(ErrMsgDuplicateAward)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
