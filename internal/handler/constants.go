package handler

// Request handling messages. These never expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgMissingDuelID         = "Missing duel ID"
	ErrMsgInvalidDuelID         = "Invalid duel ID"
	ErrMsgMissingEventID        = "Missing event ID"
	ErrMsgInvalidEventID        = "Invalid event ID"
	ErrMsgInvalidDay            = "Invalid day, expected YYYY-MM-DD"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgNegativeStatError   = "Stat counts must not be negative"
	ErrMsgStatOverflowError   = "Stat counts are too large"
	ErrMsgInvalidStateError   = "State must be between 1 and 10"
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgDuelNotFoundError   = "Duel not found"
	ErrMsgSelfDuelError       = "You cannot duel yourself"
	ErrMsgDuelActiveError     = "One of the participants already has an open duel"
	ErrMsgDuelNotPendingError = "Duel is no longer pending"
	ErrMsgDuelNotActiveError  = "Duel is not active"
	ErrMsgDuelNotExpiredError = "Duel has not finished yet"
	ErrMsgNotParticipantError = "Only the challenged user can do that"
	ErrMsgEventNotFoundError  = "XP event not found"
	ErrMsgEventWindowError    = "XP event must end after it starts"
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."
)

// Success messages
const (
	MsgFactionUpdated    = "Faction updated"
	MsgFactionCleared    = "Faction cleared"
	MsgProgressionReset  = "Progression reset"
	MsgDuelDeclined      = "Duel declined"
	MsgXPEventEnded      = "XP event ended"
	MsgHealthOK          = "ok"
	MsgHealthUnavailable = "unavailable"
	MsgDatabaseDown      = "database connection failed"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceError    = "Service call failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
)

// Query parameters and limits
const (
	QueryParamUserID = "user_id"
	QueryParamLimit  = "limit"

	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)
