package cooldown

// =============================================================================
// Hash Constants
// =============================================================================

const (
	// HashSeparator joins user and action when hashing advisory lock keys
	HashSeparator = ":"

	// HashMaskPositiveInt64 clears the sign bit so lock keys are positive int64 values
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// =============================================================================
// SQL Query Constants
// =============================================================================

const (
	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgCheckClaimedFailed = "failed to check one-time claim: %w"
	ErrMsgLastAwardFailed    = "failed to read last award: %w"
	ErrMsgCountAwardsFailed  = "failed to count awards for day: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgAwardRefused = "Secondary award refused by ledger policy"
)

// =============================================================================
// User-facing Format Strings
// =============================================================================

const (
	// FmtCooldownWithMinutes formats remaining cooldown with minutes and seconds
	FmtCooldownWithMinutes = "You can %s again in %dm %ds"

	// FmtCooldownSecondsOnly formats remaining cooldown with seconds only
	FmtCooldownSecondsOnly = "You can %s again in %ds"
)

// SecondsPerMinute is used for time duration formatting
const SecondsPerMinute = 60
