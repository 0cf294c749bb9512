package postgres

// PostgreSQL error codes
const (
	pgCodeUniqueViolation = "23505"
)

// Error messages
const (
	ErrMsgBeginTx          = "failed to begin transaction"
	ErrMsgAcquireLock      = "failed to acquire award lock"
	ErrMsgGetProgression   = "failed to get progression"
	ErrMsgApplyDelta       = "failed to apply progression delta"
	ErrMsgUpsertActivity   = "failed to upsert daily activity"
	ErrMsgGetActivity      = "failed to get daily activity"
	ErrMsgListActiveDays   = "failed to list active days"
	ErrMsgSetFaction       = "failed to set faction"
	ErrMsgResetProgression = "failed to reset progression"
	ErrMsgInsertLedger     = "failed to insert ledger entry"
	ErrMsgQueryLedger      = "failed to query award ledger"
	ErrMsgMarshalMetadata  = "failed to marshal metadata"
	ErrMsgInsertBoost      = "failed to insert boost"
	ErrMsgQueryBoosts      = "failed to query boosts"
	ErrMsgDeleteBoosts     = "failed to delete expired boosts"
	ErrMsgInsertDuel       = "failed to insert duel"
	ErrMsgQueryDuel        = "failed to query duel"
	ErrMsgUpdateDuel       = "failed to update duel"
	ErrMsgInsertDuelStat   = "failed to insert duel stat"
	ErrMsgInsertXPEvent    = "failed to insert xp event"
	ErrMsgQueryXPEvent     = "failed to query xp events"
	ErrMsgUpdateXPEvent    = "failed to update xp event"
	ErrMsgLogEvent         = "failed to log event"
	ErrMsgQueryEvents      = "failed to query events"
	ErrMsgCleanupEvents    = "failed to clean up events"
)

// Advisory lock namespace for duel creation
const duelLockPrefix = "duel:"
