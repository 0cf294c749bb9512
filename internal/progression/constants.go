package progression

// State bounds for self-reported daily state
const (
	MinState = 1
	MaxState = 10
)

// XP source labels
const (
	SourceStatSubmission = "stat_submission"
)

// StreakLookbackDays bounds the profile streak scan
const StreakLookbackDays = 365

// Error messages
const (
	ErrMsgCalculate        = "failed to calculate stat yield"
	ErrMsgLoadProgression  = "failed to load user progression"
	ErrMsgListBoosts       = "failed to list active boosts"
	ErrMsgUpsertActivity   = "failed to record daily activity"
	ErrMsgComputeMult      = "failed to compute multiplier"
	ErrMsgApplyDelta       = "failed to apply progression delta"
	ErrMsgListActiveDays   = "failed to list active days"
	ErrMsgGetActivity      = "failed to read daily activity"
	ErrMsgSetFaction       = "failed to set faction"
	ErrMsgResetProgression = "failed to reset progression"
	ErrMsgAwardChat        = "failed to award chat engagement"
	ErrMsgBeginTx          = "failed to begin submission transaction"
	ErrMsgCommitSubmission = "failed to commit stat submission"
)

// Log messages
const (
	LogMsgSubmissionApplied = "Stat submission applied"
	LogMsgLevelUp           = "User leveled up"
	LogMsgArchetypeEvolved  = "User archetype evolved"
	LogMsgDuelTrackFailed   = "Failed to track duel stat"
	LogMsgFactionChanged    = "User faction changed"
	LogMsgProgressionReset  = "User progression reset"
)

// Chat engagement catalog action
const (
	ChatCategory = "chat"
	ChatAction   = "engagement"
)
