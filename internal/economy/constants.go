package economy

import "time"

// Built-in catalog categories and actions
const (
	CategoryOnboarding  = "onboarding"
	CategoryCourse      = "course"
	CategoryWingman     = "wingman"
	CategoryChat        = "chat"
	CategoryCheckin     = "checkin"
	CategoryFieldReport = "field_report"
	CategoryDuel        = "duel"
	CategoryAnalytics   = "analytics"

	ActionProfileComplete = "profile_complete"
	ActionIntroPost       = "intro_post"
	ActionFirstVideo      = "first_video"
	ActionModuleComplete  = "module_complete"
	ActionQuizPassed      = "quiz_passed"
	ActionSessionComplete = "session_complete"
	ActionEngagement      = "engagement"
	ActionDaily           = "daily"
	ActionSubmitted       = "submitted"
	ActionWin             = "win"
	ActionPerfectBalance  = "perfect_balance"
	ActionRiskReview      = "risk_review"
)

// MetadataKeyScore etc. name the metadata values unlock tiers compare against
const (
	MetadataKeyScore      = "score"
	MetadataKeyApproaches = "approaches"
	MetadataKeyDuelID     = "duel_id"
)

// DefaultHistoryLimit bounds award history reads
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// BoostRetention is how long expired boosts are kept before the purge job removes them
const BoostRetention = 24 * time.Hour

// XP source labels
const (
	SourceSecondary = "secondary"
)

// Error messages
const (
	ErrMsgReadCatalog       = "failed to read action catalog"
	ErrMsgParseCatalog      = "failed to parse action catalog"
	ErrMsgInvalidCatalog    = "invalid action catalog"
	ErrMsgEnsureProgression = "failed to load user progression"
	ErrMsgComputeMultiplier = "failed to compute multiplier"
	ErrMsgBeginAward        = "failed to begin award transaction"
	ErrMsgEvaluateLimits    = "failed to evaluate award limits"
	ErrMsgInsertLedger      = "failed to record award"
	ErrMsgApplyXP           = "failed to apply award xp"
	ErrMsgCreateBoost       = "failed to create multiplier boost"
	ErrMsgCommitAward       = "failed to commit award"
	ErrMsgListAwards        = "failed to list awards"
	ErrMsgListBoosts        = "failed to list active boosts"
	ErrMsgDeleteBoosts      = "failed to delete expired boosts"
)

// Log messages
const (
	LogMsgAwardGranted  = "Secondary XP awarded"
	LogMsgAwardRefused  = "Secondary XP refused"
	LogMsgBoostUnlocked = "Multiplier boost unlocked"
	LogMsgBoostsPurged  = "Expired multiplier boosts purged"
	LogMsgRaceDetected  = "Ledger constraint rejected concurrent award"
)
