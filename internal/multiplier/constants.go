package multiplier

// Defaults for the composite multiplier
const (
	DefaultCap                = 5.0
	DefaultMaxStreakBonus     = 0.25
	DefaultStreakStepBonus    = 0.05
	DefaultStreakStepDays     = 7
	DefaultStateGoodBonus     = 0.10
	DefaultStateGoodThreshold = 8
	DefaultTemplarDayBonus    = 0.15
	DefaultStreakLookbackDays = 365
)

// Factor sources
const (
	FactorSourceGlobalEvent = "global_event"
	FactorSourceFactionBuff = "faction_buff"
)

// Error messages
const (
	ErrMsgListActiveDays  = "failed to list active days"
	ErrMsgListGlobalEvent = "failed to list active global xp events"
	ErrMsgCatchUpBonus    = "failed to compute catch-up bonus"
)

// Log messages
const (
	LogMsgMultiplierComputed = "Multiplier computed"
	LogMsgSkippedBadFactor   = "Ignoring global xp event with non-positive factor"
)
