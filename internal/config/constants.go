package config

import "time"

// Configuration file paths
const (
	ConfigPathStatWeights   = "configs/stat_weights.json"
	ConfigPathActionCatalog = "configs/secondary_actions.json"
)

// Defaults
const (
	DefaultPort               = 8080
	DefaultDBMaxConns         = 20
	DefaultDBMaxConnIdleTime  = 5 * time.Minute
	DefaultDBMaxConnLifetime  = time.Hour
	DefaultDayTimezone        = "UTC"
	DefaultDuelDuration       = 24 * time.Hour
	DefaultDuelPendingTTL     = 48 * time.Hour
	DefaultDuelSweepInterval  = 5 * time.Minute
	DefaultXPEventSweep       = time.Minute
	DefaultBoostCleanup       = time.Hour
	DefaultEventLogRetention  = 30
	DefaultEventMaxRetries    = 5
	DefaultEventRetryDelay    = 2 * time.Second
	DefaultEventDeadLetter    = "logs/event_deadletter.jsonl"
	DefaultWorkerCount        = 4
	DefaultWorkerQueueSize    = 64
	DefaultMultiplierCap      = 5.0
	DefaultMaxStreakBonus     = 0.25
	DefaultStateGoodBonus     = 0.10
	DefaultTemplarDayBonus    = 0.15
	DefaultShutdownTimeout    = 15 * time.Second
	DefaultRequestBodyMaxSize = 1 << 20
)

// Error messages
const (
	ErrMsgInvalidPort     = "invalid PORT value"
	ErrMsgMissingAPIKey   = "API_KEY environment variable must be set for security"
	ErrMsgInvalidTimezone = "invalid DAY_TIMEZONE"
	ErrMsgInvalidCap      = "MULTIPLIER_CAP must be positive"
	ErrMsgInvalidBonus    = "bonus values must not be negative"
)

// .env checks
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"

	ErrMsgMissingSchemaVersion  = "ENV_SCHEMA_VERSION is not set, update your .env file"
	ErrMsgSchemaVersionMismatch = "ENV_SCHEMA_VERSION mismatch, your .env file may be outdated"
	ErrMsgMissingEnvVars        = "missing required environment variables"

	WarnMsgExampleDBPassword     = "DB_PASSWORD is the example value, set a real password"
	WarnMsgExampleAPIKey         = "API_KEY is the example value, generate one with: openssl rand -hex 32"
	WarnMsgHalfDiscordConfig     = "DISCORD_TOKEN and DISCORD_ANNOUNCE_CHANNEL_ID must both be set to enable announcements"
	WarnMsgCatalogWithoutWeights = "ACTION_CATALOG_PATH is set but STAT_WEIGHTS_PATH is not, built-in stat weights will be used"
)
