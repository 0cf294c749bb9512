package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	TrustedProxies []string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	RunMigrations     bool

	MultiplierCap   float64
	MaxStreakBonus  float64
	StateGoodBonus  float64
	TemplarDayBonus float64
	DayTimezone     string
	DayLocation     *time.Location

	StatWeightsPath   string
	ActionCatalogPath string

	DuelDuration         time.Duration
	DuelPendingTTL       time.Duration
	DuelSweepInterval    time.Duration
	XPEventSweepInterval time.Duration
	BoostCleanupInterval time.Duration
	EventLogRetention    int

	WorkerCount     int
	WorkerQueueSize int

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	DiscordToken             string
	DiscordAnnounceChannelID string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "progression-engine"),
		Version:     getEnv("VERSION", "dev"),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "progression"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		RunMigrations:     getEnvAsBool("RUN_MIGRATIONS", true),

		MultiplierCap:   getEnvAsFloat("MULTIPLIER_CAP", DefaultMultiplierCap),
		MaxStreakBonus:  getEnvAsFloat("MAX_STREAK_BONUS", DefaultMaxStreakBonus),
		StateGoodBonus:  getEnvAsFloat("STATE_GOOD_BONUS", DefaultStateGoodBonus),
		TemplarDayBonus: getEnvAsFloat("TEMPLAR_DAY_BONUS", DefaultTemplarDayBonus),
		DayTimezone:     getEnv("DAY_TIMEZONE", DefaultDayTimezone),

		StatWeightsPath:   getEnv("STAT_WEIGHTS_PATH", ""),
		ActionCatalogPath: getEnv("ACTION_CATALOG_PATH", ""),

		DuelDuration:         getEnvAsDuration("DUEL_DURATION", DefaultDuelDuration),
		DuelPendingTTL:       getEnvAsDuration("DUEL_PENDING_TTL", DefaultDuelPendingTTL),
		DuelSweepInterval:    getEnvAsDuration("DUEL_SWEEP_INTERVAL", DefaultDuelSweepInterval),
		XPEventSweepInterval: getEnvAsDuration("XP_EVENT_SWEEP_INTERVAL", DefaultXPEventSweep),
		BoostCleanupInterval: getEnvAsDuration("BOOST_CLEANUP_INTERVAL", DefaultBoostCleanup),
		EventLogRetention:    getEnvAsInt("EVENT_LOG_RETENTION_DAYS", DefaultEventLogRetention),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetter),

		DiscordToken:             getEnv("DISCORD_TOKEN", ""),
		DiscordAnnounceChannelID: getEnv("DISCORD_ANNOUNCE_CHANNEL_ID", ""),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s", ErrMsgMissingAPIKey)
	}

	loc, err := time.LoadLocation(c.DayTimezone)
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgInvalidTimezone, c.DayTimezone, err)
	}
	c.DayLocation = loc

	if c.MultiplierCap <= 0 {
		return fmt.Errorf("%s", ErrMsgInvalidCap)
	}
	if c.MaxStreakBonus < 0 || c.StateGoodBonus < 0 || c.TemplarDayBonus < 0 {
		return fmt.Errorf("%s", ErrMsgInvalidBonus)
	}
	return nil
}

// DiscordEnabled reports whether the announcement sink is configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordAnnounceChannelID != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration parses a Go duration string ("90s", "5m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping blank entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
