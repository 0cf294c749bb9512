package bootstrap

import (
	"log/slog"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/config"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// SetupLogger installs the process logger. Source locations are only
// attached in development.
func SetupLogger(cfg *config.Config) *slog.Logger {
	addSource := logger.IsDevelopment(cfg.Environment)

	l := logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	l.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"day_timezone", cfg.DayTimezone)

	l.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"discord_enabled", cfg.DiscordEnabled())

	return l
}
