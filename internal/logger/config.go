package logger

import (
	"log/slog"
	"strings"
)

var levelNames = map[string]slog.Level{
	LogLevelDebug:   slog.LevelDebug,
	LogLevelInfo:    slog.LevelInfo,
	LogLevelWarn:    slog.LevelWarn,
	LogLevelWarning: slog.LevelWarn,
	LogLevelError:   slog.LevelError,
}

// Config controls the process logger
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig creates a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// ParseLevel maps a case-insensitive level name onto slog. Unknown names
// report false and map to info.
func ParseLevel(name string) (slog.Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return slog.LevelInfo, false
	}
	return l, true
}

// IsDevelopment reports whether env names a local environment
func IsDevelopment(env string) bool {
	switch strings.ToLower(env) {
	case EnvironmentDev, EnvironmentDevelopment, EnvironmentTest:
		return true
	}
	return false
}

// LogLevel returns the configured level, info when unset or unknown
func (c Config) LogLevel() slog.Level {
	l, _ := ParseLevel(c.Level)
	return l
}

// IsJSON reports whether lines are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every line. Empty values are left out.
func (c Config) BaseAttributes() []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	for _, kv := range [][2]string{
		{AttrKeyService, c.ServiceName},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
