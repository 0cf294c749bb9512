package logger

// Level names
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Environment names treated as local
const (
	EnvironmentDev         = "dev"
	EnvironmentDevelopment = "development"
	EnvironmentTest        = "test"
)

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
