package middleware

// HTTP header names
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
)

// MaxRequestIDLength bounds caller supplied request ids
const MaxRequestIDLength = 64

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"

// QuietPathPrefixes are health-check paths that are never logged
var QuietPathPrefixes = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Log messages
const (
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
)
