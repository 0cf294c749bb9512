package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	InitLoggerWithWriter(Config{
		Level:       LogLevelInfo,
		Format:      LogFormatJSON,
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: EnvironmentTest,
	}, &buf)

	Info("test message", "key", "value", "number", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry[AttrKeyService])
	assert.Equal(t, "1.0.0", entry[AttrKeyVersion])
	assert.Equal(t, EnvironmentTest, entry[AttrKeyEnvironment])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	InitLoggerWithWriter(Config{Level: LogLevelWarn, Format: LogFormatText}, &buf)

	Debug("hidden")
	Info("hidden too")
	Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestRequestIDContext(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	InitLoggerWithWriter(Config{Level: LogLevelDebug, Format: LogFormatJSON}, &buf)

	ctx := WithRequestID(context.Background(), "test-req-123")
	assert.Equal(t, "test-req-123", GetRequestID(ctx))
	assert.Equal(t, "", GetRequestID(context.Background()))

	FromContext(ctx).Info("with id")
	assert.True(t, strings.Contains(buf.String(), `"request_id":"test-req-123"`))
}

func TestConfigLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{Level: in}.LogLevel(), in)
	}
}

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel(" Warn ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, l)

	l, ok = ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, IsDevelopment("dev"))
	assert.True(t, IsDevelopment("Development"))
	assert.True(t, IsDevelopment(EnvironmentTest))
	assert.False(t, IsDevelopment("prod"))
	assert.False(t, IsDevelopment(""))
}

func TestBaseAttributesSkipsEmpty(t *testing.T) {
	attrs := Config{ServiceName: "svc"}.BaseAttributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, AttrKeyService, attrs[0].Key)
}
