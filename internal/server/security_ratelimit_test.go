package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) *strings.Reader { return strings.NewReader(s) }

func TestRateLimitMiddleware(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	h := RateLimitMiddleware(nil, detector)(okHandler())

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/api/v1/duels", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < DefaultRequestLimit; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	other := httptest.NewRequest(http.MethodGet, "/api/v1/duels", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDetector_WindowResets(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	detector := NewSuspiciousActivityDetectorWithConfig(DetectorConfig{Window: time.Minute, RequestLimit: 2}, clock)

	assert.True(t, detector.RecordRequest("ip"))
	assert.True(t, detector.RecordRequest("ip"))
	assert.False(t, detector.RecordRequest("ip"))

	now = now.Add(61 * time.Second)
	assert.True(t, detector.RecordRequest("ip"))
}
