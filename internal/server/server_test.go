package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/duel"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/progression"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/sse"
)

const testAPIKey = "test-key"

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

// Embedding the interfaces leaves unused methods nil; the tests only route to
// the ones overridden here.
type stubProgression struct {
	progression.Service
}

func (stubProgression) GetProfile(_ context.Context, userID string) (*progression.Profile, error) {
	if userID == "boom" {
		panic("profile exploded")
	}
	return &progression.Profile{UserID: userID, CumulativeXP: 10}, nil
}

type stubDuels struct {
	duel.Service
}

func (stubDuels) GetDuel(context.Context, uuid.UUID) (*domain.Duel, error) {
	return nil, domain.ErrDuelNotFound
}

func newTestServer(db stubPinger) http.Handler {
	return NewServer(Config{Port: 0, APIKey: testAPIKey, Version: "test"}, Deps{
		DB:          db,
		Progression: stubProgression{},
		Duels:       stubDuels{},
	}).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, withKey bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if withKey {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_PublicEndpoints(t *testing.T) {
	h := newTestServer(stubPinger{})

	rec := do(t, h, http.MethodGet, "/healthz", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", false).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/metrics", false).Code)

	rec = do(t, h, http.MethodGet, "/version", false)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)

	rec = do(t, h, http.MethodGet, "/swagger/doc.json", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/duels")
}

func TestServer_ReadyzReportsDatabaseDown(t *testing.T) {
	h := newTestServer(stubPinger{err: context.DeadlineExceeded})
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/readyz", false).Code)
}

func TestServer_APIRequiresKey(t *testing.T) {
	h := newTestServer(stubPinger{})

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/v1/progression/profile?user_id=u1", false).Code)

	rec := do(t, h, http.MethodGet, "/api/v1/progression/profile?user_id=u1", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cumulative_xp":10`)
}

func TestServer_RoutesDuelsAndMapsErrors(t *testing.T) {
	h := newTestServer(stubPinger{})

	rec := do(t, h, http.MethodGet, "/api/v1/duels/"+uuid.NewString(), true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/nope", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/duels/"+uuid.NewString(), true)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_RecoversFromPanics(t *testing.T) {
	h := newTestServer(stubPinger{})

	rec := do(t, h, http.MethodGet, "/api/v1/progression/profile?user_id=boom", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_EventStreamRoute(t *testing.T) {
	assert.Equal(t, http.StatusNotFound,
		do(t, newTestServer(stubPinger{}), http.MethodGet, "/api/v1/events/stream?types=bogus", true).Code)

	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	h := NewServer(Config{APIKey: testAPIKey}, Deps{DB: stubPinger{}, Stream: hub}).Handler()
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/v1/events/stream", false).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/events/stream?types=bogus", true).Code)
}
