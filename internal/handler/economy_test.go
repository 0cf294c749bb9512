package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
)

func TestEconomyHandlers_HandleAward(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockEconomyService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Granted with unlock",
			body: AwardRequest{UserID: "u1", Category: "content", Action: "posted_field_report", Metadata: map[string]interface{}{"words": 400.0}},
			setupMock: func(m *MockEconomyService) {
				m.On("AwardSecondaryXP", mock.Anything, "u1", "content", "posted_field_report", map[string]interface{}{"words": 400.0}).
					Return(&domain.SecondaryAwardResult{Success: true, XP: 150, Multiplier: 1.5}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"xp":150`,
		},
		{
			name: "Cooldown refusal is a 200",
			body: AwardRequest{UserID: "u1", Category: "social", Action: "helped_member"},
			setupMock: func(m *MockEconomyService) {
				m.On("AwardSecondaryXP", mock.Anything, "u1", "social", "helped_member", map[string]interface{}(nil)).
					Return(&domain.SecondaryAwardResult{Error: domain.AwardOnCooldown, RemainingSeconds: 3600}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"remaining_seconds":3600`,
		},
		{
			name:           "Missing action",
			body:           AwardRequest{UserID: "u1", Category: "social"},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"action":"This field is required"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockEconomyService{}
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			NewEconomyHandlers(svc).HandleAward(rec, jsonRequest(t, http.MethodPost, "/api/v1/economy/award", tt.body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestEconomyHandlers_HandleHistory(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantLimit      int
		expectedStatus int
	}{
		{"default limit", "?user_id=u1", DefaultHistoryLimit, http.StatusOK},
		{"explicit limit", "?user_id=u1&limit=5", 5, http.StatusOK},
		{"limit too large", "?user_id=u1&limit=501", 0, http.StatusBadRequest},
		{"limit not a number", "?user_id=u1&limit=ten", 0, http.StatusBadRequest},
		{"zero limit", "?user_id=u1&limit=0", 0, http.StatusBadRequest},
		{"missing user", "", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockEconomyService{}
			entry := domain.AwardLedgerEntry{ID: uuid.New(), UserID: "u1", Category: "social", Action: "helped_member", XPEarned: 50}
			if tt.wantLimit > 0 {
				svc.On("GetAwardHistory", mock.Anything, "u1", tt.wantLimit).Return([]domain.AwardLedgerEntry{entry}, nil)
			}

			rec := httptest.NewRecorder()
			NewEconomyHandlers(svc).HandleHistory(rec, httptest.NewRequest(http.MethodGet, "/api/v1/economy/history"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp struct {
					Data []domain.AwardLedgerEntry `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.Len(t, resp.Data, 1)
				assert.Equal(t, int64(50), resp.Data[0].XPEarned)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestEconomyHandlers_HandleBoosts(t *testing.T) {
	svc := &MockEconomyService{}
	svc.On("GetActiveBoosts", mock.Anything, "u1").Return([]domain.MultiplierBoost{{
		ID: uuid.New(), UserID: "u1", Multiplier: 1.5, AppliesToStats: []string{"Approaches"},
		ExpiresAt: time.Now().Add(time.Hour), Source: "content:posted_field_report",
	}}, nil)

	rec := httptest.NewRecorder()
	NewEconomyHandlers(svc).HandleBoosts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/economy/boosts?user_id=u1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Approaches"`)
}
