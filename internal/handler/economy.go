package handler

import (
	"net/http"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/economy"
)

// EconomyHandlers serves the secondary XP endpoints
type EconomyHandlers struct {
	service economy.Service
}

// NewEconomyHandlers creates economy handlers
func NewEconomyHandlers(service economy.Service) *EconomyHandlers {
	return &EconomyHandlers{service: service}
}

// AwardRequest triggers one catalog action
type AwardRequest struct {
	UserID   string                 `json:"user_id" validate:"required,userid"`
	Category string                 `json:"category" validate:"required,max=64"`
	Action   string                 `json:"action" validate:"required,max=64"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// HandleAward grants secondary XP. Limit refusals are typed results, not errors.
// @Summary Award secondary XP
// @Tags economy
// @Accept json
// @Produce json
// @Param request body AwardRequest true "Catalog action"
// @Success 200 {object} domain.SecondaryAwardResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/economy/award [post]
func (h *EconomyHandlers) HandleAward(w http.ResponseWriter, r *http.Request) {
	var req AwardRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Award XP"); err != nil {
		return
	}

	result, err := h.service.AwardSecondaryXP(r.Context(), req.UserID, req.Category, req.Action, req.Metadata)
	if err != nil {
		respondServiceError(w, r, "Award XP", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleHistory lists a user's ledger entries newest first
// @Summary Award history
// @Tags economy
// @Produce json
// @Param user_id query string true "User ID"
// @Param limit query int false "Max entries (1-500)"
// @Success 200 {object} DataResponse
// @Router /api/v1/economy/history [get]
func (h *EconomyHandlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, QueryParamUserID)
	if !ok {
		return
	}
	limit, ok := GetLimitParam(r, w, DefaultHistoryLimit, MaxHistoryLimit)
	if !ok {
		return
	}

	entries, err := h.service.GetAwardHistory(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "Award history", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: entries})
}

// HandleBoosts lists a user's unexpired multiplier boosts
// @Summary Active boosts
// @Tags economy
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} DataResponse
// @Router /api/v1/economy/boosts [get]
func (h *EconomyHandlers) HandleBoosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, QueryParamUserID)
	if !ok {
		return
	}

	boosts, err := h.service.GetActiveBoosts(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Active boosts", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: boosts})
}
