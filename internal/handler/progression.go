package handler

import (
	"net/http"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/progression"
)

// ProgressionHandlers serves stat submission and profile endpoints
type ProgressionHandlers struct {
	service progression.Service
}

// NewProgressionHandlers creates progression handlers
func NewProgressionHandlers(service progression.Service) *ProgressionHandlers {
	return &ProgressionHandlers{service: service}
}

// SubmitStatsRequest is one day's stat counts
type SubmitStatsRequest struct {
	UserID string         `json:"user_id" validate:"required,userid"`
	Day    string         `json:"day,omitempty"`
	Stats  map[string]int `json:"stats" validate:"required,min=1,max=64,dive,keys,required,max=64,endkeys,lte=1000000"`
	State  *int           `json:"state,omitempty" validate:"omitempty,gte=1,lte=10"`
}

// UserRequest identifies a single user
type UserRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
}

// SetFactionRequest sets or clears (empty faction) the user's faction
type SetFactionRequest struct {
	UserID  string `json:"user_id" validate:"required,userid"`
	Faction string `json:"faction" validate:"max=64"`
}

// HandleSubmitStats applies a stat submission
// @Summary Submit daily stats
// @Tags progression
// @Accept json
// @Produce json
// @Param request body SubmitStatsRequest true "Stat counts"
// @Success 200 {object} progression.Result
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/progression/submit [post]
func (h *ProgressionHandlers) HandleSubmitStats(w http.ResponseWriter, r *http.Request) {
	var req SubmitStatsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit stats"); err != nil {
		return
	}

	sub := progression.Submission{UserID: req.UserID, Stats: req.Stats, State: req.State}
	if req.Day != "" {
		day, err := domain.ParseDay(req.Day)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDay)
			return
		}
		sub.Day = &day
	}

	result, err := h.service.SubmitStats(r.Context(), sub)
	if err != nil {
		respondServiceError(w, r, "Submit stats", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleGetProfile returns a user's progression view
// @Summary Get progression profile
// @Tags progression
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} progression.Profile
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/progression/profile [get]
func (h *ProgressionHandlers) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, QueryParamUserID)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// HandleChatEngagement awards the once-a-day chat engagement XP. A refused
// award is still a 200 carrying the refusal reason.
// @Summary Record chat engagement
// @Tags progression
// @Accept json
// @Produce json
// @Param request body UserRequest true "User"
// @Success 200 {object} domain.SecondaryAwardResult
// @Router /api/v1/progression/chat [post]
func (h *ProgressionHandlers) HandleChatEngagement(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Chat engagement"); err != nil {
		return
	}

	result, err := h.service.RecordChatEngagement(r.Context(), req.UserID)
	if err != nil {
		respondServiceError(w, r, "Chat engagement", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleSetFaction sets or clears the user's faction
// @Summary Set faction
// @Tags progression
// @Accept json
// @Produce json
// @Param request body SetFactionRequest true "Faction"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/progression/faction [put]
func (h *ProgressionHandlers) HandleSetFaction(w http.ResponseWriter, r *http.Request) {
	var req SetFactionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set faction"); err != nil {
		return
	}

	if err := h.service.SetFaction(r.Context(), req.UserID, req.Faction); err != nil {
		respondServiceError(w, r, "Set faction", err)
		return
	}

	msg := MsgFactionUpdated
	if req.Faction == "" {
		msg = MsgFactionCleared
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: msg})
}

// HandleResetProgression zeroes a user's progression
// @Summary Reset a user's progression
// @Tags admin
// @Accept json
// @Produce json
// @Param request body UserRequest true "User"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/progression/reset [post]
func (h *ProgressionHandlers) HandleResetProgression(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Reset progression"); err != nil {
		return
	}

	if err := h.service.ResetUser(r.Context(), req.UserID); err != nil {
		respondServiceError(w, r, "Reset progression", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgProgressionReset})
}
