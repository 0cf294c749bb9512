package handler

import (
	"net/http"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/duel"
)

// DuelHandler serves the duel lifecycle endpoints
type DuelHandler struct {
	service duel.Service
}

// NewDuelHandler creates duel handlers
func NewDuelHandler(service duel.Service) *DuelHandler {
	return &DuelHandler{service: service}
}

// CreateDuelRequest challenges another user
type CreateDuelRequest struct {
	ChallengerID string `json:"challenger_id" validate:"required,userid"`
	OpponentID   string `json:"opponent_id" validate:"required,userid,nefield=ChallengerID"`
}

// DuelActionRequest names the user accepting or declining
type DuelActionRequest struct {
	UserID string `json:"user_id" validate:"required,userid"`
}

// HandleCreate opens a pending duel
// @Summary Challenge a user to a duel
// @Tags duels
// @Accept json
// @Produce json
// @Param request body CreateDuelRequest true "Participants"
// @Success 201 {object} domain.Duel
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/duels [post]
func (h *DuelHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateDuelRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create duel"); err != nil {
		return
	}

	d, err := h.service.CreateDuel(r.Context(), req.ChallengerID, req.OpponentID)
	if err != nil {
		respondServiceError(w, r, "Create duel", err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

// HandleGet returns a duel by id
// @Summary Get a duel
// @Tags duels
// @Produce json
// @Param id path string true "Duel ID"
// @Success 200 {object} domain.Duel
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/duels/{id} [get]
func (h *DuelHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id", ErrMsgMissingDuelID, ErrMsgInvalidDuelID)
	if !ok {
		return
	}

	d, err := h.service.GetDuel(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get duel", err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// HandleAccept starts a pending duel. Only the opponent may accept.
// @Summary Accept a duel
// @Tags duels
// @Accept json
// @Produce json
// @Param id path string true "Duel ID"
// @Param request body DuelActionRequest true "Opponent"
// @Success 200 {object} domain.Duel
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/duels/{id}/accept [post]
func (h *DuelHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id", ErrMsgMissingDuelID, ErrMsgInvalidDuelID)
	if !ok {
		return
	}
	var req DuelActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Accept duel"); err != nil {
		return
	}

	d, err := h.service.AcceptDuel(r.Context(), id, req.UserID)
	if err != nil {
		respondServiceError(w, r, "Accept duel", err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// HandleDecline declines a pending duel
// @Summary Decline a duel
// @Tags duels
// @Accept json
// @Produce json
// @Param id path string true "Duel ID"
// @Param request body DuelActionRequest true "Opponent"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/duels/{id}/decline [post]
func (h *DuelHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id", ErrMsgMissingDuelID, ErrMsgInvalidDuelID)
	if !ok {
		return
	}
	var req DuelActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Decline duel"); err != nil {
		return
	}

	if err := h.service.DeclineDuel(r.Context(), id, req.UserID); err != nil {
		respondServiceError(w, r, "Decline duel", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDuelDeclined})
}

// HandleComplete settles an expired active duel
// @Summary Complete a duel
// @Tags duels
// @Produce json
// @Param id path string true "Duel ID"
// @Success 200 {object} domain.DuelOutcome
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/duels/{id}/complete [post]
func (h *DuelHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id", ErrMsgMissingDuelID, ErrMsgInvalidDuelID)
	if !ok {
		return
	}

	outcome, err := h.service.CompleteDuel(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Complete duel", err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}
