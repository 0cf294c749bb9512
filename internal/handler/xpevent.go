package handler

import (
	"net/http"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/xpevent"
)

// XPEventHandlers serves global XP event administration
type XPEventHandlers struct {
	service xpevent.Service
}

// NewXPEventHandlers creates xp event handlers
func NewXPEventHandlers(service xpevent.Service) *XPEventHandlers {
	return &XPEventHandlers{service: service}
}

// CreateXPEventRequest schedules a global multiplier window
type CreateXPEventRequest struct {
	Name             string    `json:"name" validate:"required,max=100"`
	StartTime        time.Time `json:"start_time" validate:"required"`
	EndTime          time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	MultiplierFactor float64   `json:"multiplier_factor" validate:"gt=0,lte=10"`
	Faction          string    `json:"faction,omitempty" validate:"max=64"`
}

// HandleCreate schedules a global XP event
// @Summary Create a global XP event
// @Tags xp-events
// @Accept json
// @Produce json
// @Param request body CreateXPEventRequest true "Event"
// @Success 201 {object} domain.GlobalXPEvent
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/xp-events [post]
func (h *XPEventHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateXPEventRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create XP event"); err != nil {
		return
	}

	ev, err := h.service.CreateEvent(r.Context(), xpevent.CreateRequest{
		Name:             req.Name,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		MultiplierFactor: req.MultiplierFactor,
		Faction:          req.Faction,
	})
	if err != nil {
		respondServiceError(w, r, "Create XP event", err)
		return
	}
	respondJSON(w, http.StatusCreated, ev)
}

// HandleListActive lists events active right now
// @Summary Active XP events
// @Tags xp-events
// @Produce json
// @Success 200 {object} DataResponse
// @Router /api/v1/xp-events/active [get]
func (h *XPEventHandlers) HandleListActive(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListActive(r.Context())
	if err != nil {
		respondServiceError(w, r, "List XP events", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: events})
}

// HandleEnd ends an event early
// @Summary End an XP event early
// @Tags xp-events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/xp-events/{id} [delete]
func (h *XPEventHandlers) HandleEnd(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDParam(r, w, "id", ErrMsgMissingEventID, ErrMsgInvalidEventID)
	if !ok {
		return
	}

	if err := h.service.EndEvent(r.Context(), id); err != nil {
		respondServiceError(w, r, "End XP event", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgXPEventEnded})
}
