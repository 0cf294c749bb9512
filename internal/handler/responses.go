package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/domain"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse wraps a list payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON encodes into a pooled buffer before touching the writer, so an
// encoding failure never leaves a half-written body behind a 2xx status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// errorMapping pairs a domain error with its HTTP status and client message
type errorMapping struct {
	err     error
	status  int
	message string
}

// serviceErrors is checked in order with errors.Is. The specific input
// errors come before ErrInvalidInput since services wrap them together.
var serviceErrors = []errorMapping{
	{domain.ErrNegativeStat, http.StatusBadRequest, ErrMsgNegativeStatError},
	{domain.ErrStatOverflow, http.StatusBadRequest, ErrMsgStatOverflowError},
	{domain.ErrInvalidState, http.StatusBadRequest, ErrMsgInvalidStateError},
	{domain.ErrInvalidDay, http.StatusBadRequest, ErrMsgInvalidDay},
	{domain.ErrInvalidXPWindow, http.StatusBadRequest, ErrMsgEventWindowError},
	{domain.ErrSelfDuel, http.StatusBadRequest, ErrMsgSelfDuelError},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
	{domain.ErrUserNotFound, http.StatusNotFound, ErrMsgUserNotFoundError},
	{domain.ErrDuelNotFound, http.StatusNotFound, ErrMsgDuelNotFoundError},
	{domain.ErrXPEventNotFound, http.StatusNotFound, ErrMsgEventNotFoundError},
	{domain.ErrNotDuelParticipant, http.StatusForbidden, ErrMsgNotParticipantError},
	{domain.ErrDuelAlreadyActive, http.StatusConflict, ErrMsgDuelActiveError},
	{domain.ErrDuelNotPending, http.StatusConflict, ErrMsgDuelNotPendingError},
	{domain.ErrDuelNotActive, http.StatusConflict, ErrMsgDuelNotActiveError},
	{domain.ErrDuelNotExpired, http.StatusConflict, ErrMsgDuelNotExpiredError},
	{domain.ErrDatabaseError, http.StatusServiceUnavailable, ErrMsgUnavailableError},
}

// mapServiceError converts a service error to a status code and a message
// the caller can act on. Unknown errors become a generic 500.
func mapServiceError(err error) (int, string) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs the full error and sends its mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, message := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", op, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "operation", op, "error", err, "status", status)
	}
	respondError(w, status, message)
}
