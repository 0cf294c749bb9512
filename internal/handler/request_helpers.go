package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// ValidationErrorResponse lists the fields that failed validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON body into req and validates it.
// On error the response has already been written and the handler should return.
//
//	var req SubmitStatsRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Submit stats"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// GetQueryParam returns a required query parameter. When it is missing a 400
// has been written and ok is false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// GetLimitParam parses the optional limit parameter within [1, max]
func GetLimitParam(r *http.Request, w http.ResponseWriter, def, max int) (int, bool) {
	raw := r.URL.Query().Get(QueryParamLimit)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > max {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return n, true
}

// GetUUIDParam parses a UUID route parameter
func GetUUIDParam(r *http.Request, w http.ResponseWriter, name, missingMsg, invalidMsg string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		respondError(w, http.StatusBadRequest, missingMsg)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, invalidMsg)
		return uuid.Nil, false
	}
	return id, true
}
