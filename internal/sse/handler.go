package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// parseTypes splits the comma-separated filter and rejects names that are
// not engine event types
func parseTypes(raw string) ([]string, bool) {
	if raw == "" {
		return nil, true
	}

	known := make(map[string]bool)
	for _, t := range event.AllTypes() {
		known[string(t)] = true
	}

	var types []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !known[t] {
			return nil, false
		}
		types = append(types, t)
	}
	return types, true
}

// Handler serves the event stream. Optional query parameters narrow it to
// some event types and to a single user.
//
// @Summary Stream engine events
// @Tags events
// @Produce text/event-stream
// @Param types query string false "Comma-separated event types"
// @Param user_id query string false "Only events about this user"
// @Success 200 {string} string "event stream"
// @Failure 400 {string} string "unknown event type"
// @Security ApiKeyAuth
// @Router /api/v1/events/stream [get]
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		types, ok := parseTypes(r.URL.Query().Get(QueryParamTypes))
		if !ok {
			http.Error(w, ErrMsgUnknownEventType, http.StatusBadRequest)
			return
		}
		userID := r.URL.Query().Get(QueryParamUserID)

		rc := http.NewResponseController(w)

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		if err := rc.Flush(); err != nil {
			log.Error(ErrMsgStreamingUnsupported, "error", err)
			return
		}

		client := hub.Register(types, userID)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "types", types, "user_id", userID, "clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		send := func(evt Event) bool {
			msg, err := FormatMessage(evt)
			if err != nil {
				log.Error(LogMsgWriteError, "event_type", evt.Type, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			return rc.Flush() == nil
		}

		hello := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]interface{}{"client_id": client.ID, "types": types, "user_id": userID},
		}
		if !send(hello) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case evt, open := <-client.Events:
				if !open || !send(evt) {
					return
				}
			case <-ticker.C:
				if !send(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
