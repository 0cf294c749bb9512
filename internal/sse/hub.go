// Package sse streams engine events to dashboards over server-sent events.
package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event is one message on the stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one connected stream
type Client struct {
	ID     string
	Events chan Event
	types  map[string]bool
	userID string
}

// wants reports whether the client's filters accept evt
func (c *Client) wants(evt Event) bool {
	if c.types != nil && !c.types[evt.Type] {
		return false
	}
	return c.userID == "" || c.userID == evt.UserID
}

// Hub fans events out to connected clients. Slow clients miss events
// rather than stall the broadcast loop.
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}
	mu         sync.RWMutex
	wg         sync.WaitGroup
	stopOnce   sync.Once
	dropped    atomic.Int64
	now        func() time.Time
}

// NewHub creates a hub; call Start before registering clients
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
		now:        time.Now,
	}
}

// Start runs the broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for id, c := range h.clients {
			close(c.Events)
			delete(h.clients, id)
		}
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			h.mu.Unlock()

		case id := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[id]; ok {
				close(c.Events)
				delete(h.clients, id)
			}
			h.mu.Unlock()

		case evt := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				if !c.wants(evt) {
					continue
				}
				select {
				case c.Events <- evt:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client. Empty types means every type; an empty userID
// means every user.
func (h *Hub) Register(types []string, userID string) *Client {
	c := &Client{
		ID:     uuid.NewString(),
		Events: make(chan Event, ClientEventBuffer),
		userID: userID,
	}
	if len(types) > 0 {
		c.types = make(map[string]bool, len(types))
		for _, t := range types {
			c.types[t] = true
		}
	}

	select {
	case h.register <- c:
	case <-h.shutdown:
		close(c.Events)
	}
	return c
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for delivery. It never blocks; when the
// buffer is full the event is dropped and counted.
func (h *Hub) Broadcast(eventType, userID string, payload interface{}) bool {
	evt := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: h.now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- evt:
		return true
	default:
		h.dropped.Add(1)
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many broadcasts were discarded
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// FormatMessage renders evt in the text/event-stream wire format
func FormatMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("id: %s\nevent: %s\ndata: %s\n\n", evt.ID, evt.Type, data)), nil
}
