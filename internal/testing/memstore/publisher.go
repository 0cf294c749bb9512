package memstore

import (
	"context"
	"sync"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/event"
)

// Publisher records published events
type Publisher struct {
	mu     sync.Mutex
	events []event.Event
}

// PublishWithRetry records the event
func (p *Publisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

// Events returns every recorded event
func (p *Publisher) Events() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.Event(nil), p.events...)
}

// OfType returns the recorded events of one type
func (p *Publisher) OfType(t event.Type) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []event.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
