// Package notify is an in-process event hub. Listeners subscribe to all
// topics and receive best-effort delivery; a slow listener drops events
// rather than stalling publishers.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*Hub)(nil)

// Event is one published notification.
type Event struct {
	Topic   string            `json:"topic"`
	Payload map[string]string `json:"payload,omitempty"`
	At      time.Time         `json:"at"`
}

type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	log    *zerolog.Logger
}

func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{subs: make(map[int]chan Event), log: logger}
}

// Subscribe registers a listener. The returned cancel func must be called
// to release the channel.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Notify(ctx context.Context, topic string, payload map[string]string) {
	ev := Event{Topic: topic, Payload: payload, At: time.Now().UTC()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.log.Warn().Int("subscriber", id).Str("topic", topic).Msg("notification dropped for slow subscriber")
		}
	}
}

// Len reports the current subscriber count. Test helper.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
