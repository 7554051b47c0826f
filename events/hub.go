package events

import (
	"sync"
)

// Hub is the in-process publish/subscribe channel. It is injected into the
// order service and into the websocket layer; there is no package-level
// instance.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]bool)}
}

// Publish delivers to every subscriber of the topic. A subscriber that has
// fallen behind its buffer is skipped rather than blocking the publisher.
func (h *Hub) Publish(topic string, payload any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[topic] {
		select {
		case ch <- Event{Topic: topic, Payload: payload}:
		default:
		}
	}
	return nil
}

// Subscribe registers a buffered channel on the topic. The returned cancel
// func unregisters and closes it; calling cancel twice is safe.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[chan Event]bool)
	}
	h.subs[topic][ch] = true
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.subs[topic][ch] {
			delete(h.subs[topic], ch)
			close(ch)
		}
	}
	return ch, cancel
}
