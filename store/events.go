package store

import (
	"sync"

	"webgestor/models"
)

// Hub fans notifications out to in-process subscribers (the websocket stream
// and the mail worker). It replaces the polling refresh the browser client
// used. Publish never blocks; a subscriber that falls behind loses events
// rather than stalling mutations.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan models.Notification
	nextID int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan models.Notification)}
}

// Subscribe returns a buffered channel of notifications and an id to
// unsubscribe with. The channel is closed on Unsubscribe.
func (h *Hub) Subscribe() (int, <-chan models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan models.Notification, 16)
	h.subs[id] = ch
	return id, ch
}

func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *Hub) Publish(n models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
}
