package server

import (
	"sync"

	"webdesk/internal/desk"
)

// Event is one server-sent event: a user-facing notification or a
// state-version bump telling clients to re-render.
type Event struct {
	Name string
	Data any
}

// Hub fans events out to connected SSE clients. It is the concrete
// notification side channel: the desk service reports rejections and
// state changes here and the hub broadcasts them.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new client channel. The caller must
// Unsubscribe when done.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a client channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// broadcast delivers to every subscriber, dropping events for slow
// clients rather than blocking the mutation path.
func (h *Hub) broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Notify implements desk.Notifier.
func (h *Hub) Notify(n desk.Notification) {
	h.broadcast(Event{Name: "notification", Data: n})
}

// StateChanged implements desk.Observer.
func (h *Hub) StateChanged(version uint64) {
	h.broadcast(Event{Name: "state", Data: map[string]uint64{"version": version}})
}

var (
	_ desk.Notifier = (*Hub)(nil)
	_ desk.Observer = (*Hub)(nil)
)
