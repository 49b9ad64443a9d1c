// Package ws implements the realtime channel: authenticated websocket
// connections grouped by user identity, with fire-and-forget fan-out of
// dispatch events and inbound handling of driver position reports.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// envelope is the wire format for every message exchanged on a connection.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub tracks live connections by broadcast group and fans events out to them.
//
// Emitting to a group nobody joined is a no-op. Emitting never blocks the
// caller: a connection that cannot keep up has the message dropped rather
// than stalling the business flow that produced it.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[*Conn]struct{}
	log    *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		groups: make(map[string]map[*Conn]struct{}),
		log:    log,
	}
}

// Register adds a connection to a broadcast group. A connection may belong to
// several groups; it receives each group's events until it disconnects.
func (h *Hub) Register(groupKey string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[groupKey]
	if !ok {
		members = make(map[*Conn]struct{})
		h.groups[groupKey] = members
	}
	members[c] = struct{}{}
	c.groups[groupKey] = struct{}{}

	h.log.Debug("connection joined group", "conn", c.id, "group", groupKey)
}

// Unregister removes a connection from every group it joined. Groups left
// empty disappear. Safe to call more than once.
func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for groupKey := range c.groups {
		members := h.groups[groupKey]
		delete(members, c)
		if len(members) == 0 {
			delete(h.groups, groupKey)
		}
	}
	c.groups = make(map[string]struct{})
}

// Emit sends an event to every live connection in the group. The payload is
// marshalled once; slow consumers lose the message instead of blocking.
func (h *Hub) Emit(groupKey string, event string, payload any) {
	raw, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		h.log.Error("failed to marshal event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.groups[groupKey] {
		select {
		case c.send <- raw:
		default:
			h.log.Warn("dropping event for slow connection", "conn", c.id, "event", event)
		}
	}
}
