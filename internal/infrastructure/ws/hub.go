package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub is the registry of live client connections, keyed by (user, tab).
// A new connection for an already-registered key supersedes the old one.
type Hub struct {
	mu      sync.RWMutex
	clients map[TabKey]*Client
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[TabKey]*Client),
		logger:  logger.With().Str("component", "ws_hub").Logger(),
	}
}

// Register adds a client, closing any previous client with the same key.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	prev, ok := h.clients[c.Key]
	h.clients[c.Key] = c
	h.mu.Unlock()

	if ok && prev != c {
		prev.Close()
		h.logger.Debug().
			Str("user_id", c.Key.UserID.String()).
			Str("tab_id", c.Key.TabID).
			Msg("superseded existing connection")
	}
}

// Unregister removes the client if it is still the registered one for its
// key and reports whether it did. A connection superseded by a newer
// registration leaves the newer client in place and returns false, so
// callers know not to tear down per-tab state the newer client owns.
func (h *Hub) Unregister(c *Client) bool {
	h.mu.Lock()
	removed := false
	if cur, ok := h.clients[c.Key]; ok && cur == c {
		delete(h.clients, c.Key)
		removed = true
	}
	h.mu.Unlock()
	c.Close()
	return removed
}

func (h *Hub) Get(key TabKey) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[key]
}

// SendToTab marshals v and queues it for the given tab. Returns false when
// the tab is not connected or its buffer is full.
func (h *Hub) SendToTab(key TabKey, v interface{}) bool {
	c := h.Get(key)
	if c == nil {
		return false
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error().Err(err).Msg("marshal outbound message")
		return false
	}
	return c.SafeSend(data)
}

// SendToUser queues v for every connected tab of the user. Returns the
// number of tabs the message was queued for.
func (h *Hub) SendToUser(userID uuid.UUID, v interface{}) int {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error().Err(err).Msg("marshal outbound message")
		return 0
	}

	h.mu.RLock()
	targets := make([]*Client, 0, 2)
	for key, c := range h.clients {
		if key.UserID == userID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if c.SafeSend(data) {
			sent++
		}
	}
	return sent
}

// TabsForUser returns the keys of all connected tabs for the user.
func (h *Hub) TabsForUser(userID uuid.UUID) []TabKey {
	h.mu.RLock()
	defer h.mu.RUnlock()
	keys := []TabKey{}
	for key := range h.clients {
		if key.UserID == userID {
			keys = append(keys, key)
		}
	}
	return keys
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop closes all registered clients.
func (h *Hub) Stop() {
	h.mu.Lock()
	for key, c := range h.clients {
		c.Close()
		delete(h.clients, key)
	}
	h.mu.Unlock()
}
