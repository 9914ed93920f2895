package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"occupancyDash/internal/modules/occupancy/domain"
	"occupancyDash/internal/platform/metrics"
)

// Hub fans dashboard messages out to every connected viewer.
type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Attach registers a viewer, replacing a previous connection with the same session.
func (h *Hub) Attach(c *Client) {
	h.mu.Lock()
	if existing, ok := h.clients[c.sessionID]; ok && existing != c {
		h.detachLocked(existing)
	}
	h.clients[c.sessionID] = c
	count := len(h.clients)
	h.mu.Unlock()

	metrics.SetViewers(count)
	slog.Info("ws viewer attached", slog.String("sessionId", c.sessionID), slog.String("ip", c.remoteIP), slog.Int("viewers", count))
}

func (h *Hub) detachClient(c *Client) {
	h.mu.Lock()
	h.detachLocked(c)
	count := len(h.clients)
	h.mu.Unlock()
	metrics.SetViewers(count)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	if current, ok := h.clients[c.sessionID]; ok && current == c {
		delete(h.clients, c.sessionID)
	}
	c.close()
	slog.Info("ws viewer detached", slog.String("sessionId", c.sessionID))
}

// Count returns the number of attached viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers msg to every viewer; viewers with a full buffer are detached.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(data) {
			slog.Warn("ws viewer buffer full", slog.String("sessionId", c.sessionID))
			go h.detachClient(c)
		}
	}
}

// Close detaches every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	for _, c := range h.clients {
		h.detachLocked(c)
	}
	h.mu.Unlock()
	metrics.SetViewers(0)
}
