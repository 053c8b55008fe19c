package notifications

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"stayhub/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per user
	maxConnsPerUser = 8
	// Max total connections
	maxTotalConns = 10000
)

// Hub maps userID -> connected clients and fans booking events out to them.
type Hub struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int
}

// NewHub creates a new Hub instance for booking event delivery.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[uint]map[*Client]struct{}),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "booking event hub" }

// Register a connection for a given userID. Returns the Client or an error
// if connection limits are exceeded.
func (h *Hub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[userID] = m
	}
	if len(m) >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	client := NewClient(h, conn, userID)
	m[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnections.Inc()

	return client, nil
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if m, ok := h.conns[client.UserID]; ok {
		if _, exists := m[client]; exists {
			delete(m, client)
			h.totalConns--
			observability.WebSocketConnections.Dec()
			close(client.Send)
		}
		if len(m) == 0 {
			delete(h.conns, client.UserID)
		}
	}
}

// SendToUser delivers a payload to every connection of a user. Slow clients
// are skipped rather than blocking the hub.
func (h *Hub) SendToUser(userID uint, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.conns[userID] {
		select {
		case client.Send <- payload:
		default:
			// client buffer full; drop for this connection
		}
	}
}

// ConnectionCount returns the number of active connections for a user.
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// StartWiring subscribes the hub to the notifier's Redis channels so events
// published by any process instance reach locally connected clients.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		userID, ok := userIDFromChannel(channel)
		if !ok {
			return
		}
		h.SendToUser(userID, []byte(payload))
	})
}

// Shutdown closes all client connections.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, m := range h.conns {
		for client := range m {
			close(client.Send)
			_ = client.Conn.Close()
		}
	}
	h.conns = make(map[uint]map[*Client]struct{})
	h.totalConns = 0
	return nil
}

// userIDFromChannel extracts the user ID from "bookings:user:<id>".
func userIDFromChannel(channel string) (uint, bool) {
	idx := strings.LastIndex(channel, ":")
	if idx < 0 {
		return 0, false
	}
	id, err := strconv.ParseUint(channel[idx+1:], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
