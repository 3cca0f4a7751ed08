package notifications

import (
	"context"
	"errors"
	"sync"

	"github.com/gofiber/websocket/v2"

	"rewear/internal/observability"
)

const maxAdminConns = 256

// ErrHubFull is returned when the connection limit is reached.
var ErrHubFull = errors.New("admin stream connection limit reached")

// ErrHubClosed is returned after Shutdown.
var ErrHubClosed = errors.New("admin stream is shutting down")

// AdminHub fans moderation events out to connected administrators.
type AdminHub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
	log     *observability.HubLogger
}

// NewAdminHub creates an empty hub.
func NewAdminHub() *AdminHub {
	return &AdminHub{
		clients: make(map[*Client]struct{}),
		log:     observability.NewHubLogger("admin"),
	}
}

// Register adds a connection for an administrator.
func (h *AdminHub) Register(userID string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if len(h.clients) >= maxAdminConns {
		return nil, ErrHubFull
	}

	client := newClient(h, conn, userID)
	h.clients[client] = struct{}{}
	observability.AdminStreamConnections.Inc()
	h.log.LogConnect(context.Background(), userID)
	return client, nil
}

// UnregisterClient removes a client and closes its send channel.
func (h *AdminHub) UnregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
	observability.AdminStreamConnections.Dec()
	h.log.LogDisconnect(context.Background(), c.UserID, "unregistered")
}

// Len returns the number of connected clients.
func (h *AdminHub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastAll sends message to every connected administrator.
func (h *AdminHub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.clients {
		c.TrySend(data)
	}
}

// StartWiring forwards admin channel messages from the notifier to the hub.
func (h *AdminHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartSubscriber(ctx, func(channel, payload string) {
		if channel == AdminChannel {
			h.BroadcastAll(payload)
		}
	})
}

// Shutdown disconnects every client and rejects new registrations.
func (h *AdminHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.Send)
		observability.AdminStreamConnections.Dec()
	}
	return nil
}
