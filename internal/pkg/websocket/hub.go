package websocket

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/pkg/realtime"
)

// Hub keeps the open sessions of each user and routes notification change
// events from the broker to them.
type Hub struct {
	// Registered clients organized by user ID
	clients map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	// closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	broker realtime.Broker
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(broker realtime.Broker, logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		broker:     broker,
		logger:     logger,
	}
}

// Run subscribes to the broker and handles registrations until ctx is done.
// Every session is closed on return.
func (h *Hub) Run(ctx context.Context) {
	unsubscribe := h.broker.Subscribe(h.route)
	defer func() {
		unsubscribe()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Debug().
		Str("userID", client.userID.String()).
		Int("sessions", len(h.clients[client.userID])).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.clients[client.userID]
	if !ok || !sessions[client] {
		return
	}
	delete(sessions, client)
	close(client.send)
	if len(sessions) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Debug().Str("userID", client.userID.String()).Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, sessions := range h.clients {
		for client := range sessions {
			// the read loop may still push, so send stays open
			_ = client.conn.Close()
		}
		delete(h.clients, userID)
	}
}

// route hands an event to every session of its owner. It runs on the
// broker's goroutine and does not block.
func (h *Hub) route(ev realtime.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[ev.UserID()] {
		client.deliver(ev)
	}
}

// join registers a client. It reports false when the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// leave unregisters a client; a stopped hub has already dropped it
func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// SessionCount returns the number of open sessions of a user
func (h *Hub) SessionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
