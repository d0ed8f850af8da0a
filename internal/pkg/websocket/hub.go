package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
)

// Wallet event types
const (
	EventDeposit               = "wallet.deposit"
	EventCoursePurchased       = "wallet.course_purchased"
	EventSubscribed            = "wallet.subscribed"
	EventSubscriptionCancelled = "wallet.subscription_cancelled"
)

// Event is a wallet change pushed to every open connection of the user
type Event struct {
	Type         string               `json:"type"`
	UserID       int64                `json:"userId"`
	Balance      decimal.Decimal      `json:"balance"`
	CourseID     *int64               `json:"courseId,omitempty"`
	Transaction  *models.Transaction  `json:"transaction,omitempty"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
	Timestamp    time.Time            `json:"timestamp"`
}

// Hub maintains the set of active clients and fans wallet events out to them
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Events waiting to be delivered
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed once Run returns; sends to the hub give up after that
	done     chan struct{}
	stopOnce sync.Once

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger.With().Str("component", "wallet-hub").Logger(),
	}
}

// Run handles client registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stopOnce.Do(func() { close(h.done) })
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// join hands client to the running hub. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave hands client back to the hub; a stopped hub has already dropped it
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Done is closed when the hub stops running
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().Int64("userID", client.userID).Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

// dropLocked removes a client; h.mu must be held for writing
func (h *Hub) dropLocked(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().Int64("userID", client.userID).Msg("Client unregistered")
}

func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", event.UserID).Msg("Failed to marshal wallet event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[event.UserID]
	if !ok {
		h.logger.Debug().Int64("userID", event.UserID).Str("type", event.Type).Msg("No clients for wallet event")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// slow consumer; drop it rather than stall every other user
			h.dropLocked(client)
		}
	}

	h.logger.Debug().
		Int64("userID", event.UserID).
		Str("type", event.Type).
		Int("clientCount", len(clients)).
		Msg("Wallet event delivered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.dropLocked(client)
		}
	}
}

// Publish queues an event for delivery. It never blocks the caller; when the
// queue is full the event is dropped and logged.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case h.broadcast <- &event:
	default:
		h.logger.Warn().Int64("userID", event.UserID).Str("type", event.Type).Msg("Wallet event queue full, dropping event")
	}
}

// GetClientsCount returns the number of open connections of a user
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
