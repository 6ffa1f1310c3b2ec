package websocket

import (
	"encoding/json"
	"sync"

	"github.com/amanabooks/bookstore-backend/pkg/logger"
)

// BadgeUpdate is pushed to every open tab of a cart whenever the cart
// mutates, so the header badge stays current without polling.
type BadgeUpdate struct {
	Type       string `json:"type"` // always "badge"
	CartID     string `json:"cart_id"`
	TotalItems int    `json:"total_items"`
}

// Client is one browser tab subscribed to a cart's badge updates.
type Client struct {
	Hub    *Hub
	Conn   *Conn
	CartID string
	Send   chan []byte
}

// Hub fans badge updates out to all tabs watching a cart. A cart held
// open in several tabs gets the update in each of them.
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BadgeUpdate

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *BadgeUpdate, 1024),
	}
}

// Run owns the client registry. Call it once from main in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.CartID] = append(h.clients[client.CartID], client)
			sessions := len(h.clients[client.CartID])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"cart_id":        client.CartID,
				"total_sessions": sessions,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			found := false
			if clientList, ok := h.clients[client.CartID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					} else {
						found = true
					}
				}
				if len(newList) == 0 {
					delete(h.clients, client.CartID)
				} else {
					h.clients[client.CartID] = newList
				}
			}
			// A client can be unregistered twice (slow-consumer eviction
			// racing the read pump's deferred unregister). Only the first
			// pass owns the channel.
			if found {
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Debug("WebSocket client unregistered", map[string]interface{}{
				"cart_id": client.CartID,
			})

		case update := <-h.broadcast:
			data, err := json.Marshal(update)
			if err != nil {
				logger.Error("Failed to marshal badge update", err, nil)
				continue
			}
			h.mu.RLock()
			for _, client := range h.clients[update.CartID] {
				select {
				case client.Send <- data:
				default:
					// Send buffer full: the tab is not draining, drop it.
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"cart_id": update.CartID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyBadge queues a badge update for every tab watching the cart.
// Delivery is best effort: a full broadcast queue drops the update rather
// than stalling the cart mutation that triggered it.
func (h *Hub) NotifyBadge(cartID string, totalItems int) {
	select {
	case h.broadcast <- &BadgeUpdate{
		Type:       "badge",
		CartID:     cartID,
		TotalItems: totalItems,
	}:
	default:
		logger.Warn("Broadcast channel full, badge update dropped", map[string]interface{}{
			"cart_id": cartID,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsCartWatched reports whether any tab currently subscribes to the cart.
func (h *Hub) IsCartWatched(cartID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[cartID]
	return ok
}
