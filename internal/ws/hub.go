package ws

import (
	"encoding/json"
	"sync"
	"time"
)

// Event is pushed to every connected back-office client.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
	At   time.Time   `json:"at"`
}

// Client represents a single admin WebSocket connection.
type Client struct {
	AdminID uint
	Send    chan []byte
	hub     *Hub
	mu      sync.Mutex
	closed  bool
}

func NewClient(adminID uint) *Client {
	return &Client{AdminID: adminID, Send: make(chan []byte, 64)}
}

// Close unregisters the client and closes its send channel. Safe to call twice.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.hub != nil {
		c.hub.unregister(c)
	}
	close(c.Send)
}

// Hub maintains the set of connected admins and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Publish marshals an event and delivers it to every client. Slow clients miss it.
func (h *Hub) Publish(eventType string, data interface{}) {
	if h == nil {
		return
	}
	payload, err := json.Marshal(Event{Type: eventType, Data: data, At: time.Now().UTC()})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.Send <- payload:
		default:
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
