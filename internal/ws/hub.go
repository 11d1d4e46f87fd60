package ws

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrTooManyConnections is returned by AddClient when the hub is full.
var ErrTooManyConnections = errors.New("too many websocket connections")

type client struct {
	conn *websocket.Conn
	send chan []byte
	name string
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			// Closing the conn ends the read loop, which removes the client.
			return
		}
	}
}

// enqueue hands msg to the write pump. A client whose buffer is full is
// disconnected rather than allowed to stall the sender.
func (c *client) enqueue(msg WSMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		log.Printf("ws client %s too slow, disconnecting", c.name)
		c.conn.Close()
		return false
	}
}

// Hub tracks live WebSocket clients.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]bool
	maxConns int
}

// NewHub returns a hub admitting at most maxConns clients. Zero means
// unlimited.
func NewHub(maxConns int) *Hub {
	return &Hub{
		clients:  make(map[*client]bool),
		maxConns: maxConns,
	}
}

func (h *Hub) AddClient(conn *websocket.Conn, name string) (*client, error) {
	h.mu.Lock()
	if h.maxConns > 0 && len(h.clients) >= h.maxConns {
		h.mu.Unlock()
		return nil, ErrTooManyConnections
	}
	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
		name: name,
	}
	h.clients[c] = true
	h.mu.Unlock()

	go c.writePump()
	return c, nil
}

// RemoveClient stops the client's write pump. The caller guarantees no
// further sends on the client.
func (h *Hub) RemoveClient(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll drops every connection. Each read loop then runs its normal
// disconnect cleanup.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c.conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.Close()
	}
}
