package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

const (
	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
	writeTimeout       = 10 * time.Second
	pongTimeout        = 60 * time.Second
	pingInterval       = 30 * time.Second
)

// WSClient manages the WebSocket connection to the netmon host.
type WSClient struct {
	url      string
	token    string
	channels Channels

	mu      sync.Mutex
	writeMu sync.Mutex // serialises all conn writes (ping, calls)
	conn    *websocket.Conn
	nextID  int64
	pingCtx context.CancelFunc // cancels the active ping goroutine
}

// NewWSClient creates a client that connects to the given WebSocket URL and
// calls the host on ch.
func NewWSClient(url, token string, ch Channels) *WSClient {
	return &WSClient{url: url, token: token, channels: ch}
}

// Channels returns the channel names the client calls.
func (c *WSClient) Channels() Channels {
	return c.channels
}

// --- Bubble Tea messages ---

// WSConnectedMsg is sent when the WebSocket connects.
type WSConnectedMsg struct{}

// WSDisconnectedMsg is sent when the connection drops.
type WSDisconnectedMsg struct{ Err error }

// NetworkTypeMsg answers a getNetworkType call.
type NetworkTypeMsg struct {
	ID       int64
	Category netstate.Category
}

// AckMsg acknowledges a listen or cancel call.
type AckMsg struct {
	ID      int64
	Channel string
}

// NetworkEventMsg is pushed on the event channel for every connectivity change.
type NetworkEventMsg struct{ Category netstate.Category }

// NotImplementedMsg is sent when the host does not know a method or channel.
type NotImplementedMsg struct {
	ID      int64
	Channel string
}

// WSErrorMsg wraps a host-side error.
type WSErrorMsg struct {
	ID      int64
	Payload ErrorPayload
}

// Connect returns a Bubble Tea command that dials the host, retrying with
// backoff until it succeeds or ctx is done.
func (c *WSClient) Connect(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		delay := reconnectBaseDelay
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			var header http.Header
			if c.token != "" {
				header = http.Header{"Authorization": {"Bearer " + c.token}}
			}
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
			if err != nil {
				log.Printf("ws dial error: %v (retry in %v)", err, delay)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(delay):
				}
				delay = min(delay*2, reconnectMaxDelay)
				continue
			}

			// Cancel any previous ping goroutine.
			c.mu.Lock()
			if c.pingCtx != nil {
				c.pingCtx()
			}
			pingCtx, pingCancel := context.WithCancel(ctx)
			c.conn = conn
			c.pingCtx = pingCancel
			c.mu.Unlock()

			go c.pingLoop(pingCtx, conn)

			return WSConnectedMsg{}
		}
	}
}

// ReadLoop returns a Bubble Tea command that reads until it has one message
// for the model. It should be reissued after every message it returns.
func (c *WSClient) ReadLoop(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return WSDisconnectedMsg{Err: fmt.Errorf("no connection")}
		}

		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongTimeout))
			return nil
		})
		conn.SetReadDeadline(time.Now().Add(pongTimeout))

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				c.mu.Lock()
				if c.conn == conn {
					c.conn = nil
				}
				c.mu.Unlock()
				conn.Close()
				return WSDisconnectedMsg{Err: err}
			}

			var msg WSMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			if teaMsg := dispatch(msg); teaMsg != nil {
				return teaMsg
			}
		}
	}
}

// pingLoop sends periodic pings on the given connection. It exits when the
// context is cancelled or the connection changes.
func (c *WSClient) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			cc := c.conn
			c.mu.Unlock()
			if cc != conn {
				return
			}
			c.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// Call sends a method call and returns its ID. The reply arrives through
// ReadLoop.
func (c *WSClient) Call(channel, method string) (int64, error) {
	c.mu.Lock()
	conn := c.conn
	c.nextID++
	id := c.nextID
	c.mu.Unlock()
	if conn == nil {
		return 0, fmt.Errorf("not connected")
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(WSMessage{Type: MsgCall, ID: id, Channel: channel, Method: method}); err != nil {
		return 0, err
	}
	return id, nil
}

// GetNetworkType asks for the current connectivity category.
func (c *WSClient) GetNetworkType() (int64, error) {
	return c.Call(c.channels.Method, "getNetworkType")
}

// Subscribe starts the host's change stream.
func (c *WSClient) Subscribe() (int64, error) {
	return c.Call(c.channels.Events, "listen")
}

// Unsubscribe stops the host's change stream.
func (c *WSClient) Unsubscribe() (int64, error) {
	return c.Call(c.channels.Events, "cancel")
}

// Close drops the connection.
func (c *WSClient) Close() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	if c.pingCtx != nil {
		c.pingCtx()
		c.pingCtx = nil
	}
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func dispatch(msg WSMessage) tea.Msg {
	switch msg.Type {
	case MsgResult:
		var cat netstate.Category
		if len(msg.Payload) > 0 && string(msg.Payload) != "null" {
			if json.Unmarshal(msg.Payload, &cat) == nil {
				return NetworkTypeMsg{ID: msg.ID, Category: cat}
			}
			return nil
		}
		return AckMsg{ID: msg.ID, Channel: msg.Channel}
	case MsgEvent:
		var cat netstate.Category
		if json.Unmarshal(msg.Payload, &cat) == nil {
			return NetworkEventMsg{Category: cat}
		}
	case MsgNotImplemented:
		return NotImplementedMsg{ID: msg.ID, Channel: msg.Channel}
	case MsgError:
		var p ErrorPayload
		json.Unmarshal(msg.Payload, &p)
		return WSErrorMsg{ID: msg.ID, Payload: p}
	}
	return nil
}
