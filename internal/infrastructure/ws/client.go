package ws

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4 * 1024

	// Per-client send queue size.
	sendQueueSize = 32
)

// TabKey identifies one live client instance: a user may hold several
// concurrent tabs, each with its own key.
type TabKey struct {
	UserID uuid.UUID
	TabID  string
}

// Client represents one registered WebSocket connection.
type Client struct {
	Key         TabKey
	ConnectedAt time.Time

	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	closed    atomic.Bool
}

func NewClient(key TabKey, conn *websocket.Conn) *Client {
	return &Client{
		Key:         key,
		ConnectedAt: time.Now().UTC(),
		conn:        conn,
		send:        make(chan []byte, sendQueueSize),
	}
}

// SafeSend queues data for the client without panicking on a closed
// channel. Returns false when the client is gone or its buffer is full;
// delivery is fire-and-forget by design.
func (c *Client) SafeSend(data []byte) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()
	if c.closed.Load() {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Close closes the send channel exactly once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.send)
	})
}

// WritePump drains the send queue onto the connection and keeps the peer
// alive with pings. Runs until the client is closed or the write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump reads frames from the connection and hands them to onMessage.
// Returns when the connection drops.
func (c *Client) ReadPump(onMessage func(data []byte)) {
	defer func() { _ = c.conn.Close() }()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		onMessage(data)
	}
}
