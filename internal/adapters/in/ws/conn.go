package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 16
)

// MessageHandler processes one inbound event's raw payload.
type MessageHandler func(ctx context.Context, data json.RawMessage)

// Conn wraps a single websocket connection. Outbound messages flow through a
// buffered channel drained by the write pump; inbound messages are dispatched
// to the handlers registered per event name.
type Conn struct {
	id   string
	hub  *Hub
	sock *websocket.Conn
	send chan []byte
	log  *slog.Logger

	// groups is guarded by the hub's mutex
	groups map[string]struct{}

	handlers  map[string]MessageHandler
	closeOnce sync.Once
}

func newConn(hub *Hub, sock *websocket.Conn, log *slog.Logger) *Conn {
	return &Conn{
		id:       uuid.NewString(),
		hub:      hub,
		sock:     sock,
		send:     make(chan []byte, sendBufferSize),
		log:      log,
		groups:   make(map[string]struct{}),
		handlers: make(map[string]MessageHandler),
	}
}

// On registers the handler for an inbound event name. Events without a
// handler are dropped. Must be called before run.
func (c *Conn) On(event string, handler MessageHandler) {
	c.handlers[event] = handler
}

// run pumps the connection until the peer disconnects or a transport error
// occurs, then cleans up. Blocks for the lifetime of the connection.
func (c *Conn) run(ctx context.Context) {
	go c.writePump()
	c.readPump(ctx)
	c.close()
}

func (c *Conn) readPump(ctx context.Context) {
	c.sock.SetReadDeadline(time.Now().Add(pongWait))
	c.sock.SetPongHandler(func(string) error {
		return c.sock.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn("connection read failed", "conn", c.id, "error", err)
			}
			return
		}

		var env struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			c.log.Warn("discarding malformed message", "conn", c.id, "error", err)
			continue
		}

		handler, ok := c.handlers[env.Event]
		if !ok {
			c.log.Debug("no handler for event", "conn", c.id, "event", env.Event)
			continue
		}

		handler(ctx, env.Data)
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.sock.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.sock.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// close detaches the connection from the hub and releases the socket.
// The hub stops emitting to this connection before the send channel closes.
func (c *Conn) close() {
	c.closeOnce.Do(func() {
		c.hub.Unregister(c)
		close(c.send)
		c.sock.Close()
		c.log.Debug("connection closed", "conn", c.id)
	})
}
