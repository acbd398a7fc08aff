package realtime

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512

	DefaultSendBuffer = 64
)

// Client is one authenticated websocket connection.
type Client struct {
	actor kernel.Actor
	send  chan []byte
	conn  *websocket.Conn
}

// NewClient creates a client without a connection. The websocket handler attaches one.
func NewClient(actor kernel.Actor, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Client{actor: actor, send: make(chan []byte, sendBuffer)}
}

func (c *Client) Actor() kernel.Actor {
	return c.actor
}

// Messages exposes the queued messages. The channel is closed when the client is unregistered.
func (c *Client) Messages() <-chan []byte {
	return c.send
}

// writePump forwards queued messages to the connection and keeps it alive with pings.
// It is the only writer of the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// readPump discards inbound messages and unregisters the client when the peer goes away.
func (c *Client) readPump(registry *Registry) {
	defer func() {
		registry.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
