package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Identity is the validated user bound to a connection at handshake.
// It never changes for the lifetime of the connection.
type Identity struct {
	UserID   uuid.UUID
	UserName string
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	UserName string

	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, identity Identity) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   identity.UserID,
		UserName: identity.UserName,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, hub.sendBuffer),
	}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// readPump pumps inbound events from the websocket connection into the hub.
// All events for one connection are dispatched from this single loop.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"user": c.UserName, "error": err.Error(),
				})
			}
			break
		}
		c.dispatch(raw)
	}
}

func (c *Client) dispatch(raw []byte) {
	var evt inboundEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		c.hub.logger.Warn("Client", "Malformed event dropped", map[string]interface{}{
			"user": c.UserName, "error": err.Error(),
		})
		return
	}

	switch evt.Event {
	case eventJoinThread:
		if evt.ThreadID != "" {
			c.hub.JoinThread(c, evt.ThreadID)
		}
	case eventLeaveThread:
		c.hub.LeaveThread(c)
	case eventTyping:
		if evt.ThreadID != "" {
			c.hub.SetTyping(c, evt.ThreadID, evt.IsTyping)
		}
	default:
		c.hub.logger.Debug("Client", "Unknown event ignored", map[string]interface{}{
			"user": c.UserName, "event": evt.Event,
		})
	}
}

// writePump pumps outbound pushes from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush queued pushes into the same websocket frame.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs runs the read/write loops for an authenticated connection. It
// blocks until the connection drops.
func ServeWs(hub *Hub, conn *websocket.Conn, identity Identity) {
	client := newClient(hub, conn, identity)
	hub.Register(client)

	go client.writePump()
	client.readPump()
}
