package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/pkg/realtime"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Client frames are tiny actions
	maxMessageSize = 4 * 1024

	// Time allowed for one client action to reach the store
	actionTimeout = 5 * time.Second

	sendBuffer = 64
)

// Client is one websocket session. It owns the session's notification feed.
type Client struct {
	hub     *Hub
	actions *MessageHandler

	conn *websocket.Conn

	// Buffered channel of outbound frames
	send chan []byte

	userID uuid.UUID
	feed   *realtime.Feed

	logger zerolog.Logger
}

// deliver reduces a change event into the feed and pushes it when it changed
// what the session holds. It never blocks.
func (c *Client) deliver(ev realtime.ChangeEvent) {
	if !c.feed.Apply(ev) {
		return
	}
	n := ev.Notification
	c.push(Frame{Type: string(ev.Type), Notification: &n, UnreadCount: c.feed.UnreadCount()})
}

// pushSnapshot sends the whole feed
func (c *Client) pushSnapshot() {
	items, unread := c.feed.Snapshot()
	c.push(Frame{Type: FrameSnapshot, Notifications: items, UnreadCount: unread})
}

// push queues a frame. A session that cannot keep up is closed; its read
// loop then unregisters it.
func (c *Client) push(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		c.logger.Error().Err(err).Str("frame", f.Type).Msg("Failed to encode frame")
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn().Msg("Send buffer full, closing websocket")
		_ = c.conn.Close()
	}
}

// readPump reads client actions until the connection drops
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug().Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().Err(err).Msg("WebSocket read error")
			}
			break
		}

		var action Action
		if err := json.Unmarshal(message, &action); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to unmarshal client action")
			c.push(Frame{Type: FrameError, Error: "malformed message"})
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		c.actions.Handle(ctx, c, action)
		cancel()
	}
}

// writePump writes queued frames and keeps the connection alive with pings
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
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
