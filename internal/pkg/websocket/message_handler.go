package websocket

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

// Frame types pushed to the client besides the change types INSERT, UPDATE and DELETE
const (
	FrameSnapshot = "snapshot"
	FrameError    = "error"
)

// Client actions
const (
	ActionMarkAsRead    = "markAsRead"
	ActionMarkAllAsRead = "markAllAsRead"
)

// Frame is one server to client message
type Frame struct {
	Type          string                `json:"type"`
	Notification  *models.Notification  `json:"notification,omitempty"`
	Notifications []models.Notification `json:"notifications,omitempty"`
	UnreadCount   int                   `json:"unreadCount"`
	Error         string                `json:"error,omitempty"`
}

// Action is one client to server message
type Action struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}

// MessageHandler applies client actions. Changes are applied to the session
// feed first and written through to the store; a failed write re-syncs the
// feed from the store.
type MessageHandler struct {
	notifications services.NotificationService
	logger        zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(notifications services.NotificationService, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{notifications: notifications, logger: logger}
}

// Handle applies one action for the client's user
func (h *MessageHandler) Handle(ctx context.Context, c *Client, action Action) {
	switch action.Action {
	case ActionMarkAsRead:
		id, err := uuid.Parse(action.ID)
		if err != nil {
			c.push(Frame{Type: FrameError, Error: "invalid notification id"})
			return
		}
		h.markAsRead(ctx, c, id)
	case ActionMarkAllAsRead:
		h.markAllAsRead(ctx, c)
	default:
		c.push(Frame{Type: FrameError, Error: "unknown action"})
	}
}

func (h *MessageHandler) markAsRead(ctx context.Context, c *Client, id uuid.UUID) {
	if c.feed.MarkRead(id) {
		if n, ok := c.feed.Get(id); ok {
			c.push(Frame{Type: "UPDATE", Notification: &n, UnreadCount: c.feed.UnreadCount()})
		}
	}

	if _, err := h.notifications.MarkAsRead(ctx, c.userID, id); err != nil {
		h.logger.Warn().Err(err).
			Str("userID", c.userID.String()).
			Str("notificationID", id.String()).
			Msg("Mark as read failed, resyncing feed")
		h.resync(ctx, c, err)
	}
}

func (h *MessageHandler) markAllAsRead(ctx context.Context, c *Client) {
	if changed := c.feed.MarkAllRead(); len(changed) > 0 {
		c.pushSnapshot()
	}

	if _, err := h.notifications.MarkAllAsRead(ctx, c.userID); err != nil {
		h.logger.Warn().Err(err).Str("userID", c.userID.String()).Msg("Mark all as read failed, resyncing feed")
		h.resync(ctx, c, err)
	}
}

// Load fills the feed from the store and pushes it as a snapshot. Events
// delivered during the read are replayed on top of it.
func (h *MessageHandler) Load(ctx context.Context, c *Client) error {
	c.feed.Hold()
	list, err := h.notifications.Latest(ctx, c.userID, h.notifications.FeedSize())
	if err != nil {
		c.feed.Resume()
		return err
	}
	c.feed.Load(list.Notifications)
	c.pushSnapshot()
	return nil
}

func (h *MessageHandler) resync(ctx context.Context, c *Client, cause error) {
	if err := h.Load(ctx, c); err != nil {
		h.logger.Error().Err(err).Str("userID", c.userID.String()).Msg("Feed resync failed")
	}
	c.push(Frame{Type: FrameError, Error: apperrors.Message(cause), UnreadCount: c.feed.UnreadCount()})
}
