package websocket

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/appctx"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/realtime"
)

// Handler upgrades notification channel requests
type Handler struct {
	hub      *Hub
	actions  *MessageHandler
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. With no allowed origins only
// same-origin upgrades are accepted.
func NewHandler(hub *Hub, actions *MessageHandler, allowedOrigins []string, logger zerolog.Logger) *Handler {
	h := &Handler{
		hub:     hub,
		actions: actions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = originChecker(allowedOrigins)
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return set[origin] || u.Host == r.Host
	}
}

// HandleConnection godoc
// @Summary Notification channel
// @Description Upgrades to a WebSocket that pushes {type, notification, unreadCount} frames for the caller's notifications. A snapshot frame is sent first. Clients may send {"action":"markAsRead","id":...} and {"action":"markAllAsRead"}.
// @Tags notifications
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Router /notifications/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	req := appctx.FromGin(c)
	if !req.Authenticated() {
		middleware.HandleAPIError(c, apperrors.NewUnauthenticatedError("authentication required"))
		return
	}
	userID := req.Profile.ID

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		actions: h.actions,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		userID:  userID,
		feed:    realtime.NewFeed(h.actions.notifications.FeedSize()),
		logger:  h.logger.With().Str("userID", userID.String()).Logger(),
	}
	// Register before loading so no event committed after the load is missed;
	// events arriving before the load lands are queued by the feed.
	client.feed.Hold()
	if !h.hub.join(client) {
		conn.Close()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	if err := h.actions.Load(ctx, client); err != nil {
		h.logger.Error().Err(err).Str("userID", userID.String()).Msg("Failed to load notification feed")
		client.push(Frame{Type: FrameError, Error: apperrors.Message(err)})
	}
	cancel()

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("userID", userID.String()).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
