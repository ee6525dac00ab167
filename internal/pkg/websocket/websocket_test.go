package websocket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/auth"
	"github.com/yigit/clubsphere/internal/pkg/realtime"
	"github.com/yigit/clubsphere/internal/pkg/websocket"
	"github.com/yigit/clubsphere/internal/storage/memstore"
	"github.com/yigit/clubsphere/internal/testutil"
)

type harness struct {
	repos *repositories.Repositories
	svc   *services.Services
	hub   *websocket.Hub
	url   string
	stop  context.CancelFunc
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos, _ := memstore.NewRepositories()
	broker := realtime.NewLocalBroker()
	svc := services.NewServices(services.Dependencies{
		Repos:      repos,
		JWT:        auth.NewJWTService(auth.JWTConfig{SecretKey: "ws", SessionExp: time.Hour, TokenIssuer: "clubsphere"}),
		Broker:     broker,
		FeedSize:   5,
		SessionTTL: time.Hour,
		Logger:     zerolog.Nop(),
	})
	mw := middleware.NewAuthMiddleware(svc.Auth, svc.Profiles, "session", zerolog.Nop())

	hub := websocket.NewHub(broker, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	handler := websocket.NewHandler(hub, websocket.NewMessageHandler(svc.Notifications, zerolog.Nop()), nil, zerolog.Nop())
	r := gin.New()
	r.Use(mw.SessionResolver())
	r.GET("/ws", handler.HandleConnection)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return &harness{
		repos: repos,
		svc:   svc,
		hub:   hub,
		url:   "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
		stop:  cancel,
	}
}

func (h *harness) dial(t *testing.T, email string) *gorilla.Conn {
	t.Helper()
	session, err := h.svc.Auth.SignIn(context.Background(), &dto.LoginRequest{Email: email, Password: testutil.Password})
	require.NoError(t, err)

	header := http.Header{"Authorization": {"Bearer " + session.AccessToken}}
	conn, _, err := gorilla.DefaultDialer.Dial(h.url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// next reads frames until one of the given type arrives
func next(t *testing.T, conn *gorilla.Conn, frameType string) websocket.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var f websocket.Frame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Type == frameType {
			return f
		}
	}
}

func TestNotificationChannel(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, h.repos, "student@uni.edu", models.RoleStudent)
	require.NoError(t, h.svc.Notifications.Notify(ctx, &models.Notification{UserID: user.ID, Title: "welcome"}))

	conn := h.dial(t, "student@uni.edu")

	snap := next(t, conn, websocket.FrameSnapshot)
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, 1, snap.UnreadCount)
	require.Eventually(t, func() bool { return h.hub.SessionCount(user.ID) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, h.svc.Notifications.Notify(ctx, &models.Notification{UserID: user.ID, Title: "club approved", Type: models.NotificationSuccess}))
	insert := next(t, conn, string(realtime.ChangeInsert))
	require.NotNil(t, insert.Notification)
	assert.Equal(t, "club approved", insert.Notification.Title)
	assert.Equal(t, 2, insert.UnreadCount)

	require.NoError(t, conn.WriteJSON(websocket.Action{Action: websocket.ActionMarkAsRead, ID: insert.Notification.ID.String()}))
	update := next(t, conn, string(realtime.ChangeUpdate))
	assert.Equal(t, 1, update.UnreadCount)

	require.NoError(t, conn.WriteJSON(websocket.Action{Action: websocket.ActionMarkAllAsRead}))
	snap = next(t, conn, websocket.FrameSnapshot)
	assert.Zero(t, snap.UnreadCount)

	require.Eventually(t, func() bool {
		list, err := h.svc.Notifications.Latest(ctx, user.ID, 0)
		return err == nil && list.UnreadCount == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationChannel_MarkAsReadPushesOneUpdate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, h.repos, "student@uni.edu", models.RoleStudent)
	n := &models.Notification{UserID: user.ID, Title: "welcome"}
	require.NoError(t, h.svc.Notifications.Notify(ctx, n))

	conn := h.dial(t, "student@uni.edu")
	next(t, conn, websocket.FrameSnapshot)
	require.Eventually(t, func() bool { return h.hub.SessionCount(user.ID) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(websocket.Action{Action: websocket.ActionMarkAsRead, ID: n.ID.String()}))
	update := next(t, conn, string(realtime.ChangeUpdate))
	assert.Zero(t, update.UnreadCount)
	require.Eventually(t, func() bool {
		list, err := h.svc.Notifications.Latest(ctx, user.ID, 0)
		return err == nil && list.UnreadCount == 0
	}, time.Second, 10*time.Millisecond)

	// the store echo of the same change is not pushed again
	require.NoError(t, h.svc.Notifications.Notify(ctx, &models.Notification{UserID: user.ID, Title: "later"}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f websocket.Frame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, string(realtime.ChangeInsert), f.Type)
	assert.Equal(t, "later", f.Notification.Title)
}

func TestNotificationChannel_OnlyOwnEvents(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, h.repos, "alice@uni.edu", models.RoleStudent)
	bob := testutil.CreateUser(t, h.repos, "bob@uni.edu", models.RoleStudent)

	conn := h.dial(t, "alice@uni.edu")
	next(t, conn, websocket.FrameSnapshot)
	require.Eventually(t, func() bool { return h.hub.SessionCount(alice.ID) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, h.svc.Notifications.Notify(ctx, &models.Notification{UserID: bob.ID, Title: "for bob"}))
	require.NoError(t, h.svc.Notifications.Notify(ctx, &models.Notification{UserID: alice.ID, Title: "for alice"}))

	insert := next(t, conn, string(realtime.ChangeInsert))
	assert.Equal(t, "for alice", insert.Notification.Title)
	assert.Equal(t, 1, insert.UnreadCount)
}

func TestNotificationChannel_BadActions(t *testing.T) {
	h := newHarness(t)
	testutil.CreateUser(t, h.repos, "student@uni.edu", models.RoleStudent)
	conn := h.dial(t, "student@uni.edu")
	next(t, conn, websocket.FrameSnapshot)

	require.NoError(t, conn.WriteJSON(websocket.Action{Action: "explode"}))
	assert.Equal(t, "unknown action", next(t, conn, websocket.FrameError).Error)

	require.NoError(t, conn.WriteJSON(websocket.Action{Action: websocket.ActionMarkAsRead, ID: "nope"}))
	assert.Equal(t, "invalid notification id", next(t, conn, websocket.FrameError).Error)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte("{not json")))
	assert.Equal(t, "malformed message", next(t, conn, websocket.FrameError).Error)
}

func TestNotificationChannel_RequiresSession(t *testing.T) {
	h := newHarness(t)

	_, resp, err := gorilla.DefaultDialer.Dial(h.url, nil)
	require.ErrorIs(t, err, gorilla.ErrBadHandshake)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHubStopClosesSessions(t *testing.T) {
	h := newHarness(t)
	user := testutil.CreateUser(t, h.repos, "student@uni.edu", models.RoleStudent)
	conn := h.dial(t, "student@uni.edu")
	next(t, conn, websocket.FrameSnapshot)
	require.Eventually(t, func() bool { return h.hub.SessionCount(user.ID) == 1 }, time.Second, 10*time.Millisecond)

	h.stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	assert.Eventually(t, func() bool { return h.hub.SessionCount(user.ID) == 0 }, time.Second, 10*time.Millisecond)
}
