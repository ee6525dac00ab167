package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/controllers"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/pages"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/websocket"
)

// Controllers groups the JSON API controllers
type Controllers struct {
	Auth          *controllers.AuthController
	Profile       *controllers.ProfileController
	Club          *controllers.ClubController
	Event         *controllers.EventController
	Admin         *controllers.AdminController
	Notification  *controllers.NotificationController
	Dashboard     *controllers.DashboardController
	Notifications *websocket.Handler
}

// SetupRouter configures all application routes. The session resolver must
// already be installed on router.
func SetupRouter(
	router *gin.Engine,
	ctrl *Controllers,
	pageHandler *pages.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.GET("/oauth/providers", ctrl.Auth.OAuthProviders)
	}
	v1.GET("/clubs", ctrl.Club.ListClubs)
	v1.GET("/events", ctrl.Event.ListEvents)

	// Club and event details are public for approved clubs and published
	// events; the services widen visibility for members and leads.
	v1.GET("/clubs/:id", ctrl.Club.GetClub)
	v1.GET("/events/:id", ctrl.Event.GetEvent)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.APIAuth())
	{
		authenticated.POST("/auth/logout", ctrl.Auth.Logout)
		authenticated.GET("/auth/me", ctrl.Auth.Me)

		authenticated.GET("/profile", ctrl.Profile.GetProfile)
		authenticated.PUT("/profile", ctrl.Profile.UpdateProfile)
		authenticated.POST("/profile/avatar", ctrl.Profile.UploadAvatar)

		authenticated.GET("/dashboard", ctrl.Dashboard.GetDashboard)

		clubs := authenticated.Group("/clubs")
		{
			clubs.GET("/mine", ctrl.Club.MyClubs)
			clubs.PUT("/:id", ctrl.Club.UpdateClub)
			clubs.POST("/:id/logo", ctrl.Club.UploadLogo)
			clubs.POST("/:id/cover", ctrl.Club.UploadCover)
			clubs.POST("/:id/leave", ctrl.Club.LeaveClub)
			clubs.GET("/:id/members", ctrl.Club.ListMembers)
			clubs.POST("/:id/members", ctrl.Club.AddMember)
			clubs.PUT("/:id/members/:userId", ctrl.Club.ChangeMemberRole)
			clubs.DELETE("/:id/members/:userId", ctrl.Club.RemoveMember)
			clubs.POST("/:id/events", ctrl.Club.SubmitEvent)

			creators := clubs.Group("")
			creators.Use(authMiddleware.APIRoleRequired(models.RoleClubLead, models.RoleAdmin))
			creators.POST("", ctrl.Club.CreateClub)
		}

		events := authenticated.Group("/events")
		{
			events.PUT("/:id", ctrl.Event.UpdateEvent)
			events.PUT("/:id/status", ctrl.Event.SetEventStatus)
			events.DELETE("/:id", ctrl.Event.DeleteEvent)

			leads := events.Group("")
			leads.Use(authMiddleware.APIRoleRequired(models.RoleClubLead, models.RoleAdmin))
			leads.POST("", ctrl.Event.CreateLiveEvent)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", ctrl.Notification.ListNotifications)
			notifications.POST("/read-all", ctrl.Notification.MarkAllAsRead)
			notifications.POST("/:id/read", ctrl.Notification.MarkAsRead)
			notifications.GET("/ws", ctrl.Notifications.HandleConnection)
		}

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.APIRoleRequired(models.RoleAdmin))
		{
			admin.GET("/stats", ctrl.Admin.Stats)
			admin.GET("/clubs", ctrl.Admin.AllClubs)
			admin.GET("/clubs/pending", ctrl.Admin.PendingClubs)
			admin.POST("/clubs/:id/approve", ctrl.Admin.ApproveClub)
			admin.POST("/clubs/:id/reject", ctrl.Admin.RejectClub)
			admin.DELETE("/clubs/:id", ctrl.Admin.DeleteClub)
			admin.GET("/events/pending", ctrl.Admin.EventQueue)
			admin.POST("/events/:id/approve", ctrl.Admin.ApproveEvent)
			admin.POST("/events/:id/decline", ctrl.Admin.DeclineEvent)
			admin.GET("/users", ctrl.Admin.ListUsers)
			admin.PUT("/users/:id/role", ctrl.Admin.ChangeUserRole)
			admin.DELETE("/users/:id", ctrl.Admin.PurgeUser)
		}
	}

	// --- HTML pages ---
	site := router.Group("")
	site.Use(middleware.PageGate())
	pageHandler.Register(site)
}
