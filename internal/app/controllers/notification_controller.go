package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
)

// NotificationController serves the notification feed over HTTP. Live
// updates go through the websocket endpoint.
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListNotifications godoc
// @Summary Latest notifications
// @Description Returns the newest notifications and the unread count among them.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse}
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	list, err := c.notificationService.Latest(ctx.Request.Context(), actor(ctx).ID, c.notificationService.FeedSize())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list, ""))
}

// MarkAsRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=models.Notification}
// @Failure 404 {object} dto.APIResponse "Notification not found"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	n, err := c.notificationService.MarkAsRead(ctx.Request.Context(), actor(ctx).ID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(n, ""))
}

// MarkAllAsRead godoc
// @Summary Mark every notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Notification}
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	changed, err := c.notificationService.MarkAllAsRead(ctx.Request.Context(), actor(ctx).ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(changed, "All notifications marked as read"))
}
