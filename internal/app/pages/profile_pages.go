package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

const profilePath = "/dashboard/profile"

// ProfilePage renders the caller's profile form
func (h *Handler) ProfilePage(c *gin.Context) {
	h.render(c, http.StatusOK, "profile", "My profile", me(c))
}

// UpdateProfile saves the profile form
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, profilePath, err)
		return
	}
	if _, err := h.svc.Profiles.UpdateProfile(c.Request.Context(), me(c), &req); err != nil {
		h.fail(c, profilePath, err)
		return
	}
	h.done(c, profilePath, "Profile saved")
}

// UploadAvatar replaces the caller's avatar
func (h *Handler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		h.fail(c, profilePath, apperrors.NewValidationError("choose an image to upload"))
		return
	}
	if _, err := h.svc.Profiles.UploadAvatar(c.Request.Context(), me(c), file); err != nil {
		h.fail(c, profilePath, err)
		return
	}
	h.done(c, profilePath, "Avatar updated")
}

// Notifications renders the latest notifications. The page keeps itself
// current over the notification websocket.
func (h *Handler) Notifications(c *gin.Context) {
	list, err := h.svc.Notifications.Latest(c.Request.Context(), me(c).ID, h.svc.Notifications.FeedSize())
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "notifications", "Notifications", list)
}

// MarkNotificationRead marks one notification read
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	n, err := h.svc.Notifications.MarkAsRead(c.Request.Context(), me(c).ID, id)
	if err != nil {
		h.fail(c, "/dashboard/notifications", err)
		return
	}
	if n.Link != "" && c.PostForm("follow") == "1" {
		c.Redirect(http.StatusSeeOther, n.Link)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/notifications")
}

// MarkAllNotificationsRead marks every notification read
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if _, err := h.svc.Notifications.MarkAllAsRead(c.Request.Context(), me(c).ID); err != nil {
		h.fail(c, "/dashboard/notifications", err)
		return
	}
	h.done(c, "/dashboard/notifications", "All caught up")
}
