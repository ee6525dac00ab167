package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
)

// AdminController exposes the moderation and user management operations
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{adminService: adminService, logger: logger}
}

// userListQuery is the admin user listing filter
type userListQuery struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=student club_lead admin"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// PendingClubs godoc
// @Summary List clubs awaiting approval
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Club}
// @Failure 403 {object} dto.APIResponse "Admin only"
// @Router /admin/clubs/pending [get]
func (c *AdminController) PendingClubs(ctx *gin.Context) {
	clubs, err := c.adminService.PendingClubs(ctx.Request.Context(), actor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(clubs, ""))
}

// AllClubs godoc
// @Summary List every club
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name filter"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(12)
// @Success 200 {object} dto.APIResponse{data=dto.ClubListResponse}
// @Router /admin/clubs [get]
func (c *AdminController) AllClubs(ctx *gin.Context) {
	var filter dto.ClubFilterRequest
	if err := middleware.BindQuery(ctx, &filter); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	clubs, err := c.adminService.AllClubs(ctx.Request.Context(), actor(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(clubs, ""))
}

// ApproveClub godoc
// @Summary Approve a pending club
// @Description Approves the club and notifies its leads.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Success 200 {object} dto.APIResponse{data=models.Club}
// @Failure 409 {object} dto.APIResponse "Already approved"
// @Router /admin/clubs/{id}/approve [post]
func (c *AdminController) ApproveClub(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	club, err := c.adminService.ApproveClub(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Str("clubID", id.String()).Msg("Club approved")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Club approved"))
}

// RejectClub godoc
// @Summary Reject a pending club
// @Description Notifies the leads and deletes the club.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Club already approved"
// @Router /admin/clubs/{id}/reject [post]
func (c *AdminController) RejectClub(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.RejectClub(ctx.Request.Context(), actor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Str("clubID", id.String()).Msg("Club rejected")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Club rejected"))
}

// DeleteClub godoc
// @Summary Delete a club
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/clubs/{id} [delete]
func (c *AdminController) DeleteClub(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.DeleteClub(ctx.Request.Context(), actor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Club deleted"))
}

// EventQueue godoc
// @Summary List events awaiting admin approval
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Event}
// @Router /admin/events/pending [get]
func (c *AdminController) EventQueue(ctx *gin.Context) {
	events, err := c.adminService.EventQueue(ctx.Request.Context(), actor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// ApproveEvent godoc
// @Summary Approve an event
// @Description Marks the event approved, publishes it and notifies the club's leads.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Router /admin/events/{id}/approve [post]
func (c *AdminController) ApproveEvent(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	event, err := c.adminService.ApproveEvent(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Event approved"))
}

// DeclineEvent godoc
// @Summary Decline an event
// @Description Declined events are deleted.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/events/{id}/decline [post]
func (c *AdminController) DeclineEvent(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.DeclineEvent(ctx.Request.Context(), actor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Event declined"))
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or email filter"
// @Param role query string false "Role filter" Enums(student, club_lead, admin)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	var query userListQuery
	if err := middleware.BindQuery(ctx, &query); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var role *models.Role
	if query.Role != "" {
		role = models.RolePtr(models.Role(query.Role))
	}

	users, err := c.adminService.ListUsers(ctx.Request.Context(), actor(ctx), query.Search, role, query.Page, query.PageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users, ""))
}

// ChangeUserRole godoc
// @Summary Change a user's platform role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.ChangeRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse
// @Router /admin/users/{id}/role [put]
func (c *AdminController) ChangeUserRole(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.adminService.ChangeUserRole(ctx.Request.Context(), actor(ctx), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Role updated"))
}

// PurgeUser godoc
// @Summary Delete a user and everything they own
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/users/{id} [delete]
func (c *AdminController) PurgeUser(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.PurgeUser(ctx.Request.Context(), actor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Warn().Str("userID", id.String()).Str("by", actor(ctx).ID.String()).Msg("User purged")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "User deleted"))
}

// Stats godoc
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PlatformStats}
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.adminService.Stats(ctx.Request.Context(), actor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}
