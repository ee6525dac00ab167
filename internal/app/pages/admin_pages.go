package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/middleware"
)

const adminPath = "/dashboard/admin"

type userFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=student club_lead admin"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"min=1,max=100"`
}

type adminUsersData struct {
	Filter userFilter
	Result *dto.UserListResponse
	Roles  []models.Role
}

type adminClubsData struct {
	Filter dto.ClubFilterRequest
	Result *dto.ClubListResponse
}

// AdminUsers renders the user directory
func (h *Handler) AdminUsers(c *gin.Context) {
	var filter userFilter
	if err := middleware.BindQuery(c, &filter); err != nil {
		h.renderError(c, err)
		return
	}
	var role *models.Role
	if filter.Role != "" {
		role = models.RolePtr(models.Role(filter.Role))
	}
	users, err := h.svc.Admin.ListUsers(c.Request.Context(), me(c), filter.Search, role, filter.Page, filter.PageSize)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_users", "Users", adminUsersData{
		Filter: filter,
		Result: users,
		Roles:  []models.Role{models.RoleStudent, models.RoleClubLead, models.RoleAdmin},
	})
}

// AdminChangeRole sets a user's platform role
func (h *Handler) AdminChangeRole(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, adminPath+"/users", err)
		return
	}
	if err := h.svc.Admin.ChangeUserRole(c.Request.Context(), me(c), id, &req); err != nil {
		h.fail(c, adminPath+"/users", err)
		return
	}
	h.done(c, adminPath+"/users", "Role updated")
}

// AdminPurgeUser deletes a user and their data
func (h *Handler) AdminPurgeUser(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Admin.PurgeUser(c.Request.Context(), me(c), id); err != nil {
		h.fail(c, adminPath+"/users", err)
		return
	}
	h.done(c, adminPath+"/users", "User deleted")
}

// AdminClubs renders every club, pending ones included
func (h *Handler) AdminClubs(c *gin.Context) {
	var filter dto.ClubFilterRequest
	if err := middleware.BindQuery(c, &filter); err != nil {
		h.renderError(c, err)
		return
	}
	clubs, err := h.svc.Admin.AllClubs(c.Request.Context(), me(c), &filter)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_clubs", "All clubs", adminClubsData{Filter: filter, Result: clubs})
}

// AdminApproveClub approves a pending club
func (h *Handler) AdminApproveClub(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	club, err := h.svc.Admin.ApproveClub(c.Request.Context(), me(c), id)
	if err != nil {
		h.fail(c, adminPath, err)
		return
	}
	h.done(c, adminPath, club.Name+" approved")
}

// AdminRejectClub rejects and deletes a pending club
func (h *Handler) AdminRejectClub(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Admin.RejectClub(c.Request.Context(), me(c), id); err != nil {
		h.fail(c, adminPath, err)
		return
	}
	h.done(c, adminPath, "Club rejected")
}

// AdminDeleteClub deletes any club
func (h *Handler) AdminDeleteClub(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Admin.DeleteClub(c.Request.Context(), me(c), id); err != nil {
		h.fail(c, adminPath+"/clubs", err)
		return
	}
	h.done(c, adminPath+"/clubs", "Club deleted")
}

// AdminApproveEvent approves an event from the verification queue
func (h *Handler) AdminApproveEvent(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	event, err := h.svc.Admin.ApproveEvent(c.Request.Context(), me(c), id)
	if err != nil {
		h.fail(c, adminPath, err)
		return
	}
	h.done(c, adminPath, event.Title+" approved")
}

// AdminDeclineEvent deletes an event from the verification queue
func (h *Handler) AdminDeclineEvent(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Admin.DeclineEvent(c.Request.Context(), me(c), id); err != nil {
		h.fail(c, adminPath, err)
		return
	}
	h.done(c, adminPath, "Event declined")
}
