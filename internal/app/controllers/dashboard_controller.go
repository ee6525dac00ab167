package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
)

// DashboardController returns the data behind each role's dashboard
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary Dashboard for the caller's role
// @Description Returns the student, lead or admin dashboard depending on the caller's role.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	me := actor(ctx)
	var (
		data interface{}
		err  error
	)
	switch me.Role {
	case models.RoleAdmin:
		data, err = c.dashboardService.Admin(ctx.Request.Context(), me)
	case models.RoleClubLead:
		data, err = c.dashboardService.Lead(ctx.Request.Context(), me)
	default:
		data, err = c.dashboardService.Student(ctx.Request.Context(), me)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, ""))
}
