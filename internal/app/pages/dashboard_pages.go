package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/middleware"
)

// StudentDashboard renders the student landing page
func (h *Handler) StudentDashboard(c *gin.Context) {
	data, err := h.svc.Dashboards.Student(c.Request.Context(), me(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "student_dashboard", "Student dashboard", data)
}

// LeadDashboard renders the club lead landing page
func (h *Handler) LeadDashboard(c *gin.Context) {
	data, err := h.svc.Dashboards.Lead(c.Request.Context(), me(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "lead_dashboard", "Lead dashboard", data)
}

// AdminDashboard renders the admin landing page
func (h *Handler) AdminDashboard(c *gin.Context) {
	data, err := h.svc.Dashboards.Admin(c.Request.Context(), me(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_dashboard", "Admin dashboard", data)
}

// LiveEventForm renders the lead's create-event form, limited to approved clubs
func (h *Handler) LiveEventForm(c *gin.Context) {
	data, err := h.svc.Dashboards.Lead(c.Request.Context(), me(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "live_event_form", "Create event", data.ApprovedClubs)
}

// CreateLiveEvent publishes an event straight from the lead dashboard
func (h *Handler) CreateLiveEvent(c *gin.Context) {
	const back = "/dashboard/lead/create-event"
	var req dto.LiveEventRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, back, err)
		return
	}
	event, err := h.svc.Events.CreateLiveEvent(c.Request.Context(), me(c), &req)
	if err != nil {
		h.fail(c, back, err)
		return
	}
	h.done(c, "/dashboard/events/"+event.ID.String(), "Event published")
}
