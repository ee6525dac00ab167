package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/middleware"
)

func eventPath(id uuid.UUID) string {
	return "/dashboard/events/" + id.String()
}

type eventListData struct {
	Filter dto.EventFilterRequest
	Result *dto.EventListResponse
}

type eventDetailData struct {
	Event     *models.Event
	CanManage bool
	Statuses  []models.EventStatus
}

// EventList renders the published events
func (h *Handler) EventList(c *gin.Context) {
	var filter dto.EventFilterRequest
	if err := middleware.BindQuery(c, &filter); err != nil {
		h.renderError(c, err)
		return
	}
	events, err := h.svc.Events.ListPublished(c.Request.Context(), &filter)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "event_list", "Events", eventListData{Filter: filter, Result: events})
}

// EventDetail renders one event, with the edit controls for its managers
func (h *Handler) EventDetail(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	event, err := h.svc.Events.GetEvent(c.Request.Context(), me(c), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	_, manageErr := h.svc.Authz.RequireEventManager(c.Request.Context(), me(c), id)
	h.render(c, http.StatusOK, "event_detail", event.Title, eventDetailData{
		Event:     event,
		CanManage: manageErr == nil,
		Statuses:  []models.EventStatus{models.EventStatusDraft, models.EventStatusPublished, models.EventStatusCancelled},
	})
}

// UpdateEvent saves the event details
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, eventPath(id), err)
		return
	}
	if _, err := h.svc.Events.UpdateEvent(c.Request.Context(), me(c), id, &req); err != nil {
		h.fail(c, eventPath(id), err)
		return
	}
	h.done(c, eventPath(id), "Event updated")
}

// SetEventStatus switches between draft, published and cancelled
func (h *Handler) SetEventStatus(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetEventStatusRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, eventPath(id), err)
		return
	}
	if _, err := h.svc.Events.SetStatus(c.Request.Context(), me(c), id, &req); err != nil {
		h.fail(c, eventPath(id), err)
		return
	}
	h.done(c, eventPath(id), "Status changed to "+req.Status)
}

// DeleteEvent removes the event permanently
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	event, err := h.svc.Events.GetEvent(c.Request.Context(), me(c), id)
	if err != nil {
		h.fail(c, eventPath(id), err)
		return
	}
	if err := h.svc.Events.DeleteEvent(c.Request.Context(), me(c), id); err != nil {
		h.fail(c, eventPath(id), err)
		return
	}
	h.done(c, clubPath(event.ClubID), "Event deleted")
}
