package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
)

// EventController handles event operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// ListEvents godoc
// @Summary List published events
// @Tags events
// @Produce json
// @Param clubId query string false "Club ID"
// @Param upcoming query bool false "Only future events" default(true)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse}
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	var filter dto.EventFilterRequest
	if err := middleware.BindQuery(ctx, &filter); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	events, err := c.eventService.ListPublished(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// GetEvent godoc
// @Summary Get an event
// @Description Drafts are only visible to the club's leads and admins.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 404 {object} dto.APIResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, ""))
}

// CreateLiveEvent godoc
// @Summary Publish an event immediately
// @Description Lead dashboard creation path. The event is published at once and enters the admin queue.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LiveEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=models.Event}
// @Failure 403 {object} dto.APIResponse "Not a lead or club not approved"
// @Router /events [post]
func (c *EventController) CreateLiveEvent(ctx *gin.Context) {
	var req dto.LiveEventRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	event, err := c.eventService.CreateLiveEvent(ctx.Request.Context(), actor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event, "Event published"))
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event data"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Request.Context(), actor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Event updated"))
}

// SetEventStatus godoc
// @Summary Change an event's status
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.SetEventStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Router /events/{id}/status [put]
func (c *EventController) SetEventStatus(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SetEventStatusRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	event, err := c.eventService.SetStatus(ctx.Request.Context(), actor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Status updated"))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.eventService.DeleteEvent(ctx.Request.Context(), actor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Event deleted"))
}
