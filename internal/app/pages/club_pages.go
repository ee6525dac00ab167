package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

func clubPath(id uuid.UUID) string {
	return "/dashboard/clubs/" + id.String()
}

type clubListData struct {
	Filter dto.ClubFilterRequest
	Result *dto.ClubListResponse
}

// ClubList renders the approved club directory
func (h *Handler) ClubList(c *gin.Context) {
	var filter dto.ClubFilterRequest
	if err := middleware.BindQuery(c, &filter); err != nil {
		h.renderError(c, err)
		return
	}
	clubs, err := h.svc.Clubs.ListClubs(c.Request.Context(), &filter)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "club_list", "Clubs", clubListData{Filter: filter, Result: clubs})
}

// NewClubForm renders the club registration form
func (h *Handler) NewClubForm(c *gin.Context) {
	if err := h.svc.Authz.RequireClubCreator(me(c)); err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "club_new", "Register a club", nil)
}

// CreateClub registers a pending club led by the caller
func (h *Handler) CreateClub(c *gin.Context) {
	var req dto.CreateClubRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, "/dashboard/clubs/new", err)
		return
	}
	club, err := h.svc.Clubs.RegisterClub(c.Request.Context(), me(c), &req)
	if err != nil {
		h.fail(c, "/dashboard/clubs/new", err)
		return
	}
	h.done(c, clubPath(club.ID), "Club submitted. An administrator will review it shortly.")
}

// ClubDetail renders a club with its members and events
func (h *Handler) ClubDetail(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.svc.Clubs.GetClub(c.Request.Context(), me(c), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "club_detail", detail.Club.Name, detail)
}

// UpdateClub saves the club's name and description
func (h *Handler) UpdateClub(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateClubRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	if _, err := h.svc.Clubs.UpdateClub(c.Request.Context(), me(c), id, &req); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	h.done(c, clubPath(id), "Club updated")
}

// UploadLogo replaces the club logo
func (h *Handler) UploadLogo(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("logo")
	if err != nil {
		h.fail(c, clubPath(id), apperrors.NewValidationError("choose an image to upload"))
		return
	}
	if _, err := h.svc.Clubs.UploadLogo(c.Request.Context(), me(c), id, file); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	h.done(c, clubPath(id), "Logo updated")
}

// UploadCover replaces the club cover image
func (h *Handler) UploadCover(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("cover")
	if err != nil {
		h.fail(c, clubPath(id), apperrors.NewValidationError("choose an image to upload"))
		return
	}
	if _, err := h.svc.Clubs.UploadCover(c.Request.Context(), me(c), id, file); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	h.done(c, clubPath(id), "Cover image updated")
}

// LeaveClub removes the caller's own membership
func (h *Handler) LeaveClub(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Clubs.LeaveClub(c.Request.Context(), me(c), id); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	h.done(c, "/dashboard/clubs", "You left the club")
}

// AddMember adds a member by email
func (h *Handler) AddMember(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	if _, err := h.svc.Members.AddMember(c.Request.Context(), me(c), id, &req); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	h.done(c, clubPath(id), "Member added")
}

// ChangeMemberRole promotes or demotes a member
func (h *Handler) ChangeMemberRole(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.idParam(c, "userId")
	if !ok {
		return
	}
	var req dto.ChangeMemberRoleRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	if err := h.svc.Members.ChangeRole(c.Request.Context(), me(c), id, userID, &req); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	h.done(c, clubPath(id), "Role updated")
}

// RemoveMember deletes a membership
func (h *Handler) RemoveMember(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.idParam(c, "userId")
	if !ok {
		return
	}
	if err := h.svc.Members.RemoveMember(c.Request.Context(), me(c), id, userID); err != nil {
		h.fail(c, clubPath(id), err)
		return
	}
	if userID == me(c).ID {
		h.done(c, "/dashboard/clubs", "You left the club")
		return
	}
	h.done(c, clubPath(id), "Member removed")
}

// SubmitEventForm renders the club-scoped event form
func (h *Handler) SubmitEventForm(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	club, err := h.svc.Authz.RequireClubLead(c.Request.Context(), me(c), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "event_form", "New event", club)
}

// SubmitEvent creates an event in the club. The club must be approved.
func (h *Handler) SubmitEvent(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	back := clubPath(id) + "/create-event"
	var req dto.SubmitEventRequest
	if err := middleware.Bind(c, &req); err != nil {
		h.fail(c, back, err)
		return
	}
	event, err := h.svc.Events.SubmitEvent(c.Request.Context(), me(c), id, &req)
	if err != nil {
		h.fail(c, back, err)
		return
	}
	h.done(c, "/dashboard/events/"+event.ID.String(), "Event created")
}
