package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

// ClubController handles club and membership operations
type ClubController struct {
	clubService       services.ClubService
	membershipService services.MembershipService
	eventService      services.EventService
	logger            zerolog.Logger
}

// NewClubController creates a new ClubController
func NewClubController(
	clubService services.ClubService,
	membershipService services.MembershipService,
	eventService services.EventService,
	logger zerolog.Logger,
) *ClubController {
	return &ClubController{
		clubService:       clubService,
		membershipService: membershipService,
		eventService:      eventService,
		logger:            logger,
	}
}

// ListClubs godoc
// @Summary List approved clubs
// @Tags clubs
// @Produce json
// @Param search query string false "Name filter"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(12)
// @Success 200 {object} dto.APIResponse{data=dto.ClubListResponse}
// @Router /clubs [get]
func (c *ClubController) ListClubs(ctx *gin.Context) {
	var filter dto.ClubFilterRequest
	if err := middleware.BindQuery(ctx, &filter); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	clubs, err := c.clubService.ListClubs(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(clubs, ""))
}

// GetClub godoc
// @Summary Get club details
// @Description Pending clubs are only visible to their members and admins.
// @Tags clubs
// @Produce json
// @Param id path string true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubDetailResponse}
// @Failure 404 {object} dto.APIResponse "Club not found"
// @Router /clubs/{id} [get]
func (c *ClubController) GetClub(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.clubService.GetClub(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail, ""))
}

// CreateClub godoc
// @Summary Register a club
// @Description Creates a pending club with the caller as its lead. Requires the club_lead or admin role.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club data"
// @Success 201 {object} dto.APIResponse{data=models.Club}
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /clubs [post]
func (c *ClubController) CreateClub(ctx *gin.Context) {
	var req dto.CreateClubRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	club, err := c.clubService.RegisterClub(ctx.Request.Context(), actor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Str("clubID", club.ID.String()).Msg("Club registered")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(club, "Club submitted for approval"))
}

// UpdateClub godoc
// @Summary Update a club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Param request body dto.UpdateClubRequest true "Club data"
// @Success 200 {object} dto.APIResponse{data=models.Club}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /clubs/{id} [put]
func (c *ClubController) UpdateClub(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateClubRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	club, err := c.clubService.UpdateClub(ctx.Request.Context(), actor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Club updated"))
}

type clubUpload func(ctx *gin.Context, id uuid.UUID, file *multipart.FileHeader) (*models.Club, error)

func (c *ClubController) handleUpload(ctx *gin.Context, field string, upload clubUpload) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	file, err := ctx.FormFile(field)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(field+" file is required"))
		return
	}

	club, err := upload(ctx, id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Image uploaded"))
}

// UploadLogo godoc
// @Summary Upload club logo
// @Tags clubs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Param logo formData file true "Logo image"
// @Success 200 {object} dto.APIResponse{data=models.Club}
// @Router /clubs/{id}/logo [post]
func (c *ClubController) UploadLogo(ctx *gin.Context) {
	c.handleUpload(ctx, "logo", func(ctx *gin.Context, id uuid.UUID, file *multipart.FileHeader) (*models.Club, error) {
		return c.clubService.UploadLogo(ctx.Request.Context(), actor(ctx), id, file)
	})
}

// UploadCover godoc
// @Summary Upload club cover image
// @Tags clubs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Param cover formData file true "Cover image"
// @Success 200 {object} dto.APIResponse{data=models.Club}
// @Router /clubs/{id}/cover [post]
func (c *ClubController) UploadCover(ctx *gin.Context) {
	c.handleUpload(ctx, "cover", func(ctx *gin.Context, id uuid.UUID, file *multipart.FileHeader) (*models.Club, error) {
		return c.clubService.UploadCover(ctx.Request.Context(), actor(ctx), id, file)
	})
}

// MyClubs godoc
// @Summary List my memberships
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ClubMembership}
// @Router /clubs/mine [get]
func (c *ClubController) MyClubs(ctx *gin.Context) {
	memberships, err := c.clubService.MyClubs(ctx.Request.Context(), actor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(memberships, ""))
}

// LeaveClub godoc
// @Summary Leave a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Not a member"
// @Router /clubs/{id}/leave [post]
func (c *ClubController) LeaveClub(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.clubService.LeaveClub(ctx.Request.Context(), actor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "You left the club"))
}

// ListMembers godoc
// @Summary List club members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ClubMembership}
// @Router /clubs/{id}/members [get]
func (c *ClubController) ListMembers(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	members, err := c.membershipService.ListMembers(ctx.Request.Context(), actor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members, ""))
}

// AddMember godoc
// @Summary Add a member by email
// @Description Only club leads may add members. The email must match an existing profile exactly.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Param request body dto.AddMemberRequest true "Member email and role"
// @Success 201 {object} dto.APIResponse{data=models.ClubMembership}
// @Failure 404 {object} dto.APIResponse "No user with that email"
// @Failure 409 {object} dto.APIResponse "Already a member"
// @Router /clubs/{id}/members [post]
func (c *ClubController) AddMember(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	membership, err := c.membershipService.AddMember(ctx.Request.Context(), actor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(membership, "Member added"))
}

// ChangeMemberRole godoc
// @Summary Change a member's role
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Param userId path string true "User ID"
// @Param request body dto.ChangeMemberRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse
// @Router /clubs/{id}/members/{userId} [put]
func (c *ClubController) ChangeMemberRole(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := uuidParam(ctx, "userId")
	if !ok {
		return
	}
	var req dto.ChangeMemberRoleRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.membershipService.ChangeRole(ctx.Request.Context(), actor(ctx), clubID, userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Role updated"))
}

// RemoveMember godoc
// @Summary Remove a member
// @Description Leads may remove anyone; members may remove themselves.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse
// @Router /clubs/{id}/members/{userId} [delete]
func (c *ClubController) RemoveMember(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := uuidParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.membershipService.RemoveMember(ctx.Request.Context(), actor(ctx), clubID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Member removed"))
}

// SubmitEvent godoc
// @Summary Create a club event
// @Description The club must be approved. The event is a draft unless status is published, and always enters the admin queue.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club ID"
// @Param request body dto.SubmitEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=models.Event}
// @Failure 403 {object} dto.APIResponse "Not a lead or club not approved"
// @Router /clubs/{id}/events [post]
func (c *ClubController) SubmitEvent(ctx *gin.Context) {
	clubID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SubmitEventRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	event, err := c.eventService.SubmitEvent(ctx.Request.Context(), actor(ctx), clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event, "Event created"))
}
