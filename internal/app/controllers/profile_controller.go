package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/services"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

// ProfileController handles the caller's own profile
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile returns the caller's profile
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Profile}
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(actor(ctx), ""))
}

// UpdateProfile edits the caller's profile fields
// @Summary Update my profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=models.Profile}
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := middleware.Bind(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), actor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Profile updated"))
}

// UploadAvatar replaces the caller's avatar
// @Summary Upload avatar
// @Description Accepts a JPEG, PNG, GIF or WebP image up to 5 MiB in the "avatar" form field.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse{data=models.Profile}
// @Failure 400 {object} dto.APIResponse "Missing or unsupported file"
// @Router /profile/avatar [post]
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	file, err := ctx.FormFile("avatar")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("avatar file is required"))
		return
	}

	profile, err := c.profileService.UploadAvatar(ctx.Request.Context(), actor(ctx), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Avatar updated"))
}
