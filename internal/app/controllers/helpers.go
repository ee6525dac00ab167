package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/appctx"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

// actor is the resolved caller. Routes using it sit behind APIAuth.
func actor(ctx *gin.Context) *models.Profile {
	return appctx.Profile(ctx)
}

// uuidParam parses a path parameter, writing a 400 response when it is not an id.
func uuidParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid "+name).
			WithDetails(map[string]interface{}{name: "must be a valid id"}))
		return uuid.Nil, false
	}
	return id, true
}
