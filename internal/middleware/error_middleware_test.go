package middleware_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/middleware"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.NewResourceNotFoundError("club not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.NewConflictError("dup"), http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.NewForbiddenError("no"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.NewValidationError("bad"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.NewUnauthenticatedError("who"), http.StatusUnauthorized, dto.ErrorCodeUnauthenticated},
		{apperrors.NewUpstreamError("down", errors.New("dial tcp")), http.StatusServiceUnavailable, dto.ErrorCodeUpstreamUnavailable},
		{apperrors.NewCustomError(errors.Join(apperrors.ErrUnauthenticated, apperrors.ErrInvalidCredentials), "bad login"), http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.NewCustomError(errors.Join(apperrors.ErrUnauthenticated, apperrors.ErrTokenExpired), "expired"), http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{fmt.Errorf("wrapped: %w", apperrors.ErrResourceNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code := middleware.ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
