package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/yigit/clubsphere/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterRequest carries the sign-up form. The metadata fields seed the profile.
type RegisterRequest struct {
	Email         string `json:"email" form:"email" binding:"required"`
	Password      string `json:"password" form:"password" binding:"required"`
	FullName      string `json:"fullName" form:"full_name" binding:"required"`
	Role          string `json:"role" form:"role"`
	InstituteName string `json:"instituteName" form:"institute_name"`
}

// Validate only allows self-registration as student or club lead.
func (r *RegisterRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Role == "" {
		r.Role = string(models.RoleStudent)
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Role, validation.In(string(models.RoleStudent), string(models.RoleClubLead))),
		validation.Field(&r.InstituteName, validation.Length(0, 150)),
	)
}

// Metadata converts the request into identity metadata
func (r *RegisterRequest) Metadata() models.UserMetadata {
	return models.UserMetadata{
		FullName:      r.FullName,
		Role:          models.Role(r.Role),
		InstituteName: r.InstituteName,
	}
}

// SessionResponse is returned by sign-in and sign-up
type SessionResponse struct {
	AccessToken string           `json:"accessToken"`
	TokenType   string           `json:"tokenType" example:"Bearer"`
	ExpiresAt   time.Time        `json:"expiresAt"`
	User        *models.AuthUser `json:"user"`
}

// CurrentUserResponse is returned by GET /auth/me
type CurrentUserResponse struct {
	User            *models.AuthUser `json:"user"`
	Profile         *models.Profile  `json:"profile"`
	ProfileRepaired bool             `json:"profileRepaired"`
}

// NormalizeEmail lowercases and trims an address so lookups are exact.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
