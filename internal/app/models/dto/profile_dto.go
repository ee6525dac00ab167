package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/yigit/clubsphere/internal/app/models"
)

// UpdateProfileRequest represents the editable profile fields
type UpdateProfileRequest struct {
	FullName       string `json:"fullName" form:"full_name" binding:"required"`
	InstituteName  string `json:"instituteName" form:"institute_name"`
	EducationLevel string `json:"educationLevel" form:"education_level"`
	Degree         string `json:"degree" form:"degree"`
	AcademicYear   string `json:"academicYear" form:"academic_year"`
}

func (r *UpdateProfileRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	return validation.ValidateStruct(r,
		validation.Field(&r.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.InstituteName, validation.Length(0, 150)),
		validation.Field(&r.EducationLevel, validation.Length(0, 50)),
		validation.Field(&r.Degree, validation.Length(0, 100)),
		validation.Field(&r.AcademicYear, validation.Length(0, 20)),
	)
}

// UserListResponse is the admin user listing
type UserListResponse struct {
	Users []models.Profile `json:"users"`
	PaginationInfo
}

// ChangeRoleRequest sets the platform role of a user
type ChangeRoleRequest struct {
	Role string `json:"role" form:"role" binding:"required"`
}

func (r *ChangeRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role, validation.Required, validation.In("student", "club_lead", "admin")),
	)
}
