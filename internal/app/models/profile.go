package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the application-side record of a user. Its ID equals the
// identity user id.
type Profile struct {
	ID             uuid.UUID `json:"id" db:"id"`
	FullName       string    `json:"fullName" db:"full_name"`
	Email          string    `json:"email" db:"email"`
	Role           Role      `json:"role" db:"role"`
	InstituteName  string    `json:"instituteName" db:"institute_name"`
	EducationLevel string    `json:"educationLevel" db:"education_level"`
	Degree         string    `json:"degree" db:"degree"`
	AcademicYear   string    `json:"academicYear" db:"academic_year"`
	AvatarURL      string    `json:"avatarUrl" db:"avatar_url"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// IsAdmin reports whether the profile holds the global admin role
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// DisplayName falls back to the email when no name is set
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}
