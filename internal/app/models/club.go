package models

import (
	"time"

	"github.com/google/uuid"
)

// Club represents a campus club. IsApproved only ever moves from false to true.
type Club struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	IsApproved  bool      `json:"isApproved" db:"is_approved"`
	LogoURL     string    `json:"logoUrl" db:"logo_url"`
	CoverImage  string    `json:"coverImage" db:"cover_image"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	MemberCount int `json:"memberCount"`
}

// ClubMembership links a profile to a club
type ClubMembership struct {
	ClubID   uuid.UUID  `json:"clubId" db:"club_id"`
	UserID   uuid.UUID  `json:"userId" db:"user_id"`
	Role     MemberRole `json:"role" db:"role"`
	JoinedAt time.Time  `json:"joinedAt" db:"joined_at"`

	// Related entities
	Profile *Profile `json:"profile,omitempty"`
	Club    *Club    `json:"club,omitempty"`
}

func (m *ClubMembership) IsLead() bool {
	return m != nil && m.Role == MemberRoleLead
}
