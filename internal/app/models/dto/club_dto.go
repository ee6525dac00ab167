package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/yigit/clubsphere/internal/app/models"
)

// CreateClubRequest represents club registration data
type CreateClubRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
}

func (r *CreateClubRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// UpdateClubRequest represents the editable club fields
type UpdateClubRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
}

func (r *UpdateClubRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// ClubFilterRequest represents club listing parameters
type ClubFilterRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=12" binding:"min=1,max=100"`
}

// ClubListResponse represents one page of clubs
type ClubListResponse struct {
	Clubs []models.Club `json:"clubs"`
	PaginationInfo
}

// ClubDetailResponse is a club with its members and events
type ClubDetailResponse struct {
	Club    *models.Club            `json:"club"`
	Members []models.ClubMembership `json:"members"`
	Events  []models.Event          `json:"events"`
	// ViewerRole is the caller's membership role, empty when not a member
	ViewerRole models.MemberRole `json:"viewerRole,omitempty"`
	CanManage  bool              `json:"canManage"`
}

// AddMemberRequest adds a profile to a club by exact email match
type AddMemberRequest struct {
	Email string `json:"email" form:"email" binding:"required"`
	Role  string `json:"role" form:"role"`
}

func (r *AddMemberRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	if r.Role == "" {
		r.Role = string(models.MemberRoleMember)
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Role, validation.In(string(models.MemberRoleLead), string(models.MemberRoleMember))),
	)
}

// ChangeMemberRoleRequest updates a membership role in place
type ChangeMemberRoleRequest struct {
	Role string `json:"role" form:"role" binding:"required"`
}

func (r *ChangeMemberRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role, validation.Required,
			validation.In(string(models.MemberRoleLead), string(models.MemberRoleMember))),
	)
}
