package models

import (
	"time"

	"github.com/google/uuid"
)

// ClubFilter selects clubs. Zero values mean "no constraint".
type ClubFilter struct {
	Approved *bool
	Search   string
	IDs      []uuid.UUID
	Limit    int
	Offset   int
}

// EventFilter selects events. Zero values mean "no constraint".
type EventFilter struct {
	ClubIDs       []uuid.UUID
	Status        *EventStatus
	AdminApproved *bool
	From          *time.Time
	Limit         int
	Offset        int
}

// ProfileFilter selects profiles for the admin user list
type ProfileFilter struct {
	Search string
	Role   *Role
	Limit  int
	Offset int
}

func BoolPtr(b bool) *bool { return &b }

func StatusPtr(s EventStatus) *EventStatus { return &s }

func RolePtr(r Role) *Role { return &r }
