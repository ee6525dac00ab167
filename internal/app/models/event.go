package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is hosted by a club. Students see it only while Status is published.
type Event struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	ClubID          uuid.UUID   `json:"clubId" db:"club_id"`
	Title           string      `json:"title" db:"title"`
	Description     string      `json:"description" db:"description"`
	EventDate       time.Time   `json:"eventDate" db:"event_date"`
	Location        string      `json:"location" db:"location"`
	Status          EventStatus `json:"status" db:"status"`
	IsAdminApproved bool        `json:"isAdminApproved" db:"is_admin_approved"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`

	ClubName string `json:"clubName,omitempty"`
}

// VisibleToStudents reports whether the event may appear in student listings
func (e *Event) VisibleToStudents() bool {
	return e.Status == EventStatusPublished
}
