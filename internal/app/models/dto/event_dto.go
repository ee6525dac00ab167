package dto

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
)

// accepted event date layouts; the second is what an HTML datetime-local input posts
var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// ParseEventDate parses an event date in any accepted layout
func ParseEventDate(s string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("must be a valid date and time")
}

var eventDateRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := ParseEventDate(s)
	return err
})

// EventDetails are the fields shared by every event form
type EventDetails struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Description string `json:"description" form:"description"`
	EventDate   string `json:"eventDate" form:"event_date" binding:"required"`
	Location    string `json:"location" form:"location"`
}

func (d *EventDetails) rules() []*validation.FieldRules {
	d.Title = strings.TrimSpace(d.Title)
	return []*validation.FieldRules{
		validation.Field(&d.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&d.Description, validation.Length(0, 5000)),
		validation.Field(&d.EventDate, validation.Required, eventDateRule),
		validation.Field(&d.Location, validation.Length(0, 200)),
	}
}

// Date returns the parsed event date. Call after Validate.
func (d *EventDetails) Date() time.Time {
	t, _ := ParseEventDate(d.EventDate)
	return t
}

// SubmitEventRequest is the club-scoped creation form. The author picks the status.
type SubmitEventRequest struct {
	EventDetails
	Status string `json:"status" form:"status"`
}

func (r *SubmitEventRequest) Validate() error {
	if r.Status == "" {
		r.Status = string(models.EventStatusDraft)
	}
	rules := append(r.rules(),
		validation.Field(&r.Status, validation.In(string(models.EventStatusDraft), string(models.EventStatusPublished))))
	return validation.ValidateStruct(r, rules...)
}

// LiveEventRequest is the lead-dashboard creation form. The event goes live immediately.
type LiveEventRequest struct {
	EventDetails
	ClubID string `json:"clubId" form:"club_id" binding:"required"`
}

func (r *LiveEventRequest) Validate() error {
	rules := append(r.rules(), validation.Field(&r.ClubID, validation.Required, validation.By(uuidRule)))
	return validation.ValidateStruct(r, rules...)
}

// ParsedClubID returns the selected club. Call after Validate.
func (r *LiveEventRequest) ParsedClubID() uuid.UUID {
	id, _ := uuid.Parse(r.ClubID)
	return id
}

// UpdateEventRequest edits the details of an event
type UpdateEventRequest struct {
	EventDetails
}

func (r *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(r, r.rules()...)
}

// SetEventStatusRequest toggles the event status
type SetEventStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}

func (r *SetEventStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.Required, validation.In(
			string(models.EventStatusDraft), string(models.EventStatusPublished), string(models.EventStatusCancelled))),
	)
}

// EventFilterRequest represents public event listing parameters
type EventFilterRequest struct {
	ClubID   string `form:"clubId"`
	Upcoming bool   `form:"upcoming,default=true"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"min=1,max=100"`
}

// EventListResponse represents one page of events
type EventListResponse struct {
	Events []models.Event `json:"events"`
	PaginationInfo
}

func uuidRule(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := uuid.Parse(s); err != nil {
		return errors.New("must be a valid id")
	}
	return nil
}
