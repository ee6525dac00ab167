package models

// Role is the platform-wide role stored on a profile
type Role string

const (
	RoleStudent  Role = "student"
	RoleClubLead Role = "club_lead"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleClubLead, RoleAdmin:
		return true
	}
	return false
}

// ParseRole returns the role named by s, or RoleStudent for anything unknown.
func ParseRole(s string) Role {
	if r := Role(s); r.Valid() {
		return r
	}
	return RoleStudent
}

// MemberRole is the per-club role of a membership
type MemberRole string

const (
	MemberRoleLead   MemberRole = "lead"
	MemberRoleMember MemberRole = "member"
)

func (r MemberRole) Valid() bool {
	return r == MemberRoleLead || r == MemberRoleMember
}

// EventStatus is the lead-controlled visibility state of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled:
		return true
	}
	return false
}

// NotificationType drives the styling of a notification
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationSuccess, NotificationWarning, NotificationError, NotificationInfo:
		return true
	}
	return false
}
