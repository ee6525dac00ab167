package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
)

// Transactor runs fn as one atomic unit. Repositories called with the ctx
// passed to fn join the transaction. Nested calls reuse the outer unit.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// IAuthUserRepository stores identity records
type IAuthUserRepository interface {
	Create(ctx context.Context, user *models.AuthUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AuthUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AuthUser, error)
	// Delete removes the identity and, through cascades, everything owned by it
	Delete(ctx context.Context, id uuid.UUID) error
}

// ISessionRepository stores server-side sessions
type ISessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// IProfileRepository stores profiles
type IProfileRepository interface {
	Insert(ctx context.Context, profile *models.Profile) error
	// Upsert inserts or replaces the profile row keyed by id
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	// GetByEmail matches the normalized address exactly
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error
	List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error)
	Count(ctx context.Context, role *models.Role) (int, error)
}

// IClubRepository stores clubs
type IClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Club, error)
	List(ctx context.Context, filter models.ClubFilter) ([]models.Club, int, error)
	Update(ctx context.Context, club *models.Club) error
	SetLogo(ctx context.Context, id uuid.UUID, url string) error
	SetCover(ctx context.Context, id uuid.UUID, url string) error
	// Approve flips is_approved to true. There is no inverse.
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, approved *bool) (int, error)
}

// IClubMemberRepository stores club memberships
type IClubMemberRepository interface {
	// Add fails with a conflict when the (club, user) pair already exists
	Add(ctx context.Context, membership *models.ClubMembership) error
	Get(ctx context.Context, clubID, userID uuid.UUID) (*models.ClubMembership, error)
	// ListByClub returns memberships with Profile populated
	ListByClub(ctx context.Context, clubID uuid.UUID) ([]models.ClubMembership, error)
	// ListByUser returns memberships with Club populated; role filters when non-nil
	ListByUser(ctx context.Context, userID uuid.UUID, role *models.MemberRole) ([]models.ClubMembership, error)
	UpdateRole(ctx context.Context, clubID, userID uuid.UUID, role models.MemberRole) error
	Remove(ctx context.Context, clubID, userID uuid.UUID) error
	LeadIDs(ctx context.Context, clubID uuid.UUID) ([]uuid.UUID, error)
	CountByClubs(ctx context.Context, clubIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// IEventRepository stores events
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	// GetByID returns the event with ClubName populated
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	Update(ctx context.Context, event *models.Event) error
	SetStatus(ctx context.Context, id uuid.UUID, status models.EventStatus) error
	// Approve marks the event admin-approved and forces it published
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// INotificationRepository stores notifications
type INotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	// ListByUser returns the newest notifications first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error)
	// MarkRead returns the updated row
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*models.Notification, error)
	// MarkAllRead returns the rows it changed
	MarkAllRead(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}
