package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/logger"
)

// AuthorizationService decides whether an actor may perform an action. Every
// write path asks it first; a refusal is returned as ErrPermissionDenied
// before any store mutation is attempted.
type AuthorizationService struct {
	clubs   repositories.IClubRepository
	members repositories.IClubMemberRepository
	events  repositories.IEventRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(repos *repositories.Repositories) *AuthorizationService {
	return &AuthorizationService{
		clubs:   repos.Clubs,
		members: repos.Members,
		events:  repos.Events,
	}
}

// RequireAuthenticated rejects anonymous callers
func (s *AuthorizationService) RequireAuthenticated(actor *models.Profile) error {
	if actor == nil {
		return apperrors.NewUnauthenticatedError("sign in to continue")
	}
	return nil
}

// RequireAdmin allows only the global admin role
func (s *AuthorizationService) RequireAdmin(actor *models.Profile) error {
	if err := s.RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperrors.NewForbiddenError("administrator access required")
	}
	return nil
}

// RequireClubCreator allows club leads and admins to register clubs
func (s *AuthorizationService) RequireClubCreator(actor *models.Profile) error {
	if err := s.RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.Role != models.RoleClubLead && actor.Role != models.RoleAdmin {
		return apperrors.NewForbiddenError("only club leads can register clubs")
	}
	return nil
}

// Membership returns the actor's membership in a club, or nil when there is none.
func (s *AuthorizationService) Membership(ctx context.Context, actor *models.Profile, clubID uuid.UUID) (*models.ClubMembership, error) {
	if actor == nil {
		return nil, nil
	}
	m, err := s.members.Get(ctx, clubID, actor.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil
		}
		logger.Error().Err(err).Str("clubID", clubID.String()).Msg("Error loading membership for authorization")
		return nil, err
	}
	return m, nil
}

// RequireClubLead loads the club and checks the actor leads it. Admins pass.
func (s *AuthorizationService) RequireClubLead(ctx context.Context, actor *models.Profile, clubID uuid.UUID) (*models.Club, error) {
	if err := s.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return club, nil
	}

	m, err := s.Membership(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	if !m.IsLead() {
		return nil, apperrors.NewForbiddenError("only a lead of this club can do that")
	}
	return club, nil
}

// RequireApprovedClub refuses clubs still waiting for admin approval
func (s *AuthorizationService) RequireApprovedClub(club *models.Club) error {
	if !club.IsApproved {
		return apperrors.NewCustomError(errors.Join(apperrors.ErrPermissionDenied, apperrors.ErrClubNotApproved),
			"club is not approved yet: events can be created once an administrator approves it")
	}
	return nil
}

// RequireApprovedClubLead is RequireClubLead plus RequireApprovedClub. Events
// may only be created for approved clubs.
func (s *AuthorizationService) RequireApprovedClubLead(ctx context.Context, actor *models.Profile, clubID uuid.UUID) (*models.Club, error) {
	club, err := s.RequireClubLead(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireApprovedClub(club); err != nil {
		return nil, err
	}
	return club, nil
}

// RequireMemberOrLead allows a member to act on their own membership, or a lead on anyone's
func (s *AuthorizationService) RequireMemberOrLead(ctx context.Context, actor *models.Profile, clubID, userID uuid.UUID) error {
	if err := s.RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.ID == userID {
		return nil
	}
	_, err := s.RequireClubLead(ctx, actor, clubID)
	return err
}

// RequireEventManager loads the event and checks the actor leads its club. Admins pass.
func (s *AuthorizationService) RequireEventManager(ctx context.Context, actor *models.Profile, eventID uuid.UUID) (*models.Event, error) {
	if err := s.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if _, err := s.RequireClubLead(ctx, actor, event.ClubID); err != nil {
		return nil, err
	}
	return event, nil
}

// CanViewClub reports whether the actor may see a club. Pending clubs are
// visible only to their members and admins.
func (s *AuthorizationService) CanViewClub(ctx context.Context, actor *models.Profile, club *models.Club) (bool, error) {
	if club.IsApproved || actor.IsAdmin() {
		return true, nil
	}
	m, err := s.Membership(ctx, actor, club.ID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// CanViewEvent reports whether the actor may see an event. Anything not
// published is visible only to the hosting club's leads and admins.
func (s *AuthorizationService) CanViewEvent(ctx context.Context, actor *models.Profile, event *models.Event) (bool, error) {
	if event.VisibleToStudents() || actor.IsAdmin() {
		return true, nil
	}
	m, err := s.Membership(ctx, actor, event.ClubID)
	if err != nil {
		return false, err
	}
	return m.IsLead(), nil
}
