package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	authz "github.com/yigit/clubsphere/internal/app/auth"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

// MembershipService defines the interface for club membership management
type MembershipService interface {
	ListMembers(ctx context.Context, actor *models.Profile, clubID uuid.UUID) ([]models.ClubMembership, error)
	// AddMember looks the profile up by exact email; no match is NotFound, an
	// existing membership is Conflict.
	AddMember(ctx context.Context, actor *models.Profile, clubID uuid.UUID, req *dto.AddMemberRequest) (*models.ClubMembership, error)
	ChangeRole(ctx context.Context, actor *models.Profile, clubID, userID uuid.UUID, req *dto.ChangeMemberRoleRequest) error
	RemoveMember(ctx context.Context, actor *models.Profile, clubID, userID uuid.UUID) error
}

// membershipServiceImpl implements MembershipService
type membershipServiceImpl struct {
	transactor    repositories.Transactor
	clubRepo      repositories.IClubRepository
	memberRepo    repositories.IClubMemberRepository
	profileRepo   repositories.IProfileRepository
	notifications NotificationService
	authzService  *authz.AuthorizationService
	logger        zerolog.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	repos *repositories.Repositories,
	authzService *authz.AuthorizationService,
	notifications NotificationService,
	logger zerolog.Logger,
) MembershipService {
	return &membershipServiceImpl{
		transactor:    repos.Transactor,
		clubRepo:      repos.Clubs,
		memberRepo:    repos.Members,
		profileRepo:   repos.Profiles,
		notifications: notifications,
		authzService:  authzService,
		logger:        logger,
	}
}

func (s *membershipServiceImpl) ListMembers(ctx context.Context, actor *models.Profile, clubID uuid.UUID) ([]models.ClubMembership, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	visible, err := s.authzService.CanViewClub(ctx, actor, club)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.NewResourceNotFoundError("club not found")
	}
	return s.memberRepo.ListByClub(ctx, clubID)
}

func (s *membershipServiceImpl) AddMember(ctx context.Context, actor *models.Profile, clubID uuid.UUID, req *dto.AddMemberRequest) (*models.ClubMembership, error) {
	club, err := s.authzService.RequireClubLead(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	target, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("no user found with email %s", req.Email))
		}
		return nil, err
	}

	membership := &models.ClubMembership{
		ClubID: clubID,
		UserID: target.ID,
		Role:   models.MemberRole(req.Role),
	}
	err = s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.memberRepo.Add(ctx, membership); err != nil {
			return err
		}
		return s.notifications.Notify(ctx, &models.Notification{
			UserID:  target.ID,
			Title:   "Added to " + club.Name,
			Message: fmt.Sprintf("You were added to %s as %s.", club.Name, membership.Role),
			Type:    models.NotificationInfo,
			Link:    "/dashboard/clubs/" + clubID.String(),
		})
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError(target.DisplayName() + " is already a member of this club")
		}
		return nil, err
	}

	s.logger.Info().
		Str("clubID", clubID.String()).
		Str("userID", target.ID.String()).
		Str("role", string(membership.Role)).
		Msg("Member added")
	membership.Profile = target
	return membership, nil
}

func (s *membershipServiceImpl) ChangeRole(ctx context.Context, actor *models.Profile, clubID, userID uuid.UUID, req *dto.ChangeMemberRoleRequest) error {
	if _, err := s.authzService.RequireClubLead(ctx, actor, clubID); err != nil {
		return err
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	if err := s.memberRepo.UpdateRole(ctx, clubID, userID, models.MemberRole(req.Role)); err != nil {
		return err
	}
	s.logger.Debug().Str("clubID", clubID.String()).Str("userID", userID.String()).Str("role", req.Role).Msg("Member role changed")
	return nil
}

func (s *membershipServiceImpl) RemoveMember(ctx context.Context, actor *models.Profile, clubID, userID uuid.UUID) error {
	if err := s.authzService.RequireMemberOrLead(ctx, actor, clubID, userID); err != nil {
		return err
	}
	if err := s.memberRepo.Remove(ctx, clubID, userID); err != nil {
		return err
	}
	s.logger.Info().Str("clubID", clubID.String()).Str("userID", userID.String()).Msg("Member removed")
	return nil
}
