package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	authz "github.com/yigit/clubsphere/internal/app/auth"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/helpers"
)

// AdminService defines the moderation operations. Every method requires the
// admin role.
type AdminService interface {
	PendingClubs(ctx context.Context, actor *models.Profile) ([]models.Club, error)
	// ApproveClub flips the club to approved and notifies its leads in one unit
	ApproveClub(ctx context.Context, actor *models.Profile, clubID uuid.UUID) (*models.Club, error)
	// RejectClub notifies the leads and deletes the club in one unit
	RejectClub(ctx context.Context, actor *models.Profile, clubID uuid.UUID) error
	AllClubs(ctx context.Context, actor *models.Profile, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error)
	DeleteClub(ctx context.Context, actor *models.Profile, clubID uuid.UUID) error
	EventQueue(ctx context.Context, actor *models.Profile) ([]models.Event, error)
	// ApproveEvent marks the event admin-approved, forces it published and notifies the club's leads
	ApproveEvent(ctx context.Context, actor *models.Profile, eventID uuid.UUID) (*models.Event, error)
	// DeclineEvent deletes the event; no declined state is kept
	DeclineEvent(ctx context.Context, actor *models.Profile, eventID uuid.UUID) error
	ListUsers(ctx context.Context, actor *models.Profile, search string, role *models.Role, page, pageSize int) (*dto.UserListResponse, error)
	ChangeUserRole(ctx context.Context, actor *models.Profile, userID uuid.UUID, req *dto.ChangeRoleRequest) error
	// PurgeUser deletes the account and everything it owns
	PurgeUser(ctx context.Context, actor *models.Profile, userID uuid.UUID) error
	Stats(ctx context.Context, actor *models.Profile) (*dto.PlatformStats, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	transactor    repositories.Transactor
	authUserRepo  repositories.IAuthUserRepository
	profileRepo   repositories.IProfileRepository
	clubRepo      repositories.IClubRepository
	memberRepo    repositories.IClubMemberRepository
	eventRepo     repositories.IEventRepository
	notifications NotificationService
	authzService  *authz.AuthorizationService
	logger        zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	repos *repositories.Repositories,
	authzService *authz.AuthorizationService,
	notifications NotificationService,
	logger zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		transactor:    repos.Transactor,
		authUserRepo:  repos.AuthUsers,
		profileRepo:   repos.Profiles,
		clubRepo:      repos.Clubs,
		memberRepo:    repos.Members,
		eventRepo:     repos.Events,
		notifications: notifications,
		authzService:  authzService,
		logger:        logger,
	}
}

func (s *adminServiceImpl) PendingClubs(ctx context.Context, actor *models.Profile) ([]models.Club, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}
	clubs, _, err := s.clubRepo.List(ctx, models.ClubFilter{Approved: models.BoolPtr(false)})
	return clubs, err
}

func (s *adminServiceImpl) ApproveClub(ctx context.Context, actor *models.Profile, clubID uuid.UUID) (*models.Club, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}

	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		club, err := s.clubRepo.GetByID(ctx, clubID)
		if err != nil {
			return err
		}
		if club.IsApproved {
			return apperrors.NewConflictError("club is already approved")
		}
		if err := s.clubRepo.Approve(ctx, clubID); err != nil {
			return err
		}

		leads, err := s.memberRepo.LeadIDs(ctx, clubID)
		if err != nil {
			return err
		}
		return s.notifications.NotifyAll(ctx, leads, models.Notification{
			Title:   "Club approved",
			Message: fmt.Sprintf("%s has been approved. You can now create events.", club.Name),
			Type:    models.NotificationSuccess,
			Link:    "/dashboard/clubs/" + clubID.String(),
		})
	})
	if err != nil {
		s.logger.Error().Err(err).Str("clubID", clubID.String()).Msg("Club approval failed")
		return nil, err
	}

	s.logger.Info().Str("clubID", clubID.String()).Str("adminID", actor.ID.String()).Msg("Club approved")
	return s.clubRepo.GetByID(ctx, clubID)
}

func (s *adminServiceImpl) RejectClub(ctx context.Context, actor *models.Profile, clubID uuid.UUID) error {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return err
	}

	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		club, err := s.clubRepo.GetByID(ctx, clubID)
		if err != nil {
			return err
		}
		if club.IsApproved {
			return apperrors.NewConflictError("approved clubs cannot be rejected, delete the club instead")
		}

		leads, err := s.memberRepo.LeadIDs(ctx, clubID)
		if err != nil {
			return err
		}
		if err := s.notifications.NotifyAll(ctx, leads, models.Notification{
			Title:   "Club registration rejected",
			Message: fmt.Sprintf("%s was not approved and has been removed.", club.Name),
			Type:    models.NotificationError,
			Link:    "/dashboard",
		}); err != nil {
			return err
		}
		return s.clubRepo.Delete(ctx, clubID)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("clubID", clubID.String()).Msg("Club rejection failed")
		return err
	}

	s.logger.Info().Str("clubID", clubID.String()).Str("adminID", actor.ID.String()).Msg("Club rejected")
	return nil
}

func (s *adminServiceImpl) AllClubs(ctx context.Context, actor *models.Profile, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}

	window := helpers.PageWindow(filter.Page, filter.PageSize)
	clubs, total, err := s.clubRepo.List(ctx, models.ClubFilter{
		Search: filter.Search,
		Limit:  window.Limit,
		Offset: window.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ClubListResponse{
		Clubs:          clubs,
		PaginationInfo: window.Info(total),
	}, nil
}

func (s *adminServiceImpl) DeleteClub(ctx context.Context, actor *models.Profile, clubID uuid.UUID) error {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.clubRepo.Delete(ctx, clubID); err != nil {
		return err
	}
	s.logger.Info().Str("clubID", clubID.String()).Str("adminID", actor.ID.String()).Msg("Club deleted")
	return nil
}

func (s *adminServiceImpl) EventQueue(ctx context.Context, actor *models.Profile) ([]models.Event, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}
	events, _, err := s.eventRepo.List(ctx, models.EventFilter{AdminApproved: models.BoolPtr(false)})
	return events, err
}

func (s *adminServiceImpl) ApproveEvent(ctx context.Context, actor *models.Profile, eventID uuid.UUID) (*models.Event, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}

	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if err := s.eventRepo.Approve(ctx, eventID); err != nil {
			return err
		}

		leads, err := s.memberRepo.LeadIDs(ctx, event.ClubID)
		if err != nil {
			return err
		}
		return s.notifications.NotifyAll(ctx, leads, models.Notification{
			Title:   "Event approved",
			Message: fmt.Sprintf("%s is approved and now published.", event.Title),
			Type:    models.NotificationSuccess,
			Link:    "/dashboard/events/" + eventID.String(),
		})
	})
	if err != nil {
		s.logger.Error().Err(err).Str("eventID", eventID.String()).Msg("Event approval failed")
		return nil, err
	}

	s.logger.Info().Str("eventID", eventID.String()).Str("adminID", actor.ID.String()).Msg("Event approved")
	return s.eventRepo.GetByID(ctx, eventID)
}

func (s *adminServiceImpl) DeclineEvent(ctx context.Context, actor *models.Profile, eventID uuid.UUID) error {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}
	s.logger.Info().Str("eventID", eventID.String()).Str("adminID", actor.ID.String()).Msg("Event declined")
	return nil
}

func (s *adminServiceImpl) ListUsers(ctx context.Context, actor *models.Profile, search string, role *models.Role, page, pageSize int) (*dto.UserListResponse, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}

	window := helpers.PageWindow(page, pageSize)
	users, total, err := s.profileRepo.List(ctx, models.ProfileFilter{
		Search: search,
		Role:   role,
		Limit:  window.Limit,
		Offset: window.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.UserListResponse{
		Users:          users,
		PaginationInfo: window.Info(total),
	}, nil
}

func (s *adminServiceImpl) ChangeUserRole(ctx context.Context, actor *models.Profile, userID uuid.UUID, req *dto.ChangeRoleRequest) error {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return err
	}
	if err := validateRequest(req); err != nil {
		return err
	}
	if userID == actor.ID && models.Role(req.Role) != models.RoleAdmin {
		return apperrors.NewForbiddenError("you cannot remove your own admin role")
	}

	if err := s.profileRepo.UpdateRole(ctx, userID, models.Role(req.Role)); err != nil {
		return err
	}
	s.logger.Info().Str("userID", userID.String()).Str("role", req.Role).Msg("User role changed")
	return nil
}

func (s *adminServiceImpl) PurgeUser(ctx context.Context, actor *models.Profile, userID uuid.UUID) error {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return err
	}
	if userID == actor.ID {
		return apperrors.NewForbiddenError("you cannot purge your own account")
	}

	if err := s.authUserRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Warn().Str("userID", userID.String()).Str("adminID", actor.ID.String()).Msg("User purged")
	return nil
}

func (s *adminServiceImpl) Stats(ctx context.Context, actor *models.Profile) (*dto.PlatformStats, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return platformStats(ctx, s.profileRepo, s.clubRepo, s.eventRepo)
}

func platformStats(
	ctx context.Context,
	profileRepo repositories.IProfileRepository,
	clubRepo repositories.IClubRepository,
	eventRepo repositories.IEventRepository,
) (*dto.PlatformStats, error) {
	var stats dto.PlatformStats
	var err error

	if stats.Users, err = profileRepo.Count(ctx, nil); err != nil {
		return nil, err
	}
	if stats.Clubs, err = clubRepo.Count(ctx, nil); err != nil {
		return nil, err
	}
	if stats.PendingClubs, err = clubRepo.Count(ctx, models.BoolPtr(false)); err != nil {
		return nil, err
	}
	if _, stats.Events, err = eventRepo.List(ctx, models.EventFilter{Limit: 1}); err != nil {
		return nil, err
	}
	if _, stats.PendingEvents, err = eventRepo.List(ctx, models.EventFilter{AdminApproved: models.BoolPtr(false), Limit: 1}); err != nil {
		return nil, err
	}
	return &stats, nil
}
