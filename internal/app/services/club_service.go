package services

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	authz "github.com/yigit/clubsphere/internal/app/auth"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/filestorage"
	"github.com/yigit/clubsphere/internal/pkg/helpers"
)

// ClubService defines the interface for club operations
type ClubService interface {
	// ListClubs returns approved clubs only
	ListClubs(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error)
	GetClub(ctx context.Context, actor *models.Profile, id uuid.UUID) (*dto.ClubDetailResponse, error)
	// RegisterClub creates a pending club with the actor as its lead, atomically
	RegisterClub(ctx context.Context, actor *models.Profile, req *dto.CreateClubRequest) (*models.Club, error)
	UpdateClub(ctx context.Context, actor *models.Profile, id uuid.UUID, req *dto.UpdateClubRequest) (*models.Club, error)
	UploadLogo(ctx context.Context, actor *models.Profile, id uuid.UUID, file *multipart.FileHeader) (*models.Club, error)
	UploadCover(ctx context.Context, actor *models.Profile, id uuid.UUID, file *multipart.FileHeader) (*models.Club, error)
	MyClubs(ctx context.Context, actor *models.Profile) ([]models.ClubMembership, error)
	LeaveClub(ctx context.Context, actor *models.Profile, id uuid.UUID) error
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	transactor   repositories.Transactor
	clubRepo     repositories.IClubRepository
	memberRepo   repositories.IClubMemberRepository
	eventRepo    repositories.IEventRepository
	storage      filestorage.ObjectStore
	authzService *authz.AuthorizationService
	logger       zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	repos *repositories.Repositories,
	authzService *authz.AuthorizationService,
	storage filestorage.ObjectStore,
	logger zerolog.Logger,
) ClubService {
	return &clubServiceImpl{
		transactor:   repos.Transactor,
		clubRepo:     repos.Clubs,
		memberRepo:   repos.Members,
		eventRepo:    repos.Events,
		storage:      storage,
		authzService: authzService,
		logger:       logger,
	}
}

func (s *clubServiceImpl) ListClubs(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error) {
	s.logger.Debug().
		Interface("filter", filter).
		Msg("Listing clubs")

	window := helpers.PageWindow(filter.Page, filter.PageSize)
	clubs, total, err := s.clubRepo.List(ctx, models.ClubFilter{
		Approved: models.BoolPtr(true),
		Search:   filter.Search,
		Limit:    window.Limit,
		Offset:   window.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ClubListResponse{
		Clubs:          clubs,
		PaginationInfo: window.Info(total),
	}, nil
}

func (s *clubServiceImpl) GetClub(ctx context.Context, actor *models.Profile, id uuid.UUID) (*dto.ClubDetailResponse, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// pending clubs are hidden from outsiders as if they did not exist
	visible, err := s.authzService.CanViewClub(ctx, actor, club)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.NewResourceNotFoundError("club not found")
	}

	membership, err := s.authzService.Membership(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByClub(ctx, id)
	if err != nil {
		return nil, err
	}

	canManage := actor.IsAdmin() || membership.IsLead()
	filter := models.EventFilter{ClubIDs: []uuid.UUID{id}}
	if !canManage {
		filter.Status = models.StatusPtr(models.EventStatusPublished)
	}
	events, _, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClubDetailResponse{
		Club:      club,
		Members:   members,
		Events:    events,
		CanManage: canManage,
	}
	if membership != nil {
		resp.ViewerRole = membership.Role
	}
	return resp, nil
}

func (s *clubServiceImpl) RegisterClub(ctx context.Context, actor *models.Profile, req *dto.CreateClubRequest) (*models.Club, error) {
	if err := s.authzService.RequireClubCreator(actor); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	club := &models.Club{
		Name:        req.Name,
		Description: req.Description,
	}
	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.clubRepo.Create(ctx, club); err != nil {
			return err
		}
		return s.memberRepo.Add(ctx, &models.ClubMembership{
			ClubID: club.ID,
			UserID: actor.ID,
			Role:   models.MemberRoleLead,
		})
	})
	if err != nil {
		s.logger.Error().Err(err).Str("userID", actor.ID.String()).Msg("Club registration failed")
		return nil, err
	}

	s.logger.Info().
		Str("clubID", club.ID.String()).
		Str("leadID", actor.ID.String()).
		Msg("Club registered, awaiting approval")
	return s.clubRepo.GetByID(ctx, club.ID)
}

func (s *clubServiceImpl) UpdateClub(ctx context.Context, actor *models.Profile, id uuid.UUID, req *dto.UpdateClubRequest) (*models.Club, error) {
	club, err := s.authzService.RequireClubLead(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	club.Name = req.Name
	club.Description = req.Description
	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, err
	}
	return s.clubRepo.GetByID(ctx, id)
}

func (s *clubServiceImpl) UploadLogo(ctx context.Context, actor *models.Profile, id uuid.UUID, file *multipart.FileHeader) (*models.Club, error) {
	return s.uploadImage(ctx, actor, id, file, filestorage.BucketClubLogos, s.clubRepo.SetLogo)
}

func (s *clubServiceImpl) UploadCover(ctx context.Context, actor *models.Profile, id uuid.UUID, file *multipart.FileHeader) (*models.Club, error) {
	return s.uploadImage(ctx, actor, id, file, filestorage.BucketClubCovers, s.clubRepo.SetCover)
}

func (s *clubServiceImpl) uploadImage(
	ctx context.Context,
	actor *models.Profile,
	id uuid.UUID,
	file *multipart.FileHeader,
	bucket string,
	record func(ctx context.Context, id uuid.UUID, url string) error,
) (*models.Club, error) {
	if _, err := s.authzService.RequireClubLead(ctx, actor, id); err != nil {
		return nil, err
	}

	url, err := filestorage.UploadImage(ctx, s.storage, bucket, id, file)
	if err != nil {
		return nil, err
	}
	if err := record(ctx, id, url); err != nil {
		return nil, err
	}

	s.logger.Info().Str("clubID", id.String()).Str("bucket", bucket).Msg("Club image uploaded")
	return s.clubRepo.GetByID(ctx, id)
}

func (s *clubServiceImpl) MyClubs(ctx context.Context, actor *models.Profile) ([]models.ClubMembership, error) {
	return s.memberRepo.ListByUser(ctx, actor.ID, nil)
}

func (s *clubServiceImpl) LeaveClub(ctx context.Context, actor *models.Profile, id uuid.UUID) error {
	if err := s.memberRepo.Remove(ctx, id, actor.ID); err != nil {
		return err
	}
	s.logger.Debug().Str("clubID", id.String()).Str("userID", actor.ID.String()).Msg("Member left club")
	return nil
}
