package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/filestorage"
)

// ProfileService defines the interface for profile operations
type ProfileService interface {
	// Resolve returns the profile of an authenticated identity. When the row
	// is missing it is rebuilt from the identity metadata and repaired=true.
	Resolve(ctx context.Context, user *models.AuthUser) (profile *models.Profile, repaired bool, err error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, actor *models.Profile, req *dto.UpdateProfileRequest) (*models.Profile, error)
	UploadAvatar(ctx context.Context, actor *models.Profile, file *multipart.FileHeader) (*models.Profile, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	profileRepo repositories.IProfileRepository
	storage     filestorage.ObjectStore
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repositories.IProfileRepository, storage filestorage.ObjectStore, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		storage:     storage,
		logger:      logger,
	}
}

func (s *profileServiceImpl) Resolve(ctx context.Context, user *models.AuthUser) (*models.Profile, bool, error) {
	profile, err := s.profileRepo.GetByID(ctx, user.ID)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, false, storeError("profile store unavailable", err)
	}

	rebuilt := user.ProfileFromMetadata()
	if err := s.profileRepo.Upsert(ctx, rebuilt); err != nil {
		// keep serving the in-memory profile; the next request retries the repair
		s.logger.Warn().Err(err).Str("userID", user.ID.String()).Msg("Profile repair failed")
	} else {
		s.logger.Info().Str("userID", user.ID.String()).Msg("Missing profile rebuilt from identity metadata")
	}
	return rebuilt, true, nil
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *profileServiceImpl) UpdateProfile(ctx context.Context, actor *models.Profile, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	updated := *actor
	updated.FullName = req.FullName
	updated.InstituteName = req.InstituteName
	updated.EducationLevel = req.EducationLevel
	updated.Degree = req.Degree
	updated.AcademicYear = req.AcademicYear

	if err := s.profileRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("userID", actor.ID.String()).Msg("Profile updated")
	return s.profileRepo.GetByID(ctx, actor.ID)
}

// UploadAvatar stores the image first and records its URL only once the object store acknowledged it.
func (s *profileServiceImpl) UploadAvatar(ctx context.Context, actor *models.Profile, file *multipart.FileHeader) (*models.Profile, error) {
	url, err := filestorage.UploadImage(ctx, s.storage, filestorage.BucketAvatars, actor.ID, file)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpdateAvatar(ctx, actor.ID, url); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", actor.ID.String()).Str("url", url).Msg("Avatar uploaded")
	return s.profileRepo.GetByID(ctx, actor.ID)
}
