package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	authz "github.com/yigit/clubsphere/internal/app/auth"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/helpers"
)

// EventService defines the interface for event operations.
//
// Events are created along two paths. SubmitEvent is the club-scoped form:
// the author picks draft or published and the event waits in the admin
// verification queue. CreateLiveEvent is the lead dashboard form: the event is
// published at once and still shows up in the queue. Both require a lead of
// an approved club.
type EventService interface {
	// ListPublished returns published events only, soonest first
	ListPublished(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error)
	GetEvent(ctx context.Context, actor *models.Profile, id uuid.UUID) (*models.Event, error)
	SubmitEvent(ctx context.Context, actor *models.Profile, clubID uuid.UUID, req *dto.SubmitEventRequest) (*models.Event, error)
	CreateLiveEvent(ctx context.Context, actor *models.Profile, req *dto.LiveEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, actor *models.Profile, id uuid.UUID, req *dto.UpdateEventRequest) (*models.Event, error)
	SetStatus(ctx context.Context, actor *models.Profile, id uuid.UUID, req *dto.SetEventStatusRequest) (*models.Event, error)
	DeleteEvent(ctx context.Context, actor *models.Profile, id uuid.UUID) error
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo    repositories.IEventRepository
	authzService *authz.AuthorizationService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(repos *repositories.Repositories, authzService *authz.AuthorizationService, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo:    repos.Events,
		authzService: authzService,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *eventServiceImpl) ListPublished(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error) {
	window := helpers.PageWindow(filter.Page, filter.PageSize)
	f := models.EventFilter{
		Status: models.StatusPtr(models.EventStatusPublished),
		Limit:  window.Limit,
		Offset: window.Offset,
	}
	if filter.ClubID != "" {
		clubID, err := uuid.Parse(filter.ClubID)
		if err != nil {
			return nil, apperrors.NewValidationError("clubId must be a valid id")
		}
		f.ClubIDs = []uuid.UUID{clubID}
	}
	if filter.Upcoming {
		from := s.now().UTC()
		f.From = &from
	}

	events, total, err := s.eventRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.EventListResponse{
		Events:         events,
		PaginationInfo: window.Info(total),
	}, nil
}

func (s *eventServiceImpl) GetEvent(ctx context.Context, actor *models.Profile, id uuid.UUID) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	visible, err := s.authzService.CanViewEvent(ctx, actor, event)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.NewResourceNotFoundError("event not found")
	}
	return event, nil
}

func (s *eventServiceImpl) SubmitEvent(ctx context.Context, actor *models.Profile, clubID uuid.UUID, req *dto.SubmitEventRequest) (*models.Event, error) {
	if _, err := s.authzService.RequireApprovedClubLead(ctx, actor, clubID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	return s.create(ctx, actor, clubID, &req.EventDetails, models.EventStatus(req.Status))
}

func (s *eventServiceImpl) CreateLiveEvent(ctx context.Context, actor *models.Profile, req *dto.LiveEventRequest) (*models.Event, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	clubID := req.ParsedClubID()
	if _, err := s.authzService.RequireApprovedClubLead(ctx, actor, clubID); err != nil {
		return nil, err
	}

	return s.create(ctx, actor, clubID, &req.EventDetails, models.EventStatusPublished)
}

func (s *eventServiceImpl) create(ctx context.Context, actor *models.Profile, clubID uuid.UUID, details *dto.EventDetails, status models.EventStatus) (*models.Event, error) {
	event := &models.Event{
		ClubID:          clubID,
		Title:           details.Title,
		Description:     details.Description,
		EventDate:       details.Date(),
		Location:        details.Location,
		Status:          status,
		IsAdminApproved: false,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("eventID", event.ID.String()).
		Str("clubID", clubID.String()).
		Str("status", string(status)).
		Str("authorID", actor.ID.String()).
		Msg("Event created")
	return s.eventRepo.GetByID(ctx, event.ID)
}

func (s *eventServiceImpl) UpdateEvent(ctx context.Context, actor *models.Profile, id uuid.UUID, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.authzService.RequireEventManager(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Description = req.Description
	event.EventDate = req.Date()
	event.Location = req.Location
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventServiceImpl) SetStatus(ctx context.Context, actor *models.Profile, id uuid.UUID, req *dto.SetEventStatusRequest) (*models.Event, error) {
	if _, err := s.authzService.RequireEventManager(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.eventRepo.SetStatus(ctx, id, models.EventStatus(req.Status)); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("eventID", id.String()).Str("status", req.Status).Msg("Event status changed")
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventServiceImpl) DeleteEvent(ctx context.Context, actor *models.Profile, id uuid.UUID) error {
	if _, err := s.authzService.RequireEventManager(ctx, actor, id); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("eventID", id.String()).Msg("Event deleted")
	return nil
}
