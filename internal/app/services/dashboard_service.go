package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
)

const (
	dashboardListSize = 6
	adminQueueSize    = 10
)

// DashboardService aggregates the counts and lists of the role landing pages
type DashboardService interface {
	Student(ctx context.Context, actor *models.Profile) (*dto.StudentDashboard, error)
	Lead(ctx context.Context, actor *models.Profile) (*dto.LeadDashboard, error)
	Admin(ctx context.Context, actor *models.Profile) (*dto.AdminDashboard, error)
}

// dashboardServiceImpl implements DashboardService
type dashboardServiceImpl struct {
	profileRepo repositories.IProfileRepository
	clubRepo    repositories.IClubRepository
	memberRepo  repositories.IClubMemberRepository
	eventRepo   repositories.IEventRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repos *repositories.Repositories, logger zerolog.Logger) DashboardService {
	return &dashboardServiceImpl{
		profileRepo: repos.Profiles,
		clubRepo:    repos.Clubs,
		memberRepo:  repos.Members,
		eventRepo:   repos.Events,
		logger:      logger,
		now:         time.Now,
	}
}

func clubIDs(memberships []models.ClubMembership) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.ClubID)
	}
	return ids
}

func (s *dashboardServiceImpl) Student(ctx context.Context, actor *models.Profile) (*dto.StudentDashboard, error) {
	memberships, err := s.memberRepo.ListByUser(ctx, actor.ID, nil)
	if err != nil {
		return nil, err
	}

	from := s.now().UTC()
	events, upcoming, err := s.eventRepo.List(ctx, models.EventFilter{
		Status: models.StatusPtr(models.EventStatusPublished),
		From:   &from,
		Limit:  dashboardListSize,
	})
	if err != nil {
		return nil, err
	}

	joined := make(map[uuid.UUID]bool, len(memberships))
	for _, m := range memberships {
		joined[m.ClubID] = true
	}
	approved, _, err := s.clubRepo.List(ctx, models.ClubFilter{Approved: models.BoolPtr(true)})
	if err != nil {
		return nil, err
	}
	discover := make([]models.Club, 0, dashboardListSize)
	for _, c := range approved {
		if joined[c.ID] {
			continue
		}
		discover = append(discover, c)
		if len(discover) == dashboardListSize {
			break
		}
	}

	return &dto.StudentDashboard{
		Profile:        actor,
		JoinedClubs:    len(memberships),
		UpcomingEvents: upcoming,
		MyClubs:        memberships,
		DiscoverClubs:  discover,
		Events:         events,
	}, nil
}

func (s *dashboardServiceImpl) Lead(ctx context.Context, actor *models.Profile) (*dto.LeadDashboard, error) {
	lead := models.MemberRoleLead
	memberships, err := s.memberRepo.ListByUser(ctx, actor.ID, &lead)
	if err != nil {
		return nil, err
	}

	dash := &dto.LeadDashboard{
		Profile:       actor,
		ClubCount:     len(memberships),
		MyClubs:       memberships,
		Events:        []models.Event{},
		ApprovedClubs: []models.Club{},
	}
	if len(memberships) == 0 {
		return dash, nil
	}

	ids := clubIDs(memberships)
	counts, err := s.memberRepo.CountByClubs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, n := range counts {
		dash.MemberCount += n
	}

	for _, m := range memberships {
		if m.Club != nil && m.Club.IsApproved {
			dash.ApprovedClubs = append(dash.ApprovedClubs, *m.Club)
		}
	}

	live, liveCount, err := s.eventRepo.List(ctx, models.EventFilter{
		ClubIDs: ids,
		Status:  models.StatusPtr(models.EventStatusPublished),
	})
	if err != nil {
		return nil, err
	}
	dash.Events = live
	dash.LiveEvents = liveCount

	if _, dash.PendingEvents, err = s.eventRepo.List(ctx, models.EventFilter{
		ClubIDs:       ids,
		AdminApproved: models.BoolPtr(false),
		Limit:         1,
	}); err != nil {
		return nil, err
	}
	return dash, nil
}

func (s *dashboardServiceImpl) Admin(ctx context.Context, actor *models.Profile) (*dto.AdminDashboard, error) {
	stats, err := platformStats(ctx, s.profileRepo, s.clubRepo, s.eventRepo)
	if err != nil {
		return nil, err
	}

	pending, _, err := s.clubRepo.List(ctx, models.ClubFilter{Approved: models.BoolPtr(false), Limit: adminQueueSize})
	if err != nil {
		return nil, err
	}
	queue, _, err := s.eventRepo.List(ctx, models.EventFilter{AdminApproved: models.BoolPtr(false), Limit: adminQueueSize})
	if err != nil {
		return nil, err
	}
	approved, _, err := s.clubRepo.List(ctx, models.ClubFilter{Approved: models.BoolPtr(true), Limit: adminQueueSize})
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboard{
		Profile:       actor,
		Stats:         *stats,
		PendingClubs:  pending,
		EventQueue:    queue,
		ApprovedClubs: approved,
	}, nil
}
