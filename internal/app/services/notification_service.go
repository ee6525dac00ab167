package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/models/dto"
	"github.com/yigit/clubsphere/internal/app/repositories"
	"github.com/yigit/clubsphere/internal/pkg/realtime"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	// Latest returns the newest notifications of a user with the unread count derived from them
	Latest(ctx context.Context, userID uuid.UUID, limit int) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	// Notify inserts a notification. Subscribers hear about it once the
	// surrounding transaction, if any, commits.
	Notify(ctx context.Context, n *models.Notification) error
	// NotifyAll sends a copy of n to every user in userIDs
	NotifyAll(ctx context.Context, userIDs []uuid.UUID, n models.Notification) error
	FeedSize() int
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo repositories.INotificationRepository
	broker           realtime.Broker
	feedSize         int
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repositories.INotificationRepository,
	broker realtime.Broker,
	feedSize int,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		broker:           broker,
		feedSize:         feedSize,
		logger:           logger,
	}
}

func (s *notificationServiceImpl) FeedSize() int {
	return s.feedSize
}

func (s *notificationServiceImpl) Latest(ctx context.Context, userID uuid.UUID, limit int) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = s.feedSize
	}
	items, err := s.notificationRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	unread := 0
	for i := range items {
		if !items[i].IsRead {
			unread++
		}
	}
	return &dto.NotificationListResponse{Notifications: items, UnreadCount: unread}, nil
}

func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, userID, id uuid.UUID) (*models.Notification, error) {
	n, err := s.notificationRepo.MarkRead(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, realtime.ChangeUpdate, *n)
	return n, nil
}

func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	changed, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, n := range changed {
		s.publish(ctx, realtime.ChangeUpdate, n)
	}
	return changed, nil
}

func (s *notificationServiceImpl) Notify(ctx context.Context, n *models.Notification) error {
	if !n.Type.Valid() {
		n.Type = models.NotificationInfo
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).Str("userID", n.UserID.String()).Msg("Failed to create notification")
		return err
	}
	s.publish(ctx, realtime.ChangeInsert, *n)
	return nil
}

func (s *notificationServiceImpl) NotifyAll(ctx context.Context, userIDs []uuid.UUID, n models.Notification) error {
	for _, userID := range userIDs {
		item := n
		item.ID = uuid.Nil
		item.UserID = userID
		if err := s.Notify(ctx, &item); err != nil {
			return err
		}
	}
	return nil
}

// publish hands the change to the broker after commit. Delivery is best
// effort: a lost event is repaired by the next feed load.
func (s *notificationServiceImpl) publish(ctx context.Context, kind realtime.ChangeType, n models.Notification) {
	ev := realtime.ChangeEvent{Type: kind, Notification: n}
	pubCtx := context.WithoutCancel(ctx)
	repositories.AfterCommit(ctx, func() {
		if err := s.broker.Publish(pubCtx, ev); err != nil {
			s.logger.Warn().Err(err).Str("userID", n.UserID.String()).Str("change", string(kind)).Msg("Failed to publish notification change")
		}
	})
}
