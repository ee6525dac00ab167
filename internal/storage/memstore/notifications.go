package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

type notifications struct{ s *Store }

func (r *notifications) Create(ctx context.Context, n *models.Notification) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.profiles[n.UserID]; !ok {
		return apperrors.NewResourceNotFoundError("referenced record for notification not found")
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Type == "" {
		n.Type = models.NotificationInfo
	}
	n.IsRead = false
	n.CreatedAt = r.s.now()
	r.s.data.notifications[n.ID] = *n
	return nil
}

func (r *notifications) newestFirst(userID uuid.UUID, keep func(models.Notification) bool) []models.Notification {
	out := []models.Notification{}
	for _, n := range r.s.data.notifications {
		if n.UserID == userID && (keep == nil || keep(n)) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *notifications) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.newestFirst(userID, nil), limit, 0), nil
}

func (r *notifications) MarkRead(ctx context.Context, userID, id uuid.UUID) (*models.Notification, error) {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.data.notifications[id]
	if !ok || n.UserID != userID {
		return nil, apperrors.NewResourceNotFoundError("notification not found")
	}
	n.IsRead = true
	r.s.data.notifications[id] = n
	return &n, nil
}

func (r *notifications) MarkAllRead(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	changed := r.newestFirst(userID, func(n models.Notification) bool { return !n.IsRead })
	for i := range changed {
		changed[i].IsRead = true
		r.s.data.notifications[changed[i].ID] = changed[i]
	}
	return changed, nil
}

func (r *notifications) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.newestFirst(userID, func(n models.Notification) bool { return !n.IsRead })), nil
}
