package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

type events struct{ s *Store }

func (r *events) Create(ctx context.Context, e *models.Event) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.clubs[e.ClubID]; !ok {
		return apperrors.NewResourceNotFoundError("referenced record for event not found")
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = r.s.now()
	stored := *e
	stored.ClubName = ""
	r.s.data.events[e.ID] = stored
	return nil
}

func (r *events) withClub(e models.Event) models.Event {
	e.ClubName = r.s.data.clubs[e.ClubID].Name
	return e
}

func (r *events) GetByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.data.events[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("event not found")
	}
	e = r.withClub(e)
	return &e, nil
}

func (r *events) List(_ context.Context, f models.EventFilter) ([]models.Event, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var clubIDs map[uuid.UUID]bool
	if f.ClubIDs != nil {
		clubIDs = make(map[uuid.UUID]bool, len(f.ClubIDs))
		for _, id := range f.ClubIDs {
			clubIDs[id] = true
		}
	}

	out := []models.Event{}
	for _, e := range r.s.data.events {
		if clubIDs != nil && !clubIDs[e.ClubID] {
			continue
		}
		if f.Status != nil && e.Status != *f.Status {
			continue
		}
		if f.AdminApproved != nil && e.IsAdminApproved != *f.AdminApproved {
			continue
		}
		if f.From != nil && e.EventDate.Before(*f.From) {
			continue
		}
		out = append(out, r.withClub(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	total := len(out)
	return page(out, f.Limit, f.Offset), total, nil
}

func (r *events) mutate(id uuid.UUID, fn func(e *models.Event)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.data.events[id]
	if !ok {
		return apperrors.NewResourceNotFoundError("event not found")
	}
	fn(&e)
	r.s.data.events[id] = e
	return nil
}

func (r *events) Update(ctx context.Context, in *models.Event) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(in.ID, func(e *models.Event) {
		e.Title = in.Title
		e.Description = in.Description
		e.EventDate = in.EventDate
		e.Location = in.Location
	})
}

func (r *events) SetStatus(ctx context.Context, id uuid.UUID, status models.EventStatus) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(id, func(e *models.Event) { e.Status = status })
}

func (r *events) Approve(ctx context.Context, id uuid.UUID) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(id, func(e *models.Event) {
		e.IsAdminApproved = true
		e.Status = models.EventStatusPublished
	})
}

func (r *events) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.events[id]; !ok {
		return apperrors.NewResourceNotFoundError("event not found")
	}
	delete(r.s.data.events, id)
	return nil
}
