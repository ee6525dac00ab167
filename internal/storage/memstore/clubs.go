package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

type clubs struct{ s *Store }

func (s *Store) memberCountLocked(clubID uuid.UUID) int {
	n := 0
	for k := range s.data.members {
		if k.clubID == clubID {
			n++
		}
	}
	return n
}

func (r *clubs) Create(ctx context.Context, c *models.Club) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.IsApproved = false
	c.CreatedAt = r.s.now()
	r.s.data.clubs[c.ID] = *c
	return nil
}

func (r *clubs) GetByID(_ context.Context, id uuid.UUID) (*models.Club, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.data.clubs[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("club not found")
	}
	c.MemberCount = r.s.memberCountLocked(id)
	return &c, nil
}

func (r *clubs) List(_ context.Context, f models.ClubFilter) ([]models.Club, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids map[uuid.UUID]bool
	if f.IDs != nil {
		ids = make(map[uuid.UUID]bool, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = true
		}
	}
	search := strings.ToLower(f.Search)

	out := []models.Club{}
	for _, c := range r.s.data.clubs {
		if f.Approved != nil && c.IsApproved != *f.Approved {
			continue
		}
		if ids != nil && !ids[c.ID] {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		c.MemberCount = r.s.memberCountLocked(c.ID)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	return page(out, f.Limit, f.Offset), total, nil
}

func (r *clubs) mutate(id uuid.UUID, fn func(c *models.Club)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.data.clubs[id]
	if !ok {
		return apperrors.NewResourceNotFoundError("club not found")
	}
	fn(&c)
	r.s.data.clubs[id] = c
	return nil
}

func (r *clubs) Update(ctx context.Context, in *models.Club) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(in.ID, func(c *models.Club) {
		c.Name = in.Name
		c.Description = in.Description
	})
}

func (r *clubs) SetLogo(ctx context.Context, id uuid.UUID, url string) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(id, func(c *models.Club) { c.LogoURL = url })
}

func (r *clubs) SetCover(ctx context.Context, id uuid.UUID, url string) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(id, func(c *models.Club) { c.CoverImage = url })
}

func (r *clubs) Approve(ctx context.Context, id uuid.UUID) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(id, func(c *models.Club) { c.IsApproved = true })
}

func (r *clubs) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.clubs[id]; !ok {
		return apperrors.NewResourceNotFoundError("club not found")
	}
	delete(r.s.data.clubs, id)
	for k := range r.s.data.members {
		if k.clubID == id {
			delete(r.s.data.members, k)
		}
	}
	for eid, e := range r.s.data.events {
		if e.ClubID == id {
			delete(r.s.data.events, eid)
		}
	}
	return nil
}

func (r *clubs) Count(_ context.Context, approved *bool) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, c := range r.s.data.clubs {
		if approved == nil || c.IsApproved == *approved {
			n++
		}
	}
	return n, nil
}
