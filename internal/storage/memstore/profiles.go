package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

type profiles struct{ s *Store }

// deleteProfileLocked removes a profile with its memberships and notifications.
func (s *Store) deleteProfileLocked(id uuid.UUID) {
	delete(s.data.profiles, id)
	for k := range s.data.members {
		if k.userID == id {
			delete(s.data.members, k)
		}
	}
	for nid, n := range s.data.notifications {
		if n.UserID == id {
			delete(s.data.notifications, nid)
		}
	}
}

func (r *profiles) Insert(ctx context.Context, p *models.Profile) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.users[p.ID]; !ok {
		return apperrors.NewResourceNotFoundError("referenced record for profile not found")
	}
	if _, ok := r.s.data.profiles[p.ID]; ok {
		return apperrors.NewConflictError("profile already exists")
	}
	p.CreatedAt = r.s.now()
	r.s.data.profiles[p.ID] = *p
	return nil
}

func (r *profiles) Upsert(ctx context.Context, p *models.Profile) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.users[p.ID]; !ok {
		return apperrors.NewResourceNotFoundError("referenced record for profile not found")
	}
	if existing, ok := r.s.data.profiles[p.ID]; ok {
		existing.FullName = p.FullName
		existing.Email = p.Email
		existing.Role = p.Role
		existing.InstituteName = p.InstituteName
		existing.AvatarURL = p.AvatarURL
		r.s.data.profiles[p.ID] = existing
		p.CreatedAt = existing.CreatedAt
		return nil
	}
	p.CreatedAt = r.s.now()
	r.s.data.profiles[p.ID] = *p
	return nil
}

func (r *profiles) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.data.profiles[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("profile not found")
	}
	return &p, nil
}

func (r *profiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.data.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("profile not found")
}

func (r *profiles) mutate(id uuid.UUID, fn func(p *models.Profile)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.data.profiles[id]
	if !ok {
		return apperrors.NewResourceNotFoundError("profile not found")
	}
	fn(&p)
	r.s.data.profiles[id] = p
	return nil
}

func (r *profiles) Update(ctx context.Context, in *models.Profile) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(in.ID, func(p *models.Profile) {
		p.FullName = in.FullName
		p.InstituteName = in.InstituteName
		p.EducationLevel = in.EducationLevel
		p.Degree = in.Degree
		p.AcademicYear = in.AcademicYear
	})
}

func (r *profiles) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(id, func(p *models.Profile) { p.AvatarURL = avatarURL })
}

func (r *profiles) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	defer r.s.autocommit(ctx)()
	return r.mutate(id, func(p *models.Profile) { p.Role = role })
}

func (r *profiles) matching(f models.ProfileFilter) []models.Profile {
	search := strings.ToLower(f.Search)
	out := []models.Profile{}
	for _, p := range r.s.data.profiles {
		if f.Role != nil && p.Role != *f.Role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.FullName), search) &&
			!strings.Contains(strings.ToLower(p.Email), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *profiles) List(_ context.Context, f models.ProfileFilter) ([]models.Profile, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.matching(f)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	return page(out, f.Limit, f.Offset), total, nil
}

func (r *profiles) Count(_ context.Context, role *models.Role) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.matching(models.ProfileFilter{Role: role})), nil
}

// page applies limit and offset the way SQL LIMIT/OFFSET does
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
