package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

type members struct{ s *Store }

func (r *members) Add(ctx context.Context, m *models.ClubMembership) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.clubs[m.ClubID]; !ok {
		return apperrors.NewResourceNotFoundError("referenced record for membership not found")
	}
	if _, ok := r.s.data.profiles[m.UserID]; !ok {
		return apperrors.NewResourceNotFoundError("referenced record for membership not found")
	}
	key := memberKey{m.ClubID, m.UserID}
	if _, ok := r.s.data.members[key]; ok {
		return apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrAlreadyMember.Error())
	}
	m.JoinedAt = r.s.now()
	stored := *m
	stored.Profile, stored.Club = nil, nil
	r.s.data.members[key] = stored
	return nil
}

func (r *members) Get(_ context.Context, clubID, userID uuid.UUID) (*models.ClubMembership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.data.members[memberKey{clubID, userID}]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("membership not found")
	}
	return &m, nil
}

func (r *members) ListByClub(_ context.Context, clubID uuid.UUID) ([]models.ClubMembership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.ClubMembership{}
	for k, m := range r.s.data.members {
		if k.clubID != clubID {
			continue
		}
		p, ok := r.s.data.profiles[k.userID]
		if !ok {
			continue
		}
		m.Profile = &p
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsLead() != out[j].IsLead() {
			return out[i].IsLead()
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (r *members) ListByUser(_ context.Context, userID uuid.UUID, role *models.MemberRole) ([]models.ClubMembership, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.ClubMembership{}
	for k, m := range r.s.data.members {
		if k.userID != userID || (role != nil && m.Role != *role) {
			continue
		}
		c, ok := r.s.data.clubs[k.clubID]
		if !ok {
			continue
		}
		c.MemberCount = r.s.memberCountLocked(c.ID)
		m.Club = &c
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Club.Name < out[j].Club.Name })
	return out, nil
}

func (r *members) UpdateRole(ctx context.Context, clubID, userID uuid.UUID, role models.MemberRole) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := memberKey{clubID, userID}
	m, ok := r.s.data.members[key]
	if !ok {
		return apperrors.NewResourceNotFoundError("membership not found")
	}
	m.Role = role
	r.s.data.members[key] = m
	return nil
}

func (r *members) Remove(ctx context.Context, clubID, userID uuid.UUID) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := memberKey{clubID, userID}
	if _, ok := r.s.data.members[key]; !ok {
		return apperrors.NewResourceNotFoundError("membership not found")
	}
	delete(r.s.data.members, key)
	return nil
}

func (r *members) LeadIDs(_ context.Context, clubID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids []uuid.UUID
	for k, m := range r.s.data.members {
		if k.clubID == clubID && m.IsLead() {
			ids = append(ids, k.userID)
		}
	}
	return ids, nil
}

func (r *members) CountByClubs(_ context.Context, clubIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[uuid.UUID]int, len(clubIDs))
	for _, id := range clubIDs {
		if n := r.s.memberCountLocked(id); n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}
