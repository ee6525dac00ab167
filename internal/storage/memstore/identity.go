package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

type authUsers struct{ s *Store }

func (r *authUsers) Create(ctx context.Context, user *models.AuthUser) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.data.users {
		if u.Email == user.Email {
			return apperrors.NewConflictError("an account with this email already exists")
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Provider == "" {
		user.Provider = models.ProviderEmail
	}
	user.CreatedAt = r.s.now()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *authUsers) GetByID(_ context.Context, id uuid.UUID) (*models.AuthUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("user not found")
	}
	return &u, nil
}

func (r *authUsers) GetByEmail(_ context.Context, email string) (*models.AuthUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("user not found")
}

func (r *authUsers) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.users[id]; !ok {
		return apperrors.NewResourceNotFoundError("user not found")
	}
	delete(r.s.data.users, id)
	for sid, sess := range r.s.data.sessions {
		if sess.UserID == id {
			delete(r.s.data.sessions, sid)
		}
	}
	r.s.deleteProfileLocked(id)
	return nil
}

type sessions struct{ s *Store }

func (r *sessions) Create(ctx context.Context, session *models.Session) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.users[session.UserID]; !ok {
		return apperrors.NewResourceNotFoundError("referenced record for session not found")
	}
	session.CreatedAt = r.s.now()
	r.s.data.sessions[session.ID] = *session
	return nil
}

func (r *sessions) GetByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sess, ok := r.s.data.sessions[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("session not found")
	}
	return &sess, nil
}

func (r *sessions) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.sessions, id)
	return nil
}

func (r *sessions) DeleteExpired(ctx context.Context) (int64, error) {
	defer r.s.autocommit(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	var n int64
	for id, sess := range r.s.data.sessions {
		if sess.Expired(now) {
			delete(r.s.data.sessions, id)
			n++
		}
	}
	return n, nil
}
