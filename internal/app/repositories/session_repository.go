package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/dberrors"
)

// SessionRepository handles server-side sessions
type SessionRepository struct {
	pgRepo
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pgRepo: newPgRepo(db)}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("auth_sessions").
		Columns("id", "user_id", "expires_at").
		Values(session.ID, session.UserID, session.ExpiresAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert session query: %w", err)
	}
	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&session.CreatedAt); err != nil {
		return dberrors.Translate(err, "session")
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	sql, args, err := r.sb.Select("id", "user_id", "expires_at", "created_at").
		From("auth_sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select session query: %w", err)
	}

	var s models.Session
	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt); err != nil {
		return nil, dberrors.Translate(err, "session")
	}
	return &s, nil
}

// Delete is idempotent
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("auth_sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete session query: %w", err)
	}
	if _, err := conn(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return dberrors.Translate(err, "session")
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("auth_sessions").Where(squirrel.LtOrEq{"expires_at": time.Now()}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired sessions query: %w", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, dberrors.Translate(err, "session")
	}
	return tag.RowsAffected(), nil
}
