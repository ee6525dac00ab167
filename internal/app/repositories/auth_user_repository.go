package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/dberrors"
)

const authUserConstraintEmail = "auth_users_email_key"

var authUserColumns = []string{"id", "email", "COALESCE(password_hash, '')", "provider", "metadata", "created_at"}

// AuthUserRepository handles identity records
type AuthUserRepository struct {
	pgRepo
}

func NewAuthUserRepository(db *pgxpool.Pool) *AuthUserRepository {
	return &AuthUserRepository{pgRepo: newPgRepo(db)}
}

func scanAuthUser(row pgx.Row) (*models.AuthUser, error) {
	var u models.AuthUser
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Provider, &u.Metadata, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts an identity record
func (r *AuthUserRepository) Create(ctx context.Context, user *models.AuthUser) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	var passwordHash *string
	if user.PasswordHash != "" {
		passwordHash = &user.PasswordHash
	}

	sql, args, err := r.sb.Insert("auth_users").
		Columns("id", "email", "password_hash", "provider", "metadata").
		Values(user.ID, user.Email, passwordHash, user.Provider, user.Metadata).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert auth user query: %w", err)
	}

	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&user.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, authUserConstraintEmail) {
			return apperrors.NewConflictError("an account with this email already exists")
		}
		return dberrors.Translate(err, "user")
	}
	return nil
}

func (r *AuthUserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.AuthUser, error) {
	sql, args, err := r.sb.Select(authUserColumns...).From("auth_users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select auth user query: %w", err)
	}
	user, err := scanAuthUser(conn(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, dberrors.Translate(err, "user")
	}
	return user, nil
}

func (r *AuthUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AuthUser, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *AuthUserRepository) GetByEmail(ctx context.Context, email string) (*models.AuthUser, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// Delete removes the identity. Profiles, sessions, memberships and
// notifications go with it through ON DELETE CASCADE.
func (r *AuthUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("auth_users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete auth user query: %w", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Translate(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("user not found")
	}
	return nil
}
