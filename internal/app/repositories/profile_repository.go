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

var profileColumns = []string{
	"id", "full_name", "email", "role", "institute_name", "education_level",
	"degree", "academic_year", "avatar_url", "created_at",
}

// ProfileRepository handles profile rows
type ProfileRepository struct {
	pgRepo
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pgRepo: newPgRepo(db)}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Role, &p.InstituteName, &p.EducationLevel,
		&p.Degree, &p.AcademicYear, &p.AvatarURL, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) insert(ctx context.Context, p *models.Profile, suffix string) error {
	sql, args, err := r.sb.Insert("profiles").
		Columns("id", "full_name", "email", "role", "institute_name", "education_level",
			"degree", "academic_year", "avatar_url").
		Values(p.ID, p.FullName, p.Email, p.Role, p.InstituteName, p.EducationLevel,
			p.Degree, p.AcademicYear, p.AvatarURL).
		Suffix(suffix + " RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert profile query: %w", err)
	}
	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&p.CreatedAt); err != nil {
		return dberrors.Translate(err, "profile")
	}
	return nil
}

func (r *ProfileRepository) Insert(ctx context.Context, p *models.Profile) error {
	return r.insert(ctx, p, "")
}

// Upsert replaces the identity-derived columns of an existing row. Concurrent
// repairs are not coordinated; the last write wins.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	return r.insert(ctx, p, `ON CONFLICT (id) DO UPDATE SET
		full_name = EXCLUDED.full_name,
		email = EXCLUDED.email,
		role = EXCLUDED.role,
		institute_name = EXCLUDED.institute_name,
		avatar_url = EXCLUDED.avatar_url`)
}

func (r *ProfileRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Profile, error) {
	sql, args, err := r.sb.Select(profileColumns...).From("profiles").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select profile query: %w", err)
	}
	p, err := scanProfile(conn(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, dberrors.Translate(err, "profile")
	}
	return p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *ProfileRepository) exec(ctx context.Context, q squirrel.UpdateBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Translate(err, "profile")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("profile not found")
	}
	return nil
}

// Update writes the user-editable fields
func (r *ProfileRepository) Update(ctx context.Context, p *models.Profile) error {
	return r.exec(ctx, r.sb.Update("profiles").SetMap(map[string]interface{}{
		"full_name":       p.FullName,
		"institute_name":  p.InstituteName,
		"education_level": p.EducationLevel,
		"degree":          p.Degree,
		"academic_year":   p.AcademicYear,
	}).Where(squirrel.Eq{"id": p.ID}))
}

func (r *ProfileRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	return r.exec(ctx, r.sb.Update("profiles").Set("avatar_url", avatarURL).Where(squirrel.Eq{"id": id}))
}

func (r *ProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	return r.exec(ctx, r.sb.Update("profiles").Set("role", role).Where(squirrel.Eq{"id": id}))
}

func applyProfileFilter(q squirrel.SelectBuilder, f models.ProfileFilter) squirrel.SelectBuilder {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{squirrel.ILike{"full_name": pattern}, squirrel.ILike{"email": pattern}})
	}
	if f.Role != nil {
		q = q.Where(squirrel.Eq{"role": *f.Role})
	}
	return q
}

// List returns one page of profiles, newest first, and the total match count
func (r *ProfileRepository) List(ctx context.Context, f models.ProfileFilter) ([]models.Profile, int, error) {
	q := applyProfileFilter(r.sb.Select(append(profileColumns, "COUNT(*) OVER()")...).From("profiles"), f).
		OrderBy("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, dberrors.Translate(err, "profile")
	}
	defer rows.Close()

	profiles := []models.Profile{}
	total := 0
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Role, &p.InstituteName, &p.EducationLevel,
			&p.Degree, &p.AcademicYear, &p.AvatarURL, &p.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberrors.Translate(err, "profile")
	}
	return profiles, total, nil
}

func (r *ProfileRepository) Count(ctx context.Context, role *models.Role) (int, error) {
	q := r.sb.Select("COUNT(*)").From("profiles")
	if role != nil {
		q = q.Where(squirrel.Eq{"role": *role})
	}
	return countQuery(ctx, r.pgRepo, q, "profile")
}

func countQuery(ctx context.Context, r pgRepo, q squirrel.SelectBuilder, entity string) (int, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var n int
	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, dberrors.Translate(err, entity)
	}
	return n, nil
}
