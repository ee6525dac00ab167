package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
	"github.com/yigit/clubsphere/internal/pkg/dberrors"
)

var clubColumns = []string{"c.id", "c.name", "c.description", "c.is_approved", "c.logo_url", "c.cover_image", "c.created_at",
	"(SELECT COUNT(*) FROM club_members m WHERE m.club_id = c.id)"}

// ClubRepository handles club rows
type ClubRepository struct {
	pgRepo
}

func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{pgRepo: newPgRepo(db)}
}

// Create inserts a club. New clubs always start unapproved.
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	if club.ID == uuid.Nil {
		club.ID = uuid.New()
	}
	club.IsApproved = false

	sql, args, err := r.sb.Insert("clubs").
		Columns("id", "name", "description", "is_approved", "logo_url", "cover_image").
		Values(club.ID, club.Name, club.Description, false, club.LogoURL, club.CoverImage).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert club query: %w", err)
	}
	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&club.CreatedAt); err != nil {
		return dberrors.Translate(err, "club")
	}
	return nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	sql, args, err := r.sb.Select(clubColumns...).From("clubs c").Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select club query: %w", err)
	}

	var c models.Club
	err = conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.Description, &c.IsApproved,
		&c.LogoURL, &c.CoverImage, &c.CreatedAt, &c.MemberCount)
	if err != nil {
		return nil, dberrors.Translate(err, "club")
	}
	return &c, nil
}

// List returns one page of clubs, newest first, and the total match count
func (r *ClubRepository) List(ctx context.Context, f models.ClubFilter) ([]models.Club, int, error) {
	q := r.sb.Select(append(clubColumns, "COUNT(*) OVER()")...).From("clubs c").OrderBy("c.created_at DESC")
	if f.Approved != nil {
		q = q.Where(squirrel.Eq{"c.is_approved": *f.Approved})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{squirrel.ILike{"c.name": pattern}, squirrel.ILike{"c.description": pattern}})
	}
	if f.IDs != nil {
		q = q.Where(squirrel.Eq{"c.id": f.IDs})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list clubs query: %w", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, dberrors.Translate(err, "club")
	}
	defer rows.Close()

	clubs := []models.Club{}
	total := 0
	for rows.Next() {
		var c models.Club
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsApproved, &c.LogoURL, &c.CoverImage,
			&c.CreatedAt, &c.MemberCount, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning club row: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberrors.Translate(err, "club")
	}
	return clubs, total, nil
}

func (r *ClubRepository) update(ctx context.Context, q squirrel.UpdateBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update club query: %w", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Translate(err, "club")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("club not found")
	}
	return nil
}

func (r *ClubRepository) Update(ctx context.Context, club *models.Club) error {
	return r.update(ctx, r.sb.Update("clubs").
		Set("name", club.Name).
		Set("description", club.Description).
		Where(squirrel.Eq{"id": club.ID}))
}

func (r *ClubRepository) SetLogo(ctx context.Context, id uuid.UUID, url string) error {
	return r.update(ctx, r.sb.Update("clubs").Set("logo_url", url).Where(squirrel.Eq{"id": id}))
}

func (r *ClubRepository) SetCover(ctx context.Context, id uuid.UUID, url string) error {
	return r.update(ctx, r.sb.Update("clubs").Set("cover_image", url).Where(squirrel.Eq{"id": id}))
}

func (r *ClubRepository) Approve(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, r.sb.Update("clubs").Set("is_approved", true).Where(squirrel.Eq{"id": id}))
}

// Delete removes the club with its memberships and events
func (r *ClubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("clubs").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete club query: %w", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Translate(err, "club")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("club not found")
	}
	return nil
}

func (r *ClubRepository) Count(ctx context.Context, approved *bool) (int, error) {
	q := r.sb.Select("COUNT(*)").From("clubs")
	if approved != nil {
		q = q.Where(squirrel.Eq{"is_approved": *approved})
	}
	return countQuery(ctx, r.pgRepo, q, "club")
}
