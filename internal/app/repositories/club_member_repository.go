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

const clubMemberConstraintPK = "club_members_pkey"

// ClubMemberRepository handles club membership rows
type ClubMemberRepository struct {
	pgRepo
}

func NewClubMemberRepository(db *pgxpool.Pool) *ClubMemberRepository {
	return &ClubMemberRepository{pgRepo: newPgRepo(db)}
}

func (r *ClubMemberRepository) Add(ctx context.Context, m *models.ClubMembership) error {
	sql, args, err := r.sb.Insert("club_members").
		Columns("club_id", "user_id", "role").
		Values(m.ClubID, m.UserID, m.Role).
		Suffix("RETURNING joined_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert membership query: %w", err)
	}
	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&m.JoinedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, clubMemberConstraintPK) {
			return apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrAlreadyMember.Error())
		}
		return dberrors.Translate(err, "membership")
	}
	return nil
}

func (r *ClubMemberRepository) Get(ctx context.Context, clubID, userID uuid.UUID) (*models.ClubMembership, error) {
	sql, args, err := r.sb.Select("club_id", "user_id", "role", "joined_at").
		From("club_members").
		Where(squirrel.Eq{"club_id": clubID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select membership query: %w", err)
	}

	var m models.ClubMembership
	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&m.ClubID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
		return nil, dberrors.Translate(err, "membership")
	}
	return &m, nil
}

// ListByClub returns the members of a club, leads first
func (r *ClubMemberRepository) ListByClub(ctx context.Context, clubID uuid.UUID) ([]models.ClubMembership, error) {
	sql, args, err := r.sb.Select("m.club_id", "m.user_id", "m.role", "m.joined_at",
		"p.id", "p.full_name", "p.email", "p.role", "p.institute_name", "p.avatar_url", "p.created_at").
		From("club_members m").
		Join("profiles p ON p.id = m.user_id").
		Where(squirrel.Eq{"m.club_id": clubID}).
		OrderBy("m.role = 'lead' DESC", "m.joined_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list members query: %w", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Translate(err, "membership")
	}
	defer rows.Close()

	members := []models.ClubMembership{}
	for rows.Next() {
		var m models.ClubMembership
		p := &models.Profile{}
		if err := rows.Scan(&m.ClubID, &m.UserID, &m.Role, &m.JoinedAt,
			&p.ID, &p.FullName, &p.Email, &p.Role, &p.InstituteName, &p.AvatarURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning membership row: %w", err)
		}
		m.Profile = p
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dberrors.Translate(err, "membership")
	}
	return members, nil
}

// ListByUser returns the clubs a user belongs to
func (r *ClubMemberRepository) ListByUser(ctx context.Context, userID uuid.UUID, role *models.MemberRole) ([]models.ClubMembership, error) {
	q := r.sb.Select("m.club_id", "m.user_id", "m.role", "m.joined_at",
		"c.id", "c.name", "c.description", "c.is_approved", "c.logo_url", "c.cover_image", "c.created_at",
		"(SELECT COUNT(*) FROM club_members cm WHERE cm.club_id = c.id)").
		From("club_members m").
		Join("clubs c ON c.id = m.club_id").
		Where(squirrel.Eq{"m.user_id": userID}).
		OrderBy("c.name")
	if role != nil {
		q = q.Where(squirrel.Eq{"m.role": *role})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list memberships query: %w", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Translate(err, "membership")
	}
	defer rows.Close()

	memberships := []models.ClubMembership{}
	for rows.Next() {
		var m models.ClubMembership
		c := &models.Club{}
		if err := rows.Scan(&m.ClubID, &m.UserID, &m.Role, &m.JoinedAt,
			&c.ID, &c.Name, &c.Description, &c.IsApproved, &c.LogoURL, &c.CoverImage, &c.CreatedAt,
			&c.MemberCount); err != nil {
			return nil, fmt.Errorf("error scanning membership row: %w", err)
		}
		m.Club = c
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dberrors.Translate(err, "membership")
	}
	return memberships, nil
}

func (r *ClubMemberRepository) UpdateRole(ctx context.Context, clubID, userID uuid.UUID, role models.MemberRole) error {
	sql, args, err := r.sb.Update("club_members").
		Set("role", role).
		Where(squirrel.Eq{"club_id": clubID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update membership query: %w", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Translate(err, "membership")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("membership not found")
	}
	return nil
}

func (r *ClubMemberRepository) Remove(ctx context.Context, clubID, userID uuid.UUID) error {
	sql, args, err := r.sb.Delete("club_members").
		Where(squirrel.Eq{"club_id": clubID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete membership query: %w", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Translate(err, "membership")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("membership not found")
	}
	return nil
}

func (r *ClubMemberRepository) LeadIDs(ctx context.Context, clubID uuid.UUID) ([]uuid.UUID, error) {
	sql, args, err := r.sb.Select("user_id").
		From("club_members").
		Where(squirrel.Eq{"club_id": clubID, "role": models.MemberRoleLead}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select leads query: %w", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Translate(err, "membership")
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning lead id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountByClubs returns the member count of each club id; absent clubs map to zero
func (r *ClubMemberRepository) CountByClubs(ctx context.Context, clubIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(clubIDs))
	if len(clubIDs) == 0 {
		return counts, nil
	}

	sql, args, err := r.sb.Select("club_id", "COUNT(*)").
		From("club_members").
		Where(squirrel.Eq{"club_id": clubIDs}).
		GroupBy("club_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count members query: %w", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Translate(err, "membership")
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("error scanning member count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
