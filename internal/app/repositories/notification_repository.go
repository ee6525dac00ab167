package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/pkg/dberrors"
)

var notificationColumns = []string{"id", "user_id", "title", "message", "type", "link", "is_read", "created_at"}

// NotificationRepository handles notification rows
type NotificationRepository struct {
	pgRepo
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pgRepo: newPgRepo(db)}
}

func scanNotifications(rows pgx.Rows) ([]models.Notification, error) {
	defer rows.Close()
	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, dberrors.Translate(err, "notification")
	}
	return out, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	sql, args, err := r.sb.Insert("notifications").
		Columns("id", "user_id", "title", "message", "type", "link").
		Values(n.ID, n.UserID, n.Title, n.Message, n.Type, n.Link).
		Suffix("RETURNING is_read, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert notification query: %w", err)
	}
	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n.IsRead, &n.CreatedAt); err != nil {
		return dberrors.Translate(err, "notification")
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	q := r.sb.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notifications query: %w", err)
	}
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Translate(err, "notification")
	}
	return scanNotifications(rows)
}

// MarkRead is scoped to the owner so one user cannot touch another's inbox
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) (*models.Notification, error) {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + strings.Join(notificationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build mark read query: %w", err)
	}

	var n models.Notification
	err = conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type,
		&n.Link, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, dberrors.Translate(err, "notification")
	}
	return &n, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	sql, args, err := r.sb.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		Suffix("RETURNING " + strings.Join(notificationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build mark all read query: %w", err)
	}
	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, dberrors.Translate(err, "notification")
	}
	return scanNotifications(rows)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return countQuery(ctx, r.pgRepo, r.sb.Select("COUNT(*)").From("notifications").
		Where(squirrel.Eq{"user_id": userID, "is_read": false}), "notification")
}
