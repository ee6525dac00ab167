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

var eventColumns = []string{"e.id", "e.club_id", "e.title", "e.description", "e.event_date", "e.location",
	"e.status", "e.is_admin_approved", "e.created_at", "c.name"}

// EventRepository handles event rows
type EventRepository struct {
	pgRepo
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{pgRepo: newPgRepo(db)}
}

func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	sql, args, err := r.sb.Insert("events").
		Columns("id", "club_id", "title", "description", "event_date", "location", "status", "is_admin_approved").
		Values(e.ID, e.ClubID, e.Title, e.Description, e.EventDate, e.Location, e.Status, e.IsAdminApproved).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert event query: %w", err)
	}
	if err := conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&e.CreatedAt); err != nil {
		return dberrors.Translate(err, "event")
	}
	return nil
}

func (r *EventRepository) selectEvents() squirrel.SelectBuilder {
	return r.sb.Select(eventColumns...).From("events e").Join("clubs c ON c.id = e.club_id")
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	sql, args, err := r.selectEvents().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select event query: %w", err)
	}

	var e models.Event
	err = conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&e.ID, &e.ClubID, &e.Title, &e.Description,
		&e.EventDate, &e.Location, &e.Status, &e.IsAdminApproved, &e.CreatedAt, &e.ClubName)
	if err != nil {
		return nil, dberrors.Translate(err, "event")
	}
	return &e, nil
}

// List returns matching events ordered by event date, soonest first
func (r *EventRepository) List(ctx context.Context, f models.EventFilter) ([]models.Event, int, error) {
	q := r.selectEvents().Column("COUNT(*) OVER()").OrderBy("e.event_date", "e.created_at")
	if f.ClubIDs != nil {
		q = q.Where(squirrel.Eq{"e.club_id": f.ClubIDs})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"e.status": *f.Status})
	}
	if f.AdminApproved != nil {
		q = q.Where(squirrel.Eq{"e.is_admin_approved": *f.AdminApproved})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"e.event_date": *f.From})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, dberrors.Translate(err, "event")
	}
	defer rows.Close()

	events := []models.Event{}
	total := 0
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.ClubID, &e.Title, &e.Description, &e.EventDate, &e.Location,
			&e.Status, &e.IsAdminApproved, &e.CreatedAt, &e.ClubName, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberrors.Translate(err, "event")
	}
	return events, total, nil
}

func (r *EventRepository) update(ctx context.Context, q squirrel.UpdateBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Translate(err, "event")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("event not found")
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	return r.update(ctx, r.sb.Update("events").SetMap(map[string]interface{}{
		"title":       e.Title,
		"description": e.Description,
		"event_date":  e.EventDate,
		"location":    e.Location,
	}).Where(squirrel.Eq{"id": e.ID}))
}

func (r *EventRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.EventStatus) error {
	return r.update(ctx, r.sb.Update("events").Set("status", status).Where(squirrel.Eq{"id": id}))
}

func (r *EventRepository) Approve(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, r.sb.Update("events").
		Set("is_admin_approved", true).
		Set("status", models.EventStatusPublished).
		Where(squirrel.Eq{"id": id}))
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("events").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}
	tag, err := conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return dberrors.Translate(err, "event")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("event not found")
	}
	return nil
}
