package sqlitestore

import (
	"context"
	"database/sql"
	"time"

	"github.com/academyhq/academy-service/internal/domain"
)

type eventRepository struct {
	db *sql.DB
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	now := toMillis(time.Now())
	row := r.db.QueryRowContext(ctx, `
        INSERT INTO events (academy_id, created_by, title, event_type, starts_at, location, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id`,
		event.AcademyID, event.CreatedBy, event.Title, string(event.Type),
		toMillis(event.StartsAt), event.Location, now, now)
	if err := row.Scan(&event.ID); err != nil {
		return mapError(err)
	}
	event.CreatedAt, event.UpdatedAt = fromMillis(now), fromMillis(now)
	return nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	now := toMillis(time.Now())
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET title=?, event_type=?, starts_at=?, location=?, updated_at=? WHERE id=?`,
		event.Title, string(event.Type), toMillis(event.StartsAt), event.Location, now, event.ID)
	if err != nil {
		return mapError(err)
	}
	if err := expectAffected(res); err != nil {
		return err
	}
	event.UpdatedAt = fromMillis(now)
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id=?`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var (
		event                     domain.Event
		eventType                 string
		location                  sql.NullString
		startsAt, created, updated int64
	)
	err := r.db.QueryRowContext(ctx, `
        SELECT id, academy_id, created_by, title, event_type, starts_at, location, created_at, updated_at
        FROM events WHERE id=?`, id,
	).Scan(&event.ID, &event.AcademyID, &event.CreatedBy, &event.Title, &eventType,
		&startsAt, &location, &created, &updated)
	if err != nil {
		return nil, mapError(err)
	}
	event.Type = domain.EventType(eventType)
	event.StartsAt = fromMillis(startsAt)
	event.Location = nullableString(location)
	event.CreatedAt, event.UpdatedAt = fromMillis(created), fromMillis(updated)
	return &event, nil
}
