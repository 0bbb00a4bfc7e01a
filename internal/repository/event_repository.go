package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academyhq/academy-service/internal/domain"
)

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (academy_id, created_by, title, event_type, starts_at, location)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		event.AcademyID,
		event.CreatedBy,
		event.Title,
		event.Type,
		event.StartsAt,
		event.Location,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	return mapPgError(err)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events SET title=$1, event_type=$2, starts_at=$3, location=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		event.Title,
		event.Type,
		event.StartsAt,
		event.Location,
		event.ID,
	).Scan(&event.UpdatedAt)
	return mapPgError(err)
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	const query = `
        SELECT id, academy_id, created_by, title, event_type, starts_at, location, created_at, updated_at
        FROM events WHERE id=$1`
	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.AcademyID,
		&event.CreatedBy,
		&event.Title,
		&event.Type,
		&event.StartsAt,
		&event.Location,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &event, nil
}
