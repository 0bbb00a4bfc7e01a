package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academyhq/academy-service/internal/domain"
)

// TrainingPlanRepository encapsulates training plan persistence.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) error
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.TrainingPlan, error)
}

type trainingPlanRepository struct {
	pool *pgxpool.Pool
}

// NewTrainingPlanRepository instantiates repository.
func NewTrainingPlanRepository(pool *pgxpool.Pool) TrainingPlanRepository {
	return &trainingPlanRepository{pool: pool}
}

func (r *trainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) error {
	const query = `
        INSERT INTO training_plans (coach_id, title, description, starts_on, ends_on)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		plan.CoachID,
		plan.Title,
		plan.Description,
		plan.StartsOn,
		plan.EndsOn,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	return mapPgError(err)
}

func (r *trainingPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	const query = `
        UPDATE training_plans SET title=$1, description=$2, starts_on=$3, ends_on=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		plan.Title,
		plan.Description,
		plan.StartsOn,
		plan.EndsOn,
		plan.ID,
	).Scan(&plan.UpdatedAt)
	return mapPgError(err)
}

func (r *trainingPlanRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM training_plans WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *trainingPlanRepository) GetByID(ctx context.Context, id int64) (*domain.TrainingPlan, error) {
	const query = `
        SELECT id, coach_id, title, description, starts_on, ends_on, created_at, updated_at
        FROM training_plans WHERE id=$1`
	var plan domain.TrainingPlan
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.CoachID,
		&plan.Title,
		&plan.Description,
		&plan.StartsOn,
		&plan.EndsOn,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &plan, nil
}
