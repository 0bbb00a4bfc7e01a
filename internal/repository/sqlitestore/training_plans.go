package sqlitestore

import (
	"context"
	"database/sql"
	"time"

	"github.com/academyhq/academy-service/internal/domain"
)

type trainingPlanRepository struct {
	db *sql.DB
}

func (r *trainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) error {
	now := toMillis(time.Now())
	row := r.db.QueryRowContext(ctx, `
        INSERT INTO training_plans (coach_id, title, description, starts_on, ends_on, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        RETURNING id`,
		plan.CoachID, plan.Title, plan.Description,
		nullableMillis(plan.StartsOn), nullableMillis(plan.EndsOn), now, now)
	if err := row.Scan(&plan.ID); err != nil {
		return mapError(err)
	}
	plan.CreatedAt, plan.UpdatedAt = fromMillis(now), fromMillis(now)
	return nil
}

func (r *trainingPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	now := toMillis(time.Now())
	res, err := r.db.ExecContext(ctx,
		`UPDATE training_plans SET title=?, description=?, starts_on=?, ends_on=?, updated_at=? WHERE id=?`,
		plan.Title, plan.Description, nullableMillis(plan.StartsOn), nullableMillis(plan.EndsOn), now, plan.ID)
	if err != nil {
		return mapError(err)
	}
	if err := expectAffected(res); err != nil {
		return err
	}
	plan.UpdatedAt = fromMillis(now)
	return nil
}

func (r *trainingPlanRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM training_plans WHERE id=?`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *trainingPlanRepository) GetByID(ctx context.Context, id int64) (*domain.TrainingPlan, error) {
	var (
		plan             domain.TrainingPlan
		startsOn, endsOn sql.NullInt64
		created, updated int64
	)
	err := r.db.QueryRowContext(ctx, `
        SELECT id, coach_id, title, description, starts_on, ends_on, created_at, updated_at
        FROM training_plans WHERE id=?`, id,
	).Scan(&plan.ID, &plan.CoachID, &plan.Title, &plan.Description, &startsOn, &endsOn, &created, &updated)
	if err != nil {
		return nil, mapError(err)
	}
	plan.StartsOn, plan.EndsOn = fromNullableMillis(startsOn), fromNullableMillis(endsOn)
	plan.CreatedAt, plan.UpdatedAt = fromMillis(created), fromMillis(updated)
	return &plan, nil
}
