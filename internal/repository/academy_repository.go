package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academyhq/academy-service/internal/domain"
)

// AcademyRepository manages academies and their player enrollments.
type AcademyRepository interface {
	Create(ctx context.Context, academy *domain.Academy) error
	GetByID(ctx context.Context, id int64) (*domain.Academy, error)
	AddPlayer(ctx context.Context, player *domain.Player) error
	GetPlayer(ctx context.Context, id int64) (*domain.Player, error)
	IsEnrolled(ctx context.Context, academyID, playerID int64) (bool, error)
}

type academyRepository struct {
	pool *pgxpool.Pool
}

// NewAcademyRepository instantiates repository.
func NewAcademyRepository(pool *pgxpool.Pool) AcademyRepository {
	return &academyRepository{pool: pool}
}

func (r *academyRepository) Create(ctx context.Context, academy *domain.Academy) error {
	const query = `
        INSERT INTO academies (name, owner_id)
        VALUES ($1, $2)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, academy.Name, academy.OwnerID).Scan(&academy.ID, &academy.CreatedAt)
	return mapPgError(err)
}

func (r *academyRepository) GetByID(ctx context.Context, id int64) (*domain.Academy, error) {
	const query = `SELECT id, name, owner_id, created_at FROM academies WHERE id=$1`
	var academy domain.Academy
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&academy.ID,
		&academy.Name,
		&academy.OwnerID,
		&academy.CreatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &academy, nil
}

func (r *academyRepository) AddPlayer(ctx context.Context, player *domain.Player) error {
	const query = `
        INSERT INTO players (user_id, academy_id, position)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, player.UserID, player.AcademyID, player.Position).
		Scan(&player.ID, &player.CreatedAt)
	return mapPgError(err)
}

func (r *academyRepository) GetPlayer(ctx context.Context, id int64) (*domain.Player, error) {
	const query = `SELECT id, user_id, academy_id, position, created_at FROM players WHERE id=$1`
	var player domain.Player
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&player.ID,
		&player.UserID,
		&player.AcademyID,
		&player.Position,
		&player.CreatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &player, nil
}

func (r *academyRepository) IsEnrolled(ctx context.Context, academyID, playerID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM players WHERE id=$1 AND academy_id=$2)`
	var enrolled bool
	if err := r.pool.QueryRow(ctx, query, playerID, academyID).Scan(&enrolled); err != nil {
		return false, mapPgError(err)
	}
	return enrolled, nil
}
