package sqlitestore

import (
	"context"
	"database/sql"
	"time"

	"github.com/academyhq/academy-service/internal/domain"
)

type academyRepository struct {
	db *sql.DB
}

func (r *academyRepository) Create(ctx context.Context, academy *domain.Academy) error {
	now := toMillis(time.Now())
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO academies (name, owner_id, created_at) VALUES (?, ?, ?) RETURNING id`,
		academy.Name, academy.OwnerID, now)
	if err := row.Scan(&academy.ID); err != nil {
		return mapError(err)
	}
	academy.CreatedAt = fromMillis(now)
	return nil
}

func (r *academyRepository) GetByID(ctx context.Context, id int64) (*domain.Academy, error) {
	var (
		academy domain.Academy
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM academies WHERE id=?`, id,
	).Scan(&academy.ID, &academy.Name, &academy.OwnerID, &created)
	if err != nil {
		return nil, mapError(err)
	}
	academy.CreatedAt = fromMillis(created)
	return &academy, nil
}

func (r *academyRepository) AddPlayer(ctx context.Context, player *domain.Player) error {
	now := toMillis(time.Now())
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO players (user_id, academy_id, position, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		player.UserID, player.AcademyID, player.Position, now)
	if err := row.Scan(&player.ID); err != nil {
		return mapError(err)
	}
	player.CreatedAt = fromMillis(now)
	return nil
}

func (r *academyRepository) GetPlayer(ctx context.Context, id int64) (*domain.Player, error) {
	var (
		player   domain.Player
		position sql.NullString
		created  int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, academy_id, position, created_at FROM players WHERE id=?`, id,
	).Scan(&player.ID, &player.UserID, &player.AcademyID, &position, &created)
	if err != nil {
		return nil, mapError(err)
	}
	player.Position = nullableString(position)
	player.CreatedAt = fromMillis(created)
	return &player, nil
}

func (r *academyRepository) IsEnrolled(ctx context.Context, academyID, playerID int64) (bool, error) {
	var enrolled bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM players WHERE id=? AND academy_id=?)`, playerID, academyID,
	).Scan(&enrolled)
	if err != nil {
		return false, mapError(err)
	}
	return enrolled, nil
}
