package sqlitestore

import (
	"context"
	"database/sql"
	"time"

	"github.com/academyhq/academy-service/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

const userColumns = `id, email, password_hash, role, display_name, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := toMillis(time.Now())
	row := r.db.QueryRowContext(ctx, `
        INSERT INTO users (email, password_hash, role, display_name, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING id, created_at, updated_at`,
		user.Email, user.PasswordHash, string(user.Role), user.DisplayName, now, now)

	var created, updated int64
	if err := row.Scan(&user.ID, &created, &updated); err != nil {
		return mapError(err)
	}
	user.CreatedAt, user.UpdatedAt = fromMillis(created), fromMillis(updated)
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash=?, updated_at=? WHERE id=?`,
		passwordHash, toMillis(time.Now()), id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=?`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email=?`, email))
}

func scanUser(row scanner) (*domain.User, error) {
	var (
		user             domain.User
		role             string
		created, updated int64
	)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &user.DisplayName, &created, &updated); err != nil {
		return nil, mapError(err)
	}
	user.Role = domain.Role(role)
	user.CreatedAt, user.UpdatedAt = fromMillis(created), fromMillis(updated)
	return &user, nil
}
