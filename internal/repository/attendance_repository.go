package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academyhq/academy-service/internal/domain"
)

// AttendanceRepository is the only write path for attendance records. Upsert must be a
// single atomic statement keyed by (event_id, player_id).
type AttendanceRepository interface {
	Upsert(ctx context.Context, eventID int64, obs domain.AttendanceObservation) (*domain.Attendance, error)
	Get(ctx context.Context, eventID, playerID int64) (*domain.Attendance, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Attendance, error)
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository instantiates repository.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

const attendanceColumns = `event_id, player_id, present, performance_rating, notes, revision, created_at, updated_at`

func (r *attendanceRepository) Upsert(ctx context.Context, eventID int64, obs domain.AttendanceObservation) (*domain.Attendance, error) {
	const query = `
        INSERT INTO attendance (event_id, player_id, present, performance_rating, notes)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (event_id, player_id) DO UPDATE SET
            present = EXCLUDED.present,
            performance_rating = EXCLUDED.performance_rating,
            notes = EXCLUDED.notes,
            revision = attendance.revision + 1,
            updated_at = NOW()
        RETURNING ` + attendanceColumns
	record, err := scanAttendance(r.pool.QueryRow(ctx, query,
		eventID,
		obs.PlayerID,
		obs.Present,
		obs.PerformanceRating,
		obs.Notes,
	))
	if err != nil {
		return nil, attendanceWriteError(mapPgError(err))
	}
	return record, nil
}

func (r *attendanceRepository) Get(ctx context.Context, eventID, playerID int64) (*domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE event_id=$1 AND player_id=$2`
	record, err := scanAttendance(r.pool.QueryRow(ctx, query, eventID, playerID))
	if err != nil {
		return nil, mapPgError(err)
	}
	return record, nil
}

func (r *attendanceRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE event_id=$1 ORDER BY player_id`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var result []domain.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	return result, rows.Err()
}

func scanAttendance(row pgx.Row) (*domain.Attendance, error) {
	var a domain.Attendance
	if err := row.Scan(
		&a.EventID,
		&a.PlayerID,
		&a.Present,
		&a.PerformanceRating,
		&a.Notes,
		&a.Revision,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// attendanceWriteError reports a uniqueness violation on the attendance key as a
// retryable conflict.
func attendanceWriteError(err error) error {
	if errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
