package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/repository"
)

type attendanceRepository struct {
	db *sql.DB
}

const attendanceColumns = `event_id, player_id, present, performance_rating, notes, revision, created_at, updated_at`

func (r *attendanceRepository) Upsert(ctx context.Context, eventID int64, obs domain.AttendanceObservation) (*domain.Attendance, error) {
	now := toMillis(time.Now())
	row := r.db.QueryRowContext(ctx, `
        INSERT INTO attendance (event_id, player_id, present, performance_rating, notes, revision, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, 1, ?, ?)
        ON CONFLICT (event_id, player_id) DO UPDATE SET
            present = excluded.present,
            performance_rating = excluded.performance_rating,
            notes = excluded.notes,
            revision = attendance.revision + 1,
            updated_at = excluded.updated_at
        RETURNING `+attendanceColumns,
		eventID, obs.PlayerID, obs.Present, obs.PerformanceRating, obs.Notes, now, now)

	record, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %v", repository.ErrConflict, err)
		}
		return nil, err
	}
	return record, nil
}

func (r *attendanceRepository) Get(ctx context.Context, eventID, playerID int64) (*domain.Attendance, error) {
	return scanAttendance(r.db.QueryRowContext(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE event_id=? AND player_id=?`, eventID, playerID))
}

func (r *attendanceRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Attendance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE event_id=? ORDER BY player_id`, eventID)
	if err != nil {
		return nil, mapError(err)
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
	return result, mapError(rows.Err())
}

func scanAttendance(row scanner) (*domain.Attendance, error) {
	var (
		a                domain.Attendance
		rating           sql.NullFloat64
		notes            sql.NullString
		created, updated int64
	)
	if err := row.Scan(&a.EventID, &a.PlayerID, &a.Present, &rating, &notes, &a.Revision, &created, &updated); err != nil {
		return nil, mapError(err)
	}
	a.PerformanceRating = nullableFloat(rating)
	a.Notes = nullableString(notes)
	a.CreatedAt, a.UpdatedAt = fromMillis(created), fromMillis(updated)
	return &a, nil
}
