package domain

import "time"

// Rating bounds for attendance performance scores.
const (
	MinPerformanceRating = 0.0
	MaxPerformanceRating = 10.0
)

// AttendanceObservation is a single submitted attendance fact for one player.
type AttendanceObservation struct {
	PlayerID          int64
	Present           bool
	PerformanceRating *float64
	Notes             *string
}

// Attendance is the stored record for an (event, player) pair.
type Attendance struct {
	EventID           int64
	PlayerID          int64
	Present           bool
	PerformanceRating *float64
	Notes             *string
	Revision          int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Created reports whether the record was produced by an insert rather than an overwrite.
func (a *Attendance) Created() bool {
	return a.Revision == 1
}
