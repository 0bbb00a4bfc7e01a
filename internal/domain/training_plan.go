package domain

import "time"

// TrainingPlan is a coach-owned programme.
type TrainingPlan struct {
	ID          int64
	CoachID     int64
	Title       string
	Description string
	StartsOn    *time.Time
	EndsOn      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
