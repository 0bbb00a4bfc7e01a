package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles every repository the services depend on.
type Repositories struct {
	Users         UserRepository
	Academies     AcademyRepository
	Events        EventRepository
	TrainingPlans TrainingPlanRepository
	Attendance    AttendanceRepository
}

// NewPostgresRepositories wires all repositories to a pgx pool.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:         NewUserRepository(pool),
		Academies:     NewAcademyRepository(pool),
		Events:        NewEventRepository(pool),
		TrainingPlans: NewTrainingPlanRepository(pool),
		Attendance:    NewAttendanceRepository(pool),
	}
}
