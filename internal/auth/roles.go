package auth

import "github.com/academyhq/academy-service/internal/domain"

// Role groups used by route guards.
var (
	// AcademyOwners may found academies and enroll players.
	AcademyOwners = []domain.Role{domain.RoleAcademy, domain.RoleAdmin}

	// EventManagers may schedule events.
	EventManagers = []domain.Role{domain.RoleAcademy, domain.RoleCoach, domain.RoleAdmin}

	// PlanAuthors may write training plans.
	PlanAuthors = []domain.Role{domain.RoleCoach, domain.RoleAdmin}

	// AttendanceRecorders may submit attendance observations.
	AttendanceRecorders = []domain.Role{domain.RoleAcademy, domain.RoleCoach, domain.RoleAdmin}

	// AttendanceViewers may read an event's attendance sheet.
	AttendanceViewers = []domain.Role{domain.RoleAcademy, domain.RoleCoach, domain.RoleAdmin, domain.RoleScout}

	// Operators may read service internals such as metrics.
	Operators = []domain.Role{domain.RoleAdmin}
)

// SelfRegistrable reports whether a new account may choose role at sign-up.
func SelfRegistrable(role domain.Role) bool {
	switch role {
	case domain.RoleAcademy, domain.RoleCoach, domain.RolePlayer, domain.RoleScout:
		return true
	case domain.RoleAdmin:
		return false
	default:
		return false
	}
}
