package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/academyhq/academy-service/internal/api/http/handlers"
	"github.com/academyhq/academy-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Academies      *handlers.AcademiesHandler
	Events         *handlers.EventsHandler
	TrainingPlans  *handlers.TrainingPlansHandler
	Attendance     *handlers.AttendanceHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        nethttp.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	guard := cfg.AuthMiddleware

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(guard.RequireHTTP(auth.Operators...)(cfg.Metrics)))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", guard.Require(), cfg.Auth.Me)
	authGroup.Post("/password/change", guard.Require(), cfg.Auth.ChangePassword)

	academies := app.Group("/academies")
	academies.Post("", guard.Require(auth.AcademyOwners...), cfg.Academies.Create)
	academies.Get("/:id", guard.Require(), cfg.Academies.Get)
	academies.Post("/:id/players", guard.Require(auth.AcademyOwners...), cfg.Academies.EnrollPlayer)

	events := app.Group("/events")
	events.Post("", guard.Require(auth.EventManagers...), cfg.Events.Create)
	events.Get("/:id", guard.Require(), cfg.Events.Get)
	events.Patch("/:id", guard.Require(auth.EventManagers...), cfg.Events.Update)
	events.Delete("/:id", guard.Require(auth.EventManagers...), cfg.Events.Delete)

	events.Put("/:id/attendance", guard.Require(auth.AttendanceRecorders...), cfg.Attendance.Upsert)
	events.Post("/:id/attendance/bulk", guard.Require(auth.AttendanceRecorders...), cfg.Attendance.Bulk)
	events.Get("/:id/attendance", guard.Require(auth.AttendanceViewers...), cfg.Attendance.List)

	plans := app.Group("/training-plans")
	plans.Post("", guard.Require(auth.PlanAuthors...), cfg.TrainingPlans.Create)
	plans.Get("/:id", guard.Require(), cfg.TrainingPlans.Get)
	plans.Patch("/:id", guard.Require(auth.PlanAuthors...), cfg.TrainingPlans.Update)
	plans.Delete("/:id", guard.Require(auth.PlanAuthors...), cfg.TrainingPlans.Delete)
}
