// Package app assembles the HTTP service from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/academyhq/academy-service/internal/api/http"
	"github.com/academyhq/academy-service/internal/api/http/handlers"
	"github.com/academyhq/academy-service/internal/auth"
	"github.com/academyhq/academy-service/internal/config"
	"github.com/academyhq/academy-service/internal/events"
	"github.com/academyhq/academy-service/internal/observability"
	"github.com/academyhq/academy-service/internal/persistence"
	"github.com/academyhq/academy-service/internal/repository"
	"github.com/academyhq/academy-service/internal/repository/sqlitestore"
	"github.com/academyhq/academy-service/internal/service"
	"github.com/academyhq/academy-service/internal/worker"
)

// App is a fully wired service instance.
type App struct {
	Fiber   *fiber.App
	Metrics *observability.Metrics
	Tokens  *auth.TokenManager

	closers []func()
}

// New opens storage for the configured driver and wires every layer.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Metrics: observability.NewMetrics()}
	health := map[string]handlers.Pinger{}

	var repos repository.Repositories
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pg.Close)
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				a.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		repos = repository.NewPostgresRepositories(pg.PoolHandle())
		health["postgres"] = pg
	case config.DriverSQLite:
		store, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		repos = sqlitestore.New(store.DB)
		health["sqlite"] = store
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	a.closers = append(a.closers, redis.Close)
	var forwarder *events.Forwarder
	if redis.Enabled() {
		forwarder = events.NewForwarder(redis, cfg.Redis.Channel)
		health["redis"] = redis
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Tokens = tokens

	dispatcher := events.NewInMemoryDispatcher(logger)
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartEventWorkers(dispatcher, notifications, forwarder)

	accounts := service.NewAccountService(cfg.Auth, repos.Users, tokens, logger)
	academies := service.NewAcademyService(service.AcademyDependencies{
		AcademyRepo: repos.Academies,
		UserRepo:    repos.Users,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:   repos.Events,
		AcademyRepo: repos.Academies,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	plans := service.NewTrainingPlanService(repos.TrainingPlans, dispatcher, logger)
	attendance := service.NewAttendanceService(cfg.Attendance, service.AttendanceDependencies{
		EventRepo:      repos.Events,
		AcademyRepo:    repos.Academies,
		AttendanceRepo: repos.Attendance,
		Dispatcher:     dispatcher,
		Logger:         logger,
		Metrics:        a.Metrics,
	})

	a.Fiber = fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, a.Metrics),
	})
	httptransport.RegisterMiddlewares(a.Fiber, logger, a.Metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(a.Fiber, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, health),
		Auth:           handlers.NewAuthHandler(accounts),
		Academies:      handlers.NewAcademiesHandler(academies),
		Events:         handlers.NewEventsHandler(eventService),
		TrainingPlans:  handlers.NewTrainingPlansHandler(plans),
		Attendance:     handlers.NewAttendanceHandler(attendance),
		AuthMiddleware: auth.NewAuthMiddleware(auth.NewExtractor(tokens)),
		Metrics:        a.Metrics.Handler(),
	})
	return a, nil
}

// Close releases storage and broker connections in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
