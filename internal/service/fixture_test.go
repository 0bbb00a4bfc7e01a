package service

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/academyhq/academy-service/internal/auth"
	"github.com/academyhq/academy-service/internal/config"
	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/events"
	"github.com/academyhq/academy-service/internal/observability"
	"github.com/academyhq/academy-service/internal/persistence"
	"github.com/academyhq/academy-service/internal/repository"
	"github.com/academyhq/academy-service/internal/repository/sqlitestore"
)

type testEnv struct {
	db         *sql.DB
	repos      repository.Repositories
	dispatcher events.Dispatcher
	published  *eventLog
	metrics    *observability.Metrics
	tokens     *auth.TokenManager

	accounts   *AccountService
	academies  *AcademyService
	events     *EventService
	plans      *TrainingPlanService
	attendance *AttendanceService
}

type eventLog struct {
	mu    sync.Mutex
	items []events.Event
}

func (l *eventLog) record(_ context.Context, e events.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, e)
	return nil
}

func (l *eventLog) count(t events.EventType) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.items {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := persistence.NewSQLite(context.Background(), config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "svc.db")}, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(store.Close)

	tokens, err := auth.NewTokenManager("service-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	env := &testEnv{
		db:         store.DB,
		repos:      sqlitestore.New(store.DB),
		dispatcher: events.NewInMemoryDispatcher(nil),
		published:  &eventLog{},
		metrics:    observability.NewMetrics(),
		tokens:     tokens,
	}
	for _, eventType := range events.AllEventTypes {
		env.dispatcher.Subscribe(eventType, env.published.record)
	}

	env.accounts = NewAccountService(config.AuthConfig{BcryptCost: 4, MinPasswordLen: 8}, env.repos.Users, tokens, zap.NewNop())
	env.academies = NewAcademyService(AcademyDependencies{
		AcademyRepo: env.repos.Academies,
		UserRepo:    env.repos.Users,
		Dispatcher:  env.dispatcher,
	})
	env.events = NewEventService(EventDependencies{
		EventRepo:   env.repos.Events,
		AcademyRepo: env.repos.Academies,
		Dispatcher:  env.dispatcher,
	})
	env.plans = NewTrainingPlanService(env.repos.TrainingPlans, env.dispatcher, nil)
	env.attendance = NewAttendanceService(config.AttendanceConfig{
		BatchConcurrency:  4,
		UpsertMaxAttempts: 3,
		MaxBatchSize:      50,
	}, AttendanceDependencies{
		EventRepo:      env.repos.Events,
		AcademyRepo:    env.repos.Academies,
		AttendanceRepo: env.repos.Attendance,
		Dispatcher:     env.dispatcher,
		Metrics:        env.metrics,
		Backoff:        time.Millisecond,
	})
	return env
}

// user inserts an account directly and returns its identity.
func (e *testEnv) user(t *testing.T, email string, role domain.Role) domain.Identity {
	t.Helper()
	u := &domain.User{Email: email, PasswordHash: "unused", Role: role, DisplayName: email}
	if err := e.repos.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return domain.Identity{SubjectID: u.ID, Email: u.Email, Role: role, DisplayName: u.DisplayName}
}

func (e *testEnv) academy(t *testing.T, owner domain.Identity) *domain.Academy {
	t.Helper()
	a, err := e.academies.Create(context.Background(), owner, "Academy "+owner.Email)
	if err != nil {
		t.Fatalf("create academy: %v", err)
	}
	return a
}

func (e *testEnv) enroll(t *testing.T, owner domain.Identity, academyID int64, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		player := e.user(t, fmt.Sprintf("player-%d-%d@example.com", academyID, i), domain.RolePlayer)
		p, err := e.academies.EnrollPlayer(context.Background(), owner, academyID, EnrollInput{UserID: player.SubjectID})
		if err != nil {
			t.Fatalf("enroll: %v", err)
		}
		ids = append(ids, p.ID)
	}
	return ids
}

func (e *testEnv) event(t *testing.T, owner domain.Identity, academyID int64) *domain.Event {
	t.Helper()
	ev, err := e.events.Create(context.Background(), owner, EventCreateInput{
		AcademyID: academyID,
		Title:     "Session",
		Type:      "training",
		StartsAt:  time.Date(2024, 9, 3, 17, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return ev
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func ptr[T any](v T) *T { return &v }
