package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/academyhq/academy-service/internal/config"
	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/persistence"
	"github.com/academyhq/academy-service/internal/repository"
)

type fixture struct {
	repos   repository.Repositories
	coach   *domain.User
	academy *domain.Academy
	event   *domain.Event
	players []*domain.Player
}

func openStore(t *testing.T, path string) *persistence.SQLite {
	t.Helper()
	store, err := persistence.NewSQLite(context.Background(), config.SQLiteConfig{Path: path}, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func newFixture(t *testing.T, playerCount int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "academy.db"))
	repos := New(store.DB)

	coach := &domain.User{Email: "coach@example.com", PasswordHash: "x", Role: domain.RoleCoach, DisplayName: "Coach"}
	if err := repos.Users.Create(ctx, coach); err != nil {
		t.Fatalf("create coach: %v", err)
	}
	academy := &domain.Academy{Name: "North", OwnerID: coach.ID}
	if err := repos.Academies.Create(ctx, academy); err != nil {
		t.Fatalf("create academy: %v", err)
	}
	event := &domain.Event{
		AcademyID: academy.ID,
		CreatedBy: coach.ID,
		Title:     "Tuesday session",
		Type:      domain.EventTypeTraining,
		StartsAt:  time.Date(2024, 5, 7, 18, 0, 0, 0, time.UTC),
	}
	if err := repos.Events.Create(ctx, event); err != nil {
		t.Fatalf("create event: %v", err)
	}

	f := &fixture{repos: repos, coach: coach, academy: academy, event: event}
	for i := 0; i < playerCount; i++ {
		user := &domain.User{
			Email:        "p" + string(rune('a'+i)) + "@example.com",
			PasswordHash: "x",
			Role:         domain.RolePlayer,
			DisplayName:  "Player",
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			t.Fatalf("create player user: %v", err)
		}
		player := &domain.Player{UserID: user.ID, AcademyID: academy.ID}
		if err := repos.Academies.AddPlayer(ctx, player); err != nil {
			t.Fatalf("enroll player: %v", err)
		}
		f.players = append(f.players, player)
	}
	return f
}

func rating(v float64) *float64 { return &v }
func text(v string) *string     { return &v }

func TestAttendanceUpsert(t *testing.T) {
	Convey("Given an event with an enrolled player", t, func() {
		f := newFixture(t, 1)
		ctx := context.Background()
		playerID := f.players[0].ID

		Convey("The first write creates and the second overwrites the same row", func() {
			first, err := f.repos.Attendance.Upsert(ctx, f.event.ID, domain.AttendanceObservation{
				PlayerID: playerID, Present: true, PerformanceRating: rating(7.5), Notes: text("sharp"),
			})
			So(err, ShouldBeNil)
			So(first.Created(), ShouldBeTrue)
			So(*first.PerformanceRating, ShouldEqual, 7.5)

			second, err := f.repos.Attendance.Upsert(ctx, f.event.ID, domain.AttendanceObservation{
				PlayerID: playerID, Present: false,
			})
			So(err, ShouldBeNil)
			So(second.Created(), ShouldBeFalse)
			So(second.Revision, ShouldEqual, int64(2))
			So(second.Present, ShouldBeFalse)
			So(second.PerformanceRating, ShouldBeNil)
			So(second.Notes, ShouldBeNil)
			So(second.CreatedAt.Equal(first.CreatedAt), ShouldBeTrue)

			records, err := f.repos.Attendance.ListByEvent(ctx, f.event.ID)
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 1)
		})

		Convey("Repeating the same observation leaves one row with the last values", func() {
			obs := domain.AttendanceObservation{PlayerID: playerID, Present: true, PerformanceRating: rating(6)}
			for i := 0; i < 5; i++ {
				_, err := f.repos.Attendance.Upsert(ctx, f.event.ID, obs)
				So(err, ShouldBeNil)
			}
			record, err := f.repos.Attendance.Get(ctx, f.event.ID, playerID)
			So(err, ShouldBeNil)
			So(record.Revision, ShouldEqual, int64(5))
			So(*record.PerformanceRating, ShouldEqual, 6.0)
		})

		Convey("Concurrent writers for the same key never produce a duplicate", func() {
			var wg sync.WaitGroup
			errs := make(chan error, 10)
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := f.repos.Attendance.Upsert(ctx, f.event.ID, domain.AttendanceObservation{
						PlayerID: playerID, Present: i%2 == 0, PerformanceRating: rating(float64(i)),
					})
					errs <- err
				}(i)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				So(err, ShouldBeNil)
			}

			records, err := f.repos.Attendance.ListByEvent(ctx, f.event.ID)
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 1)
			So(records[0].Revision, ShouldEqual, int64(10))
		})

		Convey("A rating outside the column range is rejected by the store", func() {
			_, err := f.repos.Attendance.Upsert(ctx, f.event.ID, domain.AttendanceObservation{
				PlayerID: playerID, Present: true, PerformanceRating: rating(15),
			})
			So(err, ShouldNotBeNil)
		})

		Convey("An unknown player is an invalid reference", func() {
			_, err := f.repos.Attendance.Upsert(ctx, f.event.ID, domain.AttendanceObservation{PlayerID: 9999, Present: true})
			So(errors.Is(err, repository.ErrInvalidReference), ShouldBeTrue)
		})

		Convey("Deleting the event removes its attendance", func() {
			_, err := f.repos.Attendance.Upsert(ctx, f.event.ID, domain.AttendanceObservation{PlayerID: playerID, Present: true})
			So(err, ShouldBeNil)
			So(f.repos.Events.Delete(ctx, f.event.ID), ShouldBeNil)

			_, err = f.repos.Attendance.Get(ctx, f.event.ID, playerID)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestUsersAndAcademies(t *testing.T) {
	Convey("Given a store with one coach", t, func() {
		f := newFixture(t, 2)
		ctx := context.Background()

		Convey("Email addresses are unique", func() {
			err := f.repos.Users.Create(ctx, &domain.User{Email: "coach@example.com", PasswordHash: "y", Role: domain.RoleScout, DisplayName: "S"})
			So(errors.Is(err, repository.ErrDuplicate), ShouldBeTrue)
		})

		Convey("Users are found by email and id", func() {
			byEmail, err := f.repos.Users.GetByEmail(ctx, "coach@example.com")
			So(err, ShouldBeNil)
			So(byEmail.Role, ShouldEqual, domain.RoleCoach)

			byID, err := f.repos.Users.GetByID(ctx, byEmail.ID)
			So(err, ShouldBeNil)
			So(byID.Email, ShouldEqual, byEmail.Email)

			_, err = f.repos.Users.GetByEmail(ctx, "nobody@example.com")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Password updates hit exactly one row", func() {
			So(f.repos.Users.UpdatePassword(ctx, f.coach.ID, "new-hash"), ShouldBeNil)
			user, err := f.repos.Users.GetByID(ctx, f.coach.ID)
			So(err, ShouldBeNil)
			So(user.PasswordHash, ShouldEqual, "new-hash")
			So(errors.Is(f.repos.Users.UpdatePassword(ctx, 4242, "h"), repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Enrollment is scoped to the academy", func() {
			enrolled, err := f.repos.Academies.IsEnrolled(ctx, f.academy.ID, f.players[0].ID)
			So(err, ShouldBeNil)
			So(enrolled, ShouldBeTrue)

			other := &domain.Academy{Name: "South", OwnerID: f.coach.ID}
			So(f.repos.Academies.Create(ctx, other), ShouldBeNil)
			enrolled, err = f.repos.Academies.IsEnrolled(ctx, other.ID, f.players[0].ID)
			So(err, ShouldBeNil)
			So(enrolled, ShouldBeFalse)

			err = f.repos.Academies.AddPlayer(ctx, &domain.Player{UserID: f.players[0].UserID, AcademyID: f.academy.ID})
			So(errors.Is(err, repository.ErrDuplicate), ShouldBeTrue)
		})
	})
}

func TestEventsAndPlans(t *testing.T) {
	Convey("Given a store with an event", t, func() {
		f := newFixture(t, 0)
		ctx := context.Background()

		Convey("Updates persist and missing ids report not found", func() {
			f.event.Title = "Moved session"
			f.event.Location = text("Pitch 2")
			So(f.repos.Events.Update(ctx, f.event), ShouldBeNil)

			loaded, err := f.repos.Events.GetByID(ctx, f.event.ID)
			So(err, ShouldBeNil)
			So(loaded.Title, ShouldEqual, "Moved session")
			So(*loaded.Location, ShouldEqual, "Pitch 2")
			So(loaded.StartsAt.Equal(f.event.StartsAt), ShouldBeTrue)

			So(errors.Is(f.repos.Events.Update(ctx, &domain.Event{ID: 777, Type: domain.EventTypeMatch}), repository.ErrNotFound), ShouldBeTrue)
			So(errors.Is(f.repos.Events.Delete(ctx, 777), repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Training plans keep optional dates", func() {
			start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
			plan := &domain.TrainingPlan{CoachID: f.coach.ID, Title: "Pre-season", StartsOn: &start}
			So(f.repos.TrainingPlans.Create(ctx, plan), ShouldBeNil)

			loaded, err := f.repos.TrainingPlans.GetByID(ctx, plan.ID)
			So(err, ShouldBeNil)
			So(loaded.StartsOn.Equal(start), ShouldBeTrue)
			So(loaded.EndsOn, ShouldBeNil)

			So(f.repos.TrainingPlans.Delete(ctx, plan.ID), ShouldBeNil)
			_, err = f.repos.TrainingPlans.GetByID(ctx, plan.ID)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMigrationsAreRepeatable(t *testing.T) {
	Convey("Opening the same database twice reapplies migrations without error", t, func() {
		path := filepath.Join(t.TempDir(), "repeat.db")
		first := openStore(t, path)
		So(New(first.DB).Users.Create(context.Background(), &domain.User{
			Email: "a@example.com", PasswordHash: "x", Role: domain.RoleScout, DisplayName: "A",
		}), ShouldBeNil)
		first.Close()

		second := openStore(t, path)
		user, err := New(second.DB).Users.GetByEmail(context.Background(), "a@example.com")
		So(err, ShouldBeNil)
		So(user.Role, ShouldEqual, domain.RoleScout)
	})
}
