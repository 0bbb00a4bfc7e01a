package service

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/events"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

func TestTrainingPlanOwnership(t *testing.T) {
	Convey("Given a training plan owned by coach C2", t, func() {
		env := newTestEnv(t)
		ctx := context.Background()
		c1 := env.user(t, "c1@example.com", domain.RoleCoach)
		c2 := env.user(t, "c2@example.com", domain.RoleCoach)
		admin := env.user(t, "admin@example.com", domain.RoleAdmin)

		plan, err := env.plans.Create(ctx, c2, TrainingPlanInput{Title: ptr("Pre-season"), Description: ptr("conditioning")})
		So(err, ShouldBeNil)
		So(plan.CoachID, ShouldEqual, c2.SubjectID)

		Convey("Coach C1 cannot delete or edit it", func() {
			So(apperrors.HasCode(env.plans.Delete(ctx, c1, plan.ID), apperrors.CodeForbidden), ShouldBeTrue)
			_, err := env.plans.Update(ctx, c1, plan.ID, TrainingPlanInput{Title: ptr("Hijacked")})
			So(apperrors.HasCode(err, apperrors.CodeForbidden), ShouldBeTrue)

			stored, err := env.plans.Get(ctx, plan.ID)
			So(err, ShouldBeNil)
			So(stored.Title, ShouldEqual, "Pre-season")
		})

		Convey("An admin can delete it", func() {
			So(env.plans.Delete(ctx, admin, plan.ID), ShouldBeNil)
			_, err := env.plans.Get(ctx, plan.ID)
			So(apperrors.HasCode(err, apperrors.CodeNotFound), ShouldBeTrue)
			So(env.published.count(events.EventTrainingPlanDeleted), ShouldEqual, 1)
		})

		Convey("The owner can edit it", func() {
			start := time.Date(2024, 7, 1, 15, 0, 0, 0, time.UTC)
			updated, err := env.plans.Update(ctx, c2, plan.ID, TrainingPlanInput{StartsOn: &start})
			So(err, ShouldBeNil)
			So(updated.StartsOn.Equal(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)

			earlier := start.AddDate(0, 0, -3)
			_, err = env.plans.Update(ctx, c2, plan.ID, TrainingPlanInput{EndsOn: &earlier})
			So(apperrors.HasCode(err, apperrors.CodeValidationFailed), ShouldBeTrue)
		})

		Convey("Missing plans are not found before ownership is checked", func() {
			So(apperrors.HasCode(env.plans.Delete(ctx, c1, 4040), apperrors.CodeNotFound), ShouldBeTrue)
		})
	})
}

func TestEventOwnership(t *testing.T) {
	Convey("Given an event created by an academy account", t, func() {
		env := newTestEnv(t)
		ctx := context.Background()
		owner := env.user(t, "north@example.com", domain.RoleAcademy)
		coach := env.user(t, "coach@example.com", domain.RoleCoach)
		admin := env.user(t, "admin@example.com", domain.RoleAdmin)
		academy := env.academy(t, owner)
		event := env.event(t, owner, academy.ID)

		Convey("Another identity cannot change it", func() {
			_, err := env.events.Update(ctx, coach, event.ID, EventUpdateInput{Title: ptr("Cancelled")})
			So(apperrors.HasCode(err, apperrors.CodeForbidden), ShouldBeTrue)
			So(apperrors.HasCode(env.events.Delete(ctx, coach, event.ID), apperrors.CodeForbidden), ShouldBeTrue)
		})

		Convey("The owner can update it and bad types are rejected", func() {
			updated, err := env.events.Update(ctx, owner, event.ID, EventUpdateInput{Type: ptr("MATCH"), Location: ptr("Pitch 3")})
			So(err, ShouldBeNil)
			So(updated.Type, ShouldEqual, domain.EventTypeMatch)
			So(*updated.Location, ShouldEqual, "Pitch 3")

			_, err = env.events.Update(ctx, owner, event.ID, EventUpdateInput{Type: ptr("party")})
			So(apperrors.HasCode(err, apperrors.CodeValidationFailed), ShouldBeTrue)
		})

		Convey("An admin can delete it", func() {
			So(env.events.Delete(ctx, admin, event.ID), ShouldBeNil)
			_, err := env.events.Get(ctx, event.ID)
			So(apperrors.HasCode(err, apperrors.CodeNotFound), ShouldBeTrue)
		})

		Convey("Creating for an unknown academy is not found", func() {
			_, err := env.events.Create(ctx, coach, EventCreateInput{AcademyID: 999, Title: "x", Type: "trial", StartsAt: time.Now()})
			So(apperrors.HasCode(err, apperrors.CodeNotFound), ShouldBeTrue)
		})
	})
}

func TestAcademyEnrollment(t *testing.T) {
	Convey("Given an academy", t, func() {
		env := newTestEnv(t)
		ctx := context.Background()
		owner := env.user(t, "owner@example.com", domain.RoleAcademy)
		outsider := env.user(t, "outsider@example.com", domain.RoleAcademy)
		academy := env.academy(t, owner)
		player := env.user(t, "p@example.com", domain.RolePlayer)
		scout := env.user(t, "s@example.com", domain.RoleScout)

		Convey("Only the owner may enroll", func() {
			_, err := env.academies.EnrollPlayer(ctx, outsider, academy.ID, EnrollInput{UserID: player.SubjectID})
			So(apperrors.HasCode(err, apperrors.CodeForbidden), ShouldBeTrue)
		})

		Convey("Only player accounts may be enrolled, once", func() {
			_, err := env.academies.EnrollPlayer(ctx, owner, academy.ID, EnrollInput{UserID: scout.SubjectID})
			So(apperrors.HasCode(err, apperrors.CodeValidationFailed), ShouldBeTrue)

			enrolled, err := env.academies.EnrollPlayer(ctx, owner, academy.ID, EnrollInput{UserID: player.SubjectID, Position: ptr(" keeper ")})
			So(err, ShouldBeNil)
			So(*enrolled.Position, ShouldEqual, "keeper")

			_, err = env.academies.EnrollPlayer(ctx, owner, academy.ID, EnrollInput{UserID: player.SubjectID})
			So(apperrors.HasCode(err, apperrors.CodeConflict), ShouldBeTrue)
		})
	})
}
