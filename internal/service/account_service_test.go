package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/academyhq/academy-service/internal/domain"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

func TestAccountService(t *testing.T) {
	Convey("Given an account service", t, func() {
		env := newTestEnv(t)
		ctx := context.Background()

		session, err := env.accounts.Register(ctx, RegisterInput{
			Email:       "  Kim@Example.com ",
			Password:    "correct horse",
			DisplayName: "Kim",
			Role:        "Coach",
		})
		So(err, ShouldBeNil)

		Convey("Registration normalizes input and issues a verifiable credential", func() {
			So(session.User.Email, ShouldEqual, "kim@example.com")
			So(session.User.Role, ShouldEqual, domain.RoleCoach)
			So(session.User.PasswordHash, ShouldNotEqual, "correct horse")

			identity, err := env.tokens.Verify(session.Token)
			So(err, ShouldBeNil)
			So(identity.SubjectID, ShouldEqual, session.User.ID)
			So(identity.Role, ShouldEqual, domain.RoleCoach)
			So(identity.DisplayName, ShouldEqual, "Kim")
		})

		Convey("A duplicate email is a conflict", func() {
			_, err := env.accounts.Register(ctx, RegisterInput{Email: "kim@example.com", Password: "another pass", DisplayName: "K2", Role: "scout"})
			So(apperrors.HasCode(err, apperrors.CodeConflict), ShouldBeTrue)
		})

		Convey("Invalid registrations are rejected", func() {
			cases := []RegisterInput{
				{Email: "x@example.com", Password: "long enough", DisplayName: "X", Role: "admin"},
				{Email: "x@example.com", Password: "long enough", DisplayName: "X", Role: "owner"},
				{Email: "not-an-email", Password: "long enough", DisplayName: "X", Role: "player"},
				{Email: "x@example.com", Password: "short", DisplayName: "X", Role: "player"},
				{Email: "x@example.com", Password: "long enough", DisplayName: "  ", Role: "player"},
			}
			for _, input := range cases {
				_, err := env.accounts.Register(ctx, input)
				So(apperrors.HasCode(err, apperrors.CodeValidationFailed), ShouldBeTrue)
			}
		})

		Convey("Login succeeds with the right password", func() {
			login, err := env.accounts.Login(ctx, "KIM@example.com", "correct horse")
			So(err, ShouldBeNil)
			So(login.User.ID, ShouldEqual, session.User.ID)
		})

		Convey("Unknown email and wrong password fail identically", func() {
			_, wrongPassword := env.accounts.Login(ctx, "kim@example.com", "nope")
			_, unknownEmail := env.accounts.Login(ctx, "ghost@example.com", "correct horse")
			So(apperrors.HasCode(wrongPassword, apperrors.CodeUnauthorized), ShouldBeTrue)
			So(apperrors.HasCode(unknownEmail, apperrors.CodeUnauthorized), ShouldBeTrue)
			So(wrongPassword.Error(), ShouldEqual, unknownEmail.Error())
		})

		Convey("Me returns the stored account", func() {
			user, err := env.accounts.Me(ctx, session.Identity)
			So(err, ShouldBeNil)
			So(user.Email, ShouldEqual, "kim@example.com")
		})

		Convey("Changing the password requires the current one", func() {
			err := env.accounts.ChangePassword(ctx, session.Identity, "wrong", "brand new pass")
			So(apperrors.HasCode(err, apperrors.CodeUnauthorized), ShouldBeTrue)

			So(env.accounts.ChangePassword(ctx, session.Identity, "correct horse", "brand new pass"), ShouldBeNil)
			_, err = env.accounts.Login(ctx, "kim@example.com", "correct horse")
			So(err, ShouldNotBeNil)
			_, err = env.accounts.Login(ctx, "kim@example.com", "brand new pass")
			So(err, ShouldBeNil)
		})
	})
}
