package errorutil

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/academyhq/academy-service/internal/repository"
)

func TestToDomainError(t *testing.T) {
	Convey("Given errors from different layers", t, func() {
		Convey("When the error is already a DomainError", func() {
			original := NewForbidden("nope")
			wrapped := fmt.Errorf("handler: %w", original)

			Convey("Then it is returned as-is through wrapping", func() {
				de := ToDomainError(wrapped)
				So(de.Code, ShouldEqual, CodeForbidden)
				So(de.HTTPStatus, ShouldEqual, http.StatusForbidden)
				So(de.Message, ShouldEqual, "nope")
			})
		})

		Convey("When the error is a missing row", func() {
			Convey("Then pgx and database/sql both map to NOT_FOUND", func() {
				So(ToDomainError(pgx.ErrNoRows).Code, ShouldEqual, CodeNotFound)
				So(ToDomainError(fmt.Errorf("get: %w", sql.ErrNoRows)).HTTPStatus, ShouldEqual, http.StatusNotFound)
				So(ToDomainError(fmt.Errorf("event 4: %w", repository.ErrNotFound)).Code, ShouldEqual, CodeNotFound)
			})
		})

		Convey("When the error is a fiber error", func() {
			de := ToDomainError(fiber.NewError(http.StatusBadRequest, "invalid payload"))

			Convey("Then its status and message survive", func() {
				So(de.HTTPStatus, ShouldEqual, http.StatusBadRequest)
				So(de.Code, ShouldEqual, CodeValidationFailed)
				So(de.Message, ShouldEqual, "invalid payload")
			})
		})

		Convey("When the error is unknown", func() {
			cause := errors.New("boom")
			de := ToDomainError(cause)

			Convey("Then it is an internal error that keeps the cause", func() {
				So(de.Code, ShouldEqual, CodeInternal)
				So(de.HTTPStatus, ShouldEqual, http.StatusInternalServerError)
				So(errors.Is(de, cause), ShouldBeTrue)
			})
		})

		Convey("When the error is nil", func() {
			So(ToDomainError(nil), ShouldBeNil)
		})
	})
}

func TestHasCode(t *testing.T) {
	Convey("HasCode matches wrapped domain errors by code", t, func() {
		err := fmt.Errorf("item 3: %w", NewValidationError("rating out of range", nil))
		So(HasCode(err, CodeValidationFailed), ShouldBeTrue)
		So(HasCode(err, CodeConflict), ShouldBeFalse)
		So(HasCode(errors.New("plain"), CodeValidationFailed), ShouldBeFalse)
	})
}
