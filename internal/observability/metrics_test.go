package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func TestMetrics(t *testing.T) {
	Convey("Given a metrics registry", t, func() {
		m := NewMetrics()

		Convey("Attendance outcomes are counted per label", func() {
			m.RecordAttendance(OutcomeCreated)
			m.RecordAttendance(OutcomeCreated)
			m.RecordAttendance(OutcomeFailed)
			So(testutil.ToFloat64(m.attendance.WithLabelValues(OutcomeCreated)), ShouldEqual, 2)
			So(testutil.ToFloat64(m.attendance.WithLabelValues(OutcomeFailed)), ShouldEqual, 1)
		})

		Convey("The handler exposes the namespaced series", func() {
			m.RecordRequest("/events/:id", http.MethodGet, 200, 5*time.Millisecond)
			m.RecordUpsertRetry()

			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			body := rec.Body.String()
			So(body, ShouldContainSubstring, "academy_http_requests_total")
			So(body, ShouldContainSubstring, "academy_attendance_upsert_retries_total 1")
		})

		Convey("A nil receiver is a no-op", func() {
			var nilMetrics *Metrics
			So(func() { nilMetrics.RecordError("/", "GET", "X") }, ShouldNotPanic)
		})
	})
}

func TestRequestLogger(t *testing.T) {
	Convey("Given an app with the request logger", t, func() {
		m := NewMetrics()
		app := fiber.New()
		app.Use(RequestLogger(zap.NewNop(), m))
		app.Get("/ping", func(c *fiber.Ctx) error {
			return c.SendString(RequestID(c))
		})

		Convey("A request id is generated when absent", func() {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
			So(err, ShouldBeNil)
			So(resp.Header.Get(RequestIDHeader), ShouldNotBeEmpty)
		})

		Convey("An inbound request id is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(RequestIDHeader, "req-123")
			resp, err := app.Test(req)
			So(err, ShouldBeNil)
			So(resp.Header.Get(RequestIDHeader), ShouldEqual, "req-123")
			So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/ping", http.MethodGet, "200")), ShouldEqual, 1)
		})
	})
}
