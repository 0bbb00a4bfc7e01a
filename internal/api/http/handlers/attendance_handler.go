package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/academyhq/academy-service/internal/api/dto"
	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/service"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

// AttendanceHandler exposes attendance reconciliation endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: attendanceService}
}

// Upsert PUT /events/:id/attendance. Responds 201 when the record was created and 200
// when an existing one was overwritten.
func (h *AttendanceHandler) Upsert(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	eventID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AttendanceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	obs, err := toObservation(req)
	if err != nil {
		return err
	}

	record, created, err := h.service.Reconcile(c.UserContext(), identity, eventID, obs)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"data":    dto.NewAttendanceResponse(record),
		"created": created,
	})
}

// Bulk POST /events/:id/attendance/bulk.
func (h *AttendanceHandler) Bulk(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	eventID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.BulkAttendanceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	observations := make([]domain.AttendanceObservation, 0, len(req.Records))
	for i, item := range req.Records {
		obs, err := toObservation(item)
		if err != nil {
			de := apperrors.ToDomainError(err)
			return apperrors.NewValidationError(de.Message, map[string]any{"index": i})
		}
		observations = append(observations, obs)
	}

	batch, err := h.service.ReconcileAll(c.UserContext(), identity, eventID, observations)
	if err != nil {
		return err
	}

	resp := dto.BulkAttendanceResponse{
		Processed: batch.Processed,
		Failed:    batch.Failed,
		Results:   make([]dto.AttendanceItemResponse, 0, len(batch.Results)),
	}
	for _, r := range batch.Results {
		item := dto.AttendanceItemResponse{Index: r.Index, PlayerID: r.PlayerID, Status: r.Outcome}
		if r.Record != nil {
			data := dto.NewAttendanceResponse(r.Record)
			item.Data = &data
		}
		if r.Err != nil {
			item.Error = &dto.ErrorBody{Code: r.Err.Code, Message: r.Err.Message, Details: r.Err.Details}
		}
		resp.Results = append(resp.Results, item)
	}
	return c.JSON(resp)
}

// List GET /events/:id/attendance.
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	eventID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	records, err := h.service.ListForEvent(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	items := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewAttendanceResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func toObservation(req dto.AttendanceRequest) (domain.AttendanceObservation, error) {
	if req.PlayerID <= 0 {
		return domain.AttendanceObservation{}, apperrors.NewValidationError("player_id required", nil)
	}
	if req.Present == nil {
		return domain.AttendanceObservation{}, apperrors.NewValidationError("present required", map[string]any{"player_id": req.PlayerID})
	}
	return domain.AttendanceObservation{
		PlayerID:          req.PlayerID,
		Present:           *req.Present,
		PerformanceRating: req.PerformanceRating,
		Notes:             req.Notes,
	}, nil
}
