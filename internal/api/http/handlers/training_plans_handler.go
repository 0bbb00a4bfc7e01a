package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/academyhq/academy-service/internal/api/dto"
	"github.com/academyhq/academy-service/internal/service"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

// TrainingPlansHandler manages coach training plans.
type TrainingPlansHandler struct {
	service *service.TrainingPlanService
}

// NewTrainingPlansHandler constructs handler.
func NewTrainingPlansHandler(planService *service.TrainingPlanService) *TrainingPlansHandler {
	return &TrainingPlansHandler{service: planService}
}

// Create POST /training-plans.
func (h *TrainingPlansHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	input, err := parsePlanRequest(c)
	if err != nil {
		return err
	}
	plan, err := h.service.Create(c.UserContext(), identity, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTrainingPlanResponse(plan)})
}

// Get GET /training-plans/:id.
func (h *TrainingPlansHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	plan, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTrainingPlanResponse(plan)})
}

// Update PATCH /training-plans/:id.
func (h *TrainingPlansHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	input, err := parsePlanRequest(c)
	if err != nil {
		return err
	}
	plan, err := h.service.Update(c.UserContext(), identity, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTrainingPlanResponse(plan)})
}

// Delete DELETE /training-plans/:id.
func (h *TrainingPlansHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), identity, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parsePlanRequest(c *fiber.Ctx) (service.TrainingPlanInput, error) {
	var req dto.TrainingPlanRequest
	if err := parseBody(c, &req); err != nil {
		return service.TrainingPlanInput{}, err
	}
	startsOn, err := parseDate("starts_on", req.StartsOn)
	if err != nil {
		return service.TrainingPlanInput{}, err
	}
	endsOn, err := parseDate("ends_on", req.EndsOn)
	if err != nil {
		return service.TrainingPlanInput{}, err
	}
	return service.TrainingPlanInput{
		Title:       req.Title,
		Description: req.Description,
		StartsOn:    startsOn,
		EndsOn:      endsOn,
	}, nil
}

func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, *raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+field, map[string]any{field: *raw, "layout": dto.DateLayout})
	}
	return &t, nil
}
