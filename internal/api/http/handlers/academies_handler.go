package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/academyhq/academy-service/internal/api/dto"
	"github.com/academyhq/academy-service/internal/service"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

// AcademiesHandler manages academies and enrollment.
type AcademiesHandler struct {
	service *service.AcademyService
}

// NewAcademiesHandler constructs handler.
func NewAcademiesHandler(academyService *service.AcademyService) *AcademiesHandler {
	return &AcademiesHandler{service: academyService}
}

// Create POST /academies.
func (h *AcademiesHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateAcademyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	academy, err := h.service.Create(c.UserContext(), identity, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAcademyResponse(academy)})
}

// Get GET /academies/:id.
func (h *AcademiesHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	academy, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAcademyResponse(academy)})
}

// EnrollPlayer POST /academies/:id/players.
func (h *AcademiesHandler) EnrollPlayer(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EnrollPlayerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.UserID <= 0 {
		return apperrors.NewValidationError("user_id required", nil)
	}
	player, err := h.service.EnrollPlayer(c.UserContext(), identity, id, service.EnrollInput{UserID: req.UserID, Position: req.Position})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPlayerResponse(player)})
}
