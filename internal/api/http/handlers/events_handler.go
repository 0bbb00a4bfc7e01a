package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/academyhq/academy-service/internal/api/dto"
	"github.com/academyhq/academy-service/internal/service"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

// EventsHandler manages academy events.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// Create POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateEventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.AcademyID <= 0 || req.Title == "" || req.EventType == "" {
		return apperrors.NewValidationError("academy_id, title, event_type required", nil)
	}
	event, err := h.service.Create(c.UserContext(), identity, service.EventCreateInput{
		AcademyID: req.AcademyID,
		Title:     req.Title,
		Type:      req.EventType,
		StartsAt:  req.StartsAt,
		Location:  req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Get GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	event, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Update PATCH /events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateEventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	event, err := h.service.Update(c.UserContext(), identity, id, service.EventUpdateInput{
		Title:    req.Title,
		Type:     req.EventType,
		StartsAt: req.StartsAt,
		Location: req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Delete DELETE /events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
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
