package dto

import (
	"time"

	"github.com/academyhq/academy-service/internal/domain"
)

// CreateEventRequest payload.
type CreateEventRequest struct {
	AcademyID int64     `json:"academy_id"`
	Title     string    `json:"title"`
	EventType string    `json:"event_type"`
	StartsAt  time.Time `json:"starts_at"`
	Location  *string   `json:"location"`
}

// UpdateEventRequest payload; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title     *string    `json:"title"`
	EventType *string    `json:"event_type"`
	StartsAt  *time.Time `json:"starts_at"`
	Location  *string    `json:"location"`
}

// EventResponse view.
type EventResponse struct {
	ID        int64            `json:"id"`
	AcademyID int64            `json:"academy_id"`
	CreatedBy int64            `json:"created_by"`
	Title     string           `json:"title"`
	EventType domain.EventType `json:"event_type"`
	StartsAt  time.Time        `json:"starts_at"`
	Location  *string          `json:"location,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewEventResponse maps an event.
func NewEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		AcademyID: e.AcademyID,
		CreatedBy: e.CreatedBy,
		Title:     e.Title,
		EventType: e.Type,
		StartsAt:  e.StartsAt,
		Location:  e.Location,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
