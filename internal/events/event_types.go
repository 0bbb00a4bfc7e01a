package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/academyhq/academy-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAcademyCreated       EventType = "academy_created"
	EventPlayerEnrolled       EventType = "player_enrolled"
	EventEventScheduled       EventType = "event_scheduled"
	EventEventUpdated         EventType = "event_updated"
	EventEventDeleted         EventType = "event_deleted"
	EventTrainingPlanCreated  EventType = "training_plan_created"
	EventTrainingPlanUpdated  EventType = "training_plan_updated"
	EventTrainingPlanDeleted  EventType = "training_plan_deleted"
	EventAttendanceReconciled EventType = "attendance_reconciled"
)

// AllEventTypes lists every type a dispatcher may carry.
var AllEventTypes = []EventType{
	EventAcademyCreated,
	EventPlayerEnrolled,
	EventEventScheduled,
	EventEventUpdated,
	EventEventDeleted,
	EventTrainingPlanCreated,
	EventTrainingPlanUpdated,
	EventTrainingPlanDeleted,
	EventAttendanceReconciled,
}

// Actor identifies who caused an event.
type Actor struct {
	SubjectID int64       `json:"subject_id"`
	Role      domain.Role `json:"role"`
}

// ActorFrom builds an Actor from a verified identity.
func ActorFrom(identity domain.Identity) Actor {
	return Actor{SubjectID: identity.SubjectID, Role: identity.Role}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ResourceID int64     `json:"resource_id"`
	Actor      Actor     `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, resourceID int64, actor Actor, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// EventScheduledPayload payload.
type EventScheduledPayload struct {
	AcademyID int64            `json:"academy_id"`
	Title     string           `json:"title"`
	Type      domain.EventType `json:"event_type"`
	StartsAt  time.Time        `json:"starts_at"`
}

// TrainingPlanPayload payload.
type TrainingPlanPayload struct {
	CoachID int64  `json:"coach_id"`
	Title   string `json:"title"`
}

// PlayerEnrolledPayload payload.
type PlayerEnrolledPayload struct {
	AcademyID int64 `json:"academy_id"`
	PlayerID  int64 `json:"player_id"`
	UserID    int64 `json:"user_id"`
}

// AttendanceReconciledPayload payload. ResourceID on the event is the event id.
type AttendanceReconciledPayload struct {
	PlayerID int64 `json:"player_id"`
	Present  bool  `json:"present"`
	Created  bool  `json:"created"`
	Revision int64 `json:"revision"`
}
