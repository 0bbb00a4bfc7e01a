package domain

import "time"

// EventType enumerates scheduled activity kinds.
type EventType string

const (
	EventTypeTraining EventType = "training"
	EventTypeMatch    EventType = "match"
	EventTypeTrial    EventType = "trial"
	EventTypeOther    EventType = "other"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeTraining, EventTypeMatch, EventTypeTrial, EventTypeOther:
		return true
	default:
		return false
	}
}

// Event is an owner-scoped scheduled activity of an academy.
type Event struct {
	ID        int64
	AcademyID int64
	CreatedBy int64
	Title     string
	Type      EventType
	StartsAt  time.Time
	Location  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
