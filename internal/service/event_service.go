package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/events"
	"github.com/academyhq/academy-service/internal/repository"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

// EventService coordinates scheduled academy activities.
type EventService struct {
	events     repository.EventRepository
	academies  repository.AcademyRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// EventDependencies bundles repositories for the event service.
type EventDependencies struct {
	EventRepo   repository.EventRepository
	AcademyRepo repository.AcademyRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// EventCreateInput describes a new event.
type EventCreateInput struct {
	AcademyID int64
	Title     string
	Type      string
	StartsAt  time.Time
	Location  *string
}

// EventUpdateInput carries the fields to change; nil fields are left untouched and an
// empty Location clears it.
type EventUpdateInput struct {
	Title    *string
	Type     *string
	StartsAt *time.Time
	Location *string
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		events:     deps.EventRepo,
		academies:  deps.AcademyRepo,
		dispatcher: dispatcherOrDiscard(deps.Dispatcher),
		logger:     loggerOrNop(deps.Logger),
	}
}

// Create schedules an event owned by the caller.
func (s *EventService) Create(ctx context.Context, identity domain.Identity, input EventCreateInput) (*domain.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	eventType, err := parseEventType(input.Type)
	if err != nil {
		return nil, err
	}
	if input.StartsAt.IsZero() {
		return nil, apperrors.NewValidationError("starts_at is required", nil)
	}
	if _, err := s.academies.GetByID(ctx, input.AcademyID); err != nil {
		return nil, lookupError("academy", input.AcademyID, err)
	}

	event := &domain.Event{
		AcademyID: input.AcademyID,
		CreatedBy: identity.SubjectID,
		Title:     title,
		Type:      eventType,
		StartsAt:  input.StartsAt.UTC(),
		Location:  trimmedOrNil(input.Location),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, writeError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventEventScheduled, event.ID, events.ActorFrom(identity), events.EventScheduledPayload{
		AcademyID: event.AcademyID,
		Title:     event.Title,
		Type:      event.Type,
		StartsAt:  event.StartsAt,
	}))
	return event, nil
}

// Get returns an event by id.
func (s *EventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError("event", id, err)
	}
	return event, nil
}

// Update changes an event the caller owns.
func (s *EventService) Update(ctx context.Context, identity domain.Identity, id int64, input EventUpdateInput) (*domain.Event, error) {
	event, err := s.resolveOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title must not be empty", nil)
		}
		event.Title = title
	}
	if input.Type != nil {
		eventType, err := parseEventType(*input.Type)
		if err != nil {
			return nil, err
		}
		event.Type = eventType
	}
	if input.StartsAt != nil {
		event.StartsAt = input.StartsAt.UTC()
	}
	if input.Location != nil {
		event.Location = trimmedOrNil(input.Location)
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, writeError(err)
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventEventUpdated, event.ID, events.ActorFrom(identity), nil))
	return event, nil
}

// Delete removes an event the caller owns, together with its attendance.
func (s *EventService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	if _, err := s.resolveOwned(ctx, identity, id); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return writeError(err)
	}
	s.logger.Info("event deleted", zap.Int64("event_id", id), zap.Int64("subject_id", identity.SubjectID))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventEventDeleted, id, events.ActorFrom(identity), nil))
	return nil
}

func (s *EventService) resolveOwned(ctx context.Context, identity domain.Identity, id int64) (*domain.Event, error) {
	return resolveOwned(ctx, identity, "event", id, s.events.GetByID, eventOwner)
}

func eventOwner(e *domain.Event) int64 { return e.CreatedBy }

func parseEventType(raw string) (domain.EventType, error) {
	eventType := domain.EventType(strings.ToLower(strings.TrimSpace(raw)))
	if !eventType.Valid() {
		return "", apperrors.NewValidationError("unknown event type", map[string]any{"event_type": raw})
	}
	return eventType, nil
}
