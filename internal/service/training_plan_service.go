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

// TrainingPlanService manages coach-owned training plans.
type TrainingPlanService struct {
	plans      repository.TrainingPlanRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TrainingPlanInput describes plan fields. On update, nil fields are left untouched.
type TrainingPlanInput struct {
	Title       *string
	Description *string
	StartsOn    *time.Time
	EndsOn      *time.Time
}

// NewTrainingPlanService constructs the service.
func NewTrainingPlanService(plans repository.TrainingPlanRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TrainingPlanService {
	return &TrainingPlanService{
		plans:      plans,
		dispatcher: dispatcherOrDiscard(dispatcher),
		logger:     loggerOrNop(logger),
	}
}

// Create stores a plan owned by the calling coach.
func (s *TrainingPlanService) Create(ctx context.Context, identity domain.Identity, input TrainingPlanInput) (*domain.TrainingPlan, error) {
	plan := &domain.TrainingPlan{CoachID: identity.SubjectID}
	if input.Title == nil {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if err := applyPlanInput(plan, input); err != nil {
		return nil, err
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, writeError(err)
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventTrainingPlanCreated, plan.ID, events.ActorFrom(identity), events.TrainingPlanPayload{
		CoachID: plan.CoachID,
		Title:   plan.Title,
	}))
	return plan, nil
}

// Get returns a plan by id.
func (s *TrainingPlanService) Get(ctx context.Context, id int64) (*domain.TrainingPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError("training plan", id, err)
	}
	return plan, nil
}

// Update changes a plan the caller owns.
func (s *TrainingPlanService) Update(ctx context.Context, identity domain.Identity, id int64, input TrainingPlanInput) (*domain.TrainingPlan, error) {
	plan, err := resolveOwned(ctx, identity, "training plan", id, s.plans.GetByID, planOwner)
	if err != nil {
		return nil, err
	}
	if err := applyPlanInput(plan, input); err != nil {
		return nil, err
	}
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, writeError(err)
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventTrainingPlanUpdated, plan.ID, events.ActorFrom(identity), nil))
	return plan, nil
}

// Delete removes a plan the caller owns.
func (s *TrainingPlanService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	plan, err := resolveOwned(ctx, identity, "training plan", id, s.plans.GetByID, planOwner)
	if err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		return writeError(err)
	}
	s.logger.Info("training plan deleted",
		zap.Int64("plan_id", id),
		zap.Int64("coach_id", plan.CoachID),
		zap.Int64("subject_id", identity.SubjectID))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventTrainingPlanDeleted, id, events.ActorFrom(identity), events.TrainingPlanPayload{
		CoachID: plan.CoachID,
		Title:   plan.Title,
	}))
	return nil
}

func planOwner(p *domain.TrainingPlan) int64 { return p.CoachID }

func applyPlanInput(plan *domain.TrainingPlan, input TrainingPlanInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return apperrors.NewValidationError("title must not be empty", nil)
		}
		plan.Title = title
	}
	if input.Description != nil {
		plan.Description = strings.TrimSpace(*input.Description)
	}
	if input.StartsOn != nil {
		plan.StartsOn = dateOnly(*input.StartsOn)
	}
	if input.EndsOn != nil {
		plan.EndsOn = dateOnly(*input.EndsOn)
	}
	if plan.StartsOn != nil && plan.EndsOn != nil && plan.EndsOn.Before(*plan.StartsOn) {
		return apperrors.NewValidationError("ends_on must not precede starts_on", nil)
	}
	return nil
}

func dateOnly(t time.Time) *time.Time {
	y, m, d := t.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}
