package service

import (
	"context"
	"errors"
	"math"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/academyhq/academy-service/internal/config"
	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/events"
	"github.com/academyhq/academy-service/internal/observability"
	"github.com/academyhq/academy-service/internal/repository"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

const (
	defaultUpsertBackoff = 10 * time.Millisecond
	maxNotesLength       = 2000
)

// AttendanceService reconciles attendance observations into the store. Every write goes
// through the repository Upsert primitive.
type AttendanceService struct {
	events      repository.EventRepository
	academies   repository.AcademyRepository
	records     repository.AttendanceRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	metrics     *observability.Metrics
	maxAttempts int
	concurrency int
	maxBatch    int
	backoff     time.Duration
}

// AttendanceDependencies bundles collaborators for the attendance service.
type AttendanceDependencies struct {
	EventRepo      repository.EventRepository
	AcademyRepo    repository.AcademyRepository
	AttendanceRepo repository.AttendanceRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	// Backoff is the base delay between conflict retries; zero uses a short default.
	Backoff time.Duration
}

// ItemResult is the outcome of one observation in a batch.
type ItemResult struct {
	Index    int
	PlayerID int64
	Outcome  string
	Record   *domain.Attendance
	Err      *apperrors.DomainError
}

// BatchResult summarizes a batch submission. Processed counts successful items.
type BatchResult struct {
	Processed int
	Failed    int
	Results   []ItemResult
}

// NewAttendanceService constructs the service.
func NewAttendanceService(cfg config.AttendanceConfig, deps AttendanceDependencies) *AttendanceService {
	s := &AttendanceService{
		events:      deps.EventRepo,
		academies:   deps.AcademyRepo,
		records:     deps.AttendanceRepo,
		dispatcher:  dispatcherOrDiscard(deps.Dispatcher),
		logger:      loggerOrNop(deps.Logger),
		metrics:     deps.Metrics,
		maxAttempts: cfg.UpsertMaxAttempts,
		concurrency: cfg.BatchConcurrency,
		maxBatch:    cfg.MaxBatchSize,
		backoff:     deps.Backoff,
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = 1
	}
	if s.concurrency <= 0 {
		s.concurrency = 1
	}
	if s.backoff <= 0 {
		s.backoff = defaultUpsertBackoff
	}
	return s
}

// Reconcile applies one observation to the (event, player) record. The bool reports
// whether the record was created by this call.
func (s *AttendanceService) Reconcile(ctx context.Context, identity domain.Identity, eventID int64, obs domain.AttendanceObservation) (*domain.Attendance, bool, error) {
	if err := ValidateObservation(obs); err != nil {
		return nil, false, err
	}
	event, err := resolveOwned(ctx, identity, "event", eventID, s.events.GetByID, eventOwner)
	if err != nil {
		return nil, false, err
	}

	record, err := s.reconcile(ctx, identity, event, obs)
	if err != nil {
		s.metrics.RecordAttendance(observability.OutcomeFailed)
		return nil, false, err
	}
	return record, record.Created(), nil
}

// ReconcileAll applies each observation independently with bounded parallelism.
// Failures are reported per item and never roll back siblings.
func (s *AttendanceService) ReconcileAll(ctx context.Context, identity domain.Identity, eventID int64, observations []domain.AttendanceObservation) (*BatchResult, error) {
	if len(observations) == 0 {
		return nil, apperrors.NewValidationError("records must not be empty", nil)
	}
	if s.maxBatch > 0 && len(observations) > s.maxBatch {
		return nil, apperrors.NewValidationError("too many records", map[string]any{"max": s.maxBatch, "got": len(observations)})
	}
	event, err := resolveOwned(ctx, identity, "event", eventID, s.events.GetByID, eventOwner)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordBatch(len(observations))

	results := make([]ItemResult, len(observations))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, obs := range observations {
		i, obs := i, obs
		g.Go(func() error {
			results[i] = s.reconcileItem(ctx, identity, event, i, obs)
			return nil
		})
	}
	_ = g.Wait()

	batch := &BatchResult{Results: results}
	for _, r := range results {
		if r.Outcome == observability.OutcomeFailed {
			batch.Failed++
		} else {
			batch.Processed++
		}
	}
	if batch.Failed > 0 {
		s.logger.Info("attendance batch partially failed",
			zap.Int64("event_id", event.ID),
			zap.Int("processed", batch.Processed),
			zap.Int("failed", batch.Failed))
	}
	return batch, nil
}

// ListForEvent returns the attendance sheet of an existing event ordered by player.
func (s *AttendanceService) ListForEvent(ctx context.Context, eventID int64) ([]domain.Attendance, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, lookupError("event", eventID, err)
	}
	records, err := s.records.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if records == nil {
		records = []domain.Attendance{}
	}
	return records, nil
}

func (s *AttendanceService) reconcileItem(ctx context.Context, identity domain.Identity, event *domain.Event, index int, obs domain.AttendanceObservation) ItemResult {
	result := ItemResult{Index: index, PlayerID: obs.PlayerID}

	err := ValidateObservation(obs)
	if err == nil {
		result.Record, err = s.reconcile(ctx, identity, event, obs)
	}
	if err != nil {
		s.metrics.RecordAttendance(observability.OutcomeFailed)
		result.Outcome = observability.OutcomeFailed
		result.Err = apperrors.ToDomainError(err)
		return result
	}
	result.Outcome = outcomeOf(result.Record)
	return result
}

func (s *AttendanceService) reconcile(ctx context.Context, identity domain.Identity, event *domain.Event, obs domain.AttendanceObservation) (*domain.Attendance, error) {
	enrolled, err := s.academies.IsEnrolled(ctx, event.AcademyID, obs.PlayerID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !enrolled {
		return nil, apperrors.NewValidationError("player not enrolled", map[string]any{
			"player_id":  obs.PlayerID,
			"academy_id": event.AcademyID,
		})
	}

	record, err := s.upsert(ctx, event.ID, obs)
	if err != nil {
		return nil, err
	}

	outcome := outcomeOf(record)
	s.metrics.RecordAttendance(outcome)
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventAttendanceReconciled, event.ID, events.ActorFrom(identity), events.AttendanceReconciledPayload{
		PlayerID: record.PlayerID,
		Present:  record.Present,
		Created:  record.Created(),
		Revision: record.Revision,
	}))
	return record, nil
}

// upsert retries storage conflicts so they never reach the caller under normal load.
func (s *AttendanceService) upsert(ctx context.Context, eventID int64, obs domain.AttendanceObservation) (*domain.Attendance, error) {
	for attempt := 1; ; attempt++ {
		record, err := s.records.Upsert(ctx, eventID, obs)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, writeError(err)
		}
		if attempt >= s.maxAttempts {
			s.logger.Error("attendance upsert retries exhausted",
				zap.Int64("event_id", eventID),
				zap.Int64("player_id", obs.PlayerID),
				zap.Int("attempts", attempt),
				zap.Error(err))
			return nil, apperrors.NewConflict("attendance record is busy, try again", map[string]any{"player_id": obs.PlayerID})
		}

		s.metrics.RecordUpsertRetry()
		s.logger.Debug("retrying attendance upsert",
			zap.Int64("event_id", eventID),
			zap.Int64("player_id", obs.PlayerID),
			zap.Int("attempt", attempt))

		timer := time.NewTimer(time.Duration(attempt) * s.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, apperrors.NewInternalError(ctx.Err())
		case <-timer.C:
		}
	}
}

// ValidateObservation rejects malformed observations before any storage access.
func ValidateObservation(obs domain.AttendanceObservation) error {
	if obs.PlayerID <= 0 {
		return apperrors.NewValidationError("player_id must be positive", map[string]any{"player_id": obs.PlayerID})
	}
	if r := obs.PerformanceRating; r != nil {
		if math.IsNaN(*r) || math.IsInf(*r, 0) || *r < domain.MinPerformanceRating || *r > domain.MaxPerformanceRating {
			return apperrors.NewValidationError("performance_rating must be between 0 and 10", map[string]any{
				"player_id": obs.PlayerID,
			})
		}
	}
	if obs.Notes != nil && utf8.RuneCountInString(*obs.Notes) > maxNotesLength {
		return apperrors.NewValidationError("notes too long", map[string]any{"max_length": maxNotesLength})
	}
	return nil
}

func outcomeOf(record *domain.Attendance) string {
	if record.Created() {
		return observability.OutcomeCreated
	}
	return observability.OutcomeUpdated
}
