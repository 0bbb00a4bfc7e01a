package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/events"
	"github.com/academyhq/academy-service/internal/repository"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

// AcademyService manages academies and player enrollment.
type AcademyService struct {
	academies  repository.AcademyRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AcademyDependencies bundles repositories for the academy service.
type AcademyDependencies struct {
	AcademyRepo repository.AcademyRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// EnrollInput describes a player enrollment.
type EnrollInput struct {
	UserID   int64
	Position *string
}

// NewAcademyService constructs the service.
func NewAcademyService(deps AcademyDependencies) *AcademyService {
	return &AcademyService{
		academies:  deps.AcademyRepo,
		users:      deps.UserRepo,
		dispatcher: dispatcherOrDiscard(deps.Dispatcher),
		logger:     loggerOrNop(deps.Logger),
	}
}

// Create registers an academy owned by the caller.
func (s *AcademyService) Create(ctx context.Context, identity domain.Identity, name string) (*domain.Academy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	academy := &domain.Academy{Name: name, OwnerID: identity.SubjectID}
	if err := s.academies.Create(ctx, academy); err != nil {
		return nil, writeError(err)
	}
	s.publish(ctx, events.New(events.EventAcademyCreated, academy.ID, events.ActorFrom(identity), nil))
	return academy, nil
}

// Get returns an academy by id.
func (s *AcademyService) Get(ctx context.Context, id int64) (*domain.Academy, error) {
	academy, err := s.academies.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError("academy", id, err)
	}
	return academy, nil
}

// EnrollPlayer adds a player account to an academy owned by the caller.
func (s *AcademyService) EnrollPlayer(ctx context.Context, identity domain.Identity, academyID int64, input EnrollInput) (*domain.Player, error) {
	academy, err := resolveOwned(ctx, identity, "academy", academyID, s.academies.GetByID,
		func(a *domain.Academy) int64 { return a.OwnerID })
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("user does not exist", map[string]any{"user_id": input.UserID})
		}
		return nil, apperrors.NewInternalError(err)
	}
	if user.Role != domain.RolePlayer {
		return nil, apperrors.NewValidationError("only player accounts can be enrolled", map[string]any{"user_id": user.ID})
	}

	player := &domain.Player{UserID: user.ID, AcademyID: academy.ID, Position: trimmedOrNil(input.Position)}
	if err := s.academies.AddPlayer(ctx, player); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("player already enrolled", map[string]any{"user_id": user.ID})
		}
		return nil, writeError(err)
	}

	s.publish(ctx, events.New(events.EventPlayerEnrolled, academy.ID, events.ActorFrom(identity), events.PlayerEnrolledPayload{
		AcademyID: academy.ID,
		PlayerID:  player.ID,
		UserID:    user.ID,
	}))
	return player, nil
}

func (s *AcademyService) publish(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.logger, event)
}
