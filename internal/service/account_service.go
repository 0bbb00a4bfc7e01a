package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/academyhq/academy-service/internal/auth"
	"github.com/academyhq/academy-service/internal/config"
	"github.com/academyhq/academy-service/internal/domain"
	"github.com/academyhq/academy-service/internal/repository"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

const (
	invalidCredentials = "invalid credentials"
	// bcrypt ignores input past this length.
	maxPasswordBytes = 72
)

// AccountService coordinates registration, login and password changes.
type AccountService struct {
	users          repository.UserRepository
	tokens         *auth.TokenManager
	logger         *zap.Logger
	bcryptCost     int
	minPasswordLen int
}

// RegisterInput describes a sign-up request.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

// Session is the result of a successful registration or login.
type Session struct {
	User     *domain.User
	Token    string
	Identity domain.Identity
}

// NewAccountService builds the service.
func NewAccountService(cfg config.AuthConfig, users repository.UserRepository, tokens *auth.TokenManager, logger *zap.Logger) *AccountService {
	return &AccountService{
		users:          users,
		tokens:         tokens,
		logger:         logger,
		bcryptCost:     cfg.BcryptCost,
		minPasswordLen: cfg.MinPasswordLen,
	}
}

// Register creates an account and issues its first credential.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if !auth.SelfRegistrable(role) {
		return nil, apperrors.NewValidationError("role cannot be self-registered", map[string]any{"role": role})
	}
	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		return nil, apperrors.NewValidationError("display name is required", nil)
	}
	if err := s.checkPassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		DisplayName:  name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("account registered", zap.Int64("user_id", user.ID), zap.String("role", string(role)))
	return s.issue(user)
}

// Login authenticates by email and password. Unknown emails and wrong passwords fail
// identically.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	return s.issue(user)
}

// Me loads the account behind a verified identity.
func (s *AccountService) Me(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, identity.SubjectID)
	if err != nil {
		return nil, lookupError("user", identity.SubjectID, err)
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AccountService) ChangePassword(ctx context.Context, identity domain.Identity, current, next string) error {
	user, err := s.users.GetByID(ctx, identity.SubjectID)
	if err != nil {
		return lookupError("user", identity.SubjectID, err)
	}
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized(invalidCredentials)
	}
	if err := s.checkPassword(next); err != nil {
		return err
	}
	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return writeError(err)
	}
	s.logger.Info("password changed", zap.Int64("user_id", user.ID))
	return nil
}

func (s *AccountService) issue(user *domain.User) (*Session, error) {
	token, identity, err := s.tokens.Issue(auth.IdentityFields{
		SubjectID:   user.ID,
		Email:       user.Email,
		Role:        user.Role,
		DisplayName: user.DisplayName,
	}, 0)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user, Token: token, Identity: identity}, nil
}

func (s *AccountService) checkPassword(password string) error {
	if utf8.RuneCountInString(password) < s.minPasswordLen {
		return apperrors.NewValidationError("password too short", map[string]any{"min_length": s.minPasswordLen})
	}
	if len(password) > maxPasswordBytes {
		return apperrors.NewValidationError("password too long", map[string]any{"max_bytes": maxPasswordBytes})
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Name != "" {
		return "", apperrors.NewValidationError("invalid email", nil)
	}
	return strings.ToLower(addr.Address), nil
}
