package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/academyhq/academy-service/internal/domain"
	apperrors "github.com/academyhq/academy-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

type identityCtxKey struct{}

// ErrForbidden is returned when an authenticated identity lacks a permitted role.
var ErrForbidden = errors.New("forbidden")

// AuthMiddleware validates bearer tokens and gates handlers by role.
type AuthMiddleware struct {
	extractor *Extractor
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(extractor *Extractor) *AuthMiddleware {
	return &AuthMiddleware{extractor: extractor}
}

// Authorize is the single admission decision shared by every guard. An empty allowed
// set admits any authenticated identity.
func (m *AuthMiddleware) Authorize(headers HeaderReader, allowed domain.RoleSet) (domain.Identity, error) {
	identity, err := m.extractor.Extract(headers)
	if err != nil {
		return domain.Identity{}, ErrUnauthenticated
	}
	if !allowed.Empty() && !allowed.Contains(identity.Role) {
		return identity, ErrForbidden
	}
	return identity, nil
}

// Require admits callers authenticated with one of roles, or any role when none given.
func (m *AuthMiddleware) Require(roles ...domain.Role) fiber.Handler {
	allowed := domain.NewRoleSet(roles...)

	return func(c *fiber.Ctx) error {
		identity, err := m.Authorize(FiberHeaders{Ctx: c}, allowed)
		if err != nil {
			return guardError(err)
		}
		c.Locals(identityKey, identity)
		c.SetUserContext(WithIdentity(c.UserContext(), identity))
		return c.Next()
	}
}

// RequireHTTP is Require for net/http handlers.
func (m *AuthMiddleware) RequireHTTP(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := domain.NewRoleSet(roles...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := m.Authorize(HTTPHeaders(r.Header), allowed)
			if err != nil {
				writeHTTPError(w, apperrors.ToDomainError(guardError(err)))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// IdentityFromContext retrieves the identity attached by a guard.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

// WithIdentity attaches identity to ctx.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFromStdContext retrieves an identity attached with WithIdentity.
func IdentityFromStdContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return identity, ok
}

func guardError(err error) error {
	if errors.Is(err, ErrForbidden) {
		return apperrors.NewForbidden("insufficient role")
	}
	return apperrors.NewUnauthorized("authentication required")
}

func writeHTTPError(w http.ResponseWriter, domainErr *apperrors.DomainError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(domainErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}})
}
