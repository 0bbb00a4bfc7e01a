package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/academyhq/academy-service/internal/domain"
)

// AuthorizationHeader carries the bearer credential.
const AuthorizationHeader = "Authorization"

const bearerScheme = "Bearer"

// ErrUnauthenticated is returned for any missing or unverifiable credential. Callers
// never learn which of the two it was.
var ErrUnauthenticated = errors.New("unauthenticated")

// HeaderReader reads a single request header by name.
type HeaderReader interface {
	Header(name string) string
}

// FiberHeaders reads headers from a fiber request context.
type FiberHeaders struct {
	Ctx *fiber.Ctx
}

// Header implements HeaderReader.
func (f FiberHeaders) Header(name string) string {
	if f.Ctx == nil {
		return ""
	}
	return f.Ctx.Get(name)
}

// HTTPHeaders reads headers from a net/http header map.
type HTTPHeaders http.Header

// Header implements HeaderReader.
func (h HTTPHeaders) Header(name string) string {
	return http.Header(h).Get(name)
}

// Extractor turns request headers into a verified identity.
type Extractor struct {
	tokens *TokenManager
}

// NewExtractor constructs an extractor over the given codec.
func NewExtractor(tokens *TokenManager) *Extractor {
	return &Extractor{tokens: tokens}
}

// Extract returns the identity asserted by the request's bearer credential.
func (e *Extractor) Extract(headers HeaderReader) (domain.Identity, error) {
	token, ok := bearerToken(headers.Header(AuthorizationHeader))
	if !ok {
		return domain.Identity{}, ErrUnauthenticated
	}
	identity, err := e.tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, ErrUnauthenticated
	}
	return identity, nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
