package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/academyhq/academy-service/internal/domain"
)

// DefaultTokenTTL applies when neither the manager nor the caller supplies a lifetime.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidToken covers every verification failure: malformed, bad signature, expired.
	ErrInvalidToken = errors.New("invalid token")
	errEmptySecret  = errors.New("token secret must not be empty")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes JWT payload.
type Claims struct {
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	DisplayName string      `json:"name"`
	jwt.RegisteredClaims
}

// IdentityFields are the caller-supplied parts of an identity assertion.
type IdentityFields struct {
	SubjectID   int64
	Email       string
	Role        domain.Role
	DisplayName string
}

// Issue signs an identity assertion. A non-positive ttl uses the manager default.
func (tm *TokenManager) Issue(fields IdentityFields, ttl time.Duration) (string, domain.Identity, error) {
	if fields.SubjectID <= 0 {
		return "", domain.Identity{}, errors.New("issue token: subject id must be positive")
	}
	if !fields.Role.Valid() {
		return "", domain.Identity{}, fmt.Errorf("issue token: unknown role %q", fields.Role)
	}
	if ttl <= 0 {
		ttl = tm.ttl
	}
	issuedAt := tm.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		Email:       fields.Email,
		Role:        fields.Role,
		DisplayName: fields.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(fields.SubjectID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", domain.Identity{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, domain.Identity{
		SubjectID:   fields.SubjectID,
		Email:       fields.Email,
		Role:        fields.Role,
		DisplayName: fields.DisplayName,
		IssuedAt:    issuedAt,
		ExpiresAt:   expiresAt,
	}, nil
}

// Verify validates a token and returns the identity it asserts. Every failure wraps
// ErrInvalidToken.
func (tm *TokenManager) Verify(tokenStr string) (domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.Identity{}, fmt.Errorf("%w: unexpected claims", ErrInvalidToken)
	}
	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || subjectID <= 0 {
		return domain.Identity{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	if !claims.Role.Valid() {
		return domain.Identity{}, fmt.Errorf("%w: unknown role", ErrInvalidToken)
	}

	identity := domain.Identity{
		SubjectID:   subjectID,
		Email:       claims.Email,
		Role:        claims.Role,
		DisplayName: claims.DisplayName,
		ExpiresAt:   claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return identity, nil
}

// TTL returns the default lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
