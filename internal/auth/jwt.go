package auth

import (
	"errors"
	"strings"
	"time"

	"projectdesk/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager signs and verifies the two token variants. It holds the
// process-wide signing secret for its lifetime; the secret is injected
// once at startup and never read from env here.
type Manager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	// Fail fast: an empty secret must never silently fall back to a
	// guessable default.
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.JWTIssuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

/* ===================== ISSUE TOKENS ===================== */

// IssuePair mints an access token and a refresh token for one principal.
// The refresh token carries only the user id.
func (m *Manager) IssuePair(now time.Time, userID, email, role string) (TokenPair, error) {
	access, err := m.SignAccess(now, userID, email, role)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := m.SignRefresh(now, userID)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (m *Manager) SignAccess(now time.Time, userID, email, role string) (string, error) {
	if userID == "" || email == "" || role == "" {
		return "", ErrInvalidClaims
	}
	if !ValidRole(role) {
		return "", ErrInvalidClaims
	}
	return m.sign(now, Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
	}, m.accessTTL)
}

func (m *Manager) SignRefresh(now time.Time, userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidClaims
	}
	return m.sign(now, Claims{
		UserID:    userID,
		TokenType: TokenTypeRefresh,
	}, m.refreshTTL)
}

func (m *Manager) sign(now time.Time, claims Claims, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

/* ===================== VERIFY TOKEN ===================== */

// Verify parses and validates a token against the expected variant.
//
// A leading "Bearer " prefix is stripped defensively so the codec accepts
// a raw Authorization header value. Expiry is an exact comparison against
// now; there is no grace window.
func (m *Manager) Verify(tokenString string, expected TokenType, now time.Time) (Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tokenString), "Bearer "))
	if tokenString == "" {
		return Claims{}, ErrTokenMissing
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var claims Claims
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if claims.TokenType != expected {
		return Claims{}, ErrTokenTypeMismatch
	}
	if err := claims.validatePayload(expected); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// mapParseError collapses golang-jwt errors into this package's taxonomy.
// Order matters: an expired token may also report other validation issues.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrPayloadInvalid
	default:
		return ErrPayloadInvalid
	}
}
