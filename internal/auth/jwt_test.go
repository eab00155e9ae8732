package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"projectdesk/internal/config"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		JWTIssuer:       "projectdesk",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(config.AuthConfig{}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	m := testManager(t)

	now := time.Unix(1700000000, 0).UTC()
	pair, err := m.IssuePair(now, "user-1", "pm@example.com", RoleProjectManager)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token strings")
	}

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(1*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "pm@example.com" || claims.Role != RoleProjectManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// exp - iat must equal the configured lifetime to the second.
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 15*time.Minute {
		t.Fatalf("expected 15m lifetime, got %v", lifetime)
	}
}

func TestVerifyRefreshTokenCarriesOnlyUserID(t *testing.T) {
	m := testManager(t)
	now := time.Now()

	pair, err := m.IssuePair(now, "user-1", "dev@example.com", RoleDeveloper)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Verify(pair.RefreshToken, TokenTypeRefresh, now)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected user_id: %q", claims.UserID)
	}
	if claims.Email != "" || claims.Role != "" {
		t.Fatalf("refresh token must not carry email/role: %+v", claims)
	}
}

func TestVerifyExpiryIsExact(t *testing.T) {
	m := testManager(t)
	now := time.Unix(1700000000, 0).UTC()

	tok, err := m.SignAccess(now, "user-1", "dev@example.com", RoleDeveloper)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Verify(tok, TokenTypeAccess, now.Add(14*time.Minute+59*time.Second)); err != nil {
		t.Fatalf("expected valid at t+14m59s, got %v", err)
	}
	if _, err := m.Verify(tok, TokenTypeAccess, now.Add(15*time.Minute+1*time.Second)); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at t+15m01s, got %v", err)
	}
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	m := testManager(t)
	now := time.Now()
	pair, err := m.IssuePair(now, "u1", "dev@example.com", RoleDeveloper)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.Verify(pair.RefreshToken, TokenTypeAccess, now); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Fatalf("expected ErrTokenTypeMismatch, got %v", err)
	}
	if _, err := m.Verify(pair.AccessToken, TokenTypeRefresh, now); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Fatalf("expected ErrTokenTypeMismatch, got %v", err)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	m := testManager(t)
	now := time.Now()
	tok, err := m.SignAccess(now, "u1", "dev@example.com", RoleDeveloper)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Flip one character in the signature segment.
	i := strings.LastIndex(tok, ".") + 1
	flipped := byte('A')
	if tok[i] == 'A' {
		flipped = 'B'
	}
	tampered := tok[:i] + string(flipped) + tok[i+1:]

	if _, err := m.Verify(tampered, TokenTypeAccess, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerifyStripsBearerPrefix(t *testing.T) {
	m := testManager(t)
	now := time.Now()
	tok, err := m.SignAccess(now, "u1", "dev@example.com", RoleDeveloper)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Verify("Bearer "+tok, TokenTypeAccess, now); err != nil {
		t.Fatalf("expected bearer prefix to be stripped, got %v", err)
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	m := testManager(t)
	if _, err := m.Verify("", TokenTypeAccess, time.Now()); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
	if _, err := m.Verify("Bearer ", TokenTypeAccess, time.Now()); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestSignAccessRequiresAllFields(t *testing.T) {
	m := testManager(t)
	now := time.Now()

	cases := [][3]string{
		{"", "dev@example.com", RoleDeveloper},
		{"u1", "", RoleDeveloper},
		{"u1", "dev@example.com", ""},
		{"u1", "dev@example.com", "INTERN"},
	}
	for _, tc := range cases {
		if _, err := m.SignAccess(now, tc[0], tc[1], tc[2]); !errors.Is(err, ErrInvalidClaims) {
			t.Fatalf("expected ErrInvalidClaims for %v, got %v", tc, err)
		}
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	// Forge a token through a second manager whose claims bypass SignAccess
	// validation by signing a refresh-shaped claim set with a role.
	m := testManager(t)
	now := time.Now()

	tok, err := m.sign(now, Claims{
		UserID:    "u1",
		Email:     "dev@example.com",
		Role:      "SUPERUSER",
		TokenType: TokenTypeAccess,
	}, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Verify(tok, TokenTypeAccess, now); !errors.Is(err, ErrRoleInvalid) {
		t.Fatalf("expected ErrRoleInvalid, got %v", err)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	m := testManager(t)
	other, err := NewManager(config.AuthConfig{
		JWTSecret:       "other-secret",
		JWTIssuer:       "projectdesk",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	now := time.Now()
	tok, err := other.SignAccess(now, "u1", "dev@example.com", RoleDeveloper)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Verify(tok, TokenTypeAccess, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}
