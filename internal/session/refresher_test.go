package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"projectdesk/internal/auth"
	"projectdesk/internal/identity"
)

func seededRepo(t *testing.T) (*identity.MemoryRepo, identity.User) {
	t.Helper()
	repo := identity.NewMemoryRepo()
	u, err := repo.Create(context.Background(), identity.User{
		Name:         "Devon Developer",
		Email:        "dev@example.com",
		Role:         auth.RoleDeveloper,
		PasswordHash: "irrelevant",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo, u
}

func TestExchange_MintsFreshAccessToken(t *testing.T) {
	tokens := testTokens(t)
	repo, user := seededRepo(t)
	r := NewRefresher(tokens, repo)

	now := time.Unix(1700000000, 0).UTC()
	refresh, err := tokens.SignRefresh(now, user.ID)
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}

	access, got, err := r.Exchange(context.Background(), refresh, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("unexpected user: %+v", got)
	}

	claims, err := tokens.Verify(access, auth.TokenTypeAccess, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("verify minted access: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != auth.RoleDeveloper {
		t.Fatalf("minted token does not match principal: %+v", claims)
	}
}

func TestExchange_MissingToken(t *testing.T) {
	tokens := testTokens(t)
	repo, _ := seededRepo(t)
	r := NewRefresher(tokens, repo)

	if _, _, err := r.Exchange(context.Background(), "", time.Now()); !errors.Is(err, ErrRefreshMissing) {
		t.Fatalf("expected ErrRefreshMissing, got %v", err)
	}
}

func TestExchange_RejectsAccessToken(t *testing.T) {
	tokens := testTokens(t)
	repo, user := seededRepo(t)
	r := NewRefresher(tokens, repo)

	now := time.Now()
	access, err := tokens.SignAccess(now, user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := r.Exchange(context.Background(), access, now); !errors.Is(err, auth.ErrTokenTypeMismatch) {
		t.Fatalf("expected ErrTokenTypeMismatch, got %v", err)
	}
}

func TestExchange_ExpiredRefreshToken(t *testing.T) {
	tokens := testTokens(t)
	repo, user := seededRepo(t)
	r := NewRefresher(tokens, repo)

	now := time.Unix(1700000000, 0).UTC()
	refresh, err := tokens.SignRefresh(now, user.ID)
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}

	_, _, err = r.Exchange(context.Background(), refresh, now.Add(31*24*time.Hour))
	if !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestExchange_PrincipalGone(t *testing.T) {
	tokens := testTokens(t)
	repo, user := seededRepo(t)
	r := NewRefresher(tokens, repo)

	now := time.Now()
	refresh, err := tokens.SignRefresh(now, user.ID)
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}

	repo.Delete(context.Background(), user.ID)

	if _, _, err := r.Exchange(context.Background(), refresh, now); !errors.Is(err, ErrPrincipalGone) {
		t.Fatalf("expected ErrPrincipalGone, got %v", err)
	}
}

func TestExchange_IsRepeatable(t *testing.T) {
	tokens := testTokens(t)
	repo, user := seededRepo(t)
	r := NewRefresher(tokens, repo)

	base := time.Unix(1700000000, 0).UTC()
	refresh, err := tokens.SignRefresh(base, user.ID)
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}

	// The same still-valid refresh token yields two independently valid
	// access tokens with distinct iat.
	first, _, err := r.Exchange(context.Background(), refresh, base.Add(time.Minute))
	if err != nil {
		t.Fatalf("first exchange: %v", err)
	}
	second, _, err := r.Exchange(context.Background(), refresh, base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("second exchange: %v", err)
	}

	c1, err := tokens.Verify(first, auth.TokenTypeAccess, base.Add(3*time.Minute))
	if err != nil {
		t.Fatalf("verify first: %v", err)
	}
	c2, err := tokens.Verify(second, auth.TokenTypeAccess, base.Add(3*time.Minute))
	if err != nil {
		t.Fatalf("verify second: %v", err)
	}
	if !c2.IssuedAt.After(c1.IssuedAt.Time) {
		t.Fatalf("expected distinct iat, got %v and %v", c1.IssuedAt, c2.IssuedAt)
	}
}
