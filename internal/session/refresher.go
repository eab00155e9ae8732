package session

import (
	"context"
	"errors"
	"time"

	"projectdesk/internal/auth"
	"projectdesk/internal/identity"
)

var (
	ErrRefreshMissing = errors.New("refresh token missing")

	// ErrPrincipalGone means the refresh token is valid but its subject no
	// longer resolves to a user record.
	ErrPrincipalGone = errors.New("principal no longer exists")
)

// UserResolver is the single point lookup the refresh path needs.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (identity.User, error)
}

// Refresher exchanges a valid refresh token for a new access token.
//
// The refresh token is NOT rotated: one token is reused for its full
// lifetime. Known limitation: without a server-side revocation list a
// stolen refresh token stays valid until expiry even after logout.
type Refresher struct {
	tokens *auth.Manager
	users  UserResolver
}

func NewRefresher(tokens *auth.Manager, users UserResolver) *Refresher {
	return &Refresher{tokens: tokens, users: users}
}

// Exchange verifies rawRefresh as a refresh-variant token, re-resolves the
// subject and mints a fresh access token carrying the user's current
// email and role.
func (r *Refresher) Exchange(ctx context.Context, rawRefresh string, now time.Time) (string, identity.User, error) {
	if rawRefresh == "" {
		return "", identity.User{}, ErrRefreshMissing
	}

	claims, err := r.tokens.Verify(rawRefresh, auth.TokenTypeRefresh, now)
	if err != nil {
		return "", identity.User{}, err
	}

	user, err := r.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return "", identity.User{}, ErrPrincipalGone
		}
		return "", identity.User{}, err
	}

	access, err := r.tokens.SignAccess(now, user.ID, user.Email, user.Role)
	if err != nil {
		return "", identity.User{}, err
	}
	return access, user, nil
}
