package session

import (
	"time"

	"projectdesk/internal/auth"
	"projectdesk/internal/config"
	"projectdesk/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Issuer mints a token pair for a verified principal and decides cookie
// placement:
//
//   - refresh_token: HttpOnly, SameSite=Lax, 30d, path-scoped to /auth
//   - user_role:     HttpOnly, SameSite=Lax, 30d, path / (gate reads it everywhere)
//   - auth_probe:    HttpOnly, SameSite=Lax, access-token lifetime, /auth only
//
// The access token itself is returned in the body, never as an HttpOnly
// cookie: the client has to read it and attach it as a bearer header.
//
// Only one refresh token is live per login; a fresh login overwrites the
// cookie. There is no multi-device revocation list.
type Issuer struct {
	tokens  *auth.Manager
	cookies config.CookieConfig
}

func NewIssuer(tokens *auth.Manager, cookies config.CookieConfig) *Issuer {
	return &Issuer{tokens: tokens, cookies: cookies}
}

// Session is what the client persists after login.
type Session struct {
	AccessToken string
	// SessionID is random per login; a new login invalidates prior
	// cross-tab session identity.
	SessionID string
}

func (i *Issuer) Issue(c *gin.Context, now time.Time, user identity.User) (Session, error) {
	pair, err := i.tokens.IssuePair(now, user.ID, user.Email, user.Role)
	if err != nil {
		return Session{}, err
	}

	refreshMaxAge := int(i.tokens.RefreshTTL() / time.Second)
	accessMaxAge := int(i.tokens.AccessTTL() / time.Second)

	setCookie(c, CookieRefreshToken, pair.RefreshToken, refreshMaxAge, i.cookies.Path, i.cookies.Domain, i.cookies.Secure)
	setCookie(c, CookieUserRole, user.Role, refreshMaxAge, "/", i.cookies.Domain, i.cookies.Secure)
	setCookie(c, CookieAuthProbe, pair.AccessToken, accessMaxAge, i.cookies.Path, i.cookies.Domain, i.cookies.Secure)

	return Session{
		AccessToken: pair.AccessToken,
		SessionID:   uuid.NewString(),
	}, nil
}

// SetProbeCookie rewrites auth_probe after a refresh so /auth/verify keeps
// working once the original access token expires.
func (i *Issuer) SetProbeCookie(c *gin.Context, accessToken string) {
	accessMaxAge := int(i.tokens.AccessTTL() / time.Second)
	setCookie(c, CookieAuthProbe, accessToken, accessMaxAge, i.cookies.Path, i.cookies.Domain, i.cookies.Secure)
}

// ClearCookies expires every session cookie. Used by logout and by the
// forced-logout path when the gate detects role drift.
func (i *Issuer) ClearCookies(c *gin.Context) {
	setCookie(c, CookieRefreshToken, "", -1, i.cookies.Path, i.cookies.Domain, i.cookies.Secure)
	setCookie(c, CookieUserRole, "", -1, "/", i.cookies.Domain, i.cookies.Secure)
	setCookie(c, CookieAuthProbe, "", -1, i.cookies.Path, i.cookies.Domain, i.cookies.Secure)
}
