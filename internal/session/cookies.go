package session

import (
	"net/http"

	"projectdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

// Cookie names. Keep these stable; clients and the gate depend on them.
const (
	// CookieRefreshToken carries the long-lived refresh token. HttpOnly and
	// path-scoped to /auth: it never travels to resource endpoints and never
	// travels in headers.
	CookieRefreshToken = "refresh_token"

	// CookieUserRole mirrors the token's role claim for drift detection.
	// Not authoritative. Scoped to / so the gate sees it on every request.
	CookieUserRole = auth.RoleCookieName

	// CookieAuthProbe is a short-lived copy of the access token backing
	// GET /auth/verify for flows that cannot attach an Authorization header.
	CookieAuthProbe = "auth_probe"
)

func setCookie(c *gin.Context, name, value string, maxAge int, path, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, path, domain, secure, true)
}
