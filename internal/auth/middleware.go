package auth

import (
	"net/http"
	"strings"
	"time"

	"projectdesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RoleCookieName is the non-authoritative role marker mirrored next to the
// refresh token. The token's role claim is authoritative; the cookie exists
// only to detect drift between a stale client session and a newer login.
const RoleCookieName = "user_role"

// DriftHandler is invoked when the role marker cookie disagrees with the
// verified token, receiving the identity the token proved. It should clear
// session cookies (and record the event) so the client re-logs in.
type DriftHandler func(c *gin.Context, id Identity)

// RequireAccessToken verifies an access token and injects identity into the
// request context. Refresh tokens are rejected here unconditionally; the
// gate must never authorize a resource request with one.
//
// Failure semantics: missing/invalid/expired tokens and wrong variants all
// produce the same generic 401. Role-marker drift also yields 401 but is
// tagged so the client performs a full logout instead of a plain retry.
func RequireAccessToken(m *Manager, onDrift DriftHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		claims, err := m.Verify(tok, TokenTypeAccess, time.Now())
		if err != nil {
			// The precise reason stays in server logs only.
			logger.FromGin(c).Warn("access token rejected", "reason", err.Error(), "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// Role marker drift is a security-relevant inconsistency: another
		// login may have superseded this session under a different role.
		if marker, err := c.Cookie(RoleCookieName); err == nil && marker != "" && marker != claims.Role {
			logger.FromGin(c).Warn("role marker drift",
				"user_id", claims.UserID,
				"token_role", claims.Role,
				"marker_role", marker,
			)
			if onDrift != nil {
				onDrift(c, Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role})
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":  "invalid or expired token",
				"reason": "session_invalidated",
			})
			return
		}

		ctx := WithIdentity(c.Request.Context(), Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		c.Request = c.Request.WithContext(ctx)

		// Also store on gin context for handler convenience.
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
