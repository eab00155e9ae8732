package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Role names. Keep these stable; they are part of the token contract.
const (
	RoleDeveloper      = "DEVELOPER"
	RoleProjectManager = "PROJECT_MANAGER"
)

func ValidRole(role string) bool {
	switch role {
	case RoleDeveloper, RoleProjectManager:
		return true
	default:
		return false
	}
}

// RequireRole allows access if the caller's verified role is one of the
// provided roles. It assumes RequireAccessToken already ran in the chain.
func RequireRole(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, err := RoleFromContext(c.Request.Context())
		if err != nil || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
