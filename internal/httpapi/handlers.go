package httpapi

import (
	"errors"
	"net/http"
	"time"

	"projectdesk/internal/audit"
	"projectdesk/internal/auth"
	"projectdesk/internal/identity"
	"projectdesk/internal/ratelimit"
	"projectdesk/internal/session"
	"projectdesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// headerSessionID lets clients tie session-mutating calls to their local
// session id for the cross-tab event bus.
const headerSessionID = "X-Session-Id"

// Handlers groups the auth HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
//
// Error policy: every token/credential failure maps to a generic body; the
// specific reason is logged server-side only.
type Handlers struct {
	Tokens    *auth.Manager
	Users     identity.Repository
	Verifier  *identity.Verifier
	Sessions  *session.Issuer
	Refresher *session.Refresher

	// Optional collaborators; nil disables the concern.
	Audit        *audit.Service
	LoginLimiter *ratelimit.Limiter
	Bus          *session.EventBus
}

/* ===================== LOGIN ===================== */

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()

	if h.LoginLimiter != nil {
		ok, err := h.LoginLimiter.Allow(ctx, identity.NormalizeEmail(req.Email)+"|"+ip)
		if err != nil {
			// Limiter outage must not take logins down with it.
			logger.FromGin(c).Warn("login limiter unavailable", "err", err)
		} else if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
			return
		}
	}

	user, err := h.Verifier.Verify(ctx, req.Email, req.Password)
	if err != nil {
		h.recordLogin(c, false, req.Email, identity.User{}, "")
		// Identical body for unknown email and wrong password.
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	sess, err := h.Sessions.Issue(c, time.Now(), user)
	if err != nil {
		logger.FromGin(c).Error("token issuance failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.recordLogin(c, true, req.Email, user, sess.SessionID)
	h.publish(c, sess.SessionID)

	c.JSON(http.StatusOK, gin.H{
		"accessToken": sess.AccessToken,
		"sessionId":   sess.SessionID,
		"user":        user.Public(),
	})
}

/* ===================== SIGNUP ===================== */

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,strongpw"`
	Role     string `json:"role" validate:"omitempty,oneof=DEVELOPER PROJECT_MANAGER"`
}

func (h Handlers) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}
	if req.Role == "" {
		req.Role = auth.RoleDeveloper
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		logger.FromGin(c).Error("password hash failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	user, err := h.Users.Create(c.Request.Context(), identity.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		logger.FromGin(c).Error("user create failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	sess, err := h.Sessions.Issue(c, time.Now(), user)
	if err != nil {
		logger.FromGin(c).Error("token issuance failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.recordSession(c, audit.EventTypeSignup, user, sess.SessionID, "account created")
	h.publish(c, sess.SessionID)

	c.JSON(http.StatusCreated, gin.H{
		"token":     sess.AccessToken,
		"sessionId": sess.SessionID,
		"user":      user.Public(),
	})
}

/* ===================== REFRESH ===================== */

// Refresh reads the refresh token from its cookie; refresh tokens never
// travel in headers.
func (h Handlers) Refresh(c *gin.Context) {
	raw, err := c.Cookie(session.CookieRefreshToken)
	if err != nil || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	access, user, err := h.Refresher.Exchange(c.Request.Context(), raw, time.Now())
	if err != nil {
		logger.FromGin(c).Warn("refresh rejected", "reason", err.Error())
		if errors.Is(err, session.ErrPrincipalGone) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	h.Sessions.SetProbeCookie(c, access)
	h.recordSession(c, audit.EventTypeRefresh, user, c.GetHeader(headerSessionID), "access token renewed")

	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

/* ===================== LOGOUT / VERIFY / ME ===================== */

// ForcedLogout is the gate's drift handler: role-marker drift means this
// session was superseded, so the cookies are cleared and the forced logout
// lands in the audit trail and on the session event bus.
func (h Handlers) ForcedLogout(c *gin.Context, id auth.Identity) {
	h.Sessions.ClearCookies(c)
	sessionID := c.GetHeader(headerSessionID)
	h.recordSession(c, audit.EventTypeForcedLogout,
		identity.User{ID: id.UserID, Role: id.Role}, sessionID, "role marker drift")
	h.publish(c, sessionID)
}

func (h Handlers) Logout(c *gin.Context) {
	h.Sessions.ClearCookies(c)
	sessionID := c.GetHeader(headerSessionID)
	h.recordSession(c, audit.EventTypeLogout, identity.User{}, sessionID, "logout")
	h.publish(c, sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Verify authenticates via the short-lived auth_probe cookie for flows that
// cannot attach an Authorization header.
func (h Handlers) Verify(c *gin.Context) {
	raw, err := c.Cookie(session.CookieAuthProbe)
	if err != nil || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	claims, err := h.Tokens.Verify(raw, auth.TokenTypeAccess, time.Now())
	if err != nil {
		logger.FromGin(c).Warn("verify probe rejected", "reason", err.Error())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId": claims.UserID,
		"email":  claims.Email,
		"role":   claims.Role,
	})
}

// Me echoes the identity the gate injected.
func (h Handlers) Me(c *gin.Context) {
	id, err := auth.IdentityFromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.UserID, "email": id.Email, "role": id.Role})
}

// ListUsers backs the PM's assignment pickers.
func (h Handlers) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("user list failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]identity.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

/* ===================== helpers ===================== */

func (h Handlers) recordLogin(c *gin.Context, success bool, email string, user identity.User, sessionID string) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.LogLogin(c.Request.Context(), success, identity.NormalizeEmail(email), user.ID, user.Role, c.ClientIP(), sessionID); err != nil {
		logger.FromGin(c).Warn("audit append failed", "err", err)
	}
}

func (h Handlers) recordSession(c *gin.Context, t audit.EventType, user identity.User, sessionID, msg string) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.LogSession(c.Request.Context(), t, user.ID, user.Role, c.ClientIP(), sessionID, msg); err != nil {
		logger.FromGin(c).Warn("audit append failed", "err", err)
	}
}

func (h Handlers) publish(c *gin.Context, sessionID string) {
	if h.Bus == nil || sessionID == "" {
		return
	}
	if err := h.Bus.Publish(c.Request.Context(), sessionID, time.Now()); err != nil {
		logger.FromGin(c).Warn("session event publish failed", "err", err)
	}
}
