package missions

import (
	"errors"
	"net/http"
	"time"

	"projectdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

// HTTPHandlers exposes the mission module over gin. Reads and status
// changes are open to both roles (the service scopes them); mount the
// remaining mutations behind RequireRole(PROJECT_MANAGER).
type HTTPHandlers struct {
	Svc *Service
}

type createPayload struct {
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assignee_id"`
	Due         *time.Time `json:"due"`
}

func (h HTTPHandlers) Create(c *gin.Context) {
	actorID, err := auth.UserIDFromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	m, err := h.Svc.Create(c.Request.Context(), actorID, CreateInput{
		ProjectID: req.ProjectID, Title: req.Title, Description: req.Description,
		AssigneeID: req.AssigneeID, Due: req.Due,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h HTTPHandlers) Get(c *gin.Context) {
	actor, err := auth.IdentityFromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	m, err := h.Svc.Get(c.Request.Context(), actor, c.Param("mission_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h HTTPHandlers) List(c *gin.Context) {
	actor, err := auth.IdentityFromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	out, err := h.Svc.List(c.Request.Context(), actor)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"missions": out})
}

type updatePayload struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	AssigneeID  *string     `json:"assignee_id"`
	Due         **time.Time `json:"due"`
}

func (h HTTPHandlers) Update(c *gin.Context) {
	var req updatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	m, err := h.Svc.Update(c.Request.Context(), c.Param("mission_id"), UpdateInput{
		Title: req.Title, Description: req.Description, AssigneeID: req.AssigneeID, Due: req.Due,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type statusPayload struct {
	Status Status `json:"status"`
}

func (h HTTPHandlers) UpdateStatus(c *gin.Context) {
	actor, err := auth.IdentityFromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req statusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	m, err := h.Svc.UpdateStatus(c.Request.Context(), actor, c.Param("mission_id"), req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h HTTPHandlers) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("mission_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "mission deleted"})
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "mission not found"})
	case errors.Is(err, ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid argument"})
	case errors.Is(err, ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
