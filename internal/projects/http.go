package projects

import (
	"errors"
	"net/http"

	"projectdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

// HTTPHandlers exposes the project module over gin. Reads are available to
// both roles (the service filters); mount mutations behind
// RequireRole(PROJECT_MANAGER).
type HTTPHandlers struct {
	Svc *Service
}

type createPayload struct {
	ClientID     string   `json:"client_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	DeveloperIDs []string `json:"developer_ids"`
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

	p, err := h.Svc.Create(c.Request.Context(), actorID, CreateInput{
		ClientID: req.ClientID, Name: req.Name, Description: req.Description, DeveloperIDs: req.DeveloperIDs,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h HTTPHandlers) Get(c *gin.Context) {
	actor, err := auth.IdentityFromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), actor, c.Param("project_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
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
	c.JSON(http.StatusOK, gin.H{"projects": out})
}

type updatePayload struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Status       *Status   `json:"status"`
	DeveloperIDs *[]string `json:"developer_ids"`
}

func (h HTTPHandlers) Update(c *gin.Context) {
	var req updatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p, err := h.Svc.Update(c.Request.Context(), c.Param("project_id"), UpdateInput{
		Name: req.Name, Description: req.Description, Status: req.Status, DeveloperIDs: req.DeveloperIDs,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h HTTPHandlers) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("project_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.Is(err, ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid argument"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
