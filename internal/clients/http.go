package clients

import (
	"errors"
	"net/http"

	"projectdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

// HTTPHandlers exposes the client module over gin. Mount behind the access
// gate plus RequireRole(PROJECT_MANAGER).
type HTTPHandlers struct {
	Svc *Service
}

type clientPayload struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

func (h HTTPHandlers) Create(c *gin.Context) {
	actorID, err := auth.UserIDFromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req clientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), actorID, CreateInput{
		Name: req.Name, Company: req.Company, Email: req.Email, Phone: req.Phone, Notes: req.Notes,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h HTTPHandlers) Get(c *gin.Context) {
	out, err := h.Svc.Get(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h HTTPHandlers) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": out})
}

type clientUpdatePayload struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

func (h HTTPHandlers) Update(c *gin.Context) {
	var req clientUpdatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	out, err := h.Svc.Update(c.Request.Context(), c.Param("client_id"), UpdateInput{
		Name: req.Name, Company: req.Company, Email: req.Email, Phone: req.Phone, Notes: req.Notes,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h HTTPHandlers) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("client_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "client not found"})
	case errors.Is(err, ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid argument"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
