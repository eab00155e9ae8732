package main

import (
	"projectdesk/internal/auth"
	"projectdesk/internal/clients"
	"projectdesk/internal/httpapi"
	"projectdesk/internal/missions"
	"projectdesk/internal/projects"

	"github.com/gin-gonic/gin"
)

type appDeps struct {
	tokens *auth.Manager

	auth     httpapi.Handlers
	clients  clients.HTTPHandlers
	projects projects.HTTPHandlers
	missions missions.HTTPHandlers
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, d appDeps) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Authentication endpoints stay outside the gate: a token must never be
	// required to obtain a token.
	ag := r.Group("/auth")
	{
		ag.POST("/login", d.auth.Login)
		ag.POST("/signup", d.auth.Signup)
		ag.POST("/refresh", d.auth.Refresh)
		ag.POST("/logout", d.auth.Logout)
		ag.GET("/verify", d.auth.Verify)
	}

	// Role drift inside the gate forces a full logout: cookies cleared,
	// audit event recorded, session event published.
	gate := auth.RequireAccessToken(d.tokens, d.auth.ForcedLogout)
	pmOnly := auth.RequireRole(auth.RoleProjectManager)

	v1 := r.Group("/v1")
	v1.Use(gate)
	{
		v1.GET("/me", d.auth.Me)
		v1.GET("/users", pmOnly, d.auth.ListUsers)

		cl := v1.Group("/clients")
		cl.Use(pmOnly)
		{
			cl.POST("", d.clients.Create)
			cl.GET("", d.clients.List)
			cl.GET("/:client_id", d.clients.Get)
			cl.PUT("/:client_id", d.clients.Update)
			cl.DELETE("/:client_id", d.clients.Delete)
		}

		// Projects: both roles read (the service scopes what a developer
		// sees), only PMs mutate.
		pr := v1.Group("/projects")
		{
			pr.GET("", d.projects.List)
			pr.GET("/:project_id", d.projects.Get)
			pr.POST("", pmOnly, d.projects.Create)
			pr.PUT("/:project_id", pmOnly, d.projects.Update)
			pr.DELETE("/:project_id", pmOnly, d.projects.Delete)
		}

		// Missions: as projects, except status moves are open to the
		// assignee as well.
		mi := v1.Group("/missions")
		{
			mi.GET("", d.missions.List)
			mi.GET("/:mission_id", d.missions.Get)
			mi.PATCH("/:mission_id/status", d.missions.UpdateStatus)
			mi.POST("", pmOnly, d.missions.Create)
			mi.PUT("/:mission_id", pmOnly, d.missions.Update)
			mi.DELETE("/:mission_id", pmOnly, d.missions.Delete)
		}
	}
}
