package server

import (
	"github.com/OFFIS-RIT/plotline/internal/server/middleware"
	"github.com/OFFIS-RIT/plotline/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Stateless analysis
	apiRoutes.POST("/analyze", routes.AnalyzeHandler, middleware.RequirePermission(middleware.PermissionAnalyze))

	// Session routes
	apiRoutes.POST("/sessions", routes.CreateSessionHandler, middleware.RequirePermission(middleware.PermissionSessions))
	apiRoutes.GET("/sessions/:id", routes.GetSessionHandler, middleware.RequirePermission(middleware.PermissionSessions))
	apiRoutes.POST("/sessions/:id/analyze", routes.SubmitSessionHandler, middleware.RequirePermission(middleware.PermissionSessions))
	apiRoutes.DELETE("/sessions/:id", routes.DeleteSessionHandler, middleware.RequirePermission(middleware.PermissionSessions))

	// Background jobs
	apiRoutes.POST("/jobs", routes.EnqueueJobHandler, middleware.RequirePermission(middleware.PermissionEnqueue))
}
