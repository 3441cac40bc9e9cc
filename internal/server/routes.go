package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api/screentime")

	// Session tracking
	api.POST("/start", s.handleStartSession)
	api.POST("/stop", s.handleStopSession)
	api.GET("/active", s.handleActiveSessions)
	api.GET("/history", s.handleSessionHistory)

	// Usage views
	api.GET("/daily", s.handleDailyUsage)
	api.GET("/weekly", s.handleWeeklyStats)
	api.GET("/apps/top", s.handleMostUsedApps)
	api.GET("/digest", s.handleDailyDigest)

	// Categories and assignments
	api.POST("/categories", s.handleCreateCategory)
	api.GET("/categories", s.handleSearchCategories)
	api.POST("/categories/:id/apps", s.handleAssignApp)
	api.DELETE("/categories/:id/apps/:app", s.handleUnassignApp)
	api.GET("/categories/:id/apps", s.handleAppsInCategory)
	api.GET("/apps/:app/category", s.handleCategoryForApp)

	// Limits
	api.POST("/limits", s.handleSetLimit)
	api.GET("/limits", s.handleListLimits)
	api.GET("/limits/check", s.handleLimitCheck)
}
