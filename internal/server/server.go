package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Downforcedemon/MinimalHome/internal/config"
	"github.com/Downforcedemon/MinimalHome/internal/domain"
	apperrors "github.com/Downforcedemon/MinimalHome/internal/errors"
	"github.com/Downforcedemon/MinimalHome/internal/logging"
)

type Server struct {
	echo       *echo.Echo
	config     *config.Config
	tracker    domain.SessionTrackerService
	registry   domain.CategoryRegistryService
	aggregator domain.UsageAggregatorService
	limits     domain.LimitService
	startTime  time.Time

	postgresHealthCheck postgresHealthChecker
	redisHealthCheck    redisHealthChecker
}

// NewServer wires the HTTP layer. redisHealth may be nil when the cache is
// disabled; readiness then checks PostgreSQL only.
func NewServer(
	cfg *config.Config,
	tracker domain.SessionTrackerService,
	registry domain.CategoryRegistryService,
	aggregator domain.UsageAggregatorService,
	limits domain.LimitService,
	postgresHealth postgresHealthChecker,
	redisHealth redisHealthChecker,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware())
	e.Use(newRequestLimiter(cfg).Middleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:                e,
		config:              cfg,
		tracker:             tracker,
		registry:            registry,
		aggregator:          aggregator,
		limits:              limits,
		startTime:           time.Now(),
		postgresHealthCheck: postgresHealth,
		redisHealthCheck:    redisHealth,
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// correlationMiddleware tags every request context with a correlation ID so
// all log lines of one request can be tied together.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			correlationID := c.Request().Header.Get(echo.HeaderXRequestID)
			if correlationID == "" {
				correlationID = logging.NewCorrelationID()
			}

			ctx := logging.WithCorrelationID(c.Request().Context(), correlationID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, correlationID)

			return next(c)
		}
	}
}
