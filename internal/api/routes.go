// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/machine-dashboard/backend/internal/config"
	"github.com/machine-dashboard/backend/internal/web"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Service   DashboardService
	PlotlyURL string
	PNGWidth  int
	PNGHeight int
	Version   string
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Dashboard DashboardHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version, deps.Service),
		Dashboard: NewDashboardHandler(deps.Service, deps.PlotlyURL, deps.PNGWidth, deps.PNGHeight),
	}
}

// RegisterRoutes registers the page, its assets and the API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) error {
	e.GET("/", handlers.Dashboard.HandleDashboardPage)
	if err := web.RegisterStaticRoutes(e); err != nil {
		return err
	}

	apiGroup := e.Group("/api")
	apiGroup.GET("/health", handlers.Health.HandleHealth)
	apiGroup.GET("/options", handlers.Dashboard.HandleOptions)
	apiGroup.GET("/dashboard", handlers.Dashboard.HandleDashboard)
	apiGroup.GET("/dashboard/msgpack", handlers.Dashboard.HandleDashboardMsgpack)
	apiGroup.GET("/charts/duration.png", handlers.Dashboard.HandleDurationPNG)
	return nil
}

// SetupMiddleware configures the error handler, serializer and common middleware
func SetupMiddleware(e *echo.Echo, cfg *config.AppConfig) {
	e.HTTPErrorHandler = NewErrorHandler(cfg.Advanced.DevelopmentMode)
	e.JSONSerializer = JSONSerializer{}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging if disabled in config
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/api/health" || strings.HasPrefix(path, "/static/")
		},
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			var ev *zerolog.Event
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			} else {
				ev = log.Info()
			}
			ev.Str("component", "httpreq").
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("duration", v.Latency).
				Msg("handled request")
			return nil
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error().Err(err).Bytes("stack", stack).Msg("recovered from panic")
			return err
		},
	}))

	if cfg.Advanced.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level:     cfg.Advanced.CompressionLevel,
			MinLength: 256,
			Skipper: func(c echo.Context) bool {
				return strings.HasSuffix(c.Request().URL.Path, ".png")
			},
		}))
	}

	if cfg.Server.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
}
