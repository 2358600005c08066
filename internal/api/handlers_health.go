// handlers_health.go - Health check handlers
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/machine-dashboard/backend/internal/storage"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version string
	service DashboardService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, service DashboardService) HealthHandler {
	return &HealthHandlerImpl{
		version: version,
		service: service,
	}
}

// HandleHealth returns server health status and what is loaded
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	stats, err := h.service.Stats()
	if errors.Is(err, storage.ErrNotLoaded) {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unavailable",
			"version": h.version,
		})
	}
	if err != nil {
		return serviceError("failed to read store stats", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"version":     h.version,
		"rows":        stats.Rows,
		"parseErrors": len(stats.ParseErrors),
		"source":      stats.SourcePath,
	})
}
