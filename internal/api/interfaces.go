// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/machine-dashboard/backend/internal/dashboard"
	"github.com/machine-dashboard/backend/internal/models"
	"github.com/machine-dashboard/backend/internal/storage"
)

// DashboardHandler serves the page and its data endpoints
type DashboardHandler interface {
	HandleDashboardPage(c echo.Context) error
	HandleOptions(c echo.Context) error
	HandleDashboard(c echo.Context) error
	HandleDashboardMsgpack(c echo.Context) error
	HandleDurationPNG(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// DashboardService defines what the handlers need from the dashboard layer
// This allows mocking in tests
type DashboardService interface {
	Render(ctx context.Context, requested models.Selection) (*dashboard.Dashboard, error)
	Options(ctx context.Context) (models.FilterOptions, error)
	DurationPNG(ctx context.Context, requested models.Selection, width, height int) ([]byte, error)
	Stats() (storage.Stats, error)
}
