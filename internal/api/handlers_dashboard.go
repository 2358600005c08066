// handlers_dashboard.go - Dashboard page, data and export handlers
package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/machine-dashboard/backend/internal/chart"
	"github.com/machine-dashboard/backend/internal/dashboard"
	"github.com/machine-dashboard/backend/internal/models"
	"github.com/machine-dashboard/backend/internal/web"
)

const (
	minPNGSize = 100
	maxPNGSize = 4096
)

// DashboardHandlerImpl implements the DashboardHandler interface
type DashboardHandlerImpl struct {
	service   DashboardService
	plotlyURL string
	pngWidth  int
	pngHeight int
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService, plotlyURL string, pngWidth, pngHeight int) DashboardHandler {
	return &DashboardHandlerImpl{
		service:   service,
		plotlyURL: plotlyURL,
		pngWidth:  pngWidth,
		pngHeight: pngHeight,
	}
}

// bindSelection reads ?machine=&state= from the query string
func bindSelection(c echo.Context) (models.Selection, error) {
	var sel models.Selection
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &sel); err != nil {
		return sel, NewBadRequestError("invalid selection", err)
	}
	return sel, nil
}

func (h *DashboardHandlerImpl) render(c echo.Context) (*dashboard.Dashboard, error) {
	sel, err := bindSelection(c)
	if err != nil {
		return nil, err
	}
	d, err := h.service.Render(c.Request().Context(), sel)
	if err != nil {
		return nil, serviceError("failed to build dashboard", err)
	}
	return d, nil
}

// HandleDashboardPage renders the HTML dashboard for the selection
func (h *DashboardHandlerImpl) HandleDashboardPage(c echo.Context) error {
	d, err := h.render(c)
	if err != nil {
		return err
	}

	page := web.Page{
		PlotlyURL: h.plotlyURL,
		Options:   d.Options,
		Selection: d.Selection,
		Rows:      d.Rows,
		Empty:     d.Empty,
		Timeline:  d.Timeline,
		Durations: d.Durations,
	}
	if n := len(lo.UniqBy(d.Stats.ParseErrors, func(e models.ParseError) int { return e.Line })); n > 0 {
		page.Warnings = append(page.Warnings, fmt.Sprintf(
			"%d row(s) have unparseable timestamps and are left out of the charts (first at line %d)",
			n, d.Stats.ParseErrors[0].Line))
	}

	var buf bytes.Buffer
	if err := web.Render(&buf, page); err != nil {
		return NewInternalError("failed to render page", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// HandleOptions returns the machines and states offered for selection
func (h *DashboardHandlerImpl) HandleOptions(c echo.Context) error {
	opts, err := h.service.Options(c.Request().Context())
	if err != nil {
		return serviceError("failed to list options", err)
	}
	return c.JSON(http.StatusOK, opts)
}

// HandleDashboard returns selection and both figures as JSON
func (h *DashboardHandlerImpl) HandleDashboard(c echo.Context) error {
	d, err := h.render(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// HandleDashboardMsgpack returns the same payload in MessagePack format
func (h *DashboardHandlerImpl) HandleDashboardMsgpack(c echo.Context) error {
	d, err := h.render(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(d); err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", buf.Bytes())
}

// HandleDurationPNG exports the duration chart as a PNG image.
// An empty selection answers 204.
func (h *DashboardHandlerImpl) HandleDurationPNG(c echo.Context) error {
	sel, err := bindSelection(c)
	if err != nil {
		return err
	}
	width, err := sizeParam(c, "width", h.pngWidth)
	if err != nil {
		return err
	}
	height, err := sizeParam(c, "height", h.pngHeight)
	if err != nil {
		return err
	}

	data, err := h.service.DurationPNG(c.Request().Context(), sel, width, height)
	if errors.Is(err, chart.ErrNoData) {
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		return serviceError("failed to render duration chart", err)
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

func sizeParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minPNGSize || n > maxPNGSize {
		return 0, NewValidationError(name)
	}
	return n, nil
}
