package dashboard

import (
	"bytes"
	"context"

	"github.com/machine-dashboard/backend/internal/activity"
	"github.com/machine-dashboard/backend/internal/chart"
	"github.com/machine-dashboard/backend/internal/models"
	"github.com/machine-dashboard/backend/internal/storage"
)

// Service re-runs the load, filter and render stages for each request.
type Service struct {
	manager *storage.Manager
	theme   *models.ChartTheme
}

// NewService creates a service over the manager's store.
func NewService(manager *storage.Manager, theme *models.ChartTheme) *Service {
	if theme == nil {
		theme = models.DefaultChartTheme()
	}
	return &Service{manager: manager, theme: theme}
}

// Theme returns the chart theme in use.
func (s *Service) Theme() *models.ChartTheme {
	return s.theme
}

// Stats describes the loaded table.
func (s *Service) Stats() (storage.Stats, error) {
	var stats storage.Stats
	err := s.manager.View(func(store storage.Store) error {
		stats = store.Stats()
		return nil
	})
	return stats, err
}

// Options lists the machines and states offered for selection.
func (s *Service) Options(ctx context.Context) (models.FilterOptions, error) {
	var opts models.FilterOptions
	err := s.manager.View(func(store storage.Store) error {
		var err error
		opts, err = store.Options(ctx)
		return err
	})
	return opts, err
}

// Render builds the dashboard for the requested selection. Blank fields
// fall back to the first option.
func (s *Service) Render(ctx context.Context, requested models.Selection) (*Dashboard, error) {
	var d *Dashboard
	err := s.manager.View(func(store storage.Store) error {
		opts, sel, records, err := s.selectRecords(ctx, store, requested)
		if err != nil {
			return err
		}
		d = Build(opts, sel, records, s.theme)
		d.Stats = store.Stats()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// DurationPNG renders the duration chart for the selection as PNG bytes.
// It returns chart.ErrNoData when the selection has no usable records.
func (s *Service) DurationPNG(ctx context.Context, requested models.Selection, width, height int) ([]byte, error) {
	var buf bytes.Buffer
	err := s.manager.View(func(store storage.Store) error {
		_, _, records, err := s.selectRecords(ctx, store, requested)
		if err != nil {
			return err
		}
		return chart.RenderDurationPNG(&buf, records, s.theme, width, height)
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) selectRecords(ctx context.Context, store storage.Store, requested models.Selection) (models.FilterOptions, models.Selection, []models.ActivityRecord, error) {
	opts, err := store.Options(ctx)
	if err != nil {
		return opts, requested, nil, err
	}
	sel := activity.DefaultSelection(opts, requested)
	records, err := store.Select(ctx, sel)
	if err != nil {
		return opts, sel, nil, err
	}
	return opts, sel, records, nil
}
