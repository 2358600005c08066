// Package dashboard assembles the two charts for a selection. Build is the
// pure render step; Service feeds it from the active store.
package dashboard

import (
	"github.com/machine-dashboard/backend/internal/activity"
	"github.com/machine-dashboard/backend/internal/chart"
	"github.com/machine-dashboard/backend/internal/models"
	"github.com/machine-dashboard/backend/internal/storage"
)

// Dashboard is everything the page needs for one render.
type Dashboard struct {
	Options   models.FilterOptions `json:"options"`
	Selection models.Selection     `json:"selection"`
	Rows      int                  `json:"rows"`
	Empty     bool                 `json:"empty"`
	Timeline  chart.Figure         `json:"timeline"`
	Durations chart.Figure         `json:"durations"`
	Stats     storage.Stats        `json:"stats"`
}

// Build renders a dashboard from already filtered records. sel is the
// effective selection, after defaults were applied.
func Build(options models.FilterOptions, sel models.Selection, records []models.ActivityRecord, theme *models.ChartTheme) *Dashboard {
	if theme == nil {
		theme = models.DefaultChartTheme()
	}
	return &Dashboard{
		Options:   options,
		Selection: sel,
		Rows:      len(records),
		Empty:     !activity.AnyValid(records),
		Timeline:  chart.BuildTimeline(records, theme),
		Durations: chart.BuildDurationBar(records, theme),
	}
}
