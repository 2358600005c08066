package storage

import (
	"context"

	"github.com/machine-dashboard/backend/internal/models"
)

// Storage engines selectable in the configuration.
const (
	EngineMemory = "memory"
	EngineDuckDB = "duckdb"
)

// Store serves the loaded activity table to the dashboard.
type Store interface {
	// Engine names the backing implementation.
	Engine() string
	// Stats describes what was loaded.
	Stats() Stats
	// Options returns the distinct machines and states, first appearance first.
	Options(ctx context.Context) (models.FilterOptions, error)
	// Select returns the records matching both the machine and the state.
	Select(ctx context.Context, sel models.Selection) ([]models.ActivityRecord, error)
	// Close releases the store's resources.
	Close() error
}

// Stats summarizes a loaded table.
type Stats struct {
	Rows        int                 `json:"rows"`
	ParseErrors []models.ParseError `json:"parseErrors,omitempty"`
	TimeRange   *models.TimeRange   `json:"timeRange,omitempty"`
	SourcePath  string              `json:"sourcePath"`
}

func statsOf(table *models.ActivityTable) Stats {
	return Stats{
		Rows:        table.Len(),
		ParseErrors: table.ParseErrors,
		TimeRange:   table.TimeRange,
		SourcePath:  table.SourcePath,
	}
}
