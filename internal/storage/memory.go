package storage

import (
	"context"

	"github.com/machine-dashboard/backend/internal/activity"
	"github.com/machine-dashboard/backend/internal/models"
)

// MemoryStore keeps the parsed table in memory and filters it on each call.
type MemoryStore struct {
	table *models.ActivityTable
}

// NewMemoryStore wraps a parsed table.
func NewMemoryStore(table *models.ActivityTable) *MemoryStore {
	return &MemoryStore{table: table}
}

func (s *MemoryStore) Engine() string { return EngineMemory }

func (s *MemoryStore) Stats() Stats { return statsOf(s.table) }

func (s *MemoryStore) Options(ctx context.Context) (models.FilterOptions, error) {
	if err := ctx.Err(); err != nil {
		return models.FilterOptions{}, err
	}
	return activity.Options(s.table.Records), nil
}

func (s *MemoryStore) Select(ctx context.Context, sel models.Selection) ([]models.ActivityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return activity.Filter(s.table.Records, sel), nil
}

func (s *MemoryStore) Close() error { return nil }
