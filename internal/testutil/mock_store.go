// mock_store.go - Mock activity store and fixtures for testing
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/machine-dashboard/backend/internal/activity"
	"github.com/machine-dashboard/backend/internal/models"
	"github.com/machine-dashboard/backend/internal/storage"
)

// ScenarioCSV is the three-row log used across the dashboard tests.
const ScenarioCSV = `MachineID,State,Start Time,End Time
M1,Working,2024-03-01 08:00:00,2024-03-01 09:30:00
M1,Idle,2024-03-01 09:30:00,2024-03-01 10:00:00
M2,Working,2024-03-01 08:00:00,2024-03-01 10:00:00
`

// At returns 2024-03-01 hour:min UTC.
func At(hour, min int) time.Time {
	return time.Date(2024, 3, 1, hour, min, 0, 0, time.UTC)
}

// ScenarioRecords mirrors ScenarioCSV.
func ScenarioRecords() []models.ActivityRecord {
	return []models.ActivityRecord{
		{MachineID: "M1", State: "Working", Start: At(8, 0), End: At(9, 30), Line: 2},
		{MachineID: "M1", State: "Idle", Start: At(9, 30), End: At(10, 0), Line: 3},
		{MachineID: "M2", State: "Working", Start: At(8, 0), End: At(10, 0), Line: 4},
	}
}

// WriteCSV writes content to name inside a test temp dir and returns the path.
func WriteCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// MockStore implements storage.Store over a fixed record slice
type MockStore struct {
	Records []models.ActivityRecord

	// Error hooks
	OptionsErr error
	SelectErr  error

	mu      sync.Mutex
	selects []models.Selection
	closed  bool
}

// NewMockStore creates a mock store serving records
func NewMockStore(records []models.ActivityRecord) *MockStore {
	return &MockStore{Records: records}
}

func (m *MockStore) Engine() string { return "mock" }

func (m *MockStore) Stats() storage.Stats {
	return storage.Stats{Rows: len(m.Records), SourcePath: "mock.csv"}
}

func (m *MockStore) Options(ctx context.Context) (models.FilterOptions, error) {
	if m.OptionsErr != nil {
		return models.FilterOptions{}, m.OptionsErr
	}
	return activity.Options(m.Records), nil
}

func (m *MockStore) Select(ctx context.Context, sel models.Selection) ([]models.ActivityRecord, error) {
	m.mu.Lock()
	m.selects = append(m.selects, sel)
	m.mu.Unlock()

	if m.SelectErr != nil {
		return nil, m.SelectErr
	}
	return activity.Filter(m.Records, sel), nil
}

func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Selections returns every selection passed to Select
func (m *MockStore) Selections() []models.Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Selection(nil), m.selects...)
}

// Closed reports whether Close was called
func (m *MockStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Factory returns a storage.Factory that always hands out this mock.
func (m *MockStore) Factory() storage.Factory {
	return func(*models.ActivityTable) (storage.Store, error) {
		return m, nil
	}
}
