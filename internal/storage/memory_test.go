package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machine-dashboard/backend/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 1, hour, min, 0, 0, time.UTC)
}

func testTable() *models.ActivityTable {
	table := models.NewActivityTable("fixture.csv")
	table.Records = []models.ActivityRecord{
		{MachineID: "M1", State: "Working", StartRaw: "2024-03-01 08:00:00", EndRaw: "2024-03-01 09:30:00", Start: at(8, 0), End: at(9, 30), Line: 2},
		{MachineID: "M1", State: "Idle", StartRaw: "2024-03-01 09:30:00", EndRaw: "2024-03-01 10:00:00", Start: at(9, 30), End: at(10, 0), Line: 3},
		{MachineID: "M2", State: "Working", StartRaw: "2024-03-01 08:00:00", EndRaw: "2024-03-01 10:00:00", Start: at(8, 0), End: at(10, 0), Line: 4},
		{MachineID: "M2", State: "Stopped", StartRaw: "bad", EndRaw: "2024-03-01 11:00:00", End: at(11, 0), Line: 5},
	}
	table.ParseErrors = []models.ParseError{{Line: 5, Content: "bad", Reason: "invalid Start Time"}}
	return table
}

// exerciseStore runs the behaviour every Store must share.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	opts, err := store.Options(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"M1", "M2"}, opts.Machines)
	assert.Equal(t, []string{"Working", "Idle", "Stopped"}, opts.States)

	recs, err := store.Select(ctx, models.Selection{Machine: "M1", State: "Working"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "M1", recs[0].MachineID)
	assert.Equal(t, "Working", recs[0].State)
	assert.True(t, recs[0].Start.Equal(at(8, 0)))
	assert.True(t, recs[0].End.Equal(at(9, 30)))
	assert.Equal(t, 2, recs[0].Line)
	assert.InDelta(t, 1.5, recs[0].DurationHours(), 1e-9)

	recs, err = store.Select(ctx, models.Selection{Machine: "M2", State: "Stopped"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Start.IsZero())
	assert.Equal(t, "bad", recs[0].StartRaw)

	recs, err = store.Select(ctx, models.Selection{Machine: "M2", State: "Idle"})
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	stats := store.Stats()
	assert.Equal(t, 4, stats.Rows)
	assert.Len(t, stats.ParseErrors, 1)
	assert.Equal(t, "fixture.csv", stats.SourcePath)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.Select(cancelled, models.Selection{Machine: "M1", State: "Working"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(testTable())
	defer store.Close()

	assert.Equal(t, EngineMemory, store.Engine())
	exerciseStore(t, store)
}
