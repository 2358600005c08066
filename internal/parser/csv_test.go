package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `MachineID,State,Start Time,End Time
M1,Working,2024-03-01 08:00:00,2024-03-01 09:30:00
M1,Idle,2024-03-01 09:30:00,2024-03-01 10:00:00
M2,Working,2024-03-01 08:00:00,2024-03-01 10:00:00
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestActivityCSVParser_Parse(t *testing.T) {
	p := NewActivityCSVParser()
	path := writeCSV(t, sampleCSV)

	table, err := p.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Empty(t, table.ParseErrors)
	assert.Equal(t, path, table.SourcePath)

	first := table.Records[0]
	assert.Equal(t, "M1", first.MachineID)
	assert.Equal(t, "Working", first.State)
	assert.Equal(t, "2024-03-01 08:00:00", first.StartRaw)
	assert.True(t, first.Start.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, first.End.Equal(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, 2, first.Line)
	assert.InDelta(t, 1.5, first.DurationHours(), 1e-9)

	require.NotNil(t, table.TimeRange)
	assert.True(t, table.TimeRange.Start.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, table.TimeRange.End.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
}

func TestActivityCSVParser_ColumnOrderAndExtras(t *testing.T) {
	p := NewActivityCSVParser()
	content := "\ufeffEnd Time, Operator ,State,Start Time,MachineID\n" +
		"2024-03-01 09:00:00,alice,Idle,2024-03-01 08:00:00,M7\n"

	table, err := p.ParseReader(strings.NewReader(content), "inline")
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "M7", table.Records[0].MachineID)
	assert.Equal(t, "Idle", table.Records[0].State)
	assert.Equal(t, time.Hour, table.Records[0].Duration())
}

func TestActivityCSVParser_BadTimestampsKeepRow(t *testing.T) {
	p := NewActivityCSVParser()
	content := "MachineID,State,Start Time,End Time\n" +
		"M1,Working,garbage,2024-03-01 09:00:00\n" +
		"M1,Idle,2024-03-01 09:00:00,\n"

	table, err := p.ParseReader(strings.NewReader(content), "inline")
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Len(t, table.ParseErrors, 2)
	assert.Equal(t, 2, table.ParseErrors[0].Line)
	assert.Contains(t, table.ParseErrors[0].Reason, "Start Time")
	assert.Equal(t, 3, table.ParseErrors[1].Line)
	assert.Contains(t, table.ParseErrors[1].Reason, "End Time")

	assert.True(t, table.Records[0].Start.IsZero())
	assert.False(t, table.Records[0].Valid())
	assert.Equal(t, time.Duration(0), table.Records[0].Duration())
	assert.Nil(t, table.TimeRange)
}

func TestActivityCSVParser_Errors(t *testing.T) {
	p := NewActivityCSVParser()

	t.Run("missing file", func(t *testing.T) {
		_, err := p.Parse(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(errors.Cause(err)))
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := p.Parse(writeCSV(t, ""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("missing columns", func(t *testing.T) {
		_, err := p.Parse(writeCSV(t, "MachineID,State\nM1,Idle\n"))
		assert.ErrorIs(t, err, ErrMissingColumns)
		assert.Contains(t, err.Error(), "Start Time, End Time")
	})

	t.Run("ragged rows", func(t *testing.T) {
		_, err := p.Parse(writeCSV(t, sampleCSV+"M3,Idle\n"))
		assert.Error(t, err)
	})
}

func TestActivityCSVParser_CanParse(t *testing.T) {
	p := NewActivityCSVParser()
	assert.Equal(t, "activity_csv", p.Name())

	ok, err := p.CanParse(writeCSV(t, sampleCSV))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.CanParse(writeCSV(t, "Timestamp,DeviceID,Signal,Value\n"))
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = p.CanParse(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
