package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machine-dashboard/backend/internal/models"
)

func TestBuildDurationBar_Scenario(t *testing.T) {
	recs := []models.ActivityRecord{
		{MachineID: "M1", State: "Working", Start: at(8, 0), End: at(9, 30)},
	}

	fig := BuildDurationBar(recs, models.DefaultChartTheme())
	require.Len(t, fig.Data, 1)

	tr := fig.Data[0]
	assert.Equal(t, "bar", tr.Type)
	assert.Equal(t, "Working", tr.Name)
	assert.Equal(t, "green", tr.Marker.Color)
	assert.Equal(t, []string{"M1"}, tr.X)
	assert.Equal(t, []float64{1.5}, tr.Y)
	assert.Empty(t, fig.Layout.Annotations)
}

func TestBuildDurationBar_Layout(t *testing.T) {
	fig := BuildDurationBar(sampleRecords(), models.DefaultChartTheme())

	assert.Equal(t, "Machine State Duration", fig.Layout.Title.Text)
	assert.Equal(t, "Duration (Hours)", fig.Layout.YAxis.Title.Text)
	assert.Equal(t, "Machine ID", fig.Layout.XAxis.Title.Text)
	assert.Equal(t, "State", fig.Layout.Legend.Title.Text)
	assert.Equal(t, "relative", fig.Layout.BarMode)

	require.Len(t, fig.Data, 3)
	assert.Equal(t, []string{"Stopped", "Idle", "Working"}, []string{fig.Data[0].Name, fig.Data[1].Name, fig.Data[2].Name})
	assert.Equal(t, []string{"M1", "M2"}, fig.Data[2].X)
	assert.Equal(t, []float64{1.5, 2}, fig.Data[2].Y)
}

func TestBuildDurationBar_Empty(t *testing.T) {
	fig := BuildDurationBar(nil, models.DefaultChartTheme())
	assert.Empty(t, fig.Data)
	require.Len(t, fig.Layout.Annotations, 1)
	assert.Equal(t, NoDataText, fig.Layout.Annotations[0].Text)
}
