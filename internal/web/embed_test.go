package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machine-dashboard/backend/internal/models"
)

func samplePage() Page {
	return Page{
		PlotlyURL: "/plotly.js",
		Options: models.FilterOptions{
			Machines: []string{"M1", "M2"},
			States:   []string{"Working", "Idle"},
		},
		Selection: models.Selection{Machine: "M2", State: "Idle"},
		Rows:      1,
		Timeline:  map[string]any{"data": []any{}, "layout": map[string]any{"title": map[string]string{"text": "</script><b>"}}},
		Durations: map[string]any{"data": []any{}, "layout": map[string]any{}},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, samplePage()))
	html := buf.String()

	assert.Contains(t, html, "<title>Interactive Charts</title>")
	assert.Contains(t, html, `<label for="machine">Select Machine ID</label>`)
	assert.Contains(t, html, `<label for="state">Select State</label>`)
	assert.Contains(t, html, `<script src="/plotly.js"`)
	assert.Contains(t, html, `<option value="M2" selected>M2</option>`)
	assert.Contains(t, html, `<option value="M1">M1</option>`)
	assert.Contains(t, html, `<option value="Idle" selected>Idle</option>`)
	assert.Contains(t, html, `id="timeline"`)
	assert.Contains(t, html, `id="durations"`)
	assert.Contains(t, html, "{responsive: true}")
	assert.Contains(t, html, "1 matching record<")

	// figure JSON must not be able to close the script block
	assert.NotContains(t, html, "</script><b>")
	assert.Equal(t, 2, strings.Count(html, "</script>"))
}

func TestRender_Warnings(t *testing.T) {
	p := samplePage()
	p.Rows = 0
	p.Warnings = []string{"2 rows have unparseable timestamps"}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, p))
	assert.Contains(t, buf.String(), `<p class="warning">2 rows have unparseable timestamps</p>`)
	assert.Contains(t, buf.String(), "0 matching records")
}

func TestRegisterStaticRoutes(t *testing.T) {
	e := echo.New()
	require.NoError(t, RegisterStaticRoutes(e))

	req := httptest.NewRequest(http.MethodGet, "/static/dashboard.css", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".chart")
}
