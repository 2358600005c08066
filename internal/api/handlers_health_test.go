package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machine-dashboard/backend/internal/storage"
)

func TestHandleHealth(t *testing.T) {
	h := NewHealthHandler("1.2.3", newScenarioService(t))

	rec, err := serve(h.HandleHealth, "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"version":"1.2.3"`)
	assert.Contains(t, rec.Body.String(), `"rows":3`)
}

func TestHandleHealth_NotLoaded(t *testing.T) {
	h := NewHealthHandler("dev", &MockDashboardService{Err: storage.ErrNotLoaded})

	rec, err := serve(h.HandleHealth, "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unavailable"`)
}
