package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/scorebook/internal/metrics"
)

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveBall("normal", true)
		m.ObserveUndo()
		m.ObserveMatchCreated()
		m.ObserveMatchFinished("completed")
		m.ObserveOperation("record_ball", time.Now(), errors.New("boom"))
		m.ClientConnected()
		m.ClientDisconnected()
	})
	assert.Nil(t, m.Registry())
}

func TestMetrics_CountersAndHandler(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.ObserveBall("wide", false)
	m.ObserveBall("normal", true)
	m.ObserveBall("normal", false)
	m.ObserveUndo()
	m.ObserveOperation("record_ball", time.Now(), nil)
	m.ObserveOperation("record_ball", time.Now(), errors.New("store down"))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "scorebook_balls_recorded_total" {
			assert.Len(t, mf.GetMetric(), 2, "one series per ball type")
		}
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `scorebook_balls_recorded_total{ball_type="normal"} 2`)
	assert.Contains(t, body, "scorebook_wickets_total 1")
	assert.Contains(t, body, "scorebook_balls_undone_total 1")
	assert.Contains(t, body, `scorebook_operation_errors_total{operation="record_ball"} 1`)
}
