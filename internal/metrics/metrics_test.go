package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewmap/internal/graphview"
)

// Registry must satisfy the view observer contract
var _ graphview.Observer = (*Registry)(nil)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.NotNil(t, r.HTTPRequestsTotal)
	assert.NotNil(t, r.ViewLoadsTotal)
	assert.NotNil(t, r.GetPrometheusRegistry())
}

func TestDefaultRegistry(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/api/graph", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("GET", "/api/graph", "200", 50*time.Millisecond)
	r.RecordHTTPRequest("GET", "/nodes/{id}", "404", 5*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/api/graph", "200")
	require.NoError(t, err)

	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	assert.Equal(t, float64(2), metric.Counter.GetValue())

	assert.Equal(t, float64(1), testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("GET", "/nodes/{id}", "404")))
}

func TestViewObserver(t *testing.T) {
	r := NewRegistry()

	r.LoadFailed(errors.New("connection refused"))
	assert.Equal(t, float64(0), testutil.ToFloat64(r.ViewLoaded))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.ViewLoadsTotal.WithLabelValues("error")))

	r.Loaded(5, 4)
	assert.Equal(t, float64(1), testutil.ToFloat64(r.ViewLoaded))
	assert.Equal(t, float64(5), testutil.ToFloat64(r.ViewNodes))
	assert.Equal(t, float64(4), testutil.ToFloat64(r.ViewEdges))

	r.Rendered(5, 4)
	r.Rendered(3, 1)
	assert.Equal(t, float64(2), testutil.ToFloat64(r.ViewRendersTotal))
	assert.Equal(t, float64(3), testutil.ToFloat64(r.ViewVisibleNodes))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.ViewVisibleEdges))
}

func TestRecordImport(t *testing.T) {
	r := NewRegistry()

	r.RecordImport("merge", nil)
	r.RecordImport("replace", errors.New("bad"))

	assert.Equal(t, float64(1), testutil.ToFloat64(r.ImportsTotal.WithLabelValues("merge", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.ImportsTotal.WithLabelValues("replace", "error")))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.Loaded(2, 1)
	r.SetSSEClients(3)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, "crewmap_view_nodes 2"), "missing view nodes gauge")
	assert.True(t, strings.Contains(text, "crewmap_sse_clients 3"), "missing sse clients gauge")
	assert.True(t, strings.Contains(text, "go_goroutines"), "missing go collector")
}
