package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.DatasetLoads.WithLabelValues(LoadSuccess).Inc()
	m.DatasetLoads.WithLabelValues(LoadSuccess).Inc()
	m.DatasetCacheHit.Inc()
	m.Records.Set(42)
	m.ObserveRequest(http.MethodGet, http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatasetLoads.WithLabelValues(LoadSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetCacheHit))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.Records))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "200")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sales_dataset_loads_total")
	assert.Contains(t, string(body), "sales_dataset_records 42")
}
