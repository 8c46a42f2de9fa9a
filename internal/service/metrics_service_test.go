package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *MetricsService) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsServiceSnapshotAndExposition(t *testing.T) {
	m := NewMetricsService()
	db := seededStore(t)
	require.NoError(t, m.RegisterDB(db.DB, "sqlite3"))

	m.ObserveHTTPRequest(http.MethodGet, "/agentes", http.StatusOK, 4*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/agentes", http.StatusOK, 2*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.ObserveCacheWrite(time.Millisecond)
	m.ObserveDBQuery("resumen_vista", 10*time.Millisecond)
	m.RecordResumenSource(FuenteVista)
	m.RecordResumenSource(FuenteCalculada)
	m.RecordResumenSource(FuenteCalculada)
	m.RecordWrite("agente", "create")

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.RequestsTotal)
	assert.InDelta(t, 3.0, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(1), snap.CacheHits)
	assert.Equal(t, uint64(2), snap.CacheMisses)
	assert.InDelta(t, 1.0/3.0, snap.CacheHitRatio, 0.001)
	assert.Equal(t, uint64(1), snap.DBQueryCount)
	assert.Equal(t, uint64(1), snap.ResumenVista)
	assert.Equal(t, uint64(2), snap.ResumenCalculada)
	assert.Equal(t, uint64(1), snap.StoreWrites)

	body := scrape(t, m)
	assert.Contains(t, body, `agentes_admin_cache_lookups_total{result="miss"} 2`)
	assert.Contains(t, body, `agentes_admin_resumen_builds_total{fuente="calculada"} 2`)
	assert.Contains(t, body, `agentes_admin_store_writes_total{entity="agente",op="create"} 1`)
	assert.Contains(t, body, `agentes_admin_http_request_duration_seconds_count{method="GET",path="/agentes",status="200"} 2`)
	assert.Contains(t, body, `go_sql_open_connections{db_name="sqlite3"}`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetricsServiceNilIsInert(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.RecordWrite("curso", "delete")
	assert.NoError(t, m.RegisterDB(nil, "x"))
	assert.Zero(t, m.Snapshot().RequestsTotal)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
