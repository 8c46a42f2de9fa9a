package service

import (
	"database/sql"
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/agentes-admin/internal/models"
)

const metricsNamespace = "agentes_admin"

// MetricsService owns the Prometheus registry of the process. Besides the
// collectors it keeps plain counters for the JSON snapshot at
// /system/metrics.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requests      *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	cacheDuration *prometheus.HistogramVec
	storeQueries  *prometheus.HistogramVec
	resumenBuilds *prometheus.CounterVec
	storeWrites   *prometheus.CounterVec

	totals struct {
		requests, requestNanos atomic.Uint64
		hits, misses           atomic.Uint64
		queries, queryNanos    atomic.Uint64
		vista, calculada       atomic.Uint64
		writes                 atomic.Uint64
	}
}

// NewMetricsService registers the HTTP, cache, store and summary collectors
// plus the Go runtime collectors.
func NewMetricsService() *MetricsService {
	m := &MetricsService{registry: prometheus.NewRegistry()}

	m.requests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	m.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_lookups_total",
		Help:      "Redis cache lookups by result.",
	}, []string{"result"})

	m.cacheDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "cache_operation_seconds",
		Help:      "Latency of Redis cache reads and writes.",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
	}, []string{"op"})

	m.storeQueries = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "store_query_seconds",
		Help:      "Duration of the attendance summary queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})

	m.resumenBuilds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "resumen_builds_total",
		Help:      "Attendance summaries built, by aggregation strategy.",
	}, []string{"fuente"})

	m.storeWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "store_writes_total",
		Help:      "Committed writes by entity and operation.",
	}, []string{"entity", "op"})

	m.registry.MustRegister(
		m.requests, m.cacheLookups, m.cacheDuration, m.storeQueries, m.resumenBuilds, m.storeWrites,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// RegisterDB exports the connection pool statistics of db.
func (m *MetricsService) RegisterDB(db *sql.DB, name string) error {
	if m == nil || db == nil {
		return nil
	}
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
	m.totals.requests.Add(1)
	m.totals.requestNanos.Add(uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a cache read as hit or miss.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues("get").Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		m.totals.hits.Add(1)
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
	m.totals.misses.Add(1)
}

// ObserveCacheWrite records a cache write.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues("set").Observe(duration.Seconds())
}

// ObserveDBQuery records the duration of a summary query.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeQueries.WithLabelValues(label).Observe(duration.Seconds())
	m.totals.queries.Add(1)
	m.totals.queryNanos.Add(uint64(duration.Nanoseconds()))
}

// RecordResumenSource counts which aggregation strategy served a summary.
func (m *MetricsService) RecordResumenSource(fuente string) {
	if m == nil {
		return
	}
	m.resumenBuilds.WithLabelValues(fuente).Inc()
	switch fuente {
	case FuenteVista:
		m.totals.vista.Add(1)
	case FuenteCalculada:
		m.totals.calculada.Add(1)
	}
}

// RecordWrite counts a committed write.
func (m *MetricsService) RecordWrite(entity, op string) {
	if m == nil {
		return
	}
	m.storeWrites.WithLabelValues(entity, op).Inc()
	m.totals.writes.Add(1)
}

// Snapshot returns the running totals.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits, misses := m.totals.hits.Load(), m.totals.misses.Load()
	requests := m.totals.requests.Load()
	queries := m.totals.queries.Load()

	return models.SystemMetrics{
		CacheHits:                hits,
		CacheMisses:              misses,
		CacheHitRatio:            ratio(hits, hits+misses),
		RequestsTotal:            requests,
		AverageRequestDurationMs: averageMs(m.totals.requestNanos.Load(), requests),
		DBQueryCount:             queries,
		AverageDBQueryDurationMs: averageMs(m.totals.queryNanos.Load(), queries),
		ResumenVista:             m.totals.vista.Load(),
		ResumenCalculada:         m.totals.calculada.Load(),
		StoreWrites:              m.totals.writes.Load(),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}

func ratio(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func averageMs(nanos, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return float64(nanos) / float64(count) / float64(time.Millisecond)
}
