package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcomes recorded on search_queries_total.
const (
	SearchOutcomeOK       = "ok"
	SearchOutcomeCacheHit = "cache_hit"
	SearchOutcomeInvalid  = "invalid"
	SearchOutcomeError    = "error"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	searchQueries   *prometheus.CounterVec
	searchResults   *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	searchQueries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "search_queries_total",
		Help: "Search requests by collection and outcome",
	}, []string{"collection", "outcome"})

	searchResults := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "search_results_returned",
		Help:    "Number of records returned per search",
		Buckets: prometheus.LinearBuckets(0, 1, 11),
	}, []string{"collection"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_cache_hits_total",
		Help: "Total search cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "search_cache_misses_total",
		Help: "Total search cache misses",
	})

	registry.MustRegister(requestDuration, requestTotal, searchQueries, searchResults, cacheHits, cacheMisses,
		collectors.NewGoCollector())

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		searchQueries:   searchQueries,
		searchResults:   searchResults,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
	}
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

// Registry returns the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveSearch counts one search request and, on success, its result size.
func (m *MetricsService) ObserveSearch(collection, outcome string, results int) {
	if m == nil {
		return
	}
	m.searchQueries.WithLabelValues(collection, outcome).Inc()
	if outcome == SearchOutcomeOK || outcome == SearchOutcomeCacheHit {
		m.searchResults.WithLabelValues(collection).Observe(float64(results))
	}
}

// RecordCacheLookup tracks search cache hits and misses.
func (m *MetricsService) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		return
	}
	m.cacheMisses.Inc()
}
