// Package obs holds the Prometheus metrics for the service.
package obs

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache lookup outcomes.
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheExpired = "expired"
	CacheError   = "error"
)

// Metrics wraps a private registry so tests can create isolated instances.
// All record methods are nil-safe.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	cacheStoreFail  *prometheus.CounterVec
	remoteErrors    *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "drumbun_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"path", "status_class"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "drumbun_http_request_duration_seconds",
		Help:    "HTTP request duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "drumbun_cache_lookups_total",
		Help: "Persistent cache lookups by namespace and outcome",
	}, []string{"namespace", "status"})

	cacheStoreFail := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "drumbun_cache_store_failures_total",
		Help: "Persistent cache write failures",
	}, []string{"namespace"})

	remoteErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "drumbun_remote_fetch_errors_total",
		Help: "Remote API call failures",
	}, []string{"api"})

	registry.MustRegister(requests, requestDuration, cacheLookups, cacheStoreFail, remoteErrors)

	return &Metrics{
		registry:        registry,
		requests:        requests,
		requestDuration: requestDuration,
		cacheLookups:    cacheLookups,
		cacheStoreFail:  cacheStoreFail,
		remoteErrors:    remoteErrors,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, statusClass(status)).Inc()
	m.requestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordCacheLookup records the outcome of a persistent cache read.
func (m *Metrics) RecordCacheLookup(namespace, status string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(namespace, status).Inc()
}

// RecordCacheStoreFail records a failed persistent cache write.
func (m *Metrics) RecordCacheStoreFail(namespace string) {
	if m == nil {
		return
	}
	m.cacheStoreFail.WithLabelValues(namespace).Inc()
}

// RecordRemoteError records a failed call to an upstream API.
func (m *Metrics) RecordRemoteError(api string) {
	if m == nil {
		return
	}
	m.remoteErrors.WithLabelValues(api).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "unknown"
	}
}
