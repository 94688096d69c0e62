package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for path queries.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	pathQueryTotal    *prometheus.CounterVec
	pathQueryDuration *prometheus.HistogramVec
	pathQueryErrors   *prometheus.CounterVec
	pathStationCount  prometheus.Histogram
	httpRequestsTotal *prometheus.CounterVec
}

// New registers all collectors on a fresh registry, so tests can create as many as they need.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		pathQueryTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "subway_path_query_total",
			Help: "Total path queries by result and criterion",
		}, []string{"result", "criteria"}),
		pathQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "subway_path_query_duration_seconds",
			Help:    "Path query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		}, []string{"criteria"}),
		pathQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "subway_path_query_errors_total",
			Help: "Total failed path queries by failure kind",
		}, []string{"kind"}),
		pathStationCount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "subway_path_query_station_count",
			Help:    "Number of stations on returned paths",
			Buckets: []float64{2, 3, 5, 10, 20, 50, 100},
		}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "subway_http_requests_total",
			Help: "Total HTTP requests by method and status code",
		}, []string{"method", "code"}),
	}
}

// ObservePathQuery records a successful query.
func (m *Metrics) ObservePathQuery(criteria string, stations int, elapsed time.Duration) {
	m.pathQueryTotal.WithLabelValues(ResultOK, criteria).Inc()
	m.pathQueryDuration.WithLabelValues(criteria).Observe(elapsed.Seconds())
	m.pathStationCount.Observe(float64(stations))
}

// ObservePathQueryError records a failed query. kind is the failure class.
func (m *Metrics) ObservePathQueryError(criteria, kind string, elapsed time.Duration) {
	m.pathQueryTotal.WithLabelValues(ResultError, criteria).Inc()
	m.pathQueryDuration.WithLabelValues(criteria).Observe(elapsed.Seconds())
	m.pathQueryErrors.WithLabelValues(kind).Inc()
}

// Instrument counts every request passing through next.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.httpRequestsTotal, next)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
