package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	routeLabel  = "route"
	methodLabel = "method"
	codeLabel   = "code"
	kindLabel   = "kind"

	unmatchedRoute = "unmatched"
)

var knownRoutes = map[string]struct{}{
	IntervalsPath: {},
	HealthPath:    {},
	DocsPath:      {},
	MetricsPath:   {},
}

// metrics is nil when metrics are disabled; every method tolerates that.
type metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	requestDur  *prometheus.HistogramVec
	rejected    *prometheus.CounterVec
	resultSizes prometheus.Histogram
	processing  prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intervals_http_requests_total",
			Help: "Count of HTTP requests by route, method and status code",
		}, []string{routeLabel, methodLabel, codeLabel}),
		requestDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intervals_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		}, []string{routeLabel}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intervals_rejected_requests_total",
			Help: "Count of interval requests rejected because of their input, by error kind",
		}, []string{kindLabel}),
		resultSizes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "intervals_result_size",
			Help:    "Histogram of the number of intervals in successful results",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		processing: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "intervals_processing_duration_seconds",
			Help:    "Histogram of time spent validating, parsing, merging and subtracting",
			Buckets: prometheus.ExponentialBuckets(0.00001, 10, 6),
		}),
	}

	m.registry.MustRegister(m.requests)
	m.registry.MustRegister(m.requestDur)
	m.registry.MustRegister(m.rejected)
	m.registry.MustRegister(m.resultSizes)
	m.registry.MustRegister(m.processing)
	m.registry.MustRegister(collectors.NewGoCollector())
	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) observeRequest(req *http.Request, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	route := req.URL.Path
	if _, ok := knownRoutes[route]; !ok {
		route = unmatchedRoute
	}
	m.requests.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
	m.requestDur.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *metrics) reject(kind string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(kind).Inc()
}

// observeResult records a successful result. executionMs is the service's
// own measurement in milliseconds.
func (m *metrics) observeResult(size int, executionMs float64) {
	if m == nil {
		return
	}
	m.resultSizes.Observe(float64(size))
	m.processing.Observe(executionMs / 1000)
}
