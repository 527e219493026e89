package prerouter

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultMetricName          = "favicache_requests_total"
	defaultMetricHelp          = "Total number of HTTP requests handled by the server, labeled by status code."
	defaultStatusCodeLabelName = "code"
)

// MetricsOpts holds configuration options for the Metrics middleware.
type MetricsOpts struct {
	// MetricName is the name of the Prometheus counter.
	// Default: "favicache_requests_total"
	MetricName string

	// MetricHelp is the help string for the Prometheus counter.
	MetricHelp string

	// StatusCodeLabelName is the name of the label used for the HTTP status
	// code. Default: "code"
	StatusCodeLabelName string

	// Registry is the Prometheus registry to register the metric with.
	// If nil, prometheus.DefaultRegisterer is used.
	Registry prometheus.Registerer
}

// Metrics is middleware counting requests by response status code.
type Metrics struct {
	requestsTotal *prometheus.CounterVec
}

// NewMetrics creates the middleware and registers its counter. It panics on
// registration failure (e.g. a name collision); the caller owns metric name
// uniqueness.
func NewMetrics(opts MetricsOpts) *Metrics {
	metricName := opts.MetricName
	if metricName == "" {
		metricName = defaultMetricName
	}

	metricHelp := opts.MetricHelp
	if metricHelp == "" {
		metricHelp = defaultMetricHelp
	}

	statusCodeLabelName := opts.StatusCodeLabelName
	if statusCodeLabelName == "" {
		statusCodeLabelName = defaultStatusCodeLabelName
	}

	counterVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricName,
			Help: metricHelp,
		},
		[]string{statusCodeLabelName},
	)

	registry := opts.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	registry.MustRegister(counterVec)

	return &Metrics{requestsTotal: counterVec}
}

// Execute wraps the next handler with request counting.
func (m *Metrics) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec := NewResponseRecorder(w)
		next.ServeHTTP(rec, req)
		m.requestsTotal.WithLabelValues(strconv.Itoa(rec.Status())).Inc()
	})
}
