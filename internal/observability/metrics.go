package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fire_tracker"

// Metrics holds the Prometheus collectors for the HTTP service.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration *prometheus.HistogramVec // labels: method, route
	RecordWrites *prometheus.CounterVec   // labels: entity, op={create,update,delete}
	ReportErrors *prometheus.CounterVec   // labels: report
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		RecordWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_writes_total",
			Help:      "Successful record writes by entity and operation.",
		}, []string{"entity", "op"}),
		ReportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_errors_total",
			Help:      "Chart report queries that failed.",
		}, []string{"report"}),
	}

	if reg != nil {
		reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.RecordWrites, m.ReportErrors)
	}
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
