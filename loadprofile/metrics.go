package loadprofile

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics of one load run on a private registry.
type Metrics struct {
	// Request latency by task
	RequestLatency *prometheus.HistogramVec

	// Requests by task and status class ("2xx", "4xx", "transport_error", ...)
	Requests *prometheus.CounterVec

	// Users currently running
	ActiveUsers prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates the load metrics on a new registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "regions_load_request_duration_seconds",
			Help:    "Duration of requests to the regions endpoint by task",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"task"}),

		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regions_load_requests_total",
			Help: "Total requests to the regions endpoint by task and status class",
		}, []string{"task", "status"}),

		ActiveUsers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "regions_load_active_users",
			Help: "Number of simulated users currently running",
		}),

		registry: registry,
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(task, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(task).Observe(d.Seconds())
		m.Requests.WithLabelValues(task, status).Inc()
	}
}

func (m *Metrics) userStarted() {
	if m != nil {
		m.ActiveUsers.Inc()
	}
}

func (m *Metrics) userStopped() {
	if m != nil {
		m.ActiveUsers.Dec()
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
