package prometheus

import (
	"strconv"
	"time"

	"bank-mediator/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

var _ metrics.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector implements MetricsCollector for Prometheus.
// It also satisfies prometheus.Collector, so it can be passed straight to
// MustRegister.
type PrometheusCollector struct {
	namespace string

	requests      *prometheus.CounterVec
	failures      *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	checks        *prometheus.CounterVec
	backendUp     prometheus.Gauge
	lastCheckTime prometheus.Gauge
}

// NewPrometheusCollector creates a new Prometheus metrics collector.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		namespace: namespace,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of banking API requests per operation and status code",
			},
			[]string{"operation", "code", "class"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_failures_total",
				Help:      "Total number of classified failures per operation and error kind",
			},
			[]string{"operation", "kind"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_rejections_total",
				Help:      "Total number of inputs rejected before dispatch per operation and field",
			},
			[]string{"operation", "field"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Banking API round-trip latency",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"operation"},
		),
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connectivity_checks_total",
				Help:      "Total number of connectivity checks by result",
			},
			[]string{"result"},
		),
		backendUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "backend_up",
				Help:      "Whether the last connectivity check reached the backend (1) or not (0)",
			},
		),
		lastCheckTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_connectivity_check_timestamp_seconds",
				Help:      "Unix time of the last connectivity check",
			},
		),
	}
}

func (pc *PrometheusCollector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		pc.requests,
		pc.failures,
		pc.rejected,
		pc.latency,
		pc.checks,
		pc.backendUp,
		pc.lastCheckTime,
	}
}

// Register registers all metrics with the given Prometheus registry.
func (pc *PrometheusCollector) Register(registry *prometheus.Registry) error {
	for _, collector := range pc.collectors() {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// Describe implements prometheus.Collector.
func (pc *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range pc.collectors() {
		collector.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (pc *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range pc.collectors() {
		collector.Collect(ch)
	}
}

// RecordRequest records one completed round-trip.
func (pc *PrometheusCollector) RecordRequest(operation string, status int, duration time.Duration) {
	pc.requests.WithLabelValues(operation, strconv.Itoa(status), metrics.StatusClass(status)).Inc()
	pc.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFailure records a classified failure.
func (pc *PrometheusCollector) RecordFailure(operation string, kind string) {
	pc.failures.WithLabelValues(operation, kind).Inc()
}

// RecordRejected records a pre-dispatch validation rejection.
func (pc *PrometheusCollector) RecordRejected(operation string, field string) {
	pc.rejected.WithLabelValues(operation, field).Inc()
}

// RecordConnectivity records a connectivity check outcome.
func (pc *PrometheusCollector) RecordConnectivity(connected bool) {
	result := "down"
	up := 0.0
	if connected {
		result = "up"
		up = 1
	}
	pc.checks.WithLabelValues(result).Inc()
	pc.backendUp.Set(up)
	pc.lastCheckTime.SetToCurrentTime()
}
