package metrics

import (
	"time"
)

// MetricsCollector defines the interface for collecting banking API client metrics.
// Implementations can export metrics to various backends (Prometheus, in-memory for tests).
type MetricsCollector interface {
	// RecordRequest records one completed round-trip. status is the HTTP
	// status code, or 0 when no response was received.
	RecordRequest(operation string, status int, duration time.Duration)

	// RecordFailure records a classified failure for operation.
	RecordFailure(operation string, kind string)

	// RecordRejected records input rejected before any request was sent.
	RecordRejected(operation string, field string)

	// RecordConnectivity records the outcome of a connectivity check.
	RecordConnectivity(connected bool)
}

// StatusClass groups an HTTP status into "2xx", "4xx", "5xx" or "none" for
// requests that never got a response.
func StatusClass(status int) string {
	switch {
	case status <= 0:
		return "none"
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// NoOpCollector is a no-op implementation of MetricsCollector.
// It's used as the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordRequest does nothing.
func (NoOpCollector) RecordRequest(operation string, status int, duration time.Duration) {}

// RecordFailure does nothing.
func (NoOpCollector) RecordFailure(operation string, kind string) {}

// RecordRejected does nothing.
func (NoOpCollector) RecordRejected(operation string, field string) {}

// RecordConnectivity does nothing.
func (NoOpCollector) RecordConnectivity(connected bool) {}
