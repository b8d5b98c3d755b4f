package memory

import (
	"sync"
	"time"
)

// MemoryCollector implements MetricsCollector for in-memory testing.
type MemoryCollector struct {
	mu sync.RWMutex

	operations map[string]*OperationMetrics

	connectivityChecks int64
	connectivityUp     int64
	lastConnected      bool
}

// OperationMetrics holds metrics for a single mediator operation.
type OperationMetrics struct {
	// Requests is the number of round-trips attempted
	Requests int64

	// ByStatus counts round-trips per HTTP status (0 = no response)
	ByStatus map[int]int64

	// Failures counts classified failures per kind label
	Failures map[string]int64

	// Rejected counts pre-dispatch validation rejections per field
	Rejected map[string]int64

	// Latencies of completed round-trips
	Latencies []time.Duration
}

// NewMemoryCollector creates a new in-memory metrics collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{
		operations: make(map[string]*OperationMetrics),
	}
}

// operation returns the metrics for op, creating them if needed.
// Callers must hold mc.mu.
func (mc *MemoryCollector) operation(op string) *OperationMetrics {
	om, exists := mc.operations[op]
	if !exists {
		om = &OperationMetrics{
			ByStatus: make(map[int]int64),
			Failures: make(map[string]int64),
			Rejected: make(map[string]int64),
		}
		mc.operations[op] = om
	}
	return om
}

// RecordRequest records one completed round-trip.
func (mc *MemoryCollector) RecordRequest(operation string, status int, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	om := mc.operation(operation)
	om.Requests++
	om.ByStatus[status]++
	om.Latencies = append(om.Latencies, duration)
}

// RecordFailure records a classified failure.
func (mc *MemoryCollector) RecordFailure(operation string, kind string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.operation(operation).Failures[kind]++
}

// RecordRejected records a pre-dispatch validation rejection.
func (mc *MemoryCollector) RecordRejected(operation string, field string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.operation(operation).Rejected[field]++
}

// RecordConnectivity records a connectivity check outcome.
func (mc *MemoryCollector) RecordConnectivity(connected bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.connectivityChecks++
	if connected {
		mc.connectivityUp++
	}
	mc.lastConnected = connected
}

// Snapshot is a copy of the collected metrics.
type Snapshot struct {
	Operations         map[string]OperationMetrics
	ConnectivityChecks int64
	ConnectivityUp     int64
	LastConnected      bool
}

// Snapshot returns a copy of the current metrics state.
func (mc *MemoryCollector) Snapshot() Snapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	snapshot := Snapshot{
		Operations:         make(map[string]OperationMetrics, len(mc.operations)),
		ConnectivityChecks: mc.connectivityChecks,
		ConnectivityUp:     mc.connectivityUp,
		LastConnected:      mc.lastConnected,
	}
	for op, om := range mc.operations {
		snapshot.Operations[op] = om.clone()
	}
	return snapshot
}

// Operation returns a copy of the metrics for op, or nil if none were recorded.
func (mc *MemoryCollector) Operation(op string) *OperationMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if om, exists := mc.operations[op]; exists {
		c := om.clone()
		return &c
	}
	return nil
}

// TotalRequests returns the number of round-trips across all operations.
func (mc *MemoryCollector) TotalRequests() int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var total int64
	for _, om := range mc.operations {
		total += om.Requests
	}
	return total
}

// Reset clears all collected metrics.
func (mc *MemoryCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.operations = make(map[string]*OperationMetrics)
	mc.connectivityChecks = 0
	mc.connectivityUp = 0
	mc.lastConnected = false
}

func (om *OperationMetrics) clone() OperationMetrics {
	c := OperationMetrics{
		Requests:  om.Requests,
		ByStatus:  make(map[int]int64, len(om.ByStatus)),
		Failures:  make(map[string]int64, len(om.Failures)),
		Rejected:  make(map[string]int64, len(om.Rejected)),
		Latencies: append([]time.Duration(nil), om.Latencies...),
	}
	for k, v := range om.ByStatus {
		c.ByStatus[k] = v
	}
	for k, v := range om.Failures {
		c.Failures[k] = v
	}
	for k, v := range om.Rejected {
		c.Rejected[k] = v
	}
	return c
}
