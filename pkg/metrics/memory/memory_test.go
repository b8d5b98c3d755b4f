package memory

import (
	"sync"
	"testing"
	"time"

	"bank-mediator/pkg/metrics"
)

var _ metrics.MetricsCollector = (*MemoryCollector)(nil)

func TestMemoryCollector_RecordRequest(t *testing.T) {
	mc := NewMemoryCollector()

	mc.RecordRequest("get account", 200, 10*time.Millisecond)
	mc.RecordRequest("get account", 404, 5*time.Millisecond)
	mc.RecordFailure("get account", "not_found")

	om := mc.Operation("get account")
	if om == nil {
		t.Fatal("expected metrics for operation")
	}
	if om.Requests != 2 {
		t.Errorf("Requests = %d, want 2", om.Requests)
	}
	if om.ByStatus[404] != 1 || om.ByStatus[200] != 1 {
		t.Errorf("ByStatus = %v", om.ByStatus)
	}
	if om.Failures["not_found"] != 1 {
		t.Errorf("Failures = %v", om.Failures)
	}
	if len(om.Latencies) != 2 {
		t.Errorf("Latencies = %v", om.Latencies)
	}
}

func TestMemoryCollector_Rejected(t *testing.T) {
	mc := NewMemoryCollector()
	mc.RecordRejected("deposit cash", "amount")

	if got := mc.TotalRequests(); got != 0 {
		t.Errorf("rejections must not count as requests, got %d", got)
	}
	if got := mc.Operation("deposit cash").Rejected["amount"]; got != 1 {
		t.Errorf("Rejected = %d, want 1", got)
	}
}

func TestMemoryCollector_Connectivity(t *testing.T) {
	mc := NewMemoryCollector()
	mc.RecordConnectivity(true)
	mc.RecordConnectivity(false)

	snap := mc.Snapshot()
	if snap.ConnectivityChecks != 2 || snap.ConnectivityUp != 1 || snap.LastConnected {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestMemoryCollector_SnapshotIsCopy(t *testing.T) {
	mc := NewMemoryCollector()
	mc.RecordRequest("list customers", 200, time.Millisecond)

	snap := mc.Snapshot()
	mc.RecordRequest("list customers", 200, time.Millisecond)

	if snap.Operations["list customers"].Requests != 1 {
		t.Error("snapshot changed after further recording")
	}
}

func TestMemoryCollector_Reset(t *testing.T) {
	mc := NewMemoryCollector()
	mc.RecordRequest("list customers", 200, time.Millisecond)
	mc.Reset()

	if mc.Operation("list customers") != nil {
		t.Error("expected no metrics after reset")
	}
}

func TestMemoryCollector_Concurrent(t *testing.T) {
	mc := NewMemoryCollector()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mc.RecordRequest("get customer", 200, time.Millisecond)
		}()
	}
	wg.Wait()

	if got := mc.TotalRequests(); got != 20 {
		t.Errorf("TotalRequests = %d, want 20", got)
	}
}
