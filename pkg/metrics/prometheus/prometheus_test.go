package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCollector_Register(t *testing.T) {
	registry := prometheus.NewRegistry()
	pc := NewPrometheusCollector("bank_client")

	if err := pc.Register(registry); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := pc.Register(registry); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestPrometheusCollector_MustRegister(t *testing.T) {
	registry := prometheus.NewRegistry()
	pc := NewPrometheusCollector("bank_client")

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustRegister panicked: %v", r)
		}
	}()
	registry.MustRegister(pc)
}

func TestPrometheusCollector_Record(t *testing.T) {
	pc := NewPrometheusCollector("bank_client")

	pc.RecordRequest("get account", 200, 15*time.Millisecond)
	pc.RecordRequest("get account", 200, 20*time.Millisecond)
	pc.RecordRequest("get account", 404, 5*time.Millisecond)
	pc.RecordFailure("get account", "not_found")
	pc.RecordRejected("deposit cash", "amount")
	pc.RecordConnectivity(true)
	pc.RecordConnectivity(false)

	if got := testutil.ToFloat64(pc.requests.WithLabelValues("get account", "200", "2xx")); got != 2 {
		t.Errorf("2xx requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pc.failures.WithLabelValues("get account", "not_found")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pc.rejected.WithLabelValues("deposit cash", "amount")); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pc.backendUp); got != 0 {
		t.Errorf("backend_up = %v, want 0 after a failed check", got)
	}
	if got := testutil.ToFloat64(pc.checks.WithLabelValues("up")); got != 1 {
		t.Errorf("up checks = %v, want 1", got)
	}
}
