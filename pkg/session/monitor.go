package session

import (
	"context"
	"sync"
	"time"

	"bank-mediator/pkg/bank"
	"bank-mediator/pkg/logging"

	"go.uber.org/zap"
)

// DefaultMonitorInterval is how often a Monitor probes the backend.
const DefaultMonitorInterval = 30 * time.Second

// ConnectionChecker probes backend connectivity.
type ConnectionChecker interface {
	CheckConnection(ctx context.Context) bank.ConnectivityStatus
}

// Monitor periodically checks backend connectivity and remembers the latest
// result.
type Monitor struct {
	checker  ConnectionChecker
	interval time.Duration
	onChange func(bank.ConnectivityStatus)
	logger   *logging.Logger

	mu        sync.RWMutex
	latest    bank.ConnectivityStatus
	checkedAt time.Time
	checked   bool

	// stop is non-nil while the monitor is running
	stop chan struct{}
	wg   sync.WaitGroup
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithInterval sets the probe interval.
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithOnChange registers fn to be called after the first check and every
// time the connected state flips. fn runs on the monitor goroutine.
func WithOnChange(fn func(bank.ConnectivityStatus)) MonitorOption {
	return func(m *Monitor) {
		m.onChange = fn
	}
}

// WithMonitorLogger sets the logger. Defaults to the global logger.
func WithMonitorLogger(logger *logging.Logger) MonitorOption {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMonitor creates a stopped Monitor.
func NewMonitor(checker ConnectionChecker, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		checker:  checker,
		interval: DefaultMonitorInterval,
		logger:   logging.Global(),
		latest: bank.ConnectivityStatus{
			Connected: false,
			Message:   "Checking connection...",
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("monitor")
	return m
}

// Start runs a check immediately and then every interval until Stop is
// called or ctx is done. Starting a running monitor does nothing; once ctx
// is done the monitor can be started again.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.stop != nil {
		m.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	m.stop = stop
	m.mu.Unlock()

	m.logger.Info("connectivity monitor started", zap.Duration("interval", m.interval))

	m.wg.Add(1)
	go m.run(ctx, stop)
}

// Stop halts the periodic checks and waits for an in-flight check to finish.
func (m *Monitor) Stop() {
	m.mu.Lock()
	stop := m.stop
	m.stop = nil
	m.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	m.wg.Wait()

	m.logger.Info("connectivity monitor stopped")
}

func (m *Monitor) run(ctx context.Context, stop chan struct{}) {
	defer m.wg.Done()
	defer m.release(stop)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.CheckNow(ctx)
	for {
		select {
		case <-ticker.C:
			m.CheckNow(ctx)
		case <-stop:
			return
		case <-ctx.Done():
			m.logger.Info("connectivity monitor stopped", zap.Error(ctx.Err()))
			return
		}
	}
}

// release marks the monitor as not running unless Stop or a later Start
// already replaced stop.
func (m *Monitor) release(stop chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop == stop {
		m.stop = nil
	}
}

// CheckNow probes the backend once and records the result.
func (m *Monitor) CheckNow(ctx context.Context) bank.ConnectivityStatus {
	status := m.checker.CheckConnection(ctx)
	now := time.Now()

	m.mu.Lock()
	changed := !m.checked || m.latest.Connected != status.Connected
	m.latest = status
	m.checkedAt = now
	m.checked = true
	m.mu.Unlock()

	if changed {
		m.logger.Info("connectivity changed",
			zap.Bool("connected", status.Connected),
			zap.String("message", status.Message),
		)
		if m.onChange != nil {
			m.onChange(status)
		}
	}
	return status
}

// Latest returns the most recent status and when it was taken. The time is
// zero before the first check.
func (m *Monitor) Latest() (bank.ConnectivityStatus, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.checkedAt
}
