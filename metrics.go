package qsim

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

/*
Metrics collects execution statistics. A single Metrics can be shared
between runs (see WithMetrics) and between the workers of one run.
*/
type Metrics struct {
	mu               sync.RWMutex
	runs             int64
	trials           int64
	gateApplications int64
	measurements     int64
	totalTrialTime   time.Duration

	latencyWindow []float64
	windowSize    int
}

// MetricsSnapshot is a consistent copy of the counters at one point in time.
type MetricsSnapshot struct {
	Runs             int64
	Trials           int64
	GateApplications int64
	Measurements     int64
	TotalTrialTime   time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencyWindow: make([]float64, 0, 1000), // Store last 1000 trials
		windowSize:    1000,
	}
}

func (m *Metrics) recordRun() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs++
}

func (m *Metrics) recordTrial(duration time.Duration, gates, measurements int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trials++
	m.gateApplications += int64(gates)
	m.measurements += int64(measurements)
	m.totalTrialTime += duration

	m.latencyWindow = append(m.latencyWindow, float64(duration))
	if len(m.latencyWindow) > m.windowSize {
		m.latencyWindow = m.latencyWindow[1:]
	}
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSnapshot{
		Runs:             m.runs,
		Trials:           m.trials,
		GateApplications: m.gateApplications,
		Measurements:     m.measurements,
		TotalTrialTime:   m.totalTrialTime,
	}
}

// Latency returns mean, P95 and P99 over the most recent trials.
func (m *Metrics) Latency() (avg, p95, p99 time.Duration) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.latency()
}

func (m *Metrics) latency() (avg, p95, p99 time.Duration) {
	if len(m.latencyWindow) == 0 {
		return 0, 0, 0
	}

	sorted := append([]float64(nil), m.latencyWindow...)
	sort.Float64s(sorted)

	avg = time.Duration(stat.Mean(sorted, nil))
	p95 = time.Duration(stat.Quantile(0.95, stat.Empirical, sorted, nil))
	p99 = time.Duration(stat.Quantile(0.99, stat.Empirical, sorted, nil))
	return avg, p95, p99
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	avg, p95, p99 := m.latency()

	return map[string]interface{}{
		"runs":              m.runs,
		"trials":            m.trials,
		"gate_applications": m.gateApplications,
		"measurements":      m.measurements,
		"avg_latency":       avg.Microseconds(),
		"p95_latency":       p95.Microseconds(),
		"p99_latency":       p99.Microseconds(),
	}
}
