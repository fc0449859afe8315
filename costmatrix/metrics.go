package costmatrix

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats is an always-on snapshot of evaluation counters.
type Stats struct {
	Windows   int   // number of windows (n(n+1)/2)
	Computed  int   // cells currently in Computed state
	Evaluated int64 // successful Calculate calls since construction
	Failed    int64 // failed Calculate calls since construction
}

// Metrics holds optional Prometheus collectors shared by any number of
// cost matrices. All collectors are safe for concurrent use.
type Metrics struct {
	windowsEvaluated prometheus.Counter
	windowsFailed    prometheus.Counter
	windowDuration   prometheus.Histogram
	runDuration      *prometheus.HistogramVec
	activeRuns       prometheus.Gauge
}

// NewMetrics creates the collectors under namespace and registers them
// with reg. Collectors already registered by an earlier call are reused.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		windowsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "costmatrix",
			Name:      "windows_evaluated_total",
			Help:      "Total number of windows scored successfully",
		}),
		windowsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "costmatrix",
			Name:      "windows_failed_total",
			Help:      "Total number of windows whose operation failed",
		}),
		windowDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "costmatrix",
			Name:      "window_duration_seconds",
			Help:      "Time spent scoring one window",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "costmatrix",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full RunAll batch",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "costmatrix",
			Name:      "active_runs",
			Help:      "Number of RunAll batches in flight",
		}),
	}

	var err error
	m.windowsEvaluated, err = register(reg, m.windowsEvaluated)
	if err != nil {
		return nil, err
	}
	m.windowsFailed, err = register(reg, m.windowsFailed)
	if err != nil {
		return nil, err
	}
	m.windowDuration, err = register(reg, m.windowDuration)
	if err != nil {
		return nil, err
	}
	m.runDuration, err = register(reg, m.runDuration)
	if err != nil {
		return nil, err
	}
	m.activeRuns, err = register(reg, m.activeRuns)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// register registers c, returning the existing collector if an identical
// one is already present.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

func (m *Metrics) observeWindow(d time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.windowsFailed.Inc()
		return
	}
	m.windowsEvaluated.Inc()
	m.windowDuration.Observe(d.Seconds())
}

func (m *Metrics) runStarted() {
	if m == nil {
		return
	}
	m.activeRuns.Inc()
}

func (m *Metrics) runFinished(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.activeRuns.Dec()
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.runDuration.WithLabelValues(status).Observe(d.Seconds())
}
