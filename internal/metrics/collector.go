package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "elapsedlog"

// Sleep results
const (
	SleepResultSlept   = "slept"
	SleepResultSkipped = "skipped"
)

// Collector holds the run metrics on a private registry.
// All methods are safe on a nil *Collector.
// Collector 在独立的 registry 上保存运行指标，所有方法都可在 nil 上调用。
type Collector struct {
	Registry *prometheus.Registry

	// Timed operation metrics
	OperationDuration prometheus.Histogram

	// Loop metrics
	Iterations   prometheus.Counter
	Sleeps       *prometheus.CounterVec
	SleepSeconds prometheus.Counter
}

// NewCollector registers all metrics on a fresh registry.
// NewCollector 在新的 registry 上注册所有指标。
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		Registry: reg,
		OperationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Wall time of each timed operation",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 1.5, 2, 5, 10},
			},
		),
		Iterations: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "iterations_total",
				Help:      "Completed loop iterations",
			},
		),
		Sleeps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sleeps_total",
				Help:      "Scheduled wake-ups by result (slept or skipped)",
			},
			[]string{"result"},
		),
		SleepSeconds: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sleep_seconds_total",
				Help:      "Total time spent waiting for scheduled wake-ups",
			},
		),
	}
}

// ObserveOperation records one timed operation.
func (c *Collector) ObserveOperation(d time.Duration) {
	if c == nil {
		return
	}
	c.OperationDuration.Observe(d.Seconds())
}

// IterationDone counts one finished loop iteration.
func (c *Collector) IterationDone() {
	if c == nil {
		return
	}
	c.Iterations.Inc()
}

// Slept records a wait of d before an operation.
func (c *Collector) Slept(d time.Duration) {
	if c == nil {
		return
	}
	c.Sleeps.WithLabelValues(SleepResultSlept).Inc()
	c.SleepSeconds.Add(d.Seconds())
}

// Skipped records an iteration that was already behind schedule.
func (c *Collector) Skipped() {
	if c == nil {
		return
	}
	c.Sleeps.WithLabelValues(SleepResultSkipped).Inc()
}
