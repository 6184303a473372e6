package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/stylealign/evaluate"
)

// Collector implements stylealign.MetricsCollector on Prometheus metrics.
type Collector struct {
	attempts       *prometheus.CounterVec
	attemptLatency *prometheus.HistogramVec
	changed        prometheus.Histogram
	delta          *prometheus.HistogramVec
	identity       prometheus.Histogram
	runs           prometheus.Counter
	runFailed      prometheus.Counter
	runLatency     prometheus.Histogram
}

type options struct {
	namespace string
	buckets   []float64
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace prefixes every metric name.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithLatencyBuckets overrides the attempt latency buckets, in seconds.
func WithLatencyBuckets(b []float64) Option {
	return func(o *options) {
		o.buckets = b
	}
}

// New creates a Collector and registers its metrics with reg.
// It panics if a metric is already registered, like prometheus.MustRegister.
func New(reg prometheus.Registerer, optFns ...Option) *Collector {
	o := options{
		namespace: "stylealign",
		buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	c := &Collector{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "attempts_total",
			Help:      "Edit attempts by status.",
		}, []string{"status"}),
		attemptLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "attempt_duration_seconds",
			Help:      "Latency of edit attempts.",
			Buckets:   o.buckets,
		}, []string{"status"}),
		changed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "changed_channels",
			Help:      "Style channels moved per successful attempt.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		delta: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "similarity_delta",
			Help:      "Mean similarity change per semantic group.",
			Buckets:   prometheus.LinearBuckets(-0.1, 0.02, 16),
		}, []string{"group"}),
		identity: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "identity_similarity",
			Help:      "Identity similarity between original and edited image.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "runs_total",
			Help:      "Completed runs.",
		}),
		runFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "run_failed_attempts_total",
			Help:      "Attempts skipped by runs.",
		}),
		runLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "run_duration_seconds",
			Help:      "Latency of runs.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}

	reg.MustRegister(
		c.attempts,
		c.attemptLatency,
		c.changed,
		c.delta,
		c.identity,
		c.runs,
		c.runFailed,
		c.runLatency,
	)
	return c
}

// RecordAttempt implements stylealign.MetricsCollector.
func (c *Collector) RecordAttempt(d time.Duration, changed int, scores evaluate.Scores, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.attempts.WithLabelValues(status).Inc()
	c.attemptLatency.WithLabelValues(status).Observe(d.Seconds())
	if err != nil {
		return
	}
	c.changed.Observe(float64(changed))
	c.delta.WithLabelValues("core").Observe(scores.Core)
	c.delta.WithLabelValues("unwanted").Observe(scores.Unwanted)
	c.delta.WithLabelValues("positive").Observe(scores.Positive)
	if scores.Identity != 0 {
		c.identity.Observe(scores.Identity)
	}
}

// RecordRun implements stylealign.MetricsCollector.
func (c *Collector) RecordRun(_ int, failed int, d time.Duration) {
	c.runs.Inc()
	c.runFailed.Add(float64(failed))
	c.runLatency.Observe(d.Seconds())
}
