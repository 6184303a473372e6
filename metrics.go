package stylealign

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/stylealign/evaluate"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// see package metrics/prom.
type MetricsCollector interface {
	// RecordAttempt is called after each edit attempt.
	// changed is the number of moved channels, scores are zero when err is set.
	RecordAttempt(duration time.Duration, changed int, scores evaluate.Scores, err error)

	// RecordRun is called after each run.
	// count is the number of attempts, failed is the number that failed.
	RecordRun(count, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAttempt(time.Duration, int, evaluate.Scores, error) {}
func (NoopMetricsCollector) RecordRun(int, int, time.Duration)                        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AttemptCount      atomic.Int64
	AttemptErrors     atomic.Int64
	AttemptTotalNanos atomic.Int64
	ChangedChannels   atomic.Int64
	RunCount          atomic.Int64
	RunAttempts       atomic.Int64
	RunFailed         atomic.Int64
}

// RecordAttempt implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAttempt(duration time.Duration, changed int, _ evaluate.Scores, err error) {
	b.AttemptCount.Add(1)
	b.AttemptTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AttemptErrors.Add(1)
		return
	}
	b.ChangedChannels.Add(int64(changed))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(count, failed int, _ time.Duration) {
	b.RunCount.Add(1)
	b.RunAttempts.Add(int64(count))
	b.RunFailed.Add(int64(failed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AttemptCount:    b.AttemptCount.Load(),
		AttemptErrors:   b.AttemptErrors.Load(),
		AttemptAvgNanos: b.getAvgAttemptNanos(),
		ChangedChannels: b.ChangedChannels.Load(),
		RunCount:        b.RunCount.Load(),
		RunAttempts:     b.RunAttempts.Load(),
		RunFailed:       b.RunFailed.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgAttemptNanos() int64 {
	count := b.AttemptCount.Load()
	if count == 0 {
		return 0
	}
	return b.AttemptTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AttemptCount    int64
	AttemptErrors   int64
	AttemptAvgNanos int64
	ChangedChannels int64
	RunCount        int64
	RunAttempts     int64
	RunFailed       int64
}
