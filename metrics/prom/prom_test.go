package prom

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stylealign"
	"github.com/hupe1980/stylealign/evaluate"
)

var _ stylealign.MetricsCollector = (*Collector)(nil)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg, WithNamespace("test"))

	c.RecordAttempt(200*time.Millisecond, 3, evaluate.Scores{Core: 0.05, Unwanted: 0.01, Positive: 0.02, Identity: 0.8}, nil)
	c.RecordAttempt(100*time.Millisecond, 0, evaluate.Scores{}, errors.New("decode"))
	c.RecordRun(2, 1, 2*time.Second)

	assert.InDelta(t, 1, testutil.ToFloat64(c.attempts.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.attempts.WithLabelValues("error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.runs), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.runFailed), 0)

	// Histograms are only observed for successful attempts.
	assert.Equal(t, 1, testutil.CollectAndCount(c.changed))
	assert.Equal(t, 3, testutil.CollectAndCount(c.delta))

	expected := `
# HELP test_runs_total Completed runs.
# TYPE test_runs_total counter
test_runs_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_runs_total"))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
