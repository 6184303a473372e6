package stylealign

import (
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/hupe1980/stylealign/boundary"
	"github.com/hupe1980/stylealign/disentangle"
	"github.com/hupe1980/stylealign/evaluate"
	"github.com/hupe1980/stylealign/resample"
	"github.com/hupe1980/stylealign/sink"
)

// Defaults for a run.
const (
	DefaultAttempts    = 5
	DefaultNumTest     = 100
	DefaultConcurrency = 1
)

type options struct {
	method      Method
	selection   boundary.Selection
	step        float64
	temperature float64
	compose     resample.ComposeOptions
	dataset     string
	identity    evaluate.IdentityScorer
	selector    disentangle.Selector
	seed        *uint64
	skipLayer   func(name string) bool
	limiter     *rate.Limiter

	attempts    int
	numTest     int
	concurrency int
	sink        sink.Sink

	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Editor or a Runner. Options that only one of them
// uses are ignored by the other.
type Option func(*options)

// WithMethod selects how the edit direction is chosen.
func WithMethod(m Method) Option {
	return func(o *options) {
		o.method = m
	}
}

// WithSelection configures channel selection. The default is the top 50 channels.
func WithSelection(sel boundary.Selection) Option {
	return func(o *options) {
		o.selection = sel
	}
}

// WithStep sets the step size applied to boundary offsets.
func WithStep(step float64) Option {
	return func(o *options) {
		o.step = step
	}
}

// WithTemperature sets the relaxed-Bernoulli temperature of MethodRandom.
func WithTemperature(t float64) Option {
	return func(o *options) {
		o.temperature = t
	}
}

// WithTargetWeight sets the weight of the sampled direction against the image
// manifold in MethodRandom.
func WithTargetWeight(w float64) Option {
	return func(o *options) {
		o.compose.TargetWeight = w
	}
}

// WithExcludeImage drops the image manifold from MethodRandom directions.
func WithExcludeImage(exclude bool) Option {
	return func(o *options) {
		o.compose.ExcludeImage = exclude
	}
}

// WithDataset names the dataset domain. Identity is only scored for faces.
func WithDataset(name string) Option {
	return func(o *options) {
		o.dataset = name
	}
}

// WithIdentityScorer configures the identity scorer used during evaluation.
func WithIdentityScorer(s evaluate.IdentityScorer) Option {
	return func(o *options) {
		o.identity = s
	}
}

// WithSelector sets the core and positive candidate selector.
func WithSelector(s disentangle.Selector) Option {
	return func(o *options) {
		o.selector = s
	}
}

// WithSeed makes MethodRandom reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithLayerFilter sets which style layers have no channel bank rows.
// The default skips RGB output layers.
func WithLayerFilter(skip func(name string) bool) Option {
	return func(o *options) {
		o.skipLayer = skip
	}
}

// WithCollaboratorRate limits generator and embedder calls to rps per second
// with the given burst. A non-positive rps disables the limit.
func WithCollaboratorRate(rps float64, burst int) Option {
	return func(o *options) {
		if rps <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithAttempts sets the number of attempts per latent.
func WithAttempts(n int) Option {
	return func(o *options) {
		o.attempts = n
	}
}

// WithNumTest makes a Runner edit only the last n latents it is given.
// Zero or a negative n edits all of them.
func WithNumTest(n int) Option {
	return func(o *options) {
		o.numTest = n
	}
}

// WithConcurrency sets how many attempts a Runner executes at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithSink sets where a Runner stores attempt records.
func WithSink(s sink.Sink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithMetricsCollector configures a metrics collector for monitoring attempts.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &stylealign.BasicMetricsCollector{}
//	r := stylealign.NewRunner(editor, stylealign.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Attempts: %d, Avg latency: %dns\n", stats.AttemptCount, stats.AttemptAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := stylealign.NewJSONLogger(slog.LevelInfo)
//	editor, _ := stylealign.NewEditor(gen, emb, bank, channels, stylealign.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		method:           MethodBaseline,
		selection:        boundary.Selection{TopK: boundary.DefaultTopK},
		step:             boundary.DefaultStep,
		temperature:      resample.DefaultTemperature,
		compose:          resample.ComposeOptions{TargetWeight: resample.DefaultTargetWeight},
		skipLayer:        boundary.SkipToRGB,
		attempts:         DefaultAttempts,
		concurrency:      DefaultConcurrency,
		sink:             sink.Discard{},
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.sink == nil {
		o.sink = sink.Discard{}
	}
	return o
}
