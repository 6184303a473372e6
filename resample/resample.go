package resample

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/stylealign/distance"
)

// DefaultTemperature is the relaxed-Bernoulli temperature used when none is configured.
const DefaultTemperature = 1.0

type options struct {
	source      rand.Source
	edgeScaling float64
	fixedScale  bool
	logger      *slog.Logger
}

// Option configures a Resampler.
type Option func(*options)

// WithSeed seeds the Resampler's random source.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.source = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

// WithSource sets the random source.
func WithSource(src rand.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithEdgeScaling fixes the log-scale of edge distances. By default it is
// log(sqrt(D)) for embeddings of dimension D.
func WithEdgeScaling(s float64) Option {
	return func(o *options) {
		o.edgeScaling = s
		o.fixedScale = true
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Resampler draws stochastic directions. The random source is guarded by a
// mutex, so a Resampler may be shared between goroutines.
type Resampler struct {
	mu  sync.Mutex
	rng *rand.Rand

	edgeScaling float64
	fixedScale  bool
	logger      *slog.Logger
}

// New creates a Resampler. Without WithSeed or WithSource it is seeded randomly.
func New(optFns ...Option) *Resampler {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.source == nil {
		o.source = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Resampler{
		rng:         rand.New(o.source),
		edgeScaling: o.edgeScaling,
		fixedScale:  o.fixedScale,
		logger:      o.logger,
	}
}

// EdgeLogits returns the Bernoulli logit of the edge between text and each
// core prototype.
func (r *Resampler) EdgeLogits(core [][]float64, text []float64) ([]float64, error) {
	if len(core) == 0 {
		return nil, ErrEmptyCore
	}
	scale := r.edgeScaling
	if !r.fixedScale {
		scale = math.Log(math.Sqrt(float64(len(text))))
	}
	denom := math.Exp(scale)

	logits := make([]float64, len(core))
	for i, c := range core {
		if len(c) != len(text) {
			return nil, fmt.Errorf("%w: core %d has %d, text has %d", ErrDimensionMismatch, i, len(c), len(text))
		}
		logits[i] = LogitExp(-0.5 * distance.SquaredL2(text, c) / denom)
	}
	return logits, nil
}

// Weights draws one signed soft edge weight per core prototype.
func (r *Resampler) Weights(core [][]float64, text []float64, temperature float64) ([]float64, error) {
	if temperature <= 0 || math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemperature, temperature)
	}
	logits, err := r.EdgeLogits(core, text)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, len(core))
	r.mu.Lock()
	for i, l := range logits {
		weights[i] = RelaxedBernoulli(r.rng, l, temperature)
	}
	r.mu.Unlock()

	for i, c := range core {
		weights[i] *= distance.Sign(distance.Cosine(text, c))
	}
	return weights, nil
}

// Resample returns L2normalize(weights · core) for one fresh draw of weights.
func (r *Resampler) Resample(core [][]float64, text []float64, temperature float64) ([]float64, error) {
	weights, err := r.Weights(core, text, temperature)
	if err != nil {
		return nil, err
	}

	dir := make([]float64, len(text))
	for i, c := range core {
		for j, x := range c {
			dir[j] += weights[i] * x
		}
	}
	if !distance.NormalizeL2InPlace(dir) {
		return nil, ErrDegenerateDirection
	}

	r.logger.Debug("resampled direction",
		"core", len(core),
		"temperature", temperature,
		"text_cosine", distance.Dot(dir, text),
	)
	return dir, nil
}
