package outlier

import (
	"errors"
	"log/slog"

	"github.com/hupe1980/stylealign/mask"
)

type options struct {
	detector Detector
	logger   *slog.Logger
}

// Option configures a Partitioner.
type Option func(*options)

// WithDetector sets the density detector used by the refinement stage.
// If nil is passed, a LOF detector with DefaultNeighbors is used.
func WithDetector(d Detector) Option {
	return func(o *options) {
		o.detector = d
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Partitioner selects outlier indices from a similarity vector.
// It holds no mutable state and is safe for concurrent use.
type Partitioner struct {
	detector Detector
	logger   *slog.Logger
}

// NewPartitioner creates a Partitioner. The default detector is LOF with
// DefaultNeighbors.
func NewPartitioner(optFns ...Option) *Partitioner {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.detector == nil {
		o.detector = NewLOF(DefaultNeighbors)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Partitioner{detector: o.detector, logger: o.logger}
}

// Partition returns the indices of scores that pass the two-sided sigma filter
// and are then flagged by the density detector.
//
// When the detector reports ErrDegenerateInput the sigma-filtered mask is
// returned as-is.
func (p *Partitioner) Partition(scores []float64, sigma float64, contamination Contamination) (mask.IndexMask, error) {
	if err := contamination.Validate(); err != nil {
		return mask.IndexMask{}, err
	}

	candidates := SigmaFilter(scores, sigma)
	indices := candidates.Indices()
	values := make([]float64, len(indices))
	for j, i := range indices {
		values[j] = scores[i]
	}

	flags, err := p.detector.Detect(values, contamination)
	if err != nil {
		if errors.Is(err, ErrDegenerateInput) {
			p.logger.Debug("density stage skipped",
				"candidates", len(indices),
				"reason", err.Error(),
			)
			return candidates, nil
		}
		return mask.IndexMask{}, err
	}

	keep := make([]int, 0, len(indices))
	for j, i := range indices {
		if flags[j] {
			keep = append(keep, i)
		}
	}
	return mask.Of(keep...), nil
}
