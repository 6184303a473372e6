package evaluate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/hupe1980/stylealign/distance"
)

// ErrDimensionMismatch is returned when embeddings or group rows differ in length.
var ErrDimensionMismatch = errors.New("evaluate: dimension mismatch")

// IdentityScorer compares the identity of two images.
type IdentityScorer interface {
	Score(ctx context.Context, a, b image.Image) (float64, error)
}

// IdentityFunc adapts a function to IdentityScorer.
type IdentityFunc func(ctx context.Context, a, b image.Image) (float64, error)

// Score implements IdentityScorer.
func (f IdentityFunc) Score(ctx context.Context, a, b image.Image) (float64, error) {
	return f(ctx, a, b)
}

// nonFaceDatasets have no human identity to preserve.
var nonFaceDatasets = map[string]struct{}{
	"afhq":        {},
	"afhqcat":     {},
	"afhqdog":     {},
	"afhqwild":    {},
	"lsun_car":    {},
	"lsun_cat":    {},
	"lsun_church": {},
}

// HasFaces reports whether dataset is a human-face domain.
func HasFaces(dataset string) bool {
	_, ok := nonFaceDatasets[strings.ToLower(dataset)]
	return !ok
}

// Input carries one before/after pair and the semantic groups to score.
type Input struct {
	Before []float64
	After  []float64

	Core     [][]float64
	Unwanted [][]float64
	Positive [][]float64

	ImageBefore image.Image
	ImageAfter  image.Image
}

// Scores are the evaluation results of one edit. Core is signed; Unwanted
// and Positive are magnitudes.
type Scores struct {
	Identity float64 `json:"identity"`
	Core     float64 `json:"core"`
	Unwanted float64 `json:"unwanted"`
	Positive float64 `json:"positive"`
}

type options struct {
	dataset string
}

// Option configures an Evaluator.
type Option func(*options)

// WithDataset sets the dataset name. Identity is skipped when it is not a
// human-face domain.
func WithDataset(name string) Option {
	return func(o *options) {
		o.dataset = name
	}
}

// Evaluator scores edits.
type Evaluator struct {
	scorer IdentityScorer
	faces  bool
}

// New creates an Evaluator. A nil scorer reports an identity of 0.
func New(scorer IdentityScorer, optFns ...Option) *Evaluator {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return &Evaluator{scorer: scorer, faces: HasFaces(o.dataset)}
}

// Evaluate computes the identity score and the three group deltas.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) (Scores, error) {
	if len(in.Before) != len(in.After) {
		return Scores{}, fmt.Errorf("%w: before %d, after %d", ErrDimensionMismatch, len(in.Before), len(in.After))
	}

	var s Scores
	var err error
	if s.Core, err = GroupDelta(in.Before, in.After, in.Core); err != nil {
		return Scores{}, fmt.Errorf("evaluate: core: %w", err)
	}
	if s.Unwanted, err = GroupDelta(in.Before, in.After, in.Unwanted); err != nil {
		return Scores{}, fmt.Errorf("evaluate: unwanted: %w", err)
	}
	if s.Positive, err = GroupDelta(in.Before, in.After, in.Positive); err != nil {
		return Scores{}, fmt.Errorf("evaluate: positive: %w", err)
	}
	s.Unwanted = math.Abs(s.Unwanted)
	s.Positive = math.Abs(s.Positive)

	if e.faces && e.scorer != nil {
		if s.Identity, err = e.scorer.Score(ctx, in.ImageBefore, in.ImageAfter); err != nil {
			return Scores{}, fmt.Errorf("evaluate: identity: %w", err)
		}
	}
	return s, nil
}

// GroupDelta returns mean_i(after·g_i − before·g_i) over group, or exactly 0
// for an empty group.
func GroupDelta(before, after []float64, group [][]float64) (float64, error) {
	if len(group) == 0 {
		return 0, nil
	}
	var sum float64
	for i, g := range group {
		if len(g) != len(before) {
			return 0, fmt.Errorf("%w: row %d has %d, embedding has %d", ErrDimensionMismatch, i, len(g), len(before))
		}
		sum += distance.Dot(after, g) - distance.Dot(before, g)
	}
	return sum / float64(len(group)), nil
}
