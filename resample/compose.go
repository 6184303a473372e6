package resample

import (
	"fmt"
	"math"

	"github.com/hupe1980/stylealign/distance"
)

// DefaultTargetWeight scales the sampled direction against the image manifold.
const DefaultTargetWeight = 2.0

// ComposeOptions controls Compose.
type ComposeOptions struct {
	// TargetWeight is divided by |image · text| to scale the sampled direction.
	TargetWeight float64
	// ExcludeImage drops the image manifold and returns the sampled direction alone.
	ExcludeImage bool
}

// Composition is the final edit direction.
type Composition struct {
	Direction []float64
	// ImageProportion is |manifold| / |unnormalized direction|, or 0 when the
	// image manifold is excluded or empty.
	ImageProportion float64
}

// Manifold returns the normalized sum of the positive semantics, or a zero
// vector of length dim when there are none.
func Manifold(positive [][]float64, dim int) []float64 {
	sum := make([]float64, dim)
	for _, p := range positive {
		for j := range sum {
			if j < len(p) {
				sum[j] += p[j]
			}
		}
	}
	if !distance.NormalizeL2InPlace(sum) {
		clear(sum)
	}
	return sum
}

// Compose mixes a sampled direction with the image manifold:
//
//	gamma = |TargetWeight / (image · text)|
//	out   = L2normalize(gamma·random + manifold)
func Compose(random, image, text []float64, positive [][]float64, opts ComposeOptions) (Composition, error) {
	if len(image) != len(random) || len(text) != len(random) {
		return Composition{}, fmt.Errorf("%w: random %d, image %d, text %d", ErrDimensionMismatch, len(random), len(image), len(text))
	}

	if opts.ExcludeImage {
		dir, ok := distance.NormalizeL2Copy(random)
		if !ok {
			return Composition{}, ErrDegenerateDirection
		}
		return Composition{Direction: dir}, nil
	}

	dot := distance.Dot(image, text)
	if dot == 0 {
		return Composition{}, fmt.Errorf("%w: image and text are orthogonal", ErrDegenerateDirection)
	}
	gamma := math.Abs(opts.TargetWeight / dot)

	manifold := Manifold(positive, len(random))
	star := make([]float64, len(random))
	for j := range star {
		star[j] = gamma*random[j] + manifold[j]
	}

	n := distance.Norm(star)
	if n == 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return Composition{}, ErrDegenerateDirection
	}
	prop := distance.Norm(manifold) / n
	distance.NormalizeL2InPlace(star)
	return Composition{Direction: star, ImageProportion: prop}, nil
}
