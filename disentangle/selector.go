package disentangle

import (
	"github.com/hupe1980/stylealign/mask"
	"github.com/hupe1980/stylealign/outlier"
)

// Default selection parameters.
const (
	DefaultSigma            = 2.0
	DefaultCoreQuantile     = 0.99
	DefaultPositiveQuantile = 0.95
)

// DefaultPositiveContamination is the expected outlier fraction among
// image-positive candidates.
var DefaultPositiveContamination = outlier.Fraction(0.1)

// Selector chooses the core and image-positive candidate masks from
// similarity vectors.
type Selector interface {
	// SelectCore returns the core candidates for text similarity scores.
	SelectCore(textScores []float64) (mask.IndexMask, error)
	// SelectPositive returns the positive candidates for image similarity scores.
	SelectPositive(imageScores []float64) (mask.IndexMask, error)
}

// OutlierSelector runs the sigma and density partition for both groups.
type OutlierSelector struct {
	Partitioner           *outlier.Partitioner
	Sigma                 float64
	CoreContamination     outlier.Contamination
	PositiveContamination outlier.Contamination
}

// NewOutlierSelector returns an OutlierSelector with sigma 2, automatic core
// contamination and a positive contamination of 0.1.
// A nil partitioner selects outlier.NewPartitioner().
func NewOutlierSelector(p *outlier.Partitioner) *OutlierSelector {
	if p == nil {
		p = outlier.NewPartitioner()
	}
	return &OutlierSelector{
		Partitioner:           p,
		Sigma:                 DefaultSigma,
		CoreContamination:     outlier.Auto,
		PositiveContamination: DefaultPositiveContamination,
	}
}

// SelectCore implements Selector.
func (s *OutlierSelector) SelectCore(textScores []float64) (mask.IndexMask, error) {
	return s.Partitioner.Partition(textScores, s.Sigma, s.CoreContamination)
}

// SelectPositive implements Selector.
func (s *OutlierSelector) SelectPositive(imageScores []float64) (mask.IndexMask, error) {
	return s.Partitioner.Partition(imageScores, s.Sigma, s.PositiveContamination)
}

// QuantileSelector selects the upper tail of each similarity vector against
// the fixed quantile table. It is deterministic and has no density stage.
type QuantileSelector struct {
	Core     float64
	Positive float64
}

// NewQuantileSelector returns a QuantileSelector using 0.99 for core and
// 0.95 for positive candidates.
func NewQuantileSelector() *QuantileSelector {
	return &QuantileSelector{Core: DefaultCoreQuantile, Positive: DefaultPositiveQuantile}
}

// SelectCore implements Selector.
func (s *QuantileSelector) SelectCore(textScores []float64) (mask.IndexMask, error) {
	return outlier.QuantilePartition(textScores, s.Core)
}

// SelectPositive implements Selector.
func (s *QuantileSelector) SelectPositive(imageScores []float64) (mask.IndexMask, error) {
	return outlier.QuantilePartition(imageScores, s.Positive)
}
