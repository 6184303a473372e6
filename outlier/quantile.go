package outlier

import (
	"github.com/hupe1980/stylealign/mask"
)

// zTable maps supported one-sided quantiles to their critical z value.
var zTable = map[float64]float64{
	0.9:   1.28,
	0.95:  1.64,
	0.975: 1.96,
	0.99:  2.33,
	0.995: 2.58,
}

// CriticalZ returns the z value for q, or an *InvalidQuantileError.
func CriticalZ(q float64) (float64, error) {
	z, ok := zTable[q]
	if !ok {
		return 0, &InvalidQuantileError{Quantile: q}
	}
	return z, nil
}

// QuantilePartition returns the indices whose score strictly exceeds
// mean + z(q)·std. Only the upper tail is selected.
func QuantilePartition(scores []float64, q float64) (mask.IndexMask, error) {
	z, err := CriticalZ(q)
	if err != nil {
		return mask.IndexMask{}, err
	}
	if len(scores) == 0 {
		return mask.New(), nil
	}
	mu, sigma := meanStd(scores)
	cut := mu + z*sigma
	return mask.Full(len(scores)).Filter(func(i int) bool {
		return scores[i] > cut
	}), nil
}
