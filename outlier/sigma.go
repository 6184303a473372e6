package outlier

import (
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/stylealign/mask"
)

// SigmaFilter returns the indices whose score lies at or beyond
// mean ± multiplier·std (two-sided). The standard deviation is the
// unbiased sample estimate.
func SigmaFilter(scores []float64, multiplier float64) mask.IndexMask {
	out := mask.New()
	if len(scores) == 0 {
		return out
	}
	mu, sigma := meanStd(scores)
	over := mu + multiplier*sigma
	down := mu - multiplier*sigma
	return mask.Full(len(scores)).Filter(func(i int) bool {
		return scores[i] >= over || scores[i] <= down
	})
}

func meanStd(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}
