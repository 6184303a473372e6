package resample

import (
	"math"
	"math/rand/v2"
)

// probEpsilon keeps uniform draws away from 0 and 1.
const probEpsilon = 2.220446049250313e-16

// LogitExp maps a log-probability to the matching Bernoulli logit,
// log(p / (1-p)), without overflow at either end.
func LogitExp(logp float64) float64 {
	if logp > -math.Ln2 {
		return -math.Log(math.Max(math.Expm1(-logp), 1e-20))
	}
	return logp - math.Log1p(-math.Exp(logp))
}

// RelaxedBernoulli draws one logit-space concrete sample for the given logit
// and temperature and returns it squashed to (0,1).
func RelaxedBernoulli(rng *rand.Rand, logit, temperature float64) float64 {
	u := math.Min(math.Max(rng.Float64(), probEpsilon), 1-probEpsilon)
	return sigmoid((logit + math.Log(u) - math.Log1p(-u)) / temperature)
}

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}
