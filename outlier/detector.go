package outlier

import (
	"math"
	"slices"
	"sort"
)

// DefaultNeighbors is the neighborhood size of the default LOF detector.
const DefaultNeighbors = 10

// autoOffset is the negative-outlier-factor cut used when contamination is Auto.
const autoOffset = -1.5

// lrdEpsilon keeps the local reachability density finite for duplicate values.
const lrdEpsilon = 1e-10

// Detector flags density outliers among a set of one-dimensional values.
//
// Detect returns one flag per value (true = outlier). Implementations return an
// error wrapping ErrDegenerateInput when they cannot estimate density.
type Detector interface {
	Detect(values []float64, contamination Contamination) ([]bool, error)
}

// SigmaOnly is a Detector that flags every value. Used with Partitioner it
// reduces Partition to the sigma pre-filter.
type SigmaOnly struct{}

// Detect implements Detector.
func (SigmaOnly) Detect(values []float64, _ Contamination) ([]bool, error) {
	flags := make([]bool, len(values))
	for i := range flags {
		flags[i] = true
	}
	return flags, nil
}

// LOF is a k-nearest-neighbor local outlier factor detector.
//
// A value is an outlier when its local reachability density is low relative to
// that of its neighbors. With Auto contamination a value is flagged when its
// factor exceeds 1.5; with a fixed fraction the cut is the matching percentile
// of the negative factors.
type LOF struct {
	Neighbors int
}

// NewLOF creates a LOF detector. neighbors <= 0 selects DefaultNeighbors.
func NewLOF(neighbors int) *LOF {
	if neighbors <= 0 {
		neighbors = DefaultNeighbors
	}
	return &LOF{Neighbors: neighbors}
}

// Detect implements Detector.
func (l *LOF) Detect(values []float64, contamination Contamination) ([]bool, error) {
	if err := contamination.Validate(); err != nil {
		return nil, err
	}
	nof, err := l.NegativeOutlierFactors(values)
	if err != nil {
		return nil, err
	}

	offset := autoOffset
	if !contamination.IsAuto() {
		offset = percentile(nof, 100*contamination.Value())
	}

	flags := make([]bool, len(nof))
	for i, v := range nof {
		flags[i] = v < offset
	}
	return flags, nil
}

// NegativeOutlierFactors returns -LOF for each value. Values close to -1 are
// inliers; the more negative, the more isolated.
func (l *LOF) NegativeOutlierFactors(values []float64) ([]float64, error) {
	n := len(values)
	k := l.Neighbors
	if k <= 0 {
		k = DefaultNeighbors
	}
	if n < k {
		return nil, &DegenerateInputError{Values: n, Neighbors: k}
	}
	// A point is never its own neighbor.
	k = min(k, n-1)
	if k < 1 {
		return nil, &DegenerateInputError{Values: n, Neighbors: l.Neighbors}
	}

	neighbors := make([][]int, n)
	dists := make([][]float64, n)
	kdist := make([]float64, n)
	for i := range n {
		neighbors[i], dists[i] = kNearest(values, i, k)
		kdist[i] = dists[i][k-1]
	}

	lrd := make([]float64, n)
	for i := range n {
		var sum float64
		for j, o := range neighbors[i] {
			sum += math.Max(kdist[o], dists[i][j])
		}
		lrd[i] = 1 / (sum/float64(k) + lrdEpsilon)
	}

	nof := make([]float64, n)
	for i := range n {
		var sum float64
		for _, o := range neighbors[i] {
			sum += lrd[o]
		}
		nof[i] = -(sum / float64(k)) / lrd[i]
	}
	return nof, nil
}

// kNearest returns the k nearest other values to values[i], ties broken by index.
func kNearest(values []float64, i, k int) ([]int, []float64) {
	type cand struct {
		idx  int
		dist float64
	}
	cands := make([]cand, 0, len(values)-1)
	for j, v := range values {
		if j == i {
			continue
		}
		cands = append(cands, cand{idx: j, dist: math.Abs(values[i] - v)})
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })

	idx := make([]int, k)
	dist := make([]float64, k)
	for j := range k {
		idx[j] = cands[j].idx
		dist[j] = cands[j].dist
	}
	return idx, dist
}

// percentile uses linear interpolation between closest ranks (NumPy's default).
func percentile(x []float64, p float64) float64 {
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}
