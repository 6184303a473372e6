package testutil

import (
	"math"
	"math/rand/v2"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// GaussianVectors generates random vectors with values from a standard normal distribution.
// Uses a single backing array for efficiency.
func (r *RNG) GaussianVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)
	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.NormFloat64()
		}
		vectors[i] = vec
	}
	return vectors
}

// UnitVectors generates L2-normalized random vectors (on the hypersphere).
// Uses Gaussian distribution for uniform distribution on the sphere.
func (r *RNG) UnitVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float64, num)
	for i := range num {
		vectors[i] = r.unitLocked(dimensions)
	}
	return vectors
}

// UnitVector generates a single L2-normalized random vector.
func (r *RNG) UnitVector(dimensions int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unitLocked(dimensions)
}

// Near returns a unit vector obtained by adding Gaussian noise of the given
// scale to v and renormalizing.
func (r *RNG) Near(v []float64, scale float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, len(v))
	for i := range out {
		out[i] = v[i] + scale*r.rand.NormFloat64()
	}
	normalize(out)
	return out
}

// ClusteredVectors generates unit vectors clustered around random centroids.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	centroids := make([][]float64, clusters)
	for i := range centroids {
		centroids[i] = r.unitLocked(dim)
	}
	vectors := make([][]float64, num)
	for i := range num {
		c := centroids[i%clusters]
		vec := make([]float64, dim)
		for j := range vec {
			vec[j] = c[j] + spread*r.rand.NormFloat64()
		}
		normalize(vec)
		vectors[i] = vec
	}
	return vectors
}

func (r *RNG) unitLocked(dimensions int) []float64 {
	vec := make([]float64, dimensions)
	for j := range vec {
		vec[j] = r.rand.NormFloat64()
	}
	normalize(vec)
	return vec
}

func normalize(v []float64) {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return // Avoid division by zero, though unlikely with floats
	}
	inv := 1 / math.Sqrt(norm)
	for i := range v {
		v[i] *= inv
	}
}

// Basis returns the standard basis vector e_i of the given dimension.
func Basis(dimensions, i int) []float64 {
	v := make([]float64, dimensions)
	v[i] = 1
	return v
}
