// Package distance provides the vector kernels used across stylealign.
//
// All kernels operate on float64 slices and delegate to gonum's floats package.
//
// # Usage
//
//	sim := distance.Dot(a, b)
//	d := distance.SquaredL2(a, b)
//	unit, ok := distance.NormalizeL2Copy(vec)
package distance
