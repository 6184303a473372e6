package outlier

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput is returned by a Detector when there are too few
	// values for a density estimate. Partitioner recovers from it by returning
	// the sigma-filtered mask unchanged.
	ErrDegenerateInput = errors.New("outlier: too few values for density estimation")

	// ErrInvalidQuantile is returned when a quantile is not in the supported table.
	ErrInvalidQuantile = errors.New("outlier: unsupported quantile")

	// ErrInvalidContamination is returned when a contamination fraction is out of range.
	ErrInvalidContamination = errors.New("outlier: contamination must be in (0, 0.5]")
)

// InvalidQuantileError reports the rejected quantile.
//
// It satisfies errors.Is(err, ErrInvalidQuantile).
type InvalidQuantileError struct {
	Quantile float64
}

func (e *InvalidQuantileError) Error() string {
	return fmt.Sprintf("outlier: unsupported quantile %v (supported: 0.9, 0.95, 0.975, 0.99, 0.995)", e.Quantile)
}

func (e *InvalidQuantileError) Unwrap() error { return ErrInvalidQuantile }

// DegenerateInputError reports how many values a detector received against
// the neighborhood it needs.
//
// It satisfies errors.Is(err, ErrDegenerateInput).
type DegenerateInputError struct {
	Values    int
	Neighbors int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("outlier: %d values is fewer than neighborhood size %d", e.Values, e.Neighbors)
}

func (e *DegenerateInputError) Unwrap() error { return ErrDegenerateInput }
