package resample

import "errors"

var (
	// ErrEmptyCore is returned when there are no core prototypes to sample from.
	ErrEmptyCore = errors.New("resample: no core prototypes")

	// ErrInvalidTemperature is returned for a non-positive or non-finite temperature.
	ErrInvalidTemperature = errors.New("resample: temperature must be positive")

	// ErrDimensionMismatch is returned when vectors do not share one dimension.
	ErrDimensionMismatch = errors.New("resample: dimension mismatch")

	// ErrDegenerateDirection is returned when the combined direction has zero
	// norm or cannot be scaled.
	ErrDegenerateDirection = errors.New("resample: degenerate direction")
)
