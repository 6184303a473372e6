package boundary

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when the direction does not match the
	// channel bank dimension.
	ErrDimensionMismatch = errors.New("boundary: dimension mismatch")

	// ErrLayoutMismatch is returned when a layout, bank and style space
	// disagree on channel counts or layer names.
	ErrLayoutMismatch = errors.New("boundary: layout mismatch")

	// ErrInvalidSelection is returned for a negative top-k or threshold.
	ErrInvalidSelection = errors.New("boundary: invalid selection")
)

// LayoutMismatchError reports where a layout and a style space disagree.
//
// It satisfies errors.Is(err, ErrLayoutMismatch).
type LayoutMismatchError struct {
	Layer    string
	Expected int
	Actual   int
}

func (e *LayoutMismatchError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("boundary: layout mismatch: expected %d channels, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("boundary: layout mismatch at layer %q: expected %d channels, got %d", e.Layer, e.Expected, e.Actual)
}

func (e *LayoutMismatchError) Unwrap() error { return ErrLayoutMismatch }
