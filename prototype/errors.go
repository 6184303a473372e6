package prototype

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when a vector does not match the bank dimension.
	ErrDimensionMismatch = errors.New("prototype: dimension mismatch")

	// ErrZeroVector is returned when a prototype row has zero norm.
	ErrZeroVector = errors.New("prototype: zero vector")

	// ErrEmptyBank is returned when a bank would have no rows or no columns.
	ErrEmptyBank = errors.New("prototype: empty bank")

	// ErrFormat is returned when persisted bank data cannot be decoded.
	ErrFormat = errors.New("prototype: invalid format")
)

// DimensionMismatchError reports the expected and actual dimensions.
//
// It satisfies errors.Is(err, ErrDimensionMismatch).
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("prototype: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// ZeroVectorError reports the offending row.
//
// It satisfies errors.Is(err, ErrZeroVector).
type ZeroVectorError struct {
	Row int
}

func (e *ZeroVectorError) Error() string {
	return fmt.Sprintf("prototype: row %d has zero norm", e.Row)
}

func (e *ZeroVectorError) Unwrap() error { return ErrZeroVector }

func formatError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}
