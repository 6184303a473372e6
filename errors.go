package stylealign

import (
	"errors"
	"fmt"

	"github.com/hupe1980/stylealign/prototype"
	"github.com/hupe1980/stylealign/resample"
)

var (
	// ErrCollaborator marks a failure of the generator, the embedder or the
	// identity scorer, including malformed results.
	ErrCollaborator = errors.New("collaborator failed")

	// ErrInvalidMethod is returned for an unknown edit method.
	ErrInvalidMethod = errors.New("invalid method")
)

// CollaboratorError reports which collaborator call failed.
//
// It satisfies errors.Is(err, ErrCollaborator). The original error can be
// accessed via errors.As or errors.Is on the chain.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() []error { return []error{ErrCollaborator, e.Err} }

func collaboratorError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Op: op, Err: err}
}

// IsAttemptFailure reports whether err only invalidates the current attempt.
// A run records and skips such attempts; any other error aborts the run.
func IsAttemptFailure(err error) bool {
	return errors.Is(err, ErrCollaborator) ||
		errors.Is(err, resample.ErrDegenerateDirection) ||
		errors.Is(err, resample.ErrEmptyCore) ||
		errors.Is(err, prototype.ErrZeroVector)
}
