package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for pipeline operations. The set is closed: every failure
// path in the core wraps exactly one of these sentinels.
var (
	// ErrEmptyTrajectory indicates integration configuration that cannot
	// produce a single sample (non-positive step size or horizon).
	ErrEmptyTrajectory = errors.New("dynamo: empty trajectory (invalid step size or horizon)")

	// ErrInvalidState indicates a non-finite value in an input or an
	// evaluated derivative.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrEmptySequence indicates spectral analysis of a zero-sample sequence.
	ErrEmptySequence = errors.New("dynamo: empty sequence for spectral analysis")

	// ErrRouteSelection wraps a route selector collaborator failure.
	ErrRouteSelection = errors.New("dynamo: route selection failed")
)

// StepError wraps an error with the integration step it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
