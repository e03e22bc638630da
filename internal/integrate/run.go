package integrate

import (
	"context"
	"math"

	"github.com/san-kum/pentad/internal/dynamo"
)

// Run advances x0 under f with fixed step h up to horizon tFinal and returns
// the trajectory of length ceil(tFinal/h)+1, with the initial state at index
// 0. On any failure the partial trajectory is discarded and the error
// surfaces; the caller may retry the whole run.
func Run(ctx context.Context, f dynamo.Field, x0 dynamo.State, h, tFinal float64) (Trajectory, error) {
	if h <= 0 || tFinal <= 0 {
		return Trajectory{}, dynamo.ErrEmptyTrajectory
	}
	if !x0.IsValid() {
		return Trajectory{}, dynamo.ErrInvalidState
	}

	steps := int(math.Ceil(tFinal / h))
	tr := Trajectory{
		States: make([]dynamo.State, 0, steps+1),
		Times:  make([]float64, 0, steps+1),
	}

	stepper := NewHeun()
	x := x0
	tr.States = append(tr.States, x)
	tr.Times = append(tr.Times, 0)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return Trajectory{}, ctx.Err()
		default:
		}

		t := float64(i) * h
		next, err := stepper.Step(f, x, t, h)
		if err != nil {
			return Trajectory{}, &dynamo.StepError{Step: i, Time: t, Wrapped: err}
		}

		x = next
		tr.States = append(tr.States, x)
		tr.Times = append(tr.Times, float64(i+1)*h)
	}

	return tr, nil
}
