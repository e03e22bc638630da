package integrate

import "github.com/san-kum/pentad/internal/dynamo"

// Stepper advances a state over one fixed time step.
type Stepper interface {
	Step(f dynamo.Field, x dynamo.State, t, h float64) (dynamo.State, error)
}

// Heun is the explicit two-stage predictor-corrector (improved Euler):
//
//	k1 = f(x_n)
//	x* = x_n + h*k1
//	k2 = f(x*)
//	x_{n+1} = x_n + (h/2)*(k1 + k2)
type Heun struct{}

func NewHeun() *Heun {
	return &Heun{}
}

func (hn *Heun) Step(f dynamo.Field, x dynamo.State, t, h float64) (dynamo.State, error) {
	k1, err := f.Derive(x, t)
	if err != nil {
		return dynamo.State{}, err
	}

	predictor := x.Add(k1.Scale(h))
	k2, err := f.Derive(predictor, t+h)
	if err != nil {
		return dynamo.State{}, err
	}

	next := x.Add(k1.Add(k2).Scale(h / 2))
	if !next.IsValid() {
		return dynamo.State{}, dynamo.ErrInvalidState
	}
	return next, nil
}
