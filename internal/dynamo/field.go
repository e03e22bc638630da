package dynamo

import "math"

// Field maps a state to its instantaneous derivative. Implementations must
// be pure: no hidden state, no I/O.
type Field interface {
	Derive(x State, t float64) (State, error)
}

// VectorField combines per-dimension self-dynamics with a coupling term.
//
// Self-dynamics are linear decay toward the origin plus a constant drive:
//
//	dx_i/dt = -damping*x_i + forcing + coupling_i(x)
//
// where the coupling contribution depends on Mode:
//
//	none:      0
//	linear:    sum_j C[i][j]*x_j
//	nonlinear: sum_j C[i][j]*tanh(x_j)
type VectorField struct {
	Mode     CouplingMode
	Coupling Coupling
	Params   Params
}

// NewVectorField validates the matrix and parameters and returns the field.
func NewVectorField(mode CouplingMode, c Coupling, p Params) (*VectorField, error) {
	if !c.IsValid() {
		return nil, ErrInvalidState
	}
	if p == nil {
		p = DefaultParams()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &VectorField{Mode: mode, Coupling: c, Params: p}, nil
}

func (f *VectorField) Derive(x State, t float64) (State, error) {
	if !x.IsValid() {
		return State{}, ErrInvalidState
	}

	damping := f.Params.Get(ParamDamping, 0.1)
	forcing := f.Params.Get(ParamForcing, 0.0)

	var dx State
	for i := 0; i < Dim; i++ {
		dx[i] = -damping*x[i] + forcing

		switch f.Mode {
		case CouplingLinear:
			for j := 0; j < Dim; j++ {
				dx[i] += f.Coupling[i][j] * x[j]
			}
		case CouplingNonlinear:
			for j := 0; j < Dim; j++ {
				dx[i] += f.Coupling[i][j] * math.Tanh(x[j])
			}
		}
	}

	if !dx.IsValid() {
		return State{}, ErrInvalidState
	}
	return dx, nil
}
