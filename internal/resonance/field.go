package resonance

import "github.com/san-kum/pentad/internal/dynamo"

// Field supplies the resonance-field strength for a state transition.
// Implementations must return a value in [0,1].
type Field interface {
	Strength(prev, curr dynamo.State, t float64) float64
}

// Constant is the fixed-strength field; the value is clamped to [0,1].
type Constant struct {
	R float64
}

func (c Constant) Strength(prev, curr dynamo.State, t float64) float64 {
	if c.R < 0 {
		return 0
	}
	if c.R > 1 {
		return 1
	}
	return c.R
}
