package dynamo

import "math"

// Dim is the fixed dimension of the state space.
const Dim = 5

// State is a point in the 5-dimensional state space. It is a value type:
// every operation returns a fresh copy, nothing mutates in place.
type State [Dim]float64

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Dot(other State) float64 {
	sum := 0.0
	for i := range s {
		sum += s[i] * other[i]
	}
	return sum
}

func (s State) Add(other State) State {
	var result State
	for i := range s {
		result[i] = s[i] + other[i]
	}
	return result
}

func (s State) Sub(other State) State {
	var result State
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

func (s State) Scale(factor float64) State {
	var result State
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// Cosine returns the cosine alignment between two states, or 0 when either
// vector has zero norm. The result is clamped to [-1, 1] against rounding.
func Cosine(a, b State) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	c := a.Dot(b) / (na * nb)
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}

// CouplingMode selects how the coupling matrix contributes to the derivative.
type CouplingMode string

const (
	CouplingNone      CouplingMode = "none"
	CouplingLinear    CouplingMode = "linear"
	CouplingNonlinear CouplingMode = "nonlinear"
)

// Coupling holds fixed interaction weights between dimensions.
type Coupling [Dim][Dim]float64

// ZeroCoupling is the named no-coupling matrix.
func ZeroCoupling() Coupling {
	return Coupling{}
}

// UniformCoupling fills every off-diagonal entry with w.
func UniformCoupling(w float64) Coupling {
	var c Coupling
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			if i != j {
				c[i][j] = w
			}
		}
	}
	return c
}

func (c Coupling) IsValid() bool {
	for i := range c {
		for j := range c[i] {
			if math.IsNaN(c[i][j]) || math.IsInf(c[i][j], 0) {
				return false
			}
		}
	}
	return true
}

// Params maps named scalar coefficients consumed by the vector field.
type Params map[string]float64

// Recognized parameter keys.
const (
	ParamDamping = "damping"
	ParamForcing = "forcing"
)

func DefaultParams() Params {
	return Params{
		ParamDamping: 0.1,
		ParamForcing: 0.0,
	}
}

func (p Params) Validate() error {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidState
		}
	}
	return nil
}

// Get returns the named parameter or def when absent.
func (p Params) Get(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}
