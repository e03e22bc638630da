package integrate

import "github.com/san-kum/pentad/internal/dynamo"

// Trajectory is the ordered sequence of states produced by repeated
// integration steps, with the sample times alongside.
type Trajectory struct {
	States []dynamo.State
	Times  []float64
}

func (tr Trajectory) Len() int { return len(tr.States) }

func (tr Trajectory) First() dynamo.State { return tr.States[0] }

func (tr Trajectory) Last() dynamo.State { return tr.States[len(tr.States)-1] }

// LastPair returns the final transition (prev, curr) and false when the
// trajectory holds fewer than two samples.
func (tr Trajectory) LastPair() (dynamo.State, dynamo.State, bool) {
	n := len(tr.States)
	if n < 2 {
		return dynamo.State{}, dynamo.State{}, false
	}
	return tr.States[n-2], tr.States[n-1], true
}

// Component extracts the time series of one state component.
func (tr Trajectory) Component(i int) []float64 {
	series := make([]float64, len(tr.States))
	for k, s := range tr.States {
		series[k] = s[i]
	}
	return series
}
