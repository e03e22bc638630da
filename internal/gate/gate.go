// Package gate renders the binary accept/hold decision from a resonance
// proof. The engine keeps no state across invocations.
package gate

import (
	"github.com/san-kum/pentad/internal/integrate"
	"github.com/san-kum/pentad/internal/resonance"
)

// Decision is the two-valued gate outcome.
type Decision string

const (
	Fire Decision = "FIRE"
	Hold Decision = "HOLD"
)

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Decide fires iff the proof is valid and the transition contracts toward
// the origin; every other combination holds.
func (e *Engine) Decide(proof resonance.Proof) Decision {
	if proof.Valid && proof.DeltaV < 0 {
		return Fire
	}
	return Hold
}

// DecideTrajectory holds unconditionally when the trajectory has no
// transition to evaluate.
func (e *Engine) DecideTrajectory(tr integrate.Trajectory, proof resonance.Proof) Decision {
	if tr.Len() < 2 {
		return Hold
	}
	return e.Decide(proof)
}
