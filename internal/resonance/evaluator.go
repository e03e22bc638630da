// Package resonance scores the validity of a single state transition from
// its displacement, alignment, and energy change.
package resonance

import "github.com/san-kum/pentad/internal/dynamo"

// Proof is the validity judgment for one transition.
type Proof struct {
	// DeltaPi is the Euclidean displacement between the two states, >= 0.
	DeltaPi float64
	// Phi is the cosine alignment in [-1,1]; 0 when either state has zero
	// norm.
	Phi float64
	// DeltaV is the signed energy delta; negative means contraction toward
	// the origin.
	DeltaV float64
	// FieldStrength is the resonance-field value supplied for the
	// transition, recorded for audit only.
	FieldStrength float64
	// Valid holds iff DeltaPi and Phi pass the configured thresholds.
	Valid bool
}

// Evaluator compares two trajectory points against fixed thresholds. It is
// pure and needs no more than the last two points of a trajectory.
type Evaluator struct {
	MaxDeltaPi float64
	MinPhi     float64
}

// Default thresholds.
const (
	DefaultMaxDeltaPi = 0.1
	DefaultMinPhi     = 0.5
)

func NewEvaluator(maxDeltaPi, minPhi float64) *Evaluator {
	return &Evaluator{MaxDeltaPi: maxDeltaPi, MinPhi: minPhi}
}

func (e *Evaluator) Evaluate(prev, curr dynamo.State, r float64) Proof {
	deltaPi := curr.Sub(prev).Norm()
	phi := dynamo.Cosine(prev, curr)
	deltaV := curr.Norm() - prev.Norm()

	return Proof{
		DeltaPi:       deltaPi,
		Phi:           phi,
		DeltaV:        deltaV,
		FieldStrength: r,
		Valid:         deltaPi <= e.MaxDeltaPi && phi >= e.MinPhi,
	}
}
