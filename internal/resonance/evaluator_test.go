package resonance

import (
	"math"
	"testing"

	"github.com/san-kum/pentad/internal/dynamo"
)

func TestEvaluateContractionTransition(t *testing.T) {
	e := NewEvaluator(DefaultMaxDeltaPi, DefaultMinPhi)

	prev := dynamo.State{1, 0, 0, 0, 0}
	curr := dynamo.State{0.9, 0, 0, 0, 0}
	proof := e.Evaluate(prev, curr, 0.5)

	if math.Abs(proof.DeltaPi-0.1) > 1e-12 {
		t.Errorf("expected delta_pi 0.1, got %.12f", proof.DeltaPi)
	}
	if math.Abs(proof.Phi-1.0) > 1e-12 {
		t.Errorf("expected phi 1.0, got %.12f", proof.Phi)
	}
	if math.Abs(proof.DeltaV+0.1) > 1e-12 {
		t.Errorf("expected delta_v -0.1, got %.12f", proof.DeltaV)
	}
	if !proof.Valid {
		t.Error("transition must be valid under default thresholds")
	}
	if proof.FieldStrength != 0.5 {
		t.Errorf("field strength not recorded: %f", proof.FieldStrength)
	}
}

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name       string
		prev, curr dynamo.State
		valid      bool
	}{
		{"displacement too large", dynamo.State{1, 0, 0, 0, 0}, dynamo.State{0.5, 0, 0, 0, 0}, false},
		{"misaligned", dynamo.State{1, 0, 0, 0, 0}, dynamo.State{0, 0.05, 0, 0, 0}, false},
		{"aligned and small", dynamo.State{1, 0, 0, 0, 0}, dynamo.State{0.95, 0, 0, 0, 0}, true},
	}

	e := NewEvaluator(DefaultMaxDeltaPi, DefaultMinPhi)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proof := e.Evaluate(tt.prev, tt.curr, 1.0)
			if proof.Valid != tt.valid {
				t.Errorf("expected valid=%v, got %+v", tt.valid, proof)
			}
		})
	}
}

func TestEvaluateProperties(t *testing.T) {
	e := NewEvaluator(DefaultMaxDeltaPi, DefaultMinPhi)

	pairs := []struct{ prev, curr dynamo.State }{
		{dynamo.State{}, dynamo.State{}},
		{dynamo.State{1, 2, 3, 4, 5}, dynamo.State{-1, -2, -3, -4, -5}},
		{dynamo.State{0.1, 0, 0, 0, 0}, dynamo.State{0, 0, 0, 0, 0.1}},
	}

	for _, p := range pairs {
		proof := e.Evaluate(p.prev, p.curr, 0)
		if proof.DeltaPi < 0 {
			t.Errorf("delta_pi must be non-negative: %+v", proof)
		}
		if proof.Phi < -1 || proof.Phi > 1 {
			t.Errorf("phi out of [-1,1]: %+v", proof)
		}
	}
}

func TestEvaluateZeroNormAlignment(t *testing.T) {
	e := NewEvaluator(DefaultMaxDeltaPi, DefaultMinPhi)

	proof := e.Evaluate(dynamo.State{}, dynamo.State{1, 0, 0, 0, 0}, 0)
	if proof.Phi != 0 {
		t.Errorf("phi must be 0 when either vector has zero norm, got %f", proof.Phi)
	}
}

func TestConstantFieldClamps(t *testing.T) {
	tests := []struct {
		r, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{7, 1},
	}

	for _, tt := range tests {
		got := Constant{R: tt.r}.Strength(dynamo.State{}, dynamo.State{}, 0)
		if got != tt.want {
			t.Errorf("strength(%f): expected %f, got %f", tt.r, tt.want, got)
		}
	}
}
