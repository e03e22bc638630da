package dynamo

import (
	"math"
	"testing"
)

func TestStateNorm(t *testing.T) {
	s := State{3, 4, 0, 0, 0}
	if got := s.Norm(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("expected norm 5, got %f", got)
	}

	if got := (State{}).Norm(); got != 0 {
		t.Errorf("expected zero norm, got %f", got)
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"zero", State{}, true},
		{"finite", State{1, -2, 3.5, 0, 1e300}, true},
		{"nan", State{0, math.NaN(), 0, 0, 0}, false},
		{"inf", State{math.Inf(1), 0, 0, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("expected %v, got %v", tt.valid, got)
			}
		})
	}
}

func TestStateArithmetic(t *testing.T) {
	a := State{1, 2, 3, 4, 5}
	b := State{5, 4, 3, 2, 1}

	sum := a.Add(b)
	for i := range sum {
		if sum[i] != 6 {
			t.Errorf("component %d: expected 6, got %f", i, sum[i])
		}
	}

	diff := a.Sub(a)
	if diff != (State{}) {
		t.Errorf("expected zero state, got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled != (State{2, 4, 6, 8, 10}) {
		t.Errorf("unexpected scaled state: %v", scaled)
	}
}

func TestCosine(t *testing.T) {
	a := State{1, 0, 0, 0, 0}

	if got := Cosine(a, a); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected cosine 1 for identical vectors, got %f", got)
	}

	if got := Cosine(a, a.Scale(-1)); math.Abs(got+1.0) > 1e-12 {
		t.Errorf("expected cosine -1 for opposite vectors, got %f", got)
	}

	if got := Cosine(a, State{0, 1, 0, 0, 0}); math.Abs(got) > 1e-12 {
		t.Errorf("expected cosine 0 for orthogonal vectors, got %f", got)
	}

	if got := Cosine(a, State{}); got != 0 {
		t.Errorf("expected cosine 0 against zero vector, got %f", got)
	}
}

func TestCouplingVariants(t *testing.T) {
	if ZeroCoupling() != (Coupling{}) {
		t.Error("zero coupling must be the all-zero matrix")
	}

	c := UniformCoupling(0.25)
	for i := 0; i < Dim; i++ {
		if c[i][i] != 0 {
			t.Errorf("diagonal entry %d must stay zero", i)
		}
		for j := 0; j < Dim; j++ {
			if i != j && c[i][j] != 0.25 {
				t.Errorf("entry (%d,%d): expected 0.25, got %f", i, j, c[i][j])
			}
		}
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params must validate: %v", err)
	}

	bad := Params{ParamDamping: math.NaN()}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for NaN parameter")
	}
}
