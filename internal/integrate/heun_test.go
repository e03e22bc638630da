package integrate

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/pentad/internal/dynamo"
)

// Pure decay dx/dt = -x has the exact solution x(t) = x0*exp(-t). Heun is
// second order, so with h=0.01 over one unit of time the error stays well
// below 1e-4.
func TestHeunDecayAccuracy(t *testing.T) {
	f, err := dynamo.NewVectorField(dynamo.CouplingNone, dynamo.ZeroCoupling(), dynamo.Params{dynamo.ParamDamping: 1.0})
	if err != nil {
		t.Fatalf("field construction failed: %v", err)
	}

	x0 := dynamo.State{1, 2, -1, 0.5, -0.25}
	tr, err := Run(context.Background(), f, x0, 0.01, 1.0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	final := tr.Last()
	decay := math.Exp(-1.0)
	for i := range x0 {
		expected := x0[i] * decay
		if math.Abs(final[i]-expected) > 1e-4 {
			t.Errorf("component %d: expected %.8f, got %.8f", i, expected, final[i])
		}
	}
}

func TestHeunMatchesManualStep(t *testing.T) {
	f, err := dynamo.NewVectorField(dynamo.CouplingNone, dynamo.ZeroCoupling(), dynamo.Params{dynamo.ParamDamping: 0.5})
	if err != nil {
		t.Fatalf("field construction failed: %v", err)
	}

	x := dynamo.State{1, 0, 0, 0, 0}
	h := 0.1

	got, err := NewHeun().Step(f, x, 0, h)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	// k1 = -0.5, predictor = 1 - 0.05 = 0.95, k2 = -0.475
	// x' = 1 + 0.05*(-0.5 - 0.475) = 0.95125
	if math.Abs(got[0]-0.95125) > 1e-12 {
		t.Errorf("expected 0.95125, got %.12f", got[0])
	}
}

func TestTrajectoryHelpers(t *testing.T) {
	tr := Trajectory{
		States: []dynamo.State{{1, 0, 0, 0, 0}, {0.9, 0, 0, 0, 0}},
		Times:  []float64{0, 0.1},
	}

	prev, curr, ok := tr.LastPair()
	if !ok {
		t.Fatal("expected a transition pair")
	}
	if prev[0] != 1 || curr[0] != 0.9 {
		t.Errorf("unexpected pair: %v, %v", prev, curr)
	}

	series := tr.Component(0)
	if len(series) != 2 || series[0] != 1 || series[1] != 0.9 {
		t.Errorf("unexpected component series: %v", series)
	}

	single := Trajectory{States: []dynamo.State{{1, 0, 0, 0, 0}}, Times: []float64{0}}
	if _, _, ok := single.LastPair(); ok {
		t.Error("single-sample trajectory must not yield a pair")
	}
}
