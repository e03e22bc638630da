package cube

import (
	"math"
	"testing"

	"github.com/san-kum/pentad/internal/dynamo"
)

func TestRoundTrip(t *testing.T) {
	states := []dynamo.State{
		{},
		{1, 2, 3, 0.5, 0.7},
		{-1e-12, 1e12, math.Pi, -math.E, 0.1},
	}

	for _, s := range states {
		back := FromState(s).State()
		for i := range s {
			if math.Abs(back[i]-s[i]) > 1e-10 {
				t.Errorf("component %d did not survive round trip: %v vs %v", i, s[i], back[i])
			}
		}
	}
}

func TestAxisOrder(t *testing.T) {
	p := FromState(dynamo.State{1, 2, 3, 4, 5})
	if p.X != 1 || p.Y != 2 || p.Z != 3 || p.U != 4 || p.V != 5 {
		t.Errorf("unexpected axis mapping: %+v", p)
	}
}
