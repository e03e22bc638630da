package pipeline

import (
	"github.com/san-kum/pentad/internal/commit"
	"github.com/san-kum/pentad/internal/cube"
	"github.com/san-kum/pentad/internal/dynamo"
	"github.com/san-kum/pentad/internal/gate"
	"github.com/san-kum/pentad/internal/integrate"
	"github.com/san-kum/pentad/internal/resonance"
	"github.com/san-kum/pentad/internal/route"
	"github.com/san-kum/pentad/internal/spectral"
)

// RouteSelector picks a route from the final state. Implementations must be
// deterministic given their inputs; failures are propagated untouched.
type RouteSelector interface {
	Select(final dynamo.State, seed string, score float64) (route.Spec, error)
}

// KnowledgeStore persists accepted records. It is invoked only when the
// gate fires.
type KnowledgeStore interface {
	Put(rec KnowledgeRecord) error
}

// Input is one pipeline invocation.
type Input struct {
	State    dynamo.State
	Params   dynamo.Params
	StepSize float64
	Horizon  float64
	ID       string
	Seed     string
	SeedPath string
}

// KnowledgeRecord is the committed artifact handed to the store.
type KnowledgeRecord struct {
	Identifier string          `json:"identifier"`
	Owner      string          `json:"owner"`
	RouteID    string          `json:"route_id"`
	SeedPath   string          `json:"seed_path"`
	Payload    []byte          `json:"payload"`
	Commit     commit.Record   `json:"commit"`
	Proof      resonance.Proof `json:"proof"`
}

// Output is the full result of one run. Knowledge is always populated; the
// caller treats it as committed only when Decision is FIRE.
type Output struct {
	Trajectory integrate.Trajectory
	Signature  spectral.Signature
	Centroid   dynamo.State
	External   cube.Point
	Route      route.Spec
	Proof      resonance.Proof
	Decision   gate.Decision
	Knowledge  *KnowledgeRecord
}
