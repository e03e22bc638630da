// Package pipeline sequences the deterministic numerical pipeline:
// integrate, analyze, route, prove, gate, commit. Route selection,
// resonance-field strength, and persistence are injected collaborators; the
// core never retries them and never swallows their failures.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/san-kum/pentad/internal/commit"
	"github.com/san-kum/pentad/internal/cube"
	"github.com/san-kum/pentad/internal/dynamo"
	"github.com/san-kum/pentad/internal/gate"
	"github.com/san-kum/pentad/internal/integrate"
	"github.com/san-kum/pentad/internal/resonance"
	"github.com/san-kum/pentad/internal/spectral"
)

// Config is the read-only configuration shared by runs.
type Config struct {
	Mode       dynamo.CouplingMode
	Coupling   dynamo.Coupling
	MaxDeltaPi float64
	MinPhi     float64
	Owner      string
}

// Orchestrator wires the core stages with the injected collaborators. It
// holds no per-run state, so independent runs may execute in parallel.
type Orchestrator struct {
	cfg      Config
	selector RouteSelector
	field    resonance.Field
	store    KnowledgeStore
	gate     *gate.Engine
}

func New(cfg Config, selector RouteSelector, field resonance.Field, store KnowledgeStore) *Orchestrator {
	if cfg.MaxDeltaPi == 0 {
		cfg.MaxDeltaPi = resonance.DefaultMaxDeltaPi
	}
	if cfg.MinPhi == 0 {
		cfg.MinPhi = resonance.DefaultMinPhi
	}
	return &Orchestrator{
		cfg:      cfg,
		selector: selector,
		field:    field,
		store:    store,
		gate:     gate.NewEngine(),
	}
}

// Run executes one full pipeline invocation. Cancellation before the final
// store hand-off is side-effect-free.
func (o *Orchestrator) Run(ctx context.Context, in Input) (*Output, error) {
	vf, err := dynamo.NewVectorField(o.cfg.Mode, o.cfg.Coupling, in.Params)
	if err != nil {
		return nil, err
	}

	tr, err := integrate.Run(ctx, vf, in.State, in.StepSize, in.Horizon)
	if err != nil {
		return nil, err
	}

	analyzer := spectral.NewAnalyzer()
	sig, err := analyzer.Analyze(tr)
	if err != nil {
		return nil, err
	}
	centroid, err := spectral.Centroid(tr)
	if err != nil {
		return nil, err
	}

	final := tr.Last()
	external := cube.FromState(final)

	routeSpec, err := o.selector.Select(final, in.Seed, sig.Rho)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrRouteSelection, err)
	}

	var proof resonance.Proof
	decision := gate.Hold
	if prev, curr, ok := tr.LastPair(); ok {
		r := o.field.Strength(prev, curr, tr.Times[tr.Len()-1])
		evaluator := resonance.NewEvaluator(o.cfg.MaxDeltaPi, o.cfg.MinPhi)
		proof = evaluator.Evaluate(prev, curr, r)
		decision = o.gate.Decide(proof)
	}

	rec := commit.NewBuilder(in.Seed).Build(final, proof.Phi)
	knowledge := &KnowledgeRecord{
		Identifier: knowledgeID(in.ID, routeSpec.RouteID, in.Seed),
		Owner:      o.cfg.Owner,
		RouteID:    routeSpec.RouteID,
		SeedPath:   in.SeedPath,
		Commit:     rec,
		Proof:      proof,
	}
	knowledge.Payload, err = json.Marshal(struct {
		External  cube.Point         `json:"external"`
		Signature spectral.Signature `json:"signature"`
		Centroid  dynamo.State       `json:"centroid"`
	}{external, sig, centroid})
	if err != nil {
		return nil, err
	}

	if decision == gate.Fire && o.store != nil {
		if err := o.store.Put(*knowledge); err != nil {
			return nil, err
		}
	}

	return &Output{
		Trajectory: tr,
		Signature:  sig,
		Centroid:   centroid,
		External:   external,
		Route:      routeSpec,
		Proof:      proof,
		Decision:   decision,
		Knowledge:  knowledge,
	}, nil
}

// knowledgeID derives the knowledge identifier from the external id, the
// route id, and the first 8 characters of the seed.
func knowledgeID(externalID, routeID, seed string) string {
	prefix := seed
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("%s:%s:%s", externalID, routeID, prefix)
}
