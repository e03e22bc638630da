package commit

import (
	"testing"
	"time"

	"github.com/san-kum/pentad/internal/dynamo"
)

func TestBuildDeterministic(t *testing.T) {
	b := NewBuilder("seed-42")
	state := dynamo.State{0.1, 0.2, 0.3, 0.4, 0.5}

	first := b.Build(state, 0.987654321)
	time.Sleep(2 * time.Millisecond)
	second := b.Build(state, 0.987654321)

	if first.Digest != second.Digest {
		t.Errorf("digest must be independent of wall clock: %s vs %s", first.Digest, second.Digest)
	}
	if !second.CreatedAt.After(first.CreatedAt) {
		t.Error("timestamps must advance between builds")
	}
}

func TestBuildDigestShape(t *testing.T) {
	rec := NewBuilder("s").Build(dynamo.State{}, 0)
	if len(rec.Digest) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(rec.Digest))
	}
}

func TestBuildSensitivity(t *testing.T) {
	b := NewBuilder("seed")
	base := b.Build(dynamo.State{1, 0, 0, 0, 0}, 0.5)

	if got := b.Build(dynamo.State{1, 0, 0, 0, 1e-9}, 0.5); got.Digest == base.Digest {
		t.Error("digest must change with any state component")
	}
	if got := b.Build(dynamo.State{1, 0, 0, 0, 0}, 0.5000000001); got.Digest == base.Digest {
		t.Error("digest must change with phi at the 10th decimal")
	}
	if got := NewBuilder("other").Build(dynamo.State{1, 0, 0, 0, 0}, 0.5); got.Digest == base.Digest {
		t.Error("digest must change with the seed")
	}
}

func TestVerify(t *testing.T) {
	rec := NewBuilder("seed").Build(dynamo.State{1, 2, 3, 4, 5}, -0.25)

	if !Verify(rec, "seed") {
		t.Error("verify must accept an untampered record")
	}
	if Verify(rec, "wrong") {
		t.Error("verify must reject the wrong seed")
	}

	rec.State[0] = 1.5
	if Verify(rec, "seed") {
		t.Error("verify must reject a tampered state")
	}
}
