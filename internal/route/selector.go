// Package route provides the default deterministic route selector. Route
// selection is a collaborator of the pipeline, not part of the numerical
// core; the pipeline only sees the RouteSelector interface.
package route

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/rand"

	"github.com/san-kum/pentad/internal/commit"
	"github.com/san-kum/pentad/internal/dynamo"
)

// Spec identifies a selected route: a stable id, a permutation of the five
// dimensions, and the enhancement score carried through from the caller.
type Spec struct {
	RouteID     string  `json:"route_id"`
	Permutation []int   `json:"permutation"`
	Score       float64 `json:"score"`
}

// HashSelector derives the route from a sha256 digest of the final state and
// seed, so identical inputs always select the identical route.
type HashSelector struct{}

func NewHashSelector() *HashSelector {
	return &HashSelector{}
}

func (s *HashSelector) Select(final dynamo.State, seed string, score float64) (Spec, error) {
	sum := sha256.Sum256([]byte(commit.CanonicalEncoding(final, 0, seed)))

	src := rand.NewSource(int64(binary.BigEndian.Uint64(sum[:8])))
	perm := rand.New(src).Perm(dynamo.Dim)

	return Spec{
		RouteID:     "r-" + hex.EncodeToString(sum[:4]),
		Permutation: perm,
		Score:       score,
	}, nil
}
