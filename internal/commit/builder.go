// Package commit produces the hashed, timestamped artifact recorded when a
// transition is accepted.
package commit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/pentad/internal/dynamo"
)

// Record bundles the digest with its inputs. CreatedAt is audit metadata
// only and is excluded from the digest, so the digest is reproducible.
type Record struct {
	State     dynamo.State `json:"state"`
	Phi       float64      `json:"phi"`
	Digest    string       `json:"digest"`
	CreatedAt time.Time    `json:"created_at"`
}

// Builder hashes (state, phi, seed) into a fixed-length hex digest.
type Builder struct {
	Seed string
}

func NewBuilder(seed string) *Builder {
	return &Builder{Seed: seed}
}

// Build computes the sha256 digest over the canonical encoding of the state
// components, phi at 10 decimal digits, and the seed. Identical inputs yield
// an identical digest regardless of call order, wall clock, or process.
func (b *Builder) Build(state dynamo.State, phi float64) Record {
	h := sha256.New()
	h.Write([]byte(CanonicalEncoding(state, phi, b.Seed)))

	return Record{
		State:     state,
		Phi:       phi,
		Digest:    hex.EncodeToString(h.Sum(nil)),
		CreatedAt: time.Now().UTC(),
	}
}

// CanonicalEncoding is the exact text hashed into the digest: components at
// 17 significant digits, phi at 10 decimal digits, then the seed.
func CanonicalEncoding(state dynamo.State, phi float64, seed string) string {
	parts := make([]string, 0, dynamo.Dim)
	for _, v := range state {
		parts = append(parts, strconv.FormatFloat(v, 'g', 17, 64))
	}
	return fmt.Sprintf("[%s];phi=%.10f;seed=%s", strings.Join(parts, ","), phi, seed)
}

// Verify recomputes the digest for a record against a seed.
func Verify(rec Record, seed string) bool {
	h := sha256.New()
	h.Write([]byte(CanonicalEncoding(rec.State, rec.Phi, seed)))
	return hex.EncodeToString(h.Sum(nil)) == rec.Digest
}
