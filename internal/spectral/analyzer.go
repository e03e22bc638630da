// Package spectral extracts a compact statistical signature from a
// trajectory: an entropy-like dispersion measure, a bounded coherence
// measure, and a dominant-frequency estimate.
package spectral

import (
	"math"

	"github.com/san-kum/pentad/internal/dynamo"
	"github.com/san-kum/pentad/internal/integrate"
)

// entropyBins is the histogram resolution of the Psi estimator.
const entropyBins = 16

// Signature is the three-value summary of a trajectory's shape.
type Signature struct {
	// Psi is the normalized Shannon entropy of the per-sample norm
	// distribution, in [0,1]. 0 for a constant distribution.
	Psi float64
	// Rho is the mean absolute cosine alignment of consecutive samples,
	// in [0,1]. 0 for fewer than two samples or a degenerate trajectory.
	Rho float64
	// Omega is the zero-crossing frequency estimate (Hz) of the
	// mean-removed component-0 series. 0 when the series is too short.
	Omega float64
}

// Analyzer computes signatures. The scratch buffer is owned by one pipeline
// run at a time; an Analyzer must not be shared between concurrent runs.
type Analyzer struct {
	buf []float64
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze produces the signature of a non-empty trajectory.
func (a *Analyzer) Analyze(tr integrate.Trajectory) (Signature, error) {
	if tr.Len() == 0 {
		return Signature{}, dynamo.ErrEmptySequence
	}

	norms := a.norms(tr)
	return Signature{
		Psi:   binEntropy(norms),
		Rho:   coherence(tr),
		Omega: zeroCrossingFrequency(tr),
	}, nil
}

func (a *Analyzer) norms(tr integrate.Trajectory) []float64 {
	if cap(a.buf) < tr.Len() {
		a.buf = make([]float64, tr.Len())
	}
	a.buf = a.buf[:tr.Len()]
	for i, s := range tr.States {
		a.buf[i] = s.Norm()
	}
	return a.buf
}

// binEntropy is the normalized Shannon entropy of values over equal-width
// bins: H / ln(bins). A constant distribution has entropy 0.
func binEntropy(values []float64) float64 {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return 0
	}

	var counts [entropyBins]int
	width := (hi - lo) / entropyBins
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= entropyBins {
			idx = entropyBins - 1
		}
		counts[idx]++
	}

	n := float64(len(values))
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log(p)
	}
	return h / math.Log(entropyBins)
}

func coherence(tr integrate.Trajectory) float64 {
	if tr.Len() < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < tr.Len(); i++ {
		sum += math.Abs(dynamo.Cosine(tr.States[i-1], tr.States[i]))
	}
	return sum / float64(tr.Len()-1)
}

func zeroCrossingFrequency(tr integrate.Trajectory) float64 {
	if tr.Len() < 2 {
		return 0
	}

	series := tr.Component(0)
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	crossings := 0
	prev := 0.0
	for _, v := range series {
		centered := v - mean
		if centered == 0 {
			continue
		}
		if prev != 0 && (centered > 0) != (prev > 0) {
			crossings++
		}
		prev = centered
	}

	elapsed := tr.Times[tr.Len()-1] - tr.Times[0]
	if elapsed <= 0 {
		return 0
	}
	return float64(crossings) / (2 * elapsed)
}

// Centroid is the per-component mean across the whole trajectory.
func Centroid(tr integrate.Trajectory) (dynamo.State, error) {
	if tr.Len() == 0 {
		return dynamo.State{}, dynamo.ErrEmptySequence
	}

	var sum dynamo.State
	for _, s := range tr.States {
		sum = sum.Add(s)
	}
	return sum.Scale(1 / float64(tr.Len())), nil
}
