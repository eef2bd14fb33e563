// Package entropy provides the single seeded randomness source for a
// simulation run. Every stochastic draw in the pipeline comes from one
// Source, in a fixed order, so equal seeds reproduce equal runs.
package entropy

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
)

// Source is a deterministic PRNG stream for one run.
type Source struct {
	rng *rand.Rand
}

// New creates a Source from a run seed.
func New(seed int64) *Source {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return &Source{rng: rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))}
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// Float64 returns a uniform draw in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Uniform returns a uniform draw in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// Norm returns a Gaussian draw with the given mean and standard deviation.
func (s *Source) Norm(mean, sigma float64) float64 {
	return mean + sigma*s.rng.NormFloat64()
}

// Dirichlet returns a draw from a Dirichlet distribution with the given
// concentration parameters. Non-positive parameters are floored at a small
// epsilon. The result sums to one.
func (s *Source) Dirichlet(alpha []float64) []float64 {
	out := make([]float64, len(alpha))
	var total float64
	for i, a := range alpha {
		if a < 1e-6 {
			a = 1e-6
		}
		out[i] = s.gamma(a)
		total += out[i]
	}
	if total <= 0 {
		for i := range out {
			out[i] = 1.0 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] /= total
	}
	return out
}

// gamma draws from Gamma(shape, 1) using Marsaglia–Tsang squeeze sampling.
func (s *Source) gamma(shape float64) float64 {
	if shape < 1 {
		// Boost: Gamma(a) = Gamma(a+1) * U^(1/a)
		u := s.rng.Float64()
		for u == 0 {
			u = s.rng.Float64()
		}
		return s.gamma(shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		var x, v float64
		for {
			x = s.rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := s.rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if u > 0 && math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}
