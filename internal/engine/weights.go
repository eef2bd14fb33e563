// Weight adaptation — communities learn to value what they lack.
package engine

import (
	"github.com/talgya/barterlands/internal/community"
	"github.com/talgya/barterlands/internal/resource"
)

// adaptWeights nudges the bartering weights toward the community's deficit
// shares, then injects Dirichlet exploration noise. The policy is identical
// for every community: weights stay on the simplex (sum 1) with every
// component at least the configured floor.
func (s *Simulation) adaptWeights(c *community.Community) {
	cfg := s.Config

	deficits := c.Deficits()
	if total := deficits.Sum(); total > 0 {
		lr := cfg.WeightLearningRate
		for _, k := range resource.Kinds {
			c.Weights[k] = (1-lr)*c.Weights[k] + lr*(deficits[k]/total)
		}
	}

	// Exploration noise: Dirichlet concentrated around the current weights.
	// Higher alpha means tighter perturbation.
	base := c.Weights.Normalize()
	alpha := make([]float64, resource.NumKinds)
	for i, k := range resource.Kinds {
		alpha[i] = cfg.WeightNoiseAlpha * base[k]
	}
	sample := s.src.Dirichlet(alpha)
	for i, k := range resource.Kinds {
		c.Weights[k] = sample[i]
	}

	c.Weights = floorSimplex(c.Weights, cfg.WeightFloor)
}

// floorSimplex projects a normalized weight vector back onto the simplex
// with every component at least floor. Mass above the floors is
// redistributed proportionally, so the result sums to one exactly.
func floorSimplex(w resource.Vector, floor float64) resource.Vector {
	w = w.Normalize()
	if floor <= 0 {
		return w
	}

	excess := 1 - float64(resource.NumKinds)*floor
	var above resource.Vector
	for _, k := range resource.Kinds {
		if w[k] > floor {
			above[k] = w[k] - floor
		}
	}
	totalAbove := above.Sum()
	for _, k := range resource.Kinds {
		if totalAbove > 0 {
			w[k] = floor + excess*above[k]/totalAbove
		} else {
			w[k] = 1.0 / resource.NumKinds
		}
	}
	return w
}
