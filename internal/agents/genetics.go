package agents

import (
	"github.com/talgya/barterlands/internal/entropy"
	"github.com/talgya/barterlands/internal/resource"
)

// Crossover produces offspring skills from two parents: element-wise average
// perturbed by independent Gaussian mutation draws, clamped to [0, SkillMax].
// Pure function of its inputs and the source state.
func Crossover(a, b resource.Vector, sigma float64, src *entropy.Source) resource.Vector {
	var child resource.Vector
	for _, k := range resource.Kinds {
		base := 0.5 * (a[k] + b[k])
		child[k] = src.Norm(base, sigma)
	}
	return child.Clamp(0, SkillMax)
}
