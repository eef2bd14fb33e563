// Package agents holds the individual gatherers: their skill traits, the
// deterministic daily resource choice, and the genetics used for offspring.
package agents

import "github.com/talgya/barterlands/internal/resource"

// SkillMax is the upper bound of a gathering skill. Skills live in [0, SkillMax].
const SkillMax = 10.0

// Agent is one gatherer. Skills are fixed at birth; only the genetic
// mutation applied during crossover ever changes a lineage's skills.
type Agent struct {
	ID             uint64
	Skills         resource.Vector
	BornGeneration int
	Alive          bool
}

// Choose picks the resource this agent gathers today: the one maximizing a
// need-weighted skill score. need carries the community's per-resource need
// factor, supplyStock the remaining local stock (a near-empty supply is
// heavily disincentivized but not forbidden). Ties break in canonical
// resource order, which keeps runs reproducible.
func (a *Agent) Choose(need, supplyStock resource.Vector) resource.Kind {
	var utility resource.Vector
	for _, k := range resource.Kinds {
		score := (a.Skills[k] / SkillMax) * need[k]
		if supplyStock[k] <= 1e-6 {
			score *= 0.1
		}
		utility[k] = score
	}
	return utility.MaxKind()
}

// GatherAmount returns the units this agent attempts to gather today for a
// resource, before the supply caps it. jitter is a pre-drawn multiplier
// around 1.0 from the run's randomness source.
func (a *Agent) GatherAmount(k resource.Kind, baseRate, jitter float64) float64 {
	return baseRate * (a.Skills[k] / SkillMax) * jitter
}
