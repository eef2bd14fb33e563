// Package community owns the per-community simulation state: the agent
// roster, the local resource supplies, the stockpile built up by gathering
// and trade, and the bartering weight vector.
package community

import (
	"github.com/talgya/barterlands/internal/agents"
	"github.com/talgya/barterlands/internal/entropy"
	"github.com/talgya/barterlands/internal/resource"
	"github.com/talgya/barterlands/internal/supply"
)

// Community is one resource-specialized settlement of gatherers.
type Community struct {
	ID   uint64
	Name string

	// Needs is the monthly survival threshold per resource.
	Needs resource.Vector
	// Stockpile accumulates gathering and trade; consumed against Needs at
	// the end of each generation.
	Stockpile resource.Vector
	// Weights is the bartering valuation vector, kept normalized to sum 1.
	Weights resource.Vector

	Agents   []*agents.Agent
	Supplies supply.Set

	// Per-generation tracking, reset after each record is emitted.
	Contribution   map[uint64]resource.Vector // agent ID → gathered this generation
	TradeVolume    resource.Vector            // net inflow (+) / outflow (−) per resource
	TradesExecuted int
	Births         int
	Deaths         int
}

// New creates an empty community. Agents and supplies are attached by the
// simulation setup.
func New(id uint64, name string, needs, weights resource.Vector) *Community {
	return &Community{
		ID:           id,
		Name:         name,
		Needs:        needs,
		Weights:      weights.Normalize(),
		Supplies:     make(supply.Set, resource.NumKinds),
		Contribution: make(map[uint64]resource.Vector),
	}
}

// Population returns the number of living agents.
func (c *Community) Population() int {
	n := 0
	for _, a := range c.Agents {
		if a.Alive {
			n++
		}
	}
	return n
}

// Deficit is max(0, need − stockpile) for one resource.
func (c *Community) Deficit(k resource.Kind) float64 {
	d := c.Needs[k] - c.Stockpile[k]
	if d < 0 {
		return 0
	}
	return d
}

// Surplus is max(0, stockpile − need) for one resource.
func (c *Community) Surplus(k resource.Kind) float64 {
	s := c.Stockpile[k] - c.Needs[k]
	if s < 0 {
		return 0
	}
	return s
}

// DeficitRatio is deficit/need, with zero need treated as zero deficit.
func (c *Community) DeficitRatio(k resource.Kind) float64 {
	if c.Needs[k] <= 0 {
		return 0
	}
	return c.Deficit(k) / c.Needs[k]
}

// Deficits returns the full deficit vector.
func (c *Community) Deficits() resource.Vector {
	var v resource.Vector
	for _, k := range resource.Kinds {
		v[k] = c.Deficit(k)
	}
	return v
}

// LackingKind returns the resource with the largest deficit ratio,
// earliest canonical kind on ties.
func (c *Community) LackingKind() resource.Kind {
	var ratios resource.Vector
	for _, k := range resource.Kinds {
		ratios[k] = c.DeficitRatio(k)
	}
	return ratios.MaxKind()
}

// GatherDay runs one simulated day: supplies regenerate, then every living
// agent gathers in roster order. Sequential by contract — the depletion
// sequence is part of run reproducibility.
func (c *Community) GatherDay(day int, baseRate, gatherNoise float64, src *entropy.Source) {
	for _, k := range resource.Kinds {
		c.Supplies[k].Regenerate(day)
	}

	var need, stocks resource.Vector
	for _, a := range c.Agents {
		if !a.Alive {
			continue
		}
		for _, k := range resource.Kinds {
			need[k] = 0.5*c.Weights[k] + 0.5*c.DeficitRatio(k)
			stocks[k] = c.Supplies[k].Stock()
		}
		chosen := a.Choose(need, stocks)

		jitter := 1.0
		if gatherNoise > 0 {
			jitter = 1 + src.Uniform(-gatherNoise, gatherNoise)
		}
		gathered := c.Supplies[chosen].Withdraw(a.GatherAmount(chosen, baseRate, jitter))
		if gathered > 0 {
			c.Stockpile.Add(chosen, gathered)
			contrib := c.Contribution[a.ID]
			contrib.Add(chosen, gathered)
			c.Contribution[a.ID] = contrib
		}
	}
}

// ContributionOf returns how much an agent gathered of one resource this
// generation.
func (c *Community) ContributionOf(agentID uint64, k resource.Kind) float64 {
	return c.Contribution[agentID][k]
}

// RemoveAgent marks an agent dead and drops it from the roster, preserving
// roster order for the survivors.
func (c *Community) RemoveAgent(id uint64) {
	for i, a := range c.Agents {
		if a.ID == id {
			a.Alive = false
			c.Agents = append(c.Agents[:i], c.Agents[i+1:]...)
			return
		}
	}
}

// ConsumeNeeds decays the stockpile by the survival threshold per resource,
// floored at zero. Applied once per generation after the record snapshot.
func (c *Community) ConsumeNeeds() {
	for _, k := range resource.Kinds {
		c.Stockpile[k] -= c.Needs[k]
		if c.Stockpile[k] < 0 {
			c.Stockpile[k] = 0
		}
	}
}

// ResetGeneration clears the per-generation counters and contribution ledger.
func (c *Community) ResetGeneration() {
	c.Contribution = make(map[uint64]resource.Vector)
	c.TradeVolume = resource.Vector{}
	c.TradesExecuted = 0
	c.Births = 0
	c.Deaths = 0
}
