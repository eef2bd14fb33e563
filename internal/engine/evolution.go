// Evolution — deficit-driven mortality and elitist-pair reproduction,
// applied once per generation per community, mortality first.
package engine

import (
	"math"
	"sort"

	"github.com/talgya/barterlands/internal/agents"
	"github.com/talgya/barterlands/internal/community"
	"github.com/talgya/barterlands/internal/resource"
)

// applyMortality removes the weakest contributors for each resource the
// community is short of. Losses per resource are
// floor(population × deficit/need × mortality_scale); zero need means zero
// deficit ratio. The population never drops below the configured floor.
func (s *Simulation) applyMortality(c *community.Community) {
	floor := s.Config.PopulationFloor

	for _, k := range resource.Kinds {
		ratio := c.DeficitRatio(k)
		if ratio <= 0 {
			continue
		}
		pop := c.Population()
		if pop <= floor {
			break
		}
		losses := int(math.Floor(float64(pop) * ratio * s.Config.MortalityScale))
		if losses > pop-floor {
			losses = pop - floor
		}
		if losses <= 0 {
			continue
		}

		// Weakest first: lowest amount gathered of this resource, ties
		// broken oldest first (lowest ID).
		ranked := append([]*agents.Agent(nil), c.Agents...)
		sort.SliceStable(ranked, func(i, j int) bool {
			ci := c.ContributionOf(ranked[i].ID, k)
			cj := c.ContributionOf(ranked[j].ID, k)
			if ci != cj {
				return ci < cj
			}
			return ranked[i].ID < ranked[j].ID
		})

		for _, a := range ranked[:losses] {
			c.RemoveAgent(a.ID)
			c.Deaths++
			s.event("death", "agent %d of %s starved (short of %s)", a.ID, c.Name, k)
		}
	}

	if c.Population() == 0 {
		s.event("collapse", "community %s has collapsed", c.Name)
	}
}

// applyReproduction adds exactly one offspring bred from the two strongest
// contributors to the community's most lacking resource. Parents survive;
// the population is only ever extended. Fewer than two living agents skips
// reproduction for this generation.
func (s *Simulation) applyReproduction(c *community.Community) {
	if c.Population() < 2 {
		return
	}

	lacking := c.LackingKind()
	ranked := append([]*agents.Agent(nil), c.Agents...)
	sort.SliceStable(ranked, func(i, j int) bool {
		ci := c.ContributionOf(ranked[i].ID, lacking)
		cj := c.ContributionOf(ranked[j].ID, lacking)
		if ci != cj {
			return ci > cj
		}
		return ranked[i].ID < ranked[j].ID
	})

	child := s.spawner.SpawnOffspring(ranked[0], ranked[1], s.Generation, s.Config.MutationSigma, s.src)
	c.Agents = append(c.Agents, child)
	c.Births++
	s.event("birth", "agent %d born in %s from parents %d and %d",
		child.ID, c.Name, ranked[0].ID, ranked[1].ID)
}
