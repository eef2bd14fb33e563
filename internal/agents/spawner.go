package agents

import (
	"github.com/talgya/barterlands/internal/entropy"
	"github.com/talgya/barterlands/internal/resource"
)

// Spawner creates agents with monotonically increasing IDs. ID order doubles
// as creation order, which the mortality and reproduction tie-breaks rely on.
type Spawner struct {
	nextID uint64
}

// NewSpawner creates an agent spawner.
func NewSpawner() *Spawner {
	return &Spawner{nextID: 1}
}

// SpawnInitial creates one founding agent with uniform random skills.
func (s *Spawner) SpawnInitial(src *entropy.Source) *Agent {
	var skills resource.Vector
	for _, k := range resource.Kinds {
		skills[k] = src.Uniform(0, SkillMax)
	}
	return s.spawn(skills, 0)
}

// SpawnOffspring creates one child of two parents in the given generation.
func (s *Spawner) SpawnOffspring(p1, p2 *Agent, generation int, sigma float64, src *entropy.Source) *Agent {
	return s.spawn(Crossover(p1.Skills, p2.Skills, sigma, src), generation)
}

func (s *Spawner) spawn(skills resource.Vector, generation int) *Agent {
	a := &Agent{
		ID:             s.nextID,
		Skills:         skills,
		BornGeneration: generation,
		Alive:          true,
	}
	s.nextID++
	return a
}
