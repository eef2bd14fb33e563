// Package engine drives the simulation: the daily gathering loop and the
// end-of-month barter, evolution, and weight-adaptation pipeline.
package engine

import (
	"fmt"
	"log/slog"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/barterlands/internal/agents"
	"github.com/talgya/barterlands/internal/community"
	"github.com/talgya/barterlands/internal/config"
	"github.com/talgya/barterlands/internal/entropy"
	"github.com/talgya/barterlands/internal/resource"
	"github.com/talgya/barterlands/internal/supply"
)

// Simulation holds the complete mutable run state. All pipeline stages
// operate on this one structure; there are no package-level globals.
type Simulation struct {
	Config      config.Config
	Communities []*community.Community
	Generation  int // most recently completed generation, 0 before the first
	Events      []Event

	// OnGeneration, when set, receives each community record as it is
	// emitted, in order.
	OnGeneration func(Record)

	src     *entropy.Source
	spawner *agents.Spawner
	records []Record
}

// Event is a notable occurrence during the run.
type Event struct {
	Generation  int    `json:"generation" db:"generation"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "birth", "death", "trade", "collapse"
}

// New builds a Simulation from a validated configuration: communities with
// their endowed supplies and founding populations, and the single seeded
// randomness source for the whole run.
func New(cfg config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	src := entropy.New(cfg.Seed)
	var noise opensimplex.Noise
	if cfg.RegenVariation > 0 {
		noise = opensimplex.New(cfg.Seed)
	}

	sim := &Simulation{
		Config:  cfg,
		src:     src,
		spawner: agents.NewSpawner(),
	}

	for i, cs := range cfg.Communities {
		c := community.New(uint64(i+1), cs.Name, cs.NeedsVector(), cs.WeightsVector())
		for ki, k := range resource.Kinds {
			class := cs.EndowmentClass(k)
			sup := supply.New(class, cfg.Supply.Class(class))
			if noise != nil {
				channel := float64(i*resource.NumKinds + ki)
				sup = sup.WithVariation(noise, channel, cfg.RegenVariation)
			}
			c.Supplies[k] = sup
		}
		for n := 0; n < cs.InitialPopulation; n++ {
			c.Agents = append(c.Agents, sim.spawner.SpawnInitial(src))
		}
		sim.Communities = append(sim.Communities, c)
	}

	return sim, nil
}

// Run executes the configured number of generations and returns every
// emitted record in order. A run always terminates; resource exhaustion and
// population collapse are steady-state conditions, never errors.
func (s *Simulation) Run() []Record {
	for g := 0; g < s.Config.Generations; g++ {
		s.RunGeneration()
	}
	return s.records
}

// Records returns the records emitted so far.
func (s *Simulation) Records() []Record {
	return s.records
}

// RunGeneration advances one month: gather days, barter, mortality,
// reproduction, weight adaptation, record emission, consumption.
func (s *Simulation) RunGeneration() {
	s.Generation++
	cfg := s.Config

	// Daily loop. The day index continues across generations so regen
	// variation drifts smoothly over the whole run.
	startDay := (s.Generation - 1) * cfg.DaysPerMonth
	for d := 1; d <= cfg.DaysPerMonth; d++ {
		for _, c := range s.Communities {
			if c.Population() == 0 {
				continue
			}
			c.GatherDay(startDay+d, cfg.BaseGatherRate, cfg.GatherNoise, s.src)
		}
	}

	trades := s.runBarter()

	for _, c := range s.Communities {
		if c.Population() == 0 {
			continue
		}
		s.applyMortality(c)
		s.applyReproduction(c)
		s.adaptWeights(c)
	}

	for _, c := range s.Communities {
		rec := s.snapshot(c)
		s.records = append(s.records, rec)
		if s.OnGeneration != nil {
			s.OnGeneration(rec)
		}
	}

	s.logGeneration(trades)

	for _, c := range s.Communities {
		c.ConsumeNeeds()
		c.ResetGeneration()
	}
}

func (s *Simulation) logGeneration(trades []Trade) {
	totalPop, totalBirths, totalDeaths := 0, 0, 0
	for _, c := range s.Communities {
		totalPop += c.Population()
		totalBirths += c.Births
		totalDeaths += c.Deaths
	}
	slog.Info("generation complete",
		"generation", s.Generation,
		"population", totalPop,
		"births", totalBirths,
		"deaths", totalDeaths,
		"trades", len(trades),
	)
	for _, c := range s.Communities {
		slog.Debug("community state",
			"generation", s.Generation,
			"community", c.Name,
			"population", c.Population(),
			"stock_wood", fmt.Sprintf("%.1f", c.Stockpile[resource.Wood]),
			"stock_livestock", fmt.Sprintf("%.1f", c.Stockpile[resource.Livestock]),
			"stock_stone", fmt.Sprintf("%.1f", c.Stockpile[resource.Stone]),
			"lacking", c.LackingKind(),
		)
	}
}

func (s *Simulation) event(category, format string, args ...any) {
	s.Events = append(s.Events, Event{
		Generation:  s.Generation,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	})
}
