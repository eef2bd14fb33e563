// Package config loads and validates simulation run configuration from YAML
// or JSON. Validation fails fast: a bad config never reaches the simulation.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/talgya/barterlands/internal/resource"
	"github.com/talgya/barterlands/internal/supply"
)

//go:embed config.schema.json
var schemaJSON string

// Config is the full run configuration.
type Config struct {
	Generations        int     `yaml:"generations" json:"generations"`
	DaysPerMonth       int     `yaml:"days_per_month" json:"days_per_month"`
	Seed               int64   `yaml:"seed" json:"seed"`
	BaseGatherRate     float64 `yaml:"base_gather_rate" json:"base_gather_rate"`
	GatherNoise        float64 `yaml:"gather_noise" json:"gather_noise"`
	MortalityScale     float64 `yaml:"mortality_scale" json:"mortality_scale"`
	MutationSigma      float64 `yaml:"mutation_sigma" json:"mutation_sigma"`
	WeightLearningRate float64 `yaml:"weight_learning_rate" json:"weight_learning_rate"`
	WeightNoiseAlpha   float64 `yaml:"weight_noise_alpha" json:"weight_noise_alpha"`
	WeightFloor        float64 `yaml:"weight_floor" json:"weight_floor"`
	RegenVariation     float64 `yaml:"regen_variation" json:"regen_variation"`
	PopulationFloor    int     `yaml:"population_floor" json:"population_floor"`

	Supply      SupplyParams    `yaml:"supply" json:"supply"`
	Communities []CommunitySpec `yaml:"communities" json:"communities"`
}

// SupplyParams holds cap and daily regeneration per endowment class.
type SupplyParams struct {
	CapAbundant   float64 `yaml:"cap_abundant" json:"cap_abundant"`
	CapScarce     float64 `yaml:"cap_scarce" json:"cap_scarce"`
	CapNone       float64 `yaml:"cap_none" json:"cap_none"`
	RegenAbundant float64 `yaml:"regen_abundant" json:"regen_abundant"`
	RegenScarce   float64 `yaml:"regen_scarce" json:"regen_scarce"`
	RegenNone     float64 `yaml:"regen_none" json:"regen_none"`
}

// Class returns the parameters for one endowment class.
func (p SupplyParams) Class(class supply.EndowmentClass) supply.ClassParams {
	switch class {
	case supply.Abundant:
		return supply.ClassParams{Cap: p.CapAbundant, Regen: p.RegenAbundant}
	case supply.Scarce:
		return supply.ClassParams{Cap: p.CapScarce, Regen: p.RegenScarce}
	default:
		return supply.ClassParams{Cap: p.CapNone, Regen: p.RegenNone}
	}
}

// CommunitySpec configures one community.
type CommunitySpec struct {
	Name              string             `yaml:"name" json:"name"`
	InitialPopulation int                `yaml:"initial_population" json:"initial_population"`
	Endowment         map[string]string  `yaml:"endowment" json:"endowment"`
	Thresholds        map[string]float64 `yaml:"thresholds" json:"thresholds"`
	Weights           map[string]float64 `yaml:"weights" json:"weights"`
}

// Default returns the reference three-community setup: each community
// abundant in one resource, scarce in a second, lacking the third.
func Default() Config {
	uniform := map[string]float64{"wood": 1, "livestock": 1, "stone": 1}
	thresholds := map[string]float64{"wood": 400, "livestock": 400, "stone": 400}
	return Config{
		Generations:        24,
		DaysPerMonth:       30,
		Seed:               42,
		BaseGatherRate:     10,
		GatherNoise:        0.1,
		MortalityScale:     0.5,
		MutationSigma:      0.75,
		WeightLearningRate: 0.25,
		WeightNoiseAlpha:   30,
		WeightFloor:        0.02,
		RegenVariation:     0.15,
		PopulationFloor:    1,
		Supply: SupplyParams{
			CapAbundant:   1000,
			CapScarce:     300,
			CapNone:       0,
			RegenAbundant: 80,
			RegenScarce:   15,
			RegenNone:     0,
		},
		Communities: []CommunitySpec{
			{
				Name:              "Woodland",
				InitialPopulation: 10,
				Endowment:         map[string]string{"wood": "abundant", "livestock": "none", "stone": "scarce"},
				Thresholds:        thresholds,
				Weights:           uniform,
			},
			{
				Name:              "Pasture",
				InitialPopulation: 10,
				Endowment:         map[string]string{"wood": "scarce", "livestock": "abundant", "stone": "none"},
				Thresholds:        thresholds,
				Weights:           uniform,
			},
			{
				Name:              "Quarry",
				InitialPopulation: 10,
				Endowment:         map[string]string{"wood": "none", "livestock": "scarce", "stone": "abundant"},
				Thresholds:        thresholds,
				Weights:           uniform,
			},
		},
	}
}

// Load reads a config file over the defaults. An empty path returns the
// validated defaults. JSON files are additionally checked against the
// embedded schema before decoding.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, cfg.Validate()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if filepath.Ext(path) == ".json" {
		if err := validateSchema(raw); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func validateSchema(raw []byte) error {
	schema, err := jsonschema.CompileString("config.schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

// Validate checks the configuration and returns the first problem found.
func (c Config) Validate() error {
	switch {
	case c.Generations <= 0:
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	case c.DaysPerMonth <= 0:
		return fmt.Errorf("days_per_month must be positive, got %d", c.DaysPerMonth)
	case c.BaseGatherRate <= 0:
		return fmt.Errorf("base_gather_rate must be positive, got %g", c.BaseGatherRate)
	case c.GatherNoise < 0 || c.GatherNoise >= 1:
		return fmt.Errorf("gather_noise must be in [0, 1), got %g", c.GatherNoise)
	case c.MortalityScale < 0:
		return fmt.Errorf("mortality_scale must be non-negative, got %g", c.MortalityScale)
	case c.MutationSigma < 0:
		return fmt.Errorf("mutation_sigma must be non-negative, got %g", c.MutationSigma)
	case c.WeightLearningRate < 0 || c.WeightLearningRate > 1:
		return fmt.Errorf("weight_learning_rate must be in [0, 1], got %g", c.WeightLearningRate)
	case c.WeightNoiseAlpha <= 0:
		return fmt.Errorf("weight_noise_alpha must be positive, got %g", c.WeightNoiseAlpha)
	case c.WeightFloor < 0 || c.WeightFloor >= 1.0/resource.NumKinds:
		return fmt.Errorf("weight_floor must be in [0, 1/3), got %g", c.WeightFloor)
	case c.RegenVariation < 0 || c.RegenVariation > 1:
		return fmt.Errorf("regen_variation must be in [0, 1], got %g", c.RegenVariation)
	case c.PopulationFloor < 0:
		return fmt.Errorf("population_floor must be non-negative, got %d", c.PopulationFloor)
	}

	if err := c.Supply.validate(); err != nil {
		return err
	}

	if len(c.Communities) < 2 {
		return fmt.Errorf("need at least 2 communities, got %d", len(c.Communities))
	}
	seen := make(map[string]bool, len(c.Communities))
	for i, cs := range c.Communities {
		if err := cs.validate(); err != nil {
			return fmt.Errorf("community %d: %w", i, err)
		}
		if seen[cs.Name] {
			return fmt.Errorf("duplicate community name %q", cs.Name)
		}
		seen[cs.Name] = true
	}
	return nil
}

func (p SupplyParams) validate() error {
	caps := map[string]float64{
		"cap_abundant": p.CapAbundant, "cap_scarce": p.CapScarce, "cap_none": p.CapNone,
		"regen_abundant": p.RegenAbundant, "regen_scarce": p.RegenScarce, "regen_none": p.RegenNone,
	}
	for name, v := range caps {
		if v < 0 {
			return fmt.Errorf("supply.%s must be non-negative, got %g", name, v)
		}
	}
	return nil
}

func (cs CommunitySpec) validate() error {
	if strings.TrimSpace(cs.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if cs.InitialPopulation < 0 {
		return fmt.Errorf("%s: initial_population must be non-negative, got %d", cs.Name, cs.InitialPopulation)
	}

	abundantCount := 0
	for _, k := range resource.Kinds {
		class, ok := cs.Endowment[k.String()]
		if !ok {
			return fmt.Errorf("%s: endowment missing resource %q", cs.Name, k)
		}
		if !validClass(class) {
			return fmt.Errorf("%s: unknown endowment class %q for %s%s",
				cs.Name, class, k, suggestClass(class))
		}
		if supply.EndowmentClass(class) == supply.Abundant {
			abundantCount++
		}
	}
	if abundantCount != 1 {
		return fmt.Errorf("%s: exactly one resource must be abundant, got %d", cs.Name, abundantCount)
	}

	for key := range cs.Endowment {
		if _, err := resource.ParseKind(key); err != nil {
			return fmt.Errorf("%s: endowment: unknown resource %q%s", cs.Name, key, suggestResource(key))
		}
	}
	for key, v := range cs.Thresholds {
		if _, err := resource.ParseKind(key); err != nil {
			return fmt.Errorf("%s: thresholds: unknown resource %q%s", cs.Name, key, suggestResource(key))
		}
		if v < 0 {
			return fmt.Errorf("%s: threshold for %s must be non-negative, got %g", cs.Name, key, v)
		}
	}
	weightSum := 0.0
	for key, v := range cs.Weights {
		if _, err := resource.ParseKind(key); err != nil {
			return fmt.Errorf("%s: weights: unknown resource %q%s", cs.Name, key, suggestResource(key))
		}
		if v < 0 {
			return fmt.Errorf("%s: weight for %s must be non-negative, got %g", cs.Name, key, v)
		}
		weightSum += v
	}
	if len(cs.Weights) > 0 && weightSum <= 0 {
		return fmt.Errorf("%s: weights must have positive total", cs.Name)
	}
	return nil
}

func validClass(s string) bool {
	for _, c := range supply.Classes {
		if string(c) == s {
			return true
		}
	}
	return false
}

// NeedsVector converts the threshold map to a resource vector. Missing
// resources default to zero.
func (cs CommunitySpec) NeedsVector() resource.Vector {
	return toVector(cs.Thresholds, 0)
}

// WeightsVector converts the weight map to a resource vector. Missing
// resources default to one (uniform valuation).
func (cs CommunitySpec) WeightsVector() resource.Vector {
	return toVector(cs.Weights, 1)
}

// EndowmentClass returns the configured class for one resource.
func (cs CommunitySpec) EndowmentClass(k resource.Kind) supply.EndowmentClass {
	return supply.EndowmentClass(cs.Endowment[k.String()])
}

func toVector(m map[string]float64, fallback float64) resource.Vector {
	var v resource.Vector
	for _, k := range resource.Kinds {
		if val, ok := m[k.String()]; ok {
			v[k] = val
		} else {
			v[k] = fallback
		}
	}
	return v
}
