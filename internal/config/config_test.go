package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero generations", func(c *Config) { c.Generations = 0 }, "generations"},
		{"negative generations", func(c *Config) { c.Generations = -3 }, "generations"},
		{"zero days", func(c *Config) { c.DaysPerMonth = 0 }, "days_per_month"},
		{"bad gather rate", func(c *Config) { c.BaseGatherRate = 0 }, "base_gather_rate"},
		{"gather noise too high", func(c *Config) { c.GatherNoise = 1 }, "gather_noise"},
		{"negative mortality", func(c *Config) { c.MortalityScale = -0.1 }, "mortality_scale"},
		{"learning rate over one", func(c *Config) { c.WeightLearningRate = 1.5 }, "weight_learning_rate"},
		{"weight floor too big", func(c *Config) { c.WeightFloor = 0.4 }, "weight_floor"},
		{"negative population floor", func(c *Config) { c.PopulationFloor = -1 }, "population_floor"},
		{"negative supply cap", func(c *Config) { c.Supply.CapScarce = -1 }, "supply"},
		{"one community", func(c *Config) { c.Communities = c.Communities[:1] }, "at least 2"},
		{"negative population", func(c *Config) { c.Communities[0].InitialPopulation = -5 }, "initial_population"},
		{"negative threshold", func(c *Config) { c.Communities[0].Thresholds["wood"] = -1 }, "threshold"},
		{"two abundant resources", func(c *Config) {
			c.Communities[0].Endowment["livestock"] = "abundant"
		}, "exactly one"},
		{"duplicate names", func(c *Config) { c.Communities[1].Name = c.Communities[0].Name }, "duplicate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateSuggestsEndowmentClass(t *testing.T) {
	cfg := Default()
	cfg.Communities[0].Endowment["wood"] = "abundent"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), `did you mean "abundant"`) {
		t.Fatalf("no suggestion in error: %q", err)
	}
}

func TestValidateSuggestsResourceName(t *testing.T) {
	cfg := Default()
	cfg.Communities[0].Thresholds["livestok"] = 100
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), `did you mean "livestock"`) {
		t.Fatalf("no suggestion in error: %q", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Generations != 24 || len(cfg.Communities) != 3 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	body := "generations: 5\nseed: 7\nmortality_scale: 0.25\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Generations != 5 || cfg.Seed != 7 || cfg.MortalityScale != 0.25 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.DaysPerMonth != 30 || len(cfg.Communities) != 3 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadYAMLFailsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("generations: -2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation failure from loaded file")
	}
}

func TestLoadJSONValidatedAgainstSchema(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "run.json")
	if err := os.WriteFile(good, []byte(`{"generations": 5, "seed": 7}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(good)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if cfg.Generations != 5 || cfg.Seed != 7 {
		t.Fatalf("json overrides not applied: %+v", cfg)
	}

	// Wrong type is caught by the schema before decoding.
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"generations": "many"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "schema") {
		t.Fatalf("schema violation not reported: %v", err)
	}

	// Unknown top-level keys are rejected too.
	unknown := filepath.Join(dir, "unknown.json")
	if err := os.WriteFile(unknown, []byte(`{"generatoins": 5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(unknown); err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestCommunitySpecVectors(t *testing.T) {
	cs := Default().Communities[0]
	needs := cs.NeedsVector()
	if needs.Sum() != 1200 {
		t.Fatalf("needs sum = %g, want 1200", needs.Sum())
	}
	weights := cs.WeightsVector()
	if weights.Sum() != 3 {
		t.Fatalf("weights sum = %g, want 3", weights.Sum())
	}
}
