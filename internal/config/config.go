/*
PURPOSE:
  Defines the configuration structure and loading logic for Runtime Bench.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of runtimes, benchmarks, trial/warmup counts, and
    the per-trial timeout.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Trial count must be >= 1 and warmup >= 0; a zero timeout would kill
    every child instantly, so timeout must be positive.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing config file falls back to defaults.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults mirror the documented defaults: 3 trials, 2 warmups, 600s.

USAGE:
  cfg, err := config.Load("rtbench.yaml")

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Benchmark names one workload script and its optional capability gate.
type Benchmark struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script"`
	// Requires names a module the runtime must be able to import for this
	// benchmark to be attempted (e.g. "numpy"). Empty means no gate.
	Requires string `yaml:"requires,omitempty"`
}

// Config represents the full configuration for Runtime Bench.
type Config struct {
	// Runtimes is the ordered candidate list; order is also the tiebreak
	// order for baseline selection.
	Runtimes   []string    `yaml:"runtimes"`
	Benchmarks []Benchmark `yaml:"benchmarks"`

	Trials       int           `yaml:"trials"`
	Warmup       int           `yaml:"warmup"`
	TrialTimeout time.Duration `yaml:"trial_timeout"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	OutputDir  string `yaml:"output_dir"`
	OutputFile string `yaml:"output_file"` // empty means timestamped auto-name
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Runtimes: []string{"python3", "pypy", "uv"},
		Benchmarks: []Benchmark{
			{Name: "pure_python", Script: "benchmarks/pure_python_math.py"},
			{Name: "numpy_scipy", Script: "benchmarks/numpy_scipy_math.py", Requires: "numpy"},
			{Name: "mixed_io", Script: "benchmarks/mixed_heavy_io.py"},
		},
		Trials:       3,
		Warmup:       2,
		TrialTimeout: 600 * time.Second,
		ProbeTimeout: 5 * time.Second,
		OutputDir:    "results",
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"rtbench.yaml", "runtime_bench.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the numeric contract of the configuration.
func (c *Config) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("trials must be >= 1 (got %d)", c.Trials)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must be >= 0 (got %d)", c.Warmup)
	}
	if c.TrialTimeout <= 0 {
		return fmt.Errorf("trial_timeout must be positive (got %s)", c.TrialTimeout)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be positive (got %s)", c.ProbeTimeout)
	}
	if len(c.Benchmarks) == 0 {
		return fmt.Errorf("no benchmarks configured")
	}
	return nil
}

// FilterBenchmarks restricts the benchmark list to the given names.
// Unknown names are an error so a typo does not silently run nothing.
func (c *Config) FilterBenchmarks(names []string) error {
	if len(names) == 0 {
		return nil
	}
	byName := make(map[string]Benchmark, len(c.Benchmarks))
	for _, b := range c.Benchmarks {
		byName[b.Name] = b
	}
	var selected []Benchmark
	for _, name := range names {
		b, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown benchmark %q", name)
		}
		selected = append(selected, b)
	}
	c.Benchmarks = selected
	return nil
}
