package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"python3", "pypy", "uv"}, cfg.Runtimes)
	assert.Equal(t, 3, cfg.Trials)
	assert.Equal(t, 2, cfg.Warmup)
	assert.Equal(t, 600*time.Second, cfg.TrialTimeout)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Len(t, cfg.Benchmarks, 3)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Trials, cfg.Trials)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rtbench.yaml")
	content := `
runtimes: [python3]
trials: 7
warmup: 0
trial_timeout: 30s
benchmarks:
  - name: quick
    script: bench/quick.py
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"python3"}, cfg.Runtimes)
	assert.Equal(t, 7, cfg.Trials)
	assert.Equal(t, 0, cfg.Warmup)
	assert.Equal(t, 30*time.Second, cfg.TrialTimeout)
	require.Len(t, cfg.Benchmarks, 1)
	assert.Equal(t, "quick", cfg.Benchmarks[0].Name)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trials: [not a number"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero trials", func(c *Config) { c.Trials = 0 }, false},
		{"negative warmup", func(c *Config) { c.Warmup = -1 }, false},
		{"zero warmup ok", func(c *Config) { c.Warmup = 0 }, true},
		{"zero timeout", func(c *Config) { c.TrialTimeout = 0 }, false},
		{"zero probe timeout", func(c *Config) { c.ProbeTimeout = 0 }, false},
		{"no benchmarks", func(c *Config) { c.Benchmarks = nil }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFilterBenchmarks(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.FilterBenchmarks([]string{"mixed_io", "pure_python"}))
	require.Len(t, cfg.Benchmarks, 2)
	assert.Equal(t, "mixed_io", cfg.Benchmarks[0].Name)
	assert.Equal(t, "pure_python", cfg.Benchmarks[1].Name)
}

func TestFilterBenchmarksUnknownName(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.FilterBenchmarks([]string{"nope"}))
}

func TestFilterBenchmarksEmptyKeepsAll(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.FilterBenchmarks(nil))
	assert.Len(t, cfg.Benchmarks, 3)
}
