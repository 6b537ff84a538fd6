package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/screening-sim/sim"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_ExampleFile(t *testing.T) {
	// GIVEN the example scenario shipped in testdata
	sc, err := LoadScenario(filepath.Join("..", "testdata", "scenario_example.yaml"))
	require.NoError(t, err)
	require.NoError(t, sc.Validate())

	// WHEN applied over the defaults
	cfg := sim.DefaultNetworkConfig()
	sc.Apply(&cfg)

	// THEN every field set in the file overrides the default
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 120.0, cfg.Horizon)
	assert.Equal(t, 0.9, cfg.IDServiceTime)
	assert.Equal(t, 0.04, cfg.ArrivalInterval)
	assert.Equal(t, 1.2, cfg.ScannerTimeMax)
	require.NotNil(t, sc.Threshold)
	assert.Equal(t, 10.0, *sc.Threshold)

	sweeps := sc.SweepsFor(cfg)
	require.Len(t, sweeps, 1)
	assert.Equal(t, "evening", sweeps[0].Name)
	assert.Equal(t, 10, sweeps[0].Checkers.Min)
	assert.Equal(t, 15, sweeps[0].Scanners.Max)
	assert.Equal(t, cfg, sweeps[0].Base)
}

func TestLoadScenario_PartialFile_KeepsDefaults(t *testing.T) {
	path := writeScenario(t, "horizon: 60\n")
	sc, err := LoadScenario(path)
	require.NoError(t, err)

	cfg := sim.DefaultNetworkConfig()
	sc.Apply(&cfg)

	assert.Equal(t, 60.0, cfg.Horizon)
	assert.Equal(t, sim.DefaultSeed, cfg.Seed)
	assert.Equal(t, sim.DefaultIDServiceTime, cfg.IDServiceTime)
	assert.Equal(t, "shortest-queue", cfg.RoutingPolicy)
	assert.Nil(t, sc.SweepsFor(cfg))
}

func TestLoadScenario_ExplicitZeroSeed_Overrides(t *testing.T) {
	path := writeScenario(t, "seed: 0\n")
	sc, err := LoadScenario(path)
	require.NoError(t, err)

	cfg := sim.DefaultNetworkConfig()
	sc.Apply(&cfg)
	assert.Equal(t, int64(0), cfg.Seed)
}

func TestLoadScenario_UnknownKey_Rejected(t *testing.T) {
	path := writeScenario(t, "horizn: 60\n")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing scenario")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scenario")
}

func TestScenario_SweepsFor_DefaultNames(t *testing.T) {
	path := writeScenario(t, `
sweeps:
  - checkers: {min: 1, max: 2}
    scanners: {min: 1, max: 2}
  - checkers: {min: 3, max: 3}
    scanners: {min: 3, max: 3}
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)

	sweeps := sc.SweepsFor(sim.DefaultNetworkConfig())
	require.Len(t, sweeps, 2)
	assert.Equal(t, "sweep_0", sweeps[0].Name)
	assert.Equal(t, "sweep_1", sweeps[1].Name)
}

func TestScenario_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown routing", "routing_policy: fastest\n"},
		{"zero threshold", "threshold: 0\n"},
		{"empty checker range", "sweeps:\n  - checkers: {min: 3, max: 2}\n    scanners: {min: 1, max: 1}\n"},
		{"zero scanners", "sweeps:\n  - checkers: {min: 1, max: 1}\n    scanners: {min: 0, max: 1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := LoadScenario(writeScenario(t, tt.body))
			require.NoError(t, err)
			assert.Error(t, sc.Validate())
		})
	}
}
