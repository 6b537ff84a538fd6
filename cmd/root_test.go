package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/screening-sim/sim"
	"github.com/inference-sim/screening-sim/sim/experiment"
	"github.com/inference-sim/screening-sim/sim/trace"
)

func TestRootFlags_DefaultsMatchBaseline(t *testing.T) {
	pf := rootCmd.PersistentFlags()
	tests := map[string]string{
		"seed":             "42",
		"horizon":          "240",
		"id-service-time":  "0.75",
		"arrival-interval": "0.05",
		"scanner-time-min": "0.5",
		"scanner-time-max": "1",
		"threshold":        "15",
		"routing":          "shortest-queue",
		"workers":          "1",
		"log":              "error",
	}
	for name, want := range tests {
		f := pf.Lookup(name)
		require.NotNil(t, f, "flag --%s", name)
		assert.Equal(t, want, f.DefValue, "flag --%s", name)
	}
}

func TestSubcommands_Registered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["sweep"])
}

func TestRunSingle_BaselinePrintsMetrics(t *testing.T) {
	// GIVEN the baseline configuration with one checker and one scanner
	var buf bytes.Buffer

	// WHEN it is run with decision tracing
	err := runSingle(&buf, sim.DefaultNetworkConfig(), sim.DefaultThreshold, trace.TraceLevelDecisions)
	require.NoError(t, err)

	// THEN the report carries the reference mean and a failed service level
	out := buf.String()
	assert.Contains(t, out, "Configuration: 1 ID Checkers, 1 Scanners")
	assert.Contains(t, out, "Completed Passengers : 304")
	assert.Contains(t, out, "Average Time         : 116.62 minutes")
	assert.Contains(t, out, "misses the 15-minute target")
	assert.Contains(t, out, "=== Routing Trace ===")
	assert.Contains(t, out, "Decisions            : ")
	assert.NotContains(t, out, "Journeys Recorded")
}

func TestRunSingle_NoTrace_OmitsTraceSection(t *testing.T) {
	var buf bytes.Buffer
	cfg := sim.DefaultNetworkConfig().WithStaffing(15, 15)
	require.NoError(t, runSingle(&buf, cfg, sim.DefaultThreshold, trace.TraceLevelNone))

	assert.Contains(t, buf.String(), "meets the 15-minute target")
	assert.NotContains(t, buf.String(), "Routing Trace")
}

func TestRunSweeps_PrintsReportPerSweep(t *testing.T) {
	// GIVEN two small sweeps
	base := sim.DefaultNetworkConfig()
	sweeps := []experiment.Sweep{
		{Name: "a", Checkers: experiment.Range{Min: 1, Max: 1}, Scanners: experiment.Range{Min: 1, Max: 2}, Base: base},
		{Name: "b", Checkers: experiment.Range{Min: 5, Max: 5}, Scanners: experiment.Range{Min: 5, Max: 5}, Base: base},
	}
	var buf bytes.Buffer

	// WHEN both run
	require.NoError(t, runSweeps(&buf, sweeps, sim.DefaultThreshold))

	// THEN each sweep prints its own header and numbering restarts at 1
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "Airport Security Simulation Results"))
	assert.Contains(t, out, "Trial 1: 1 ID Checkers, 1 Scanners - Avg Time: 116.62 minutes")
	assert.Contains(t, out, "Trial 1: 5 ID Checkers, 5 Scanners - Avg Time: ")
	assert.Equal(t, 2, strings.Count(out, "Configurations with Average Time < 15 Minutes:"))
}

func TestRunSweeps_InvalidSweep_ReturnsError(t *testing.T) {
	sweeps := []experiment.Sweep{{Name: "bad", Checkers: experiment.Range{Min: 2, Max: 1}, Scanners: experiment.Range{Min: 1, Max: 1}, Base: sim.DefaultNetworkConfig()}}
	var buf bytes.Buffer
	assert.Error(t, runSweeps(&buf, sweeps, sim.DefaultThreshold))
	assert.Empty(t, buf.String())
}
