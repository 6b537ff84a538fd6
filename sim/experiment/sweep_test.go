package experiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/screening-sim/sim"
	"github.com/inference-sim/screening-sim/sim/internal/testutil"
)

func TestRange_Values(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4}, Range{2, 4}.Values())
	assert.Equal(t, []int{7}, Range{7, 7}.Values())
	assert.Nil(t, Range{3, 2}.Values())
}

func TestRange_Validate(t *testing.T) {
	assert.NoError(t, Range{1, 5}.Validate())
	assert.Error(t, Range{0, 5}.Validate())
	assert.Error(t, Range{4, 3}.Validate())
	assert.NoError(t, Range{1, sim.MaxStaffing}.Validate())
}

func TestSweep_Run_HugeRange_ReturnsError(t *testing.T) {
	// GIVEN a checker range reaching the largest int
	s := Sweep{Checkers: Range{1, math.MaxInt}, Scanners: Range{1, 1}, Base: sim.DefaultNetworkConfig()}

	// WHEN the sweep runs
	var results []Result
	var err error
	assert.NotPanics(t, func() { results, err = s.Run() })

	// THEN it is rejected before any configuration is built
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestSweep_Configurations_CheckersOuterScannersInner(t *testing.T) {
	s := Sweep{Checkers: Range{1, 2}, Scanners: Range{1, 3}, Base: sim.DefaultNetworkConfig()}

	var got [][2]int
	for _, c := range s.Configurations() {
		got = append(got, [2]int{c.Checkers, c.Scanners})
	}

	assert.Equal(t, [][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2}, {2, 3}}, got)
}

func TestSweep_Run_InvalidSweep_ReturnsError(t *testing.T) {
	tests := []struct {
		name  string
		sweep Sweep
	}{
		{"empty checker range", Sweep{Checkers: Range{3, 1}, Scanners: Range{1, 1}, Base: sim.DefaultNetworkConfig()}},
		{"zero scanners", Sweep{Checkers: Range{1, 1}, Scanners: Range{0, 1}, Base: sim.DefaultNetworkConfig()}},
		{"bad base", Sweep{Checkers: Range{1, 1}, Scanners: Range{1, 1}, Base: sim.NetworkConfig{Horizon: 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := tt.sweep.Run()
			assert.Error(t, err)
			assert.Nil(t, results)
		})
	}
}

func TestSweep_Run_MatchesGoldenCoarseGrid(t *testing.T) {
	// GIVEN the coarse baseline sweep
	golden := testutil.LoadGoldenDataset(t)
	want := golden.Sweep(t, "coarse")
	sweep := BaselineSweeps(sim.DefaultNetworkConfig())[0]
	require.Equal(t, "coarse", sweep.Name)

	// WHEN it runs
	results, err := sweep.Run()
	require.NoError(t, err)

	// THEN every trial matches the reference run in order
	require.Len(t, results, len(want.Trials))
	for i, r := range results {
		w := want.Trials[i]
		assert.Equal(t, i+1, r.Trial)
		assert.Equal(t, w.Checkers, r.Checkers)
		assert.Equal(t, w.Scanners, r.Scanners)
		assert.Equal(t, w.Completed, r.Completed, "trial %d", r.Trial)
		testutil.AssertFloat64Equal(t, "mean time", w.MeanTime, r.MeanTime, 1e-9)
	}
}

func TestSweep_Run_ParallelMatchesSequential(t *testing.T) {
	// GIVEN the same sweep run sequentially and on four workers
	base := sim.DefaultNetworkConfig()
	base.Horizon = 60
	seq := Sweep{Name: "seq", Checkers: Range{1, 3}, Scanners: Range{1, 4}, Base: base}
	par := seq
	par.Name = "par"
	par.Workers = 4

	a, err := seq.Run()
	require.NoError(t, err)
	b, err := par.Run()
	require.NoError(t, err)

	// THEN the results are identical and in iteration order
	assert.Equal(t, a, b)
}

func TestSweep_Run_ExtendedGrid_ThresholdSet(t *testing.T) {
	if testing.Short() {
		t.Skip("runs 225 full trials")
	}
	golden := testutil.LoadGoldenDataset(t)
	want := golden.Sweep(t, "extended")
	sweep := BaselineSweeps(sim.DefaultNetworkConfig())[1]
	sweep.Workers = 4

	results, err := sweep.Run()
	require.NoError(t, err)
	require.Len(t, results, len(want.Trials))
	for i, r := range results {
		testutil.AssertFloat64Equal(t, "mean time", want.Trials[i].MeanTime, r.MeanTime, 1e-9)
	}

	var got [][2]int
	for _, r := range MeetingThreshold(results, sim.DefaultThreshold) {
		got = append(got, [2]int{r.Checkers, r.Scanners})
	}
	assert.Equal(t, [][2]int{{14, 15}, {15, 14}, {15, 15}}, got)
}

func TestSweep_Run_ZeroHorizon_AllInf(t *testing.T) {
	base := sim.DefaultNetworkConfig()
	base.Horizon = 0
	results, err := Sweep{Checkers: Range{1, 2}, Scanners: Range{1, 2}, Base: base}.Run()
	require.NoError(t, err)

	for _, r := range results {
		assert.True(t, math.IsInf(r.MeanTime, 1))
		assert.Equal(t, 0, r.Completed)
	}
	assert.Empty(t, MeetingThreshold(results, sim.DefaultThreshold))
}

func TestMeetingThreshold_StrictlyBelow(t *testing.T) {
	results := []Result{
		{Trial: 1, MeanTime: 20},
		{Trial: 2, MeanTime: 15},
		{Trial: 3, MeanTime: 14.99},
		{Trial: 4, MeanTime: math.Inf(1)},
		{Trial: 5, MeanTime: 3},
	}

	got := MeetingThreshold(results, 15)

	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Trial)
	assert.Equal(t, 5, got[1].Trial)
}

func TestRunTrial_FreshStreamPerTrial(t *testing.T) {
	cfg := sim.DefaultNetworkConfig()
	first, err := RunTrial(cfg)
	require.NoError(t, err)
	second, err := RunTrial(cfg)
	require.NoError(t, err)

	assert.Equal(t, first.MeanTotalTime(), second.MeanTotalTime())
	assert.Equal(t, 304, first.Completed)
}
