// Package testutil provides shared test infrastructure for the screening simulator.
// It holds the golden sweep types and assertion helpers used across sim/ and
// sim/experiment/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/baseline_sweep.json: the baseline
// sweeps captured from the reference run.
type GoldenDataset struct {
	Seed            int64         `json:"seed"`
	Horizon         float64       `json:"horizon"`
	IDServiceTime   float64       `json:"id_service_time"`
	ArrivalInterval float64       `json:"arrival_interval"`
	ScannerTimeMin  float64       `json:"scanner_time_min"`
	ScannerTimeMax  float64       `json:"scanner_time_max"`
	Threshold       float64       `json:"threshold"`
	Sweeps          []GoldenSweep `json:"sweeps"`
}

// GoldenSweep is one sweep over 1..MaxStaff checkers and scanners.
type GoldenSweep struct {
	Name     string        `json:"name"`
	MaxStaff int           `json:"max_staff"`
	Trials   []GoldenTrial `json:"trials"`
}

// GoldenTrial is the expected outcome of one configuration.
type GoldenTrial struct {
	Checkers  int     `json:"checkers"`
	Scanners  int     `json:"scanners"`
	MeanTime  float64 `json:"mean_time"`
	Completed int     `json:"completed"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "baseline_sweep.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// Sweep returns the named sweep or fails the test.
func (d *GoldenDataset) Sweep(t *testing.T, name string) GoldenSweep {
	t.Helper()
	for _, s := range d.Sweeps {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("golden dataset has no sweep %q", name)
	return GoldenSweep{}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == got {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
