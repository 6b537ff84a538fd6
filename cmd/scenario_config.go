package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/screening-sim/sim"
	"github.com/inference-sim/screening-sim/sim/experiment"
)

// Scenario represents a checkpoint scenario file.
// Nil pointer fields mean "not set in YAML"; they do not override the defaults.
// String fields use empty string for "not set".
type Scenario struct {
	Seed            *int64      `yaml:"seed"`
	Horizon         *float64    `yaml:"horizon"`
	IDServiceTime   *float64    `yaml:"id_service_time"`
	ArrivalInterval *float64    `yaml:"arrival_interval"`
	ScannerTimeMin  *float64    `yaml:"scanner_time_min"`
	ScannerTimeMax  *float64    `yaml:"scanner_time_max"`
	RoutingPolicy   string      `yaml:"routing_policy"`
	Threshold       *float64    `yaml:"threshold"`
	Sweeps          []SweepSpec `yaml:"sweeps"`
}

// SweepSpec describes one sweep in a scenario file.
type SweepSpec struct {
	Name     string    `yaml:"name"`
	Checkers RangeSpec `yaml:"checkers"`
	Scanners RangeSpec `yaml:"scanners"`
}

// RangeSpec is an inclusive staffing range.
type RangeSpec struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Apply overlays the fields set in the scenario onto cfg.
func (sc *Scenario) Apply(cfg *sim.NetworkConfig) {
	if sc.Seed != nil {
		cfg.Seed = *sc.Seed
	}
	if sc.Horizon != nil {
		cfg.Horizon = *sc.Horizon
	}
	if sc.IDServiceTime != nil {
		cfg.IDServiceTime = *sc.IDServiceTime
	}
	if sc.ArrivalInterval != nil {
		cfg.ArrivalInterval = *sc.ArrivalInterval
	}
	if sc.ScannerTimeMin != nil {
		cfg.ScannerTimeMin = *sc.ScannerTimeMin
	}
	if sc.ScannerTimeMax != nil {
		cfg.ScannerTimeMax = *sc.ScannerTimeMax
	}
	if sc.RoutingPolicy != "" {
		cfg.RoutingPolicy = sc.RoutingPolicy
	}
}

// SweepsFor converts the scenario's sweeps into runnable sweeps over base.
// Returns nil when the file lists no sweeps.
func (sc *Scenario) SweepsFor(base sim.NetworkConfig) []experiment.Sweep {
	if len(sc.Sweeps) == 0 {
		return nil
	}
	sweeps := make([]experiment.Sweep, len(sc.Sweeps))
	for i, s := range sc.Sweeps {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("sweep_%d", i)
		}
		sweeps[i] = experiment.Sweep{
			Name:     name,
			Checkers: experiment.Range{Min: s.Checkers.Min, Max: s.Checkers.Max},
			Scanners: experiment.Range{Min: s.Scanners.Min, Max: s.Scanners.Max},
			Base:     base,
		}
	}
	return sweeps
}

// Validate checks values that can be checked without the rest of the configuration.
func (sc *Scenario) Validate() error {
	if !sim.ValidRoutingPolicies[sc.RoutingPolicy] {
		return fmt.Errorf("unknown routing policy %q", sc.RoutingPolicy)
	}
	if sc.Threshold != nil && !(*sc.Threshold > 0) {
		return fmt.Errorf("threshold must be > 0, got %v", *sc.Threshold)
	}
	for i, s := range sc.Sweeps {
		if s.Checkers.Min < 1 || s.Checkers.Max < s.Checkers.Min {
			return fmt.Errorf("sweeps[%d]: invalid checkers range [%d, %d]", i, s.Checkers.Min, s.Checkers.Max)
		}
		if s.Scanners.Min < 1 || s.Scanners.Max < s.Scanners.Min {
			return fmt.Errorf("sweeps[%d]: invalid scanners range [%d, %d]", i, s.Scanners.Min, s.Scanners.Max)
		}
	}
	return nil
}
