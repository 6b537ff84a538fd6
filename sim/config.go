package sim

import (
	"fmt"
	"math"
)

// Baseline parameters of the reference checkpoint study. All times are in minutes.
const (
	DefaultSeed            int64   = 42
	DefaultIDServiceTime   float64 = 0.75     // mean identity-check hold (exponential)
	DefaultArrivalInterval float64 = 1.0 / 20 // mean inter-arrival time (exponential)
	DefaultHorizon         float64 = 240
	DefaultScannerTimeMin  float64 = 0.5 // uniform scanner hold bounds
	DefaultScannerTimeMax  float64 = 1.0
	DefaultThreshold       float64 = 15 // service-level target for mean total time
)

// MaxStaffing bounds the number of checkers or scanners in one configuration.
const MaxStaffing = 1000

// NetworkConfig groups the parameters of one checkpoint configuration (one trial).
type NetworkConfig struct {
	Seed            int64   // random seed; every trial restarts the stream from it
	Horizon         float64 // simulated minutes to run
	Checkers        int     // parallel identity-check servers (one shared line)
	Scanners        int     // personal scanners, one server and one line each
	IDServiceTime   float64 // mean identity-check hold
	ArrivalInterval float64 // mean inter-arrival time
	ScannerTimeMin  float64
	ScannerTimeMax  float64
	RoutingPolicy   string // "shortest-queue" (default) or "round-robin"
}

// DefaultNetworkConfig returns the baseline configuration with one checker and one scanner.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Seed:            DefaultSeed,
		Horizon:         DefaultHorizon,
		Checkers:        1,
		Scanners:        1,
		IDServiceTime:   DefaultIDServiceTime,
		ArrivalInterval: DefaultArrivalInterval,
		ScannerTimeMin:  DefaultScannerTimeMin,
		ScannerTimeMax:  DefaultScannerTimeMax,
		RoutingPolicy:   "shortest-queue",
	}
}

// WithStaffing returns a copy of c with the given staffing levels.
func (c NetworkConfig) WithStaffing(checkers, scanners int) NetworkConfig {
	c.Checkers = checkers
	c.Scanners = scanners
	return c
}

// Validate checks that all parameters are usable. Malformed distribution parameters are
// rejected here, before any trial runs.
func (c NetworkConfig) Validate() error {
	if c.Horizon < 0 || math.IsNaN(c.Horizon) || math.IsInf(c.Horizon, 0) {
		return fmt.Errorf("horizon must be a finite value >= 0, got %v", c.Horizon)
	}
	if c.Checkers < 1 || c.Checkers > MaxStaffing {
		return fmt.Errorf("checkers must be in [1, %d], got %d", MaxStaffing, c.Checkers)
	}
	if c.Scanners < 1 || c.Scanners > MaxStaffing {
		return fmt.Errorf("scanners must be in [1, %d], got %d", MaxStaffing, c.Scanners)
	}
	if err := validateFinitePositive("id service time", c.IDServiceTime); err != nil {
		return err
	}
	if err := validateFinitePositive("arrival interval", c.ArrivalInterval); err != nil {
		return err
	}
	if c.ScannerTimeMin < 0 || math.IsNaN(c.ScannerTimeMin) || math.IsInf(c.ScannerTimeMin, 0) {
		return fmt.Errorf("scanner time min must be a finite value >= 0, got %v", c.ScannerTimeMin)
	}
	if math.IsNaN(c.ScannerTimeMax) || math.IsInf(c.ScannerTimeMax, 0) || c.ScannerTimeMax < c.ScannerTimeMin {
		return fmt.Errorf("scanner time max must be finite and >= min (%v), got %v", c.ScannerTimeMin, c.ScannerTimeMax)
	}
	if !ValidRoutingPolicies[c.RoutingPolicy] {
		return fmt.Errorf("unknown routing policy %q", c.RoutingPolicy)
	}
	return nil
}

// OfferedLoad returns the arrival rate divided by the service capacity of each stage.
// Values >= 1 mean the stage cannot keep up and its line grows for the whole horizon.
func (c NetworkConfig) OfferedLoad() (idCheck, scanner float64) {
	arrivalRate := 1.0 / c.ArrivalInterval
	idCheck = arrivalRate * c.IDServiceTime / float64(c.Checkers)
	scanner = arrivalRate * ((c.ScannerTimeMin + c.ScannerTimeMax) / 2) / float64(c.Scanners)
	return idCheck, scanner
}

func validateFinitePositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite value > 0, got %v", name, v)
	}
	return nil
}
