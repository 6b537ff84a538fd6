// Package experiment runs staffing sweeps: the same checkpoint simulated once per
// (checkers, scanners) pair, every trial starting from the same random seed so that
// differences between trials come from staffing alone.
package experiment

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/screening-sim/sim"
)

// Range is an inclusive range of staffing levels.
type Range struct {
	Min int
	Max int
}

// Validate checks that the range is non-empty, starts at one server or more and stays
// within sim.MaxStaffing.
func (r Range) Validate() error {
	if r.Min < 1 {
		return fmt.Errorf("range min must be >= 1, got %d", r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("range max (%d) must be >= min (%d)", r.Max, r.Min)
	}
	if r.Max > sim.MaxStaffing {
		return fmt.Errorf("range max must be <= %d, got %d", sim.MaxStaffing, r.Max)
	}
	return nil
}

// Values returns Min..Max in increasing order.
func (r Range) Values() []int {
	if r.Max < r.Min {
		return nil
	}
	vals := make([]int, 0, r.Max-r.Min+1)
	for v := r.Min; v <= r.Max; v++ {
		vals = append(vals, v)
	}
	return vals
}

// Result is the outcome of one trial. Results are never mutated after a sweep returns.
type Result struct {
	Trial     int // 1-based position in iteration order
	Checkers  int
	Scanners  int
	MeanTime  float64 // +Inf when no passenger completed
	Completed int
	Arrivals  int
}

// Sweep describes a batch of trials over the Cartesian product of two staffing ranges.
type Sweep struct {
	Name     string
	Checkers Range
	Scanners Range
	Base     sim.NetworkConfig // Checkers/Scanners are overwritten per trial
	Workers  int               // concurrent trials; <= 1 runs sequentially
}

// Validate checks the ranges and the base configuration.
func (s Sweep) Validate() error {
	if err := s.Checkers.Validate(); err != nil {
		return fmt.Errorf("checkers: %w", err)
	}
	if err := s.Scanners.Validate(); err != nil {
		return fmt.Errorf("scanners: %w", err)
	}
	if err := s.Base.WithStaffing(s.Checkers.Min, s.Scanners.Min).Validate(); err != nil {
		return err
	}
	return nil
}

// Configurations lists every trial configuration in iteration order:
// checkers in the outer loop, scanners in the inner loop.
func (s Sweep) Configurations() []sim.NetworkConfig {
	var cfgs []sim.NetworkConfig
	for _, c := range s.Checkers.Values() {
		for _, sc := range s.Scanners.Values() {
			cfgs = append(cfgs, s.Base.WithStaffing(c, sc))
		}
	}
	return cfgs
}

// RunTrial simulates one configuration on a freshly seeded random stream.
func RunTrial(cfg sim.NetworkConfig) (*sim.Metrics, error) {
	rs := sim.NewRandomStream(sim.NewSimulationKey(cfg.Seed))
	n, err := sim.NewNetwork(cfg, rs)
	if err != nil {
		return nil, err
	}
	return n.Run()
}

// Run executes every trial and returns results in iteration order, regardless of the
// number of workers. The first failing trial (in iteration order) aborts the sweep.
func (s Sweep) Run() ([]Result, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep %q: %w", s.Name, err)
	}
	cfgs := s.Configurations()
	results := make([]Result, len(cfgs))
	errs := make([]error, len(cfgs))

	runOne := func(i int) {
		m, err := RunTrial(cfgs[i])
		if err != nil {
			errs[i] = err
			return
		}
		results[i] = Result{
			Trial:     i + 1,
			Checkers:  cfgs[i].Checkers,
			Scanners:  cfgs[i].Scanners,
			MeanTime:  m.MeanTotalTime(),
			Completed: m.Completed,
			Arrivals:  m.Arrivals,
		}
	}

	workers := s.Workers
	if workers <= 1 {
		for i := range cfgs {
			runOne(i)
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
	} else {
		logrus.Debugf("Sweep %q: %d trials on %d workers", s.Name, len(cfgs), workers)
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					runOne(i)
				}
			}()
		}
		for i := range cfgs {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	logrus.Infof("Sweep %q finished: %d trials", s.Name, len(results))
	return results, nil
}

// MeetingThreshold returns the results whose mean time is strictly below threshold,
// preserving order. Trials without samples (+Inf) never qualify.
func MeetingThreshold(results []Result, threshold float64) []Result {
	var out []Result
	for _, r := range results {
		if r.MeanTime < threshold {
			out = append(out, r)
		}
	}
	return out
}

// BaselineSweeps returns the two reference sweeps: a coarse grid of 1-5 checkers and
// scanners, and an extended grid of 1-15.
func BaselineSweeps(base sim.NetworkConfig) []Sweep {
	return []Sweep{
		{Name: "coarse", Checkers: Range{1, 5}, Scanners: Range{1, 5}, Base: base},
		{Name: "extended", Checkers: Range{1, 15}, Scanners: Range{1, 15}, Base: base},
	}
}
