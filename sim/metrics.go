// Tracks per-trial statistics: arrivals, completed passengers and their total times,
// and per-station load.

package sim

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// StationStats summarizes one station at the end of a trial.
type StationStats struct {
	Name           string
	Kind           StationKind
	Capacity       int
	Served         int
	MaxQueueLength int
	Utilization    float64 // time-averaged busy fraction over the run
}

// Metrics aggregates statistics about one trial for final reporting.
type Metrics struct {
	Arrivals   int       // passengers spawned by the generator
	Completed  int       // passengers that departed before the horizon
	TotalTimes []float64 // total time of every departed passenger, in departure order
	EndTime    float64   // simulated time when the run stopped
	Stations   []StationStats
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{TotalTimes: make([]float64, 0)}
}

func (m *Metrics) recordDeparture(p *Passenger) {
	m.Completed++
	m.TotalTimes = append(m.TotalTimes, p.TotalTime)
}

// InFlight returns the number of passengers abandoned at the horizon without a sample.
func (m *Metrics) InFlight() int {
	return m.Arrivals - m.Completed
}

// MeanTotalTime returns the arithmetic mean of all recorded total times, or +Inf when no
// passenger completed.
func (m *Metrics) MeanTotalTime() float64 {
	if len(m.TotalTimes) == 0 {
		return math.Inf(1)
	}
	return stat.Mean(m.TotalTimes, nil)
}

// StdDevTotalTime returns the sample standard deviation of total times, or 0 with fewer
// than two samples.
func (m *Metrics) StdDevTotalTime() float64 {
	if len(m.TotalTimes) < 2 {
		return 0
	}
	return stat.StdDev(m.TotalTimes, nil)
}

// PercentileTotalTime returns the p-th percentile of total times using the empirical CDF,
// or +Inf when no passenger completed. p is clamped to [0, 100].
func (m *Metrics) PercentileTotalTime(p float64) float64 {
	if len(m.TotalTimes) == 0 {
		return math.Inf(1)
	}
	p = math.Max(0, math.Min(100, p))
	sorted := make([]float64, len(m.TotalTimes))
	copy(sorted, m.TotalTimes)
	sort.Float64s(sorted)
	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}

// Print writes a human-readable summary of the trial.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Arrivals             : %d\n", m.Arrivals)
	fmt.Fprintf(w, "Completed Passengers : %d\n", m.Completed)
	fmt.Fprintf(w, "In Flight at Horizon : %d\n", m.InFlight())
	fmt.Fprintf(w, "Simulated Time       : %.2f minutes\n", m.EndTime)
	fmt.Fprintf(w, "Average Time         : %.2f minutes\n", m.MeanTotalTime())
	if m.Completed > 0 {
		fmt.Fprintf(w, "Std Dev Time         : %.2f minutes\n", m.StdDevTotalTime())
		fmt.Fprintf(w, "P50 / P90 / P99 Time : %.2f / %.2f / %.2f minutes\n",
			m.PercentileTotalTime(50), m.PercentileTotalTime(90), m.PercentileTotalTime(99))
	}
	for _, s := range m.Stations {
		fmt.Fprintf(w, "%-20s : servers=%d served=%d max-queue=%d utilization=%.1f%%\n",
			s.Name, s.Capacity, s.Served, s.MaxQueueLength, 100*s.Utilization)
	}
}
