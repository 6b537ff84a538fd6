package experiment

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// formatMinutes renders a mean time with two decimals; trials without samples print "inf".
func formatMinutes(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// PrintResults writes the per-trial lines of a sweep under the report header.
func PrintResults(w io.Writer, results []Result) {
	fmt.Fprintln(w, "Airport Security Simulation Results")
	fmt.Fprintln(w, "------------------------------------")
	for _, r := range results {
		fmt.Fprintf(w, "Trial %d: %d ID Checkers, %d Scanners - Avg Time: %s minutes\n",
			r.Trial, r.Checkers, r.Scanners, formatMinutes(r.MeanTime))
	}
}

// PrintSummary writes the configurations whose mean time is below threshold.
func PrintSummary(w io.Writer, results []Result, threshold float64) {
	fmt.Fprintf(w, "\nConfigurations with Average Time < %s Minutes:\n", strconv.FormatFloat(threshold, 'g', -1, 64))
	for _, r := range MeetingThreshold(results, threshold) {
		fmt.Fprintf(w, "ID Checkers: %d, Scanners: %d, Avg Time: %s minutes\n", r.Checkers, r.Scanners, formatMinutes(r.MeanTime))
	}
}

// PrintReport writes the full report for one sweep.
func PrintReport(w io.Writer, results []Result, threshold float64) {
	PrintResults(w, results)
	PrintSummary(w, results, threshold)
}
