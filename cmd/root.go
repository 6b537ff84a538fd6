package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/screening-sim/sim"
	"github.com/inference-sim/screening-sim/sim/experiment"
	"github.com/inference-sim/screening-sim/sim/trace"
)

var (
	// Shared checkpoint parameters (persistent flags)
	seed            int64   // Seed for the random stream, restarted every trial
	horizon         float64 // Simulated minutes per trial
	logLevel        string  // Log verbosity level
	idServiceTime   float64 // Mean identity-check time (exponential, minutes)
	arrivalInterval float64 // Mean inter-arrival time (exponential, minutes)
	scannerTimeMin  float64 // Minimum scanner time (uniform, minutes)
	scannerTimeMax  float64 // Maximum scanner time (uniform, minutes)
	routingPolicy   string  // Scanner routing policy
	threshold       float64 // Service-level target for the mean total time
	workers         int     // Concurrent trials in a sweep
	configPath      string  // Optional YAML scenario file

	// run
	checkers   int    // ID checkers for a single run
	scanners   int    // Scanners for a single run
	traceLevel string // Decision trace level

	// sweep
	checkersMin int
	checkersMax int
	scannersMin int
	scannersMax int
)

// rootCmd runs the two baseline sweeps when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "screening-sim",
	Short: "Discrete-event simulator for airport security screening staffing",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		base, limit, scenario, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		sweeps := experiment.BaselineSweeps(base)
		if scenario != nil {
			if fromFile := scenario.SweepsFor(base); fromFile != nil {
				sweeps = fromFile
			}
		}
		if err := runSweeps(cmd.OutOrStdout(), sweeps, limit); err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
	},
}

// runCmd simulates a single staffing configuration and prints detailed metrics.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one staffing configuration",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		base, limit, _, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		if err := runSingle(cmd.OutOrStdout(), base.WithStaffing(checkers, scanners), limit, trace.TraceLevel(traceLevel)); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// sweepCmd runs one sweep over the given staffing ranges.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate every staffing configuration in a range",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		base, limit, scenario, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		rangesSet := cmd.Flags().Changed("checkers-min") || cmd.Flags().Changed("checkers-max") ||
			cmd.Flags().Changed("scanners-min") || cmd.Flags().Changed("scanners-max")
		sweeps := []experiment.Sweep{{
			Name:     "sweep",
			Checkers: experiment.Range{Min: checkersMin, Max: checkersMax},
			Scanners: experiment.Range{Min: scannersMin, Max: scannersMax},
			Base:     base,
		}}
		if scenario != nil && !rangesSet {
			if fromFile := scenario.SweepsFor(base); fromFile != nil {
				sweeps = fromFile
			}
		}
		if err := runSweeps(cmd.OutOrStdout(), sweeps, limit); err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig layers defaults, the optional scenario file, and explicitly set flags,
// in that order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (sim.NetworkConfig, float64, *Scenario, error) {
	cfg := sim.DefaultNetworkConfig()
	limit := sim.DefaultThreshold

	var scenario *Scenario
	if configPath != "" {
		sc, err := LoadScenario(configPath)
		if err != nil {
			return cfg, 0, nil, err
		}
		if err := sc.Validate(); err != nil {
			return cfg, 0, nil, fmt.Errorf("scenario %s: %w", configPath, err)
		}
		sc.Apply(&cfg)
		if sc.Threshold != nil {
			limit = *sc.Threshold
		}
		scenario = sc
		logrus.Infof("Loaded scenario from %s", configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("id-service-time") {
		cfg.IDServiceTime = idServiceTime
	}
	if flags.Changed("arrival-interval") {
		cfg.ArrivalInterval = arrivalInterval
	}
	if flags.Changed("scanner-time-min") {
		cfg.ScannerTimeMin = scannerTimeMin
	}
	if flags.Changed("scanner-time-max") {
		cfg.ScannerTimeMax = scannerTimeMax
	}
	if flags.Changed("routing") {
		cfg.RoutingPolicy = routingPolicy
	}
	if flags.Changed("threshold") {
		limit = threshold
	}
	if !(limit > 0) {
		return cfg, 0, nil, fmt.Errorf("threshold must be > 0, got %v", limit)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, 0, nil, err
	}

	logrus.Infof("Checkpoint: seed=%d horizon=%.1f id-mean=%.3f arrival-mean=%.4f scanner=[%.2f, %.2f] routing=%s",
		cfg.Seed, cfg.Horizon, cfg.IDServiceTime, cfg.ArrivalInterval, cfg.ScannerTimeMin, cfg.ScannerTimeMax, cfg.RoutingPolicy)
	return cfg, limit, scenario, nil
}

func runSweeps(w io.Writer, sweeps []experiment.Sweep, limit float64) error {
	for _, s := range sweeps {
		s.Workers = workers
		results, err := s.Run()
		if err != nil {
			return err
		}
		experiment.PrintReport(w, results, limit)
	}
	return nil
}

func runSingle(w io.Writer, cfg sim.NetworkConfig, limit float64, level trace.TraceLevel) error {
	n, err := sim.NewNetwork(cfg, nil)
	if err != nil {
		return err
	}
	if level != trace.TraceLevelNone && level != "" {
		n.EnableTrace(level)
	}
	m, err := n.Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Configuration: %d ID Checkers, %d Scanners (seed %d, horizon %g minutes)\n",
		cfg.Checkers, cfg.Scanners, cfg.Seed, cfg.Horizon)
	m.Print(w)
	verdict := "misses"
	if m.MeanTotalTime() < limit {
		verdict = "meets"
	}
	fmt.Fprintf(w, "Service level        : %s the %g-minute target\n", verdict, limit)

	if n.Trace != nil {
		summary := trace.Summarize(n.Trace)
		fmt.Fprintln(w, "=== Routing Trace ===")
		fmt.Fprintf(w, "Decisions            : %d\n", summary.TotalDecisions)
		fmt.Fprintf(w, "Mean Chosen Queue    : %.2f (max %d)\n", summary.MeanObservedQueue, summary.MaxObservedQueue)
		for i := range n.Scanners {
			fmt.Fprintf(w, "scanner_%-12d : %d passengers\n", i, summary.TargetDistribution[i])
		}
		if level == trace.TraceLevelJourneys {
			fmt.Fprintf(w, "Journeys Recorded    : %d\n", summary.CompletedJourneys)
		}
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for the random stream (restarted every trial)")
	pf.Float64Var(&horizon, "horizon", sim.DefaultHorizon, "Simulated minutes per trial")
	pf.StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	pf.Float64Var(&idServiceTime, "id-service-time", sim.DefaultIDServiceTime, "Mean identity-check time in minutes (exponential)")
	pf.Float64Var(&arrivalInterval, "arrival-interval", sim.DefaultArrivalInterval, "Mean inter-arrival time in minutes (exponential)")
	pf.Float64Var(&scannerTimeMin, "scanner-time-min", sim.DefaultScannerTimeMin, "Minimum scanner time in minutes (uniform)")
	pf.Float64Var(&scannerTimeMax, "scanner-time-max", sim.DefaultScannerTimeMax, "Maximum scanner time in minutes (uniform)")
	pf.StringVar(&routingPolicy, "routing", "shortest-queue", "Scanner routing policy (shortest-queue, round-robin)")
	pf.Float64Var(&threshold, "threshold", sim.DefaultThreshold, "Service-level target for the mean total time (minutes)")
	pf.IntVar(&workers, "workers", 1, "Number of trials simulated concurrently")
	pf.StringVar(&configPath, "config", "", "Path to a YAML scenario file")

	runCmd.Flags().IntVar(&checkers, "checkers", 1, "Number of ID checkers")
	runCmd.Flags().IntVar(&scanners, "scanners", 1, "Number of personal scanners")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, decisions, journeys)")

	sweepCmd.Flags().IntVar(&checkersMin, "checkers-min", 1, "Smallest number of ID checkers")
	sweepCmd.Flags().IntVar(&checkersMax, "checkers-max", 5, "Largest number of ID checkers")
	sweepCmd.Flags().IntVar(&scannersMin, "scanners-min", 1, "Smallest number of scanners")
	sweepCmd.Flags().IntVar(&scannersMax, "scanners-max", 5, "Largest number of scanners")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
