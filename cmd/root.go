package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/balance-sim/balance-sim/sim"
	"github.com/balance-sim/balance-sim/sim/report"
)

var (
	// CLI flags for the experiment configuration
	configPath string   // YAML experiment spec (overrides all workload flags)
	seed       uint64   // Seed for request size generation
	requests   int      // Number of requests per run
	minSize    float64  // Lower bound of the uniform size distribution (bytes)
	maxSize    float64  // Upper bound of the uniform size distribution (bytes)
	policies   []string // Policies to compare
	logLevel   string   // Log verbosity level

	// CLI flags for output artifacts
	outPath  string // JSON report destination
	chartDir string // Directory for the comparison chart PNGs
	noChart  bool   // Skip chart rendering
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "balance-sim",
	Short: "Concurrent simulator comparing load-balancing policies",
}

// buildSpec assembles the experiment spec from the config file if given,
// otherwise from the default spec adjusted by workload flags.
func buildSpec() (*sim.ExperimentSpec, error) {
	if configPath != "" {
		return sim.LoadExperimentSpec(configPath)
	}
	spec := sim.DefaultSpec()
	spec.Seed = seed
	spec.Requests.Count = requests
	spec.Requests.Distribution.Params["min"] = minSize
	spec.Requests.Distribution.Params["max"] = maxSize
	if len(policies) > 0 {
		spec.Policies = policies
	}
	return spec, nil
}

// runCmd executes the experiment using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the load-balancing comparison experiment",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec, err := buildSpec()
		if err != nil {
			logrus.Fatalf("Invalid experiment config: %v", err)
		}

		experiment, err := sim.NewExperiment(spec)
		if err != nil {
			logrus.Fatalf("Could not set up experiment: %v", err)
		}

		logrus.Infof("Starting experiment %q: %d servers, %d requests, policies=%v",
			spec.Title, len(spec.Servers), spec.Requests.Count, spec.Policies)

		rep, err := experiment.Run()
		if err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}

		rep.Print(os.Stdout)

		if err := report.Write(outPath, rep); err != nil {
			logrus.Fatalf("Could not write report: %v", err)
		}
		fmt.Printf("Report written to %s\n", outPath)

		if !noChart {
			chartPath, err := report.NextChartPath(chartDir)
			if err != nil {
				logrus.Fatalf("Could not allocate chart path: %v", err)
			}
			if err := report.RenderChart(chartPath, rep); err != nil {
				logrus.Fatalf("Could not render chart: %v", err)
			}
			fmt.Printf("Chart saved to %s\n", chartPath)
		}

		logrus.Info("Experiment complete.")
	},
}

// policiesCmd lists the registered routing policies
var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List available routing policies",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sim.AvailablePolicies() {
			fmt.Println(name)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML experiment spec (overrides workload flags)")
	runCmd.Flags().Uint64Var(&seed, "seed", 42, "Seed for random request size generation")
	runCmd.Flags().IntVar(&requests, "requests", 1000, "Number of requests per policy run")
	runCmd.Flags().Float64Var(&minSize, "min-size", 500, "Minimum request size in bytes")
	runCmd.Flags().Float64Var(&maxSize, "max-size", 1000, "Maximum request size in bytes")
	runCmd.Flags().StringSliceVar(&policies, "policies", nil, "Comma-separated policies to compare (default: all)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&outPath, "out", "result.json", "JSON report output path")
	runCmd.Flags().StringVar(&chartDir, "chart-dir", "images", "Directory for comparison chart PNGs")
	runCmd.Flags().BoolVar(&noChart, "no-chart", false, "Skip chart rendering")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(policiesCmd)
}
