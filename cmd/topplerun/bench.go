package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topple-run/internal/bench"
	"github.com/vovakirdan/topple-run/internal/registry"
	"github.com/vovakirdan/topple-run/internal/storage"
)

var (
	flagBenchList       bool
	flagBenchIterations int
	flagBenchBudget     time.Duration
	flagBenchWidth      int
	flagBenchHeight     int
	flagBenchSave       bool
)

var benchCmd = &cobra.Command{
	Use:   "bench [scenario...]",
	Short: "Run render benchmarks",
	Long: `Run render scenarios against an in-memory screen and report
per-frame timings. With no arguments every registered scenario runs.

Each run can be persisted with --save and browsed later under the
Benchmarks tab of 'topplerun scores'.

Examples:
  topplerun bench --list
  topplerun bench
  topplerun bench glyph-fill pillar-field
  topplerun bench --iterations 2000 --budget 10s --save`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().BoolVar(&flagBenchList, "list", false, "List registered scenarios and exit")
	benchCmd.Flags().IntVar(&flagBenchIterations, "iterations", 1000, "Frames to render per scenario")
	benchCmd.Flags().DurationVar(&flagBenchBudget, "budget", bench.DefaultBudget, "Wall-clock budget per scenario")
	benchCmd.Flags().IntVar(&flagBenchWidth, "width", 80, "Benchmark screen width")
	benchCmd.Flags().IntVar(&flagBenchHeight, "height", 24, "Benchmark screen height")
	benchCmd.Flags().BoolVar(&flagBenchSave, "save", false, "Persist results to the database")
}

func runBench(cmd *cobra.Command, args []string) {
	if flagBenchList {
		fmt.Println("Registered scenarios:")
		for _, name := range registry.Scenarios() {
			fmt.Printf("  %s\n", name)
		}
		return
	}

	harness := bench.NewHarness(flagBenchWidth, flagBenchHeight, flagBenchBudget)

	var results []bench.Result
	if len(args) == 0 {
		results = harness.RunAll(flagBenchIterations)
	} else {
		for _, name := range args {
			res, err := harness.Run(name, flagBenchIterations)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			results = append(results, res)
		}
	}

	if len(results) == 0 {
		fmt.Println("No scenarios ran.")
		return
	}

	fmt.Printf("  %-16s  %-10s  %-12s  %-10s  %s\n", "Scenario", "Frames", "Per Frame", "Total", "Partial")
	for _, res := range results {
		partial := ""
		if res.Partial {
			partial = "yes"
		}
		fmt.Printf("  %-16s  %-10d  %-12s  %-10s  %s\n",
			res.Scenario,
			res.Completed,
			res.PerOp.Round(time.Microsecond),
			res.Total.Round(time.Millisecond),
			partial,
		)
	}

	if flagBenchSave {
		saveBenchResults(results)
	}
}

func saveBenchResults(results []bench.Result) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, results not saved: %v\n", err)
		return
	}
	defer store.Close()

	for _, res := range results {
		run := storage.BenchRun{
			Scenario:   res.Scenario,
			Iterations: res.Iterations,
			Completed:  res.Completed,
			TotalNs:    res.Total.Nanoseconds(),
			PerOpNs:    res.PerOp.Nanoseconds(),
			Partial:    res.Partial,
		}
		if _, err := store.SaveBenchRun(run); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save run %q: %v\n", res.Scenario, err)
		}
	}
	fmt.Printf("\nSaved %d run(s) to %s\n", len(results), flagDBPath)
}
