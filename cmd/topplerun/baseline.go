package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topple-run/internal/bench"
	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/registry"
)

// baselineFrame is the frame index every baseline is rendered at. Scenarios
// are deterministic in the frame number, so capture and check agree as long
// as this stays fixed.
const baselineFrame = 30

var (
	flagBaselineWidth  int
	flagBaselineHeight int
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Capture or check visual baselines",
	Long: `Visual baselines pin each render scenario's output to a reference
frame. 'capture' writes the current output to a JSON report; 'check'
re-renders every scenario and fails when any frame drifted.

Examples:
  topplerun baseline capture baselines.json
  topplerun baseline check baselines.json`,
}

var baselineCaptureCmd = &cobra.Command{
	Use:   "capture <file>",
	Short: "Capture baselines for every scenario",
	Args:  cobra.ExactArgs(1),
	Run:   runBaselineCapture,
}

var baselineCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check scenarios against captured baselines",
	Args:  cobra.ExactArgs(1),
	Run:   runBaselineCheck,
}

func init() {
	baselineCmd.PersistentFlags().IntVar(&flagBaselineWidth, "width", 80, "Baseline screen width")
	baselineCmd.PersistentFlags().IntVar(&flagBaselineHeight, "height", 24, "Baseline screen height")
	baselineCmd.AddCommand(baselineCaptureCmd)
	baselineCmd.AddCommand(baselineCheckCmd)
}

func runBaselineCapture(cmd *cobra.Command, args []string) {
	set := bench.NewBaselineSet()
	screen := core.NewScreen(flagBaselineWidth, flagBaselineHeight)

	for _, name := range registry.Scenarios() {
		scenario := registry.ScenarioByName(name)
		screen.Clear()
		scenario(screen, baselineFrame)
		set.Capture(name, screen)
	}

	data, err := bench.Export(nil, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(args[0], []byte(data), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", args[0], err)
		os.Exit(1)
	}

	fmt.Printf("Captured %d baseline(s) to %s\n", len(set.Keys()), args[0])
}

func runBaselineCheck(cmd *cobra.Command, args []string) {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	report, err := bench.Import(string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	set := bench.NewBaselineSet()
	set.ImportInto(report)

	failed := 0
	for _, name := range set.Keys() {
		scenario := registry.ScenarioByName(name)
		if scenario == nil {
			fmt.Printf("  SKIP  %s (scenario no longer registered)\n", name)
			continue
		}

		b := set.Get(name)
		screen := core.NewScreen(b.Width, b.Height)
		scenario(screen, baselineFrame)

		if err := set.TestAgainst(name, screen); err != nil {
			fmt.Printf("  FAIL  %s\n", name)
			failed++
			continue
		}
		fmt.Printf("  ok    %s\n", name)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%d baseline(s) drifted\n", failed)
		os.Exit(1)
	}
}
