package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/quality"
)

var flagDetectSkipBench bool

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Report detected device capabilities",
	Long: `Score the host's capabilities and print the recommended quality
tier. By default a short synthetic render benchmark refines the score;
--no-bench scores from hardware signals alone.

Examples:
  topplerun detect
  topplerun detect --no-bench`,
	Args: cobra.NoArgs,
	Run:  runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&flagDetectSkipBench, "no-bench", false, "Skip the render benchmark")
}

func runDetect(cmd *cobra.Command, args []string) {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	probe := quality.DefaultProbe()
	probe.ScreenW = width
	probe.ScreenH = height
	detector := quality.NewDetectorWithProbe(probe)

	var screen *core.Screen
	var pump quality.FramePump
	if !flagDetectSkipBench {
		screen = core.NewScreen(width, height)
		pump = wallClockPump()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	caps, err := detector.Detect(ctx, screen, pump)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Device capabilities:")
	fmt.Printf("  Performance score:  %.1f / 100\n", caps.PerformanceScore)
	fmt.Printf("  Memory level:       %s\n", caps.MemoryLevel)
	fmt.Printf("  Rendering:          %s\n", caps.RenderingCapability)
	fmt.Printf("  Recommended tier:   %s\n", caps.RecommendedQuality)

	if level := quality.LevelByName(caps.RecommendedQuality); level != nil {
		fmt.Println()
		fmt.Printf("Effect budget at %q:\n", level.Name)
		fmt.Printf("  Particles:     %d\n", level.ParticleCount)
		fmt.Printf("  Trail length:  %d\n", level.TrailLength)
		fmt.Printf("  Decor density: %.0f%%\n", level.DecorDensity*100)
		fmt.Printf("  Sway:          %v\n", level.SwayEnabled)
		fmt.Printf("  Fade steps:    %d\n", level.FadeSteps)
	}
}

// wallClockPump paces benchmark frames with a real timer, approximating
// a 60 FPS animation loop.
func wallClockPump() quality.FramePump {
	last := time.Now()
	return func(ctx context.Context) (time.Duration, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case now := <-time.After(time.Second / 60):
			elapsed := now.Sub(last)
			last = now
			return elapsed, nil
		}
	}
}
