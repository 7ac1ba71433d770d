package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/game/runner"
	"github.com/vovakirdan/topple-run/internal/platform/tui"
	"github.com/vovakirdan/topple-run/internal/quality"
	"github.com/vovakirdan/topple-run/internal/registry"
	"github.com/vovakirdan/topple-run/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagQuality    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Topple Run",
	Long: `Start a run.

Controls:
  Space      - Jump
  E/Enter    - Shove the nearest pillar
  P/Esc      - Pause
  F3/Tab     - Toggle the performance overlay
  H          - Toggle high-contrast mode
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Quality options:
  minimal, low, medium, high, ultra - Fixed effect budget
  (omit to auto-detect from the host)

Examples:
  topplerun play
  topplerun play --difficulty easy
  topplerun play --quality low
  topplerun play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagQuality, "quality", "", "Quality tier: minimal, low, medium, high, ultra (empty = auto)")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Get terminal size early
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	qualityName := flagQuality
	if qualityName != "" && quality.LevelByName(qualityName) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown quality tier %q\n", qualityName)
		os.Exit(1)
	}
	if qualityName == "" {
		// Score the host from hardware signals; the render benchmark
		// needs a live frame pump and would delay startup.
		probe := quality.DefaultProbe()
		probe.ScreenW = width
		probe.ScreenH = height
		detector := quality.NewDetectorWithProbe(probe)
		if caps, err := detector.Detect(context.Background(), nil, nil); err == nil {
			qualityName = caps.RecommendedQuality
		}
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Quality:  qualityName,
	}

	// Set config path and difficulty before creation
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create("runner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
