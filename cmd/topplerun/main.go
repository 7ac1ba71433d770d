// topplerun is an endless-runner TUI game where the player shoves pillars
// over to clear (or block) the lane ahead.
//
// Usage:
//
//	topplerun play              - Play the game
//	topplerun scores            - Browse high scores and benchmark history
//	topplerun bench             - Run render benchmarks
//	topplerun baseline          - Capture or check visual baselines
//	topplerun detect            - Report detected device capabilities
//	topplerun audit             - Audit the HUD theme for accessibility
//	topplerun serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.topplerun/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import for side effects: game and scenario registration.
	_ "github.com/vovakirdan/topple-run/internal/bench"
	_ "github.com/vovakirdan/topple-run/internal/game/runner"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "topplerun",
	Short: "Topple Run - shove pillars, dodge the fallout",
	Long: `Topple Run is an endless runner for the terminal. Sprint past a field
of pillars, shove them over before they block the lane, and dodge the
ones that settle in your way.

Available commands:
  play     - Play the game
  scores   - Browse high scores and benchmark history
  bench    - Run render benchmarks
  baseline - Capture or check visual baselines
  detect   - Report detected device capabilities
  audit    - Audit the HUD theme for accessibility
  config   - Export embedded default configs
  serve    - Start SSH server for remote play

Examples:
  topplerun play
  topplerun play --difficulty hard --quality low
  topplerun bench --iterations 500
  topplerun serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.topplerun/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(serveCmd)
}
