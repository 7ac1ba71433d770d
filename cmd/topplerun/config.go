package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topple-run/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Work with configuration files",
}

var configExportCmd = &cobra.Command{
	Use:   "export <runner|perf|theme>",
	Short: "Print an embedded default config as a starting point",
	Long: `Print one of the embedded default YAML configs to stdout. Redirect
it to a file, edit, and pass it back with the matching flag.

Examples:
  topplerun config export runner > my-runner.yaml
  topplerun play --config ./my-runner.yaml
  topplerun config export theme > my-theme.yaml
  topplerun audit --theme ./my-theme.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfigExport,
}

func init() {
	configCmd.AddCommand(configExportCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigExport(cmd *cobra.Command, args []string) {
	raw := config.GetDefaultYAML(args[0])
	if raw == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown config %q (use runner, perf, or theme)\n", args[0])
		os.Exit(1)
	}
	os.Stdout.Write(raw)
}
