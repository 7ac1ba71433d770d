package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/topple-run/internal/access"
	"github.com/vovakirdan/topple-run/internal/config"
)

var (
	flagAuditTheme string
	flagAuditLevel string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the HUD theme for accessibility",
	Long: `Check every HUD theme element against WCAG contrast and minimum
font size requirements. Exits non-zero when any element fails.

Examples:
  topplerun audit
  topplerun audit --level AAA
  topplerun audit --theme ./my-theme.yaml`,
	Args: cobra.NoArgs,
	Run:  runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&flagAuditTheme, "theme", "", "Path to custom theme YAML")
	auditCmd.Flags().StringVar(&flagAuditLevel, "level", "AA", "Conformance level: AA or AAA")
}

func runAudit(cmd *cobra.Command, args []string) {
	theme, err := config.LoadTheme(flagAuditTheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading theme: %v\n", err)
		os.Exit(1)
	}

	level := access.Level(flagAuditLevel)
	if level != access.LevelAA && level != access.LevelAAA {
		fmt.Fprintf(os.Stderr, "Error: unknown conformance level %q (use AA or AAA)\n", flagAuditLevel)
		os.Exit(1)
	}

	validator := access.NewValidator()

	fmt.Printf("Auditing theme %q at %s\n\n", theme.Name, level)

	for _, el := range theme.Elements {
		bg := el.Background
		if bg == "" {
			bg = theme.Background
		}

		contrast := validator.ValidateContrast(el.ID, el.Foreground, bg, level, el.FontSize, el.Bold)
		font := validator.ValidateFontSize(el.ID, el.FontSize)

		status := "ok  "
		if !contrast.Valid || !font.Valid {
			status = "FAIL"
		}
		fmt.Printf("  %s  %-16s  contrast %.2f (need %.1f)  font %.0fpx\n",
			status, el.ID, contrast.Ratio, contrast.Required, el.FontSize)
	}

	violations := validator.Violations()
	if len(violations) == 0 {
		fmt.Println("\nAll elements pass.")
		return
	}

	fmt.Printf("\n%d violation(s):\n", len(violations))
	for _, v := range violations {
		fmt.Printf("  [%s] %s: %s\n", v.Type, v.ElementID, v.Message)
	}
	os.Exit(1)
}
