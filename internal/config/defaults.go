package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/topple-run/internal/toppled"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/perf.yaml
var defaultPerfYAML []byte

//go:embed defaults/theme.yaml
var defaultThemeYAML []byte

// DefaultRunnerConfig returns the default gameplay configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:      0.3,
			JumpImpulse:  -2.5,
			MaxFallSpeed: 4.0,
			BaseSpeed:    0.5,
		},
		Pillars: RunnerPillars{
			MinHeight:    2,
			MaxHeight:    5,
			MinSpacing:   25,
			MaxSpacing:   45,
			PickupChance: 0.25,
		},
		Player: RunnerPlayer{
			X:            8,
			Width:        3,
			Height:       3,
			GroundOffset: 2,
		},
		Toppled: ToppledConfig{
			MaxToppled:    8,
			ToppleMs:      600,
			BlockMs:       2000,
			FadeMs:        300,
			SlideDistance: 3,
			ImpactSpin:    8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  2.0,
				SpacingReduction: 15,
				HeightBoost:      2,
			},
		},
	}
}

// DefaultPerfConfig returns the default monitor configuration. Threshold
// overrides are empty; perf.DefaultThresholds applies unchanged.
func DefaultPerfConfig() PerfConfig {
	return PerfConfig{
		WindowSize: 120,
		HeapBudget: 256 << 20,
		Optimizer: OptimizerConfig{
			Batching:    true,
			BatchSize:   16,
			CullEnabled: true,
			CullMargin:  8,
		},
	}
}

// DefaultThemeConfig returns the stock HUD theme.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		Name:       "default",
		Background: "#101018",
		Elements: []ThemeElement{
			{ID: "hud.status", Foreground: "#e8e8e8", FontSize: 16},
			{ID: "hud.score", Foreground: "#ffd75f", FontSize: 16, Bold: true},
			{ID: "hud.overlay", Foreground: "#a8d8a8", FontSize: 14},
			{ID: "hud.message", Foreground: "#ffffff", FontSize: 18, Bold: true},
		},
	}
}

// TimelineConfig converts the YAML millisecond fields into the
// timeline's native configuration.
func (c ToppledConfig) TimelineConfig() toppled.Config {
	return toppled.Config{
		MaxToppled:     c.MaxToppled,
		ToppleDuration: time.Duration(c.ToppleMs) * time.Millisecond,
		BlockDuration:  time.Duration(c.BlockMs) * time.Millisecond,
		FadeDuration:   time.Duration(c.FadeMs) * time.Millisecond,
		SlideDistance:  c.SlideDistance,
		ImpactSpin:     c.ImpactSpin,
	}
}

// GetDefaultYAML returns the embedded default YAML by name, for the
// `config export` style tooling. Unknown names return nil.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "runner":
		return defaultRunnerYAML
	case "perf":
		return defaultPerfYAML
	case "theme":
		return defaultThemeYAML
	default:
		return nil
	}
}
