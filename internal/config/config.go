// Package config provides YAML-based configuration loading and difficulty
// management for Topple Run.
package config

import "github.com/vovakirdan/topple-run/internal/perf"

// RunnerConfig contains all gameplay configuration for the runner.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Pillars    RunnerPillars    `yaml:"pillars"`
	Player     RunnerPlayer     `yaml:"player"`
	Toppled    ToppledConfig    `yaml:"toppled"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines the runner's movement parameters.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"` // world scroll, cells per tick
}

// RunnerPillars defines pillar spawning parameters.
type RunnerPillars struct {
	MinHeight    int     `yaml:"min_height"`
	MaxHeight    int     `yaml:"max_height"`
	MinSpacing   int     `yaml:"min_spacing"`
	MaxSpacing   int     `yaml:"max_spacing"`
	PickupChance float64 `yaml:"pickup_chance"` // chance a spacing gap carries a pickup
}

// RunnerPlayer defines player placement and size.
type RunnerPlayer struct {
	X            int `yaml:"x"`
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	GroundOffset int `yaml:"ground_offset"`
}

// ToppledConfig defines the knocked-over pillar animation parameters.
// Durations are in milliseconds to keep the YAML flat.
type ToppledConfig struct {
	MaxToppled    int     `yaml:"max_toppled"`
	ToppleMs      int     `yaml:"topple_ms"`
	BlockMs       int     `yaml:"block_ms"`
	FadeMs        int     `yaml:"fade_ms"`
	SlideDistance float64 `yaml:"slide_distance"`
	ImpactSpin    float64 `yaml:"impact_spin"`
}

// OptimizerConfig defines the game-loop optimizer knobs.
type OptimizerConfig struct {
	Batching    bool `yaml:"batching"`
	BatchSize   int  `yaml:"batch_size"`
	CullEnabled bool `yaml:"cull_enabled"`
	CullMargin  int  `yaml:"cull_margin"`
}

// PerfConfig wraps the performance monitor settings. Threshold overrides
// are partial: a YAML block only replaces the fields it names.
type PerfConfig struct {
	WindowSize int                     `yaml:"window_size"`
	HeapBudget int64                   `yaml:"heap_budget_bytes"` // 0 disables memory pressure tracking
	Thresholds perf.ThresholdOverrides `yaml:"thresholds"`
	Optimizer  OptimizerConfig         `yaml:"optimizer"`
}

// ThemeConfig defines the HUD color theme the accessibility audit checks.
type ThemeConfig struct {
	Name       string         `yaml:"name"`
	Background string         `yaml:"background"`
	Elements   []ThemeElement `yaml:"elements"`
}

// ThemeElement is one audited piece of HUD text.
type ThemeElement struct {
	ID         string  `yaml:"id"`
	Foreground string  `yaml:"foreground"`
	Background string  `yaml:"background"` // empty inherits the theme background
	FontSize   float64 `yaml:"font_size"`
	Bold       bool    `yaml:"bold"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // added to speed at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // pillar spacing reduction at max difficulty
	HeightBoost      int     `yaml:"height_boost"`      // extra max pillar height at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
