// Package quality scores the host device and maps the score to one of five
// ordered quality tiers that gate the game's effect budgets.
package quality

// MemoryLevel buckets the host's memory capacity.
type MemoryLevel string

const (
	MemoryLow    MemoryLevel = "low"
	MemoryMedium MemoryLevel = "medium"
	MemoryHigh   MemoryLevel = "high"
)

// RenderingCapability buckets how much per-frame drawing the host can take.
type RenderingCapability string

const (
	RenderBasic    RenderingCapability = "basic"
	RenderStandard RenderingCapability = "standard"
	RenderEnhanced RenderingCapability = "enhanced"
)

// Capabilities is the cached result of device detection.
type Capabilities struct {
	PerformanceScore    float64 // 0-100
	MemoryLevel         MemoryLevel
	RenderingCapability RenderingCapability
	RecommendedQuality  string // name of a Level in the tier table
}

// Level is one named quality tier with its effect knobs.
type Level struct {
	Name          string
	ParticleCount int     // debris particles per topple
	TrailLength   int     // player motion trail cells
	DecorDensity  float64 // background decoration fill fraction
	SwayEnabled   bool    // pillar idle sway animation
	FadeSteps     int     // despawn fade granularity
}

// levels is the fixed tier table in ascending capability order. Effect
// budgets strictly increase tier to tier; ordering is relied on by
// AllLevels and the score banding.
var levels = []Level{
	{Name: "minimal", ParticleCount: 0, TrailLength: 0, DecorDensity: 0, SwayEnabled: false, FadeSteps: 1},
	{Name: "low", ParticleCount: 4, TrailLength: 1, DecorDensity: 0.05, SwayEnabled: false, FadeSteps: 2},
	{Name: "medium", ParticleCount: 12, TrailLength: 2, DecorDensity: 0.10, SwayEnabled: true, FadeSteps: 4},
	{Name: "high", ParticleCount: 24, TrailLength: 4, DecorDensity: 0.20, SwayEnabled: true, FadeSteps: 8},
	{Name: "ultra", ParticleCount: 48, TrailLength: 6, DecorDensity: 0.35, SwayEnabled: true, FadeSteps: 16},
}

// LevelByName returns the tier with the given name, or nil when unknown.
func LevelByName(name string) *Level {
	for i := range levels {
		if levels[i].Name == name {
			l := levels[i]
			return &l
		}
	}
	return nil
}

// AllLevels returns the five tiers in ascending capability order.
func AllLevels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}
