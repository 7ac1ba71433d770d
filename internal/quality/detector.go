package quality

import (
	"context"
	"time"

	"github.com/vovakirdan/topple-run/internal/core"
)

// Benchmark tuning. The synthetic benchmark animates a batch of sprites
// across a bounded number of frames; a wall-clock budget stops a slow host
// from stalling startup.
const (
	benchSprites    = 64
	benchFrames     = 30
	benchTimeBudget = 750 * time.Millisecond
	benchTargetFPS  = 60.0
)

// FramePump yields until the host's next animation frame and reports the
// elapsed time. The platform loop pumps real ticks; tests pump synthetic
// durations.
type FramePump func(ctx context.Context) (time.Duration, error)

// SpriteFactory creates benchmark sprites. Failures are tolerated
// per-attempt: the benchmark skips the sprite and carries on.
type SpriteFactory func(x, y float64) (core.Sprite, error)

// Detector probes the host once and caches the result until Redetect.
// Construct one per process and pass it by reference; there is no ambient
// global instance.
type Detector struct {
	cached  *Capabilities
	probe   HardwareProbe
	factory SpriteFactory
}

// NewDetector creates a detector that reads real hardware signals.
func NewDetector() *Detector {
	return &Detector{
		probe: DefaultProbe(),
		factory: func(x, y float64) (core.Sprite, error) {
			return core.NewBasicSprite(x, y, '*', core.ColorGray), nil
		},
	}
}

// NewDetectorWithProbe creates a detector over fixed signals, for tests and
// for scoring remote sessions by their reported terminal size.
func NewDetectorWithProbe(p HardwareProbe) *Detector {
	d := NewDetector()
	d.probe = p
	return d
}

// SetSpriteFactory overrides benchmark sprite creation.
func (d *Detector) SetSpriteFactory(f SpriteFactory) {
	d.factory = f
}

// Detect returns the cached capabilities, computing them on first call.
// A nil screen or pump skips the rendering benchmark and scores from
// hardware signals alone. Benchmark failures never abort detection.
func (d *Detector) Detect(ctx context.Context, screen *core.Screen, pump FramePump) (*Capabilities, error) {
	if d.cached != nil {
		return d.cached, nil
	}

	score := d.hardwareScore()

	if screen != nil && pump != nil {
		if benchScore, ok := d.runBenchmark(ctx, screen, pump); ok {
			score = 0.6*score + 0.4*benchScore
		}
	}

	caps := capabilitiesForScore(score, d.probe.MemoryBytes)
	d.cached = &caps
	return d.cached, nil
}

// Redetect drops the cache and runs detection again.
func (d *Detector) Redetect(ctx context.Context, screen *core.Screen, pump FramePump) (*Capabilities, error) {
	d.cached = nil
	return d.Detect(ctx, screen, pump)
}

// Cached returns the cached capabilities without triggering detection.
func (d *Detector) Cached() *Capabilities {
	return d.cached
}

// hardwareScore weighs core count, memory tier, and a small-terminal
// penalty into a 0-100 score.
func (d *Detector) hardwareScore() float64 {
	cores := d.probe.Cores
	if cores <= 0 {
		cores = 1
	}
	coreScore := float64(core.Min(cores, 16)) / 16 * 50

	var memScore float64
	switch memoryTier(d.probe.MemoryBytes) {
	case MemoryLow:
		memScore = 5
	case MemoryMedium:
		memScore = 18
	case MemoryHigh:
		memScore = 30
	}

	score := 20 + coreScore + memScore

	// Cramped terminals stand in for the mobile user-agent penalty.
	if d.probe.ScreenW > 0 && d.probe.ScreenH > 0 &&
		(d.probe.ScreenW < 60 || d.probe.ScreenH < 20) {
		score -= 15
	}

	return core.ClampF(score, 0, 100)
}

// runBenchmark animates a sprite batch for up to benchFrames frames,
// measuring the achieved frame rate. Returns (score, false) when nothing
// could be measured; partial results after a budget overrun still count.
func (d *Detector) runBenchmark(ctx context.Context, screen *core.Screen, pump FramePump) (float64, bool) {
	sprites := make([]core.Sprite, 0, benchSprites)
	for i := 0; i < benchSprites; i++ {
		sp, err := d.factory(float64(i%screen.Width()), float64(i%screen.Height()))
		if err != nil {
			continue // degraded batch, not a failed benchmark
		}
		sprites = append(sprites, sp)
	}
	defer func() {
		for _, sp := range sprites {
			sp.Destroy()
		}
	}()
	if len(sprites) == 0 {
		return 0, false
	}

	start := time.Now()
	var total time.Duration
	frames := 0
	for frames < benchFrames {
		if time.Since(start) > benchTimeBudget {
			break // partial result; wall clock wins over frame count
		}
		delta, err := pump(ctx)
		if err != nil {
			break
		}

		for i, sp := range sprites {
			x, y := sp.Position()
			sp.SetPosition(x+1, y)
			sp.SetAngle(float64((frames + i) % 360))
			screen.Set(int(x)%screen.Width(), int(y)%screen.Height(), '*')
		}

		total += delta
		frames++
	}

	if frames == 0 || total <= 0 {
		return 0, false
	}
	fps := float64(frames) / total.Seconds()
	return core.ClampF(fps/benchTargetFPS, 0, 1) * 100, true
}

// capabilitiesForScore maps a 0-100 score deterministically onto the
// capability buckets and a recommended tier.
func capabilitiesForScore(score float64, memoryBytes uint64) Capabilities {
	caps := Capabilities{PerformanceScore: score}

	switch {
	case score < 35:
		caps.MemoryLevel = MemoryLow
		caps.RenderingCapability = RenderBasic
	case score < 70:
		caps.MemoryLevel = MemoryMedium
		caps.RenderingCapability = RenderStandard
	default:
		caps.MemoryLevel = MemoryHigh
		caps.RenderingCapability = RenderEnhanced
	}

	// A directly probed memory tier overrides the score-derived bucket.
	if memoryBytes != 0 {
		caps.MemoryLevel = memoryTier(memoryBytes)
	}

	switch {
	case score < 20:
		caps.RecommendedQuality = "minimal"
	case score < 40:
		caps.RecommendedQuality = "low"
	case score < 60:
		caps.RecommendedQuality = "medium"
	case score < 80:
		caps.RecommendedQuality = "high"
	default:
		caps.RecommendedQuality = "ultra"
	}

	return caps
}
