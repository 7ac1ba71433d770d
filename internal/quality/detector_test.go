package quality

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/topple-run/internal/core"
)

// syntheticPump reports a fixed frame duration without waiting.
func syntheticPump(d time.Duration) FramePump {
	return func(ctx context.Context) (time.Duration, error) {
		return d, nil
	}
}

func TestLevelsStrictlyIncrease(t *testing.T) {
	all := AllLevels()
	if len(all) != 5 {
		t.Fatalf("expected 5 tiers, got %d", len(all))
	}

	names := []string{"minimal", "low", "medium", "high", "ultra"}
	for i, l := range all {
		if l.Name != names[i] {
			t.Errorf("tier %d = %s, expected %s", i, l.Name, names[i])
		}
		if i > 0 && l.ParticleCount <= all[i-1].ParticleCount {
			t.Errorf("particle budget must strictly increase: %s (%d) vs %s (%d)",
				all[i-1].Name, all[i-1].ParticleCount, l.Name, l.ParticleCount)
		}
		if i > 0 && l.FadeSteps <= all[i-1].FadeSteps {
			t.Errorf("fade steps must strictly increase at tier %s", l.Name)
		}
	}
}

func TestLevelByName(t *testing.T) {
	if l := LevelByName("medium"); l == nil || l.Name != "medium" {
		t.Errorf("LevelByName(medium) = %+v", l)
	}
	if l := LevelByName("potato"); l != nil {
		t.Errorf("unknown tier should be nil, got %+v", l)
	}
}

func TestDetectCachesResult(t *testing.T) {
	d := NewDetectorWithProbe(HardwareProbe{Cores: 8, MemoryBytes: 16 << 30})

	first, err := d.Detect(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}
	second, err := d.Detect(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	if first != second {
		t.Error("second Detect must return the identical cached result")
	}

	third, err := d.Redetect(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Redetect() failed: %v", err)
	}
	if third == first {
		t.Error("Redetect must replace the cached result")
	}
}

func TestHardwareScoreOrdering(t *testing.T) {
	weak := NewDetectorWithProbe(HardwareProbe{Cores: 1, MemoryBytes: 1 << 30, ScreenW: 40, ScreenH: 12})
	strong := NewDetectorWithProbe(HardwareProbe{Cores: 16, MemoryBytes: 32 << 30})

	wc, _ := weak.Detect(context.Background(), nil, nil)
	sc, _ := strong.Detect(context.Background(), nil, nil)

	if wc.PerformanceScore >= sc.PerformanceScore {
		t.Errorf("weak host scored %v >= strong host %v", wc.PerformanceScore, sc.PerformanceScore)
	}
	if wc.MemoryLevel != MemoryLow || sc.MemoryLevel != MemoryHigh {
		t.Errorf("memory levels wrong: weak=%s strong=%s", wc.MemoryLevel, sc.MemoryLevel)
	}
	if wc.RenderingCapability == RenderEnhanced {
		t.Error("weak host should not be enhanced")
	}
}

func TestUnknownMemoryIsNotZero(t *testing.T) {
	unknown := NewDetectorWithProbe(HardwareProbe{Cores: 4})
	tiny := NewDetectorWithProbe(HardwareProbe{Cores: 4, MemoryBytes: 1 << 30})

	uc, _ := unknown.Detect(context.Background(), nil, nil)
	tc, _ := tiny.Detect(context.Background(), nil, nil)

	if uc.PerformanceScore <= tc.PerformanceScore {
		t.Errorf("unknown memory (%v) must score above known-tiny memory (%v)",
			uc.PerformanceScore, tc.PerformanceScore)
	}
	if uc.MemoryLevel != MemoryMedium {
		t.Errorf("unknown memory level = %s, expected medium", uc.MemoryLevel)
	}
}

func TestScoreBandsMapToTiers(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{10, "minimal"},
		{25, "low"},
		{50, "medium"},
		{70, "high"},
		{95, "ultra"},
	}
	for _, tc := range tests {
		caps := capabilitiesForScore(tc.score, 0)
		if caps.RecommendedQuality != tc.expected {
			t.Errorf("score %v -> %s, expected %s", tc.score, caps.RecommendedQuality, tc.expected)
		}
		if LevelByName(caps.RecommendedQuality) == nil {
			t.Errorf("recommended tier %s missing from the table", caps.RecommendedQuality)
		}
	}
}

func TestBenchmarkRefinesScore(t *testing.T) {
	screen := core.NewScreen(80, 24)

	// A host that pumps 60 FPS frames should outscore one at 10 FPS, all
	// hardware signals equal.
	fast := NewDetectorWithProbe(HardwareProbe{Cores: 4, MemoryBytes: 8 << 30})
	slow := NewDetectorWithProbe(HardwareProbe{Cores: 4, MemoryBytes: 8 << 30})

	fc, err := fast.Detect(context.Background(), screen, syntheticPump(16*time.Millisecond))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}
	sc, err := slow.Detect(context.Background(), screen, syntheticPump(100*time.Millisecond))
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}

	if fc.PerformanceScore <= sc.PerformanceScore {
		t.Errorf("fast pump scored %v <= slow pump %v", fc.PerformanceScore, sc.PerformanceScore)
	}
}

func TestBenchmarkFailuresFallBackToHardware(t *testing.T) {
	probe := HardwareProbe{Cores: 4, MemoryBytes: 8 << 30}

	failing := NewDetectorWithProbe(probe)
	failing.SetSpriteFactory(func(x, y float64) (core.Sprite, error) {
		return nil, errors.New("sprite pool exhausted")
	})

	hardwareOnly := NewDetectorWithProbe(probe)

	screen := core.NewScreen(80, 24)
	fc, err := failing.Detect(context.Background(), screen, syntheticPump(16*time.Millisecond))
	if err != nil {
		t.Fatalf("Detect must not fail when sprite creation fails: %v", err)
	}
	hc, _ := hardwareOnly.Detect(context.Background(), nil, nil)

	if fc.PerformanceScore != hc.PerformanceScore {
		t.Errorf("failed benchmark should yield the hardware-only score: %v vs %v",
			fc.PerformanceScore, hc.PerformanceScore)
	}
}
