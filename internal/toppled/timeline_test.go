package toppled

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/topple-run/internal/core"
)

func testConfig() Config {
	return Config{
		MaxToppled:     3,
		ToppleDuration: 600 * time.Millisecond,
		BlockDuration:  2 * time.Second,
		FadeDuration:   300 * time.Millisecond,
		SlideDistance:  3,
		ImpactSpin:     8,
	}
}

func TestFallDirectionFromPlayerSide(t *testing.T) {
	tl := New(testConfig())

	// Player left of the pillar: falls left, negative angle.
	left := tl.AddFromFalling(core.NewBasicSprite(100, 20, '|', core.ColorDefault), 50)
	if left.FallDirection() != -1 {
		t.Errorf("player left: FallDirection() = %v, expected -1", left.FallDirection())
	}

	// Player right of the pillar: falls right, positive angle.
	right := tl.AddFromFalling(core.NewBasicSprite(10, 20, '|', core.ColorDefault), 50)
	if right.FallDirection() != 1 {
		t.Errorf("player right: FallDirection() = %v, expected +1", right.FallDirection())
	}
}

func TestHalfwayFallExample(t *testing.T) {
	cfg := testConfig()
	tl := New(cfg)
	sp := core.NewBasicSprite(100, 20, '|', core.ColorDefault)
	tl.AddFromFalling(sp, 50)

	tl.Update(cfg.ToppleDuration / 2)

	if a := sp.Angle(); a >= 0 || a <= -90 {
		t.Errorf("halfway angle = %v, expected strictly between 0 and -90", a)
	}
	if x, _ := sp.Position(); x >= 100 {
		t.Errorf("halfway x = %v, expected strictly less than 100", x)
	}
}

func TestAngleMonotoneAndPinnedAtNinety(t *testing.T) {
	cfg := testConfig()
	tl := New(cfg)
	sp := core.NewBasicSprite(100, 20, '|', core.ColorDefault)
	tl.AddFromFalling(sp, 50)

	tick := 50 * time.Millisecond
	prevMag := math.Abs(sp.Angle())
	prevX := 100.0
	for elapsed := time.Duration(0); elapsed < cfg.ToppleDuration; elapsed += tick {
		tl.Update(tick)

		mag := math.Abs(sp.Angle())
		if mag < prevMag {
			t.Fatalf("angle magnitude regressed: %v -> %v", prevMag, mag)
		}
		prevMag = mag

		x, y := sp.Position()
		if x > prevX {
			t.Fatalf("slide reversed direction: x %v -> %v", prevX, x)
		}
		prevX = x
		if y != 20 {
			t.Fatalf("baseY must stay constant during the fall, got %v", y)
		}
	}

	if sp.Angle() != -90 {
		t.Errorf("settled angle = %v, expected exactly -90", sp.Angle())
	}

	// No later update may change the angle.
	for i := 0; i < 10; i++ {
		tl.Update(tick)
		if sp.Angle() != -90 {
			t.Fatalf("settled angle changed to %v on update %d", sp.Angle(), i)
		}
	}
}

func TestOverflowEvictsOldestExactlyOnce(t *testing.T) {
	cfg := testConfig()
	tl := New(cfg)

	sprites := make([]*core.BasicSprite, 0, 5)
	for i := 0; i < 5; i++ {
		sp := core.NewBasicSprite(float64(10+i*10), 20, '|', core.ColorDefault)
		sprites = append(sprites, sp)
		tl.AddFromFalling(sp, 0)

		if tl.ActiveCount() > cfg.MaxToppled {
			t.Fatalf("pool exceeded cap: %d > %d", tl.ActiveCount(), cfg.MaxToppled)
		}
	}

	// Five inserts into a pool of three: the two oldest were evicted, in
	// insertion order, and their sprites destroyed.
	if !sprites[0].Destroyed() || !sprites[1].Destroyed() {
		t.Error("evicted sprites must be destroyed")
	}
	for i := 2; i < 5; i++ {
		if sprites[i].Destroyed() {
			t.Errorf("sprite %d evicted prematurely", i)
		}
	}

	entries := tl.Entries()
	if len(entries) != 3 {
		t.Fatalf("ActiveCount = %d, expected 3", len(entries))
	}
	for i, e := range entries {
		if e.Sprite() != sprites[i+2] {
			t.Errorf("entry %d is not the expected survivor", i)
		}
	}
}

func TestRemovalTimingAndFadeDestroy(t *testing.T) {
	cfg := testConfig()
	tl := New(cfg)
	sp := core.NewBasicSprite(100, 20, '|', core.ColorDefault)
	tl.AddFromFalling(sp, 50)

	tick := 100 * time.Millisecond
	lifetime := cfg.ToppleDuration + cfg.BlockDuration

	// Advance to just before the block window ends.
	for elapsed := time.Duration(0); elapsed+tick < lifetime; elapsed += tick {
		tl.Update(tick)
	}
	if tl.ActiveCount() != 1 {
		t.Fatal("entry removed before its block window elapsed")
	}

	// One more tick crosses the boundary: removed from the pool, fade
	// starts, sprite still alive.
	tl.Update(tick)
	if tl.ActiveCount() != 0 {
		t.Fatal("entry should leave the pool at topple+block duration")
	}
	if tl.FadingCount() != 1 {
		t.Fatal("despawn fade should be running")
	}
	if sp.Destroyed() {
		t.Fatal("sprite must not be destroyed before the fade completes")
	}

	// Alpha drops while fading.
	tl.Update(cfg.FadeDuration / 3)
	if sp.Alpha() >= 1 {
		t.Errorf("alpha should drop during fade, got %v", sp.Alpha())
	}

	// Fade completion destroys the sprite.
	tl.Update(cfg.FadeDuration)
	if !sp.Destroyed() {
		t.Error("sprite must be destroyed when the fade completes")
	}
	if tl.FadingCount() != 0 {
		t.Error("completed fade should be dropped")
	}
}

func TestSettledPhaseReporting(t *testing.T) {
	cfg := testConfig()
	tl := New(cfg)
	sp := core.NewBasicSprite(100, 20, '|', core.ColorDefault)
	e := tl.AddFromFalling(sp, 50)

	if e.Phase() != PhaseToppling {
		t.Errorf("initial phase = %s, expected toppling", e.Phase())
	}

	tl.Update(cfg.ToppleDuration + 10*time.Millisecond)
	if e.Phase() != PhaseSettled {
		t.Errorf("phase after fall = %s, expected settled", e.Phase())
	}
}

func TestEntriesAdvanceIndependently(t *testing.T) {
	cfg := testConfig()
	tl := New(cfg)

	early := core.NewBasicSprite(100, 20, '|', core.ColorDefault)
	tl.AddFromFalling(early, 50)
	tl.Update(cfg.ToppleDuration) // early settles

	late := core.NewBasicSprite(60, 20, '|', core.ColorDefault)
	tl.AddFromFalling(late, 50)
	tl.Update(cfg.ToppleDuration / 2)

	if early.Angle() != -90 {
		t.Errorf("settled entry angle = %v, expected -90", early.Angle())
	}
	if a := math.Abs(late.Angle()); a >= 90 {
		t.Errorf("late entry should still be falling, angle magnitude %v", a)
	}
}

func TestClearDestroysEverything(t *testing.T) {
	cfg := testConfig()
	tl := New(cfg)
	a := core.NewBasicSprite(100, 20, '|', core.ColorDefault)
	b := core.NewBasicSprite(50, 20, '|', core.ColorDefault)
	tl.AddFromFalling(a, 0)
	tl.AddFromFalling(b, 0)

	tl.Clear()

	if !a.Destroyed() || !b.Destroyed() {
		t.Error("Clear must destroy all sprites")
	}
	if tl.ActiveCount() != 0 || tl.FadingCount() != 0 {
		t.Error("Clear must empty the pool and fades")
	}
}
