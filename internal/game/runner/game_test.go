package runner

import (
	"testing"
	"time"

	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/optimizer"
	"github.com/vovakirdan/topple-run/internal/toppled"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
		Quality:  "medium",
	}
}

func emptyInput() core.InputFrame {
	return core.NewInputFrame()
}

func inputWith(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestResetInitialState(t *testing.T) {
	g := New()
	g.Reset(testRuntime(42))

	st := g.State()
	if st.Score != 0 || st.GameOver || st.Paused {
		t.Errorf("fresh game state = %+v", st)
	}
	if !g.isGrounded {
		t.Error("player should start grounded")
	}
	if g.QualityLevel().Name != "medium" {
		t.Errorf("quality = %q, expected medium", g.QualityLevel().Name)
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	a := New()
	b := New()
	a.Reset(testRuntime(7))
	b.Reset(testRuntime(7))

	for i := 0; i < 300; i++ {
		a.Step(emptyInput())
		b.Step(emptyInput())
	}

	if a.State() != b.State() {
		t.Errorf("same seed diverged: %+v vs %+v", a.State(), b.State())
	}

	pa, pb := a.pillars.Pillars(), b.pillars.Pillars()
	if len(pa) != len(pb) {
		t.Fatalf("pillar counts diverged: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i].X() != pb[i].X() || pa[i].Height != pb[i].Height {
			t.Errorf("pillar %d diverged", i)
		}
	}
}

func TestJumpAndLand(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	g.Step(inputWith(core.ActionJump))
	if g.isGrounded {
		t.Fatal("jump should leave the ground")
	}
	if g.playerY >= 0 {
		t.Errorf("playerY = %v, expected above ground", g.playerY)
	}

	for i := 0; i < 200 && !g.isGrounded; i++ {
		g.Step(emptyInput())
	}
	if !g.isGrounded || g.playerY != 0 {
		t.Errorf("player never landed: y=%v grounded=%v", g.playerY, g.isGrounded)
	}
}

func TestShoveTopplesNearestPillar(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	// Plant a pillar just within shove reach.
	x := float64(g.cfg.Player.X + g.cfg.Player.Width + 1)
	sprite := core.NewBasicSprite(x, float64(g.groundY), PillarChar, core.ColorWhite)
	g.pillars.pillars = append(g.pillars.pillars, &Pillar{
		Member: &optimizer.Member{
			Sprite: sprite,
			Data:   &optimizer.MemberData{Speed: 0, BaseY: float64(g.groundY)},
		},
		Height: 4,
	})

	g.Step(inputWith(core.ActionShove))

	if g.timeline.ActiveCount() != 1 {
		t.Fatalf("timeline has %d entries, expected the shoved pillar", g.timeline.ActiveCount())
	}
	for _, p := range g.pillars.Pillars() {
		if p.Member.Sprite == sprite {
			t.Error("shoved pillar still standing in the pool")
		}
	}
	// Pillar ahead of the player falls toward the player: negative angle.
	if sprite.Angle() >= 0 {
		t.Errorf("shoved pillar angle = %v, expected negative", sprite.Angle())
	}
}

func TestShoveWithNothingInReach(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	g.Step(inputWith(core.ActionShove))
	if g.timeline.ActiveCount() != 0 {
		t.Error("shove with no pillar in reach must do nothing")
	}
}

func TestSettledPillarBlocksLane(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	// Topple a pillar right ahead of the player and let it settle.
	x := float64(g.cfg.Player.X + g.cfg.Player.Width + 1)
	sprite := core.NewBasicSprite(x, float64(g.groundY), PillarChar, core.ColorWhite)
	g.timeline.AddFromFalling(sprite, float64(g.cfg.Player.X))

	// While still falling the lane stays open.
	g.Step(emptyInput())
	if g.State().GameOver {
		t.Fatal("a pillar still falling must not end the run")
	}

	g.timeline.Update(time.Duration(g.cfg.Toppled.ToppleMs)*time.Millisecond + 50*time.Millisecond)
	if g.timeline.Entries()[0].Phase() != toppled.PhaseSettled {
		t.Fatal("test setup: pillar should have settled")
	}

	g.Step(emptyInput())
	if !g.State().GameOver {
		t.Error("running into a settled pillar must end the run")
	}
}

func TestPickupCollection(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	// Drop a pickup inside the player's rectangle.
	rect := g.playerRect()
	ps := core.NewBasicSprite(float64(rect.X+1), float64(rect.Y+1), PickupChar, core.ColorYellow)
	g.pillars.pickups = append(g.pillars.pickups, &optimizer.Member{
		Sprite: ps,
		Data:   &optimizer.MemberData{Speed: 0, BaseY: float64(rect.Y + 1)},
	})

	before := g.State().Score
	g.Step(emptyInput())

	// One distance point plus the pickup bonus.
	if got := g.State().Score; got != before+1+PickupPoints {
		t.Errorf("score = %d, expected %d", got, before+1+PickupPoints)
	}
	if !ps.Destroyed() {
		t.Error("collected pickup sprite should be destroyed")
	}
	if len(g.pillars.Pickups()) != 0 {
		t.Error("collected pickup should leave the pool")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	g.Step(emptyInput())
	g.Step(inputWith(core.ActionPause))
	score := g.State().Score

	for i := 0; i < 10; i++ {
		g.Step(emptyInput())
	}
	if g.State().Score != score {
		t.Error("paused game must not advance the score")
	}

	g.Step(inputWith(core.ActionPause))
	g.Step(emptyInput())
	if g.State().Score == score {
		t.Error("unpausing should resume the simulation")
	}
}

func TestGameOverStopsSimulation(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.gameOver = true

	score := g.State().Score
	for i := 0; i < 10; i++ {
		g.Step(inputWith(core.ActionJump))
	}
	if g.State().Score != score {
		t.Error("a finished game must not keep simulating")
	}
}

func TestRenderDrawsScene(t *testing.T) {
	g := New()
	g.Reset(testRuntime(5))
	for i := 0; i < 120; i++ {
		g.Step(emptyInput())
	}

	dst := core.NewScreen(80, 24)
	g.Render(dst)

	frame := dst.String()
	if frame == "" {
		t.Fatal("empty frame")
	}
	// Ground line and score are always present.
	if dst.Get(0, g.groundY) != GroundChar {
		t.Error("ground line missing")
	}
	row := dst.Row(0)
	if row == "" || !containsScore(row) {
		t.Errorf("status bar missing score: %q", row)
	}
}

func containsScore(row string) bool {
	for i := 0; i+5 <= len(row); i++ {
		if row[i:i+5] == "Score" {
			return true
		}
	}
	return false
}
