// Package runner implements Topple Run, an endless runner where the
// player jumps over stone pillars or shoves them over. A shoved pillar
// topples to the ground, briefly blocks the lane lying flat, then fades
// away. Game logic is pure; the platform handles input, timing, and
// terminal rendering.
package runner

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/topple-run/internal/config"
	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/hud"
	"github.com/vovakirdan/topple-run/internal/optimizer"
	"github.com/vovakirdan/topple-run/internal/quality"
	"github.com/vovakirdan/topple-run/internal/registry"
	"github.com/vovakirdan/topple-run/internal/toppled"
)

// Visual characters for rendering
const (
	RunnerBody   = '█'
	RunnerHead   = '◆'
	RunnerLeg1   = '╱'
	RunnerLeg2   = '╲'
	PillarChar   = '║'
	PillarCap    = '╥'
	ToppledChar  = '═'
	FallingChar  = '╲'
	GroundChar   = '─'
	PickupChar   = '◆'
	ParticleChar = '·'
	ShoveReach   = 3.0
	PickupPoints = 25
)

// particle is one short-lived dust fleck behind the runner.
type particle struct {
	x, y float64
	life int // remaining ticks
}

// Game implements the Topple Run game logic.
type Game struct {
	playerY    float64 // vertical position relative to ground (negative = up)
	playerVel  float64
	isGrounded bool
	pillars    *PillarManager
	timeline   *toppled.Timeline
	opt        *optimizer.Optimizer
	level      quality.Level
	particles  []particle
	rng        *rand.Rand
	score      int
	gameOver   bool
	paused     bool
	runtime    core.RuntimeConfig
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	tickCount  int
	groundY    int
	legFrame   int
	tickDelta  time.Duration
}

// configPath stores the custom config path set via CLI.
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // use config default
	}
}

// New creates a new Topple Run game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Topple Run"
}

// QualityLevel returns the active effect tier.
func (g *Game) QualityLevel() quality.Level {
	return g.level
}

// Timeline exposes the toppled pool, mainly for the debug overlay.
func (g *Game) Timeline() *toppled.Timeline {
	return g.timeline
}

// Optimizer exposes the frame counters for the debug overlay.
func (g *Game) Optimizer() *optimizer.Optimizer {
	return g.opt
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.tickDelta = time.Second / time.Duration(tickRate)

	level := quality.LevelByName(runtime.Quality)
	if level == nil {
		level = quality.LevelByName("medium")
	}
	g.level = *level

	g.groundY = runtime.ScreenH - g.cfg.Player.GroundOffset
	g.playerY = 0
	g.playerVel = 0
	g.isGrounded = true
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
	g.legFrame = 0
	g.particles = g.particles[:0]
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	perfCfg, err := config.LoadPerf("")
	if err != nil {
		perfCfg = config.DefaultPerfConfig()
	}
	bounds := core.NewRect(0, 0, runtime.ScreenW, runtime.ScreenH)
	g.opt = optimizer.New(optimizer.Config{
		Batching:    perfCfg.Optimizer.Batching,
		BatchSize:   perfCfg.Optimizer.BatchSize,
		CullEnabled: perfCfg.Optimizer.CullEnabled,
		CullMargin:  perfCfg.Optimizer.CullMargin,
	}, bounds)

	if g.timeline != nil {
		g.timeline.Clear()
	}
	g.timeline = toppled.New(cfg.Toppled.TimelineConfig())

	if g.pillars == nil {
		g.pillars = NewPillarManager(runtime.Seed, runtime.ScreenW, g.groundY, tickRate, &g.cfg, g.difficulty)
	} else {
		g.pillars.cfg = &g.cfg
		g.pillars.difficulty = g.difficulty
		g.pillars.screenW = runtime.ScreenW
		g.pillars.groundY = g.groundY
		g.pillars.cellsPerSec = g.cfg.Physics.BaseSpeed * float64(tickRate)
		g.pillars.Reset(runtime.Seed)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.legFrame = (g.legFrame + 1) % 10

	if in.Has(core.ActionJump) && g.isGrounded {
		g.playerVel = g.cfg.Physics.JumpImpulse
		g.isGrounded = false
	}

	if in.Has(core.ActionShove) {
		g.shove()
	}

	// Vertical physics.
	if !g.isGrounded {
		g.playerVel += g.cfg.Physics.Gravity
		if g.playerVel > g.cfg.Physics.MaxFallSpeed {
			g.playerVel = g.cfg.Physics.MaxFallSpeed
		}
		g.playerY += g.playerVel
		if g.playerY >= 0 {
			g.playerY = 0
			g.playerVel = 0
			g.isGrounded = true
		}
	}

	scale := g.difficulty.Speed(1.0, g.score, g.tickCount)

	g.opt.ResetMetrics()
	g.pillars.Update(g.opt, scale, g.tickDelta, g.score, g.tickCount)
	g.timeline.Update(g.tickDelta)
	g.updateParticles()

	g.score++

	playerRect := g.playerRect()
	if collected := g.pillars.CollectPickups(playerRect); collected > 0 {
		g.score += collected * PickupPoints
	}

	if g.pillars.CheckCollision(playerRect) || g.hitsToppled(playerRect) {
		g.gameOver = true
	}

	return core.StepResult{State: g.State()}
}

// shove knocks the nearest reachable pillar into the toppled timeline.
// Ownership of the sprite moves from the pillar pool to the timeline.
func (g *Game) shove() {
	playerRight := float64(g.cfg.Player.X + g.cfg.Player.Width)
	target := g.pillars.ShoveTarget(playerRight, ShoveReach)
	if target == nil {
		return
	}

	g.pillars.Remove(target)
	g.timeline.AddFromFalling(target.Member.Sprite, float64(g.cfg.Player.X))
	g.spawnDust(target.X(), float64(g.groundY-1))
}

// hitsToppled tests the player against settled lying pillars. A pillar
// still falling is passable; once flat it blocks the lane at ground level.
func (g *Game) hitsToppled(playerRect core.Rect) bool {
	for _, e := range g.timeline.Entries() {
		if e.Phase() != toppled.PhaseSettled {
			continue
		}
		x, _ := e.Sprite().Position()
		length := g.cfg.Toppled.SlideDistance + 2
		lyingX := int(x)
		if e.FallDirection() < 0 {
			lyingX -= int(length)
		}
		lying := core.NewRect(lyingX, g.groundY-1, int(length), 1)
		if playerRect.Intersects(lying) {
			return true
		}
	}
	return false
}

// spawnDust emits impact particles, capped by the quality tier's budget.
func (g *Game) spawnDust(x, y float64) {
	if g.level.ParticleCount == 0 {
		return
	}
	for i := 0; i < g.level.ParticleCount; i++ {
		if len(g.particles) >= g.level.ParticleCount*2 {
			break
		}
		g.particles = append(g.particles, particle{
			x:    x + g.rng.Float64()*4 - 2,
			y:    y - g.rng.Float64()*2,
			life: 6 + g.rng.Intn(8),
		})
	}
}

func (g *Game) updateParticles() {
	kept := g.particles[:0]
	for _, p := range g.particles {
		p.life--
		p.x -= 0.5
		p.y -= 0.1
		if p.life > 0 {
			kept = append(kept, p)
		}
	}
	g.particles = kept
}

// playerRect returns the player's collision rectangle in screen coordinates.
func (g *Game) playerRect() core.Rect {
	screenY := g.groundY - g.cfg.Player.Height - int(-g.playerY)
	return core.NewRect(g.cfg.Player.X, screenY, g.cfg.Player.Width, g.cfg.Player.Height)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawHLine(0, g.groundY, dst.Width(), GroundChar)

	if g.level.DecorDensity > 0 {
		g.drawDecor(dst)
	}

	for _, p := range g.pillars.Pillars() {
		g.drawPillar(dst, p)
	}
	g.drawToppled(dst)

	for _, m := range g.pillars.Pickups() {
		x, y := m.Sprite.Position()
		dst.SetCell(int(x), int(y), PickupChar, core.ColorYellow)
	}

	for _, p := range g.particles {
		dst.Set(int(p.x), int(p.y), ParticleChar)
	}

	g.drawRunner(dst)

	hud.StatusBar(dst,
		fmt.Sprintf(" Score: %d ", g.score),
		fmt.Sprintf(" Spd: %.1f ", g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.score, g.tickCount)))

	if g.paused {
		hud.MessageBox(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		hud.MessageBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawPillar renders one standing pillar as a capped column.
func (g *Game) drawPillar(dst *core.Screen, p *Pillar) {
	x := int(p.X())
	top := g.groundY - p.Height
	for dx := 0; dx < PillarWidth; dx++ {
		dst.SetCell(x+dx, top, PillarCap, core.ColorWhite)
		for y := top + 1; y < g.groundY; y++ {
			dst.SetCell(x+dx, y, PillarChar, core.ColorWhite)
		}
	}
}

// drawToppled renders falling and lying pillars from the timeline. The
// rotation angle picks the glyph: near-vertical pillars draw as columns,
// past 45 degrees they collapse into a diagonal, settled ones lie flat.
func (g *Game) drawToppled(dst *core.Screen) {
	for _, e := range g.timeline.Entries() {
		sprite := e.Sprite()
		x, _ := sprite.Position()
		mag := math.Abs(sprite.Angle())

		switch {
		case mag >= 90:
			length := int(g.cfg.Toppled.SlideDistance) + 2
			start := int(x)
			if e.FallDirection() < 0 {
				start -= length
			}
			dst.DrawHLine(start, g.groundY-1, length, ToppledChar)
		case mag >= 45:
			glyph := FallingChar
			if e.FallDirection() > 0 {
				glyph = RunnerLeg1
			}
			dst.Set(int(x), g.groundY-1, glyph)
			dst.Set(int(x)+int(e.FallDirection()), g.groundY-2, glyph)
		default:
			dst.SetCell(int(x), g.groundY-1, PillarChar, core.ColorGray)
			dst.SetCell(int(x), g.groundY-2, PillarChar, core.ColorGray)
		}
	}
}

// drawDecor scatters ground tufts, deterministic per screen width so the
// backdrop does not flicker between frames.
func (g *Game) drawDecor(dst *core.Screen) {
	decorRng := rand.New(rand.NewSource(int64(dst.Width())))
	count := int(g.level.DecorDensity * float64(dst.Width()))
	for i := 0; i < count; i++ {
		x := decorRng.Intn(dst.Width())
		dst.SetCell(x, g.groundY+1, ',', core.ColorGreen)
	}
}

// drawRunner renders the player character.
func (g *Game) drawRunner(dst *core.Screen) {
	baseY := g.groundY - g.cfg.Player.Height - int(-g.playerY)
	playerX := g.cfg.Player.X

	dst.Set(playerX+1, baseY, RunnerHead)
	dst.Set(playerX+2, baseY, RunnerBody)

	dst.Set(playerX, baseY+1, RunnerBody)
	dst.Set(playerX+1, baseY+1, RunnerBody)
	dst.Set(playerX+2, baseY+1, RunnerBody)

	if g.isGrounded {
		if g.legFrame < 5 {
			dst.Set(playerX, baseY+2, RunnerLeg1)
			dst.Set(playerX+1, baseY+2, ' ')
			dst.Set(playerX+2, baseY+2, RunnerLeg2)
		} else {
			dst.Set(playerX, baseY+2, ' ')
			dst.Set(playerX+1, baseY+2, RunnerLeg1)
			dst.Set(playerX+2, baseY+2, RunnerLeg2)
		}
	} else {
		dst.Set(playerX, baseY+2, RunnerLeg1)
		dst.Set(playerX+1, baseY+2, RunnerLeg2)
		dst.Set(playerX+2, baseY+2, ' ')
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry.
func init() {
	registry.Register("runner", func() registry.Game {
		return New()
	})
}
