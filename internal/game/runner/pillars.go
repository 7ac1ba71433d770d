package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/topple-run/internal/config"
	"github.com/vovakirdan/topple-run/internal/core"
	"github.com/vovakirdan/topple-run/internal/optimizer"
)

// PillarWidth is the standing pillar's footprint in cells.
const PillarWidth = 2

// Pillar is one standing obstacle. Once shoved it leaves the manager and
// its sprite is handed to the toppled timeline.
type Pillar struct {
	Member *optimizer.Member
	Height int
}

// X returns the pillar's left edge.
func (p *Pillar) X() float64 {
	x, _ := p.Member.Sprite.Position()
	return x
}

// Rect returns the standing collision rectangle.
func (p *Pillar) Rect(groundY int) core.Rect {
	return core.NewRect(int(p.X()), groundY-p.Height, PillarWidth, p.Height)
}

// PillarManager handles spawning, scrolling, and removal of pillars and
// pickups. Movement runs through the optimizer's pools.
type PillarManager struct {
	pillars     []*Pillar
	pickups     []*optimizer.Member
	rng         *rand.Rand
	screenW     int
	groundY     int
	nextSpawnX  float64
	cfg         *config.RunnerConfig
	difficulty  *config.DifficultyManager
	cellsPerSec float64 // base scroll speed in cells per second
}

// NewPillarManager creates a manager with the given RNG seed.
func NewPillarManager(seed int64, screenW, groundY, tickRate int, cfg *config.RunnerConfig, diff *config.DifficultyManager) *PillarManager {
	pm := &PillarManager{
		pillars:     make([]*Pillar, 0, 8),
		pickups:     make([]*optimizer.Member, 0, 4),
		screenW:     screenW,
		groundY:     groundY,
		cfg:         cfg,
		difficulty:  diff,
		cellsPerSec: cfg.Physics.BaseSpeed * float64(tickRate),
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pillars and pickups and reseeds the RNG.
func (pm *PillarManager) Reset(seed int64) {
	for _, p := range pm.pillars {
		p.Member.Sprite.Destroy()
	}
	for _, m := range pm.pickups {
		m.Sprite.Destroy()
	}
	pm.pillars = pm.pillars[:0]
	pm.pickups = pm.pickups[:0]
	pm.rng = rand.New(rand.NewSource(seed))
	pm.nextSpawnX = float64(pm.screenW + pm.cfg.Pillars.MinSpacing)
}

// Pillars returns the standing pillars, nearest first is not guaranteed.
func (pm *PillarManager) Pillars() []*Pillar {
	return pm.pillars
}

// Pickups returns the live pickup members.
func (pm *PillarManager) Pickups() []*optimizer.Member {
	return pm.pickups
}

// Update scrolls both pools through the optimizer, drops what scrolled
// off, and spawns new pillars as the spawn cursor enters the screen.
// scale is the difficulty speed multiplier (1.0 at level zero).
func (pm *PillarManager) Update(opt *optimizer.Optimizer, scale float64, delta time.Duration, score, ticks int) {
	members := make([]*optimizer.Member, len(pm.pillars))
	for i, p := range pm.pillars {
		members[i] = p.Member
	}
	opt.UpdateObstacles(members, scale, delta, func(m *optimizer.Member) {
		m.Sprite.Destroy()
	})

	kept := pm.pillars[:0]
	for _, p := range pm.pillars {
		if !p.Member.Removed() {
			kept = append(kept, p)
		}
	}
	pm.pillars = kept

	// Pickups track the same scroll speed so they stay aligned with the
	// gaps they spawned in.
	for _, m := range pm.pickups {
		if m.Data != nil {
			m.Data.Speed = pm.cellsPerSec * scale
		}
	}
	opt.UpdateItems(pm.pickups, delta, func(m *optimizer.Member) {
		m.Sprite.Destroy()
	})

	keptPickups := pm.pickups[:0]
	for _, m := range pm.pickups {
		if !m.Removed() && m.Sprite.Active() {
			keptPickups = append(keptPickups, m)
		}
	}
	pm.pickups = keptPickups

	pm.nextSpawnX -= pm.cellsPerSec * scale * delta.Seconds()
	if pm.nextSpawnX <= float64(pm.screenW) {
		pm.spawn(score, ticks)
	}
}

// spawn creates one pillar at the spawn cursor and advances the cursor by
// the difficulty-scaled spacing, optionally dropping a pickup in the gap.
func (pm *PillarManager) spawn(score, ticks int) {
	minH := pm.cfg.Pillars.MinHeight
	maxH := pm.difficulty.MaxHeight(pm.cfg.Pillars.MaxHeight, score, ticks)

	height := minH
	if maxH > minH {
		height = minH + pm.rng.Intn(maxH-minH+1)
	}

	sprite := core.NewBasicSprite(pm.nextSpawnX, float64(pm.groundY), PillarChar, core.ColorWhite)
	pm.pillars = append(pm.pillars, &Pillar{
		Member: &optimizer.Member{
			Sprite: sprite,
			Data:   &optimizer.MemberData{Speed: pm.cellsPerSec, BaseY: float64(pm.groundY)},
		},
		Height: height,
	})

	spacing := pm.spacing(score, ticks)

	if pm.rng.Float64() < pm.cfg.Pillars.PickupChance {
		px := pm.nextSpawnX + float64(PillarWidth) + float64(spacing)/2
		py := float64(pm.groundY - 3)
		ps := core.NewBasicSprite(px, py, PickupChar, core.ColorYellow)
		pm.pickups = append(pm.pickups, &optimizer.Member{
			Sprite: ps,
			Data: &optimizer.MemberData{
				Speed:         pm.cellsPerSec,
				BaseY:         py,
				SwayAmplitude: 0.8,
			},
		})
	}

	pm.nextSpawnX += float64(PillarWidth + spacing)
}

// spacing derives the current gap between pillars from difficulty plus a
// random variation.
func (pm *PillarManager) spacing(score, ticks int) int {
	minSpacing := pm.cfg.Pillars.MinSpacing
	current := pm.difficulty.Spacing(pm.cfg.Pillars.MaxSpacing, score, ticks)
	if current < minSpacing {
		current = minSpacing
	}

	spacingRange := current - minSpacing
	spacing := minSpacing
	if spacingRange > 0 {
		spacing = minSpacing + pm.rng.Intn(spacingRange+1)
	}
	return spacing
}

// ShoveTarget returns the nearest standing pillar whose left edge lies
// within reach cells ahead of playerRight, or nil.
func (pm *PillarManager) ShoveTarget(playerRight float64, reach float64) *Pillar {
	var target *Pillar
	for _, p := range pm.pillars {
		x := p.X()
		if x < playerRight-float64(PillarWidth) || x > playerRight+reach {
			continue
		}
		if target == nil || x < target.X() {
			target = p
		}
	}
	return target
}

// Remove detaches a pillar from the manager without destroying its
// sprite; ownership passes to the caller.
func (pm *PillarManager) Remove(target *Pillar) {
	kept := pm.pillars[:0]
	for _, p := range pm.pillars {
		if p != target {
			kept = append(kept, p)
		}
	}
	pm.pillars = kept
}

// CheckCollision tests a rectangle against every standing pillar.
func (pm *PillarManager) CheckCollision(playerRect core.Rect) bool {
	for _, p := range pm.pillars {
		if playerRect.Intersects(p.Rect(pm.groundY)) {
			return true
		}
	}
	return false
}

// CollectPickups destroys and removes every pickup intersecting the
// rectangle, returning how many were collected.
func (pm *PillarManager) CollectPickups(playerRect core.Rect) int {
	collected := 0
	kept := pm.pickups[:0]
	for _, m := range pm.pickups {
		x, y := m.Sprite.Position()
		if playerRect.Contains(int(x), int(y)) {
			m.Sprite.Destroy()
			collected++
			continue
		}
		kept = append(kept, m)
	}
	pm.pickups = kept
	return collected
}
