// Package optimizer batches the per-frame update of entity pools, skipping
// off-screen members via bounds culling and reporting members that leave
// the world through removal callbacks. It is a processing layer only: it
// never owns sprites and never mutates the pools it iterates.
package optimizer

import (
	"math"
	"time"

	"github.com/vovakirdan/topple-run/internal/core"
)

// MemberData is the per-member kinematic state the optimizer applies.
// Members without data are skipped entirely.
type MemberData struct {
	Speed           float64 // horizontal cells per second, leftward
	AngularVelocity float64 // degrees per second
	SwayPhase       float64 // radians
	SwayAmplitude   float64 // cells
	BaseY           float64
}

// Member pairs a sprite with its kinematic data inside a pool.
type Member struct {
	Sprite core.Sprite
	Data   *MemberData

	removed bool // set once the removal callback has fired
}

// Removed reports whether this member has already been handed to onRemove.
func (m *Member) Removed() bool { return m.removed }

// Config controls iteration behavior. Disabling batching changes only the
// iteration granularity, never the observable results.
type Config struct {
	Batching    bool
	BatchSize   int
	CullEnabled bool
	CullMargin  int // cells beyond the screen edge still processed
}

// DefaultConfig returns the stock optimizer configuration.
func DefaultConfig() Config {
	return Config{
		Batching:    true,
		BatchSize:   16,
		CullEnabled: true,
		CullMargin:  8,
	}
}

// Metrics accumulates per-category counters within a frame. Reset between
// frames with ResetMetrics.
type Metrics struct {
	ObstaclesProcessed int
	ObstaclesCulled    int
	ItemsProcessed     int
	ItemsCulled        int
	ObstacleUpdateTime time.Duration
	ItemUpdateTime     time.Duration
}

// Optimizer iterates entity pools against fixed screen bounds.
type Optimizer struct {
	cfg     Config
	bounds  core.Rect
	metrics Metrics
}

// New creates an optimizer for the given screen bounds.
func New(cfg Config, bounds core.Rect) *Optimizer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	return &Optimizer{cfg: cfg, bounds: bounds}
}

// SetBounds updates the screen bounds, e.g. after a terminal resize.
func (o *Optimizer) SetBounds(bounds core.Rect) {
	o.bounds = bounds
}

// Metrics returns the counters accumulated since the last ResetMetrics.
func (o *Optimizer) Metrics() Metrics {
	return o.metrics
}

// ResetMetrics zeroes all counters. Called once per frame by the game loop.
func (o *Optimizer) ResetMetrics() {
	o.metrics = Metrics{}
}

// UpdateObstacles advances every active obstacle: leftward scroll scaled by
// speed, rotation, and sway. Members fully past the left cull margin are
// reported through onRemove exactly once. Culled members still scroll (they
// must eventually enter the screen) but skip the decorative updates and are
// counted as culled, not processed.
func (o *Optimizer) UpdateObstacles(pool []*Member, speed float64, delta time.Duration, onRemove func(*Member)) {
	start := time.Now()
	o.iterate(pool, func(m *Member) {
		o.updateObstacle(m, speed, delta, onRemove)
	})
	o.metrics.ObstacleUpdateTime += time.Since(start)
}

// UpdateItems advances every active pickup: slow drift plus a bobbing sway.
// Removal and culling semantics match UpdateObstacles.
func (o *Optimizer) UpdateItems(pool []*Member, delta time.Duration, onRemove func(*Member)) {
	start := time.Now()
	o.iterate(pool, func(m *Member) {
		o.updateItem(m, delta, onRemove)
	})
	o.metrics.ItemUpdateTime += time.Since(start)
}

// iterate walks the pool, optionally in fixed-size batches. Batching is a
// cache-locality knob; per-member behavior is identical either way.
func (o *Optimizer) iterate(pool []*Member, update func(*Member)) {
	if !o.cfg.Batching {
		for _, m := range pool {
			update(m)
		}
		return
	}

	for lo := 0; lo < len(pool); lo += o.cfg.BatchSize {
		hi := core.Min(lo+o.cfg.BatchSize, len(pool))
		for _, m := range pool[lo:hi] {
			update(m)
		}
	}
}

func (o *Optimizer) updateObstacle(m *Member, speed float64, delta time.Duration, onRemove func(*Member)) {
	if !o.eligible(m) {
		return
	}

	dt := delta.Seconds()
	x, y := m.Sprite.Position()
	x -= m.Data.Speed * speed * dt
	m.Sprite.SetPosition(x, y)

	if o.pastRemovalBound(x) {
		o.remove(m, onRemove)
		return
	}

	if o.culled(x) {
		o.metrics.ObstaclesCulled++
		return
	}

	m.Sprite.SetAngle(m.Sprite.Angle() + m.Data.AngularVelocity*dt)
	if m.Data.SwayAmplitude != 0 {
		m.Data.SwayPhase += dt * 2 * math.Pi
		m.Sprite.SetPosition(x, m.Data.BaseY+math.Sin(m.Data.SwayPhase)*m.Data.SwayAmplitude)
	}
	o.metrics.ObstaclesProcessed++
}

func (o *Optimizer) updateItem(m *Member, delta time.Duration, onRemove func(*Member)) {
	if !o.eligible(m) {
		return
	}

	dt := delta.Seconds()
	x, _ := m.Sprite.Position()
	x -= m.Data.Speed * dt
	m.Sprite.SetPosition(x, m.Data.BaseY)

	if o.pastRemovalBound(x) {
		o.remove(m, onRemove)
		return
	}

	if o.culled(x) {
		o.metrics.ItemsCulled++
		return
	}

	if m.Data.SwayAmplitude != 0 {
		m.Data.SwayPhase += dt * 2 * math.Pi
		m.Sprite.SetPosition(x, m.Data.BaseY+math.Sin(m.Data.SwayPhase)*m.Data.SwayAmplitude)
	}
	o.metrics.ItemsProcessed++
}

// eligible filters members the update must skip silently: already removed,
// inactive, or missing per-member data. None of these count as processed.
func (o *Optimizer) eligible(m *Member) bool {
	return m != nil && !m.removed && m.Sprite != nil && m.Sprite.Active() && m.Data != nil
}

// pastRemovalBound reports whether x has crossed the terminal bound: fully
// off-screen past the cull margin on the exit side.
func (o *Optimizer) pastRemovalBound(x float64) bool {
	return x < float64(o.bounds.X-o.cfg.CullMargin)
}

// culled reports whether x sits outside the margin-expanded screen bounds.
// Culling only skips processing; the member stays in its pool.
func (o *Optimizer) culled(x float64) bool {
	if !o.cfg.CullEnabled {
		return false
	}
	expanded := o.bounds.Expand(o.cfg.CullMargin)
	return int(x) < expanded.X || int(x) >= expanded.Right()
}

// remove fires the removal callback exactly once per member.
func (o *Optimizer) remove(m *Member, onRemove func(*Member)) {
	if m.removed {
		return
	}
	m.removed = true
	if onRemove != nil {
		onRemove(m)
	}
}
