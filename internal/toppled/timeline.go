// Package toppled drives the knocked-over pillar animation: a struck pillar
// rotates to ±90°, slides sideways, briefly blocks the lane, then fades out
// and despawns. A fixed-size pool caps how many pillars can be down at once.
package toppled

import (
	"time"

	"github.com/vovakirdan/topple-run/internal/core"
)

// Phase is the lifecycle state of one toppled entry.
type Phase int

const (
	PhaseToppling Phase = iota
	PhaseSettled
	PhaseBlocked
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseToppling:
		return "toppling"
	case PhaseSettled:
		return "settled"
	case PhaseBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Config holds the timeline's timing and motion parameters.
type Config struct {
	MaxToppled     int           // hard cap on concurrently toppled entries
	ToppleDuration time.Duration // fall animation length
	BlockDuration  time.Duration // lane-block window after settling
	FadeDuration   time.Duration // despawn fade length
	SlideDistance  float64       // horizontal travel during the fall
	ImpactSpin     float64       // initial angle nudge on insertion, degrees
}

// DefaultConfig returns the stock timeline parameters.
func DefaultConfig() Config {
	return Config{
		MaxToppled:     8,
		ToppleDuration: 600 * time.Millisecond,
		BlockDuration:  2 * time.Second,
		FadeDuration:   300 * time.Millisecond,
		SlideDistance:  3,
		ImpactSpin:     8,
	}
}

// Entry is one toppled pillar. The sprite is a non-owning reference to an
// engine-owned visual; the entry owns only its animation metadata.
type Entry struct {
	sprite   core.Sprite
	fallDir  float64 // -1 falls left, +1 falls right
	phase    Phase
	elapsed  time.Duration
	originX  float64
	baseY    float64
	settled  bool // angle pinned, must never change again
}

// Sprite returns the entry's visual handle.
func (e *Entry) Sprite() core.Sprite { return e.sprite }

// Phase returns the entry's current lifecycle phase.
func (e *Entry) Phase() Phase { return e.phase }

// FallDirection returns -1 for a leftward fall, +1 for rightward.
func (e *Entry) FallDirection() float64 { return e.fallDir }

// fade is a running despawn transition. The sprite is destroyed only when
// the fade completes.
type fade struct {
	sprite   core.Sprite
	elapsed  time.Duration
	duration time.Duration
	onDone   func(core.Sprite)
}

// Timeline owns the pool of toppled entries and their despawn fades.
// Mutated only from AddFromFalling and Update; never concurrently.
type Timeline struct {
	cfg     Config
	entries []*Entry // insertion order; index 0 is the eviction candidate
	fades   []*fade
}

// New creates a timeline with the given configuration.
func New(cfg Config) *Timeline {
	if cfg.MaxToppled <= 0 {
		cfg.MaxToppled = DefaultConfig().MaxToppled
	}
	return &Timeline{cfg: cfg}
}

// ActiveCount returns the number of entries currently in the pool.
func (t *Timeline) ActiveCount() int {
	return len(t.entries)
}

// Entries returns the pool in insertion order.
func (t *Timeline) Entries() []*Entry {
	return t.entries
}

// FadingCount returns the number of despawn fades still running.
func (t *Timeline) FadingCount() int {
	return len(t.fades)
}

// AddFromFalling inserts a freshly struck pillar. The fall direction comes
// from which side the player is on: a player left of the pillar knocks it
// left (negative angle, x decreasing), a player on the right knocks it
// right. Exceeding MaxToppled evicts the oldest entry immediately and
// destroys its sprite; the cap is admission control, not a hint.
func (t *Timeline) AddFromFalling(sprite core.Sprite, playerX float64) *Entry {
	x, y := sprite.Position()

	dir := 1.0
	if x > playerX {
		dir = -1
	}

	e := &Entry{
		sprite:  sprite,
		fallDir: dir,
		phase:   PhaseToppling,
		originX: x,
		baseY:   y,
	}
	sprite.SetAngle(dir * t.cfg.ImpactSpin)
	t.entries = append(t.entries, e)

	if len(t.entries) > t.cfg.MaxToppled {
		oldest := t.entries[0]
		t.entries = t.entries[1:]
		oldest.sprite.Destroy()
	}

	return e
}

// Update advances every entry and fade independently by delta. Entries do
// not interact; the only cross-entry rule is insertion-order eviction,
// which happens at insert time.
func (t *Timeline) Update(delta time.Duration) {
	t.advanceFades(delta)

	kept := t.entries[:0]
	for _, e := range t.entries {
		e.elapsed += delta

		if t.advance(e) {
			kept = append(kept, e)
		}
	}
	t.entries = kept
}

// advance moves one entry through its phases. Returns false once the entry
// leaves the pool (block window over, fade started).
func (t *Timeline) advance(e *Entry) bool {
	switch {
	case e.elapsed < t.cfg.ToppleDuration:
		// Falling: eased monotone rotation toward ±90 and a monotone slide
		// away from the origin. The vertical baseline never moves.
		progress := float64(e.elapsed) / float64(t.cfg.ToppleDuration)
		eased := core.EaseOutQuad(progress)
		angle := e.fallDir * (t.cfg.ImpactSpin + (90-t.cfg.ImpactSpin)*eased)
		e.sprite.SetAngle(angle)
		e.sprite.SetPosition(e.originX+e.fallDir*t.cfg.SlideDistance*eased, e.baseY)
		return true

	case e.elapsed < t.cfg.ToppleDuration+t.cfg.BlockDuration:
		if !e.settled {
			// One final angle set pins the rotation at exactly ±90;
			// no later update may touch it.
			e.sprite.SetAngle(e.fallDir * 90)
			e.sprite.SetPosition(e.originX+e.fallDir*t.cfg.SlideDistance, e.baseY)
			e.settled = true
			e.phase = PhaseSettled
		}
		return true

	default:
		if !e.settled {
			// A huge delta can jump straight past the block window; the
			// settle pin still happens exactly once.
			e.sprite.SetAngle(e.fallDir * 90)
			e.sprite.SetPosition(e.originX+e.fallDir*t.cfg.SlideDistance, e.baseY)
			e.settled = true
		}
		e.phase = PhaseBlocked
		t.startFade(e.sprite)
		return false
	}
}

// startFade begins the despawn transition for a sprite leaving the pool.
func (t *Timeline) startFade(sprite core.Sprite) {
	t.fades = append(t.fades, &fade{
		sprite:   sprite,
		duration: t.cfg.FadeDuration,
		onDone:   func(s core.Sprite) { s.Destroy() },
	})
}

// advanceFades progresses despawn fades, destroying sprites whose fade
// completed this tick.
func (t *Timeline) advanceFades(delta time.Duration) {
	kept := t.fades[:0]
	for _, f := range t.fades {
		f.elapsed += delta
		if f.elapsed >= f.duration {
			f.sprite.SetAlpha(0)
			f.onDone(f.sprite)
			continue
		}
		progress := float64(f.elapsed) / float64(f.duration)
		f.sprite.SetAlpha(1 - progress)
		kept = append(kept, f)
	}
	t.fades = kept
}

// Clear evicts everything immediately, destroying all sprites. Used on
// game reset.
func (t *Timeline) Clear() {
	for _, e := range t.entries {
		e.sprite.Destroy()
	}
	for _, f := range t.fades {
		f.sprite.Destroy()
	}
	t.entries = nil
	t.fades = nil
}
