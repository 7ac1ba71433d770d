package core

// Sprite is the mutable visual handle contract the rendering layer supplies
// for every on-screen object. Game systems (the toppled timeline, the
// game-loop optimizer) hold these as non-owning references and only touch
// the documented accessors; lifecycle ends with Destroy.
type Sprite interface {
	// Position returns the sprite's world position.
	Position() (x, y float64)

	// SetPosition moves the sprite to the given world position.
	SetPosition(x, y float64)

	// Angle returns the sprite's rotation in degrees.
	Angle() float64

	// SetAngle rotates the sprite to the given angle in degrees.
	SetAngle(deg float64)

	// Alpha returns the sprite's opacity in [0, 1].
	Alpha() float64

	// SetAlpha sets the sprite's opacity in [0, 1].
	SetAlpha(a float64)

	// Active reports whether the sprite participates in simulation.
	Active() bool

	// SetActive toggles simulation participation.
	SetActive(active bool)

	// Destroyed reports whether Destroy has been called.
	Destroyed() bool

	// Destroy releases the sprite. Further mutation is a no-op.
	Destroy()
}

// BasicSprite is the standard Sprite implementation backed by plain fields.
// The terminal renderer draws directly from these; tests use it as a stand-in
// for engine-owned objects.
type BasicSprite struct {
	X, Y      float64
	Rotation  float64 // degrees
	Opacity   float64
	Rune      rune
	Tint      Color
	active    bool
	destroyed bool
}

// NewBasicSprite creates an active, fully opaque sprite at the given position.
func NewBasicSprite(x, y float64, r rune, tint Color) *BasicSprite {
	return &BasicSprite{X: x, Y: y, Rune: r, Tint: tint, Opacity: 1, active: true}
}

// Position returns the sprite's world position.
func (s *BasicSprite) Position() (float64, float64) { return s.X, s.Y }

// SetPosition moves the sprite.
func (s *BasicSprite) SetPosition(x, y float64) {
	if s.destroyed {
		return
	}
	s.X, s.Y = x, y
}

// Angle returns the rotation in degrees.
func (s *BasicSprite) Angle() float64 { return s.Rotation }

// SetAngle sets the rotation in degrees.
func (s *BasicSprite) SetAngle(deg float64) {
	if s.destroyed {
		return
	}
	s.Rotation = deg
}

// Alpha returns the opacity in [0, 1].
func (s *BasicSprite) Alpha() float64 { return s.Opacity }

// SetAlpha sets the opacity, clamped to [0, 1].
func (s *BasicSprite) SetAlpha(a float64) {
	if s.destroyed {
		return
	}
	s.Opacity = ClampF(a, 0, 1)
}

// Active reports whether the sprite participates in simulation.
func (s *BasicSprite) Active() bool { return s.active && !s.destroyed }

// SetActive toggles simulation participation.
func (s *BasicSprite) SetActive(active bool) {
	if s.destroyed {
		return
	}
	s.active = active
}

// Destroyed reports whether the sprite has been released.
func (s *BasicSprite) Destroyed() bool { return s.destroyed }

// Destroy releases the sprite.
func (s *BasicSprite) Destroy() {
	s.destroyed = true
	s.active = false
}
