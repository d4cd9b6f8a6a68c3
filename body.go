package collide

import "fmt"

// Body is the mutable state of a single circular body. The engine is the only
// writer of position and velocity while a step is in progress; external
// writers must go through the Engine mutators so cached collision candidates
// are invalidated.
type Body struct {
	index int

	// mass and radius are fixed after construction
	m float64
	r float64

	p Vector
	v Vector

	userControlled bool
}

func (b Body) String() string {
	return fmt.Sprint("Body ", b.index)
}

/// NewBody creates a body with a 1-based stable index.
/// Mass and radius must be positive and the position finite.
func NewBody(index int, mass, radius float64, position Vector) *Body {
	assert(index > 0, "Body index must be 1-based")
	assert(mass > 0, "Body mass must be positive")
	assert(radius > 0, "Body radius must be positive")
	assert(position.IsFinite(), "Body position must be finite")

	return &Body{
		index: index,
		m:     mass,
		r:     radius,
		p:     position,
	}
}

func (b *Body) Index() int {
	return b.index
}

func (b *Body) Mass() float64 {
	return b.m
}

func (b *Body) Radius() float64 {
	return b.r
}

func (b *Body) Position() Vector {
	return b.p
}

func (b *Body) SetPosition(position Vector) {
	assert(position.IsFinite(), "Body position must be finite")
	b.p = position
}

func (b *Body) Velocity() Vector {
	return b.v
}

func (b *Body) SetVelocity(v Vector) {
	assert(v.IsFinite(), "Body velocity must be finite")
	b.v = v
}

func (b *Body) Momentum() Vector {
	return b.v.Mult(b.m)
}

func (b *Body) KineticEnergy() float64 {
	// Avoid producing NaN from 0 * Inf style inputs.
	vsq := b.v.Dot(b.v)
	if vsq == 0 {
		return 0
	}
	return 0.5 * b.m * vsq
}

/// Advance translates the body by uniform motion over a signed dt.
func (b *Body) Advance(dt float64) {
	b.p = b.p.Add(b.v.Mult(dt))
}
