package collide

import "math"

// Border is the axis-aligned bounding rectangle balls collide with.
// Immutable per session; whether collisions against it are detected at all is
// controlled by Options.ReflectsBorder.
type Border struct {
	L, B, R, T float64
}

func NewBorderForExtents(c Vector, hw, hh float64) Border {
	return Border{
		L: c.X - hw,
		B: c.Y - hh,
		R: c.X + hw,
		T: c.Y + hh,
	}
}

func (bb Border) Width() float64 {
	return bb.R - bb.L
}

func (bb Border) Height() float64 {
	return bb.T - bb.B
}

func (bb Border) Center() Vector {
	return Vector{bb.L, bb.B}.Lerp(Vector{bb.R, bb.T}, 0.5)
}

func (bb Border) ContainsVect(v Vector) bool {
	return bb.L <= v.X && bb.R >= v.X && bb.B <= v.Y && bb.T >= v.Y
}

/// ContainsCircle reports whether the circle at p with radius r is fully
/// inside the rectangle, tangency included.
func (bb Border) ContainsCircle(p Vector, r float64) bool {
	return p.X-r >= bb.L && p.X+r <= bb.R && p.Y-r >= bb.B && p.Y+r <= bb.T
}

/// Inset shrinks the rectangle by d on every side, the region a circle
/// center of radius d may occupy.
func (bb Border) Inset(d float64) Border {
	return Border{bb.L + d, bb.B + d, bb.R - d, bb.T - d}
}

func (bb Border) IsValid() bool {
	return bb.L < bb.R && bb.B < bb.T &&
		!math.IsNaN(bb.L) && !math.IsNaN(bb.B) && !math.IsNaN(bb.R) && !math.IsNaN(bb.T)
}
