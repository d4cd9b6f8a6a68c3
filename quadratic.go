package collide

import "math"

// Coefficients or discriminants smaller than this are treated as zero.
// Near-parallel relative velocities produce tiny leading coefficients whose
// roots are numerically meaningless.
const QUADRATIC_EPSILON = 1e-12

/// Solves a*t*t + b*t + c = 0 for real t.
/// Returns the roots in ascending order and how many there are (0, 1 or 2).
/// A degenerate leading coefficient falls through to the linear case, and
/// small negative discriminants produced by floating point error are clamped
/// to zero rather than reported as "no roots".
func QuadRoots(a, b, c float64) (roots [2]float64, n int) {
	if math.Abs(a) < QUADRATIC_EPSILON {
		if math.Abs(b) < QUADRATIC_EPSILON {
			return roots, 0
		}
		roots[0] = -c / b
		return roots, 1
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		if disc < -QUADRATIC_EPSILON*math.Max(b*b, math.Abs(4*a*c)) {
			return roots, 0
		}
		disc = 0
	}

	if disc == 0 {
		roots[0] = -b / (2 * a)
		return roots, 1
	}

	// Citardauq form for the root where -b and the radical cancel.
	sq := math.Sqrt(disc)
	var q float64
	if b >= 0 {
		q = -0.5 * (b + sq)
	} else {
		q = -0.5 * (b - sq)
	}
	r0 := q / a
	r1 := c / q
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	roots[0] = r0
	roots[1] = r1
	return roots, 2
}
