package collide

type candidateKind int

const (
	candidateBallBall candidateKind = iota
	candidateBallBorder
)

// pairKey identifies a candidate by the stable indexes of the bodies
// involved. Border candidates use b == 0.
type pairKey struct {
	a, b int
}

func ballBallKey(a, b *Body) pairKey {
	if a.index < b.index {
		return pairKey{a.index, b.index}
	}
	return pairKey{b.index, a.index}
}

func ballBorderKey(a *Body) pairKey {
	return pairKey{a.index, 0}
}

func (k pairKey) involves(index int) bool {
	return k.a == index || k.b == index
}

func (k pairKey) less(other pairKey) bool {
	if k.a != other.a {
		return k.a < other.a
	}
	return k.b < other.b
}

// Candidate is a cached prediction of a contact event. hit is false when no
// finite, correctly signed contact time exists for the pair. A candidate is
// valid only while neither party's kinematic state changes; the engine
// discards candidates on every mutation.
type Candidate struct {
	kind candidateKind
	a, b *Body // b is nil for border candidates

	hit bool
	t   float64 // absolute simulation time of exact tangency
}
