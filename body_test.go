package collide

import (
	"math"
	"testing"
)

func TestBody_Derived(t *testing.T) {
	b := NewBody(1, 2, 0.5, Vector{1, 1})
	b.SetVelocity(Vector{3, -4})

	if p := b.Momentum(); !p.Equal(Vector{6, -8}) {
		t.Errorf("Expected momentum (6,-8), got %v", p)
	}
	// 0.5 * 2 * 25
	if ke := b.KineticEnergy(); math.Abs(ke-25) > 1e-12 {
		t.Errorf("Expected kinetic energy 25, got %v", ke)
	}

	b.SetVelocity(Vector{})
	if ke := b.KineticEnergy(); ke != 0 {
		t.Errorf("Expected zero kinetic energy at rest, got %v", ke)
	}
}

func TestBody_Advance(t *testing.T) {
	b := NewBody(1, 1, 0.5, Vector{1, 2})
	b.SetVelocity(Vector{2, -1})

	b.Advance(0.5)
	if !b.Position().Equal(Vector{2, 1.5}) {
		t.Errorf("Expected (2,1.5), got %v", b.Position())
	}

	// reverse undoes it exactly
	b.Advance(-0.5)
	if !b.Position().Equal(Vector{1, 2}) {
		t.Errorf("Expected (1,2), got %v", b.Position())
	}
}

func TestBorder_ContainsCircle(t *testing.T) {
	bb := Border{-10, -10, 10, 10}

	if !bb.ContainsCircle(Vector{0, 0}, 1) {
		t.Error("Expected circle at origin to be contained")
	}
	// tangency counts as inside
	if !bb.ContainsCircle(Vector{9.6, 0}, 0.4) {
		t.Error("Expected tangent circle to be contained")
	}
	if bb.ContainsCircle(Vector{9.7, 0}, 0.4) {
		t.Error("Expected protruding circle to not be contained")
	}
}

func TestBorder_Inset(t *testing.T) {
	in := Border{-10, -10, 10, 10}.Inset(0.5)
	if in != (Border{-9.5, -9.5, 9.5, 9.5}) {
		t.Errorf("Expected inset by 0.5, got %v", in)
	}
	if !(Border{0, 0, 1, 1}).IsValid() {
		t.Error("Expected valid border")
	}
	if (Border{1, 0, 0, 1}).IsValid() {
		t.Error("Expected inverted border to be invalid")
	}
}
