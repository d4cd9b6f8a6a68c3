package collide

import "math"

// ResponsePolicy decides the velocity outcome of a resolved collision. The
// engine finds the contact and fast-forwards to it; the policy owns the
// impulse math. Screen-specific behavior is a policy implementation, not an
// engine subclass.
type ResponsePolicy interface {
	BallBall(e *Engine, a, b *Body)
	BallBorder(e *Engine, b *Body)
}

// DefaultPolicy is the standard response: 1D restitution along the line of
// impact, tangential pass-through (slip) or mass weighted merge (stick).
type DefaultPolicy struct{}

func (DefaultPolicy) BallBall(e *Engine, b1, b2 *Body) {
	el := e.effectiveElasticity()
	n := b2.p.Sub(b1.p).Normalize()
	t := n.Perp()

	m1, m2 := b1.m, b2.m
	v1n, v1t := b1.v.Dot(n), b1.v.Dot(t)
	v2n, v2t := b2.v.Dot(n), b2.v.Dot(t)

	v1nAfter := ((m1-m2*el)*v1n + m2*(1+el)*v2n) / (m1 + m2)
	v2nAfter := ((m2-m1*el)*v2n + m1*(1+el)*v1n) / (m1 + m2)
	if math.Abs(v1nAfter) < VELOCITY_SNAP_EPSILON {
		v1nAfter = 0
	}
	if math.Abs(v2nAfter) < VELOCITY_SNAP_EPSILON {
		v2nAfter = 0
	}

	sticky := el == 0 && e.opts.InelasticMode == INELASTIC_MODE_STICK
	var rot *cluster
	if sticky {
		// The angular momentum the linear merge would discard carries over
		// into the cluster's rotation, so derive it from the pre-merge
		// kinematics. One two-body cluster at a time; a stick collision
		// while another cluster exists still merges, it just doesn't rotate.
		if e.cluster == nil {
			rot = newCluster(b1, b2)
		}
		shared := (m1*v1t + m2*v2t) / (m1 + m2)
		v1t, v2t = shared, shared
	}

	b1.v = n.Mult(v1nAfter).Add(t.Mult(v1t))
	b2.v = n.Mult(v2nAfter).Add(t.Mult(v2t))

	if rot != nil {
		e.cluster = rot
	}
}

func (DefaultPolicy) BallBorder(e *Engine, b *Body) {
	el := e.effectiveElasticity()

	if el == 0 && e.opts.InelasticMode == INELASTIC_MODE_STICK {
		b.v = Vector{}
		return
	}

	b.v = reflectOffBorder(b, e.opts.Border, b.v.Mult(e.dir), el)
}

// reflectOffBorder negates and scales the velocity component of each axis
// whose edge the ball is touching while heading toward it. w is the velocity
// in the direction of travel.
func reflectOffBorder(b *Body, bb Border, w Vector, el float64) Vector {
	v := b.v
	if (b.p.X-b.r <= bb.L+CONTACT_EPSILON && w.X < 0) || (b.p.X+b.r >= bb.R-CONTACT_EPSILON && w.X > 0) {
		v.X = -el * v.X
	}
	if (b.p.Y-b.r <= bb.B+CONTACT_EPSILON && w.Y < 0) || (b.p.Y+b.r >= bb.T-CONTACT_EPSILON && w.Y > 0) {
		v.Y = -el * v.Y
	}
	return v
}

// GroupedPolicy treats runs of merged bodies as one aggregate mass, the
// behavior wanted on a 1D track where fully inelastic collisions chain
// touching equal-velocity balls together. Collisions use the group's total
// mass and outcomes apply to every member, and at zero elasticity the two
// groups merge.
type GroupedPolicy struct {
	groups map[*Body]*ballGroup
}

type ballGroup struct {
	members []*Body
}

func NewGroupedPolicy() *GroupedPolicy {
	return &GroupedPolicy{groups: map[*Body]*ballGroup{}}
}

func (p *GroupedPolicy) groupOf(b *Body) []*Body {
	if g := p.groups[b]; g != nil {
		return g.members
	}
	return []*Body{b}
}

func groupMass(members []*Body) float64 {
	var m float64
	for _, b := range members {
		m += b.m
	}
	return m
}

func (p *GroupedPolicy) merge(a, b *Body) {
	ga, gb := p.groupOf(a), p.groupOf(b)
	members := make([]*Body, 0, len(ga)+len(gb))
	members = append(members, ga...)
	members = append(members, gb...)
	g := &ballGroup{members: members}
	for _, m := range members {
		p.groups[m] = g
	}
}

// Reset dissolves all groups.
func (p *GroupedPolicy) Reset() {
	for k := range p.groups {
		delete(p.groups, k)
	}
}

func (p *GroupedPolicy) BallBall(e *Engine, a, b *Body) {
	ga, gb := p.groupOf(a), p.groupOf(b)
	if p.groups[a] != nil && p.groups[a] == p.groups[b] {
		return
	}

	el := e.effectiveElasticity()
	n := b.p.Sub(a.p).Normalize()
	ma, mb := groupMass(ga), groupMass(gb)

	van, vbn := a.v.Dot(n), b.v.Dot(n)
	vanAfter := ((ma-mb*el)*van + mb*(1+el)*vbn) / (ma + mb)
	vbnAfter := ((mb-ma*el)*vbn + ma*(1+el)*van) / (ma + mb)
	if math.Abs(vanAfter) < VELOCITY_SNAP_EPSILON {
		vanAfter = 0
	}
	if math.Abs(vbnAfter) < VELOCITY_SNAP_EPSILON {
		vbnAfter = 0
	}

	da := n.Mult(vanAfter - van)
	db := n.Mult(vbnAfter - vbn)
	for _, m := range ga {
		m.v = m.v.Add(da)
	}
	for _, m := range gb {
		m.v = m.v.Add(db)
	}

	if el == 0 {
		p.merge(a, b)
	}
}

func (p *GroupedPolicy) BallBorder(e *Engine, b *Body) {
	el := e.effectiveElasticity()
	w := b.v.Mult(e.dir)
	after := reflectOffBorder(b, e.opts.Border, w, el)
	d := after.Sub(b.v)
	for _, m := range p.groupOf(b) {
		m.v = m.v.Add(d)
	}
}
