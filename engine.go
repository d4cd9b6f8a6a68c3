package collide

import "math"

// InelasticMode selects how perfectly inelastic (zero elasticity) ball-ball
// collisions treat the tangential velocity components.
type InelasticMode int

const (
	// Tangential components pass through the collision unchanged.
	INELASTIC_MODE_SLIP InelasticMode = iota
	// Tangential components merge to the mass weighted average and the pair
	// becomes a rigid rotating cluster.
	INELASTIC_MODE_STICK
)

// Options is the engine configuration, read each step. Replaces the global
// query-parameter style configuration of older revisions.
type Options struct {
	Elasticity     float64 // coefficient of restitution in [0, 1]
	InelasticMode  InelasticMode
	Border         Border
	ReflectsBorder bool
}

// Contact describes a resolved collision, forwarded to the optional contact
// sink. B is nil for border contacts. Point is the exact tangency position
// and T the absolute simulation time of contact.
type Contact struct {
	A, B  *Body
	Point Vector
	T     float64
}

type ContactFunc func(Contact)

const (
	// Cap on resolutions within a single Step. Exhausting it is not an
	// error; the remainder is picked up by the next frame's redetection.
	MAX_COLLISIONS_PER_STEP = 10000

	// Rejects roots where the relative velocity is nearly perpendicular to
	// the separation, a grazing pass whose root is numerically meaningless.
	GLANCING_EPSILON = 1e-10

	// Post-collision normal speeds below this snap to exactly zero to
	// suppress oscillation artifacts.
	VELOCITY_SNAP_EPSILON = 1e-8

	// Slack when testing which border edge a tangent ball is touching.
	CONTACT_EPSILON = 1e-9
)

// Engine detects and resolves collisions for a roster of circular bodies
// inside an optional reflecting border. Single threaded: one Step runs to
// completion on the calling goroutine, and the engine is the sole writer of
// body kinematics while it does.
type Engine struct {
	bodies    []*Body
	opts      Options
	policy    ResponsePolicy
	onContact ContactFunc

	candidates map[pairKey]Candidate
	cluster    *cluster

	now float64
	dir float64
}

func NewEngine(bodies []*Body, opts Options) *Engine {
	checkOptions(opts)
	for i, b := range bodies {
		assert(b != nil, "nil body in roster")
		assert(b.index == i+1, "Body indexes must be 1-based and in roster order")
	}
	return &Engine{
		bodies:     bodies,
		opts:       opts,
		policy:     DefaultPolicy{},
		candidates: map[pairKey]Candidate{},
	}
}

func checkOptions(opts Options) {
	assert(opts.Elasticity >= 0 && opts.Elasticity <= 1, "Elasticity must be in [0, 1]")
	assert(!opts.ReflectsBorder || opts.Border.IsValid(), "Reflecting border must be a valid rectangle")
}

func (e *Engine) Bodies() []*Body {
	return e.bodies
}

func (e *Engine) Options() Options {
	return e.opts
}

// SetOptions swaps the configuration. A change to elasticity or inelastic
// mode detaches any rotating cluster; all cached candidates are discarded.
func (e *Engine) SetOptions(opts Options) {
	checkOptions(opts)
	if opts.Elasticity != e.opts.Elasticity || opts.InelasticMode != e.opts.InelasticMode {
		e.cluster = nil
	}
	e.opts = opts
	e.invalidateAll()
}

func (e *Engine) SetPolicy(p ResponsePolicy) {
	assert(p != nil, "nil response policy")
	e.policy = p
	e.invalidateAll()
}

func (e *Engine) SetContactFunc(f ContactFunc) {
	e.onContact = f
}

// Step advances the whole system by dt seconds. Negative dt runs the same
// machinery in reverse. elapsedTime is the absolute simulation clock at the
// start of the call, used to timestamp contacts.
func (e *Engine) Step(dt, elapsedTime float64) {
	if dt == 0 || len(e.bodies) == 0 {
		return
	}

	e.now = elapsedTime
	e.dir = 1
	if dt < 0 {
		e.dir = -1
	}
	// Cached contact times are absolute, so they are only meaningful against
	// this call's clock. Every step starts from a clean detection pass.
	e.invalidateAll()

	remaining := dt
	for i := 0; i < MAX_COLLISIONS_PER_STEP; i++ {
		e.detectAll()
		c, u := e.earliest(remaining)
		if c == nil {
			break
		}

		tau := e.dir * u
		e.advanceAll(tau)
		e.now += tau
		remaining -= tau
		e.resolve(c)
	}
	e.advanceAll(remaining)
}

// detectAll fills in any candidate not already cached. Within a step a
// candidate survives until a party's kinematics change.
func (e *Engine) detectAll() {
	for i := 0; i < len(e.bodies); i++ {
		a := e.bodies[i]
		for j := i + 1; j < len(e.bodies); j++ {
			b := e.bodies[j]
			k := ballBallKey(a, b)
			if _, ok := e.candidates[k]; !ok {
				e.candidates[k] = e.detectBallBall(a, b)
			}
		}
		k := ballBorderKey(a)
		if _, ok := e.candidates[k]; !ok {
			e.candidates[k] = e.detectBallBorder(a)
		}
	}
}

// detectBallBall solves |dr + dv*u|^2 = (r1+r2)^2 for the smallest
// non-negative time of flight u in the direction of travel.
func (e *Engine) detectBallBall(a, b *Body) Candidate {
	c := Candidate{kind: candidateBallBall, a: a, b: b}

	dr := b.p.Sub(a.p)
	dv := b.v.Sub(a.v).Mult(e.dir)

	dot := dv.Dot(dr)
	if dot >= 0 {
		// separating or static in the direction of travel
		return c
	}
	if dot*dot < GLANCING_EPSILON*dv.LengthSq()*dr.LengthSq() {
		return c
	}

	rsum := a.r + b.r
	sep := dr.LengthSq() - rsum*rsum
	if sep <= 0 {
		// already tangent (or overlapping) and approaching
		c.hit = true
		c.t = e.now
		return c
	}

	roots, n := QuadRoots(dv.LengthSq(), 2*dot, sep)
	for i := 0; i < n; i++ {
		u := roots[i]
		if u >= 0 && !math.IsInf(u, 0) && !math.IsNaN(u) {
			c.hit = true
			c.t = e.now + e.dir*u
			return c
		}
	}
	return c
}

// detectBallBorder finds the earliest time any edge of the ball reaches the
// matching border edge, each axis considered independently.
func (e *Engine) detectBallBorder(b *Body) Candidate {
	c := Candidate{kind: candidateBallBorder, a: b}
	if !e.opts.ReflectsBorder {
		return c
	}

	w := b.v.Mult(e.dir)
	bb := e.opts.Border

	best := math.Inf(1)
	if w.X > 0 {
		best = math.Min(best, math.Max(0, (bb.R-b.r-b.p.X)/w.X))
	} else if w.X < 0 {
		best = math.Min(best, math.Max(0, (bb.L+b.r-b.p.X)/w.X))
	}
	if w.Y > 0 {
		best = math.Min(best, math.Max(0, (bb.T-b.r-b.p.Y)/w.Y))
	} else if w.Y < 0 {
		best = math.Min(best, math.Max(0, (bb.B+b.r-b.p.Y)/w.Y))
	}

	if math.IsInf(best, 0) || math.IsNaN(best) {
		return c
	}
	c.hit = true
	c.t = e.now + e.dir*best
	return c
}

// earliest picks the candidate with the smallest time of flight inside the
// remaining budget, with a stable tie break on pair identity.
func (e *Engine) earliest(remaining float64) (*Candidate, float64) {
	budget := e.dir * remaining
	bestU := math.Inf(1)
	var best Candidate
	var bestKey pairKey
	found := false

	for k, c := range e.candidates {
		if !c.hit {
			continue
		}
		u := e.dir * (c.t - e.now)
		if u < 0 || u > budget {
			continue
		}
		if u < bestU || (u == bestU && k.less(bestKey)) {
			bestU = u
			best = c
			bestKey = k
			found = true
		}
	}
	if !found {
		return nil, 0
	}
	return &best, bestU
}

// advanceAll moves every body by dt: cluster members rigidly about their
// center of mass, everything else by uniform motion.
func (e *Engine) advanceAll(dt float64) {
	if dt == 0 {
		return
	}
	var owned *cluster
	if e.cluster != nil {
		owned = e.cluster
		owned.advance(dt)
		// Rotation bends the members' velocities, unlike uniform motion,
		// so any candidate involving them is stale now.
		e.Invalidate(owned.a)
		e.Invalidate(owned.b)
		// Rotation curves; the linear candidate for a member can miss the
		// wall, so members get a positional check as well.
		if e.opts.ReflectsBorder {
			bb := e.opts.Border
			if !bb.ContainsCircle(owned.a.p, owned.a.r) || !bb.ContainsCircle(owned.b.p, owned.b.r) {
				e.stopCluster()
			}
		}
	}
	for _, b := range e.bodies {
		if owned != nil && owned.owns(b) {
			continue
		}
		b.Advance(dt)
	}
}

// stopCluster is the BorderCollision transition: a sticky cluster touching
// the wall is absorbed, both members stopped dead. Rotation can carry a
// member's edge past the wall between checks, so both get clamped back in.
func (e *Engine) stopCluster() {
	c := e.cluster
	for _, m := range []*Body{c.a, c.b} {
		m.v = Vector{}
		if e.opts.ReflectsBorder {
			in := e.opts.Border.Inset(m.r)
			m.p = Vector{Clamp(m.p.X, in.L, in.R), Clamp(m.p.Y, in.B, in.T)}
		}
	}
	e.cluster = nil
	e.Invalidate(c.a)
	e.Invalidate(c.b)
}

func (e *Engine) resolve(c *Candidate) {
	switch c.kind {
	case candidateBallBall:
		if e.cluster != nil && (e.cluster.owns(c.a) || e.cluster.owns(c.b)) {
			// Member kinematics are about to change; the rigid pairing no
			// longer holds.
			e.cluster = nil
		}
		e.policy.BallBall(e, c.a, c.b)
		n := c.b.p.Sub(c.a.p).Normalize()
		e.notify(Contact{A: c.a, B: c.b, Point: c.a.p.Add(n.Mult(c.a.r)), T: e.now})

	case candidateBallBorder:
		if e.cluster != nil && e.cluster.owns(c.a) {
			// A sticky cluster is always absorbed by the wall.
			e.stopCluster()
		} else {
			e.policy.BallBorder(e, c.a)
		}
		// Advancing to the contact instant can overshoot by an ulp; a ball
		// never ends a border resolution outside the rectangle.
		in := e.opts.Border.Inset(c.a.r)
		c.a.p = Vector{Clamp(c.a.p.X, in.L, in.R), Clamp(c.a.p.Y, in.B, in.T)}
		e.notify(Contact{A: c.a, Point: e.borderContactPoint(c.a), T: e.now})
	}
	e.invalidateAll()
}

func (e *Engine) borderContactPoint(b *Body) Vector {
	bb := e.opts.Border
	p := b.p
	if b.p.X-b.r <= bb.L+CONTACT_EPSILON {
		p.X = bb.L
	} else if b.p.X+b.r >= bb.R-CONTACT_EPSILON {
		p.X = bb.R
	}
	if b.p.Y-b.r <= bb.B+CONTACT_EPSILON {
		p.Y = bb.B
	} else if b.p.Y+b.r >= bb.T-CONTACT_EPSILON {
		p.Y = bb.T
	}
	return p
}

func (e *Engine) notify(c Contact) {
	if e.onContact != nil {
		e.onContact(c)
	}
}

// effectiveElasticity is the restitution coefficient adjusted for reverse
// playback: reversing a partially inelastic collision uses the reciprocal so
// the forward formulas run backwards, capped to keep tiny coefficients from
// blowing up.
func (e *Engine) effectiveElasticity() float64 {
	el := e.opts.Elasticity
	if e.dir < 0 && el > 0 {
		el = math.Min(1/el, 1e6)
	}
	return el
}

func (e *Engine) invalidateAll() {
	for k := range e.candidates {
		delete(e.candidates, k)
	}
}

// Invalidate discards cached candidates involving the body. Callers mutating
// a body's kinematics directly must call this; the SetBody mutators below do
// it for them.
func (e *Engine) Invalidate(b *Body) {
	for k := range e.candidates {
		if k.involves(b.index) {
			delete(e.candidates, k)
		}
	}
}

func (e *Engine) SetBodyPosition(b *Body, p Vector) {
	b.SetPosition(p)
	e.onBodyMutated(b)
}

func (e *Engine) SetBodyVelocity(b *Body, v Vector) {
	b.SetVelocity(v)
	e.onBodyMutated(b)
}

// SetUserControlled marks a body as grabbed by the user. Grabbing a rotating
// cluster member detaches the cluster.
func (e *Engine) SetUserControlled(b *Body, controlled bool) {
	b.userControlled = controlled
	e.onBodyMutated(b)
}

func (e *Engine) onBodyMutated(b *Body) {
	if e.cluster != nil && e.cluster.owns(b) {
		e.cluster = nil
	}
	e.Invalidate(b)
}

// Reset clears all cached candidates and any rotating cluster.
func (e *Engine) Reset() {
	e.cluster = nil
	e.invalidateAll()
}

func (e *Engine) TotalMomentum() Vector {
	var p Vector
	for _, b := range e.bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

func (e *Engine) TotalKineticEnergy() float64 {
	var ke float64
	for _, b := range e.bodies {
		ke += b.KineticEnergy()
	}
	return ke
}
