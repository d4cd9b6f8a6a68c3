package collide

// cluster is the rigid rotating two-body system formed by a sticky ball-ball
// collision. While attached, its members are advanced about the moving center
// of mass instead of by uniform motion. Total linear momentum and total
// angular momentum about the center of mass are conserved across advances.
type cluster struct {
	a, b *Body

	comP Vector
	comV Vector

	w float64 // angular velocity (rad/s), positive counterclockwise

	angularMomentum float64
	linearMomentum  Vector
}

// newCluster derives the rotational state from the members' post-merge
// kinematics. Moment of inertia is point mass, m*|r|^2 about the center of
// mass.
func newCluster(a, b *Body) *cluster {
	msum := a.m + b.m
	comP := a.p.Mult(a.m).Add(b.p.Mult(b.m)).Mult(1 / msum)
	comV := a.v.Mult(a.m).Add(b.v.Mult(b.m)).Mult(1 / msum)

	ra := a.p.Sub(comP)
	rb := b.p.Sub(comP)

	// L = r x p about the center of mass (scalar z of the planar cross).
	l := ra.Cross(a.v.Sub(comV).Mult(a.m)) + rb.Cross(b.v.Sub(comV).Mult(b.m))
	inertia := a.m*ra.LengthSq() + b.m*rb.LengthSq()

	c := &cluster{
		a:               a,
		b:               b,
		comP:            comP,
		comV:            comV,
		angularMomentum: l,
		linearMomentum:  a.Momentum().Add(b.Momentum()),
	}
	if inertia > 0 {
		c.w = l / inertia
	}
	return c
}

func (c *cluster) owns(b *Body) bool {
	return c.a == b || c.b == b
}

// advance rotates the member offsets about the center of mass by w*dt while
// the center of mass translates uniformly. Member world velocities are the
// frame velocity plus the tangential velocity w x r'.
func (c *cluster) advance(dt float64) {
	angle := c.w * dt
	ra := c.a.p.Sub(c.comP).RotateByAngle(angle)
	rb := c.b.p.Sub(c.comP).RotateByAngle(angle)

	c.comP = c.comP.Add(c.comV.Mult(dt))

	c.a.p = c.comP.Add(ra)
	c.b.p = c.comP.Add(rb)
	c.a.v = c.comV.Add(ra.Perp().Mult(c.w))
	c.b.v = c.comV.Add(rb.Perp().Mult(c.w))
}

// ClusterInfo is a read-only view of the rotating cluster for observers.
type ClusterInfo struct {
	A, B                 *Body
	CenterOfMassPosition Vector
	CenterOfMassVelocity Vector
	AngularVelocity      float64
	TotalAngularMomentum float64
	TotalLinearMomentum  Vector
}

// Cluster reports the active rotating cluster, if any.
func (e *Engine) Cluster() (ClusterInfo, bool) {
	if e.cluster == nil {
		return ClusterInfo{}, false
	}
	c := e.cluster
	return ClusterInfo{
		A:                    c.a,
		B:                    c.b,
		CenterOfMassPosition: c.comP,
		CenterOfMassVelocity: c.comV,
		AngularVelocity:      c.w,
		TotalAngularMomentum: c.angularMomentum,
		TotalLinearMomentum:  c.linearMomentum,
	}, true
}
