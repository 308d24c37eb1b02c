package planar

// Constraint is a persistent joint between two bodies. Unlike contacts,
// constraints live in the world's constraint list until removed. They are
// solved in the same iterative sweep as contacts, after the contacts, in
// insertion order.
type Constraint interface {
	// Bodies returns the constrained pair.
	Bodies() (BodyID, BodyID)

	prepare(a, b *Body, invDt float64)
	warmStart(a, b *Body)
	solveVelocity(a, b *Body)
}

// DistanceConstraint keeps the distance between two body-local anchor points
// at the rest length, pushing or pulling along the axis between them.
type DistanceConstraint struct {
	BodyA, BodyB BodyID
	AnchorA      Vec2
	AnchorB      Vec2
	RestLength   float64

	rA, rB  Vec2
	u       Vec2 // unit axis from anchor A to anchor B
	mass    float64
	bias    float64
	impulse float64
}

func (c *DistanceConstraint) Bodies() (BodyID, BodyID) {
	return c.BodyA, c.BodyB
}

func (c *DistanceConstraint) prepare(a, b *Body, invDt float64) {
	c.rA = MakeRot(a.Angle).Apply(c.AnchorA)
	c.rB = MakeRot(b.Angle).Apply(c.AnchorB)

	d := b.Position.Add(c.rB).Sub(a.Position.Add(c.rA))
	length := d.Length()
	if length > epsilon {
		c.u = d.Scale(1.0 / length)
	} else {
		c.u = Vec2{}
	}

	crA := c.rA.Cross(c.u)
	crB := c.rB.Cross(c.u)
	invMass := a.InvMass + b.InvMass + a.InvInertia*crA*crA + b.InvInertia*crB*crB
	c.mass = 0.0
	if invMass > 0.0 {
		c.mass = 1.0 / invMass
	}

	c.bias = baumgarte * invDt * (length - c.RestLength)
}

func (c *DistanceConstraint) warmStart(a, b *Body) {
	applyContactImpulse(a, b, c.rA, c.rB, c.u.Scale(c.impulse))
}

func (c *DistanceConstraint) solveVelocity(a, b *Body) {
	// Cdot = dot(u, vB + wB x rB - vA - wA x rA)
	cdot := relativeVelocity(a, b, c.rA, c.rB).Dot(c.u)
	impulse := -c.mass * (cdot + c.bias)
	c.impulse += impulse
	applyContactImpulse(a, b, c.rA, c.rB, c.u.Scale(impulse))
}

// RevoluteConstraint pins two body-local anchor points together, driving
// their relative velocity to zero on both axes while leaving rotation free.
type RevoluteConstraint struct {
	BodyA, BodyB BodyID
	AnchorA      Vec2
	AnchorB      Vec2

	rA, rB  Vec2
	k       Mat22
	bias    Vec2
	impulse Vec2
}

func (c *RevoluteConstraint) Bodies() (BodyID, BodyID) {
	return c.BodyA, c.BodyB
}

func (c *RevoluteConstraint) prepare(a, b *Body, invDt float64) {
	c.rA = MakeRot(a.Angle).Apply(c.AnchorA)
	c.rB = MakeRot(b.Angle).Apply(c.AnchorB)

	mA, mB := a.InvMass, b.InvMass
	iA, iB := a.InvInertia, b.InvInertia

	// K = [mA+mB+iA*rAy^2+iB*rBy^2,  -iA*rAx*rAy-iB*rBx*rBy ]
	//     [symmetric,                 mA+mB+iA*rAx^2+iB*rBx^2]
	k11 := mA + mB + iA*c.rA.Y*c.rA.Y + iB*c.rB.Y*c.rB.Y
	k12 := -iA*c.rA.X*c.rA.Y - iB*c.rB.X*c.rB.Y
	k22 := mA + mB + iA*c.rA.X*c.rA.X + iB*c.rB.X*c.rB.X
	c.k = Mat22{Ex: Vec2{k11, k12}, Ey: Vec2{k12, k22}}

	separation := b.Position.Add(c.rB).Sub(a.Position.Add(c.rA))
	c.bias = separation.Scale(baumgarte * invDt)
}

func (c *RevoluteConstraint) warmStart(a, b *Body) {
	applyContactImpulse(a, b, c.rA, c.rB, c.impulse)
}

func (c *RevoluteConstraint) solveVelocity(a, b *Body) {
	cdot := relativeVelocity(a, b, c.rA, c.rB)
	impulse := c.k.Solve(cdot.Add(c.bias)).Neg()
	c.impulse = c.impulse.Add(impulse)
	applyContactImpulse(a, b, c.rA, c.rB, impulse)
}
