package planar

import "math"

// Sequential impulse contact solver. Each manifold is prepared once per step
// (effective masses, restitution bias), warm started from the accumulated
// impulses inherited by contact matching, then iterated over in a fixed
// order alongside the joint constraints.

// relativeVelocity of body B with respect to body A at the contact anchors.
func relativeVelocity(a, b *Body, rA, rB Vec2) Vec2 {
	vB := b.Velocity.Add(CrossSV(b.AngularVelocity, rB))
	vA := a.Velocity.Add(CrossSV(a.AngularVelocity, rA))
	return vB.Sub(vA)
}

// prepareManifold computes per-point effective masses and the velocity bias.
// The bias combines Baumgarte positional correction above the slop tolerance
// with the restitution response; restitution only engages above the velocity
// threshold so resting contacts stay inelastic. Both are computed here, once
// per manifold, never inside the iteration loop.
func prepareManifold(m *Manifold, a, b *Body, invDt float64) {
	qA := MakeRot(a.Angle)
	qB := MakeRot(b.Angle)

	for i := 0; i < m.PointCount; i++ {
		mp := &m.Points[i]
		mp.rA = qA.Apply(mp.LocalAnchorA)
		mp.rB = qB.Apply(mp.LocalAnchorB)

		rnA := mp.rA.Cross(m.Normal)
		rnB := mp.rB.Cross(m.Normal)
		kNormal := a.InvMass + b.InvMass + a.InvInertia*rnA*rnA + b.InvInertia*rnB*rnB
		mp.normalMass = 0.0
		if kNormal > 0.0 {
			mp.normalMass = 1.0 / kNormal
		}

		rtA := mp.rA.Cross(m.Tangent)
		rtB := mp.rB.Cross(m.Tangent)
		kTangent := a.InvMass + b.InvMass + a.InvInertia*rtA*rtA + b.InvInertia*rtB*rtB
		mp.tangentMass = 0.0
		if kTangent > 0.0 {
			mp.tangentMass = 1.0 / kTangent
		}

		mp.bias = baumgarte * invDt * math.Max(0.0, mp.Penetration-linearSlop)
		vn := relativeVelocity(a, b, mp.rA, mp.rB).Dot(m.Normal)
		if vn < -velocityThreshold {
			mp.bias += -m.restitution * vn
		}
	}
}

// warmStartManifold applies the carried-over impulses before iterating, so
// the solve starts from last frame's converged state.
func warmStartManifold(m *Manifold, a, b *Body) {
	for i := 0; i < m.PointCount; i++ {
		mp := &m.Points[i]
		impulse := m.Normal.Scale(mp.NormalImpulse).Add(m.Tangent.Scale(mp.TangentImpulse))
		applyContactImpulse(a, b, mp.rA, mp.rB, impulse)
	}
}

func applyContactImpulse(a, b *Body, rA, rB, impulse Vec2) {
	a.Velocity = a.Velocity.Sub(impulse.Scale(a.InvMass))
	a.AngularVelocity -= a.InvInertia * rA.Cross(impulse)
	b.Velocity = b.Velocity.Add(impulse.Scale(b.InvMass))
	b.AngularVelocity += b.InvInertia * rB.Cross(impulse)
}

// solveManifold runs one Gauss-Seidel pass over the manifold's points. The
// normal impulse comes first; the accumulated value is clamped at zero so
// contacts push and never pull. Friction follows immediately, clamped by
// Coulomb's law to the friction cone of the accumulated normal impulse.
func solveManifold(m *Manifold, a, b *Body) {
	for i := 0; i < m.PointCount; i++ {
		mp := &m.Points[i]

		vn := relativeVelocity(a, b, mp.rA, mp.rB).Dot(m.Normal)
		lambda := -mp.normalMass * (vn - mp.bias)
		newImpulse := math.Max(mp.NormalImpulse+lambda, 0.0)
		lambda = newImpulse - mp.NormalImpulse
		mp.NormalImpulse = newImpulse
		applyContactImpulse(a, b, mp.rA, mp.rB, m.Normal.Scale(lambda))

		vt := relativeVelocity(a, b, mp.rA, mp.rB).Dot(m.Tangent)
		lambda = mp.tangentMass * -vt
		maxFriction := m.friction * mp.NormalImpulse
		newImpulse = clamp(mp.TangentImpulse+lambda, -maxFriction, maxFriction)
		lambda = newImpulse - mp.TangentImpulse
		mp.TangentImpulse = newImpulse
		applyContactImpulse(a, b, mp.rA, mp.rB, m.Tangent.Scale(lambda))
	}
}
