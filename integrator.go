package planar

// Semi-implicit Euler integration, split the way the step pipeline consumes
// it: velocities are advanced before the solver runs, positions after, using
// the solver-corrected velocities. Velocity before position is what gives
// this scheme its stability at stacking; do not reorder.

// integrateVelocity applies accumulated forces plus gravity to the body's
// velocity and clears the accumulators. Static and sleeping bodies only have
// their accumulators zeroed; kinematic bodies keep their externally written
// velocity and never receive gravity.
func integrateVelocity(b *Body, gravityX, gravityY, dt float64) {
	if b.Kind == Static || b.Sleeping {
		b.Force = Vec2{}
		b.Torque = 0.0
		return
	}

	if b.Kind == Dynamic {
		b.Force.X += gravityX * b.Mass
		b.Force.Y += gravityY * b.Mass
		b.Velocity.X += b.Force.X * b.InvMass * dt
		b.Velocity.Y += b.Force.Y * b.InvMass * dt
		b.AngularVelocity += b.Torque * b.InvInertia * dt
	}

	b.Force = Vec2{}
	b.Torque = 0.0
}

// integratePosition advances the pose from the current velocity.
func integratePosition(b *Body, dt float64) {
	if b.Kind == Static || b.Sleeping {
		return
	}
	b.Position.X += b.Velocity.X * dt
	b.Position.Y += b.Velocity.Y * dt
	b.Angle += b.AngularVelocity * dt
}

// Integrate advances one body through a full velocity-then-position update
// outside of a world step. The step pipeline itself uses the split halves so
// the solver can run between them.
func Integrate(b *Body, gravityX, gravityY, dt float64) {
	integrateVelocity(b, gravityX, gravityY, dt)
	integratePosition(b, dt)
}
