package planar

import "math"

// Sleep state machine. A dynamic body that stays below both speed tolerances
// for timeToSleep seconds is put to sleep with its velocities forced to
// exactly zero; any excursion above a tolerance resets the timer. Sleeping
// bodies still pass through the broadphase and narrowphase so that incoming
// contacts can wake them.

// updateSleep advances one body's rest timer after the step's motion is
// final.
func updateSleep(b *Body, dt float64) {
	if b.Kind != Dynamic || b.Sleeping {
		return
	}

	resting := b.Velocity.LengthSquared() < linearSleepTolerance*linearSleepTolerance &&
		math.Abs(b.AngularVelocity) < angularSleepTolerance
	if !resting {
		b.sleepTime = 0.0
		return
	}

	b.sleepTime += dt
	if b.sleepTime >= timeToSleep {
		b.Sleeping = true
		b.Velocity = Vec2{}
		b.AngularVelocity = 0.0
	}
}

// wakeOnContact wakes a sleeping dynamic body touched by an awake non-static
// body. Without this a moving body could come to rest on, or pass into, a
// sleeping one that the solver no longer looks at.
func wakeOnContact(a, b *Body) {
	if a.Sleeping && a.Kind == Dynamic && b.Kind != Static && !b.Sleeping {
		a.wake()
	}
	if b.Sleeping && b.Kind == Dynamic && a.Kind != Static && !a.Sleeping {
		b.wake()
	}
}
