package planar

import (
	"math"
	"testing"
)

func makeTestBody(kind BodyKind, mass float64) *Body {
	b := &Body{Kind: kind, Shape: NewCircle(1)}
	b.resetMassData(mass)
	return b
}

func TestIntegrateSleepingBodyOnlyClearsAccumulators(t *testing.T) {
	b := makeTestBody(Dynamic, 1)
	b.Sleeping = true
	b.Position = MakeVec2(3, 4)
	b.Angle = 0.5
	b.Force = MakeVec2(100, 100)
	b.Torque = 7

	Integrate(b, 0, -10, 1.0/60.0)

	if b.Position != MakeVec2(3, 4) || b.Angle != 0.5 {
		t.Fatalf("sleeping body moved: pos=%v angle=%v", b.Position, b.Angle)
	}
	if b.Velocity != (Vec2{}) || b.AngularVelocity != 0 {
		t.Fatalf("sleeping body gained velocity: %v %v", b.Velocity, b.AngularVelocity)
	}
	if b.Force != (Vec2{}) || b.Torque != 0 {
		t.Fatal("accumulators not cleared on sleeping body")
	}
}

func TestIntegrateStaticBodyOnlyClearsAccumulators(t *testing.T) {
	b := makeTestBody(Static, 10)
	b.Force = MakeVec2(5, 5)
	b.Torque = 2

	Integrate(b, 0, -10, 1.0/60.0)

	if b.Position != (Vec2{}) || b.Velocity != (Vec2{}) {
		t.Fatal("static body moved under integration")
	}
	if b.Force != (Vec2{}) || b.Torque != 0 {
		t.Fatal("accumulators not cleared on static body")
	}
}

func TestIntegrateIsSemiImplicit(t *testing.T) {
	// Position must be advanced with the post-gravity velocity: one step
	// from rest moves the body by g*dt*dt, not zero.
	b := makeTestBody(Dynamic, 2)
	dt := 1.0 / 60.0

	Integrate(b, 0, -10, dt)

	wantV := -10 * dt
	if math.Abs(b.Velocity.Y-wantV) > 1e-12 {
		t.Fatalf("velocity.Y = %v, want %v", b.Velocity.Y, wantV)
	}
	wantY := wantV * dt
	if math.Abs(b.Position.Y-wantY) > 1e-12 {
		t.Fatalf("position.Y = %v, want %v (explicit Euler would give 0)", b.Position.Y, wantY)
	}
}

func TestKinematicBodyIgnoresGravityButMoves(t *testing.T) {
	b := makeTestBody(Kinematic, 1)
	b.Velocity = MakeVec2(5, 0)
	dt := 0.1

	Integrate(b, 0, -10, dt)

	if b.Velocity != MakeVec2(5, 0) {
		t.Fatalf("kinematic velocity changed to %v", b.Velocity)
	}
	if math.Abs(b.Position.X-0.5) > 1e-12 || b.Position.Y != 0 {
		t.Fatalf("kinematic position = %v, want (0.5, 0)", b.Position)
	}
}
