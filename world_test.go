package planar

import (
	"math"
	"testing"
)

const testDt = 1.0 / 60.0

// The §-style end-to-end scenario: a unit-mass circle dropped onto a static
// box floor must come to rest on top of it and fall asleep.
func TestDroppedCircleSettlesAndSleeps(t *testing.T) {
	w := NewWorld(0, -10)
	circle := w.AddBody(Dynamic, NewCircle(10), 0, 0, 1, Material{Restitution: 0, Friction: 0.5}, 1, 0xFFFF)
	w.AddBody(Static, NewBox(200, 10), 0, -100, 0, Material{Friction: 0.5}, 1, 0xFFFF)

	for i := 0; i < 900; i++ {
		w.Step(testDt)
	}

	b := w.Body(circle)
	if !b.Sleeping {
		t.Fatal("circle did not fall asleep after 900 steps")
	}
	if b.Velocity != (Vec2{}) || b.AngularVelocity != 0 {
		t.Fatalf("sleeping velocities not exactly zero: %v %v", b.Velocity, b.AngularVelocity)
	}
	// rest height is floor top (-90) plus radius, give or take the slop the
	// solver tolerates at rest
	if b.Position.Y < -80-2*linearSlop || b.Position.Y > -79 {
		t.Fatalf("rest height = %v, want about -80", b.Position.Y)
	}
}

func TestSleepingBodySkipsIntegration(t *testing.T) {
	w := NewWorld(0, -10)
	id := w.AddBody(Dynamic, NewCircle(5), 0, 50, 1, Material{}, 1, 0xFFFF)
	b := w.Body(id)
	b.Sleeping = true

	for i := 0; i < 10; i++ {
		w.Step(testDt)
	}
	if b.Position.Y != 50 {
		t.Fatalf("sleeping body moved to y=%v under gravity", b.Position.Y)
	}
}

func TestSleepTimerResetsOnDisturbance(t *testing.T) {
	w := NewWorld(0, 0)
	id := w.AddBody(Dynamic, NewCircle(5), 0, 0, 1, Material{}, 1, 0xFFFF)
	b := w.Body(id)

	// rest just short of the sleep threshold, then nudge
	for i := 0; i < 25; i++ {
		w.Step(testDt)
	}
	if b.Sleeping {
		t.Fatal("slept before timeToSleep elapsed")
	}
	w.SetVelocity(id, 1, 0)
	w.Step(testDt)
	if b.sleepTime != 0 {
		t.Fatalf("sleep timer = %v after disturbance, want 0", b.sleepTime)
	}
	w.SetVelocity(id, 0, 0)
	for i := 0; i < 29; i++ {
		w.Step(testDt)
	}
	if b.Sleeping {
		t.Fatal("timer did not restart after disturbance")
	}
	w.Step(testDt)
	if !b.Sleeping {
		t.Fatal("body never slept after resting for timeToSleep")
	}
}

func TestSleepingBodyWakesOnContact(t *testing.T) {
	w := NewWorld(0, 0)
	resting := w.AddBody(Dynamic, NewCircle(10), 0, 0, 1, Material{}, 1, 0xFFFF)
	intruder := w.AddBody(Dynamic, NewCircle(10), 0, 19, 1, Material{}, 1, 0xFFFF)

	a := w.Body(resting)
	a.Sleeping = true
	w.Body(intruder).Velocity = Vec2{0, -1}

	w.Step(testDt)

	if a.Sleeping {
		t.Fatal("contact with an awake dynamic body did not wake the sleeper")
	}
}

func TestStaticContactDoesNotWakeSleeper(t *testing.T) {
	w := NewWorld(0, 0)
	resting := w.AddBody(Dynamic, NewCircle(10), 0, 0, 1, Material{}, 1, 0xFFFF)
	w.AddBody(Static, NewBox(50, 5), 0, -12, 0, Material{}, 1, 0xFFFF)

	a := w.Body(resting)
	a.Sleeping = true

	w.Step(testDt)

	if !a.Sleeping {
		t.Fatal("resting on a static body must not wake the sleeper")
	}
}

// Warm-start invariant: the accumulated impulse entering step N+1 for a
// matched ContactID equals the post-solve impulse of step N.
func TestWarmStartCarriesPostSolveImpulse(t *testing.T) {
	w := NewWorld(0, -10)
	square := NewPolygon([]Vec2{{-5, -5}, {5, -5}, {5, 5}, {-5, 5}})
	box := w.AddBody(Dynamic, square, 0, 9.9, 1, Material{Friction: 0.3}, 1, 0xFFFF)
	floor := w.AddBody(Static, NewBox(50, 5), 0, 0, 0, Material{Friction: 0.3}, 1, 0xFFFF)
	a, b := w.Body(box), w.Body(floor)

	m1 := collideBodies(a, b)
	if m1 == nil || m1.PointCount != 2 {
		t.Fatalf("want two contact points in setup, got %+v", m1)
	}
	integrateVelocity(a, 0, -10, testDt)
	w.solve([]*Manifold{m1}, 1/testDt)

	post := make([]float64, m1.PointCount)
	total := 0.0
	for i := 0; i < m1.PointCount; i++ {
		post[i] = m1.Points[i].NormalImpulse
		total += post[i]
	}
	if total == 0 {
		t.Fatal("solve accumulated no normal impulse under gravity")
	}

	m2 := collideBodies(a, b)
	m2.inheritImpulses(m1)
	for i := 0; i < m2.PointCount; i++ {
		if m2.Points[i].NormalImpulse != post[i] {
			t.Fatalf("point %d enters step N+1 with %v, want post-solve %v",
				i, m2.Points[i].NormalImpulse, post[i])
		}
	}
}

func TestWarmStartSurvivesThroughPipeline(t *testing.T) {
	w := NewWorld(0, -10)
	square := NewPolygon([]Vec2{{-5, -5}, {5, -5}, {5, 5}, {-5, 5}})
	w.AddBody(Dynamic, square, 0, 10.01, 1, Material{Friction: 0.3}, 1, 0xFFFF)
	w.AddBody(Static, NewBox(50, 5), 0, 0, 0, Material{Friction: 0.3}, 1, 0xFFFF)

	for i := 0; i < 60; i++ {
		w.Step(testDt)
	}
	if len(w.prevManifolds) != 1 {
		t.Fatalf("prevManifolds has %d entries, want 1", len(w.prevManifolds))
	}
	for _, m := range w.prevManifolds {
		total := 0.0
		for i := 0; i < m.PointCount; i++ {
			total += m.Points[i].NormalImpulse
		}
		if total <= 0 {
			t.Fatal("resting contact carries no accumulated impulse between steps")
		}
	}
}

func TestDistanceConstraintHoldsRestLength(t *testing.T) {
	w := NewWorld(0, -10)
	// anchor and bob on non-colliding layers; the joint is the only coupling
	anchor := w.AddBody(Static, NewCircle(1), 0, 0, 0, Material{}, 1, 0)
	bob := w.AddBody(Dynamic, NewCircle(2), 30, 0, 1, Material{}, 1, 0)
	w.AddDistanceConstraint(anchor, bob, Vec2{}, Vec2{}, 30)

	for i := 0; i < 300; i++ {
		w.Step(testDt)
	}

	dist := w.Body(bob).Position.Sub(w.Body(anchor).Position).Length()
	if math.Abs(dist-30) > 1 {
		t.Fatalf("pendulum length = %v, want 30", dist)
	}
}

func TestRevoluteConstraintPinsAnchors(t *testing.T) {
	w := NewWorld(0, -10)
	a := w.AddBody(Dynamic, NewCircle(2), 0, 0, 1, Material{}, 1, 0)
	b := w.AddBody(Dynamic, NewCircle(2), 0, 10, 2, Material{}, 1, 0)
	w.AddRevoluteConstraint(a, b, Vec2{}, Vec2{0, -10})
	w.SetVelocity(b, 3, 0)

	for i := 0; i < 120; i++ {
		w.Step(testDt)
	}

	ba, bb := w.Body(a), w.Body(b)
	worldA := ba.Transform().Apply(Vec2{})
	worldB := bb.Transform().Apply(Vec2{0, -10})
	if gap := worldB.Sub(worldA).Length(); gap > 0.5 {
		t.Fatalf("revolute anchors drifted apart by %v", gap)
	}
}

func TestRemoveConstraint(t *testing.T) {
	w := NewWorld(0, 0)
	a := w.AddBody(Dynamic, NewCircle(1), 0, 0, 1, Material{}, 1, 0xFFFF)
	b := w.AddBody(Dynamic, NewCircle(1), 5, 0, 1, Material{}, 1, 0xFFFF)
	c := w.AddDistanceConstraint(a, b, Vec2{}, Vec2{}, 5)
	if len(w.Constraints()) != 1 {
		t.Fatal("constraint not added")
	}
	w.RemoveConstraint(c)
	if len(w.Constraints()) != 0 {
		t.Fatal("constraint not removed")
	}
}

func TestStepWithRemovedBodyIsSafe(t *testing.T) {
	w := NewWorld(0, -10)
	a := w.AddBody(Dynamic, NewCircle(5), 0, 0, 1, Material{}, 1, 0xFFFF)
	b := w.AddBody(Dynamic, NewCircle(5), 4, 0, 1, Material{}, 1, 0xFFFF)
	w.AddDistanceConstraint(a, b, Vec2{}, Vec2{}, 4)
	w.Step(testDt)

	w.RemoveBody(b)
	// dangling constraint and stale manifold cache must not crash the step
	for i := 0; i < 5; i++ {
		w.Step(testDt)
	}
	if w.BodyCount() != 1 {
		t.Fatalf("BodyCount = %d, want 1", w.BodyCount())
	}
}
