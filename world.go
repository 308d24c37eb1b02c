// Package planar is a deterministic 2D rigid-body physics core: bodies under
// gravity, spatial-hash broadphase, feature-matched contact manifolds, a
// warm-started sequential impulse solver, and a sleep state machine, advanced
// one fixed step at a time. A World is single-threaded; independent worlds
// share nothing.
package planar

// World owns the body table, the constraint list and the gravity vector, and
// sequences the per-step pipeline. Step is the only entry point that mutates
// simulation state across the pipeline; every other mutator is an immediate,
// synchronous edit.
type World struct {
	gravityX, gravityY float64

	// bodies is a dense slot table indexed by BodyID. Removal empties the
	// slot; ids are never reused so stale handles and impulse caches can
	// never alias a new body.
	bodies []*Body
	nextID BodyID

	constraints []Constraint

	hash       *SpatialHash
	iterations int

	// KinematicContacts allows kinematic-vs-static pairs to generate
	// manifolds; off by default since neither side responds to impulses.
	KinematicContacts bool

	// previous step's manifolds by canonical pair key, for impulse matching
	prevManifolds map[uint64]*Manifold
}

func NewWorld(gravityX, gravityY float64) *World {
	return &World{
		gravityX:      gravityX,
		gravityY:      gravityY,
		hash:          NewSpatialHash(defaultCellSize),
		iterations:    defaultIterations,
		prevManifolds: make(map[uint64]*Manifold),
	}
}

// SetSolverIterations overrides the fixed iteration count. Zero or negative
// falls back to the default.
func (w *World) SetSolverIterations(n int) {
	if n <= 0 {
		n = defaultIterations
	}
	w.iterations = n
}

// SetCellSize rebuilds the broadphase with a new cell size. The hash carries
// no state between steps, so this is safe at any point outside Step.
func (w *World) SetCellSize(size float64) {
	w.hash = NewSpatialHash(size)
}

// AddBody creates a body and returns its handle. Mass and inertia are
// derived here, once; Static bodies get zero inverses regardless of the
// supplied mass.
func (w *World) AddBody(kind BodyKind, shape Shape, x, y, mass float64, material Material, layer, mask uint16) BodyID {
	b := &Body{
		ID:       w.nextID,
		Kind:     kind,
		Shape:    shape,
		Material: material,
		Position: Vec2{x, y},
		Layer:    layer,
		Mask:     mask,
	}
	b.resetMassData(mass)

	w.bodies = append(w.bodies, b)
	w.nextID++
	return b.ID
}

// RemoveBody empties the body's slot. Other handles stay valid. Invalid or
// already-removed ids are a no-op.
func (w *World) RemoveBody(id BodyID) {
	if int(id) >= len(w.bodies) {
		return
	}
	w.bodies[id] = nil
}

// Body returns the body for a handle, or nil when the handle is invalid or
// removed.
func (w *World) Body(id BodyID) *Body {
	if int(id) >= len(w.bodies) {
		return nil
	}
	return w.bodies[id]
}

// SetVelocity writes a body's linear velocity and wakes it.
func (w *World) SetVelocity(id BodyID, vx, vy float64) {
	b := w.Body(id)
	if b == nil {
		return
	}
	b.Velocity = Vec2{vx, vy}
	b.wake()
}

// SetPose teleports a body and wakes it. This is the external movement path
// for kinematic bodies.
func (w *World) SetPose(id BodyID, x, y, angle float64) {
	b := w.Body(id)
	if b == nil {
		return
	}
	b.Position = Vec2{x, y}
	b.Angle = angle
	b.wake()
}

// Bodies returns the live bodies in handle order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (w *World) BodyCount() int {
	n := 0
	for _, b := range w.bodies {
		if b != nil {
			n++
		}
	}
	return n
}

func (w *World) Gravity() (float64, float64) {
	return w.gravityX, w.gravityY
}

func (w *World) SetGravity(gx, gy float64) {
	w.gravityX, w.gravityY = gx, gy
}

// AddDistanceConstraint joins two bodies with a rest-length distance joint.
// Anchors are body-local.
func (w *World) AddDistanceConstraint(a, b BodyID, anchorA, anchorB Vec2, restLength float64) *DistanceConstraint {
	c := &DistanceConstraint{BodyA: a, BodyB: b, AnchorA: anchorA, AnchorB: anchorB, RestLength: restLength}
	w.constraints = append(w.constraints, c)
	return c
}

// AddRevoluteConstraint pins two body-local anchor points together.
func (w *World) AddRevoluteConstraint(a, b BodyID, anchorA, anchorB Vec2) *RevoluteConstraint {
	c := &RevoluteConstraint{BodyA: a, BodyB: b, AnchorA: anchorA, AnchorB: anchorB}
	w.constraints = append(w.constraints, c)
	return c
}

// RemoveConstraint removes a constraint by identity.
func (w *World) RemoveConstraint(target Constraint) {
	for i, c := range w.constraints {
		if c == target {
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			return
		}
	}
}

func (w *World) Constraints() []Constraint {
	return w.constraints
}

// solvable reports whether a contact or constraint between the two bodies
// still has an awake dynamic side worth iterating on. Sleeping pairs are
// skipped here; the wake pass has already run, so anything left asleep is
// resting against something that cannot disturb it.
func solvable(a, b *Body) bool {
	return (a.Kind == Dynamic && !a.Sleeping) || (b.Kind == Dynamic && !b.Sleeping)
}

// Step advances the world by dt seconds: broadphase repopulation, candidate
// pairs, narrowphase with impulse matching, the contact wake pass, velocity
// integration, the fixed-order impulse iterations, position integration, and
// the sleep update. Non-positive dt is a no-op.
func (w *World) Step(dt float64) {
	if dt <= 0.0 {
		return
	}
	invDt := 1.0 / dt

	// broadphase
	w.hash.Clear()
	for _, b := range w.bodies {
		if b == nil || b.Shape == nil {
			continue
		}
		minX, minY, maxX, maxY := b.Shape.AABB(b.Transform())
		w.hash.Insert(b.ID, minX, minY, maxX, maxY)
	}

	// narrowphase with warm-start inheritance
	var manifolds []*Manifold
	for _, pair := range w.hash.Pairs() {
		a := w.Body(pair.A)
		b := w.Body(pair.B)
		if a == nil || b == nil || !shouldCollide(a, b, w.KinematicContacts) {
			continue
		}
		m := collideBodies(a, b)
		if m == nil {
			continue
		}
		m.inheritImpulses(w.prevManifolds[m.pairKey()])
		manifolds = append(manifolds, m)
	}

	// contact wake pass, before integration so a woken body moves this step
	for _, m := range manifolds {
		wakeOnContact(w.Body(m.BodyA), w.Body(m.BodyB))
	}

	for _, b := range w.bodies {
		if b != nil {
			integrateVelocity(b, w.gravityX, w.gravityY, dt)
		}
	}

	w.solve(manifolds, invDt)

	for _, b := range w.bodies {
		if b != nil {
			integratePosition(b, dt)
		}
	}

	for _, b := range w.bodies {
		if b != nil {
			updateSleep(b, dt)
		}
	}

	// carry all manifolds forward, including skipped sleeping ones, so their
	// accumulated impulses survive a sleep/wake cycle
	next := make(map[uint64]*Manifold, len(manifolds))
	for _, m := range manifolds {
		next[m.pairKey()] = m
	}
	w.prevManifolds = next
}

// solve prepares the active contacts and constraints, warm starts them, and
// runs the fixed iteration count. Order is fixed and never sorted: contacts
// in discovery order, then constraints in insertion order, every iteration.
func (w *World) solve(manifolds []*Manifold, invDt float64) {
	type contactWork struct {
		m    *Manifold
		a, b *Body
	}
	type constraintWork struct {
		c    Constraint
		a, b *Body
	}

	var contacts []contactWork
	for _, m := range manifolds {
		a := w.Body(m.BodyA)
		b := w.Body(m.BodyB)
		if a == nil || b == nil || !solvable(a, b) {
			continue
		}
		prepareManifold(m, a, b, invDt)
		warmStartManifold(m, a, b)
		contacts = append(contacts, contactWork{m, a, b})
	}

	var joints []constraintWork
	for _, c := range w.constraints {
		idA, idB := c.Bodies()
		a := w.Body(idA)
		b := w.Body(idB)
		if a == nil || b == nil || !solvable(a, b) {
			continue
		}
		c.prepare(a, b, invDt)
		c.warmStart(a, b)
		joints = append(joints, constraintWork{c, a, b})
	}

	for i := 0; i < w.iterations; i++ {
		for _, cw := range contacts {
			solveManifold(cw.m, cw.a, cw.b)
		}
		for _, jw := range joints {
			jw.c.solveVelocity(jw.a, jw.b)
		}
	}
}
