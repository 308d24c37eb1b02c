package planar

// BodyID is an opaque handle into the world's body table. Handles are never
// reused: a removed body leaves its slot empty for the life of the world, so
// an outstanding id can never silently alias a different body.
type BodyID uint32

// BodyKind selects how a body participates in the simulation. The values
// double as the kind tags of the snapshot wire format.
type BodyKind uint8

const (
	// Static bodies never move and have infinite effective mass.
	Static BodyKind = iota
	// Dynamic bodies are fully simulated.
	Dynamic
	// Kinematic bodies are moved externally through velocity or pose writes
	// and never receive gravity.
	Kinematic
)

// Material holds the surface response parameters of a body.
type Material struct {
	Restitution float64
	Friction    float64
}

// Body is a rigid body. All mutable simulation state lives here; the world
// owns the storage and hands out BodyID handles.
type Body struct {
	ID   BodyID
	Kind BodyKind

	Shape    Shape
	Material Material

	Position        Vec2
	Angle           float64
	Velocity        Vec2
	AngularVelocity float64

	Force  Vec2
	Torque float64

	Mass       float64
	InvMass    float64
	Inertia    float64
	InvInertia float64

	Layer uint16
	Mask  uint16

	Sleeping  bool
	sleepTime float64
}

// resetMassData derives mass, inertia and their inverses from the shape, the
// supplied mass and the body kind. This is the only place the inverses are
// written: Static bodies get exactly zero regardless of the supplied mass,
// and a non-positive mass yields a zero inverse, making the body immovable.
func (b *Body) resetMassData(mass float64) {
	b.Mass = mass
	b.InvMass = 0.0
	b.Inertia = 0.0
	b.InvInertia = 0.0

	if b.Kind != Dynamic {
		return
	}
	if mass > 0.0 {
		b.InvMass = 1.0 / mass
	}
	if b.Shape != nil {
		b.Inertia = b.Shape.inertia(mass)
	}
	if b.Inertia > 0.0 {
		b.InvInertia = 1.0 / b.Inertia
	}
}

// Transform returns the body's current local-to-world transform.
func (b *Body) Transform() Transform {
	return MakeTransform(b.Position, b.Angle)
}

// ApplyForce accumulates a force at the center of mass. Forces are consumed
// and cleared by the next integration pass. Waking is the caller's signal
// that the body is being disturbed.
func (b *Body) ApplyForce(fx, fy float64) {
	if b.Kind != Dynamic {
		return
	}
	b.wake()
	b.Force.X += fx
	b.Force.Y += fy
}

// ApplyTorque accumulates a torque for the next integration pass.
func (b *Body) ApplyTorque(torque float64) {
	if b.Kind != Dynamic {
		return
	}
	b.wake()
	b.Torque += torque
}

// ApplyImpulse changes velocity immediately, bypassing the accumulators.
// The impulse acts at a world point; the offset from the center produces an
// angular response.
func (b *Body) ApplyImpulse(impulse Vec2, point Vec2) {
	if b.Kind != Dynamic {
		return
	}
	b.wake()
	b.Velocity = b.Velocity.Add(impulse.Scale(b.InvMass))
	r := point.Sub(b.Position)
	b.AngularVelocity += b.InvInertia * r.Cross(impulse)
}

func (b *Body) wake() {
	b.Sleeping = false
	b.sleepTime = 0.0
}
