package planar

// Feature flags carried in a ContactID.
const (
	// idFlagCircle marks the reserved id of a circle-circle contact, which
	// has no edge features.
	idFlagCircle uint8 = 1 << 0
	// idFlagVertex marks a circle-polygon contact in a vertex region rather
	// than a face region.
	idFlagVertex uint8 = 1 << 1
	// idFlagFlip marks a polygon-polygon contact whose reference face is on
	// body B.
	idFlagFlip uint8 = 1 << 2
)

// ContactID identifies the geometric features that produced a contact point.
// It stays stable across frames while the same features remain in contact,
// even as the exact coordinates drift, which is what lets accumulated
// impulses carry forward between steps.
type ContactID struct {
	ReferenceEdge uint8
	IncidentEdge  uint8
	ClipIndex     uint8
	Flags         uint8
}

// Key packs the id into a single comparable word for impulse matching.
func (id ContactID) Key() uint32 {
	return uint32(id.ReferenceEdge) |
		uint32(id.IncidentEdge)<<8 |
		uint32(id.ClipIndex)<<16 |
		uint32(id.Flags)<<24
}

// circleContactID is the reserved id used by circle-circle contacts.
func circleContactID() ContactID {
	return ContactID{Flags: idFlagCircle}
}

// ManifoldPoint is one contact point. Anchors are body-local offsets so they
// stay valid while the bodies move within the step. The accumulated impulses
// are the warm-starting state carried between frames.
type ManifoldPoint struct {
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	Penetration  float64 // positive when overlapping
	ID           ContactID

	NormalImpulse  float64
	TangentImpulse float64

	// solver scratch, valid between prepare and store within one step
	rA, rB      Vec2
	normalMass  float64
	tangentMass float64
	bias        float64
}

// Manifold describes the overlap of one body pair for one step. Manifolds are
// rebuilt every step; persistence happens only through matched accumulated
// impulses.
type Manifold struct {
	BodyA, BodyB BodyID

	Normal  Vec2 // world space, points from A to B
	Tangent Vec2 // perpendicular to Normal, fixed per manifold

	Points     [maxManifoldPoints]ManifoldPoint
	PointCount int

	// combined material response, computed once at generation
	friction    float64
	restitution float64
}

// pairKey canonically identifies the body pair regardless of order.
func (m *Manifold) pairKey() uint64 {
	a, b := m.BodyA, m.BodyB
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// inheritImpulses matches this manifold's points against the previous step's
// manifold for the same pair by ContactID and copies the accumulated
// impulses across. Unmatched points keep zero. Skipping this match would not
// raise any error, but it silently destroys warm starting: stacks jitter and
// sink because every solve restarts from nothing.
func (m *Manifold) inheritImpulses(prev *Manifold) {
	if prev == nil {
		return
	}
	for i := 0; i < m.PointCount; i++ {
		mp := &m.Points[i]
		key := mp.ID.Key()
		for j := 0; j < prev.PointCount; j++ {
			old := &prev.Points[j]
			if old.ID.Key() == key {
				mp.NormalImpulse = old.NormalImpulse
				mp.TangentImpulse = old.TangentImpulse
				break
			}
		}
	}
}

type clipVertex struct {
	v  Vec2
	id ContactID
}

// clipSegmentToLine clips the incident edge segment against one side plane
// of the reference edge. Sutherland-Hodgman, two points in, up to two out.
func clipSegmentToLine(out *[2]clipVertex, in *[2]clipVertex, normal Vec2, offset float64, clipIndex uint8) int {
	numOut := 0

	distance0 := normal.Dot(in[0].v) - offset
	distance1 := normal.Dot(in[1].v) - offset

	if distance0 <= 0.0 {
		out[numOut] = in[0]
		numOut++
	}
	if distance1 <= 0.0 {
		out[numOut] = in[1]
		numOut++
	}

	if distance0*distance1 < 0.0 {
		interp := distance0 / (distance0 - distance1)
		out[numOut].v = in[0].v.Add(in[1].v.Sub(in[0].v).Scale(interp))
		out[numOut].id = in[0].id
		out[numOut].id.ClipIndex = clipIndex
		numOut++
	}

	return numOut
}
