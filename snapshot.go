package planar

// Replay snapshot wire format: a flat sequence of float64s. Header is
// [bodyCount, gravityX, gravityY], then 16 fields per body in fixed order:
//
//	id, kindTag, shapeTag, shapeParam1, shapeParam2,
//	x, y, angle, vx, vy, angularVelocity,
//	mass, restitution, friction, layer, mask
//
// Polygon bodies are written with shapeTag 2 and zero shape params: vertex
// data does not round-trip through this format. That is a documented
// limitation of the format, kept as-is.

const snapshotHeaderLen = 3
const snapshotBodyLen = 16

// Snapshot serializes the world's bodies and gravity.
func (w *World) Snapshot() []float64 {
	bodies := w.Bodies()
	out := make([]float64, 0, snapshotHeaderLen+snapshotBodyLen*len(bodies))
	out = append(out, float64(len(bodies)), w.gravityX, w.gravityY)

	for _, b := range bodies {
		var shapeTag, p1, p2 float64
		switch shape := b.Shape.(type) {
		case *Circle:
			shapeTag = float64(ShapeCircle)
			p1 = shape.Radius
		case *Box:
			shapeTag = float64(ShapeBox)
			p1, p2 = shape.HalfW, shape.HalfH
		case *Polygon:
			shapeTag = float64(ShapePolygon)
		}

		out = append(out,
			float64(b.ID),
			float64(b.Kind),
			shapeTag, p1, p2,
			b.Position.X, b.Position.Y, b.Angle,
			b.Velocity.X, b.Velocity.Y, b.AngularVelocity,
			b.Mass,
			b.Material.Restitution, b.Material.Friction,
			float64(b.Layer), float64(b.Mask),
		)
	}
	return out
}

// Restore rebuilds the world's body storage from a snapshot, atomically
// replacing whatever was there; it never merges. Restored bodies come back
// awake with cleared warm-start caches. Malformed input is handled leniently:
// a truncated buffer restores the records that fit, and a record with an
// unknown kind or shape tag is skipped, never aborting the restore.
func (w *World) Restore(data []float64) {
	w.bodies = nil
	w.nextID = 0
	w.prevManifolds = make(map[uint64]*Manifold)

	if len(data) < snapshotHeaderLen {
		return
	}
	if !(data[0] >= 0) {
		return
	}
	count := int(data[0])
	w.gravityX = data[1]
	w.gravityY = data[2]

	offset := snapshotHeaderLen
	for i := 0; i < count; i++ {
		if offset+snapshotBodyLen > len(data) {
			break
		}
		rec := data[offset : offset+snapshotBodyLen]
		offset += snapshotBodyLen

		// ids and tags arrive as floats; reject anything outside a sane
		// range (including NaN) instead of aborting the restore
		const maxRestoredID = 1 << 24
		if !(rec[0] >= 0 && rec[0] < maxRestoredID) {
			continue
		}
		id := BodyID(rec[0])
		kindTag := int(rec[1])
		if !(rec[1] >= 0 && rec[1] <= float64(Kinematic)) {
			continue
		}

		if !(rec[2] >= 0 && rec[2] <= 255) {
			continue
		}

		var shape Shape
		switch ShapeKind(rec[2]) {
		case ShapeCircle:
			shape = NewCircle(rec[3])
		case ShapeBox:
			shape = NewBox(rec[3], rec[4])
		case ShapePolygon:
			// vertex data is not in the format; the body keeps its slot and
			// scalars but has no collidable geometry
			shape = NewPolygon(nil)
		default:
			continue
		}

		b := &Body{
			ID:              id,
			Kind:            BodyKind(kindTag),
			Shape:           shape,
			Material:        Material{Restitution: rec[12], Friction: rec[13]},
			Position:        Vec2{rec[5], rec[6]},
			Angle:           rec[7],
			Velocity:        Vec2{rec[8], rec[9]},
			AngularVelocity: rec[10],
			Layer:           uint16(rec[14]),
			Mask:            uint16(rec[15]),
		}
		b.resetMassData(rec[11])

		for int(id) >= len(w.bodies) {
			w.bodies = append(w.bodies, nil)
		}
		w.bodies[id] = b
		if id >= w.nextID {
			w.nextID = id + 1
		}
	}
}
