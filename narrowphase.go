package planar

import "math"

// shouldCollide applies the layer/mask filter and skips pairs where neither
// side can move. Both directions of the mask test must pass. A pair with no
// Dynamic side does no impulse work, so it is skipped unless kinematic
// contact generation is switched on and a kinematic side is present.
func shouldCollide(a, b *Body, kinematicContacts bool) bool {
	if a.Layer&b.Mask == 0 || b.Layer&a.Mask == 0 {
		return false
	}
	if a.Kind == Dynamic || b.Kind == Dynamic {
		return true
	}
	if kinematicContacts && (a.Kind == Kinematic || b.Kind == Kinematic) {
		return true
	}
	return false
}

// polygonOf returns the polygon form of a shape, treating a box as its
// unrotated 4-vertex polygon.
func polygonOf(s Shape) *Polygon {
	switch shape := s.(type) {
	case *Polygon:
		return shape
	case *Box:
		return shape.poly
	}
	return nil
}

// combined material response: geometric-mean friction, larger restitution.
func combineMaterials(m *Manifold, a, b *Body) {
	m.friction = math.Sqrt(a.Material.Friction * b.Material.Friction)
	m.restitution = math.Max(a.Material.Restitution, b.Material.Restitution)
}

// collideBodies dispatches on the shape pair and returns a manifold with the
// normal pointing from A to B, or nil when the shapes do not touch.
func collideBodies(a, b *Body) *Manifold {
	if a.Shape == nil || b.Shape == nil {
		return nil
	}

	m := &Manifold{BodyA: a.ID, BodyB: b.ID}

	circleA, aIsCircle := a.Shape.(*Circle)
	circleB, bIsCircle := b.Shape.(*Circle)

	switch {
	case aIsCircle && bIsCircle:
		collideCircles(m, a, circleA, b, circleB)

	case aIsCircle:
		poly := polygonOf(b.Shape)
		if poly == nil {
			return nil
		}
		// computed with the polygon as the reference body, then unflipped
		collidePolygonCircle(m, b, poly, a, circleA)
		flipManifold(m, a.ID, b.ID)

	case bIsCircle:
		poly := polygonOf(a.Shape)
		if poly == nil {
			return nil
		}
		collidePolygonCircle(m, a, poly, b, circleB)

	default:
		polyA := polygonOf(a.Shape)
		polyB := polygonOf(b.Shape)
		if polyA == nil || polyB == nil {
			return nil
		}
		collidePolygons(m, a, polyA, b, polyB)
	}

	if m.PointCount == 0 {
		return nil
	}
	combineMaterials(m, a, b)
	return m
}

// flipManifold rewrites a manifold computed with swapped roles so that body
// order and normal direction match the caller's (A, B) pair.
func flipManifold(m *Manifold, bodyA, bodyB BodyID) {
	m.BodyA = bodyA
	m.BodyB = bodyB
	m.Normal = m.Normal.Neg()
	m.Tangent = CrossVS(m.Normal, 1.0)
	for i := 0; i < m.PointCount; i++ {
		mp := &m.Points[i]
		mp.LocalAnchorA, mp.LocalAnchorB = mp.LocalAnchorB, mp.LocalAnchorA
	}
}
