package planar

// collideCircles writes a manifold for two circles. One point, penetration
// 2r-d style, normal from A to B.
func collideCircles(m *Manifold, bodyA *Body, circleA *Circle, bodyB *Body, circleB *Circle) {
	m.PointCount = 0

	d := bodyB.Position.Sub(bodyA.Position)
	distSqr := d.Dot(d)
	radius := circleA.Radius + circleB.Radius
	if distSqr > radius*radius {
		return
	}

	dist := d.Length()
	normal := MakeVec2(1.0, 0.0)
	if dist > epsilon {
		normal = d.Scale(1.0 / dist)
	}

	// contact point midway through the overlap region
	onA := bodyA.Position.Add(normal.Scale(circleA.Radius))
	onB := bodyB.Position.Sub(normal.Scale(circleB.Radius))
	world := onA.Add(onB).Scale(0.5)

	m.Normal = normal
	m.Tangent = CrossVS(normal, 1.0)
	m.PointCount = 1

	mp := &m.Points[0]
	mp.Penetration = radius - dist
	mp.ID = circleContactID()
	mp.LocalAnchorA = bodyA.Transform().ApplyT(world)
	mp.LocalAnchorB = bodyB.Transform().ApplyT(world)
}

// collidePolygonCircle writes a manifold between a polygon body A and a
// circle body B. The separating feature is either a polygon face or one of
// the face's two vertices; the ContactID records which, so the point matches
// across frames while the circle stays in the same region.
func collidePolygonCircle(m *Manifold, bodyA *Body, poly *Polygon, bodyB *Body, circle *Circle) {
	m.PointCount = 0
	if len(poly.Vertices) < 3 {
		return
	}

	xfA := bodyA.Transform()
	cLocal := xfA.ApplyT(bodyB.Position)
	radius := circle.Radius

	// Find the face of minimum separation from the circle center.
	normalIndex := 0
	separation := -maxFloat
	for i, n := range poly.Normals {
		s := n.Dot(cLocal.Sub(poly.Vertices[i]))
		if s > radius {
			return
		}
		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	i2 := normalIndex + 1
	if i2 == len(poly.Vertices) {
		i2 = 0
	}
	v1 := poly.Vertices[normalIndex]
	v2 := poly.Vertices[i2]

	var localNormal Vec2
	var penetration float64
	id := ContactID{ReferenceEdge: uint8(normalIndex)}

	switch {
	case separation < epsilon:
		// center inside the polygon
		localNormal = poly.Normals[normalIndex]
		penetration = radius - separation

	default:
		u1 := cLocal.Sub(v1).Dot(v2.Sub(v1))
		u2 := cLocal.Sub(v2).Dot(v1.Sub(v2))
		switch {
		case u1 <= 0.0:
			if cLocal.Sub(v1).LengthSquared() > radius*radius {
				return
			}
			localNormal = cLocal.Sub(v1).Normalized()
			penetration = radius - cLocal.Sub(v1).Length()
			id = ContactID{ReferenceEdge: uint8(normalIndex), Flags: idFlagVertex}
		case u2 <= 0.0:
			if cLocal.Sub(v2).LengthSquared() > radius*radius {
				return
			}
			localNormal = cLocal.Sub(v2).Normalized()
			penetration = radius - cLocal.Sub(v2).Length()
			id = ContactID{ReferenceEdge: uint8(i2), Flags: idFlagVertex}
		default:
			faceCenter := v1.Add(v2).Scale(0.5)
			s := cLocal.Sub(faceCenter).Dot(poly.Normals[normalIndex])
			if s > radius {
				return
			}
			localNormal = poly.Normals[normalIndex]
			penetration = radius - s
		}
	}

	normal := xfA.Q.Apply(localNormal)
	world := bodyB.Position.Sub(normal.Scale(radius))

	m.Normal = normal
	m.Tangent = CrossVS(normal, 1.0)
	m.PointCount = 1

	mp := &m.Points[0]
	mp.Penetration = penetration
	mp.ID = id
	mp.LocalAnchorA = xfA.ApplyT(world)
	mp.LocalAnchorB = bodyB.Transform().ApplyT(world)
}
