package planar

// findMaxSeparation returns the edge of poly1 whose outward normal gives the
// largest separation from poly2, and that separation. A positive value is a
// separating axis.
func findMaxSeparation(poly1 *Polygon, xf1 Transform, poly2 *Polygon, xf2 Transform) (int, float64) {
	bestIndex := 0
	maxSeparation := -maxFloat

	for i := range poly1.Vertices {
		n := xf1.Q.Apply(poly1.Normals[i])
		v1 := xf1.Apply(poly1.Vertices[i])

		si := maxFloat
		for _, v := range poly2.Vertices {
			s := n.Dot(xf2.Apply(v).Sub(v1))
			if s < si {
				si = s
			}
		}

		if si > maxSeparation {
			maxSeparation = si
			bestIndex = i
		}
	}

	return bestIndex, maxSeparation
}

// findIncidentEdge picks the edge of poly2 most anti-parallel to the
// reference edge's normal and returns its endpoints in world space, tagged
// with the feature indices that produced them.
func findIncidentEdge(c *[2]clipVertex, poly1 *Polygon, xf1 Transform, edge1 int, poly2 *Polygon, xf2 Transform) {
	// reference normal in poly2's frame
	normal1 := xf2.Q.ApplyT(xf1.Q.Apply(poly1.Normals[edge1]))

	index := 0
	minDot := maxFloat
	for i, n := range poly2.Normals {
		dot := normal1.Dot(n)
		if dot < minDot {
			minDot = dot
			index = i
		}
	}

	i1 := index
	i2 := i1 + 1
	if i2 == len(poly2.Vertices) {
		i2 = 0
	}

	c[0].v = xf2.Apply(poly2.Vertices[i1])
	c[0].id = ContactID{ReferenceEdge: uint8(edge1), IncidentEdge: uint8(i1), ClipIndex: 0}
	c[1].v = xf2.Apply(poly2.Vertices[i2])
	c[1].id = ContactID{ReferenceEdge: uint8(edge1), IncidentEdge: uint8(i2), ClipIndex: 1}
}

// collidePolygons runs the separating-axis test over both polygons' edge
// normals, then clips the incident edge against the reference edge's side
// planes. Up to two points survive with negative separation; their clip
// features become the ContactIDs.
func collidePolygons(m *Manifold, bodyA *Body, polyA *Polygon, bodyB *Body, polyB *Polygon) {
	m.PointCount = 0
	if len(polyA.Vertices) < 3 || len(polyB.Vertices) < 3 {
		return
	}

	xfA := bodyA.Transform()
	xfB := bodyB.Transform()

	edgeA, separationA := findMaxSeparation(polyA, xfA, polyB, xfB)
	if separationA > 0.0 {
		return
	}
	edgeB, separationB := findMaxSeparation(polyB, xfB, polyA, xfA)
	if separationB > 0.0 {
		return
	}

	var poly1, poly2 *Polygon
	var xf1, xf2 Transform
	var edge1 int
	flip := false

	// Prefer the axis of minimum penetration; the tolerance keeps the choice
	// from flickering between near-equal axes frame to frame.
	const tol = 0.1 * linearSlop
	if separationB > separationA+tol {
		poly1, poly2 = polyB, polyA
		xf1, xf2 = xfB, xfA
		edge1 = edgeB
		flip = true
	} else {
		poly1, poly2 = polyA, polyB
		xf1, xf2 = xfA, xfB
		edge1 = edgeA
	}

	var incidentEdge [2]clipVertex
	findIncidentEdge(&incidentEdge, poly1, xf1, edge1, poly2, xf2)

	iv2 := edge1 + 1
	if iv2 == len(poly1.Vertices) {
		iv2 = 0
	}
	v11 := xf1.Apply(poly1.Vertices[edge1])
	v12 := xf1.Apply(poly1.Vertices[iv2])

	tangent := v12.Sub(v11).Normalized()
	refNormal := CrossVS(tangent, 1.0)

	frontOffset := refNormal.Dot(v11)
	sideOffset1 := -tangent.Dot(v11)
	sideOffset2 := tangent.Dot(v12)

	var clip1, clip2 [2]clipVertex
	if clipSegmentToLine(&clip1, &incidentEdge, tangent.Neg(), sideOffset1, 0) < 2 {
		return
	}
	if clipSegmentToLine(&clip2, &clip1, tangent, sideOffset2, 1) < 2 {
		return
	}

	normal := refNormal
	if flip {
		normal = refNormal.Neg()
	}
	m.Normal = normal
	m.Tangent = CrossVS(normal, 1.0)

	pointCount := 0
	for i := 0; i < maxManifoldPoints; i++ {
		separation := refNormal.Dot(clip2[i].v) - frontOffset
		if separation > 0.0 {
			continue
		}
		mp := &m.Points[pointCount]
		mp.Penetration = -separation
		mp.ID = clip2[i].id
		if flip {
			mp.ID.Flags |= idFlagFlip
		}
		mp.LocalAnchorA = xfA.ApplyT(clip2[i].v)
		mp.LocalAnchorB = xfB.ApplyT(clip2[i].v)
		pointCount++
	}
	m.PointCount = pointCount
}
