package planar

// ShapeKind discriminates the collision shape variants. The values double as
// the shape tags of the snapshot wire format.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
	ShapePolygon
)

// Shape is the collision geometry attached to a body. Coordinates are
// body-local; the body pose maps them into the world frame.
type Shape interface {
	Kind() ShapeKind

	// AABB returns the world-space bounds under the given transform.
	AABB(xf Transform) (minX, minY, maxX, maxY float64)

	// inertia returns the rotational inertia about the body origin for the
	// given mass.
	inertia(mass float64) float64
}

type Circle struct {
	Radius float64
}

func NewCircle(radius float64) *Circle {
	return &Circle{Radius: radius}
}

func (c *Circle) Kind() ShapeKind { return ShapeCircle }

func (c *Circle) AABB(xf Transform) (float64, float64, float64, float64) {
	return xf.P.X - c.Radius, xf.P.Y - c.Radius, xf.P.X + c.Radius, xf.P.Y + c.Radius
}

func (c *Circle) inertia(mass float64) float64 {
	return 0.5 * mass * c.Radius * c.Radius
}

// Box is an axis-aligned box. Its inertia is fixed at zero, so boxes never
// pick up angular velocity from the solver; a rotated box must be built as a
// Polygon instead.
type Box struct {
	HalfW, HalfH float64

	poly *Polygon // 4-vertex polygon form used by the narrowphase
}

func NewBox(halfW, halfH float64) *Box {
	b := &Box{HalfW: halfW, HalfH: halfH}
	b.poly = NewPolygon([]Vec2{
		{-halfW, -halfH},
		{halfW, -halfH},
		{halfW, halfH},
		{-halfW, halfH},
	})
	return b
}

func (b *Box) Kind() ShapeKind { return ShapeBox }

func (b *Box) AABB(xf Transform) (float64, float64, float64, float64) {
	return xf.P.X - b.HalfW, xf.P.Y - b.HalfH, xf.P.X + b.HalfW, xf.P.Y + b.HalfH
}

func (b *Box) inertia(mass float64) float64 {
	return 0.0
}

// Polygon is a convex polygon with consistent counter-clockwise winding.
// Edge normals are precomputed at construction.
type Polygon struct {
	Vertices []Vec2
	Normals  []Vec2
}

func NewPolygon(vertices []Vec2) *Polygon {
	p := &Polygon{Vertices: vertices}
	n := len(vertices)
	p.Normals = make([]Vec2, n)
	for i := 0; i < n; i++ {
		j := i + 1
		if j == n {
			j = 0
		}
		edge := vertices[j].Sub(vertices[i])
		p.Normals[i] = CrossVS(edge, 1.0).Normalized()
	}
	return p
}

func (p *Polygon) Kind() ShapeKind { return ShapePolygon }

func (p *Polygon) AABB(xf Transform) (float64, float64, float64, float64) {
	if len(p.Vertices) == 0 {
		return xf.P.X, xf.P.Y, xf.P.X, xf.P.Y
	}
	v := xf.Apply(p.Vertices[0])
	minX, minY, maxX, maxY := v.X, v.Y, v.X, v.Y
	for _, lv := range p.Vertices[1:] {
		v = xf.Apply(lv)
		if v.X < minX {
			minX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	return minX, minY, maxX, maxY
}

// inertia uses the polygon second-moment formula about the body origin.
func (p *Polygon) inertia(mass float64) float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0.0
	}
	var numer, denom float64
	for i := 0; i < n; i++ {
		j := i + 1
		if j == n {
			j = 0
		}
		a := p.Vertices[i]
		b := p.Vertices[j]
		cross := a.Cross(b)
		numer += cross * (a.Dot(a) + a.Dot(b) + b.Dot(b))
		denom += cross
	}
	if denom < epsilon {
		return 0.0
	}
	return mass * numer / (6.0 * denom)
}
