package planar

import "math"

// A 2D column vector.
type Vec2 struct {
	X, Y float64
}

func MakeVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{s * v.X, s * v.Y}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross is the scalar z component of the 3D cross product.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns the unit vector, or the zero vector when the length is
// too small to divide by.
func (v Vec2) Normalized() Vec2 {
	length := v.Length()
	if length < epsilon {
		return Vec2{}
	}
	inv := 1.0 / length
	return Vec2{v.X * inv, v.Y * inv}
}

// CrossSV computes cross(s*z_hat, v): the perpendicular of v scaled by s.
func CrossSV(s float64, v Vec2) Vec2 {
	return Vec2{-s * v.Y, s * v.X}
}

// CrossVS computes cross(v, s*z_hat).
func CrossVS(v Vec2, s float64) Vec2 {
	return Vec2{s * v.Y, -s * v.X}
}

// A rotation expressed as sine/cosine of an angle.
type Rot struct {
	S, C float64
}

func MakeRot(angle float64) Rot {
	return Rot{S: math.Sin(angle), C: math.Cos(angle)}
}

// Apply rotates v.
func (q Rot) Apply(v Vec2) Vec2 {
	return Vec2{q.C*v.X - q.S*v.Y, q.S*v.X + q.C*v.Y}
}

// ApplyT applies the inverse rotation.
func (q Rot) ApplyT(v Vec2) Vec2 {
	return Vec2{q.C*v.X + q.S*v.Y, -q.S*v.X + q.C*v.Y}
}

// A transform holds a position and rotation, mapping body-local points into
// the world frame.
type Transform struct {
	P Vec2
	Q Rot
}

func MakeTransform(p Vec2, angle float64) Transform {
	return Transform{P: p, Q: MakeRot(angle)}
}

func (t Transform) Apply(v Vec2) Vec2 {
	return t.Q.Apply(v).Add(t.P)
}

func (t Transform) ApplyT(v Vec2) Vec2 {
	return t.Q.ApplyT(v.Sub(t.P))
}

// A 2x2 matrix stored in column-major order.
type Mat22 struct {
	Ex, Ey Vec2
}

// Solve returns x for A*x = b. Falls back to zero when the matrix is
// singular, which the solver treats as an unconstrained direction.
func (m Mat22) Solve(b Vec2) Vec2 {
	a11, a12 := m.Ex.X, m.Ey.X
	a21, a22 := m.Ex.Y, m.Ey.Y
	det := a11*a22 - a12*a21
	if math.Abs(det) < epsilon {
		return Vec2{}
	}
	det = 1.0 / det
	return Vec2{
		X: det * (a22*b.X - a12*b.Y),
		Y: det * (a11*b.Y - a21*b.X),
	}
}
