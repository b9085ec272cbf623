package geom

import "math"

// Quat is a rotation quaternion. W is the scalar part.
type Quat struct{ X, Y, Z, W float64 }

// Identity does nothing.
var Identity = Quat{0, 0, 0, 1}

// AxisY is the axis of a cylinder before we rotate it. A unit cylinder
// runs from -0.5 to 0.5 along it.
var AxisY = Vec3{0, 1, 0}

// antiparallel is how close 1+cos(angle) may get to zero before we
// stop trusting the half-way vector.
const antiparallel = 1e-12

// Normalize returns q with unit norm.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n == 0 {
		return Identity
	}
	return Quat{q.X / n, q.Y / n, q.Z / n, q.W / n}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// perpendicular returns some unit vector at right angles to unit u.
// We cross with the coordinate axis u has least of, so the result
// never gets short.
func perpendicular(u Vec3) Vec3 {
	ax, ay, az := math.Abs(u.X), math.Abs(u.Y), math.Abs(u.Z)
	other := Vec3{1, 0, 0}
	if ay < ax && ay <= az {
		other = Vec3{0, 1, 0}
	} else if az < ax && az < ay {
		other = Vec3{0, 0, 1}
	}
	return u.Cross(other).Normalize()
}

// FromTo returns the smallest rotation taking direction from onto
// direction to. Neither has to be unit length. If either is zero
// there is no direction and we get the identity.
// The rotation is built from the half-way vector, which is smooth
// everywhere except exactly opposite directions. There any axis at
// right angles will do and we pick one with perpendicular().
func FromTo(from, to Vec3) Quat {
	u, v := from.Normalize(), to.Normalize()
	if u.Len2() == 0 || v.Len2() == 0 {
		return Identity
	}
	d := u.Dot(v)
	if 1+d < antiparallel {
		p := perpendicular(u)
		return Quat{p.X, p.Y, p.Z, 0}
	}
	c := u.Cross(v)
	return Quat{c.X, c.Y, c.Z, 1 + d}.Normalize()
}

// Transform places a unit cylinder. Position is where its centre
// goes, Rotation turns AxisY onto the cylinder's direction and Height
// is the length along that axis.
type Transform struct {
	Position Vec3
	Rotation Quat
	Height   float64
}

// Align returns the transform for a cylinder running from start to
// end. If start and end are the same we get a cylinder of zero height
// with no rotation. Working with half the difference keeps it finite
// for any finite ends.
func Align(start, end Vec3) Transform {
	h := end.Scale(0.5).Sub(start.Scale(0.5))
	return Transform{
		Position: Midpoint(start, end),
		Rotation: FromTo(AxisY, h),
		Height:   2 * h.Len(),
	}
}

// Ends gives back the two ends of the cylinder axis. It undoes Align
// and is mostly there for checking.
func (t Transform) Ends() (Vec3, Vec3) {
	half := t.Rotation.Rotate(AxisY).Scale(t.Height / 2)
	return t.Position.Sub(half), t.Position.Add(half)
}

// Matrix returns the 4x4 matrix, column major, which scales a unit
// cylinder to the given radius and our height, rotates it and then
// moves it into place.
func (t Transform) Matrix(radius float64) [16]float64 {
	q := t.Rotation
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z
	s := [3]float64{radius, t.Height, radius}
	var m [16]float64
	// column 0
	m[0] = (1 - 2*(yy+zz)) * s[0]
	m[1] = 2 * (xy + wz) * s[0]
	m[2] = 2 * (xz - wy) * s[0]
	// column 1
	m[4] = 2 * (xy - wz) * s[1]
	m[5] = (1 - 2*(xx+zz)) * s[1]
	m[6] = 2 * (yz + wx) * s[1]
	// column 2
	m[8] = 2 * (xz + wy) * s[2]
	m[9] = 2 * (yz - wx) * s[2]
	m[10] = (1 - 2*(xx+yy)) * s[2]
	// column 3
	m[12] = t.Position.X
	m[13] = t.Position.Y
	m[14] = t.Position.Z
	m[15] = 1
	return m
}
