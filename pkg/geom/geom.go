// Package geom has the small amount of 3D arithmetic we need for
// placing bonds. Points and directions are both Vec3.
package geom

import (
	"fmt"
	"math"
)

// Vec3 is a point or a direction.
type Vec3 struct{ X, Y, Z float64 }

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 { return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z} }

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 { return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z} }

// Scale multiplies each component by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot is the scalar product.
func (v Vec3) Dot(u Vec3) float64 { return v.X*u.X + v.Y*u.Y + v.Z*u.Z }

// Cross is the vector product.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Len2 gives us the length squared.
func (v Vec3) Len2() float64 { return v.Dot(v) }

// Len is the vector length. Hypot does not overflow on the way, so
// any vector whose length fits in a float64 gets it.
func (v Vec3) Len() float64 { return math.Hypot(math.Hypot(v.X, v.Y), v.Z) }

// Normalize returns v with unit length. The zero vector comes back
// unchanged. We divide by the biggest component first, so huge and
// tiny vectors both come out right.
func (v Vec3) Normalize() Vec3 {
	big := max(math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z))
	if big == 0 || math.IsInf(big, 0) || math.IsNaN(big) {
		return v
	}
	u := Vec3{v.X / big, v.Y / big, v.Z / big}
	return u.Scale(1 / math.Sqrt(u.Len2()))
}

// IsNaN is true if any component is NaN.
func (v Vec3) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

func (v Vec3) String() string { return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z) }

// Midpoint is the component-wise mean of two points. Halving first
// keeps it finite for any two finite points.
func Midpoint(a, b Vec3) Vec3 {
	return Vec3{a.X/2 + b.X/2, a.Y/2 + b.Y/2, a.Z/2 + b.Z/2}
}

// Dist is the distance between two points.
func Dist(a, b Vec3) float64 { return b.Sub(a).Len() }
