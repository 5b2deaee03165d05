package common

import "math"

// Vec3 is a world-space vector. X is the planar (forward) axis, Y is
// vertical with up positive, Z is reserved for the plane-backed collision
// provider and stays zero there.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Planar returns v with its vertical component removed.
func (v Vec3) Planar() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// PlanarLength is the length of the horizontal-plane projection.
func (v Vec3) PlanarLength() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalize returns the unit vector, or the zero vector when v is
// degenerate.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if ApproxZero(l) {
		return Vec3{}
	}
	return v.Scale(1 / l)
}
