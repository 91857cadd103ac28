// Package geom provides the small set of 3D primitives shared by the
// encounter generators and their consumers: vectors, axis-aligned boxes
// and linear interpolation.
package geom

// Vec3 is a 3D vector. Axes follow aircraft-relative convention:
// X longitudinal (along track), Y lateral (across track), Z vertical.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

// Scale returns v scaled by s in all three axes.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product of v and u.
func (v Vec3) Mul(u Vec3) Vec3 {
	return Vec3{v.X * u.X, v.Y * u.Y, v.Z * u.Z}
}

// Box is an axis-aligned box. Min must be component-wise <= Max.
type Box struct {
	Min Vec3
	Max Vec3
}

// BoxAround returns the box of the given size centred on center.
func BoxAround(center, size Vec3) Box {
	half := size.Scale(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the centre point of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent in each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether b and o overlap in all three axes.
// Touching faces count as an intersection.
func (b Box) Intersects(o Box) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Lerp linearly interpolates between a and b. f=0 returns a, f=1 returns b.
// Values of f outside [0, 1] extrapolate.
func Lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

// LerpVec3 linearly interpolates between a and b component-wise.
func LerpVec3(a, b Vec3, f float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, f),
		Y: Lerp(a.Y, b.Y, f),
		Z: Lerp(a.Z, b.Z, f),
	}
}
