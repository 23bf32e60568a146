// Package vecmath provides 2-component vector arithmetic for the fluid solver.
//
// Every operation comes in a value-returning form and, where it produces a
// vector, an in-place form on *Vec2. All operations are total: dividing or
// normalizing by zero yields the zero vector.
package vecmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a 2D vector of float64 components.
type Vec2 r2.Vec

// Zero is the zero vector.
var Zero = Vec2{}

// New returns the vector (x, y).
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v+u.
func (v Vec2) Add(u Vec2) Vec2 {
	return Vec2(r2.Add(r2.Vec(v), r2.Vec(u)))
}

// Sub returns v-u.
func (v Vec2) Sub(u Vec2) Vec2 {
	return Vec2(r2.Sub(r2.Vec(v), r2.Vec(u)))
}

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(r2.Scale(s, r2.Vec(v)))
}

// Div returns v/s, or the zero vector when s is 0.
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Zero
	}
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// Dot returns the dot product of v and u.
func (v Vec2) Dot(u Vec2) float64 {
	return r2.Dot(r2.Vec(v), r2.Vec(u))
}

// Cross returns the z component of the 3D cross product of v and u.
func (v Vec2) Cross(u Vec2) float64 {
	return r2.Cross(r2.Vec(v), r2.Vec(u))
}

// CrossScalar returns v crossed with the out-of-plane vector (0, 0, s).
// The result is perpendicular to v and scaled by s.
func (v Vec2) CrossScalar(s float64) Vec2 {
	return Vec2{X: s * v.Y, Y: -s * v.X}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return r2.Norm(r2.Vec(v))
}

// Len2 returns the squared length of v.
func (v Vec2) Len2() float64 {
	return r2.Norm2(r2.Vec(v))
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	return v.Div(v.Len())
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Rotate returns v rotated counter-clockwise by theta radians.
func (v Vec2) Rotate(theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// RotateInverse returns v rotated clockwise by theta radians.
func (v Vec2) RotateInverse(theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{
		X: v.X*cos + v.Y*sin,
		Y: -v.X*sin + v.Y*cos,
	}
}

// AddInPlace sets v to v+u.
func (v *Vec2) AddInPlace(u Vec2) {
	v.X += u.X
	v.Y += u.Y
}

// SubInPlace sets v to v-u.
func (v *Vec2) SubInPlace(u Vec2) {
	v.X -= u.X
	v.Y -= u.Y
}

// ScaleInPlace sets v to v*s.
func (v *Vec2) ScaleInPlace(s float64) {
	v.X *= s
	v.Y *= s
}

// DivInPlace sets v to v/s, or to zero when s is 0.
func (v *Vec2) DivInPlace(s float64) {
	*v = v.Div(s)
}

// NormalizeInPlace scales v to unit length. A zero vector stays zero.
func (v *Vec2) NormalizeInPlace() {
	*v = v.Normalize()
}

// NegInPlace sets v to -v.
func (v *Vec2) NegInPlace() {
	v.X = -v.X
	v.Y = -v.Y
}

// CrossScalarInPlace sets v to v crossed with (0, 0, s).
func (v *Vec2) CrossScalarInPlace(s float64) {
	*v = v.CrossScalar(s)
}

// RotateInPlace rotates v counter-clockwise by theta radians.
func (v *Vec2) RotateInPlace(theta float64) {
	*v = v.Rotate(theta)
}

// RotateInverseInPlace rotates v clockwise by theta radians.
func (v *Vec2) RotateInverseInPlace(theta float64) {
	*v = v.RotateInverse(theta)
}
