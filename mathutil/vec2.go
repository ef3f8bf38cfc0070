// Package mathutil provides the small numeric core shared by the deformer,
// applicator, and physics packages: 2D vectors, a 3x3 affine transform, and
// the general N-dimensional multilinear interpolator used by the parameter
// applicator.
package mathutil

import "math"

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// IsFinite reports whether both components are finite (not NaN or Inf).
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns v scaled to unit length. Returns the zero vector if v
// has zero length (matches the caller's degeneracy handling rather than
// producing NaN).
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate rotates v by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// AngleBetween returns the signed angle in radians from v to o.
func (v Vec2) AngleBetween(o Vec2) float64 {
	return math.Atan2(v.X*o.Y-v.Y*o.X, v.Dot(o))
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

func LerpVec2(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Rescale maps c from [lower, upper] to [0, 1].
func Rescale(c, lower, upper float64) float64 {
	return (c - lower) / (upper - lower)
}
