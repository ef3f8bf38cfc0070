package deform

import (
	"math"

	"github.com/phanxgames/marionette/mathutil"
)

// Transform is a rotation deformer's instantaneous pose: an origin point, a
// uniform scale, and an angle in degrees added to the deformer's base angle.
type Transform struct {
	Origin mathutil.Vec2
	Scale  float64
	Angle  float64
}

// Rotate applies a rotation deformer's affine transform (scale, then
// rotate by baseAngle+t.Angle degrees, then translate to t.Origin) to every
// point, in place.
func Rotate(t Transform, baseAngle float64, points []mathutil.Vec2) {
	m := mathutil.FromScaleAngleTranslation(t.Scale, degToRad(baseAngle+t.Angle), t.Origin)
	for i := range points {
		points[i] = m.Apply(points[i])
	}
}

// CorrectChildAngle figures out how a parent deformer's motion rotates a
// child deformer whose own angle it controls. transform maps a point from
// the child's rest pose into its current (parent-distorted) position.
//
// A single sample direction can land on a degenerate pose (the parent
// transform collapses it to zero length, or produces a non-finite result),
// so each attempt probes the given direction and then the opposite one, and
// the probe distance is shrunk by a factor of 10 on each retry. After ten
// attempts the angle is reported as unchanged.
func CorrectChildAngle(origin mathutil.Vec2, baseScaleFactor float64, transform func(mathutil.Vec2) mathutil.Vec2) float64 {
	direction := mathutil.Vec2{X: 0, Y: -1}.Scale(baseScaleFactor)
	transformedOrigin := transform(origin)

	for i := 0; i < 10; i++ {
		eps := math.Pow(0.1, float64(i))

		transformedDirection := transform(origin.Add(direction.Scale(eps)))
		ret := transformedDirection.Sub(transformedOrigin)
		if ret.IsFinite() && !ret.IsZero() {
			return radToDeg(direction.AngleBetween(ret))
		}

		invDirection := transform(origin.Sub(direction.Scale(eps)))
		invRet := invDirection.Sub(transformedOrigin)
		if invRet.IsFinite() && !invRet.IsZero() {
			return radToDeg(direction.Scale(-1).AngleBetween(invRet))
		}
	}

	return 0
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }
