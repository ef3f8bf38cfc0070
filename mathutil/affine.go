package mathutil

import "math"

// Affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// This is the same layout the scene-graph transform hierarchy this package
// was adapted from uses for node-to-world transforms; here it is generalized
// to the rotation deformer's scale+angle+origin composition.
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FromScaleAngleTranslation builds the affine matrix for a uniform scale,
// a rotation by angle radians, then a translation to origin — the rotation
// deformer's exact composition (mirrors Mat3::from_scale_angle_translation).
func FromScaleAngleTranslation(scale, angle float64, origin Vec2) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{
		cos * scale, sin * scale,
		-sin * scale, cos * scale,
		origin.X, origin.Y,
	}
}

// Mul composes two affine matrices: result = p * c (apply c first, then p).
func Mul(p, c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Invert returns the inverse of m, or Identity if m is singular.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms a point through m.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		m[0]*p.X + m[2]*p.Y + m[4],
		m[1]*p.X + m[3]*p.Y + m[5],
	}
}
