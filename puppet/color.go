package puppet

// vec3 is a small RGB triple used for blend colors. It is kept local to
// puppet rather than promoted to mathutil since nothing outside blend-color
// math needs a 3-component vector.
type vec3 struct {
	X, Y, Z float64
}

func (v vec3) add(o vec3) vec3 {
	return vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v vec3) scale(s float64) vec3 {
	return vec3{v.X * s, v.Y * s, v.Z * s}
}

// BlendColor is the multiply/screen color pair an art mesh or deformer
// carries and propagates down the deformer tree (design note: "Color
// default").
type BlendColor struct {
	Multiply vec3
	Screen   vec3
}

// BlendColorIdentity leaves a mesh's own color unaffected: multiply=1,
// screen=0.
var BlendColorIdentity = BlendColor{Multiply: vec3{X: 1, Y: 1, Z: 1}}

// BlendColorZero is the accumulator start value, distinct from the identity
// used when an entity carries no color keyframes at all.
var BlendColorZero = BlendColor{}

// Blend composes a parent's color onto a child's: multiply channels
// multiply, screen channels use the standard "screen" blend formula.
func (a BlendColor) Blend(b BlendColor) BlendColor {
	return BlendColor{
		Multiply: vec3{
			X: a.Multiply.X * b.Multiply.X,
			Y: a.Multiply.Y * b.Multiply.Y,
			Z: a.Multiply.Z * b.Multiply.Z,
		},
		Screen: vec3{
			X: a.Screen.X + b.Screen.X - a.Screen.X*b.Screen.X,
			Y: a.Screen.Y + b.Screen.Y - a.Screen.Y*b.Screen.Y,
			Z: a.Screen.Z + b.Screen.Z - a.Screen.Z*b.Screen.Z,
		},
	}
}
