package mathutil

import "testing"

const epsilon = 1e-9

func assertNear(t *testing.T, got, want float64, msg string) {
	t.Helper()
	if got-want > epsilon || want-got > epsilon {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

func TestBracketInterior(t *testing.T) {
	keys := []float64{0, 1, 2, 3}
	lo, hi, tt := Bracket(keys, 1.5)
	if lo != 1 || hi != 2 {
		t.Fatalf("bracket indices = (%d,%d), want (1,2)", lo, hi)
	}
	assertNear(t, tt, 0.5, "t")
}

func TestBracketExtrapolatesBeyondRange(t *testing.T) {
	keys := []float64{0, 1}
	_, _, tt := Bracket(keys, 2.0)
	assertNear(t, tt, 2.0, "extrapolated t")
}

func TestCornersSingleAxisLinear(t *testing.T) {
	axes := []Axis{{Keys: []float64{0, 1}, ParamIndex: 0, Stride: 1}}
	corners := Corners(axes, []float64{0.25}, nil)
	if len(corners) != 2 {
		t.Fatalf("want 2 corners, got %d", len(corners))
	}
	assertNear(t, corners[0].Weight, 0.75, "lo weight")
	assertNear(t, corners[1].Weight, 0.25, "hi weight")
}

func TestCornersSeparability(t *testing.T) {
	// Sampling at t=0 on axis 1 should match the 1-axis result fixing that
	// axis at its lower key (separability property, spec.md section 8).
	axes := []Axis{
		{Keys: []float64{0, 1}, ParamIndex: 0, Stride: 1},
		{Keys: []float64{0, 1}, ParamIndex: 1, Stride: 2},
	}
	params := []float64{0.3, 0.0}
	corners := Corners(axes, params, nil)

	oneAxis := []Axis{{Keys: []float64{0, 1}, ParamIndex: 0, Stride: 1}}
	oneAxisCorners := Corners(oneAxis, params, nil)

	var sum [2]float64
	for _, c := range corners {
		// corners with axis-1 bit set should carry zero weight.
		if c.Index >= 2 {
			assertNear(t, c.Weight, 0, "axis-1-high weight should vanish")
			continue
		}
		sum[c.Index] += c.Weight
	}
	assertNear(t, sum[0], oneAxisCorners[0].Weight, "corner 0")
	assertNear(t, sum[1], oneAxisCorners[1].Weight, "corner 1")
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}.Normalize()
	assertNear(t, v.Length(), 1, "unit length")
}

func TestAffineIdentityApply(t *testing.T) {
	p := Identity.Apply(Vec2{2, 3})
	assertNear(t, p.X, 2, "x")
	assertNear(t, p.Y, 3, "y")
}

func TestAffineFromScaleAngleTranslationIdentity(t *testing.T) {
	m := FromScaleAngleTranslation(1, 0, Vec2{})
	p := m.Apply(Vec2{1, 0})
	assertNear(t, p.X, 1, "x")
	assertNear(t, p.Y, 0, "y")
}
