package puppet

import "testing"

func TestBlendColorIdentityIsNoOp(t *testing.T) {
	c := BlendColor{Multiply: vec3{X: 0.3, Y: 0.6, Z: 0.9}, Screen: vec3{X: 0.1, Y: 0.2, Z: 0.3}}
	got := BlendColorIdentity.Blend(c)
	if got != c {
		t.Fatalf("identity blend should leave color unchanged: got %+v, want %+v", got, c)
	}
}

func TestBlendColorMultiplyChannelsMultiply(t *testing.T) {
	a := BlendColor{Multiply: vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	b := BlendColor{Multiply: vec3{X: 0.5, Y: 1, Z: 0}}
	got := a.Blend(b)
	want := vec3{X: 0.25, Y: 0.5, Z: 0}
	if got.Multiply != want {
		t.Fatalf("multiply channel: got %+v, want %+v", got.Multiply, want)
	}
}

func TestBlendColorScreenChannelsUseScreenFormula(t *testing.T) {
	a := BlendColor{Screen: vec3{X: 0.5, Y: 0, Z: 1}}
	b := BlendColor{Screen: vec3{X: 0.5, Y: 0.5, Z: 0}}
	got := a.Blend(b)
	// screen(x,y) = x + y - x*y
	want := vec3{X: 0.75, Y: 0.5, Z: 1}
	if got.Screen != want {
		t.Fatalf("screen channel: got %+v, want %+v", got.Screen, want)
	}
}
