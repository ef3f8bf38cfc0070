package physics

import (
	"math"
	"testing"

	"github.com/phanxgames/marionette/mathutil"
)

func assertClose(t *testing.T, got, want, tolerance float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Fatalf("%s: got %v, want %v (+/- %v)", msg, got, want, tolerance)
	}
}

func TestPendulumLinkLengthConstraint(t *testing.T) {
	p := NewPendulum(
		[]mathutil.Vec2{{X: 0, Y: 0}, {X: 0, Y: 0}},
		[]Vertex{{}, {Mobility: 1, Delay: 1, Acceleration: 1, Radius: 3}},
	)

	p.Update(0.05, mathutil.Vec2{X: 0, Y: 1}, 0)

	anchor := p.Points[0].Current
	bob := p.Points[1].Current
	dist := bob.Sub(anchor).Length()

	assertClose(t, dist, 3, 1e-9, "link length after one step")
}

func TestPendulumZeroDtIsNoOp(t *testing.T) {
	p := NewPendulum(
		[]mathutil.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}},
		[]Vertex{{}, {Mobility: 1, Delay: 1, Acceleration: 1, Radius: 3}},
	)

	before := p.Points[1].Current
	p.Update(0, mathutil.Vec2{X: 5, Y: 5}, 0)
	after := p.Points[1].Current

	if before != after {
		t.Fatalf("zero dt should not move any point: before=%v after=%v", before, after)
	}
}

func TestPendulumSettlesTowardAnchor(t *testing.T) {
	p := NewPendulum(
		[]mathutil.Vec2{{X: 0, Y: 0}, {X: 0, Y: 3}},
		[]Vertex{{}, {Mobility: 0.5, Delay: 1, Acceleration: 1, Radius: 3}},
	)

	for i := 0; i < 200; i++ {
		p.Update(1.0/60.0, mathutil.Vec2{X: 0, Y: 0}, 0)
	}

	dist := p.Points[1].Current.Sub(p.Points[0].Current).Length()
	assertClose(t, dist, 3, 1e-6, "link length after settling")
}
