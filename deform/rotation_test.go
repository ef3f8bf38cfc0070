package deform

import (
	"math"
	"testing"

	"github.com/phanxgames/marionette/mathutil"
)

func TestRotateIdentity(t *testing.T) {
	points := []mathutil.Vec2{{X: 1, Y: 0}, {X: 0, Y: 1}}
	Rotate(Transform{Scale: 1}, 0, points)
	if !near(points[0].X, 1) || !near(points[0].Y, 0) {
		t.Fatalf("point 0 = %v, want (1,0)", points[0])
	}
	if !near(points[1].X, 0) || !near(points[1].Y, 1) {
		t.Fatalf("point 1 = %v, want (0,1)", points[1])
	}
}

func TestRotateNinetyDegrees(t *testing.T) {
	points := []mathutil.Vec2{{X: 1, Y: 0}}
	Rotate(Transform{Scale: 1, Angle: 90}, 0, points)
	if !near(points[0].X, 0) || !near(points[0].Y, 1) {
		t.Fatalf("rotated point = %v, want (0,1)", points[0])
	}
}

func TestCorrectChildAngleRigidTranslation(t *testing.T) {
	// A transform that only translates never changes a child's angle.
	transform := func(p mathutil.Vec2) mathutil.Vec2 {
		return p.Add(mathutil.Vec2{X: 5, Y: -3})
	}
	got := CorrectChildAngle(mathutil.Vec2{}, 1, transform)
	if !near(got, 0) {
		t.Fatalf("angle correction under pure translation = %v, want 0", got)
	}
}

func TestCorrectChildAngleRotatedParent(t *testing.T) {
	theta := math.Pi / 2
	transform := func(p mathutil.Vec2) mathutil.Vec2 {
		return p.Rotate(theta)
	}
	got := CorrectChildAngle(mathutil.Vec2{}, 1, transform)
	if !near(got, 90) {
		t.Fatalf("angle correction under 90deg parent rotation = %v, want 90", got)
	}
}

func TestCorrectChildAngleGivesUpOnPersistentDegeneracy(t *testing.T) {
	// A transform collapsing every point to the origin is degenerate at
	// every probe distance: correction must give up and return 0 rather
	// than loop forever or panic.
	transform := func(mathutil.Vec2) mathutil.Vec2 { return mathutil.Vec2{} }
	got := CorrectChildAngle(mathutil.Vec2{}, 1, transform)
	if got != 0 {
		t.Fatalf("degenerate transform correction = %v, want 0", got)
	}
}
