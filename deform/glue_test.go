package deform

import (
	"testing"

	"github.com/phanxgames/marionette/mathutil"
)

func TestGluePullsVerticesTogether(t *testing.T) {
	meshOne := []mathutil.Vec2{{X: 0, Y: 0}}
	meshTwo := []mathutil.Vec2{{X: 10, Y: 0}}
	positions := []uint16{0, 0}
	weights := []float64{0.5, 0.5}

	Glue(1.0, positions, weights, meshOne, meshTwo)

	if !near(meshOne[0].X, 5) {
		t.Fatalf("meshOne[0].X = %v, want 5", meshOne[0].X)
	}
	if !near(meshTwo[0].X, 5) {
		t.Fatalf("meshTwo[0].X = %v, want 5", meshTwo[0].X)
	}
}

func TestGlueZeroIntensityLeavesMeshesUnchanged(t *testing.T) {
	meshOne := []mathutil.Vec2{{X: 0, Y: 0}}
	meshTwo := []mathutil.Vec2{{X: 10, Y: 0}}
	positions := []uint16{0, 0}
	weights := []float64{0.5, 0.5}

	Glue(0.0, positions, weights, meshOne, meshTwo)

	if !near(meshOne[0].X, 0) || !near(meshTwo[0].X, 10) {
		t.Fatalf("zero-intensity glue moved vertices: %v %v", meshOne[0], meshTwo[0])
	}
}

func TestGlueAsymmetricWeightsPullUnevenly(t *testing.T) {
	meshOne := []mathutil.Vec2{{X: 0, Y: 0}}
	meshTwo := []mathutil.Vec2{{X: 10, Y: 0}}
	positions := []uint16{0, 0}
	weights := []float64{1.0, 0.0}

	Glue(1.0, positions, weights, meshOne, meshTwo)

	if !near(meshOne[0].X, 10) {
		t.Fatalf("meshOne[0].X = %v, want 10 (full pull)", meshOne[0].X)
	}
	if !near(meshTwo[0].X, 10) {
		t.Fatalf("meshTwo[0].X = %v, want 10 (zero weight keeps it in place)", meshTwo[0].X)
	}
}
