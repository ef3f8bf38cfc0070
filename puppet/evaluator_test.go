package puppet

import (
	"math"
	"testing"

	"github.com/phanxgames/marionette/mathutil"
)

// newWarpArtMeshPuppet builds a minimal two-node forest: one warp deformer
// (a 1x1, i.e. 2x2-control-point, identity grid) parenting a single art
// mesh, with a flat draw order. No applicators are wired, so a test can poke
// FrameData directly and observe only what Update's tree walk does.
func newWarpArtMeshPuppet() *Puppet {
	drawOrderNodes, drawOrderRoots := NewFlatArtMeshDrawOrder(1)
	return &Puppet{
		Nodes: []DeformerNode{
			{Kind: KindWarpDeformer, BroadIndex: 0, SpecificIndex: 0, Rows: 1, Columns: 1, IsNewDeformer: true, parent: -1, children: []int{1}},
			{Kind: KindArtMesh, BroadIndex: 0, parent: 0},
		},
		Roots:             []int{0},
		ArtMeshCount:      1,
		WarpDeformerCount: 1,
		DeformerCount:     1,
		warpVertexCounts:  []uint32{4},
		Params:            ParamInfo{Mins: []float64{0}, Maxes: []float64{1}, Defaults: []float64{0}},
		DrawOrderNodes:    drawOrderNodes,
		DrawOrderRoots:    drawOrderRoots,
	}
}

func identityGrid() []mathutil.Vec2 {
	return []mathutil.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
}

func TestUpdateIdentityWarpLeavesPointsUnchanged(t *testing.T) {
	p := newWarpArtMeshPuppet()
	fd := NewFrameData(p)

	copy(fd.WarpDeformerData[0], identityGrid())
	fd.ArtMeshData[0] = []mathutil.Vec2{{X: 0.25, Y: 0.25}, {X: 0.75, Y: 0.1}}
	want := append([]mathutil.Vec2(nil), fd.ArtMeshData[0]...)

	p.Update([]float64{0}, fd)

	for i, got := range fd.ArtMeshData[0] {
		if math.Abs(got.X-want[i].X) > 1e-9 || math.Abs(got.Y-want[i].Y) > 1e-9 {
			t.Fatalf("point %d: got %+v, want %+v", i, got, want[i])
		}
	}
}

func TestUpdateClampsParamsToRange(t *testing.T) {
	p := newWarpArtMeshPuppet()
	fd := NewFrameData(p)
	copy(fd.WarpDeformerData[0], identityGrid())
	fd.ArtMeshData[0] = []mathutil.Vec2{{X: 0.5, Y: 0.5}}

	p.Update([]float64{5}, fd)
	if fd.CorrectedParams[0] != 1 {
		t.Fatalf("expected param clamped to max 1, got %v", fd.CorrectedParams[0])
	}

	p.Update([]float64{-5}, fd)
	if fd.CorrectedParams[0] != 0 {
		t.Fatalf("expected param clamped to min 0, got %v", fd.CorrectedParams[0])
	}
}

func TestUpdatePropagatesOpacityDownTheTree(t *testing.T) {
	p := newWarpArtMeshPuppet()
	fd := NewFrameData(p)
	copy(fd.WarpDeformerData[0], identityGrid())
	fd.ArtMeshData[0] = []mathutil.Vec2{{X: 0.5, Y: 0.5}}
	fd.WarpDeformerOpacities[0] = 0.4
	fd.ArtMeshOpacities[0] = 0.5

	p.Update([]float64{0}, fd)

	if got := fd.ArtMeshOpacities[0]; math.Abs(got-0.2) > 1e-9 {
		t.Fatalf("expected combined opacity 0.2, got %v", got)
	}
}

func TestUpdatePropagatesColorDownTheTree(t *testing.T) {
	p := newWarpArtMeshPuppet()
	fd := NewFrameData(p)
	copy(fd.WarpDeformerData[0], identityGrid())
	fd.ArtMeshData[0] = []mathutil.Vec2{{X: 0.5, Y: 0.5}}
	fd.WarpDeformerColors[0] = BlendColor{Multiply: vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	fd.ArtMeshColors[0] = BlendColor{Multiply: vec3{X: 1, Y: 0.5, Z: 0}}

	p.Update([]float64{0}, fd)

	got := fd.ArtMeshColors[0].Multiply
	want := vec3{X: 0.5, Y: 0.25, Z: 0}
	if got != want {
		t.Fatalf("expected blended multiply %+v, got %+v", want, got)
	}
}
