package puppet

import "testing"

func TestResolveDrawOrderSortsByKeyThenNodeID(t *testing.T) {
	p := &Puppet{
		ArtMeshCount: 3,
		DrawOrderNodes: []drawOrderNode{
			{kind: drawOrderPart, children: []int{1, 2, 3}}, // sentinel root
			{kind: drawOrderArtMesh, index: 0},
			{kind: drawOrderArtMesh, index: 1},
			{kind: drawOrderArtMesh, index: 2},
		},
		DrawOrderRoots: []int{0},
	}
	fd := &FrameData{
		ArtMeshDrawOrders:   []float64{2.0, 1.0, 1.0},
		ArtMeshRenderOrders: make([]uint32, 3),
	}

	p.resolveDrawOrder(fd)

	want := []uint32{1, 2, 0}
	for i, w := range want {
		if fd.ArtMeshRenderOrders[i] != w {
			t.Fatalf("render order %d: got %d, want %d (full: %v)", i, fd.ArtMeshRenderOrders[i], w, fd.ArtMeshRenderOrders)
		}
	}
}

func TestResolveDrawOrderRecursesIntoNestedParts(t *testing.T) {
	p := &Puppet{
		ArtMeshCount: 2,
		DrawOrderNodes: []drawOrderNode{
			{kind: drawOrderPart, children: []int{1, 2}}, // sentinel root
			{kind: drawOrderPart, children: []int{3}},    // nested group, fixed key 500
			{kind: drawOrderArtMesh, index: 0},           // draw order key overrides 500 only if smaller
			{kind: drawOrderArtMesh, index: 1},
		},
		DrawOrderRoots: []int{0},
	}
	fd := &FrameData{
		ArtMeshDrawOrders:   []float64{1000, 0},
		ArtMeshRenderOrders: make([]uint32, 2),
	}

	p.resolveDrawOrder(fd)

	// nested part key (500) sorts before art mesh node2 (key 1000), art mesh
	// inside the nested part (index 1) is visited first.
	if fd.ArtMeshRenderOrders[0] != 1 {
		t.Fatalf("expected nested part's art mesh first, got %v", fd.ArtMeshRenderOrders)
	}
	if fd.ArtMeshRenderOrders[1] != 0 {
		t.Fatalf("expected top-level art mesh second, got %v", fd.ArtMeshRenderOrders)
	}
}
