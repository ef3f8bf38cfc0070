package puppet

import (
	"math"
	"sort"
)

type drawOrderNodeKind int

const (
	drawOrderArtMesh drawOrderNodeKind = iota
	drawOrderPart
)

// drawOrderNode is one entry of the draw-order forest: either an art mesh
// (a leaf, contributing one render-order slot) or a part (a group that
// recurses into its own children). draw_order_roots[0] is always a
// synthetic Part{index: sentinel} root with no DrawOrderGroup of its own.
type drawOrderNode struct {
	kind     drawOrderNodeKind
	index    uint32
	children []int
}

// NewFlatArtMeshDrawOrder builds the simplest possible draw-order forest: a
// single synthetic root part parenting every art mesh directly, in index
// order. It lets a caller hand-assemble a Puppet without a moc3 asset (the
// evaluator tests use it) rather than reaching into the forest's unexported
// node type.
func NewFlatArtMeshDrawOrder(artMeshCount uint32) (nodes []drawOrderNode, roots []int) {
	nodes = make([]drawOrderNode, artMeshCount+1)
	children := make([]int, artMeshCount)
	for i := uint32(0); i < artMeshCount; i++ {
		nodes[i+1] = drawOrderNode{kind: drawOrderArtMesh, index: i}
		children[i] = int(i) + 1
	}
	nodes[0] = drawOrderNode{kind: drawOrderPart, children: children}
	return nodes, []int{0}
}

type drawOrderEntry struct {
	key      float64
	nodeIdx  int
}

// resolveDrawOrder walks the draw-order forest and writes a permutation of
// 0..art_mesh_count into fd.ArtMeshRenderOrders. Each group's children are
// stable-sorted by (rounded draw order, node id); art meshes use their own
// frame draw order, parts use the fixed key 500.0 (design note: "Draw-order
// precision" — the reference hasn't implemented per-part ordering).
func (p *Puppet) resolveDrawOrder(fd *FrameData) {
	cur := 0
	p.drawOrderTreeRec(p.DrawOrderRoots[0], &cur, fd)
}

func (p *Puppet) drawOrderTreeRec(root int, cur *int, fd *FrameData) {
	children := p.DrawOrderNodes[root].children
	entries := make([]drawOrderEntry, len(children))
	for i, childIdx := range children {
		child := p.DrawOrderNodes[childIdx]
		var key float64
		if child.kind == drawOrderArtMesh {
			key = math.Round(fd.ArtMeshDrawOrders[child.index])
		} else {
			key = 500.0
		}
		entries[i] = drawOrderEntry{key: key, nodeIdx: childIdx}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].nodeIdx < entries[j].nodeIdx
	})

	for _, e := range entries {
		child := p.DrawOrderNodes[e.nodeIdx]
		if child.kind == drawOrderArtMesh {
			fd.ArtMeshRenderOrders[*cur] = child.index
			*cur++
		} else {
			p.drawOrderTreeRec(e.nodeIdx, cur, fd)
		}
	}
}
