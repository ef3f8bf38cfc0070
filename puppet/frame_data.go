package puppet

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/marionette/deform"
	"github.com/phanxgames/marionette/mathutil"
)

// FrameData is the mutable per-frame scratch a Puppet writes into. It is
// constructed once from a Puppet via NewFrameData and reused every frame:
// Update overwrites its buffers in place and never reallocates them. Update
// is not allocation-free: the tree walk builds closures and small scratch
// slices per edge, and draw-order resolution builds a sort slice per group.
type FrameData struct {
	ArtMeshData         [][]mathutil.Vec2
	ArtMeshOpacities    []float64
	ArtMeshColors       []BlendColor
	ArtMeshDrawOrders   []float64
	ArtMeshRenderOrders []uint32

	// ArtMeshVertices is renderer-ready ebiten.Vertex data, filled by
	// UpdateVertices after Update; it is not touched by Update itself.
	ArtMeshVertices [][]ebiten.Vertex

	WarpDeformerData      [][]mathutil.Vec2
	WarpDeformerOpacities []float64
	WarpDeformerColors    []BlendColor

	RotationDeformerData      []deform.Transform
	RotationDeformerOpacities []float64
	RotationDeformerColors    []BlendColor

	DeformerScaleData []float64

	GlueData []float64

	CorrectedParams []float64

	corners []mathutil.Corner
}

// NewFrameData allocates a FrameData sized from p, with opacities and colors
// at their identity defaults so a puppet with no applicators at all (an
// empty puppet) still reports sane values.
func NewFrameData(p *Puppet) *FrameData {
	fd := &FrameData{
		ArtMeshData:         make([][]mathutil.Vec2, p.ArtMeshCount),
		ArtMeshOpacities:    make([]float64, p.ArtMeshCount),
		ArtMeshColors:       make([]BlendColor, p.ArtMeshCount),
		ArtMeshDrawOrders:   make([]float64, p.ArtMeshCount),
		ArtMeshRenderOrders: make([]uint32, p.ArtMeshCount),
		ArtMeshVertices:     make([][]ebiten.Vertex, p.ArtMeshCount),

		WarpDeformerData:      make([][]mathutil.Vec2, p.WarpDeformerCount),
		WarpDeformerOpacities: make([]float64, p.WarpDeformerCount),
		WarpDeformerColors:    make([]BlendColor, p.WarpDeformerCount),

		RotationDeformerData:      make([]deform.Transform, p.RotationDeformerCount),
		RotationDeformerOpacities: make([]float64, p.RotationDeformerCount),
		RotationDeformerColors:    make([]BlendColor, p.RotationDeformerCount),

		DeformerScaleData: make([]float64, p.DeformerCount),

		GlueData: make([]float64, len(p.GlueNodes)),

		CorrectedParams: make([]float64, len(p.Params.Defaults)),
	}

	for i, uvs := range p.ArtMeshUVs {
		fd.ArtMeshData[i] = make([]mathutil.Vec2, len(uvs))
		fd.ArtMeshVertices[i] = make([]ebiten.Vertex, len(uvs))
	}
	for i := range fd.ArtMeshColors {
		fd.ArtMeshColors[i] = BlendColorIdentity
	}
	for i := range fd.ArtMeshOpacities {
		fd.ArtMeshOpacities[i] = 1
	}

	for i, count := range p.warpDeformerVertexCounts() {
		fd.WarpDeformerData[i] = make([]mathutil.Vec2, count)
	}
	for i := range fd.WarpDeformerColors {
		fd.WarpDeformerColors[i] = BlendColorIdentity
	}
	for i := range fd.WarpDeformerOpacities {
		fd.WarpDeformerOpacities[i] = 1
	}
	for i := range fd.RotationDeformerColors {
		fd.RotationDeformerColors[i] = BlendColorIdentity
	}
	for i := range fd.RotationDeformerOpacities {
		fd.RotationDeformerOpacities[i] = 1
	}
	for i := range fd.DeformerScaleData {
		fd.DeformerScaleData[i] = 1
	}

	copy(fd.CorrectedParams, p.Params.Defaults)

	return fd
}

// UpdateVertices assembles the renderer-ready ebiten.Vertex buffers from the
// positions, UVs, opacity and multiply color Update just wrote. It is a
// separate step from Update (which only does what spec's evaluator
// describes) so a headless caller never pays for it.
func (fd *FrameData) UpdateVertices(p *Puppet) {
	for i := range fd.ArtMeshData {
		positions := fd.ArtMeshData[i]
		uvs := p.ArtMeshUVs[i]
		verts := ensureVertexBuffer(&fd.ArtMeshVertices[i], len(positions))
		col := fd.ArtMeshColors[i]
		alpha := float32(fd.ArtMeshOpacities[i])
		for v := range positions {
			verts[v] = ebiten.Vertex{
				DstX:   float32(positions[v].X),
				DstY:   float32(positions[v].Y),
				SrcX:   float32(uvs[v].X),
				SrcY:   float32(uvs[v].Y),
				ColorR: float32(col.Multiply.X),
				ColorG: float32(col.Multiply.Y),
				ColorB: float32(col.Multiply.Z),
				ColorA: alpha,
			}
		}
	}
}

// ensureVertexBuffer grows buf to fit need elements using a high-water-mark
// strategy (never shrinks), adapted from willow's ensureTransformedVerts.
func ensureVertexBuffer(buf *[]ebiten.Vertex, need int) []ebiten.Vertex {
	if cap(*buf) < need {
		*buf = make([]ebiten.Vertex, need)
	}
	*buf = (*buf)[:need]
	return *buf
}
