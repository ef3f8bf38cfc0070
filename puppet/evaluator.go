package puppet

import (
	"github.com/phanxgames/marionette/deform"
	"github.com/phanxgames/marionette/mathutil"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Update drives one frame of animation: clamp the driving parameters, run
// every applicator, walk the deformer tree propagating parent transforms
// onto their children, resolve glue, and resolve draw order. fd must have
// been built by NewFrameData(p) (or reused from the previous frame of the
// same puppet) — Update never changes its allocation shape.
func (p *Puppet) Update(params []float64, fd *FrameData) {
	for i, v := range params {
		fd.CorrectedParams[i] = clamp(v, p.Params.Mins[i], p.Params.Maxes[i])
	}

	for _, a := range p.Applicators {
		fd.corners = a.Apply(fd.CorrectedParams, fd, fd.corners)
	}

	p.walkDeformerTree(func(parentIdx, childIdx int) {
		parent := &p.Nodes[parentIdx]
		child := &p.Nodes[childIdx]
		if parent.Kind == child.Kind && parent.BroadIndex == child.BroadIndex {
			panic("puppet: deformer tree edge has the same node as parent and child")
		}

		var points []mathutil.Vec2
		var childOpacity *float64
		var childColor *BlendColor
		var restOrigin mathutil.Vec2
		var writeBackOrigin func(mathutil.Vec2)

		switch child.Kind {
		case KindArtMesh:
			points = fd.ArtMeshData[child.BroadIndex]
			childOpacity = &fd.ArtMeshOpacities[child.BroadIndex]
			childColor = &fd.ArtMeshColors[child.BroadIndex]
		case KindWarpDeformer:
			fd.DeformerScaleData[child.BroadIndex] = fd.DeformerScaleData[parent.BroadIndex]
			points = fd.WarpDeformerData[child.SpecificIndex]
			childOpacity = &fd.WarpDeformerOpacities[child.SpecificIndex]
			childColor = &fd.WarpDeformerColors[child.SpecificIndex]
		case KindRotationDeformer:
			t := &fd.RotationDeformerData[child.SpecificIndex]
			t.Scale *= fd.DeformerScaleData[parent.BroadIndex]
			fd.DeformerScaleData[child.BroadIndex] = t.Scale

			restOrigin = t.Origin
			points = []mathutil.Vec2{t.Origin}
			writeBackOrigin = func(v mathutil.Vec2) { t.Origin = v }

			childOpacity = &fd.RotationDeformerOpacities[child.SpecificIndex]
			childColor = &fd.RotationDeformerColors[child.SpecificIndex]
		}

		var parentOpacity float64
		var parentColor BlendColor
		var applyParentKernel func([]mathutil.Vec2)

		switch parent.Kind {
		case KindWarpDeformer:
			grid := fd.WarpDeformerData[parent.SpecificIndex]
			applyParentKernel = func(pts []mathutil.Vec2) {
				deform.Warp(grid, parent.IsNewDeformer, parent.Rows, parent.Columns, pts)
			}
			parentOpacity = fd.WarpDeformerOpacities[parent.SpecificIndex]
			parentColor = fd.WarpDeformerColors[parent.SpecificIndex]
		case KindRotationDeformer:
			transform := fd.RotationDeformerData[parent.SpecificIndex]
			applyParentKernel = func(pts []mathutil.Vec2) {
				deform.Rotate(transform, parent.BaseAngle, pts)
			}
			parentOpacity = fd.RotationDeformerOpacities[parent.SpecificIndex]
			parentColor = fd.RotationDeformerColors[parent.SpecificIndex]
		default:
			panic("puppet: deformer tree parent is an art mesh, which cannot have children")
		}

		applyParentKernel(points)
		if writeBackOrigin != nil {
			writeBackOrigin(points[0])
		}

		*childOpacity *= parentOpacity
		*childColor = parentColor.Blend(*childColor)

		// Rotation-correction: a rotation deformer's own angle must absorb
		// however much its parent's motion rotates space at the child's
		// origin, or the child's descendants would spin opposite the
		// parent's visible rotation (design note: "Rotation-correction
		// epsilon ladder").
		if child.Kind == KindRotationDeformer {
			baseScaleFactor := 0.1
			if parent.Kind == KindRotationDeformer {
				baseScaleFactor = 10.0
			}
			correction := deform.CorrectChildAngle(restOrigin, baseScaleFactor, func(pt mathutil.Vec2) mathutil.Vec2 {
				buf := []mathutil.Vec2{pt}
				applyParentKernel(buf)
				return buf[0]
			})
			fd.RotationDeformerData[child.SpecificIndex].Angle += correction
		}
	})

	for _, glue := range p.GlueNodes {
		deform.Glue(fd.GlueData[glue.KindIndex], glue.MeshIndices, glue.Weights,
			fd.ArtMeshData[glue.ArtMeshA], fd.ArtMeshData[glue.ArtMeshB])
	}

	p.resolveDrawOrder(fd)
}
