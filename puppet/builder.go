package puppet

import (
	"math"

	"github.com/phanxgames/marionette/mathutil"
	"github.com/phanxgames/marionette/moc3"
)

// ParamInfo is the flattened parameter table a puppet clamps against and
// reports defaults from.
type ParamInfo struct {
	IDs      []string
	Mins     []float64
	Maxes    []float64
	Defaults []float64
	IsRepeat []bool
	Decimals []uint32
	Types    []moc3.ParameterType
}

// Puppet is a fully built, immutable deformer forest plus the art-mesh,
// glue, and draw-order data an asset instance needs. It holds no per-frame
// state itself (design note: "forest + arena") — any number of FrameData
// values, one per concurrently animated instance, can be driven from a
// single shared *Puppet.
type Puppet struct {
	Nodes     []DeformerNode
	Roots     []int
	GlueNodes []GlueNode

	Params      ParamInfo
	Applicators []Applicator

	ArtMeshCount   uint32
	ArtMeshUVs     [][]mathutil.Vec2
	ArtMeshIndices [][]uint16
	VertexCounts   []uint32

	WarpDeformerCount     uint32
	RotationDeformerCount uint32
	DeformerCount         uint32

	warpVertexCounts []uint32

	DrawOrderNodes       []drawOrderNode
	DrawOrderRoots       []int
	MaxDrawOrderChildren uint32
}

func (p *Puppet) warpDeformerVertexCounts() []uint32 { return p.warpVertexCounts }

func toFloat64s(src []float32) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func copyVec2(src []mathutil.Vec2) []mathutil.Vec2 {
	out := make([]mathutil.Vec2, len(src))
	copy(out, src)
	return out
}

func copyUint16(src []uint16) []uint16 {
	out := make([]uint16, len(src))
	copy(out, src)
	return out
}

func buildParameterBindingsToParameter(d *moc3.Data) []int {
	out := make([]int, len(d.ParameterBindings.KeysSourcesStarts))
	for i := range d.Parameters.IDs {
		start := d.Parameters.BindingSourcesStarts[i]
		count := d.Parameters.BindingSourcesCounts[i]
		for a := start; a < start+count; a++ {
			out[a] = i
		}
	}
	return out
}

func buildBlendShapeParameterBindingsToParameter(d *moc3.Data) []int {
	if len(d.BlendShapeParameterBindings.KeysSourcesStarts) == 0 {
		return nil
	}
	out := make([]int, len(d.BlendShapeParameterBindings.KeysSourcesStarts))
	for i := range d.Parameters.IDs {
		start := d.BlendShapeParameterBindingSourceStarts[i]
		count := d.BlendShapeParameterBindingSourceCounts[i]
		for a := start; a < start+count; a++ {
			out[a] = i
		}
	}
	return out
}

// collectAxes builds the generalized (uncapped) axis list for one keyform
// binding. Axis 0 is the fastest-varying dimension of the bound keyframe
// table, matching the order the reference's x/y/z bindings are read in; its
// Stride accumulates as the product of the key counts of every earlier axis
// so Corners' mixed-radix indexing lines up with that table's layout.
func collectAxes(d *moc3.Data, paramBindingsToParam []int, bindingIndex uint32) []mathutil.Axis {
	count := d.KeyformBindings.ParameterBindingIndexSourcesCounts[bindingIndex]
	start := d.KeyformBindings.ParameterBindingIndexSourcesStarts[bindingIndex]

	axes := make([]mathutil.Axis, count)
	stride := 1
	for i := uint32(0); i < count; i++ {
		ind := d.ParameterBindingIndices.BindingSourcesIndices[start+i]
		keyStart := d.ParameterBindings.KeysSourcesStarts[ind]
		keyCount := d.ParameterBindings.KeysSourcesCounts[ind]
		axes[i] = mathutil.Axis{
			Keys:       toFloat64s(d.Keys[keyStart : keyStart+keyCount]),
			ParamIndex: paramBindingsToParam[ind],
			Stride:     stride,
		}
		stride *= int(keyCount)
	}
	return axes
}

func collectColors(multiply, screen moc3.KeyformColors, start uint32, count int) []BlendColor {
	if multiply.Red == nil {
		return nil
	}
	out := make([]BlendColor, count)
	for i := 0; i < count; i++ {
		out[i] = BlendColor{
			Multiply: vec3{X: float64(multiply.Red[start+uint32(i)]), Y: float64(multiply.Green[start+uint32(i)]), Z: float64(multiply.Blue[start+uint32(i)])},
			Screen:   vec3{X: float64(screen.Red[start+uint32(i)]), Y: float64(screen.Green[start+uint32(i)]), Z: float64(screen.Blue[start+uint32(i)])},
		}
	}
	return out
}

func collectBlendShapeConstraints(d *moc3.Data, start, count uint32) []BlendShapeConstraint {
	ret := make([]BlendShapeConstraint, count)
	for i := uint32(0); i < count; i++ {
		index := d.BlendShapeConstraintIndices[start+i]
		paramIndex := d.BlendShapeConstraints.ParameterIndices[index]
		valueStart := d.BlendShapeConstraints.ConstraintValueSourcesStarts[index]
		valueCount := d.BlendShapeConstraints.ConstraintValueSourcesCounts[index]
		ret[i] = BlendShapeConstraint{
			ParamIndex: int(paramIndex),
			Keys:       toFloat64s(d.BlendShapeConstraintValues.Keys[valueStart : valueStart+valueCount]),
			Weights:    toFloat64s(d.BlendShapeConstraintValues.Weights[valueStart : valueStart+valueCount]),
		}
	}
	return ret
}

type builder struct {
	d   *moc3.Data
	p2p []int // parameter_bindings -> parameter
	b2p []int // blend_shape_parameter_bindings -> parameter

	nodes              []DeformerNode
	roots              []int
	deformerToNodeIdx  []int
	applicators        []Applicator
}

func (b *builder) appendNode(n DeformerNode, parentDeformerIndex int32) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, n)
	if parentDeformerIndex != -1 {
		parentIdx := b.deformerToNodeIdx[parentDeformerIndex]
		b.nodes[parentIdx].children = append(b.nodes[parentIdx].children, idx)
	} else {
		b.roots = append(b.roots, idx)
	}
	return idx
}

// FromMOC3 translates a fully parsed MOC3 asset into a Puppet: the deformer
// forest, art meshes, glue bindings, blend shapes, and draw-order forest,
// plus every applicator that drives them.
func FromMOC3(d *moc3.Data) (*Puppet, error) {
	b := &builder{
		d:                 d,
		p2p:               buildParameterBindingsToParameter(d),
		b2p:               buildBlendShapeParameterBindingsToParameter(d),
		deformerToNodeIdx: make([]int, len(d.Deformers.IDs)),
	}
	for i := range b.deformerToNodeIdx {
		b.deformerToNodeIdx[i] = -1
	}

	warpVertexCounts := make([]uint32, len(d.WarpDeformers.Rows))

	for i := range d.Deformers.IDs {
		specific := d.Deformers.SpecificSourceIndices[i]
		parentDeformerIndex := d.Deformers.ParentDeformerIndices[i]

		switch d.Deformers.Types[i] {
		case 0: // warp
			vertexes := d.WarpDeformers.VertexCounts[specific]
			warpVertexCounts[specific] = vertexes

			isNew := false
			if len(d.IsNewDeformer) > 0 {
				isNew = d.IsNewDeformer[specific] != 0
			}

			nodeIdx := b.appendNode(DeformerNode{
				ID:              d.Deformers.IDs[i],
				Kind:            KindWarpDeformer,
				BroadIndex:      uint32(i),
				SpecificIndex:   specific,
				ParentPartIndex: d.Deformers.ParentPartIndices[i],
				IsEnabled:       d.Deformers.IsEnabled[i] != 0,
				Rows:            int(d.WarpDeformers.Rows[specific]),
				Columns:         int(d.WarpDeformers.Columns[specific]),
				IsNewDeformer:   isNew,
			}, parentDeformerIndex)
			b.deformerToNodeIdx[i] = nodeIdx

			bindingIndex := d.WarpDeformers.KeyformBindingSourceIndices[specific]
			start := d.WarpDeformers.KeyformSourcesStarts[specific]
			count := d.WarpDeformers.KeyformSourcesCounts[specific]

			grids := make([][]mathutil.Vec2, count)
			for k := uint32(0); k < count; k++ {
				posStart := d.WarpDeformerKeyforms.KeyformPositionSourcesStarts[start+k] / 2
				grids[k] = copyVec2(d.KeyformPositions[posStart : posStart+vertexes])
			}
			opacities := toFloat64s(d.WarpDeformerKeyforms.Opacities[start : start+count])

			var colors []BlendColor
			if len(d.WarpDeformerKeyformColorSourceStart) > 0 {
				colorStart := d.WarpDeformerKeyformColorSourceStart[specific]
				colors = collectColors(d.KeyformMultiplyColors, d.KeyformScreenColors, colorStart, int(count))
			}

			b.applicators = append(b.applicators, Applicator{
				Axes:      collectAxes(d, b.p2p, bindingIndex),
				KindIndex: specific,
				Kind:      &WarpDeformerApplicatorKind{Grids: grids, Opacities: opacities, Colors: colors},
			})

		case 1: // rotation
			baseAngle := float64(d.RotationDeformers.BaseAngles[specific])

			nodeIdx := b.appendNode(DeformerNode{
				ID:              d.Deformers.IDs[i],
				Kind:            KindRotationDeformer,
				BroadIndex:      uint32(i),
				SpecificIndex:   specific,
				ParentPartIndex: d.Deformers.ParentPartIndices[i],
				IsEnabled:       d.Deformers.IsEnabled[i] != 0,
				BaseAngle:       baseAngle,
			}, parentDeformerIndex)
			b.deformerToNodeIdx[i] = nodeIdx

			bindingIndex := d.RotationDeformers.KeyformBindingSourceIndices[specific]
			start := d.RotationDeformers.KeyformSourcesStarts[specific]
			count := d.RotationDeformers.KeyformSourcesCounts[specific]

			transforms := make([][4]float64, count)
			for k := uint32(0); k < count; k++ {
				idx := start + k
				transforms[k] = [4]float64{
					float64(d.RotationDeformerKeyforms.XOrigin[idx]),
					float64(d.RotationDeformerKeyforms.YOrigin[idx]),
					float64(d.RotationDeformerKeyforms.Scales[idx]),
					float64(d.RotationDeformerKeyforms.Angles[idx]),
				}
			}
			opacities := toFloat64s(d.RotationDeformerKeyforms.Opacities[start : start+count])

			var colors []BlendColor
			if len(d.RotationDeformerKeyformColorSourceStart) > 0 {
				colorStart := d.RotationDeformerKeyformColorSourceStart[specific]
				colors = collectColors(d.KeyformMultiplyColors, d.KeyformScreenColors, colorStart, int(count))
			}

			b.applicators = append(b.applicators, Applicator{
				Axes:      collectAxes(d, b.p2p, bindingIndex),
				KindIndex: specific,
				Kind:      &RotationDeformerApplicatorKind{Transforms: transforms, Opacities: opacities, Colors: colors},
			})
		}
	}

	artMeshUVs := make([][]mathutil.Vec2, len(d.ArtMeshes.IDs))
	artMeshIndices := make([][]uint16, len(d.ArtMeshes.IDs))

	for i := range d.ArtMeshes.IDs {
		uvStart := d.ArtMeshes.UVSourcesStarts[i] / 2
		vertexes := d.ArtMeshes.VertexCounts[i]
		indexStart := d.ArtMeshes.VertexIndexSourcesStarts[i]
		indexCount := d.ArtMeshes.VertexIndexSourcesCounts[i]

		artMeshUVs[i] = copyVec2(d.UVs[uvStart : uvStart+vertexes])
		artMeshIndices[i] = copyUint16(d.VertexIndices[indexStart : indexStart+indexCount])

		bindingIndex := d.ArtMeshes.KeyformBindingSourceIndices[i]
		start := d.ArtMeshes.KeyformSourcesStarts[i]
		count := d.ArtMeshes.KeyformSourcesCounts[i]

		positions := make([][]mathutil.Vec2, count)
		for k := uint32(0); k < count; k++ {
			posStart := d.ArtMeshKeyforms.KeyformPositionSourcesStarts[start+k] / 2
			positions[k] = copyVec2(d.KeyformPositions[posStart : posStart+vertexes])
		}
		opacities := toFloat64s(d.ArtMeshKeyforms.Opacities[start : start+count])
		drawOrders := toFloat64s(d.ArtMeshKeyforms.DrawOrders[start : start+count])

		var colors []BlendColor
		if len(d.ArtMeshKeyformColorSourceStart) > 0 {
			colorStart := d.ArtMeshKeyformColorSourceStart[i]
			colors = collectColors(d.KeyformMultiplyColors, d.KeyformScreenColors, colorStart, int(count))
		}

		b.appendNode(DeformerNode{
			ID:              d.ArtMeshes.IDs[i],
			Kind:            KindArtMesh,
			BroadIndex:      uint32(i),
			ParentPartIndex: d.ArtMeshes.ParentPartIndices[i],
			IsEnabled:       d.ArtMeshes.IsEnabled[i] != 0,
		}, d.ArtMeshes.ParentDeformerIndices[i])

		b.applicators = append(b.applicators, Applicator{
			Axes:      collectAxes(d, b.p2p, bindingIndex),
			KindIndex: uint32(i),
			Kind:      &ArtMeshApplicatorKind{Positions: positions, Opacities: opacities, DrawOrders: drawOrders, Colors: colors},
		})
	}

	glueNodes := make([]GlueNode, len(d.Glues.IDs))
	for i := range d.Glues.IDs {
		glueInfoStart := d.Glues.GlueInfoSourcesStarts[i]
		glueInfoCount := d.Glues.GlueInfoSourcesCounts[i]

		bindingIndex := d.Glues.KeyformBindingSourceIndices[i]
		start := d.Glues.KeyformSourcesStarts[i]
		count := d.Glues.KeyformSourcesCounts[i]

		glueNodes[i] = GlueNode{
			ID:          d.Glues.IDs[i],
			KindIndex:   uint32(i),
			ArtMeshA:    d.Glues.ArtMeshIndicesA[i],
			ArtMeshB:    d.Glues.ArtMeshIndicesB[i],
			MeshIndices: copyUint16(d.GlueInfos.VertexIndices[glueInfoStart : glueInfoStart+glueInfoCount]),
			Weights:     toFloat64s(d.GlueInfos.Weights[glueInfoStart : glueInfoStart+glueInfoCount]),
		}

		b.applicators = append(b.applicators, Applicator{
			Axes:      collectAxes(d, b.p2p, bindingIndex),
			KindIndex: uint32(i),
			Kind:      &GlueApplicatorKind{Intensities: toFloat64s(d.GlueKeyforms.Intensities[start : start+count])},
		})
	}

	collectBlendShapes(d, b)

	drawOrderNodes, drawOrderRoots, maxChildren := buildDrawOrderForest(d)

	params := ParamInfo{
		IDs:      append([]string(nil), d.Parameters.IDs...),
		Mins:     toFloat64s(d.Parameters.MinValues),
		Maxes:    toFloat64s(d.Parameters.MaxValues),
		Defaults: toFloat64s(d.Parameters.DefaultValues),
		IsRepeat: make([]bool, len(d.Parameters.IsRepeat)),
		Decimals: append([]uint32(nil), d.Parameters.DecimalPlaces...),
	}
	for i, v := range d.Parameters.IsRepeat {
		params.IsRepeat[i] = v != 0
	}
	if len(d.ParameterTypes) > 0 {
		params.Types = append([]moc3.ParameterType(nil), d.ParameterTypes...)
	} else {
		params.Types = make([]moc3.ParameterType, len(d.Parameters.IDs))
	}

	return &Puppet{
		Nodes:     b.nodes,
		Roots:     b.roots,
		GlueNodes: glueNodes,

		Params:      params,
		Applicators: b.applicators,

		ArtMeshCount:   uint32(len(d.ArtMeshes.IDs)),
		ArtMeshUVs:     artMeshUVs,
		ArtMeshIndices: artMeshIndices,
		VertexCounts:   append([]uint32(nil), d.ArtMeshes.VertexCounts...),

		WarpDeformerCount:     uint32(len(d.WarpDeformers.Rows)),
		RotationDeformerCount: uint32(len(d.RotationDeformers.BaseAngles)),
		DeformerCount:         uint32(len(d.Deformers.IDs)),
		warpVertexCounts:      warpVertexCounts,

		DrawOrderNodes:       drawOrderNodes,
		DrawOrderRoots:       drawOrderRoots,
		MaxDrawOrderChildren: maxChildren,
	}, nil
}

// collectBlendShapes appends blend-shape applicators after every normal
// applicator has already been collected, matching the reference's build
// order (normal applicators are what a puppet looks like at rest; blend
// shapes are corrective offsets layered on afterward).
func collectBlendShapes(d *moc3.Data, b *builder) {
	if d.Version < moc3.V4_02 || b.b2p == nil {
		return
	}

	for i := range d.BlendShapeArtMeshes.TargetIndices {
		targetIndex := d.BlendShapeArtMeshes.TargetIndices[i]
		vertexes := d.ArtMeshes.VertexCounts[targetIndex]
		start := d.BlendShapeArtMeshes.KeyformBindingSourcesStarts[i]
		count := d.BlendShapeArtMeshes.KeyformBindingSourcesCounts[i]

		for a := start; a < start+count; a++ {
			paramBindingIndex := d.BlendShapeKeyformBindings.BlendShapeParameterBindingSourcesIndices[a]
			keyformStart := d.BlendShapeKeyformBindings.KeyformSourcesBlendShapeStarts[a]
			keyformCount := d.BlendShapeKeyformBindings.KeyformSourcesBlendShapeCounts[a]

			positions := make([][]mathutil.Vec2, keyformCount)
			for k := uint32(0); k < keyformCount; k++ {
				posStart := d.ArtMeshKeyforms.KeyformPositionSourcesStarts[keyformStart+k] / 2
				positions[k] = copyVec2(d.KeyformPositions[posStart : posStart+vertexes])
			}

			keyStart := d.BlendShapeParameterBindings.KeysSourcesStarts[paramBindingIndex]
			keyCount := d.BlendShapeParameterBindings.KeysSourcesCounts[paramBindingIndex]
			axes := []mathutil.Axis{{
				Keys:       toFloat64s(d.Keys[keyStart : keyStart+keyCount]),
				ParamIndex: b.b2p[paramBindingIndex],
				Stride:     1,
			}}

			constraintStart := d.BlendShapeKeyformBindings.ConstraintIndexSourcesStarts[a]
			constraintCount := d.BlendShapeKeyformBindings.ConstraintIndexSourcesCounts[a]

			b.applicators = append(b.applicators, Applicator{
				Axes:      axes,
				KindIndex: targetIndex,
				Blend:     collectBlendShapeConstraints(d, constraintStart, constraintCount),
				Kind:      &ArtMeshApplicatorKind{Positions: positions},
			})
		}
	}

	for i := range d.BlendShapeWarpDeformers.TargetIndices {
		targetIndex := d.BlendShapeWarpDeformers.TargetIndices[i]
		vertexes := d.WarpDeformers.VertexCounts[targetIndex]
		start := d.BlendShapeWarpDeformers.KeyformBindingSourcesStarts[i]
		count := d.BlendShapeWarpDeformers.KeyformBindingSourcesCounts[i]

		for a := start; a < start+count; a++ {
			paramBindingIndex := d.BlendShapeKeyformBindings.BlendShapeParameterBindingSourcesIndices[a]
			keyformStart := d.BlendShapeKeyformBindings.KeyformSourcesBlendShapeStarts[a]
			keyformCount := d.BlendShapeKeyformBindings.KeyformSourcesBlendShapeCounts[a]

			grids := make([][]mathutil.Vec2, keyformCount)
			for k := uint32(0); k < keyformCount; k++ {
				posStart := d.WarpDeformerKeyforms.KeyformPositionSourcesStarts[keyformStart+k] / 2
				grids[k] = copyVec2(d.KeyformPositions[posStart : posStart+vertexes])
			}

			keyStart := d.BlendShapeParameterBindings.KeysSourcesStarts[paramBindingIndex]
			keyCount := d.BlendShapeParameterBindings.KeysSourcesCounts[paramBindingIndex]
			axes := []mathutil.Axis{{
				Keys:       toFloat64s(d.Keys[keyStart : keyStart+keyCount]),
				ParamIndex: b.b2p[paramBindingIndex],
				Stride:     1,
			}}

			constraintStart := d.BlendShapeKeyformBindings.ConstraintIndexSourcesStarts[a]
			constraintCount := d.BlendShapeKeyformBindings.ConstraintIndexSourcesCounts[a]

			b.applicators = append(b.applicators, Applicator{
				Axes:      axes,
				KindIndex: targetIndex,
				Blend:     collectBlendShapeConstraints(d, constraintStart, constraintCount),
				Kind:      &WarpDeformerApplicatorKind{Grids: grids},
			})
		}
	}
}

// buildDrawOrderForest translates the flat DrawOrderGroups/DrawOrderGroupObjects
// tables into the recursive forest resolveDrawOrder walks. draw order group 0
// is always the asset's top-level group; a synthetic Part root with the
// sentinel index is seeded ahead of it so resolveDrawOrder always has
// something to recurse from even for an asset with zero groups.
//
// max_draw_order_children is computed here (the widest single group),
// following the field's purpose as a sizing diagnostic rather than the
// constant the reference happens to hardcode in its own final struct
// literal.
func buildDrawOrderForest(d *moc3.Data) ([]drawOrderNode, []int, uint32) {
	nodes := []drawOrderNode{{kind: drawOrderPart, index: math.MaxUint32}}
	rootCount := len(d.DrawOrderGroups.ObjectSourcesStarts)
	if rootCount == 0 {
		rootCount = 1
	}
	roots := make([]int, rootCount)
	roots[0] = 0

	var maxChildren uint32
	for i := range d.DrawOrderGroups.ObjectSourcesStarts {
		start := d.DrawOrderGroups.ObjectSourcesStarts[i]
		count := d.DrawOrderGroups.ObjectSourcesCounts[i]
		if count > maxChildren {
			maxChildren = count
		}

		for a := start; a < start+count; a++ {
			typeIndex := d.DrawOrderGroupObjects.Indices[a]
			kind := drawOrderPart
			if d.DrawOrderGroupObjects.Types[a] == moc3.DrawOrderArtMesh {
				kind = drawOrderArtMesh
			}

			childIdx := len(nodes)
			nodes = append(nodes, drawOrderNode{kind: kind, index: typeIndex})
			nodes[roots[i]].children = append(nodes[roots[i]].children, childIdx)

			if selfIndex := d.DrawOrderGroupObjects.SelfIndices[a]; selfIndex != -1 {
				roots[selfIndex] = childIdx
			}
		}
	}

	return nodes, roots, maxChildren
}
