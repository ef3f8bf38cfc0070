package puppet

import (
	"github.com/phanxgames/marionette/deform"
	"github.com/phanxgames/marionette/mathutil"
)

// BlendShapeConstraint gates a blend-shape applicator: it evaluates to a
// weight from one parameter's current value via a piecewise-linear curve
// over ascending keys.
type BlendShapeConstraint struct {
	ParamIndex int
	Keys       []float64
	Weights    []float64
}

// Process evaluates the constraint's piecewise-linear curve at the
// constraint's own parameter. A curve with fewer than two keys has no range
// to interpolate over and evaluates to 0.
func (c BlendShapeConstraint) Process(params []float64) float64 {
	if len(c.Keys) < 2 {
		return 0
	}
	lo, hi, t := mathutil.Bracket(c.Keys, params[c.ParamIndex])
	return (1-t)*c.Weights[lo] + t*c.Weights[hi]
}

// applicatorKind is the per-entity-type payload an Applicator carries. Each
// kind knows how to read its own keyframe table and where in FrameData to
// write the interpolated result.
type applicatorKind interface {
	apply(a *Applicator, params []float64, fd *FrameData, corners []mathutil.Corner)
}

// Applicator binds D parameter axes to one entity's keyframe table (design
// §4.3). Axis 0 is defined to vary fastest in the table's mixed-radix
// index, so Axes[i].Stride must equal the product of the key counts of all
// axes before it — the builder is responsible for this, not Corners.
type Applicator struct {
	Axes      []mathutil.Axis
	KindIndex uint32
	Blend     []BlendShapeConstraint
	Kind      applicatorKind
}

// Apply runs the applicator's contribution into frame data. corners is a
// reusable scratch buffer; the returned slice (possibly reallocated) should
// be passed back in on the next call.
func (a *Applicator) Apply(params []float64, fd *FrameData, corners []mathutil.Corner) []mathutil.Corner {
	corners = mathutil.Corners(a.Axes, params, corners)
	a.Kind.apply(a, params, fd, corners)
	return corners
}

func applyVec2(dst []mathutil.Vec2, choices [][]mathutil.Vec2, corners []mathutil.Corner, scale float64, zeroFirst bool) {
	if zeroFirst {
		for i := range dst {
			dst[i] = mathutil.Vec2{}
		}
	}
	for _, c := range corners {
		src := choices[c.Index]
		w := c.Weight * scale
		for i, v := range src {
			dst[i] = dst[i].Add(v.Scale(w))
		}
	}
}

func applyScalar(choices []float64, corners []mathutil.Corner) float64 {
	var out float64
	for _, c := range corners {
		out += choices[c.Index] * c.Weight
	}
	return out
}

func applyColor(choices []BlendColor, corners []mathutil.Corner) BlendColor {
	var out BlendColor
	for _, c := range corners {
		src := choices[c.Index]
		out.Multiply = out.Multiply.add(src.Multiply.scale(c.Weight))
		out.Screen = out.Screen.add(src.Screen.scale(c.Weight))
	}
	return out
}

// ArtMeshApplicatorKind writes vertex positions, opacity, draw order and
// (when present) color. When Blend is non-empty on the owning Applicator,
// the result is instead scaled by the minimum of the blend constraints and
// added onto the existing positions, leaving opacity/draw-order/color
// untouched (a blend shape never overwrites those).
type ArtMeshApplicatorKind struct {
	Positions  [][]mathutil.Vec2
	Opacities  []float64
	DrawOrders []float64
	Colors     []BlendColor
}

func (k *ArtMeshApplicatorKind) apply(a *Applicator, params []float64, fd *FrameData, corners []mathutil.Corner) {
	ind := a.KindIndex
	if len(a.Blend) > 0 {
		weight := 1.0
		for _, c := range a.Blend {
			if w := c.Process(params); w < weight {
				weight = w
			}
		}
		applyVec2(fd.ArtMeshData[ind], k.Positions, corners, weight, false)
		return
	}
	applyVec2(fd.ArtMeshData[ind], k.Positions, corners, 1, true)
	fd.ArtMeshOpacities[ind] = applyScalar(k.Opacities, corners)
	fd.ArtMeshDrawOrders[ind] = applyScalar(k.DrawOrders, corners)
	if len(k.Colors) > 0 {
		fd.ArtMeshColors[ind] = applyColor(k.Colors, corners)
	}
}

// WarpDeformerApplicatorKind writes a deformer's control grid, opacity, and
// (when present) color. Blend-shape warp-deformer applicators behave like
// their art-mesh counterpart: additive onto the grid, opacity/color
// untouched.
type WarpDeformerApplicatorKind struct {
	Grids     [][]mathutil.Vec2
	Opacities []float64
	Colors    []BlendColor
}

func (k *WarpDeformerApplicatorKind) apply(a *Applicator, params []float64, fd *FrameData, corners []mathutil.Corner) {
	ind := a.KindIndex
	if len(a.Blend) > 0 {
		weight := 1.0
		for _, c := range a.Blend {
			if w := c.Process(params); w < weight {
				weight = w
			}
		}
		applyVec2(fd.WarpDeformerData[ind], k.Grids, corners, weight, false)
		return
	}
	applyVec2(fd.WarpDeformerData[ind], k.Grids, corners, 1, true)
	fd.WarpDeformerOpacities[ind] = applyScalar(k.Opacities, corners)
	if len(k.Colors) > 0 {
		fd.WarpDeformerColors[ind] = applyColor(k.Colors, corners)
	}
}

// RotationDeformerApplicatorKind writes a deformer's transform (origin,
// scale, angle) and opacity/color. Rotation deformers never carry a blend
// shape in the reference asset format — only ArtMesh and WarpDeformer
// targets do — so this kind always overwrites.
type RotationDeformerApplicatorKind struct {
	Transforms [][4]float64 // origin.x, origin.y, scale, angle
	Opacities  []float64
	Colors     []BlendColor
}

func (k *RotationDeformerApplicatorKind) apply(a *Applicator, params []float64, fd *FrameData, corners []mathutil.Corner) {
	ind := a.KindIndex
	fd.RotationDeformerOpacities[ind] = applyScalar(k.Opacities, corners)

	var res [4]float64
	for _, c := range corners {
		src := k.Transforms[c.Index]
		for i := 0; i < 4; i++ {
			res[i] += src[i] * c.Weight
		}
	}
	fd.RotationDeformerData[ind] = deform.Transform{
		Origin: mathutil.Vec2{X: res[0], Y: res[1]},
		Scale:  res[2],
		Angle:  res[3],
	}
	if len(k.Colors) > 0 {
		fd.RotationDeformerColors[ind] = applyColor(k.Colors, corners)
	}
}

// GlueApplicatorKind does not interpolate at all: it picks the middle
// element of the keyframe intensity array, matching the reference's
// deliberately simplified glue intensity behavior.
type GlueApplicatorKind struct {
	Intensities []float64
}

func (k *GlueApplicatorKind) apply(a *Applicator, _ []float64, fd *FrameData, _ []mathutil.Corner) {
	fd.GlueData[a.KindIndex] = k.Intensities[len(k.Intensities)/2]
}
