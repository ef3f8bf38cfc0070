package moc3

import "github.com/phanxgames/marionette/mathutil"

// Data is a fully materialized MOC3 asset: every section offset table entry
// dereferenced into a plain Go slice. Fields are grouped exactly the way the
// wire format groups them (parallel arrays keyed by a common entity index),
// not reshuffled into one struct per entity — most evaluator/builder code
// touches only one or two columns at a time, and the parallel layout keeps
// those accesses cache-friendly (design note: parallel arrays vs structs).
type Data struct {
	Version Version

	Canvas CanvasInfo

	Parts             Parts
	Deformers         Deformers
	WarpDeformers     WarpDeformers
	RotationDeformers RotationDeformers
	ArtMeshes         ArtMeshes
	Parameters        Parameters

	PartKeyforms           PartKeyforms
	WarpDeformerKeyforms   WarpDeformerKeyforms
	RotationDeformerKeyforms RotationDeformerKeyforms
	ArtMeshKeyforms        ArtMeshKeyforms

	KeyformPositions []mathutil.Vec2

	ParameterBindingIndices ParameterBindingIndices
	KeyformBindings         KeyformBindings
	ParameterBindings       ParameterBindings

	Keys          []float32
	UVs           []mathutil.Vec2
	VertexIndices []uint16

	ArtMeshMasks ArtMeshMasks

	DrawOrderGroups       DrawOrderGroups
	DrawOrderGroupObjects DrawOrderGroupObjects

	Glues        Glues
	GlueInfos    GlueInfos
	GlueKeyforms GlueKeyforms

	// V3_03+
	IsNewDeformer []uint32 // per warp deformer; empty before V3_03

	// V4_02+
	ParameterTypes                         []ParameterType
	BlendShapeParameterBindingSourceStarts  []uint32
	BlendShapeParameterBindingSourceCounts  []uint32
	KeyformMultiplyColors                   KeyformColors
	KeyformScreenColors                     KeyformColors
	WarpDeformerKeyformColorSourceStart      []uint32
	RotationDeformerKeyformColorSourceStart  []uint32
	ArtMeshKeyformColorSourceStart           []uint32
	BlendShapeParameterBindings              BlendShapeParameterBindings
	BlendShapeKeyformBindings                BlendShapeKeyformBindings
	BlendShapeWarpDeformers                  BlendShapes
	BlendShapeArtMeshes                      BlendShapes
	BlendShapeConstraintIndices              []uint32
	BlendShapeConstraints                    BlendShapeConstraints
	BlendShapeConstraintValues               BlendShapeConstraintValues
}

type CanvasInfo struct {
	PixelsPerUnit float32
	XOrigin       float32
	YOrigin       float32
	CanvasWidth   float32
	CanvasHeight  float32
	CanvasFlags   uint8
}

type Parts struct {
	IDs                         []string
	KeyformBindingSourceIndices []uint32
	KeyformSourcesStarts        []uint32
	KeyformSourcesCounts        []uint32
	IsVisible                   []uint32
	IsEnabled                   []uint32
	ParentPartIndices           []int32
}

type Deformers struct {
	IDs                         []string
	KeyformBindingSourceIndices []uint32
	IsVisible                   []uint32
	IsEnabled                   []uint32
	ParentPartIndices           []int32
	ParentDeformerIndices       []int32
	Types                       []uint32 // 0 = warp, 1 = rotation
	SpecificSourceIndices       []uint32
}

type WarpDeformers struct {
	KeyformBindingSourceIndices []uint32
	KeyformSourcesStarts        []uint32
	KeyformSourcesCounts        []uint32
	VertexCounts                []uint32
	Rows                        []uint32
	Columns                     []uint32
}

type RotationDeformers struct {
	KeyformBindingSourceIndices []uint32
	KeyformSourcesStarts        []uint32
	KeyformSourcesCounts        []uint32
	BaseAngles                  []float32
}

type ArtMeshes struct {
	IDs                         []string
	KeyformBindingSourceIndices []uint32
	KeyformSourcesStarts        []uint32
	KeyformSourcesCounts        []uint32
	IsVisible                   []uint32
	IsEnabled                   []uint32
	ParentPartIndices           []int32
	ParentDeformerIndices       []int32
	TextureNums                 []uint32
	Flags                       []ArtMeshFlags
	VertexCounts                []uint32
	UVSourcesStarts             []uint32
	VertexIndexSourcesStarts    []uint32
	VertexIndexSourcesCounts    []uint32
	MaskSourcesStarts           []uint32
	MaskSourcesCounts           []uint32
}

type Parameters struct {
	IDs                            []string
	MaxValues                      []float32
	MinValues                      []float32
	DefaultValues                  []float32
	IsRepeat                       []uint32
	DecimalPlaces                  []uint32
	BindingSourcesStarts           []uint32
	BindingSourcesCounts           []uint32
}

type PartKeyforms struct {
	DrawOrders []float32
}

type WarpDeformerKeyforms struct {
	Opacities                    []float32
	KeyformPositionSourcesStarts []uint32
}

type RotationDeformerKeyforms struct {
	Opacities []float32
	Angles    []float32
	XOrigin   []float32
	YOrigin   []float32
	Scales    []float32
	IsReflectX []uint32
	IsReflectY []uint32
}

type ArtMeshKeyforms struct {
	Opacities                    []float32
	DrawOrders                   []float32
	KeyformPositionSourcesStarts []uint32
}

type ParameterBindingIndices struct {
	BindingSourcesIndices []uint32
}

type KeyformBindings struct {
	ParameterBindingIndexSourcesStarts []uint32
	ParameterBindingIndexSourcesCounts []uint32
}

type ParameterBindings struct {
	KeysSourcesStarts []uint32
	KeysSourcesCounts []uint32
}

type ArtMeshMasks struct {
	ArtMeshSourceIndices []uint32
}

type DrawOrderGroups struct {
	ObjectSourcesStarts      []uint32
	ObjectSourcesCounts      []uint32
	ObjectSourcesTotalCounts []uint32
	MaximumDrawOrders        []uint32
	MinimumDrawOrders        []uint32
}

type DrawOrderGroupObjects struct {
	Types       []DrawOrderObjectType
	Indices     []uint32
	SelfIndices []int32
}

type Glues struct {
	IDs                         []string
	KeyformBindingSourceIndices []uint32
	KeyformSourcesStarts        []uint32
	KeyformSourcesCounts        []uint32
	ArtMeshIndicesA             []uint32
	ArtMeshIndicesB             []uint32
	GlueInfoSourcesStarts       []uint32
	GlueInfoSourcesCounts       []uint32
}

type GlueInfos struct {
	Weights       []float32
	VertexIndices []uint16
}

type GlueKeyforms struct {
	Intensities []float32
}

type KeyformColors struct {
	Red   []float32
	Green []float32
	Blue  []float32
}

type BlendShapeParameterBindings struct {
	KeysSourcesStarts []uint32
	KeysSourcesCounts []uint32
	BaseKeyIndices    []uint32
}

type BlendShapeKeyformBindings struct {
	BlendShapeParameterBindingSourcesIndices []uint32
	KeyformSourcesBlendShapeStarts           []uint32
	KeyformSourcesBlendShapeCounts           []uint32
	ConstraintIndexSourcesStarts             []uint32
	ConstraintIndexSourcesCounts             []uint32
}

type BlendShapes struct {
	TargetIndices                           []uint32
	KeyformBindingSourcesStarts              []uint32
	KeyformBindingSourcesCounts              []uint32
}

type BlendShapeConstraints struct {
	ParameterIndices                 []uint32
	ConstraintValueSourcesStarts     []uint32
	ConstraintValueSourcesCounts     []uint32
}

type BlendShapeConstraintValues struct {
	Keys    []float32
	Weights []float32
}
