package moc3

// CountInfoTable gives the element count of every parallel array the
// section offset table points at. It is itself stored behind a pointer
// (the first field of the section offset table) rather than inline.
type CountInfoTable struct {
	Parts                  uint32
	Deformers              uint32
	WarpDeformers          uint32
	RotationDeformers      uint32
	ArtMeshes              uint32
	Parameters             uint32
	PartKeyforms           uint32
	WarpDeformerKeyforms   uint32
	RotationDeformerKeyforms uint32
	ArtMeshKeyforms        uint32
	KeyformPositions       uint32
	ParameterBindingIndices uint32
	KeyformBindings        uint32
	ParameterBindings      uint32
	Keys                   uint32
	UVs                    uint32
	VertexIndices          uint32
	ArtMeshMasks           uint32
	DrawOrderGroups        uint32
	DrawOrderGroupObjects  uint32
	Glues                  uint32
	GlueInfos              uint32
	GlueKeyforms           uint32

	// Present only for Version >= V4_02.
	KeyformMultiplyColors           uint32
	KeyformScreenColors             uint32
	BlendShapeParameterBindings     uint32
	BlendShapeKeyformBindings       uint32
	BlendShapeWarpDeformers         uint32
	BlendShapeArtMeshes             uint32
	BlendShapeConstraintIndices     uint32
	BlendShapeConstraints           uint32
	BlendShapeConstraintValues      uint32
}
