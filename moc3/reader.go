package moc3

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/phanxgames/marionette/mathutil"
)

// ParseError reports any malformed MOC3 input: bad magic, unknown version,
// truncated file, or a section offset/length that falls outside the file.
// No partial *Data is ever returned alongside one.
type ParseError struct {
	Offset int64
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("marionette/moc3: parse error at offset %d: %s: %v", e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("marionette/moc3: parse error at offset %d: %s", e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// src wraps the bounds-checked primitive reads the parser builds everything
// else out of, the same way gazed-vu's model loader centers on a single
// bytes.Reader with a .Seek-then-binary.Read idiom, adapted here to
// an io.ReaderAt so every section can be dereferenced independently of
// read order.
type src struct {
	r    io.ReaderAt
	size int64
}

func (s *src) read(offset int64, buf []byte) error {
	if offset < 0 || offset+int64(len(buf)) > s.size {
		return &ParseError{Offset: offset, Msg: "section extends past end of file"}
	}
	n, err := s.r.ReadAt(buf, offset)
	if err != nil && !(err == io.EOF && n == len(buf)) {
		return &ParseError{Offset: offset, Msg: "short read", Err: err}
	}
	return nil
}

func (s *src) u32At(offset int64) (uint32, error) {
	var buf [4]byte
	if err := s.read(offset, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (s *src) u32s(offset int64, count uint32) ([]uint32, error) {
	out := make([]uint32, count)
	buf := make([]byte, 4*int64(count))
	if err := s.read(offset, buf); err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return out, nil
}

func (s *src) i32s(offset int64, count uint32) ([]int32, error) {
	raw, err := s.u32s(offset, count)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(raw))
	for i, v := range raw {
		out[i] = int32(v)
	}
	return out, nil
}

func (s *src) f32s(offset int64, count uint32) ([]float32, error) {
	raw, err := s.u32s(offset, count)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(raw))
	for i, v := range raw {
		out[i] = math.Float32frombits(v)
	}
	return out, nil
}

func (s *src) u16s(offset int64, count uint32) ([]uint16, error) {
	out := make([]uint16, count)
	buf := make([]byte, 2*int64(count))
	if err := s.read(offset, buf); err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(buf[i*2:])
	}
	return out, nil
}

func (s *src) u8s(offset int64, count uint32) ([]uint8, error) {
	out := make([]uint8, count)
	if err := s.read(offset, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *src) vec2s(offset int64, floatCount uint32) ([]mathutil.Vec2, error) {
	flat, err := s.f32s(offset, floatCount)
	if err != nil {
		return nil, err
	}
	out := make([]mathutil.Vec2, len(flat)/2)
	for i := range out {
		out[i] = mathutil.Vec2{X: float64(flat[2*i]), Y: float64(flat[2*i+1])}
	}
	return out, nil
}

func (s *src) ids(offset int64, count uint32) ([]string, error) {
	const recordSize = 64
	out := make([]string, count)
	for i := uint32(0); i < count; i++ {
		buf := make([]byte, recordSize)
		if err := s.read(offset+int64(i)*recordSize, buf); err != nil {
			return nil, err
		}
		n := 0
		for n < recordSize && buf[n] != 0 {
			n++
		}
		if n == recordSize {
			return nil, &ParseError{Offset: offset + int64(i)*recordSize, Msg: "id record not null-terminated within 64 bytes"}
		}
		out[i] = string(buf[:n])
	}
	return out, nil
}

func (s *src) flags(offset int64, count uint32) ([]ArtMeshFlags, error) {
	raw, err := s.u8s(offset, count)
	if err != nil {
		return nil, err
	}
	out := make([]ArtMeshFlags, len(raw))
	for i, b := range raw {
		out[i] = decodeArtMeshFlags(b)
	}
	return out, nil
}

// cursor reads the section offset table's own fixed sequence of u32 fields
// (both real offsets and the occasional reserved/unused value) in file
// order, starting right after the header. This mirrors how the reference
// format actually lays the table out: a flat run of u32s, version-gated at
// the tail, with no padding between fields.
type cursor struct {
	s   *src
	pos int64
}

func (c *cursor) next() (uint32, error) {
	v, err := c.s.u32At(c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += 4
	return v, nil
}

func (c *cursor) skip(n int) error {
	for i := 0; i < n; i++ {
		if _, err := c.next(); err != nil {
			return err
		}
	}
	return nil
}

// group reads n consecutive pointer fields and returns them as a slice,
// for the common case of a *Offsets struct made entirely of FilePtr32s.
func (c *cursor) group(n int) ([]uint32, error) {
	out := make([]uint32, n)
	for i := range out {
		v, err := c.next()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// offsets is the fully dereferenced-pointer section offset table: every
// FilePtr32 in the wire format resolved to a plain absolute file offset,
// grouped exactly the way the format's own *Offsets structs group them.
// Reserved/unused u32 fields interleaved in those structs are consumed by
// the cursor but never appear here.
type offsets struct {
	countInfo, canvasInfo uint32

	parts             []uint32 // 7: ids..parent_part_indices
	deformers         []uint32 // 8
	warpDeformers     []uint32 // 6
	rotationDeformers []uint32 // 4
	artMeshes         []uint32 // 16
	parameters        []uint32 // 8

	partKeyforms           []uint32 // 1
	warpDeformerKeyforms   []uint32 // 2
	rotationDeformerKeyforms []uint32 // 7
	artMeshKeyforms        []uint32 // 3

	keyformPositions []uint32 // 1

	parameterBindingIndices []uint32 // 1
	keyformBindings         []uint32 // 2
	parameterBindings       []uint32 // 2

	keys          []uint32 // 1
	uvs           []uint32 // 1
	vertexIndices []uint32 // 1

	artMeshMasks []uint32 // 1

	drawOrderGroups       []uint32 // 5
	drawOrderGroupObjects []uint32 // 3

	glues        []uint32 // 8
	glueInfos    []uint32 // 2
	glueKeyforms []uint32 // 1

	// V3_03+
	warpDeformerKeyformsV303 []uint32 // 1

	// V4_02+
	warpDeformerKeyformsV402     []uint32 // 1
	rotationDeformerKeyformsV402 []uint32 // 1
	artMeshKeyformsV402          []uint32 // 1
	keyformMultiplyColors        []uint32 // 3
	keyformScreenColors          []uint32 // 3
	parametersV402               []uint32 // 3
	blendShapeParameterBindings  []uint32 // 3
	blendShapeKeyformBindings    []uint32 // 5
	blendShapeWarpDeformers      []uint32 // 3
	blendShapeArtMeshes          []uint32 // 3
	blendShapeConstraintIndices  []uint32 // 1
	blendShapeConstraints        []uint32 // 3
	blendShapeConstraintValues   []uint32 // 2
}

// readOffsets walks the section offset table in its exact wire-format
// field order (data.rs's SectionOffsetTable), consuming and discarding
// the occasional reserved/unused u32 interleaved with the pointers.
func readOffsets(c *cursor, version Version) (*offsets, error) {
	var o offsets
	var err error

	if o.countInfo, err = c.next(); err != nil {
		return nil, err
	}
	if o.canvasInfo, err = c.next(); err != nil {
		return nil, err
	}

	if err := c.skip(1); err != nil { // PartOffsets.data
		return nil, err
	}
	if o.parts, err = c.group(7); err != nil {
		return nil, err
	}
	if err := c.skip(1); err != nil { // DeformerOffsets.data
		return nil, err
	}
	if o.deformers, err = c.group(8); err != nil {
		return nil, err
	}
	if o.warpDeformers, err = c.group(6); err != nil {
		return nil, err
	}
	if o.rotationDeformers, err = c.group(4); err != nil {
		return nil, err
	}
	if err := c.skip(4); err != nil { // ArtMeshOffsets.runtime_ignored
		return nil, err
	}
	if o.artMeshes, err = c.group(16); err != nil {
		return nil, err
	}
	if err := c.skip(1); err != nil { // ParameterOffsets.unused
		return nil, err
	}
	if o.parameters, err = c.group(8); err != nil {
		return nil, err
	}
	if o.partKeyforms, err = c.group(1); err != nil {
		return nil, err
	}
	if o.warpDeformerKeyforms, err = c.group(2); err != nil {
		return nil, err
	}
	if o.rotationDeformerKeyforms, err = c.group(7); err != nil {
		return nil, err
	}
	if o.artMeshKeyforms, err = c.group(3); err != nil {
		return nil, err
	}
	if o.keyformPositions, err = c.group(1); err != nil {
		return nil, err
	}
	if o.parameterBindingIndices, err = c.group(1); err != nil {
		return nil, err
	}
	if o.keyformBindings, err = c.group(2); err != nil {
		return nil, err
	}
	if o.parameterBindings, err = c.group(2); err != nil {
		return nil, err
	}
	if o.keys, err = c.group(1); err != nil {
		return nil, err
	}
	if o.uvs, err = c.group(1); err != nil {
		return nil, err
	}
	if o.vertexIndices, err = c.group(1); err != nil {
		return nil, err
	}
	if o.artMeshMasks, err = c.group(1); err != nil {
		return nil, err
	}
	if o.drawOrderGroups, err = c.group(5); err != nil {
		return nil, err
	}
	if o.drawOrderGroupObjects, err = c.group(3); err != nil {
		return nil, err
	}
	if err := c.skip(1); err != nil { // GlueOffsets.unused
		return nil, err
	}
	if o.glues, err = c.group(8); err != nil {
		return nil, err
	}
	if o.glueInfos, err = c.group(2); err != nil {
		return nil, err
	}
	if o.glueKeyforms, err = c.group(1); err != nil {
		return nil, err
	}

	if version >= V3_03 {
		if o.warpDeformerKeyformsV303, err = c.group(1); err != nil {
			return nil, err
		}
	}

	if version >= V4_02 {
		if err := c.skip(1); err != nil { // ParameterExtensionsOffsets.data
			return nil, err
		}
		if _, err = c.group(2); err != nil { // keys_sources_starts/counts, unused downstream
			return nil, err
		}
		if o.warpDeformerKeyformsV402, err = c.group(1); err != nil {
			return nil, err
		}
		if o.rotationDeformerKeyformsV402, err = c.group(1); err != nil {
			return nil, err
		}
		if o.artMeshKeyformsV402, err = c.group(1); err != nil {
			return nil, err
		}
		if o.keyformMultiplyColors, err = c.group(3); err != nil {
			return nil, err
		}
		if o.keyformScreenColors, err = c.group(3); err != nil {
			return nil, err
		}
		if o.parametersV402, err = c.group(3); err != nil {
			return nil, err
		}
		if o.blendShapeParameterBindings, err = c.group(3); err != nil {
			return nil, err
		}
		if o.blendShapeKeyformBindings, err = c.group(5); err != nil {
			return nil, err
		}
		if o.blendShapeWarpDeformers, err = c.group(3); err != nil {
			return nil, err
		}
		if o.blendShapeArtMeshes, err = c.group(3); err != nil {
			return nil, err
		}
		if o.blendShapeConstraintIndices, err = c.group(1); err != nil {
			return nil, err
		}
		if o.blendShapeConstraints, err = c.group(3); err != nil {
			return nil, err
		}
		if o.blendShapeConstraintValues, err = c.group(2); err != nil {
			return nil, err
		}
	}

	return &o, nil
}

// readCountInfo dereferences the count info table, whose own encoded length
// depends on version: the nine blend-shape/color fields only exist in
// V4_02+ files.
func readCountInfo(s *src, offset int64, version Version) (CountInfoTable, error) {
	c := &cursor{s: s, pos: offset}
	var ct CountInfoTable
	fields := []*uint32{
		&ct.Parts, &ct.Deformers, &ct.WarpDeformers, &ct.RotationDeformers,
		&ct.ArtMeshes, &ct.Parameters, &ct.PartKeyforms, &ct.WarpDeformerKeyforms,
		&ct.RotationDeformerKeyforms, &ct.ArtMeshKeyforms, &ct.KeyformPositions,
		&ct.ParameterBindingIndices, &ct.KeyformBindings, &ct.ParameterBindings,
		&ct.Keys, &ct.UVs, &ct.VertexIndices, &ct.ArtMeshMasks,
		&ct.DrawOrderGroups, &ct.DrawOrderGroupObjects, &ct.Glues,
		&ct.GlueInfos, &ct.GlueKeyforms,
	}
	if version >= V4_02 {
		fields = append(fields,
			&ct.KeyformMultiplyColors, &ct.KeyformScreenColors,
			&ct.BlendShapeParameterBindings, &ct.BlendShapeKeyformBindings,
			&ct.BlendShapeWarpDeformers, &ct.BlendShapeArtMeshes,
			&ct.BlendShapeConstraintIndices, &ct.BlendShapeConstraints,
			&ct.BlendShapeConstraintValues,
		)
	}
	for _, f := range fields {
		v, err := c.next()
		if err != nil {
			return CountInfoTable{}, err
		}
		*f = v
	}
	return ct, nil
}

func readCanvasInfo(s *src, offset int64) (CanvasInfo, error) {
	buf := make([]byte, 21)
	if err := s.read(offset, buf); err != nil {
		return CanvasInfo{}, err
	}
	u32 := func(i int) float32 { return mathFloat32(binary.LittleEndian.Uint32(buf[i:])) }
	return CanvasInfo{
		PixelsPerUnit: u32(0),
		XOrigin:       u32(4),
		YOrigin:       u32(8),
		CanvasWidth:   u32(12),
		CanvasHeight:  u32(16),
		CanvasFlags:   buf[20],
	}, nil
}

func mathFloat32(bits uint32) float32 { return math.Float32frombits(bits) }

// Read parses a complete MOC3 asset out of r. size must be the exact byte
// length of the backing file or buffer; every section offset and length is
// bounds-checked against it, and a truncated or corrupt input always comes
// back as a *ParseError rather than a partial Data.
func Read(r io.ReaderAt, size int64) (*Data, error) {
	s := &src{r: r, size: size}

	var hdr [headerSize]byte
	if err := s.read(0, hdr[:]); err != nil {
		return nil, err
	}
	if hdr[0] != magic[0] || hdr[1] != magic[1] || hdr[2] != magic[2] || hdr[3] != magic[3] {
		return nil, &ParseError{Offset: 0, Msg: "not a MOC3 file (bad magic)"}
	}
	version := Version(hdr[4])
	if !version.valid() {
		return nil, &ParseError{Offset: 4, Msg: fmt.Sprintf("unsupported MOC3 version byte %d", hdr[4])}
	}
	if hdr[5] != 0 {
		return nil, &ParseError{Offset: 5, Msg: "big-endian MOC3 files are not supported"}
	}

	c := &cursor{s: s, pos: headerSize}
	off, err := readOffsets(c, version)
	if err != nil {
		return nil, err
	}

	countInfo, err := readCountInfo(s, int64(off.countInfo), version)
	if err != nil {
		return nil, err
	}
	canvas, err := readCanvasInfo(s, int64(off.canvasInfo))
	if err != nil {
		return nil, err
	}

	d := &Data{Version: version, Canvas: canvas}

	// Parts
	if d.Parts.IDs, err = s.ids(int64(off.parts[0]), countInfo.Parts); err != nil {
		return nil, err
	}
	if d.Parts.KeyformBindingSourceIndices, err = s.u32s(int64(off.parts[1]), countInfo.Parts); err != nil {
		return nil, err
	}
	if d.Parts.KeyformSourcesStarts, err = s.u32s(int64(off.parts[2]), countInfo.Parts); err != nil {
		return nil, err
	}
	if d.Parts.KeyformSourcesCounts, err = s.u32s(int64(off.parts[3]), countInfo.Parts); err != nil {
		return nil, err
	}
	if d.Parts.IsVisible, err = s.u32s(int64(off.parts[4]), countInfo.Parts); err != nil {
		return nil, err
	}
	if d.Parts.IsEnabled, err = s.u32s(int64(off.parts[5]), countInfo.Parts); err != nil {
		return nil, err
	}
	if d.Parts.ParentPartIndices, err = s.i32s(int64(off.parts[6]), countInfo.Parts); err != nil {
		return nil, err
	}

	// Deformers
	if d.Deformers.IDs, err = s.ids(int64(off.deformers[0]), countInfo.Deformers); err != nil {
		return nil, err
	}
	if d.Deformers.KeyformBindingSourceIndices, err = s.u32s(int64(off.deformers[1]), countInfo.Deformers); err != nil {
		return nil, err
	}
	if d.Deformers.IsVisible, err = s.u32s(int64(off.deformers[2]), countInfo.Deformers); err != nil {
		return nil, err
	}
	if d.Deformers.IsEnabled, err = s.u32s(int64(off.deformers[3]), countInfo.Deformers); err != nil {
		return nil, err
	}
	if d.Deformers.ParentPartIndices, err = s.i32s(int64(off.deformers[4]), countInfo.Deformers); err != nil {
		return nil, err
	}
	if d.Deformers.ParentDeformerIndices, err = s.i32s(int64(off.deformers[5]), countInfo.Deformers); err != nil {
		return nil, err
	}
	if d.Deformers.Types, err = s.u32s(int64(off.deformers[6]), countInfo.Deformers); err != nil {
		return nil, err
	}
	if d.Deformers.SpecificSourceIndices, err = s.u32s(int64(off.deformers[7]), countInfo.Deformers); err != nil {
		return nil, err
	}

	// WarpDeformers
	if d.WarpDeformers.KeyformBindingSourceIndices, err = s.u32s(int64(off.warpDeformers[0]), countInfo.WarpDeformers); err != nil {
		return nil, err
	}
	if d.WarpDeformers.KeyformSourcesStarts, err = s.u32s(int64(off.warpDeformers[1]), countInfo.WarpDeformers); err != nil {
		return nil, err
	}
	if d.WarpDeformers.KeyformSourcesCounts, err = s.u32s(int64(off.warpDeformers[2]), countInfo.WarpDeformers); err != nil {
		return nil, err
	}
	if d.WarpDeformers.VertexCounts, err = s.u32s(int64(off.warpDeformers[3]), countInfo.WarpDeformers); err != nil {
		return nil, err
	}
	if d.WarpDeformers.Rows, err = s.u32s(int64(off.warpDeformers[4]), countInfo.WarpDeformers); err != nil {
		return nil, err
	}
	if d.WarpDeformers.Columns, err = s.u32s(int64(off.warpDeformers[5]), countInfo.WarpDeformers); err != nil {
		return nil, err
	}

	// RotationDeformers
	if d.RotationDeformers.KeyformBindingSourceIndices, err = s.u32s(int64(off.rotationDeformers[0]), countInfo.RotationDeformers); err != nil {
		return nil, err
	}
	if d.RotationDeformers.KeyformSourcesStarts, err = s.u32s(int64(off.rotationDeformers[1]), countInfo.RotationDeformers); err != nil {
		return nil, err
	}
	if d.RotationDeformers.KeyformSourcesCounts, err = s.u32s(int64(off.rotationDeformers[2]), countInfo.RotationDeformers); err != nil {
		return nil, err
	}
	if d.RotationDeformers.BaseAngles, err = s.f32s(int64(off.rotationDeformers[3]), countInfo.RotationDeformers); err != nil {
		return nil, err
	}

	// ArtMeshes
	if d.ArtMeshes.IDs, err = s.ids(int64(off.artMeshes[0]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.KeyformBindingSourceIndices, err = s.u32s(int64(off.artMeshes[1]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.KeyformSourcesStarts, err = s.u32s(int64(off.artMeshes[2]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.KeyformSourcesCounts, err = s.u32s(int64(off.artMeshes[3]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.IsVisible, err = s.u32s(int64(off.artMeshes[4]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.IsEnabled, err = s.u32s(int64(off.artMeshes[5]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.ParentPartIndices, err = s.i32s(int64(off.artMeshes[6]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.ParentDeformerIndices, err = s.i32s(int64(off.artMeshes[7]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.TextureNums, err = s.u32s(int64(off.artMeshes[8]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.Flags, err = s.flags(int64(off.artMeshes[9]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.VertexCounts, err = s.u32s(int64(off.artMeshes[10]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.UVSourcesStarts, err = s.u32s(int64(off.artMeshes[11]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.VertexIndexSourcesStarts, err = s.u32s(int64(off.artMeshes[12]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.VertexIndexSourcesCounts, err = s.u32s(int64(off.artMeshes[13]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.MaskSourcesStarts, err = s.u32s(int64(off.artMeshes[14]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}
	if d.ArtMeshes.MaskSourcesCounts, err = s.u32s(int64(off.artMeshes[15]), countInfo.ArtMeshes); err != nil {
		return nil, err
	}

	// Parameters
	if d.Parameters.IDs, err = s.ids(int64(off.parameters[0]), countInfo.Parameters); err != nil {
		return nil, err
	}
	if d.Parameters.MaxValues, err = s.f32s(int64(off.parameters[1]), countInfo.Parameters); err != nil {
		return nil, err
	}
	if d.Parameters.MinValues, err = s.f32s(int64(off.parameters[2]), countInfo.Parameters); err != nil {
		return nil, err
	}
	if d.Parameters.DefaultValues, err = s.f32s(int64(off.parameters[3]), countInfo.Parameters); err != nil {
		return nil, err
	}
	if d.Parameters.IsRepeat, err = s.u32s(int64(off.parameters[4]), countInfo.Parameters); err != nil {
		return nil, err
	}
	if d.Parameters.DecimalPlaces, err = s.u32s(int64(off.parameters[5]), countInfo.Parameters); err != nil {
		return nil, err
	}
	if d.Parameters.BindingSourcesStarts, err = s.u32s(int64(off.parameters[6]), countInfo.Parameters); err != nil {
		return nil, err
	}
	if d.Parameters.BindingSourcesCounts, err = s.u32s(int64(off.parameters[7]), countInfo.Parameters); err != nil {
		return nil, err
	}

	// Keyforms
	if d.PartKeyforms.DrawOrders, err = s.f32s(int64(off.partKeyforms[0]), countInfo.PartKeyforms); err != nil {
		return nil, err
	}
	if d.WarpDeformerKeyforms.Opacities, err = s.f32s(int64(off.warpDeformerKeyforms[0]), countInfo.WarpDeformerKeyforms); err != nil {
		return nil, err
	}
	if d.WarpDeformerKeyforms.KeyformPositionSourcesStarts, err = s.u32s(int64(off.warpDeformerKeyforms[1]), countInfo.WarpDeformerKeyforms); err != nil {
		return nil, err
	}
	if d.RotationDeformerKeyforms.Opacities, err = s.f32s(int64(off.rotationDeformerKeyforms[0]), countInfo.RotationDeformerKeyforms); err != nil {
		return nil, err
	}
	if d.RotationDeformerKeyforms.Angles, err = s.f32s(int64(off.rotationDeformerKeyforms[1]), countInfo.RotationDeformerKeyforms); err != nil {
		return nil, err
	}
	if d.RotationDeformerKeyforms.XOrigin, err = s.f32s(int64(off.rotationDeformerKeyforms[2]), countInfo.RotationDeformerKeyforms); err != nil {
		return nil, err
	}
	if d.RotationDeformerKeyforms.YOrigin, err = s.f32s(int64(off.rotationDeformerKeyforms[3]), countInfo.RotationDeformerKeyforms); err != nil {
		return nil, err
	}
	if d.RotationDeformerKeyforms.Scales, err = s.f32s(int64(off.rotationDeformerKeyforms[4]), countInfo.RotationDeformerKeyforms); err != nil {
		return nil, err
	}
	if d.RotationDeformerKeyforms.IsReflectX, err = s.u32s(int64(off.rotationDeformerKeyforms[5]), countInfo.RotationDeformerKeyforms); err != nil {
		return nil, err
	}
	if d.RotationDeformerKeyforms.IsReflectY, err = s.u32s(int64(off.rotationDeformerKeyforms[6]), countInfo.RotationDeformerKeyforms); err != nil {
		return nil, err
	}
	if d.ArtMeshKeyforms.Opacities, err = s.f32s(int64(off.artMeshKeyforms[0]), countInfo.ArtMeshKeyforms); err != nil {
		return nil, err
	}
	if d.ArtMeshKeyforms.DrawOrders, err = s.f32s(int64(off.artMeshKeyforms[1]), countInfo.ArtMeshKeyforms); err != nil {
		return nil, err
	}
	if d.ArtMeshKeyforms.KeyformPositionSourcesStarts, err = s.u32s(int64(off.artMeshKeyforms[2]), countInfo.ArtMeshKeyforms); err != nil {
		return nil, err
	}

	if d.KeyformPositions, err = s.vec2s(int64(off.keyformPositions[0]), countInfo.KeyformPositions); err != nil {
		return nil, err
	}

	if d.ParameterBindingIndices.BindingSourcesIndices, err = s.u32s(int64(off.parameterBindingIndices[0]), countInfo.ParameterBindingIndices); err != nil {
		return nil, err
	}
	if d.KeyformBindings.ParameterBindingIndexSourcesStarts, err = s.u32s(int64(off.keyformBindings[0]), countInfo.KeyformBindings); err != nil {
		return nil, err
	}
	if d.KeyformBindings.ParameterBindingIndexSourcesCounts, err = s.u32s(int64(off.keyformBindings[1]), countInfo.KeyformBindings); err != nil {
		return nil, err
	}
	if d.ParameterBindings.KeysSourcesStarts, err = s.u32s(int64(off.parameterBindings[0]), countInfo.ParameterBindings); err != nil {
		return nil, err
	}
	if d.ParameterBindings.KeysSourcesCounts, err = s.u32s(int64(off.parameterBindings[1]), countInfo.ParameterBindings); err != nil {
		return nil, err
	}

	if d.Keys, err = s.f32s(int64(off.keys[0]), countInfo.Keys); err != nil {
		return nil, err
	}
	if d.UVs, err = s.vec2s(int64(off.uvs[0]), countInfo.UVs); err != nil {
		return nil, err
	}
	if d.VertexIndices, err = s.u16s(int64(off.vertexIndices[0]), countInfo.VertexIndices); err != nil {
		return nil, err
	}

	if d.ArtMeshMasks.ArtMeshSourceIndices, err = s.u32s(int64(off.artMeshMasks[0]), countInfo.ArtMeshMasks); err != nil {
		return nil, err
	}

	if d.DrawOrderGroups.ObjectSourcesStarts, err = s.u32s(int64(off.drawOrderGroups[0]), countInfo.DrawOrderGroups); err != nil {
		return nil, err
	}
	if d.DrawOrderGroups.ObjectSourcesCounts, err = s.u32s(int64(off.drawOrderGroups[1]), countInfo.DrawOrderGroups); err != nil {
		return nil, err
	}
	if d.DrawOrderGroups.ObjectSourcesTotalCounts, err = s.u32s(int64(off.drawOrderGroups[2]), countInfo.DrawOrderGroups); err != nil {
		return nil, err
	}
	if d.DrawOrderGroups.MaximumDrawOrders, err = s.u32s(int64(off.drawOrderGroups[3]), countInfo.DrawOrderGroups); err != nil {
		return nil, err
	}
	if d.DrawOrderGroups.MinimumDrawOrders, err = s.u32s(int64(off.drawOrderGroups[4]), countInfo.DrawOrderGroups); err != nil {
		return nil, err
	}

	rawTypes, err := s.u32s(int64(off.drawOrderGroupObjects[0]), countInfo.DrawOrderGroupObjects)
	if err != nil {
		return nil, err
	}
	d.DrawOrderGroupObjects.Types = make([]DrawOrderObjectType, len(rawTypes))
	for i, v := range rawTypes {
		d.DrawOrderGroupObjects.Types[i] = DrawOrderObjectType(v)
	}
	if d.DrawOrderGroupObjects.Indices, err = s.u32s(int64(off.drawOrderGroupObjects[1]), countInfo.DrawOrderGroupObjects); err != nil {
		return nil, err
	}
	if d.DrawOrderGroupObjects.SelfIndices, err = s.i32s(int64(off.drawOrderGroupObjects[2]), countInfo.DrawOrderGroupObjects); err != nil {
		return nil, err
	}

	if d.Glues.IDs, err = s.ids(int64(off.glues[0]), countInfo.Glues); err != nil {
		return nil, err
	}
	if d.Glues.KeyformBindingSourceIndices, err = s.u32s(int64(off.glues[1]), countInfo.Glues); err != nil {
		return nil, err
	}
	if d.Glues.KeyformSourcesStarts, err = s.u32s(int64(off.glues[2]), countInfo.Glues); err != nil {
		return nil, err
	}
	if d.Glues.KeyformSourcesCounts, err = s.u32s(int64(off.glues[3]), countInfo.Glues); err != nil {
		return nil, err
	}
	if d.Glues.ArtMeshIndicesA, err = s.u32s(int64(off.glues[4]), countInfo.Glues); err != nil {
		return nil, err
	}
	if d.Glues.ArtMeshIndicesB, err = s.u32s(int64(off.glues[5]), countInfo.Glues); err != nil {
		return nil, err
	}
	if d.Glues.GlueInfoSourcesStarts, err = s.u32s(int64(off.glues[6]), countInfo.Glues); err != nil {
		return nil, err
	}
	if d.Glues.GlueInfoSourcesCounts, err = s.u32s(int64(off.glues[7]), countInfo.Glues); err != nil {
		return nil, err
	}

	if d.GlueInfos.Weights, err = s.f32s(int64(off.glueInfos[0]), countInfo.GlueInfos); err != nil {
		return nil, err
	}
	if d.GlueInfos.VertexIndices, err = s.u16s(int64(off.glueInfos[1]), countInfo.GlueInfos); err != nil {
		return nil, err
	}

	if d.GlueKeyforms.Intensities, err = s.f32s(int64(off.glueKeyforms[0]), countInfo.GlueKeyforms); err != nil {
		return nil, err
	}

	if version >= V3_03 {
		if d.IsNewDeformer, err = s.u32s(int64(off.warpDeformerKeyformsV303[0]), countInfo.WarpDeformers); err != nil {
			return nil, err
		}
	}

	if version >= V4_02 {
		if d.WarpDeformerKeyformColorSourceStart, err = s.u32s(int64(off.warpDeformerKeyformsV402[0]), countInfo.WarpDeformers); err != nil {
			return nil, err
		}
		if d.RotationDeformerKeyformColorSourceStart, err = s.u32s(int64(off.rotationDeformerKeyformsV402[0]), countInfo.RotationDeformers); err != nil {
			return nil, err
		}
		if d.ArtMeshKeyformColorSourceStart, err = s.u32s(int64(off.artMeshKeyformsV402[0]), countInfo.ArtMeshes); err != nil {
			return nil, err
		}

		if d.KeyformMultiplyColors.Red, err = s.f32s(int64(off.keyformMultiplyColors[0]), countInfo.KeyformMultiplyColors); err != nil {
			return nil, err
		}
		if d.KeyformMultiplyColors.Green, err = s.f32s(int64(off.keyformMultiplyColors[1]), countInfo.KeyformMultiplyColors); err != nil {
			return nil, err
		}
		if d.KeyformMultiplyColors.Blue, err = s.f32s(int64(off.keyformMultiplyColors[2]), countInfo.KeyformMultiplyColors); err != nil {
			return nil, err
		}
		if d.KeyformScreenColors.Red, err = s.f32s(int64(off.keyformScreenColors[0]), countInfo.KeyformScreenColors); err != nil {
			return nil, err
		}
		if d.KeyformScreenColors.Green, err = s.f32s(int64(off.keyformScreenColors[1]), countInfo.KeyformScreenColors); err != nil {
			return nil, err
		}
		if d.KeyformScreenColors.Blue, err = s.f32s(int64(off.keyformScreenColors[2]), countInfo.KeyformScreenColors); err != nil {
			return nil, err
		}

		rawTypes, err := s.u32s(int64(off.parametersV402[0]), countInfo.Parameters)
		if err != nil {
			return nil, err
		}
		d.ParameterTypes = make([]ParameterType, len(rawTypes))
		for i, v := range rawTypes {
			d.ParameterTypes[i] = ParameterType(v)
		}
		if d.BlendShapeParameterBindingSourceStarts, err = s.u32s(int64(off.parametersV402[1]), countInfo.Parameters); err != nil {
			return nil, err
		}
		if d.BlendShapeParameterBindingSourceCounts, err = s.u32s(int64(off.parametersV402[2]), countInfo.Parameters); err != nil {
			return nil, err
		}

		if d.BlendShapeParameterBindings.KeysSourcesStarts, err = s.u32s(int64(off.blendShapeParameterBindings[0]), countInfo.BlendShapeParameterBindings); err != nil {
			return nil, err
		}
		if d.BlendShapeParameterBindings.KeysSourcesCounts, err = s.u32s(int64(off.blendShapeParameterBindings[1]), countInfo.BlendShapeParameterBindings); err != nil {
			return nil, err
		}
		if d.BlendShapeParameterBindings.BaseKeyIndices, err = s.u32s(int64(off.blendShapeParameterBindings[2]), countInfo.BlendShapeParameterBindings); err != nil {
			return nil, err
		}

		if d.BlendShapeKeyformBindings.BlendShapeParameterBindingSourcesIndices, err = s.u32s(int64(off.blendShapeKeyformBindings[0]), countInfo.BlendShapeKeyformBindings); err != nil {
			return nil, err
		}
		if d.BlendShapeKeyformBindings.KeyformSourcesBlendShapeStarts, err = s.u32s(int64(off.blendShapeKeyformBindings[1]), countInfo.BlendShapeKeyformBindings); err != nil {
			return nil, err
		}
		if d.BlendShapeKeyformBindings.KeyformSourcesBlendShapeCounts, err = s.u32s(int64(off.blendShapeKeyformBindings[2]), countInfo.BlendShapeKeyformBindings); err != nil {
			return nil, err
		}
		if d.BlendShapeKeyformBindings.ConstraintIndexSourcesStarts, err = s.u32s(int64(off.blendShapeKeyformBindings[3]), countInfo.BlendShapeKeyformBindings); err != nil {
			return nil, err
		}
		if d.BlendShapeKeyformBindings.ConstraintIndexSourcesCounts, err = s.u32s(int64(off.blendShapeKeyformBindings[4]), countInfo.BlendShapeKeyformBindings); err != nil {
			return nil, err
		}

		if d.BlendShapeWarpDeformers.TargetIndices, err = s.u32s(int64(off.blendShapeWarpDeformers[0]), countInfo.BlendShapeWarpDeformers); err != nil {
			return nil, err
		}
		if d.BlendShapeWarpDeformers.KeyformBindingSourcesStarts, err = s.u32s(int64(off.blendShapeWarpDeformers[1]), countInfo.BlendShapeWarpDeformers); err != nil {
			return nil, err
		}
		if d.BlendShapeWarpDeformers.KeyformBindingSourcesCounts, err = s.u32s(int64(off.blendShapeWarpDeformers[2]), countInfo.BlendShapeWarpDeformers); err != nil {
			return nil, err
		}

		if d.BlendShapeArtMeshes.TargetIndices, err = s.u32s(int64(off.blendShapeArtMeshes[0]), countInfo.BlendShapeArtMeshes); err != nil {
			return nil, err
		}
		if d.BlendShapeArtMeshes.KeyformBindingSourcesStarts, err = s.u32s(int64(off.blendShapeArtMeshes[1]), countInfo.BlendShapeArtMeshes); err != nil {
			return nil, err
		}
		if d.BlendShapeArtMeshes.KeyformBindingSourcesCounts, err = s.u32s(int64(off.blendShapeArtMeshes[2]), countInfo.BlendShapeArtMeshes); err != nil {
			return nil, err
		}

		if d.BlendShapeConstraintIndices, err = s.u32s(int64(off.blendShapeConstraintIndices[0]), countInfo.BlendShapeConstraintIndices); err != nil {
			return nil, err
		}

		if d.BlendShapeConstraints.ParameterIndices, err = s.u32s(int64(off.blendShapeConstraints[0]), countInfo.BlendShapeConstraints); err != nil {
			return nil, err
		}
		if d.BlendShapeConstraints.ConstraintValueSourcesStarts, err = s.u32s(int64(off.blendShapeConstraints[1]), countInfo.BlendShapeConstraints); err != nil {
			return nil, err
		}
		if d.BlendShapeConstraints.ConstraintValueSourcesCounts, err = s.u32s(int64(off.blendShapeConstraints[2]), countInfo.BlendShapeConstraints); err != nil {
			return nil, err
		}

		if d.BlendShapeConstraintValues.Keys, err = s.f32s(int64(off.blendShapeConstraintValues[0]), countInfo.BlendShapeConstraintValues); err != nil {
			return nil, err
		}
		if d.BlendShapeConstraintValues.Weights, err = s.f32s(int64(off.blendShapeConstraintValues[1]), countInfo.BlendShapeConstraintValues); err != nil {
			return nil, err
		}
	}

	return d, nil
}
