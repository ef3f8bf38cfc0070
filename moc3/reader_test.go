package moc3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// fieldCountV300 is the number of u32 fields the section offset table holds for
// a V3_00 file: 2 (count_info, canvas_info pointers) plus every *Offsets
// group's reserved+pointer fields, none of the V3_03/V4_02 tail sections.
const fieldCountV300 = 101

// builder assembles a minimal, well-formed MOC3 byte buffer field by field,
// mirroring readOffsets's traversal order exactly so tests can hand-craft
// both valid and deliberately corrupt inputs.
type builder struct {
	buf []byte
}

func newBuilder(size int) *builder {
	return &builder{buf: make([]byte, size)}
}

func (b *builder) putU32(offset int64, v uint32) {
	binary.LittleEndian.PutUint32(b.buf[offset:offset+4], v)
}

// minimalMOC3 returns a complete, zero-entity V3_00 file: every count is 0
// and every pointer field targets offset 0, which is always in bounds for a
// zero-length read.
func minimalMOC3() []byte {
	const (
		headerEnd  = headerSize
		tableStart = headerEnd
		tableSize  = fieldCountV300 * 4
		countInfoOffset = tableStart + tableSize
		countInfoSize   = 23 * 4
		canvasInfoOffset = countInfoOffset + countInfoSize
		canvasInfoSize   = 21
		totalSize        = canvasInfoOffset + canvasInfoSize
	)

	b := newBuilder(totalSize)
	copy(b.buf[0:4], magic[:])
	b.buf[4] = byte(V3_00)
	b.buf[5] = 0 // big_endian

	pos := int64(tableStart)
	write := func(v uint32) {
		b.putU32(pos, v)
		pos += 4
	}
	writeN := func(n int, v uint32) {
		for i := 0; i < n; i++ {
			write(v)
		}
	}

	write(uint32(countInfoOffset))
	write(uint32(canvasInfoOffset))
	writeN(1+7, 0)  // PartOffsets: data + 7 pointers
	writeN(1+8, 0)  // DeformerOffsets
	writeN(6, 0)    // WarpDeformerOffsets
	writeN(4, 0)    // RotationDeformerOffsets
	writeN(4+16, 0) // ArtMeshOffsets: runtime_ignored[4] + 16 pointers
	writeN(1+8, 0)  // ParameterOffsets
	writeN(1, 0)    // PartKeyformOffsets
	writeN(2, 0)    // WarpDeformerKeyformOffsets
	writeN(7, 0)    // RotationDeformerKeyformOffsets
	writeN(3, 0)    // ArtMeshKeyformOffsets
	writeN(1, 0)    // KeyformPositionOffsets
	writeN(1, 0)    // ParameterBindingIndicesOffsets
	writeN(2, 0)    // KeyformBindingOffsets
	writeN(2, 0)    // ParameterBindingOffsets
	writeN(1, 0)    // KeyOffsets
	writeN(1, 0)    // UvOffsets
	writeN(1, 0)    // VertexIndicesOffsets
	writeN(1, 0)    // ArtMeshMaskOffsets
	writeN(5, 0)    // DrawOrderGroupOffsets
	writeN(3, 0)    // DrawOrderGroupObjectOffsets
	writeN(1+8, 0)  // GlueOffsets
	writeN(2, 0)    // GlueInfoOffsets
	writeN(1, 0)    // GlueKeyformOffsets

	if pos != countInfoOffset {
		panic("builder: section offset table length drifted from fieldCountV300")
	}

	// CountInfoTable: 23 zero counts (no V4_02 fields for a V3_00 file).
	for i := 0; i < 23; i++ {
		write(0)
	}
	// CanvasInfo: 5 zero floats + 1 flags byte, already zeroed by make().

	return b.buf
}

func TestReadEmptyPuppet(t *testing.T) {
	raw := minimalMOC3()
	d, err := Read(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if d.Version != V3_00 {
		t.Fatalf("version = %v, want V3_00", d.Version)
	}
	if len(d.Parts.IDs) != 0 || len(d.ArtMeshes.IDs) != 0 || len(d.Glues.IDs) != 0 {
		t.Fatalf("expected zero-length arrays for an empty puppet, got parts=%d artmeshes=%d glues=%d",
			len(d.Parts.IDs), len(d.ArtMeshes.IDs), len(d.Glues.IDs))
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	raw := minimalMOC3()
	raw[0] = 'X'
	_, err := Read(bytes.NewReader(raw), int64(len(raw)))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	raw := minimalMOC3()
	raw[4] = 99
	_, err := Read(bytes.NewReader(raw), int64(len(raw)))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}
}

func TestReadRejectsBigEndianFlag(t *testing.T) {
	raw := minimalMOC3()
	raw[5] = 1
	_, err := Read(bytes.NewReader(raw), int64(len(raw)))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}
}

func TestReadRejectsTruncatedFile(t *testing.T) {
	raw := minimalMOC3()
	truncated := raw[:len(raw)-10]
	_, err := Read(bytes.NewReader(truncated), int64(len(truncated)))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}
}

func TestReadRejectsOffsetOutOfBounds(t *testing.T) {
	raw := minimalMOC3()
	// count_info pointer, the first field right after the header.
	binary.LittleEndian.PutUint32(raw[headerSize:headerSize+4], uint32(len(raw)+1000))
	_, err := Read(bytes.NewReader(raw), int64(len(raw)))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}
}

func TestReadRejectsUnterminatedID(t *testing.T) {
	base := minimalMOC3()
	idBlock := bytes.Repeat([]byte{'A'}, 64) // no null terminator anywhere
	raw := append(base, idBlock...)
	idOffset := uint32(len(base))

	// Part count = 1, ids pointer -> idOffset. CountInfoTable.Parts is the
	// first field of the count info table.
	countInfoOffset := int64(headerSize + fieldCountV300*4)
	binary.LittleEndian.PutUint32(raw[countInfoOffset:countInfoOffset+4], 1)

	// PartOffsets.ids is the first pointer after the reserved `data` field,
	// itself the first group right after the two top-level pointers.
	partsIDsFieldOffset := int64(headerSize + (2+1)*4)
	binary.LittleEndian.PutUint32(raw[partsIDsFieldOffset:partsIDsFieldOffset+4], idOffset)

	_, err := Read(bytes.NewReader(raw), int64(len(raw)))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}
}
