package tess

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// DefaultStep is the default tessellation step in world units. Each
// segment produces floor(length/step) vertices, so smaller values yield
// denser, smoother output at higher cost.
const DefaultStep = 8

// DescriptorSize is the size of one encoded descriptor in bytes.
const DescriptorSize = 48

// maxTotalVertices is the capacity limit imposed by the uint16 offset
// fields of the descriptor wire layout.
const maxTotalVertices = math.MaxUint16

// ErrTooManyVertices is returned when a descriptor build would exceed the
// uint16 vertex index space of the wire layout.
var ErrTooManyVertices = errors.New("tess: too many vertices")

// ErrShortDescriptor is returned when decoding a descriptor from a buffer
// smaller than DescriptorSize.
var ErrShortDescriptor = errors.New("tess: descriptor buffer too short")

// Descriptor is a fixed-shape record describing one segment's evaluation
// parameters and its reserved range in the shared output buffer.
//
// VertexIndex is the offset, in vertex-record units, where this
// descriptor's vertices are written. For a descriptor list produced by
// BuildDescriptors, descriptor i's VertexIndex equals the sum of all
// earlier descriptors' VertexCounts, so write ranges never overlap and
// the total equals the output buffer capacity.
//
// Width0 and Width1 hold the stroke widths at the segment endpoints as
// IEEE-754 binary16 bits. They are carried per descriptor even though
// BuildDescriptors currently applies one width pair per invocation, so
// per-segment widths remain a natural extension.
type Descriptor struct {
	Kind        SegmentKind
	VertexCount uint16
	VertexIndex uint16
	Width0      uint16
	Width1      uint16
	P0          Point
	P1          Point
	P2          Point
	P3          Point
}

// BuildDescriptors converts an ordered segment list into descriptors and
// returns them together with the total vertex count. The stroke widths
// are applied uniformly to all segments in this invocation.
//
// Each segment yields floor(length/step) vertices; step values <= 0 fall
// back to DefaultStep. Sub-step-length segments yield valid zero-count
// descriptors. Offsets are assigned in a single deterministic pass in
// input order. A build whose total would exceed the uint16 index space
// fails with ErrTooManyVertices rather than silently truncating.
func BuildDescriptors(segments []Segment, width0, width1, step float32) ([]Descriptor, int, error) {
	if step <= 0 {
		step = DefaultStep
	}

	w0 := Float16(width0)
	w1 := Float16(width1)

	descriptors := make([]Descriptor, 0, len(segments))
	total := 0

	for _, s := range segments {
		ratio := s.Length / step
		if math32.IsNaN(ratio) || ratio < 0 {
			ratio = 0
		}
		if ratio > maxTotalVertices {
			return nil, 0, fmt.Errorf("%w: segment needs %.0f of %d", ErrTooManyVertices, ratio, maxTotalVertices)
		}
		count := int(ratio)
		if total+count > maxTotalVertices {
			return nil, 0, fmt.Errorf("%w: %d segments need more than %d", ErrTooManyVertices, len(segments), maxTotalVertices)
		}

		descriptors = append(descriptors, Descriptor{
			Kind:        s.Kind,
			VertexCount: uint16(count),
			VertexIndex: uint16(total),
			Width0:      w0,
			Width1:      w1,
			P0:          s.P0,
			P1:          s.P1,
			P2:          s.P2,
			P3:          s.P3,
		})
		total += count
	}

	return descriptors, total, nil
}

// Encode writes the descriptor into buf as a 48-byte little-endian record.
// The layout must match the Descriptor struct in gpu/shaders/evaluate.wgsl:
//
//	offset  0: kind (u8), 3 bytes padding
//	offset  4: vertex count (u16), vertex index (u16)
//	offset  8: width0 (u16), width1 (u16), 4 bytes padding
//	offset 16: p0..p3 as pairs of f32
//
// buf must be at least DescriptorSize bytes.
func (d Descriptor) Encode(buf []byte) {
	buf[0] = byte(d.Kind)
	buf[1], buf[2], buf[3] = 0, 0, 0
	binary.LittleEndian.PutUint16(buf[4:6], d.VertexCount)
	binary.LittleEndian.PutUint16(buf[6:8], d.VertexIndex)
	binary.LittleEndian.PutUint16(buf[8:10], d.Width0)
	binary.LittleEndian.PutUint16(buf[10:12], d.Width1)
	for i := 12; i < 16; i++ {
		buf[i] = 0
	}
	points := [8]float32{
		d.P0.X, d.P0.Y,
		d.P1.X, d.P1.Y,
		d.P2.X, d.P2.Y,
		d.P3.X, d.P3.Y,
	}
	for i, v := range points {
		binary.LittleEndian.PutUint32(buf[16+i*4:20+i*4], math.Float32bits(v))
	}
}

// DecodeDescriptor reads a descriptor from a 48-byte little-endian record.
func DecodeDescriptor(buf []byte) (Descriptor, error) {
	if len(buf) < DescriptorSize {
		return Descriptor{}, ErrShortDescriptor
	}

	var points [8]float32
	for i := range points {
		points[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[16+i*4 : 20+i*4]))
	}

	return Descriptor{
		Kind:        SegmentKind(buf[0]),
		VertexCount: binary.LittleEndian.Uint16(buf[4:6]),
		VertexIndex: binary.LittleEndian.Uint16(buf[6:8]),
		Width0:      binary.LittleEndian.Uint16(buf[8:10]),
		Width1:      binary.LittleEndian.Uint16(buf[10:12]),
		P0:          Point{X: points[0], Y: points[1]},
		P1:          Point{X: points[2], Y: points[3]},
		P2:          Point{X: points[4], Y: points[5]},
		P3:          Point{X: points[6], Y: points[7]},
	}, nil
}

// EncodeDescriptors encodes a descriptor list into one contiguous byte
// buffer suitable for upload to a GPU storage buffer.
func EncodeDescriptors(descriptors []Descriptor) []byte {
	buf := make([]byte, len(descriptors)*DescriptorSize)
	for i, d := range descriptors {
		d.Encode(buf[i*DescriptorSize:])
	}
	return buf
}
