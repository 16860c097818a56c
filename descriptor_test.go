package tess

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuildDescriptors_OffsetInvariant(t *testing.T) {
	segments := []Segment{
		lineSegment(Pt(0, 0), Pt(80, 0)),     // 10 vertices at step 8
		lineSegment(Pt(80, 0), Pt(80, 3)),    // 0 vertices
		lineSegment(Pt(80, 3), Pt(80, 43)),   // 5 vertices
		lineSegment(Pt(80, 43), Pt(160, 43)), // 10 vertices
	}

	descs, total, err := BuildDescriptors(segments, 4, 4, 8)
	if err != nil {
		t.Fatalf("BuildDescriptors: %v", err)
	}

	sum := 0
	for i, d := range descs {
		if int(d.VertexIndex) != sum {
			t.Errorf("descs[%d].VertexIndex = %d, want %d", i, d.VertexIndex, sum)
		}
		sum += int(d.VertexCount)
	}
	if sum != total {
		t.Errorf("sum of counts = %d, total = %d", sum, total)
	}
	if total != 25 {
		t.Errorf("total = %d, want 25", total)
	}

	last := descs[len(descs)-1]
	if int(last.VertexIndex)+int(last.VertexCount) != total {
		t.Errorf("last range end = %d, want %d", int(last.VertexIndex)+int(last.VertexCount), total)
	}
}

func TestBuildDescriptors_VertexCounts(t *testing.T) {
	tests := []struct {
		name   string
		length float32
		step   float32
		want   uint16
	}{
		{"exact multiple", 80, 8, 10},
		{"sub-step", 3, 8, 0},
		{"just below", 7.99, 8, 0},
		{"rounds down", 17, 8, 2},
		{"zero length", 0, 8, 0},
		{"default step on zero", 80, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := []Segment{{Kind: KindLine, Length: tt.length, P0: Pt(0, 0), P1: Pt(tt.length, 0)}}
			descs, total, err := BuildDescriptors(segs, 1, 1, tt.step)
			if err != nil {
				t.Fatalf("BuildDescriptors: %v", err)
			}
			if descs[0].VertexCount != tt.want {
				t.Errorf("VertexCount = %d, want %d", descs[0].VertexCount, tt.want)
			}
			if total != int(tt.want) {
				t.Errorf("total = %d, want %d", total, tt.want)
			}
		})
	}
}

func TestBuildDescriptors_Empty(t *testing.T) {
	descs, total, err := BuildDescriptors(nil, 1, 1, 8)
	if err != nil {
		t.Fatalf("BuildDescriptors: %v", err)
	}
	if len(descs) != 0 || total != 0 {
		t.Errorf("got %d descriptors, total %d, want 0, 0", len(descs), total)
	}
}

func TestBuildDescriptors_TooManyVertices(t *testing.T) {
	// One segment demanding more vertices than the uint16 index space
	segs := []Segment{{Kind: KindLine, Length: 8 * 70000, P0: Pt(0, 0), P1: Pt(8*70000, 0)}}
	_, _, err := BuildDescriptors(segs, 1, 1, 8)
	if !errors.Is(err, ErrTooManyVertices) {
		t.Fatalf("err = %v, want ErrTooManyVertices", err)
	}

	// Many segments whose running total overflows
	many := make([]Segment, 100)
	for i := range many {
		many[i] = Segment{Kind: KindLine, Length: 8 * 1000, P0: Pt(0, 0), P1: Pt(8000, 0)}
	}
	_, _, err = BuildDescriptors(many, 1, 1, 8)
	if !errors.Is(err, ErrTooManyVertices) {
		t.Fatalf("err = %v, want ErrTooManyVertices", err)
	}
}

func TestBuildDescriptors_WidthBits(t *testing.T) {
	segs := []Segment{lineSegment(Pt(0, 0), Pt(80, 0))}
	descs, _, err := BuildDescriptors(segs, 4, 2, 8)
	if err != nil {
		t.Fatalf("BuildDescriptors: %v", err)
	}
	if descs[0].Width0 != Float16(4) || descs[0].Width1 != Float16(2) {
		t.Errorf("widths = %#04x, %#04x, want %#04x, %#04x",
			descs[0].Width0, descs[0].Width1, Float16(4), Float16(2))
	}
}

func TestDescriptor_EncodeFixture(t *testing.T) {
	d := Descriptor{
		Kind:        KindLine,
		VertexCount: 10,
		VertexIndex: 0,
		Width0:      0x4400, // 4.0
		Width1:      0x4000, // 2.0
		P0:          Pt(0, 0),
		P1:          Pt(80, 0),
	}

	want := make([]byte, DescriptorSize)
	want[4] = 10          // vertex count, little endian
	want[8] = 0x00        // width0 lo
	want[9] = 0x44        // width0 hi
	want[10] = 0x00       // width1 lo
	want[11] = 0x40       // width1 hi
	copy(want[24:28], []byte{0x00, 0x00, 0xA0, 0x42}) // p1.x = 80.0

	buf := make([]byte, DescriptorSize)
	d.Encode(buf)
	if !bytes.Equal(buf, want) {
		t.Errorf("Encode mismatch\n got %x\nwant %x", buf, want)
	}
}

func TestDescriptor_CodecRoundTrip(t *testing.T) {
	descs := []Descriptor{
		{
			Kind:        KindCubic,
			VertexCount: 37,
			VertexIndex: 123,
			Width0:      Float16(6),
			Width1:      Float16(1.5),
			P0:          Pt(-1.5, 2.25),
			P1:          Pt(33.5, 91.25),
			P2:          Pt(68.5, 12.5),
			P3:          Pt(97, 55.5),
		},
		{
			Kind:        KindQuad,
			VertexCount: 0,
			VertexIndex: 160,
			Width0:      Float16(0),
			Width1:      Float16(8),
			P0:          Pt(1, 2),
			P1:          Pt(3, 4),
			P2:          Pt(5, 6),
		},
	}

	encoded := EncodeDescriptors(descs)
	if len(encoded) != len(descs)*DescriptorSize {
		t.Fatalf("encoded size = %d, want %d", len(encoded), len(descs)*DescriptorSize)
	}

	for i, want := range descs {
		got, err := DecodeDescriptor(encoded[i*DescriptorSize:])
		if err != nil {
			t.Fatalf("DecodeDescriptor(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("round trip %d:\n got %+v\nwant %+v", i, got, want)
		}
	}
}

func TestDecodeDescriptor_ShortBuffer(t *testing.T) {
	_, err := DecodeDescriptor(make([]byte, DescriptorSize-1))
	if !errors.Is(err, ErrShortDescriptor) {
		t.Fatalf("err = %v, want ErrShortDescriptor", err)
	}
}
