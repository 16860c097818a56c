package tess

import "math"

// VertexRecordSize is the size of one packed vertex record in bytes.
const VertexRecordSize = 8

// Vertex is one sample point of a tessellated path, with the interpolated
// stroke width at that point.
type Vertex struct {
	X, Y  float32
	Width float32
}

// VertexRecord is the packed form of a Vertex as written by evaluators
// into the shared output buffer: position and width as IEEE-754 binary16
// bits plus one padding lane. The reduced precision is a deliberate
// memory-bandwidth trade-off for GPU consumption.
//
// Each record is written exactly once by exactly one evaluation unit and
// never mutated after write.
type VertexRecord struct {
	X     uint16
	Y     uint16
	Width uint16
	Pad   uint16
}

// Vertex unpacks the record into float32 form.
func (r VertexRecord) Vertex() Vertex {
	return Vertex{
		X:     Float16ToFloat32(r.X),
		Y:     Float16ToFloat32(r.Y),
		Width: Float16ToFloat32(r.Width),
	}
}

func makeVertexRecord(p Point, width float32) VertexRecord {
	return VertexRecord{
		X:     Float16(p.X),
		Y:     Float16(p.Y),
		Width: Float16(width),
	}
}

// AssembleVertices reads back a filled output buffer into a flat,
// order-preserving vertex sequence. The buffer order already matches the
// original segment order by construction of the descriptor offsets, so
// this is a pass-through decode: no deduplication, no smoothing.
func AssembleVertices(records []VertexRecord) []Vertex {
	vertices := make([]Vertex, len(records))
	for i, r := range records {
		vertices[i] = r.Vertex()
	}
	return vertices
}

// Float16 converts an f32 to IEEE-754 binary16 format represented as the
// bits of a u16. Adapted from Fabian Giesen's float_to_half_fast3:
// https://gist.github.com/rygorous/2156668
func Float16(val float32) uint16 {
	const inf32 uint32 = 255 << 23
	const inf16 uint32 = 31 << 23
	const magic uint32 = 15 << 23
	const signMask uint32 = 0x8000_0000
	const roundMask uint32 = 0xFFFF_F000

	u := math.Float32bits(val)
	sign := u & signMask
	u = u ^ sign

	var output uint16
	if u >= inf32 {
		// NaN -> qNaN and Inf -> Inf
		if u > inf32 {
			output = 0x7E00
		} else {
			output = 0x7C00
		}
	} else {
		// (De)normalized number or zero
		u := u & roundMask
		u = math.Float32bits(math.Float32frombits(u) * math.Float32frombits(magic))
		u = u - roundMask

		// Clamp to signed infinity if exponent overflowed
		if u > inf16 {
			u = inf16
		}
		output = uint16(u >> 13)
	}
	return output | uint16(sign>>16)
}

// Float16ToFloat32 converts IEEE-754 binary16 bits back to an f32.
// Adapted from Fabian Giesen's half_to_float_fast4 from the same gist
// as Float16.
func Float16ToFloat32(bits uint16) float32 {
	const magic uint32 = 113 << 23
	const shiftedExp uint32 = 0x7C00 << 13

	u := uint32(bits&0x7FFF) << 13
	exp := u & shiftedExp
	u += (127 - 15) << 23

	switch exp {
	case shiftedExp:
		// Inf or NaN: adjust to the f32 exponent range
		u += (128 - 16) << 23
	case 0:
		// Zero or subnormal: renormalize through an f32 subtract
		u += 1 << 23
		u = math.Float32bits(math.Float32frombits(u) - math.Float32frombits(magic))
	}

	return math.Float32frombits(u | uint32(bits&0x8000)<<16)
}
