package tess

// EvaluateDescriptor evaluates one descriptor's curve at VertexCount
// parametric steps and writes the resulting vertex records into the
// descriptor's reserved range of the output buffer.
//
// The parameter for step i is t = i/(n-1), so the first vertex lands on
// the segment start and the last on the segment end. A single-vertex
// descriptor emits its start point (t = 0). Width is linearly
// interpolated between Width0 and Width1 by t.
//
// This is the unit of independent, parallelizable work: the function is
// pure apart from writes to buf[VertexIndex : VertexIndex+VertexCount],
// and descriptor ranges produced by BuildDescriptors are disjoint, so
// any number of descriptors may be evaluated concurrently against the
// same buffer. A zero-count descriptor returns without touching buf.
func EvaluateDescriptor(d Descriptor, buf []VertexRecord) {
	n := int(d.VertexCount)
	if n == 0 {
		return
	}

	w0 := Float16ToFloat32(d.Width0)
	w1 := Float16ToFloat32(d.Width1)
	out := buf[int(d.VertexIndex) : int(d.VertexIndex)+n]

	if n == 1 {
		out[0] = makeVertexRecord(d.P0, w0)
		return
	}

	div := float32(n - 1)
	for i := range out {
		t := float32(i) / div

		var p Point
		switch d.Kind {
		case KindQuad:
			p = QuadBez{P0: d.P0, P1: d.P1, P2: d.P2}.Eval(t)
		case KindCubic:
			p = CubicBez{P0: d.P0, P1: d.P1, P2: d.P2, P3: d.P3}.Eval(t)
		default:
			p = d.P0.Lerp(d.P1, t)
		}

		out[i] = makeVertexRecord(p, w0+(w1-w0)*t)
	}
}
