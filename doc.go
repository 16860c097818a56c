// Package tess tessellates vector path geometry into width-annotated
// vertex streams for GPU-based stroke rendering.
//
// # Overview
//
// tess turns a sequence of path commands (move, line, quadratic and cubic
// Bezier, close) into a dense polyline sampled at a resolution
// proportional to each segment's arc length, with a stroke width
// interpolated at every vertex. It is designed to feed flat vertex
// buffers to renderers in the GoGPU ecosystem.
//
// # Quick Start
//
//	import "github.com/gogpu/tess"
//
//	p := tess.NewPath()
//	p.MoveTo(0, 0)
//	p.CubicTo(50, -50, 100, 50, 150, 0)
//
//	ts := tess.New(tess.WithStep(4))
//	res, err := ts.Tessellate(p, 6, 2) // width tapers from 6 to 2
//	if err != nil {
//	    // handle allocation or capacity failure
//	}
//	for _, v := range res.Vertices() {
//	    // v.X, v.Y, v.Width
//	}
//
// # Pipeline
//
// The pipeline is a single top-down pass with no feedback loop:
//
//	path commands -> segments (with arc lengths)
//	             -> descriptors (with vertex counts and offsets)
//	             -> evaluation into a preallocated record buffer
//	             -> ordered vertex sequence
//
// Extraction, length estimation, and descriptor building are sequential
// deterministic passes. Evaluation is the sole parallel stage: each
// descriptor owns a disjoint range of the output buffer, so any executor
// (sequential, worker pool, or the gpu sub-package) may process
// descriptors in any order and concurrency.
//
// # Precision
//
// Vertex records store position and width as 16-bit floats for GPU
// memory-bandwidth reasons. The precision loss is an accepted trade-off;
// consumers needing full precision can evaluate descriptors directly
// with EvaluateDescriptor.
package tess

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
