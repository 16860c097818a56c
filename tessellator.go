package tess

import (
	"fmt"
	"iter"
	"sync"
)

// Tessellator runs the full tessellation pipeline: segment extraction,
// arc-length-based vertex budgeting, descriptor building, evaluation, and
// vertex assembly. A Tessellator is cheap to create and safe for
// concurrent use as long as its executor is.
type Tessellator struct {
	cfg config

	// owned is the parallel executor created by WithWorkers, released
	// by Close. Nil when the executor was caller-supplied or default.
	owned *ParallelExecutor
}

// New creates a tessellator. Without options it uses DefaultStep and
// sequential evaluation.
func New(opts ...Option) *Tessellator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Tessellator{cfg: cfg}
	if cfg.executor == nil {
		if cfg.parallel {
			t.owned = NewParallelExecutor(cfg.workers)
			t.owned.SetThreshold(cfg.threshold)
			t.cfg.executor = t.owned
		} else {
			t.cfg.executor = SequentialExecutor{}
		}
	}
	return t
}

// Step returns the configured tessellation step.
func (t *Tessellator) Step() float32 {
	return t.cfg.step
}

// Tessellate runs the pipeline over a path. width0 and width1 are the
// stroke widths at each segment's start and end; they apply uniformly to
// all segments in this invocation. A nil or empty path yields an empty
// result.
//
// The output buffer is allocated once per invocation, sized exactly to
// the computed vertex total, and handed to the result read-only after
// the executor's completion barrier.
func (t *Tessellator) Tessellate(path *Path, width0, width1 float32) (*Result, error) {
	if path == nil {
		return t.TessellateCommands(nil, width0, width1)
	}
	return t.TessellateCommands(path.Commands(), width0, width1)
}

// TessellateCommands runs the pipeline over a raw command sequence.
func (t *Tessellator) TessellateCommands(commands []PathCommand, width0, width1 float32) (*Result, error) {
	segments := ExtractSegments(commands)

	descriptors, total, err := BuildDescriptors(segments, width0, width1, t.cfg.step)
	if err != nil {
		return nil, err
	}

	records := make([]VertexRecord, total)
	if err := t.cfg.executor.Execute(descriptors, records); err != nil {
		return nil, fmt.Errorf("tess: evaluation failed: %w", err)
	}

	Logger().Debug("tess: tessellated path",
		"commands", len(commands),
		"segments", len(segments),
		"descriptors", len(descriptors),
		"vertices", total)

	return &Result{
		descriptors: descriptors,
		records:     records,
	}, nil
}

// Close releases the executor owned by the tessellator, if any.
// Caller-supplied executors are not touched.
func (t *Tessellator) Close() {
	if t.owned != nil {
		t.owned.Close()
	}
}

// Result holds the output of one tessellation invocation: the descriptor
// list and the filled vertex record buffer, in original segment order.
type Result struct {
	descriptors []Descriptor
	records     []VertexRecord
}

// VertexCount returns the total number of vertices produced.
func (r *Result) VertexCount() int {
	return len(r.records)
}

// Descriptors returns the descriptor list in segment order.
// The returned slice is read-only.
func (r *Result) Descriptors() []Descriptor {
	return r.descriptors
}

// Records returns the packed vertex records in segment order.
// The returned slice is read-only.
func (r *Result) Records() []VertexRecord {
	return r.records
}

// Vertices unpacks the record buffer into a flat vertex sequence whose
// order matches the input command order.
func (r *Result) Vertices() []Vertex {
	return AssembleVertices(r.records)
}

// All iterates the vertices in order without allocating the full slice.
func (r *Result) All() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		for _, rec := range r.records {
			if !yield(rec.Vertex()) {
				return
			}
		}
	}
}

// TessellatorPool provides reusable tessellators to reduce allocation
// pressure in hot paths. All tessellators from one pool share the same
// options.
type TessellatorPool struct {
	pool sync.Pool
}

// NewTessellatorPool creates a pool whose tessellators are built with the
// given options. WithWorkers should not be used here: pooled tessellators
// are never closed individually, so give the pool a shared executor via
// WithExecutor instead.
func NewTessellatorPool(opts ...Option) *TessellatorPool {
	return &TessellatorPool{
		pool: sync.Pool{
			New: func() any {
				return New(opts...)
			},
		},
	}
}

// Get returns a tessellator from the pool, creating one if needed.
func (p *TessellatorPool) Get() *Tessellator {
	return p.pool.Get().(*Tessellator)
}

// Put returns a tessellator to the pool for reuse.
func (p *TessellatorPool) Put(t *Tessellator) {
	if t == nil {
		return
	}
	p.pool.Put(t)
}
