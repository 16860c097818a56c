package tess

import (
	"fmt"

	"github.com/gogpu/tess/internal/parallel"
)

// Executor runs descriptor evaluation against a preallocated output
// buffer. The buffer must hold exactly the total vertex count reported by
// BuildDescriptors. Execute must not return before every descriptor's
// range has been written; callers read the buffer only after it returns.
//
// Implementations may evaluate descriptors in any order and with any
// degree of parallelism: descriptor write ranges are disjoint by
// construction and no descriptor reads another descriptor's output.
type Executor interface {
	Execute(descriptors []Descriptor, buf []VertexRecord) error
}

// validateBounds checks every descriptor range against the buffer size
// before any evaluation starts. Out-of-range writes are a correctness
// bug, not a recoverable condition, so a bad range fails the whole
// invocation up front.
func validateBounds(descriptors []Descriptor, buf []VertexRecord) error {
	for i, d := range descriptors {
		end := int(d.VertexIndex) + int(d.VertexCount)
		if end > len(buf) {
			return fmt.Errorf("tess: descriptor %d range [%d:%d] exceeds buffer size %d",
				i, d.VertexIndex, end, len(buf))
		}
	}
	return nil
}

// SequentialExecutor evaluates descriptors one by one on the calling
// goroutine. It is the reference implementation: any other executor must
// produce bit-identical buffer contents.
type SequentialExecutor struct{}

// Execute evaluates all descriptors in input order.
func (SequentialExecutor) Execute(descriptors []Descriptor, buf []VertexRecord) error {
	if err := validateBounds(descriptors, buf); err != nil {
		return err
	}
	for _, d := range descriptors {
		EvaluateDescriptor(d, buf)
	}
	return nil
}

// ParallelExecutor fans descriptor evaluation out over a worker pool, one
// work item per descriptor, and waits on the pool's completion barrier
// before returning. Small batches run sequentially because dispatch
// overhead would dominate.
//
// A ParallelExecutor owns goroutines; call Close when done with it.
type ParallelExecutor struct {
	pool      *parallel.WorkerPool
	threshold int
}

// DefaultParallelThreshold is the descriptor count below which
// ParallelExecutor evaluates sequentially.
const DefaultParallelThreshold = 16

// NewParallelExecutor creates an executor backed by a worker pool with
// the given number of workers. Workers <= 0 uses GOMAXPROCS.
func NewParallelExecutor(workers int) *ParallelExecutor {
	return &ParallelExecutor{
		pool:      parallel.NewWorkerPool(workers),
		threshold: DefaultParallelThreshold,
	}
}

// SetThreshold sets the descriptor count below which evaluation runs
// sequentially. Values <= 0 disable the sequential shortcut.
func (e *ParallelExecutor) SetThreshold(n int) {
	e.threshold = n
}

// Workers returns the number of workers in the pool.
func (e *ParallelExecutor) Workers() int {
	return e.pool.Workers()
}

// Execute evaluates all descriptors, in parallel when the batch is large
// enough. It returns only after every descriptor has been evaluated.
func (e *ParallelExecutor) Execute(descriptors []Descriptor, buf []VertexRecord) error {
	if err := validateBounds(descriptors, buf); err != nil {
		return err
	}

	if len(descriptors) < e.threshold || !e.pool.IsRunning() {
		for _, d := range descriptors {
			EvaluateDescriptor(d, buf)
		}
		return nil
	}

	work := make([]func(), len(descriptors))
	for i := range descriptors {
		d := descriptors[i]
		work[i] = func() {
			EvaluateDescriptor(d, buf)
		}
	}
	e.pool.ExecuteAll(work)
	return nil
}

// Close shuts down the worker pool. After Close, Execute falls back to
// sequential evaluation. Close is safe to call multiple times.
func (e *ParallelExecutor) Close() {
	e.pool.Close()
}
