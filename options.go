package tess

// Option configures a Tessellator during creation.
// Use functional options to customize Tessellator behavior.
//
// Example:
//
//	// Default: step 8, sequential evaluation
//	ts := tess.New()
//
//	// Denser output, evaluated on a worker pool
//	ts := tess.New(tess.WithStep(2), tess.WithWorkers(0))
type Option func(*config)

// config holds optional configuration for Tessellator creation.
type config struct {
	step      float32
	executor  Executor
	workers   int
	threshold int
	parallel  bool
}

// defaultConfig returns the default tessellator configuration.
func defaultConfig() config {
	return config{
		step:      DefaultStep,
		threshold: DefaultParallelThreshold,
	}
}

// WithStep sets the tessellation step in world units. Each segment
// produces floor(length/step) vertices; smaller values increase fidelity
// and output size. Values <= 0 fall back to DefaultStep.
func WithStep(step float32) Option {
	return func(c *config) {
		if step <= 0 {
			Logger().Debug("tess: ignoring non-positive step", "step", step)
			return
		}
		c.step = step
	}
}

// WithExecutor sets a custom executor for descriptor evaluation.
// Use this for dependency injection of GPU or custom executors.
//
// Example:
//
//	exec, err := gpu.NewExecutor(device, queue)
//	if err != nil { ... }
//	ts := tess.New(tess.WithExecutor(exec))
//
// The caller keeps ownership of the executor; Tessellator.Close does not
// release it.
func WithExecutor(e Executor) Option {
	return func(c *config) {
		c.executor = e
	}
}

// WithWorkers makes the tessellator own a ParallelExecutor with the given
// number of workers. Workers <= 0 uses GOMAXPROCS. The executor is
// released by Tessellator.Close.
//
// WithExecutor takes precedence when both are given.
func WithWorkers(workers int) Option {
	return func(c *config) {
		c.parallel = true
		c.workers = workers
	}
}

// WithParallelThreshold sets the descriptor count below which an owned
// parallel executor evaluates sequentially. Only meaningful together
// with WithWorkers.
func WithParallelThreshold(n int) Option {
	return func(c *config) {
		c.threshold = n
	}
}
