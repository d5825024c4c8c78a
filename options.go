package sparse

// ContextOption configures a Context during creation.
// Use functional options to customize Context behavior.
//
// Example:
//
//	// Default configuration
//	ctx := sparse.NewContext(800, 600)
//
//	// Forced scalar kernel, four render workers
//	ctx := sparse.NewContext(800, 600,
//	    sparse.WithKernelMode(sparse.KernelScalar),
//	    sparse.WithWorkers(4))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	kernelMode KernelMode
	workers    int
	tolerance  float64
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		kernelMode: KernelAuto,
		workers:    1, // Single-threaded rendering unless asked otherwise
	}
}

// WithKernelMode sets the fine-rasterization kernel for the Context.
// The default, [KernelAuto], selects from runtime CPU detection.
func WithKernelMode(m KernelMode) ContextOption {
	return func(o *contextOptions) {
		o.kernelMode = m
	}
}

// WithTolerance sets the curve-flattening tolerance in device pixels.
// Smaller values trade speed for smoother curves. Values that are zero
// or negative keep the default of 0.25.
func WithTolerance(tol float64) ContextOption {
	return func(o *contextOptions) {
		o.tolerance = tol
	}
}

// WithWorkers sets the number of goroutines used for fine
// rasterization. The default is 1 (no parallelism); 0 or negative
// means one worker per CPU. Output is identical at any worker count
// because workers own disjoint rows of wide tiles.
func WithWorkers(n int) ContextOption {
	return func(o *contextOptions) {
		o.workers = n
	}
}
