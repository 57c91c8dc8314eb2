package mesh

// Config tunes every stage of the build pipeline. Build it with
// DefaultConfig or DefaultConfigRT and refine with Option values, the
// same functional-options convention used throughout this module's
// teacher (see builder.BuilderOption in the lvlath graph library).
type Config struct {
	// Per-cluster size targets, passed through to the clusterizer.
	MaxVertices  int
	MinTriangles int
	MaxTriangles int

	// Partitioning setup.
	PartitionSpatial bool
	PartitionSort    bool
	PartitionSize    int

	// Clusterization setup: Spatial (true) vs Flex (false).
	ClusterSpatial      bool
	ClusterFillWeight   float32
	ClusterSplitFactor  float32
	OptimizeClusters    bool

	// Simplification setup.
	SimplifyRatio               float32
	SimplifyThreshold           float32
	SimplifyErrorMergePrevious  float32
	SimplifyErrorMergeAdditive  float32
	SimplifyErrorFactorSloppy   float32
	SimplifyErrorEdgeLimit      float32
	SimplifyPermissive          bool
	SimplifyFallbackPermissive  bool
	SimplifyFallbackSloppy      bool
	SimplifyRegularize          bool

	// OptimizeBounds, when set, recomputes per-cluster bounds precisely
	// for derived (re-clusterized) clusters instead of reusing the
	// group-merged bounds.
	OptimizeBounds bool

	// RetryStuckPartitions enables the legacy retry-queue behavior
	// recovered from original_source/demo/clusterlod.cpp: instead of
	// emitting a stuck partition as terminal immediately, its clusters
	// are folded back into the next depth's pending set. Off by default,
	// matching the primary behavior spec.md §9 Open Question 3 settles on.
	RetryStuckPartitions bool
}

// Option customizes a Config after construction from a preset.
type Option func(c *Config)

// WithPartitionSize overrides the target clusters-per-partition.
func WithPartitionSize(n int) Option {
	return func(c *Config) { c.PartitionSize = n }
}

// WithPartitionSpatial toggles spatial-aware partitioning.
func WithPartitionSpatial(spatial bool) Option {
	return func(c *Config) { c.PartitionSpatial = spatial }
}

// WithPartitionSort toggles spatial reordering of emitted partitions.
func WithPartitionSort(sort bool) Option {
	return func(c *Config) { c.PartitionSort = sort }
}

// WithSimplifyRatio overrides the per-level triangle reduction target.
func WithSimplifyRatio(ratio float32) Option {
	return func(c *Config) { c.SimplifyRatio = ratio }
}

// WithSimplifyThreshold overrides the stall-detection threshold.
func WithSimplifyThreshold(threshold float32) Option {
	return func(c *Config) { c.SimplifyThreshold = threshold }
}

// WithSimplifyPermissive toggles default permissive simplification.
func WithSimplifyPermissive(permissive bool) Option {
	return func(c *Config) { c.SimplifyPermissive = permissive }
}

// WithSimplifyFallbacks toggles the permissive and sloppy fallback passes.
func WithSimplifyFallbacks(permissive, sloppy bool) Option {
	return func(c *Config) {
		c.SimplifyFallbackPermissive = permissive
		c.SimplifyFallbackSloppy = sloppy
	}
}

// WithSimplifyRegularize toggles uniform-density bias during simplification.
func WithSimplifyRegularize(regularize bool) Option {
	return func(c *Config) { c.SimplifyRegularize = regularize }
}

// WithSimplifyErrorEdgeLimit sets the edge-length error clamp factor; 0 disables it.
func WithSimplifyErrorEdgeLimit(limit float32) Option {
	return func(c *Config) { c.SimplifyErrorEdgeLimit = limit }
}

// WithOptimizeBounds toggles precise per-cluster bounds recomputation.
func WithOptimizeBounds(optimize bool) Option {
	return func(c *Config) { c.OptimizeBounds = optimize }
}

// WithOptimizeClusters toggles intra-cluster triangle reordering.
func WithOptimizeClusters(optimize bool) Option {
	return func(c *Config) { c.OptimizeClusters = optimize }
}

// WithRetryStuckPartitions enables the legacy retry-queue behavior; see
// Config.RetryStuckPartitions.
func WithRetryStuckPartitions(retry bool) Option {
	return func(c *Config) { c.RetryStuckPartitions = retry }
}

// apply runs each option over c in order; later options override earlier ones.
func (c *Config) apply(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// DefaultConfig returns a rasterization-oriented configuration targeting
// clusters of up to maxTriangles triangles. Panics if maxTriangles is
// outside [4, 256], matching the teacher's convention of validating
// literal construction-time arguments eagerly.
func DefaultConfig(maxTriangles int, opts ...Option) Config {
	if maxTriangles < 4 || maxTriangles > 256 {
		panic(errorf("DefaultConfig", ErrMaxTriangles))
	}

	cfg := Config{
		MaxVertices:  maxTriangles,
		MinTriangles: maxTriangles / 3,
		MaxTriangles: maxTriangles,

		PartitionSpatial: true,
		PartitionSize:    16,

		ClusterSpatial:     false,
		ClusterSplitFactor: 2.0,
		OptimizeClusters:   true,

		SimplifyRatio:              0.5,
		SimplifyThreshold:          0.85,
		SimplifyErrorMergePrevious: 1.0,
		SimplifyErrorFactorSloppy:  2.0,
		SimplifyPermissive:         true,
		SimplifyFallbackPermissive: false,
		SimplifyFallbackSloppy:     true,
	}

	cfg.apply(opts)
	return cfg
}

// DefaultConfigRT returns a ray-tracing-oriented configuration: smaller
// clusters for tighter BVH leaves, larger MaxVertices since vertex count
// doesn't matter for ray tracing throughput, and spatial clusterization
// for more uniform-radius clusters.
func DefaultConfigRT(maxTriangles int, opts ...Option) Config {
	cfg := DefaultConfig(maxTriangles)

	cfg.MinTriangles = maxTriangles / 4

	maxVertices := maxTriangles * 2
	if maxVertices > 256 {
		maxVertices = 256
	}
	cfg.MaxVertices = maxVertices

	cfg.ClusterSpatial = true
	cfg.ClusterFillWeight = 0.5
	cfg.OptimizeClusters = false

	cfg.apply(opts)
	return cfg
}

// Validate checks the structural preconditions on Config itself
// (independent of any particular Mesh).
func (c *Config) Validate() error {
	if c.MaxTriangles < 4 || c.MaxTriangles > 256 {
		return errorf("Validate", ErrMaxTriangles)
	}
	if c.MinTriangles > c.MaxTriangles {
		return errorf("Validate", ErrMinTriangles)
	}
	if c.MaxVertices <= 0 || c.MaxVertices > 256 {
		return errorf("Validate", ErrMaxVertices)
	}
	return nil
}
