package adjacency

import (
	"github.com/patmonardo/adjgraph/alloc"
	"github.com/patmonardo/adjgraph/codec"
	"github.com/patmonardo/adjgraph/internal/options"
	"github.com/patmonardo/adjgraph/stats"
)

// FactoryConfig holds an AdjacencyCompressorFactory's shared configuration:
// the encoding strategy every compressor dispatches to, the mixed-list
// degree threshold, and the MemoryTracker workers report into. Configured
// via functional options, mirroring the teacher's NumericEncoderConfig/
// NumericEncoderOption pattern (blob/numeric_encoder_config.go).
type FactoryConfig struct {
	strategy        codec.Strategy
	mixedThreshold  int
	memoryTracker   stats.MemoryTracker
	defaultPageSize int
	propertyColumns int
}

// DefaultMixedThreshold is the default degree at or above which MixedAdjacencyList
// dispatches to its high-degree branch: 8*BlockSize = 512 (spec.md §4.6).
const DefaultMixedThreshold = 8 * 64

// NewFactoryConfig returns a FactoryConfig with DeltaVarLong as the default
// strategy, DefaultMixedThreshold, an empty MemoryTracker, and
// alloc.PageSize as the default page size, then applies opts in order.
func NewFactoryConfig(opts ...FactoryOption) (*FactoryConfig, error) {
	cfg := &FactoryConfig{
		strategy:        codec.DeltaVarLong{},
		mixedThreshold:  DefaultMixedThreshold,
		memoryTracker:   stats.Empty,
		defaultPageSize: alloc.PageSize,
		propertyColumns: 0,
	}

	if err := options.Apply[*FactoryConfig](cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FactoryOption represents a functional option for configuring a
// FactoryConfig.
type FactoryOption = options.Option[*FactoryConfig]

// WithStrategy selects the encoding strategy every compressor built from
// this factory dispatches to.
func WithStrategy(s codec.Strategy) FactoryOption {
	return options.NoError(func(c *FactoryConfig) {
		c.strategy = s
	})
}

// WithMixedThreshold records a mixed-list degree threshold in the
// FactoryConfig. Nothing reads it back: NewMixedAdjacencyList takes its
// threshold as an argument and dispatches at or above that value.
func WithMixedThreshold(threshold int) FactoryOption {
	return options.NoError(func(c *FactoryConfig) {
		c.mixedThreshold = threshold
	})
}

// WithMemoryTracker installs the MemoryTracker every compressor built from
// this factory reports allocations and block statistics into.
func WithMemoryTracker(tracker stats.MemoryTracker) FactoryOption {
	return options.NoError(func(c *FactoryConfig) {
		c.memoryTracker = tracker
	})
}

// WithDefaultPageSize overrides the page size new BumpAllocators built
// from this factory use for normal (non-oversized) pages.
func WithDefaultPageSize(size int) FactoryOption {
	return options.NoError(func(c *FactoryConfig) {
		c.defaultPageSize = size
	})
}

// WithPropertyColumns declares how many parallel property streams sources
// built from this factory carry. Each column gets its own page array; the
// first column's LocalAllocator decides propertyOffsets[s], and every
// other column writes positionally at that same offset into its own array
// (spec.md §4.3 step 5).
func WithPropertyColumns(n int) FactoryOption {
	return options.NoError(func(c *FactoryConfig) {
		c.propertyColumns = n
	})
}
