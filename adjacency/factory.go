package adjacency

import (
	"github.com/patmonardo/adjgraph/alloc"
	"github.com/patmonardo/adjgraph/stats"
)

// Factory creates per-worker AdjacencyCompressors that share one set of
// Tables, one adjacency page allocator, and one page allocator per property
// column, per spec.md §4.3's factory responsibility. There is no abstract
// base class here (spec.md §9): Factory is a single concrete type, since
// this module only ever builds one compressor shape; AdjacencyCompressor
// itself is the capability a caller depends on.
type Factory struct {
	cfg    *FactoryConfig
	tables *Tables

	adjacencyPages      *alloc.BumpAllocator[*alloc.BytePage]
	propertyColumnPages []*alloc.BumpAllocator[*alloc.BytePage]
}

// NewFactory builds a Factory sized for nodeCount sources. It allocates one
// independent page array per property column (cfg.propertyColumns), since
// every column beyond the first is written positionally at the same Offset
// value as the first but must not alias its bytes (spec.md §4.3 step 5).
func NewFactory(nodeCount int, cfg *FactoryConfig) *Factory {
	columns := make([]*alloc.BumpAllocator[*alloc.BytePage], cfg.propertyColumns)
	for i := range columns {
		columns[i] = alloc.NewBumpAllocator[*alloc.BytePage](alloc.BytePageFactory{}, cfg.defaultPageSize)
	}

	return &Factory{
		cfg:                 cfg,
		tables:              NewTables(nodeCount),
		adjacencyPages:      alloc.NewBumpAllocator[*alloc.BytePage](alloc.BytePageFactory{}, cfg.defaultPageSize),
		propertyColumnPages: columns,
	}
}

// NewWorkerCompressor returns a fresh AdjacencyCompressor bound to this
// factory's shared Tables and page allocators. Callers create one per
// worker (spec.md §5); it is not safe to share across goroutines.
func (f *Factory) NewWorkerCompressor() *AdjacencyCompressor {
	var firstProperty *alloc.LocalAllocator[*alloc.BytePage]
	var restProperties []*alloc.PositionalAllocator

	if len(f.propertyColumnPages) > 0 {
		firstProperty = f.propertyColumnPages[0].NewLocalAllocator()
		restProperties = make([]*alloc.PositionalAllocator, len(f.propertyColumnPages)-1)
		for i := 1; i < len(f.propertyColumnPages); i++ {
			restProperties[i-1] = alloc.NewPositionalAllocator(f.propertyColumnPages[i])
		}
	}

	return &AdjacencyCompressor{
		adjacency:      f.adjacencyPages.NewLocalAllocator(),
		firstProperty:  firstProperty,
		restProperties: restProperties,
		strategy:       f.cfg.strategy,
		tables:         f.tables,
		blockStats:     stats.NewBlockStatistics(),
		memoryTracker:  f.cfg.memoryTracker,
	}
}

// Build finalizes the factory into a read-only AdjacencyList: it snapshots
// the adjacency page array and every property column's page array (spec.md
// §4.1's intoPages, called exactly once, after every worker has finished)
// and hands the shared Tables to the list.
func (f *Factory) Build() *AdjacencyList {
	columns := make([][]*alloc.BytePage, len(f.propertyColumnPages))
	for i, p := range f.propertyColumnPages {
		columns[i] = p.IntoPages()
	}

	return &AdjacencyList{
		tables:         f.tables,
		strategy:       f.cfg.strategy,
		adjacencyPages: f.adjacencyPages.IntoPages(),
		propertyPages:  columns,
		memoryTracker:  f.cfg.memoryTracker,
	}
}
