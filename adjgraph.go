// Package adjgraph provides a compressed, page-backed adjacency-list
// storage engine for property graphs.
//
// adjgraph is built for workloads with many source nodes and widely
// varying fan-out per node, trading a small amount of decode-time CPU for
// a large reduction in resident memory: neighbor ids are sorted,
// delta-encoded, and bit-packed into one of five interchangeable
// compression strategies, and edge properties (when present) are folded
// across duplicate targets by a caller-chosen aggregation.
//
// # Core features
//
//   - Bump-allocated, page-backed storage (alloc) instead of one Go slice
//     per source, so per-source overhead stays proportional to bytes used
//   - Five interchangeable block encodings (codec), selectable per list
//   - Optional per-edge property streams, aggregated across duplicate
//     targets (agg) during compression rather than stored redundantly
//   - A mixed, dispatching adjacency list (adjacency.MixedAdjacencyList)
//     that routes high-degree sources to one encoding and low-degree
//     sources to another
//   - Block-level statistics and memory accounting (stats) for the
//     built list
//
// # Basic usage
//
// Compressing a graph's adjacency lists:
//
//	import "github.com/patmonardo/adjgraph"
//
//	opts := []adjacency.FactoryOption{adjacency.WithStrategy(codec.PackedTail{})}
//	list, err := adjgraph.BuildAdjacencyList(nodeCount, opts, func(c *adjacency.AdjacencyCompressor) error {
//	    for source, targets := range edges {
//	        if _, err := c.Compress(source, targets, len(targets), nil, nil); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	})
//
// Reading it back:
//
//	cur := list.Cursor(source)
//	for v := cur.Next(); v != codec.NotFound; v = cur.Next() {
//	    fmt.Println(v)
//	}
//
// # Package structure
//
// This package provides convenient top-level wrappers around the
// adjacency package for the single-worker case. Concurrent ingestion,
// multiple property columns, and the mixed dispatching list are built
// directly against the adjacency package; see its doc comment.
package adjgraph

import (
	"github.com/patmonardo/adjgraph/adjacency"
	"github.com/patmonardo/adjgraph/codec"
)

// NewFactory builds an adjacency.Factory sized for nodeCount sources,
// configured via opts. This is a thin forward to adjacency.NewFactory for
// callers who only import the top-level package.
func NewFactory(nodeCount int, opts ...adjacency.FactoryOption) (*adjacency.Factory, error) {
	cfg, err := adjacency.NewFactoryConfig(opts...)
	if err != nil {
		return nil, err
	}

	return adjacency.NewFactory(nodeCount, cfg), nil
}

// BuildAdjacencyList runs build against a single worker compressor drawn
// from a fresh Factory and returns the finished AdjacencyList.
//
// This is the single-worker convenience path (spec.md §5's "one worker" is
// the degenerate, common case): callers with a partitioned multi-worker
// pipeline should use adjacency.NewFactory/NewWorkerCompressor/Build
// directly instead, one compressor per worker, sharing the same Factory.
func BuildAdjacencyList(nodeCount int, opts []adjacency.FactoryOption, build func(*adjacency.AdjacencyCompressor) error) (*adjacency.AdjacencyList, error) {
	f, err := NewFactory(nodeCount, opts...)
	if err != nil {
		return nil, err
	}

	c := f.NewWorkerCompressor()
	if err := build(c); err != nil {
		return nil, err
	}

	return f.Build(), nil
}

// NewMixedAdjacencyList composes a (high-degree branch) and b (low-degree
// branch) into a single dispatching list, routing each source by degree
// against threshold (spec.md §4.6). Use adjacency.DefaultMixedThreshold
// when the caller has no tuned value.
func NewMixedAdjacencyList(a, b *adjacency.AdjacencyList, threshold int) *adjacency.MixedAdjacencyList {
	return adjacency.NewMixedAdjacencyList(a, b, threshold)
}

// ForKind resolves one of the five encoding strategy kinds to its
// singleton codec.Strategy.
func ForKind(k codec.Kind) (codec.Strategy, error) {
	return codec.ForKind(k)
}
