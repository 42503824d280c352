// Package adjacency implements the per-source compressor, factory,
// adjacency list, cursor, and mixed dispatching list that sit on top of
// alloc, varint, codec, agg, and stats (spec.md §4.3–§4.6).
package adjacency

import "github.com/patmonardo/adjgraph/alloc"

// Tables holds the three large, disjointly-written arrays shared by every
// worker's compressor for a single adjacency list: one slot per source id.
// Workers partition sources by id and write only their own slots, so no
// synchronization is needed across workers (spec.md §5).
type Tables struct {
	Degrees          []uint32
	AdjacencyOffsets []alloc.Offset
	PropertyOffsets  []alloc.Offset
}

// NewTables sizes the three tables for nodeCount sources.
func NewTables(nodeCount int) *Tables {
	return &Tables{
		Degrees:          make([]uint32, nodeCount),
		AdjacencyOffsets: make([]alloc.Offset, nodeCount),
		PropertyOffsets:  make([]alloc.Offset, nodeCount),
	}
}
