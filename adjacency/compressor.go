package adjacency

import (
	"sort"

	"github.com/patmonardo/adjgraph/agg"
	"github.com/patmonardo/adjgraph/alloc"
	"github.com/patmonardo/adjgraph/codec"
	"github.com/patmonardo/adjgraph/errs"
	"github.com/patmonardo/adjgraph/internal/pool"
	"github.com/patmonardo/adjgraph/stats"
	"github.com/patmonardo/adjgraph/varint"
)

// AdjacencyCompressor is a single worker's per-source compression
// pipeline: sort, aggregate, dispatch to the encoding strategy, and record
// (degree, adjacencyOffset, propertyOffset) into the shared Tables
// (spec.md §4.3). It is not safe for concurrent use; each worker owns
// exactly one, matching spec.md §5's "each worker holds its own... in-
// flight compressor."
type AdjacencyCompressor struct {
	adjacency      *alloc.LocalAllocator[*alloc.BytePage]
	firstProperty  *alloc.LocalAllocator[*alloc.BytePage]
	restProperties []*alloc.PositionalAllocator

	strategy      codec.Strategy
	tables        *Tables
	blockStats    *stats.BlockStatistics
	memoryTracker stats.MemoryTracker
}

// Compress runs the full pipeline for one source: sort targets[:degree]
// ascending, drop/aggregate duplicates according to aggregations (nil
// means NONE — keep every edge), dispatch the resulting delta chain to
// the configured Strategy, and record the outcome in Tables at index
// source. It returns the new degree after duplicate folding.
//
// When every aggregation is agg.None, duplicate targets are kept as
// separate edges with their own property values. A duplicate target while
// only some streams use agg.None returns errs.ErrAggregationMissing.
//
// properties, if non-nil, must have one []float64 per aggregations entry,
// each of length degree; properties[p][i] corresponds to targets[i].
func (c *AdjacencyCompressor) Compress(source int, targets []uint64, degree int, properties [][]float64, aggregations []agg.Aggregation) (int, error) {
	if degree < 0 {
		return 0, errs.ErrInvalidDegree
	}

	if properties != nil {
		return c.compressWithProperties(source, targets, degree, properties, aggregations)
	}

	return c.compressTargetsOnly(source, targets, degree)
}

func (c *AdjacencyCompressor) compressTargetsOnly(source int, targets []uint64, degree int) (int, error) {
	sorted, putSorted := pool.GetUint64Slice(degree)
	defer putSorted()
	copy(sorted, targets[:degree])
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	deltas, putDeltas := pool.GetUint64Slice(degree)
	defer putDeltas()

	// No aggregation applies on this path (spec.md §4.3's no-properties
	// pipeline); every input survives, including literal duplicate ids,
	// which simply produce a zero delta — equivalent to aggregation NONE.
	newDegree := 0
	var prev uint64
	for i := 0; i < degree; i++ {
		v := sorted[i]
		deltas[newDegree] = v - prev
		newDegree++
		prev = v
	}

	c.writeAdjacency(source, deltas[:newDegree], newDegree)

	return newDegree, nil
}

func (c *AdjacencyCompressor) compressWithProperties(source int, targets []uint64, degree int, properties [][]float64, aggregations []agg.Aggregation) (int, error) {
	if !c.strategy.SupportsProperties() {
		return 0, errs.ErrPropertiesUnsupported
	}
	if len(aggregations) != len(properties) {
		return 0, errs.ErrPropertyStreamCountMismatch
	}
	for _, stream := range properties {
		if len(stream) != degree {
			return 0, errs.ErrPropertyLengthMismatch
		}
	}
	if c.firstProperty == nil {
		return 0, errs.ErrPropertyAllocatorAbsent
	}

	order, putOrder := pool.GetIntSlice(degree)
	defer putOrder()
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return targets[order[i]] < targets[order[j]] })

	deltas, putDeltas := pool.GetUint64Slice(degree)
	defer putDeltas()

	outProps := make([][]float64, len(properties))
	putProps := make([]func(), len(properties))
	for p := range properties {
		outProps[p], putProps[p] = pool.GetFloat64Slice(degree)
	}
	defer func() {
		for _, put := range putProps {
			put()
		}
	}()

	noAggregation := true
	for _, a := range aggregations {
		if !agg.IsNone(a) {
			noAggregation = false
			break
		}
	}

	newDegree := 0
	var prev uint64
	for i := 0; i < degree; i++ {
		idx := order[i]
		v := targets[idx]

		if i == 0 {
			deltas[0] = v
			for p := range properties {
				outProps[p][0] = agg.SeedValue(aggregations[p], properties[p][idx])
			}
			newDegree = 1
			prev = v

			continue
		}

		delta := v - prev
		if delta > 0 || noAggregation {
			deltas[newDegree] = delta
			for p := range properties {
				outProps[p][newDegree] = agg.SeedValue(aggregations[p], properties[p][idx])
			}
			newDegree++
			prev = v

			continue
		}

		for p := range properties {
			if agg.IsNone(aggregations[p]) {
				return 0, errs.ErrAggregationMissing
			}
			outProps[p][newDegree-1] = aggregations[p].Merge(outProps[p][newDegree-1], properties[p][idx])
		}
	}

	truncated := make([][]float64, len(outProps))
	for p := range outProps {
		truncated[p] = outProps[p][:newDegree]
	}

	c.writeAdjacency(source, deltas[:newDegree], newDegree)
	c.writeProperties(source, truncated, newDegree)

	return newDegree, nil
}

func (c *AdjacencyCompressor) writeAdjacency(source int, deltas []uint64, newDegree int) {
	encoded := c.strategy.Compress(deltas, newDegree)

	off := alloc.NoOffset
	if len(encoded) > 0 {
		off = c.adjacency.Reserve(len(encoded))
		copy(c.adjacency.Window(off, len(encoded)), encoded)
	}

	c.tables.Degrees[source] = uint32(newDegree)
	c.tables.AdjacencyOffsets[source] = off

	if newDegree > 0 {
		for start := 0; start < newDegree; start += varint.BlockSize {
			c.blockStats.RecordBlock(deltas[start:], min(varint.BlockSize, newDegree-start))
		}
		c.blockStats.RecordEncoded(encoded)
		c.memoryTracker.RecordHeaderBits(len(encoded) * 8)
		c.memoryTracker.RecordHeapAllocation(len(encoded))
	}
}

// writeProperties implements spec.md §4.3 step 5: the first property
// stream uses its own primary (bump) allocator to decide propertyOffsets[s],
// and every later stream is written into its OWN column's array, but
// positionally at that exact same Offset value — so all property streams
// for this source share propertyOffsets[source] as a coordinate and are
// indexed identically by k ∈ [0, newDegree), without aliasing each other's
// bytes.
func (c *AdjacencyCompressor) writeProperties(source int, props [][]float64, newDegree int) {
	if len(props) == 0 || newDegree == 0 {
		return
	}

	payload := floatsToBytes(props[0])
	off := c.firstProperty.Reserve(len(payload))
	copy(c.firstProperty.Window(off, len(payload)), payload)

	for p := 1; p < len(props); p++ {
		_ = c.restProperties[p-1].InsertAt(off, floatsToBytes(props[p]))
	}

	c.tables.PropertyOffsets[source] = off
	c.memoryTracker.RecordHeapAllocation(len(payload) * len(props))
}
