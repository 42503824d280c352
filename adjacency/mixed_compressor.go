package adjacency

import "github.com/patmonardo/adjgraph/agg"

// MixedCompressor fans a single source's inputs out to both branches'
// per-source compressors so A and B stay coherent over the same source
// stream (spec.md §4.6). Each branch owns its own Tables/Factory — the
// degree/offset bookkeeping is not literally shared between the two
// strategies' pages, since each strategy produces its own offsets into its
// own page allocator; MixedAdjacencyList.Degree reads B's table as the
// canonical value, matching spec.md's "degree(s) is always answered by B."
type MixedCompressor struct {
	high *AdjacencyCompressor // branch A
	low  *AdjacencyCompressor // branch B
}

// NewMixedCompressor pairs a high-branch and low-branch worker compressor.
func NewMixedCompressor(high, low *AdjacencyCompressor) *MixedCompressor {
	return &MixedCompressor{high: high, low: low}
}

// Compress runs source's inputs through both branch compressors and
// returns B's newDegree, the canonical value.
func (m *MixedCompressor) Compress(source int, targets []uint64, degree int, properties [][]float64, aggregations []agg.Aggregation) (int, error) {
	if _, err := m.high.Compress(source, targets, degree, properties, aggregations); err != nil {
		return 0, err
	}

	return m.low.Compress(source, targets, degree, properties, aggregations)
}
