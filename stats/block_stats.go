package stats

import (
	"github.com/cespare/xxhash/v2"
	"github.com/patmonardo/adjgraph/varint"
)

// maxBlockBits bounds the per-block histograms; a block's bit width is in
// [0, 64].
const maxBlockBits = 64

// BlockStatistics accumulates per-block compression statistics: bits used,
// PFOR exception counts, head/tail delta spread, and repeated-block
// detection via content fingerprint. One instance lives per worker during
// a build (spec.md §4.7); MergeInto combines several into a single
// reporting aggregate.
type BlockStatistics struct {
	Bits           *BoundedHistogram
	Exceptions     *BoundedHistogram
	BestWidthDelta *BoundedHistogram
	HeadTailDiff   *BoundedHistogram

	// RepeatBlocks counts encoded blocks whose Fingerprint has already
	// been seen by this instance: a source compressing to the exact same
	// bytes as an earlier one, most often an empty or fully-padded block
	// from BlockAlignedTail. seen holds every distinct fingerprint so
	// far.
	RepeatBlocks int64
	seen         map[uint64]struct{}
}

// NewBlockStatistics creates an empty BlockStatistics instance.
func NewBlockStatistics() *BlockStatistics {
	return &BlockStatistics{
		Bits:           NewBoundedHistogram(maxBlockBits),
		Exceptions:     NewBoundedHistogram(varint.BlockSize),
		BestWidthDelta: NewBoundedHistogram(maxBlockBits),
		HeadTailDiff:   NewBoundedHistogram(maxBlockBits),
		seen:           make(map[uint64]struct{}),
	}
}

// RecordBlock runs the PFOR heuristic over a block's values and records
// the resulting statistics: the block's true bit width, its best
// alternative width's exception count, and the head/tail value spread
// (difference in bits needed between the block's first and last value).
func (s *BlockStatistics) RecordBlock(values []uint64, length int) {
	width := varint.BitsNeeded(values, length)
	s.Bits.Record(width)

	diff, exceptions := varint.BestPFORWidth(values, length, width)
	s.BestWidthDelta.Record(diff)
	s.Exceptions.Record(exceptions)

	if length > 0 {
		headBits := bitsOf(values[0])
		tailBits := bitsOf(values[length-1])
		d := tailBits - headBits
		if d < 0 {
			d = -d
		}
		s.HeadTailDiff.Record(d)
	}
}

func bitsOf(v uint64) int {
	return varint.BitsNeeded([]uint64{v}, 1)
}

// RecordEncoded fingerprints a source's final encoded block and tallies
// RepeatBlocks when that fingerprint has already been seen by this
// instance. Called once per non-empty source alongside RecordBlock, over
// the same bytes committed to the adjacency page array.
func (s *BlockStatistics) RecordEncoded(block []byte) {
	h := Fingerprint(block)
	if _, ok := s.seen[h]; ok {
		s.RepeatBlocks++
		return
	}

	s.seen[h] = struct{}{}
}

// MergeInto adds this BlockStatistics' histograms and fingerprint set into
// other.
func (s *BlockStatistics) MergeInto(other *BlockStatistics) {
	other.Bits.Add(s.Bits)
	other.Exceptions.Add(s.Exceptions)
	other.BestWidthDelta.Add(s.BestWidthDelta)
	other.HeadTailDiff.Add(s.HeadTailDiff)

	for h := range s.seen {
		if _, ok := other.seen[h]; ok {
			other.RepeatBlocks++
			continue
		}
		other.seen[h] = struct{}{}
	}
	other.RepeatBlocks += s.RepeatBlocks
}

// Fingerprint hashes a compressed block's raw bytes with xxhash, giving
// BlockStatistics a cheap diagnostic content hash for distinguishing
// genuinely distinct blocks from repeats during PFOR analysis (see
// DESIGN.md: repurposed from the teacher's internal/hash.ID, which hashes
// metric names the same way).
func Fingerprint(block []byte) uint64 {
	return xxhash.Sum64(block)
}
