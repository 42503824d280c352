// Package codec implements the five interchangeable compression
// strategies of spec.md §4.4: DeltaVarLong, PackedTail, VarLongTail,
// BlockAlignedTail, and InlinedHeadPackedTail. Every strategy consumes a
// sorted, delta-encoded, duplicate-aggregated array of uint64 values (the
// AdjacencyCompressor's job) and produces a self-contained byte block; the
// matching Decoder streams values back out given only the block's bytes
// and the out-of-band degree.
package codec

import (
	"github.com/patmonardo/adjgraph/errs"
	"github.com/patmonardo/adjgraph/varint"
)

// Kind identifies one of the five encoding strategies. It is stored
// alongside a source's degree/offset entries (conceptually; the core
// itself is homogeneous per adjacency list, see spec.md §4.6) so a cursor
// knows which Decoder to build.
type Kind uint8

const (
	KindDeltaVarLong Kind = iota
	KindPackedTail
	KindVarLongTail
	KindBlockAlignedTail
	KindInlinedHeadPackedTail
)

func (k Kind) String() string {
	switch k {
	case KindDeltaVarLong:
		return "DeltaVarLong"
	case KindPackedTail:
		return "PackedTail"
	case KindVarLongTail:
		return "VarLongTail"
	case KindBlockAlignedTail:
		return "BlockAlignedTail"
	case KindInlinedHeadPackedTail:
		return "InlinedHeadPackedTail"
	default:
		return "Unknown"
	}
}

// Strategy is the capability every encoding strategy implements: compress
// a delta-encoded array into bytes, and hand back a fresh Decoder for
// streaming it back out. There is no abstract base class here — just five
// concrete Go types implementing the same small interface, per spec.md
// §9's note on collapsing AbstractAdjacencyCompressorFactory-style
// inheritance into a capability.
type Strategy interface {
	Kind() Kind
	// SupportsProperties reports whether this strategy can be used when a
	// source carries property streams. Only BlockAlignedTail rejects them
	// (spec.md §4.4).
	SupportsProperties() bool
	// Compress encodes deltas[:length] into a self-contained byte block.
	Compress(deltas []uint64, length int) []byte
	// NewDecoder returns a fresh, zero-value Decoder for this strategy.
	NewDecoder() Decoder
}

// NotFound is the sentinel Cursor operations return once a source's
// neighbor stream is exhausted. It is idempotent: further calls keep
// returning NotFound.
const NotFound uint64 = ^uint64(0)

// Decoder streams a compressed block's values back out in ascending
// order. It holds a decompressed 64-word scratch block and a position
// within it (spec.md §4.5).
type Decoder interface {
	// Init binds the decoder to a block's bytes and the out-of-band
	// degree recorded for its source.
	Init(data []byte, degree int)
	// Next returns the next value, or NotFound if exhausted.
	Next() uint64
	// Peek returns the next value without advancing, or NotFound.
	Peek() uint64
	// Remaining reports how many values are left to yield.
	Remaining() int
	// AdvanceBy skips n values and returns the (n+1)-th from the current
	// position (i.e. the value that n+1 calls to Next would have
	// produced), or NotFound if exhausted first.
	AdvanceBy(n int) uint64
	// SkipUntil returns the first value strictly greater than t, or
	// NotFound.
	SkipUntil(t uint64) uint64
	// Advance returns the first value greater than or equal to t, or
	// NotFound. Equivalent to SkipUntil(t-1).
	Advance(t uint64) uint64
	// Copy returns a deep copy of this decoder's state (scratch block,
	// header, and position), so algorithms can snapshot a position.
	Copy() Decoder
}

// alignTo8 rounds n up to the next multiple of 8, used after every
// variable-length region (header bytes, inlined head, VarLong tail) per
// spec.md §4.4's common block layout.
func alignTo8(n int) int {
	return (n + 7) &^ 7
}

// blockCountFull returns ceil(n / BlockSize): the number of full-width
// bit-packed blocks spanning n values (used by PackedTail and
// BlockAlignedTail).
func blockCountFull(n int) int {
	return (n + varint.BlockSize - 1) / varint.BlockSize
}

// blockCountFloor returns floor(n / BlockSize): the number of bit-packed
// blocks under VarLongTail, which packs only whole blocks and leaves the
// remainder as a VarLong tail.
func blockCountFloor(n int) int {
	return n / varint.BlockSize
}

// nexter is the minimal shape every concrete Decoder's Next method
// satisfies; advanceBy/skipUntil/advance are implemented once against it
// instead of once per strategy, since every strategy shares identical
// "walk forward one value at a time, respecting the delta chain" semantics
// for these three operations (spec.md §4.5: "cannot skip blocks
// entirely").
type nexter interface {
	Next() uint64
}

func advanceByN(d nexter, n int) uint64 {
	if n < 0 {
		panic(errs.ErrNegativeAdvance)
	}

	for i := 0; i < n; i++ {
		if d.Next() == NotFound {
			return NotFound
		}
	}

	return d.Next()
}

func skipUntilGT(d nexter, t uint64) uint64 {
	for {
		v := d.Next()
		if v == NotFound || v > t {
			return v
		}
	}
}

func advanceGTE(d nexter, t uint64) uint64 {
	for {
		v := d.Next()
		if v == NotFound || v >= t {
			return v
		}
	}
}

// streamState is the shared scratch-block/position bookkeeping every
// block-based strategy's Decoder embeds: the decompressed 64-word block
// buffer, the index within it, and the remaining value count (spec.md
// §4.5's cursor state).
type streamState struct {
	scratch   [64]uint64
	idx       int
	blockLen  int
	remaining int
}

// next decompresses the next block into scratch when needed, via the
// strategy-specific fill function, and returns the next value.
func (s *streamState) next(fill func(*[64]uint64) int) uint64 {
	if s.remaining == 0 {
		return NotFound
	}
	if s.idx >= s.blockLen {
		s.blockLen = fill(&s.scratch)
		s.idx = 0
	}

	v := s.scratch[s.idx]
	s.idx++
	s.remaining--

	return v
}

func (s *streamState) peek(fill func(*[64]uint64) int) uint64 {
	if s.remaining == 0 {
		return NotFound
	}
	if s.idx >= s.blockLen {
		s.blockLen = fill(&s.scratch)
		s.idx = 0
	}

	return s.scratch[s.idx]
}
