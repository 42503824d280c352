package codec

import (
	"github.com/patmonardo/adjgraph/errs"
	"github.com/patmonardo/adjgraph/varint"
)

// BlockAlignedTail packs ceil(n/BlockSize) full-width blocks, zero-padding
// the final block's unused slots so every block is exactly BlockSize
// values wide. The tail block's bit width is computed only over its real
// values; the unpacker always decodes a full block and relies on the
// caller-supplied degree to know where the real values end (spec.md
// §4.4). Padding a property array to the same rule is not meaningful —
// the degree bound that hides the zero padding on the adjacency side has
// no analogue for property values — so this strategy rejects property
// streams at compress time.
type BlockAlignedTail struct{}

func (BlockAlignedTail) Kind() Kind               { return KindBlockAlignedTail }
func (BlockAlignedTail) SupportsProperties() bool { return false }

func (BlockAlignedTail) Compress(deltas []uint64, length int) []byte {
	blockCount := blockCountFull(length)

	header := make([]byte, blockCount)
	widths := make([]int, blockCount)
	padded := make([][varint.BlockSize]uint64, blockCount)

	for i := 0; i < blockCount; i++ {
		start, realCount := blockBounds(i, blockCount, length)
		copy(padded[i][:realCount], deltas[start:start+realCount])
		widths[i] = varint.BitsNeeded(deltas[start:], realCount)
		header[i] = byte(widths[i])
	}

	buf := make([]byte, 0, alignTo8(blockCount))
	buf = append(buf, header...)
	buf = padTo8(buf)

	for i := 0; i < blockCount; i++ {
		buf = varint.Pack(buf, padded[i][:], varint.BlockSize, widths[i])
	}

	return buf
}

func (BlockAlignedTail) NewDecoder() Decoder {
	return &blockAlignedTailDecoder{}
}

type blockAlignedTailDecoder struct {
	state streamState

	data       []byte
	header     []byte
	degree     int
	blockCount int
	blockID    int
	byteOffset int
	lastValue  uint64
}

func (d *blockAlignedTailDecoder) Init(data []byte, degree int) {
	d.data = data
	d.degree = degree
	d.blockCount = blockCountFull(degree)
	d.header = data[:d.blockCount]
	d.byteOffset = alignTo8(d.blockCount)
	d.blockID = 0
	d.lastValue = 0
	d.state = streamState{remaining: degree}
}

func (d *blockAlignedTailDecoder) decodeNextBlock(out *[64]uint64) int {
	if d.blockID >= d.blockCount {
		panic(errs.ErrCorruptBlock)
	}

	_, realCount := blockBounds(d.blockID, d.blockCount, d.degree)

	width := int(d.header[d.blockID])
	byteLen := varint.PackedByteLen(varint.BlockSize, width)

	var full [varint.BlockSize]uint64
	varint.Unpack(d.data[d.byteOffset:d.byteOffset+byteLen], varint.BlockSize, width, full[:])
	d.byteOffset += byteLen
	d.blockID++

	for i := 0; i < realCount; i++ {
		d.lastValue += full[i]
		out[i] = d.lastValue
	}

	return realCount
}

func (d *blockAlignedTailDecoder) Next() uint64   { return d.state.next(d.decodeNextBlock) }
func (d *blockAlignedTailDecoder) Peek() uint64   { return d.state.peek(d.decodeNextBlock) }
func (d *blockAlignedTailDecoder) Remaining() int { return d.state.remaining }

func (d *blockAlignedTailDecoder) AdvanceBy(n int) uint64   { return advanceByN(d, n) }
func (d *blockAlignedTailDecoder) SkipUntil(t uint64) uint64 { return skipUntilGT(d, t) }
func (d *blockAlignedTailDecoder) Advance(t uint64) uint64   { return advanceGTE(d, t) }

func (d *blockAlignedTailDecoder) Copy() Decoder {
	cp := *d
	cp.header = append([]byte(nil), d.header...)

	return &cp
}
