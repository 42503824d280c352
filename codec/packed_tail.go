package codec

import "github.com/patmonardo/adjgraph/varint"

// PackedTail bit-packs the entire delta chain as ceil(n/BlockSize) blocks,
// each at its own bit width, with the final block packed at the width
// needed for its partial length (spec.md §4.4). Unlike VarLongTail it never
// leaves a VarLong remainder. It supports property streams.
type PackedTail struct{}

func (PackedTail) Kind() Kind               { return KindPackedTail }
func (PackedTail) SupportsProperties() bool { return true }

func (PackedTail) Compress(deltas []uint64, length int) []byte {
	blockCount := blockCountFull(length)

	header := make([]byte, blockCount)
	widths := make([]int, blockCount)
	for i := 0; i < blockCount; i++ {
		start, count := blockBounds(i, blockCount, length)
		widths[i] = varint.BitsNeeded(deltas[start:], count)
		header[i] = byte(widths[i])
	}

	buf := make([]byte, 0, alignTo8(blockCount))
	buf = append(buf, header...)
	buf = padTo8(buf)

	for i := 0; i < blockCount; i++ {
		start, count := blockBounds(i, blockCount, length)
		buf = varint.Pack(buf, deltas[start:], count, widths[i])
	}

	return buf
}

func (PackedTail) NewDecoder() Decoder {
	return &packedTailDecoder{}
}

// blockBounds returns the start index and value count of block i among
// blockCount full-width blocks spanning length values: every block holds
// BlockSize values except possibly the last, which holds length%BlockSize
// (or BlockSize itself, when length is an exact multiple).
func blockBounds(i, blockCount, length int) (start, count int) {
	start = i * varint.BlockSize
	count = varint.BlockSize
	if i == blockCount-1 {
		if rem := length % varint.BlockSize; rem != 0 {
			count = rem
		}
	}

	return start, count
}

// padTo8 appends zero bytes until len(buf) is a multiple of 8.
func padTo8(buf []byte) []byte {
	for len(buf)%8 != 0 {
		buf = append(buf, 0)
	}

	return buf
}

type packedTailDecoder struct {
	state streamState

	data       []byte
	header     []byte
	degree     int
	blockCount int
	blockID    int
	byteOffset int
	lastValue  uint64
}

func (d *packedTailDecoder) Init(data []byte, degree int) {
	d.data = data
	d.degree = degree
	d.blockCount = blockCountFull(degree)
	d.header = data[:d.blockCount]
	d.byteOffset = alignTo8(d.blockCount)
	d.blockID = 0
	d.lastValue = 0
	d.state = streamState{remaining: degree}
}

func (d *packedTailDecoder) decodeNextBlock(out *[64]uint64) int {
	_, count := blockBounds(d.blockID, d.blockCount, d.degree)

	width := int(d.header[d.blockID])
	byteLen := varint.PackedByteLen(count, width)

	varint.Unpack(d.data[d.byteOffset:d.byteOffset+byteLen], count, width, out[:count])
	d.byteOffset += byteLen

	for i := 0; i < count; i++ {
		d.lastValue += out[i]
		out[i] = d.lastValue
	}

	d.blockID++

	return count
}

func (d *packedTailDecoder) Next() uint64 { return d.state.next(d.decodeNextBlock) }
func (d *packedTailDecoder) Peek() uint64 { return d.state.peek(d.decodeNextBlock) }
func (d *packedTailDecoder) Remaining() int { return d.state.remaining }

func (d *packedTailDecoder) AdvanceBy(n int) uint64  { return advanceByN(d, n) }
func (d *packedTailDecoder) SkipUntil(t uint64) uint64 { return skipUntilGT(d, t) }
func (d *packedTailDecoder) Advance(t uint64) uint64   { return advanceGTE(d, t) }

func (d *packedTailDecoder) Copy() Decoder {
	cp := *d
	cp.header = append([]byte(nil), d.header...)

	return &cp
}
