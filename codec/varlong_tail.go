package codec

import "github.com/patmonardo/adjgraph/varint"

// VarLongTail bit-packs floor(n/BlockSize) whole blocks and leaves the
// remaining n%BlockSize values as a plain VarLong-encoded tail (spec.md
// §4.4). It supports property streams, same as PackedTail.
type VarLongTail struct{}

func (VarLongTail) Kind() Kind               { return KindVarLongTail }
func (VarLongTail) SupportsProperties() bool { return true }

func (VarLongTail) Compress(deltas []uint64, length int) []byte {
	blockCount := blockCountFloor(length)
	packedLen := blockCount * varint.BlockSize
	tailLen := length - packedLen

	header := make([]byte, blockCount)
	widths := make([]int, blockCount)
	for i := 0; i < blockCount; i++ {
		start := i * varint.BlockSize
		widths[i] = varint.BitsNeeded(deltas[start:], varint.BlockSize)
		header[i] = byte(widths[i])
	}

	buf := make([]byte, 0, alignTo8(blockCount))
	buf = append(buf, header...)
	buf = padTo8(buf)

	for i := 0; i < blockCount; i++ {
		start := i * varint.BlockSize
		buf = varint.Pack(buf, deltas[start:], varint.BlockSize, widths[i])
	}
	buf = padTo8(buf)

	for i := 0; i < tailLen; i++ {
		buf = varint.AppendVarLong(buf, deltas[packedLen+i])
	}
	buf = padTo8(buf)

	return buf
}

func (VarLongTail) NewDecoder() Decoder {
	return &varLongTailDecoder{}
}

type varLongTailDecoder struct {
	state streamState

	data       []byte
	header     []byte
	blockCount int
	tailLen    int
	blockID    int
	byteOffset int
	lastValue  uint64

	inTail bool
}

func (d *varLongTailDecoder) Init(data []byte, degree int) {
	d.data = data
	d.blockCount = blockCountFloor(degree)
	d.tailLen = degree - d.blockCount*varint.BlockSize
	d.header = data[:d.blockCount]
	d.byteOffset = alignTo8(d.blockCount)
	d.blockID = 0
	d.lastValue = 0
	d.inTail = d.blockCount == 0
	d.state = streamState{remaining: degree}
}

func (d *varLongTailDecoder) decodeNextBlock(out *[64]uint64) int {
	if !d.inTail && d.blockID < d.blockCount {
		width := int(d.header[d.blockID])
		byteLen := varint.PackedByteLen(varint.BlockSize, width)

		varint.Unpack(d.data[d.byteOffset:d.byteOffset+byteLen], varint.BlockSize, width, out[:varint.BlockSize])
		d.byteOffset += byteLen
		d.blockID++

		for i := 0; i < varint.BlockSize; i++ {
			d.lastValue += out[i]
			out[i] = d.lastValue
		}

		if d.blockID == d.blockCount {
			d.inTail = true
			d.byteOffset = alignTo8(d.byteOffset)
		}

		return varint.BlockSize
	}

	for i := 0; i < d.tailLen; i++ {
		delta, n := varint.DecodeVarLong(d.data[d.byteOffset:])
		d.byteOffset += n
		d.lastValue += delta
		out[i] = d.lastValue
	}

	return d.tailLen
}

func (d *varLongTailDecoder) Next() uint64   { return d.state.next(d.decodeNextBlock) }
func (d *varLongTailDecoder) Peek() uint64   { return d.state.peek(d.decodeNextBlock) }
func (d *varLongTailDecoder) Remaining() int { return d.state.remaining }

func (d *varLongTailDecoder) AdvanceBy(n int) uint64   { return advanceByN(d, n) }
func (d *varLongTailDecoder) SkipUntil(t uint64) uint64 { return skipUntilGT(d, t) }
func (d *varLongTailDecoder) Advance(t uint64) uint64   { return advanceGTE(d, t) }

func (d *varLongTailDecoder) Copy() Decoder {
	cp := *d
	cp.header = append([]byte(nil), d.header...)

	return &cp
}
