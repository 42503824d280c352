package codec

import "github.com/patmonardo/adjgraph/varint"

// InlinedHeadPackedTail VarLong-encodes the first value inline in the
// header region, then bit-packs the remaining n-1 values exactly like
// PackedTail (spec.md §4.4). It exists for sources whose first neighbor
// carries most of the entropy (e.g. a large base id with a tightly
// clustered remainder), letting the tail's bit width ignore that outlier.
type InlinedHeadPackedTail struct{}

func (InlinedHeadPackedTail) Kind() Kind               { return KindInlinedHeadPackedTail }
func (InlinedHeadPackedTail) SupportsProperties() bool { return true }

func (InlinedHeadPackedTail) Compress(deltas []uint64, length int) []byte {
	if length == 0 {
		return nil
	}

	tailLen := length - 1
	blockCount := blockCountFull(tailLen)

	// The header always carries at least one block-width byte, even when
	// the tail is empty (degree=1): spec.md §8 scenario 2 requires a
	// single zero-width header byte before the inlined VarLong, not zero
	// header bytes.
	headerLen := blockCount
	if headerLen == 0 {
		headerLen = 1
	}

	header := make([]byte, headerLen)
	widths := make([]int, blockCount)
	for i := 0; i < blockCount; i++ {
		start, count := blockBounds(i, blockCount, tailLen)
		widths[i] = varint.BitsNeeded(deltas[1+start:], count)
		header[i] = byte(widths[i])
	}

	buf := make([]byte, 0, alignTo8(headerLen)+varint.SizeVarLong(deltas[0]))
	buf = append(buf, header...)
	buf = varint.AppendVarLong(buf, deltas[0])
	buf = padTo8(buf)

	for i := 0; i < blockCount; i++ {
		start, count := blockBounds(i, blockCount, tailLen)
		buf = varint.Pack(buf, deltas[1+start:], count, widths[i])
	}

	return buf
}

func (InlinedHeadPackedTail) NewDecoder() Decoder {
	return &inlinedHeadPackedTailDecoder{}
}

type inlinedHeadPackedTailDecoder struct {
	state streamState

	data       []byte
	header     []byte
	tailLen    int
	blockCount int
	blockID    int
	byteOffset int
	lastValue  uint64

	remaining    int
	emittedFirst bool
	firstValue   uint64
}

func (d *inlinedHeadPackedTailDecoder) Init(data []byte, degree int) {
	d.data = data
	d.remaining = degree
	d.emittedFirst = false

	if degree == 0 {
		d.state = streamState{}
		return
	}

	d.tailLen = degree - 1
	d.blockCount = blockCountFull(d.tailLen)

	headerLen := d.blockCount
	if headerLen == 0 {
		headerLen = 1
	}
	d.header = data[:headerLen]

	first, n := varint.DecodeVarLong(data[headerLen:])
	d.firstValue = first
	d.lastValue = first
	d.byteOffset = alignTo8(headerLen + n)
	d.blockID = 0
	d.state = streamState{remaining: d.tailLen}
}

func (d *inlinedHeadPackedTailDecoder) decodeNextBlock(out *[64]uint64) int {
	_, count := blockBounds(d.blockID, d.blockCount, d.tailLen)

	width := int(d.header[d.blockID])
	byteLen := varint.PackedByteLen(count, width)

	varint.Unpack(d.data[d.byteOffset:d.byteOffset+byteLen], count, width, out[:count])
	d.byteOffset += byteLen
	d.blockID++

	for i := 0; i < count; i++ {
		d.lastValue += out[i]
		out[i] = d.lastValue
	}

	return count
}

func (d *inlinedHeadPackedTailDecoder) Next() uint64 {
	if d.remaining == 0 {
		return NotFound
	}

	if !d.emittedFirst {
		d.emittedFirst = true
		d.remaining--

		return d.firstValue
	}

	v := d.state.next(d.decodeNextBlock)
	d.remaining--

	return v
}

func (d *inlinedHeadPackedTailDecoder) Peek() uint64 {
	if d.remaining == 0 {
		return NotFound
	}

	if !d.emittedFirst {
		return d.firstValue
	}

	return d.state.peek(d.decodeNextBlock)
}

func (d *inlinedHeadPackedTailDecoder) Remaining() int { return d.remaining }

func (d *inlinedHeadPackedTailDecoder) AdvanceBy(n int) uint64   { return advanceByN(d, n) }
func (d *inlinedHeadPackedTailDecoder) SkipUntil(t uint64) uint64 { return skipUntilGT(d, t) }
func (d *inlinedHeadPackedTailDecoder) Advance(t uint64) uint64   { return advanceGTE(d, t) }

func (d *inlinedHeadPackedTailDecoder) Copy() Decoder {
	cp := *d
	cp.header = append([]byte(nil), d.header...)

	return &cp
}
