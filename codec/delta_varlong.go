package codec

import "github.com/patmonardo/adjgraph/varint"

// DeltaVarLong is the simplest strategy: no bit-packing at all, just the
// delta chain VarLong-encoded value by value (spec.md §4.4).
type DeltaVarLong struct{}

func (DeltaVarLong) Kind() Kind                { return KindDeltaVarLong }
func (DeltaVarLong) SupportsProperties() bool  { return true }

func (DeltaVarLong) Compress(deltas []uint64, length int) []byte {
	var buf []byte
	for i := 0; i < length; i++ {
		buf = varint.AppendVarLong(buf, deltas[i])
	}

	return buf
}

func (DeltaVarLong) NewDecoder() Decoder {
	return &deltaVarLongDecoder{}
}

type deltaVarLongDecoder struct {
	data      []byte
	pos       int
	remaining int
	lastValue uint64

	hasPeek      bool
	peekValue    uint64
	peekConsumed int
}

func (d *deltaVarLongDecoder) Init(data []byte, degree int) {
	d.data = data
	d.pos = 0
	d.remaining = degree
	d.lastValue = 0
	d.hasPeek = false
}

func (d *deltaVarLongDecoder) Next() uint64 {
	if d.remaining == 0 {
		return NotFound
	}

	if d.hasPeek {
		v := d.peekValue
		d.pos += d.peekConsumed
		d.lastValue = v
		d.remaining--
		d.hasPeek = false

		return v
	}

	delta, n := varint.DecodeVarLong(d.data[d.pos:])
	d.pos += n
	d.lastValue += delta
	d.remaining--

	return d.lastValue
}

func (d *deltaVarLongDecoder) Peek() uint64 {
	if d.remaining == 0 {
		return NotFound
	}

	if d.hasPeek {
		return d.peekValue
	}

	delta, n := varint.DecodeVarLong(d.data[d.pos:])
	d.peekValue = d.lastValue + delta
	d.peekConsumed = n
	d.hasPeek = true

	return d.peekValue
}

func (d *deltaVarLongDecoder) Remaining() int {
	return d.remaining
}

func (d *deltaVarLongDecoder) AdvanceBy(n int) uint64 { return advanceByN(d, n) }
func (d *deltaVarLongDecoder) SkipUntil(t uint64) uint64 { return skipUntilGT(d, t) }
func (d *deltaVarLongDecoder) Advance(t uint64) uint64   { return advanceGTE(d, t) }

func (d *deltaVarLongDecoder) Copy() Decoder {
	cp := *d
	cp.data = append([]byte(nil), d.data...)

	return &cp
}
