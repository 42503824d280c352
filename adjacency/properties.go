package adjacency

import (
	"encoding/binary"
	"math"
)

// floatsToBytes packs a property stream as 8-byte little-endian words, one
// per value, matching the positional allocator's byte-addressable
// PositionalAllocator contract (alloc.PositionalAllocator writes raw
// bytes, not typed values).
func floatsToBytes(values []float64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}

	return buf
}

// bytesToFloats is floatsToBytes' inverse, used by the property cursor to
// read a stream back out of its page window.
func bytesToFloats(buf []byte, count int) []float64 {
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}

	return out
}
