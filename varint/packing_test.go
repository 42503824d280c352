package varint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsNeeded(t *testing.T) {
	cases := []struct {
		values []uint64
		want   int
	}{
		{[]uint64{0, 0, 0}, 0},
		{[]uint64{1}, 1},
		{[]uint64{1, 1, 1}, 1},
		{[]uint64{3}, 2},
		{[]uint64{255}, 8},
		{[]uint64{256}, 9},
		{[]uint64{0, 0, 128}, 8},
		{[]uint64{1 << 63}, 64},
	}

	for _, c := range cases {
		got := BitsNeeded(c.values, len(c.values))
		assert.Equal(t, c.want, got, "values=%v", c.values)
	}
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	degrees := []int{0, 1, 2, 63, 64, 65}

	for _, d := range degrees {
		if d == 0 {
			continue
		}
		values := make([]uint64, d)
		for i := range values {
			values[i] = uint64(i * 3 % 200)
		}

		width := BitsNeeded(values, d)
		buf := Pack(nil, values, d, width)
		require.Equal(t, PackedByteLen(d, width), len(buf))

		out := make([]uint64, d)
		Unpack(buf, d, width, out)

		assert.Equal(t, values, out, "degree=%d width=%d", d, width)
	}
}

func TestPackUnpack_WidthZero(t *testing.T) {
	values := []uint64{0, 0, 0, 0}
	width := BitsNeeded(values, len(values))
	require.Equal(t, 0, width)

	buf := Pack(nil, values, len(values), width)
	assert.Empty(t, buf)

	out := make([]uint64, len(values))
	Unpack(buf, len(values), width, out)
	assert.Equal(t, values, out)
}

func TestPackUnpack_Width64(t *testing.T) {
	values := []uint64{1 << 63, (1 << 63) | 1, 0xFFFFFFFFFFFFFFFF}
	width := 64

	buf := Pack(nil, values, len(values), width)
	require.Equal(t, 8*len(values), len(buf))

	out := make([]uint64, len(values))
	Unpack(buf, len(values), width, out)
	assert.Equal(t, values, out)
}

func TestPackUnpack_FullBlockOfOnes(t *testing.T) {
	// Mirrors spec.md §8 scenario 4: deltas all equal to 1 across a full
	// 64-value block, bit width must be 1.
	values := make([]uint64, BlockSize)
	for i := range values {
		values[i] = 1
	}

	width := BitsNeeded(values, BlockSize)
	require.Equal(t, 1, width)

	buf := Pack(nil, values, BlockSize, width)
	require.Equal(t, 8, len(buf)) // 64 bits / 8

	out := make([]uint64, BlockSize)
	Unpack(buf, BlockSize, width, out)
	assert.Equal(t, values, out)
}

func TestPFORCost_NoExceptionsCheaperThanFewBits(t *testing.T) {
	// An all-uniform block: packing at the true width should always be at
	// least as cheap as any narrower width once exceptions are costed in.
	values := make([]uint64, BlockSize)
	for i := range values {
		values[i] = 200 // needs 8 bits
	}

	exactCost := PFORCost(BlockSize, 8, 8, 0)
	narrowerCost := PFORCost(BlockSize, 4, 8, ExceptionCount(values, BlockSize, 4))

	assert.Less(t, exactCost, narrowerCost)
}

func TestBestPFORWidth_WithFewExceptions(t *testing.T) {
	values := make([]uint64, BlockSize)
	for i := range values {
		values[i] = 3 // 2 bits
	}
	values[0] = 255 // one outlier needing 8 bits

	maxBits := BitsNeeded(values, BlockSize)
	require.Equal(t, 8, maxBits)

	diff, exceptions := BestPFORWidth(values, BlockSize, maxBits)
	assert.Equal(t, 1, exceptions, "exactly one value exceeds the narrow width")
	assert.Greater(t, diff, 0, "a narrower width than maxBits should win with only one exception")
}
