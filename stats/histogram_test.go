package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedHistogram_TotalMeanBounds(t *testing.T) {
	h := NewBoundedHistogram(100)
	values := []int{1, 1, 2, 3, 3, 3, 50, 99}
	var sum int64
	for _, v := range values {
		h.Record(v)
		sum += int64(v)
	}

	assert.Equal(t, int64(len(values)), h.Total())
	assert.InDelta(t, float64(sum)/float64(len(values)), h.Mean(), 1e-9)
	assert.GreaterOrEqual(t, h.Percentile(0), h.Min())
	assert.LessOrEqual(t, h.Percentile(100), h.Max())
}

func TestBoundedHistogram_PercentileBoundary_CumulativeReachesLimit(t *testing.T) {
	// Pin the inclusive convention: with 4 equally-weighted buckets
	// (0,1,2,3) each recorded once, the 25th percentile (limit 1) lands on
	// bucket 0, whose cumulative count reaches the limit, and the 100th
	// (limit 4) on bucket 3.
	h := NewBoundedHistogram(10)
	for _, v := range []int{0, 1, 2, 3} {
		h.Record(v)
	}

	assert.Equal(t, 0, h.Percentile(25))
	assert.Equal(t, 3, h.Percentile(100))
}

func TestBoundedHistogram_MinMax(t *testing.T) {
	h := NewBoundedHistogram(50)
	h.Record(5)
	h.Record(40)
	h.Record(12)

	assert.Equal(t, 5, h.Min())
	assert.Equal(t, 40, h.Max())
}

func TestBoundedHistogram_Add(t *testing.T) {
	a := NewBoundedHistogram(10)
	b := NewBoundedHistogram(10)
	a.Record(1)
	b.Record(1)
	b.Record(2)

	a.Add(b)

	assert.Equal(t, int64(3), a.Total())
	assert.Equal(t, int64(2), a.Frequency(1))
	assert.Equal(t, int64(1), a.Frequency(2))
}

func TestBoundedHistogram_Reset(t *testing.T) {
	h := NewBoundedHistogram(10)
	h.Record(3)
	h.Reset()

	assert.Equal(t, int64(0), h.Total())
	assert.Equal(t, int64(0), h.Frequency(3))
}

func TestImmutableHistogram_MergeHandlesEmpty(t *testing.T) {
	h := NewBoundedHistogram(10)
	h.Record(5)
	snap := h.Snapshot()

	merged := EmptyHistogram.Merge(snap)
	assert.Equal(t, snap, merged)

	merged2 := snap.Merge(EmptyHistogram)
	assert.Equal(t, snap, merged2)
}

func TestImmutableHistogram_MergeCombinesTotals(t *testing.T) {
	a := NewBoundedHistogram(10)
	a.Record(1)
	a.Record(1)
	b := NewBoundedHistogram(10)
	b.Record(9)

	merged := a.Snapshot().Merge(b.Snapshot())
	require.Equal(t, int64(3), merged.Total)
	assert.Equal(t, 1, merged.Min)
	assert.Equal(t, 9, merged.Max)
}
