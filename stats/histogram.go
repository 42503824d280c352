// Package stats implements the compression cost analysis and memory
// accounting layer: BoundedHistogram/ImmutableHistogram, BlockStatistics'
// PFOR-heuristic bookkeeping, and the MemoryTracker event streams.
package stats

import "math"

// BoundedHistogram is an exact integer histogram over [0, upperBound]. It
// is mutable during collection and snapshotted into an ImmutableHistogram
// for reporting.
type BoundedHistogram struct {
	upperBound int
	counts     []int64
	total      int64
}

// NewBoundedHistogram creates a histogram over [0, upperBound] inclusive.
func NewBoundedHistogram(upperBound int) *BoundedHistogram {
	return &BoundedHistogram{
		upperBound: upperBound,
		counts:     make([]int64, upperBound+1),
	}
}

// Record adds one observation of value v. v must be in [0, upperBound].
func (h *BoundedHistogram) Record(v int) {
	h.counts[v]++
	h.total++
}

// Frequency returns the observation count at value v.
func (h *BoundedHistogram) Frequency(v int) int64 {
	return h.counts[v]
}

// Total returns the sum of all recorded frequencies.
func (h *BoundedHistogram) Total() int64 {
	return h.total
}

// Min returns the smallest recorded value, or 0 if nothing was recorded.
func (h *BoundedHistogram) Min() int {
	for v, c := range h.counts {
		if c > 0 {
			return v
		}
	}

	return 0
}

// Max returns the largest recorded value, or 0 if nothing was recorded.
func (h *BoundedHistogram) Max() int {
	for v := len(h.counts) - 1; v >= 0; v-- {
		if h.counts[v] > 0 {
			return v
		}
	}

	return 0
}

// Mean returns (Σ i·freq[i]) / total, or 0 if total is 0.
func (h *BoundedHistogram) Mean() float64 {
	if h.total == 0 {
		return 0
	}

	var sum int64
	for v, c := range h.counts {
		sum += int64(v) * c
	}

	return float64(sum) / float64(h.total)
}

// Median is Percentile(50).
func (h *BoundedHistogram) Median() int {
	return h.Percentile(50)
}

// Percentile returns the smallest value v such that the cumulative count
// up to and including v reaches limit = ceil(p/100 * total), with limit
// raised to 1 when it would be 0.
//
// The comparison is inclusive: it accumulates counts and stops at the
// first bucket whose CUMULATIVE count is at least limit (written as
// cumulative > limit-1), so Percentile(100) is the largest recorded value.
func (h *BoundedHistogram) Percentile(p float64) int {
	if h.total == 0 {
		return 0
	}

	limit := int64(math.Ceil(p / 100.0 * float64(h.total)))
	if limit <= 0 {
		limit = 1
	}

	var cumulative int64
	for v, c := range h.counts {
		cumulative += c
		if cumulative > limit-1 {
			return v
		}
	}

	return h.upperBound
}

// StdDev returns the population standard deviation of the recorded values.
func (h *BoundedHistogram) StdDev() float64 {
	if h.total == 0 {
		return 0
	}

	mean := h.Mean()
	var sumSq float64
	for v, c := range h.counts {
		d := float64(v) - mean
		sumSq += d * d * float64(c)
	}

	return math.Sqrt(sumSq / float64(h.total))
}

// Reset clears every recorded observation.
func (h *BoundedHistogram) Reset() {
	for i := range h.counts {
		h.counts[i] = 0
	}
	h.total = 0
}

// Add merges another histogram's counts into this one. Both must share the
// same upperBound.
func (h *BoundedHistogram) Add(other *BoundedHistogram) {
	for v, c := range other.counts {
		h.counts[v] += c
	}
	h.total += other.total
}

// Snapshot freezes the histogram's current state into an ImmutableHistogram.
func (h *BoundedHistogram) Snapshot() ImmutableHistogram {
	return ImmutableHistogram{
		Min:   h.Min(),
		Mean:  h.Mean(),
		Max:   h.Max(),
		P50:   h.Percentile(50),
		P75:   h.Percentile(75),
		P90:   h.Percentile(90),
		P95:   h.Percentile(95),
		P99:   h.Percentile(99),
		P999:  h.Percentile(99.9),
		Total: h.total,
	}
}

// ImmutableHistogram is a read-only snapshot of a BoundedHistogram's
// summary statistics, safe to share across goroutines and merge across
// workers.
type ImmutableHistogram struct {
	Min, Max int
	Mean     float64
	P50      int
	P75      int
	P90      int
	P95      int
	P99      int
	P999     int
	Total    int64
}

// EmptyHistogram is the zero-cost "nothing recorded" immutable histogram,
// used by the empty MemoryTracker implementation (spec.md §9's note
// reframing global singletons as trivial zero-cost capability
// implementations).
var EmptyHistogram = ImmutableHistogram{}

// Merge combines two independently-built histograms into one, mirroring
// the teacher's blob-set "merge several independently-built views into
// one" pattern (see DESIGN.md). Because the constituent BoundedHistograms
// are not retained past Snapshot, Merge approximates percentiles via a
// weighted combination rather than recomputing from raw counts; min/max
// and totals remain exact.
func (h ImmutableHistogram) Merge(other ImmutableHistogram) ImmutableHistogram {
	if h.Total == 0 {
		return other
	}
	if other.Total == 0 {
		return h
	}

	wa := float64(h.Total)
	wb := float64(other.Total)
	total := wa + wb

	weighted := func(a, b int) float64 {
		return (float64(a)*wa + float64(b)*wb) / total
	}

	min := h.Min
	if other.Min < min {
		min = other.Min
	}
	max := h.Max
	if other.Max > max {
		max = other.Max
	}

	return ImmutableHistogram{
		Min:   min,
		Max:   max,
		Mean:  (h.Mean*wa + other.Mean*wb) / total,
		P50:   int(math.Round(weighted(h.P50, other.P50))),
		P75:   int(math.Round(weighted(h.P75, other.P75))),
		P90:   int(math.Round(weighted(h.P90, other.P90))),
		P95:   int(math.Round(weighted(h.P95, other.P95))),
		P99:   int(math.Round(weighted(h.P99, other.P99))),
		P999:  int(math.Round(weighted(h.P999, other.P999))),
		Total: h.Total + other.Total,
	}
}
