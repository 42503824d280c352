package stats

import "sync"

// MemoryInfo is the read-only memory accounting snapshot exposed by an
// AdjacencyList (spec.md §6): page counts, on/off-heap byte totals, and
// the five recorded histograms plus the merged block-level statistics.
type MemoryInfo struct {
	PageCount    int
	BytesOnHeap  int64
	BytesOffHeap int64

	HeapAllocations   ImmutableHistogram
	NativeAllocations ImmutableHistogram
	PageSizes         ImmutableHistogram
	HeaderBits        ImmutableHistogram
	HeaderAllocations ImmutableHistogram

	Blocks *BlockStatistics
}

// Merge combines two MemoryInfo snapshots, summing page counts and byte
// totals and merging every histogram (spec.md §4.6's MixedAdjacencyList
// memoryInfo merge: "sums page counts and pageSize histograms").
func (m MemoryInfo) Merge(other MemoryInfo) MemoryInfo {
	out := MemoryInfo{
		PageCount:         m.PageCount + other.PageCount,
		BytesOnHeap:       m.BytesOnHeap + other.BytesOnHeap,
		BytesOffHeap:      m.BytesOffHeap + other.BytesOffHeap,
		HeapAllocations:   m.HeapAllocations.Merge(other.HeapAllocations),
		NativeAllocations: m.NativeAllocations.Merge(other.NativeAllocations),
		PageSizes:         m.PageSizes.Merge(other.PageSizes),
		HeaderBits:        m.HeaderBits.Merge(other.HeaderBits),
		HeaderAllocations: m.HeaderAllocations.Merge(other.HeaderAllocations),
	}

	switch {
	case m.Blocks == nil:
		out.Blocks = other.Blocks
	case other.Blocks == nil:
		out.Blocks = m.Blocks
	default:
		merged := NewBlockStatistics()
		m.Blocks.MergeInto(merged)
		other.Blocks.MergeInto(merged)
		out.Blocks = merged
	}

	return out
}

// MemoryTracker records the five event streams spec.md §4.7 names (heap
// allocations, native allocations, page sizes, header bits, header
// allocation sizes) plus per-worker BlockStatistics merged on demand.
//
// There are two implementations: a full tracker for builds that want
// diagnostics, and an Empty no-op tracker — reframing the source's
// MemoryTracker.EMPTY global singleton as an explicit, trivial
// zero-cost implementation of the same interface (spec.md §9).
type MemoryTracker interface {
	RecordHeapAllocation(bytes int)
	RecordNativeAllocation(bytes int)
	RecordPageSize(bytes int)
	RecordHeaderBits(bits int)
	RecordHeaderAllocation(bytes int)
	// MergeBlockStatistics folds a worker-owned BlockStatistics into the
	// tracker's aggregate. No compressor or factory in this module calls
	// it; block statistics recorded during a build reach the tracker only
	// when a caller merges them.
	MergeBlockStatistics(bs *BlockStatistics)
	MemoryInfo() MemoryInfo
}

const (
	heapAllocationUpperBound   = 1 << 20
	nativeAllocationUpperBound = 1 << 20
	pageSizeUpperBound         = 1 << 20
)

type fullMemoryTracker struct {
	mu sync.Mutex

	heapAllocations   *BoundedHistogram
	nativeAllocations *BoundedHistogram
	pageSizes         *BoundedHistogram
	headerBits        *BoundedHistogram
	headerAllocations *BoundedHistogram

	blocks *BlockStatistics

	pageCount    int
	bytesOnHeap  int64
	bytesOffHeap int64
}

// NewMemoryTracker returns the full, recording MemoryTracker
// implementation.
func NewMemoryTracker() MemoryTracker {
	return &fullMemoryTracker{
		heapAllocations:   NewBoundedHistogram(heapAllocationUpperBound),
		nativeAllocations: NewBoundedHistogram(nativeAllocationUpperBound),
		pageSizes:         NewBoundedHistogram(pageSizeUpperBound),
		headerBits:        NewBoundedHistogram(maxBlockBits),
		headerAllocations: NewBoundedHistogram(heapAllocationUpperBound),
		blocks:            NewBlockStatistics(),
	}
}

func clampUpperBound(v, upperBound int) int {
	if v > upperBound {
		return upperBound
	}
	if v < 0 {
		return 0
	}

	return v
}

func (t *fullMemoryTracker) RecordHeapAllocation(bytes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.heapAllocations.Record(clampUpperBound(bytes, heapAllocationUpperBound))
	t.bytesOnHeap += int64(bytes)
}

func (t *fullMemoryTracker) RecordNativeAllocation(bytes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nativeAllocations.Record(clampUpperBound(bytes, nativeAllocationUpperBound))
	t.bytesOffHeap += int64(bytes)
}

func (t *fullMemoryTracker) RecordPageSize(bytes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pageSizes.Record(clampUpperBound(bytes, pageSizeUpperBound))
	t.pageCount++
}

func (t *fullMemoryTracker) RecordHeaderBits(bits int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.headerBits.Record(clampUpperBound(bits, maxBlockBits))
}

func (t *fullMemoryTracker) RecordHeaderAllocation(bytes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.headerAllocations.Record(clampUpperBound(bytes, heapAllocationUpperBound))
}

func (t *fullMemoryTracker) MergeBlockStatistics(bs *BlockStatistics) {
	t.mu.Lock()
	defer t.mu.Unlock()
	bs.MergeInto(t.blocks)
}

func (t *fullMemoryTracker) MemoryInfo() MemoryInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	return MemoryInfo{
		PageCount:         t.pageCount,
		BytesOnHeap:       t.bytesOnHeap,
		BytesOffHeap:      t.bytesOffHeap,
		HeapAllocations:   t.heapAllocations.Snapshot(),
		NativeAllocations: t.nativeAllocations.Snapshot(),
		PageSizes:         t.pageSizes.Snapshot(),
		HeaderBits:        t.headerBits.Snapshot(),
		HeaderAllocations: t.headerAllocations.Snapshot(),
		Blocks:            t.blocks,
	}
}

type emptyMemoryTracker struct{}

// Empty is the process-wide no-op MemoryTracker: every Record call is a
// no-op and MemoryInfo returns all-zero histograms. State S (the tracker
// choice) is process-wide and set at startup with no teardown requirement,
// per spec.md §4.7.
var Empty MemoryTracker = emptyMemoryTracker{}

func (emptyMemoryTracker) RecordHeapAllocation(int)           {}
func (emptyMemoryTracker) RecordNativeAllocation(int)         {}
func (emptyMemoryTracker) RecordPageSize(int)                 {}
func (emptyMemoryTracker) RecordHeaderBits(int)               {}
func (emptyMemoryTracker) RecordHeaderAllocation(int)         {}
func (emptyMemoryTracker) MergeBlockStatistics(*BlockStatistics) {}

func (emptyMemoryTracker) MemoryInfo() MemoryInfo {
	return MemoryInfo{
		HeapAllocations:   EmptyHistogram,
		NativeAllocations: EmptyHistogram,
		PageSizes:         EmptyHistogram,
		HeaderBits:        EmptyHistogram,
		HeaderAllocations: EmptyHistogram,
	}
}
