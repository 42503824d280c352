package adjacency

import "github.com/patmonardo/adjgraph/stats"

// branch identifies which of a MixedAdjacencyList's two lists a MixedCursor
// was built from, so CursorReuse can tell whether a reused cursor is the
// correct branch's type before reusing it (spec.md §4.6).
type branch uint8

const (
	branchHigh branch = iota // list A: high-degree / compressed
	branchLow                // list B: low-degree / lighter
)

// MixedCursor pairs a Cursor with the branch it was built from.
type MixedCursor struct {
	*Cursor
	branch branch
}

// MixedAdjacencyList composes two AdjacencyLists, A (high-degree branch)
// and B (low-degree branch), built over the same source stream, each with
// its own Tables, and dispatches per-source on degree (spec.md §4.6).
type MixedAdjacencyList struct {
	a, b      *AdjacencyList
	threshold int
}

// NewMixedAdjacencyList composes a and b with the given degree threshold.
// Use DefaultMixedThreshold (8*BlockSize = 512) when the caller has no
// tuned value.
func NewMixedAdjacencyList(a, b *AdjacencyList, threshold int) *MixedAdjacencyList {
	return &MixedAdjacencyList{a: a, b: b, threshold: threshold}
}

// Degree is always answered by B, the canonical degree source (spec.md
// §4.6).
func (m *MixedAdjacencyList) Degree(s int) int {
	return m.b.Degree(s)
}

// branchFor reports which branch source s dispatches to. The boundary is
// inclusive: a source exactly at the threshold dispatches to the high
// branch (spec.md §8 scenario 6 pins degree 512 — the default threshold
// itself — to the high branch, and degree 511 to the low branch).
func (m *MixedAdjacencyList) branchFor(s int) branch {
	if m.b.Degree(s) >= m.threshold {
		return branchHigh
	}

	return branchLow
}

// Cursor returns source s's cursor from whichever branch its degree
// dispatches to.
func (m *MixedAdjacencyList) Cursor(s int) *MixedCursor {
	br := m.branchFor(s)
	if br == branchHigh {
		return &MixedCursor{Cursor: m.a.Cursor(s), branch: branchHigh}
	}

	return &MixedCursor{Cursor: m.b.Cursor(s), branch: branchLow}
}

// CursorReuse reuses reuse's underlying Cursor only if it is already the
// correct branch for s; otherwise it falls back to a fresh Cursor (spec.md
// §4.6's "reuse only if the reused cursor is the correct branch's type").
func (m *MixedAdjacencyList) CursorReuse(reuse *MixedCursor, s int) *MixedCursor {
	br := m.branchFor(s)
	if reuse == nil || reuse.branch != br {
		return m.Cursor(s)
	}

	if br == branchHigh {
		return &MixedCursor{Cursor: m.a.CursorReuse(reuse.Cursor, s), branch: br}
	}

	return &MixedCursor{Cursor: m.b.CursorReuse(reuse.Cursor, s), branch: br}
}

// RawCursor always answers from B (performance-first for raw access,
// spec.md §4.6).
func (m *MixedAdjacencyList) RawCursor(s int) *Cursor {
	return m.b.RawCursor(s)
}

// MemoryInfo merges the two lists' accounting: page counts and page-size
// histograms are summed, on-heap stats are taken from B, and off-heap plus
// header stats are taken from A (spec.md §4.6).
func (m *MixedAdjacencyList) MemoryInfo() stats.MemoryInfo {
	infoA := m.a.MemoryInfo()
	infoB := m.b.MemoryInfo()

	return stats.MemoryInfo{
		PageCount:         infoA.PageCount + infoB.PageCount,
		BytesOnHeap:       infoB.BytesOnHeap,
		BytesOffHeap:      infoA.BytesOffHeap,
		HeapAllocations:   infoB.HeapAllocations,
		NativeAllocations: infoA.NativeAllocations,
		PageSizes:         infoA.PageSizes.Merge(infoB.PageSizes),
		HeaderBits:        infoA.HeaderBits,
		HeaderAllocations: infoA.HeaderAllocations,
		Blocks:            infoA.Blocks,
	}
}
