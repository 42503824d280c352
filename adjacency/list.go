package adjacency

import (
	"github.com/patmonardo/adjgraph/alloc"
	"github.com/patmonardo/adjgraph/codec"
	"github.com/patmonardo/adjgraph/stats"
)

// AdjacencyList is the built, read-only output of a Factory: degree/cursor/
// memoryInfo access over the pages every worker compressor wrote into
// (spec.md §6's AdjacencyList capability).
type AdjacencyList struct {
	tables   *Tables
	strategy codec.Strategy

	adjacencyPages []*alloc.BytePage
	propertyPages  [][]*alloc.BytePage // one page array per property column

	memoryTracker stats.MemoryTracker
}

// Degree reports source s's degree after duplicate folding.
func (l *AdjacencyList) Degree(s int) int {
	return int(l.tables.Degrees[s])
}

// Cursor returns a fresh decompressing Cursor over source s's neighbors.
func (l *AdjacencyList) Cursor(s int) *Cursor {
	degree := l.Degree(s)
	dec := l.strategy.NewDecoder()

	if degree == 0 {
		dec.Init(nil, 0)

		return NewCursor(dec)
	}

	off := l.tables.AdjacencyOffsets[s]
	data := l.window(l.adjacencyPages, off)
	dec.Init(data, degree)

	return NewCursor(dec)
}

// CursorReuse reuses reuse's Decoder by re-Init'ing it against source s's
// block, avoiding a fresh Decoder allocation when the caller is iterating
// many sources of the same strategy in a tight loop.
func (l *AdjacencyList) CursorReuse(reuse *Cursor, s int) *Cursor {
	if reuse == nil {
		return l.Cursor(s)
	}

	degree := l.Degree(s)
	if degree == 0 {
		reuse.decoder.Init(nil, 0)

		return reuse
	}

	off := l.tables.AdjacencyOffsets[s]
	data := l.window(l.adjacencyPages, off)
	reuse.decoder.Init(data, degree)

	return reuse
}

// RawCursor is an alias of Cursor for this list: there is only one
// adjacency representation here (the high/low-degree split only exists at
// the MixedAdjacencyList layer), so "raw" and "normal" access coincide.
func (l *AdjacencyList) RawCursor(s int) *Cursor {
	return l.Cursor(s)
}

// PropertyCursor returns source s's propertyIndex-th property stream,
// decoded back into float64s. Every property column occupies the same
// Offset coordinate within its own page array (spec.md §4.3 step 5), so
// propertyIndex selects which column's array to read.
func (l *AdjacencyList) PropertyCursor(s, propertyIndex int) []float64 {
	degree := l.Degree(s)
	if degree == 0 {
		return nil
	}

	off := l.tables.PropertyOffsets[s]
	data := l.window(l.propertyPages[propertyIndex], off)

	return bytesToFloats(data, degree)
}

// MemoryInfo reports this list's page/byte/histogram accounting.
func (l *AdjacencyList) MemoryInfo() stats.MemoryInfo {
	info := l.memoryTracker.MemoryInfo()

	pageCount := len(l.adjacencyPages)
	for _, column := range l.propertyPages {
		pageCount += len(column)
	}
	info.PageCount = pageCount

	return info
}

func (l *AdjacencyList) window(pages []*alloc.BytePage, off alloc.Offset) []byte {
	page := pages[off.PageIndex()]

	return page.Bytes[off.InPageOffset():]
}
