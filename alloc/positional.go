package alloc

import "github.com/patmonardo/adjgraph/errs"

// PositionalAllocator writes a payload at an exact, pre-determined Offset
// rather than bumping a cursor forward. It exists so that the second and
// later property streams of a source can be written at precisely the
// Offset the first property stream's LocalAllocator already claimed,
// keeping every property stream for a source indexed identically (spec.md
// §4.3 step 5).
//
// It is concretely typed to *BytePage: every property stream in this
// module is a flat array of 64-bit words reinterpreted as bytes, so there
// is no need for the positional path to be generic over page content.
type PositionalAllocator struct {
	global *BumpAllocator[*BytePage]
}

// NewPositionalAllocator returns a PositionalAllocator sharing the given
// BumpAllocator's page array.
func NewPositionalAllocator(global *BumpAllocator[*BytePage]) *PositionalAllocator {
	return &PositionalAllocator{global: global}
}

// InsertAt copies payload to the page and in-page offset implied by off. If
// payload is larger than a single page it is truncated into a dedicated
// oversized page at off's page index instead (the off-heap/oversized
// contract only makes sense for offset 0 within that page: an oversized
// payload always starts its own page).
func (pa *PositionalAllocator) InsertAt(off Offset, payload []byte) error {
	idx := off.PageIndex()
	inOff := off.InPageOffset()
	length := len(payload)

	if length > PageSize {
		if inOff != 0 {
			return errs.ErrOversizedPositional
		}

		trunc := pa.global.factory.Truncate(&BytePage{Bytes: payload}, length)
		pa.global.ensurePage(idx)
		pa.global.setPageAt(idx, trunc)

		return nil
	}

	if inOff+length > PageSize {
		return errs.ErrOversizedPositional
	}

	pa.global.ensurePage(idx)

	page := pa.global.pageAt(idx)
	if page == nil {
		page = NewBytePage(pa.global.defaultPageSize)
		pa.global.setPageAt(idx, page)
	}

	copy(page.Bytes[inOff:inOff+length], payload)

	return nil
}
