package alloc

import (
	"sync"
	"sync/atomic"
)

// PageFactory lets a BumpAllocator stay agnostic to its page content type:
// callers supply the concrete Page<P> behavior (allocate, truncate, and
// expose a writable byte window) once per instantiation.
type PageFactory[P any] interface {
	NewPage(size int) P
	Truncate(p P, length int) P
	Len(p P) int
	// Window returns a writable byte slice of length starting at the given
	// in-page byte offset. Every concrete P in this module is ultimately
	// byte-addressable, so this is the one operation every instantiation
	// must provide.
	Window(p P, offset, length int) []byte
}

// BumpAllocator owns a growable, ordered array of pages of type P and hands
// out LocalAllocators (and, for *BytePage, PositionalAllocators) to
// concurrent workers. Normal allocation never contends beyond the atomic
// allocatedPages counter; the page array itself grows under a mutex, the
// only suspension point in the allocator per spec.md §5.
type BumpAllocator[P any] struct {
	factory         PageFactory[P]
	defaultPageSize int

	mu             sync.Mutex
	pages          []P
	allocatedPages atomic.Int64
}

// NewBumpAllocator creates a BumpAllocator that allocates default-sized
// pages of defaultPageSize bytes (normally alloc.PageSize) via factory.
func NewBumpAllocator[P any](factory PageFactory[P], defaultPageSize int) *BumpAllocator[P] {
	return &BumpAllocator[P]{
		factory:         factory,
		defaultPageSize: defaultPageSize,
	}
}

// AllocatedPages reports the number of pages allocated so far, including
// oversized pages.
func (b *BumpAllocator[P]) AllocatedPages() int {
	return int(b.allocatedPages.Load())
}

// insertPage appends p to the page array and returns its index.
func (b *BumpAllocator[P]) insertPage(p P) int {
	b.mu.Lock()
	idx := len(b.pages)
	b.pages = append(b.pages, p)
	b.mu.Unlock()

	b.allocatedPages.Add(1)

	return idx
}

// ensurePage grows the page array, if necessary, so index idx is valid,
// padding with zero-value pages. Used by PositionalAllocator when a
// positional write targets a page beyond what has been allocated so far.
func (b *BumpAllocator[P]) ensurePage(idx int) {
	b.mu.Lock()
	grew := false
	for len(b.pages) <= idx {
		var zero P
		b.pages = append(b.pages, zero)
		grew = true
	}
	b.mu.Unlock()

	if grew {
		b.allocatedPages.Store(int64(len(b.pages)))
	}
}

func (b *BumpAllocator[P]) pageAt(idx int) P {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.pages[idx]
}

func (b *BumpAllocator[P]) setPageAt(idx int, p P) {
	b.mu.Lock()
	b.pages[idx] = p
	b.mu.Unlock()
}

// Window resolves an Offset to a writable/readable byte slice of the given
// length on its page.
func (b *BumpAllocator[P]) Window(off Offset, length int) []byte {
	page := b.pageAt(off.PageIndex())

	return b.factory.Window(page, off.InPageOffset(), length)
}

// insertOversized allocates a dedicated page sized exactly to length and
// inserts it at the next slot, per spec.md §4.1's oversized-allocation
// path.
func (b *BumpAllocator[P]) insertOversized(length int) Offset {
	page := b.factory.NewPage(length)
	idx := b.insertPage(page)

	return MakeOffset(idx, 0)
}

// NewLocalAllocator returns a fresh, not-thread-safe LocalAllocator bound
// to this BumpAllocator. Callers create one per worker.
func (b *BumpAllocator[P]) NewLocalAllocator() *LocalAllocator[P] {
	return &LocalAllocator[P]{global: b}
}

// IntoPages takes a defensive snapshot of the page array. Callers must
// invoke this exactly once, after every worker has finished allocating.
func (b *BumpAllocator[P]) IntoPages() []P {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]P, len(b.pages))
	copy(out, b.pages)

	return out
}
