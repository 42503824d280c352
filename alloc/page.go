package alloc

import (
	"fmt"
	"unsafe"

	"github.com/patmonardo/adjgraph/errs"
)

// BytePage is the default page content: a plain byte buffer. Every
// compression strategy's cursor and compressor works over BytePages; it is
// the "on-heap" arm of the Page<P> contract in spec terms.
type BytePage struct {
	Bytes []byte
}

// Len reports the page's byte capacity.
func (p *BytePage) Len() int {
	if p == nil {
		return 0
	}

	return len(p.Bytes)
}

// NewBytePage allocates a zeroed BytePage of the given size.
func NewBytePage(size int) *BytePage {
	return &BytePage{Bytes: make([]byte, size)}
}

// TruncateBytePage returns a new page holding the first length bytes of p,
// copied so the oversized-page path never aliases the caller's buffer.
func TruncateBytePage(p *BytePage, length int) *BytePage {
	out := NewBytePage(length)
	copy(out.Bytes, p.Bytes[:length])

	return out
}

// BytePageFactory implements PageFactory for *BytePage, the allocator
// content type every encoding strategy uses directly.
type BytePageFactory struct{}

func (BytePageFactory) NewPage(size int) *BytePage { return NewBytePage(size) }

func (BytePageFactory) Truncate(p *BytePage, length int) *BytePage {
	return TruncateBytePage(p, length)
}

func (BytePageFactory) Len(p *BytePage) int { return p.Len() }

func (BytePageFactory) Window(p *BytePage, offset, length int) []byte {
	return p.Bytes[offset : offset+length]
}

// OffHeapPage emulates a genuinely off-heap page: a typed handle owning a
// byte count and an address. True off-heap allocation would require cgo or
// a raw mmap syscall, both out of scope for this module's dependency-light
// core (see DESIGN.md); this type still satisfies the spec's contract of a
// non-zero sentinel address and a deterministic, fatal-on-repeat free by
// backing the "address" with a heap-owned byte array and guarding release
// with an explicit freed flag instead of relying on GC finalization.
type OffHeapPage struct {
	addr  unsafe.Pointer
	bytes []byte
	freed bool
}

// NewOffHeapPage allocates a page of size bytes and records its address.
func NewOffHeapPage(size int) *OffHeapPage {
	b := make([]byte, size)
	p := &OffHeapPage{bytes: b}
	if size > 0 {
		p.addr = unsafe.Pointer(&b[0])
	} else {
		// A zero-length page still needs a non-zero sentinel address per
		// the "page pointer of 0 means freed" rule; point at the handle
		// itself.
		p.addr = unsafe.Pointer(p)
	}

	return p
}

// Len reports the page's byte capacity.
func (p *OffHeapPage) Len() int {
	if p == nil {
		return 0
	}

	return len(p.bytes)
}

// Bytes exposes the page's backing storage. Calling it on a freed page is a
// use-after-free programmer error.
func (p *OffHeapPage) Bytes() []byte {
	if p.freed {
		panic(fmt.Errorf("offheap page: %w", errs.ErrUseAfterFree))
	}

	return p.bytes
}

// Addr returns the page's sentinel address: non-nil for a live page, since
// NewOffHeapPage always assigns a non-nil pointer, and nil after Release.
func (p *OffHeapPage) Addr() unsafe.Pointer {
	return p.addr
}

// Release deterministically frees the page. A second call is a fatal
// programmer error (ErrDoubleFree), matching spec.md §5's resource policy.
func (p *OffHeapPage) Release() error {
	if p.freed {
		return errs.ErrDoubleFree
	}

	p.freed = true
	p.bytes = nil
	p.addr = nil

	return nil
}

// OffHeapPageFactory implements PageFactory for *OffHeapPage. No
// allocator in this module is built on it: adjacency.Factory uses
// BytePageFactory for every list, including both arms of a
// MixedAdjacencyList.
type OffHeapPageFactory struct{}

func (OffHeapPageFactory) NewPage(size int) *OffHeapPage { return NewOffHeapPage(size) }

func (OffHeapPageFactory) Truncate(p *OffHeapPage, length int) *OffHeapPage {
	out := NewOffHeapPage(length)
	copy(out.bytes, p.bytes[:length])

	return out
}

func (OffHeapPageFactory) Len(p *OffHeapPage) int { return p.Len() }

func (OffHeapPageFactory) Window(p *OffHeapPage, offset, length int) []byte {
	b := p.Bytes()

	return b[offset : offset+length]
}
