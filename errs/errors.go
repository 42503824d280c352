// Package errs centralizes the sentinel errors used across adjgraph.
//
// Call sites wrap these with context using fmt.Errorf("...: %w", errs.ErrX)
// rather than constructing ad-hoc error strings, so callers can reliably
// match on the sentinel with errors.Is.
package errs

import "errors"

var (
	// ErrUnknownStrategy is returned when an encoding strategy enum value is
	// not one of the recognized constants.
	ErrUnknownStrategy = errors.New("adjgraph: unknown encoding strategy")

	// ErrPropertiesUnsupported is returned when the BlockAlignedTail strategy
	// is asked to carry property streams; it rejects them at compress time.
	ErrPropertiesUnsupported = errors.New("adjgraph: strategy does not support property streams")

	// ErrPropertyLengthMismatch is returned when a property stream's length
	// does not equal the source's degree.
	ErrPropertyLengthMismatch = errors.New("adjgraph: property stream length does not match degree")

	// ErrPropertyStreamCountMismatch is returned when the number of supplied
	// aggregations does not equal the number of property streams.
	ErrPropertyStreamCountMismatch = errors.New("adjgraph: aggregation count does not match property stream count")

	// ErrAggregationMissing is returned when duplicate targets are present
	// and some, but not all, property streams use agg.None.
	ErrAggregationMissing = errors.New("adjgraph: duplicate targets require an aggregation function")

	// ErrPropertyAllocatorAbsent is returned when properties are supplied
	// but the compressor was not configured with a property allocator.
	ErrPropertyAllocatorAbsent = errors.New("adjgraph: property allocator absent but properties given")

	// ErrUseAfterFree is the panic value (wrapped) when a cursor is initialized against a page
	// that has already been released (a freed off-heap page, or a zero
	// sentinel offset used as if live).
	ErrUseAfterFree = errors.New("adjgraph: use of a freed page")

	// ErrDoubleFree is returned when an off-heap page handle is released
	// more than once.
	ErrDoubleFree = errors.New("adjgraph: page already freed")

	// ErrAllocatorNotInitialized is returned when a LocalAllocator or
	// PositionalAllocator is used before being obtained from a
	// BumpAllocator.
	ErrAllocatorNotInitialized = errors.New("adjgraph: allocator not initialized")

	// ErrNegativeAdvance is the panic value when Cursor.AdvanceBy is called with a
	// negative step count.
	ErrNegativeAdvance = errors.New("adjgraph: advanceBy requires a non-negative step count")

	// ErrOversizedPositional is returned when a positional write would
	// straddle a page boundary.
	ErrOversizedPositional = errors.New("adjgraph: positional write exceeds a single page")

	// ErrAllocationFailed surfaces a fatal out-of-memory condition while
	// allocating an oversized or off-heap page.
	ErrAllocationFailed = errors.New("adjgraph: page allocation failed")

	// ErrInvalidDegree is returned when a negative degree is supplied to the
	// compressor or a cursor initializer.
	ErrInvalidDegree = errors.New("adjgraph: degree must be non-negative")

	// ErrCorruptBlock is the panic value when a cursor fails to decode a block
	// header or packed payload consistent with the recorded degree.
	ErrCorruptBlock = errors.New("adjgraph: corrupt compressed block")
)
