package adjacency

import "github.com/patmonardo/adjgraph/codec"

// Cursor streams one source's decompressed neighbor list in ascending
// order. It is a thin wrapper over a codec.Decoder: resolving (offset,
// degree) into the strategy's byte window is the AdjacencyList's job
// (spec.md §4.5); the Cursor itself just forwards to the Decoder.
type Cursor struct {
	decoder codec.Decoder
}

// NewCursor wraps dec, already Init'd against its block's bytes and degree.
func NewCursor(dec codec.Decoder) *Cursor {
	return &Cursor{decoder: dec}
}

func (c *Cursor) Next() uint64               { return c.decoder.Next() }
func (c *Cursor) Peek() uint64                { return c.decoder.Peek() }
func (c *Cursor) Remaining() int              { return c.decoder.Remaining() }
func (c *Cursor) AdvanceBy(n int) uint64      { return c.decoder.AdvanceBy(n) }
func (c *Cursor) SkipUntil(t uint64) uint64   { return c.decoder.SkipUntil(t) }
func (c *Cursor) Advance(t uint64) uint64     { return c.decoder.Advance(t) }

// Copy returns a deep, independent snapshot of this cursor's position.
func (c *Cursor) Copy() *Cursor {
	return &Cursor{decoder: c.decoder.Copy()}
}
