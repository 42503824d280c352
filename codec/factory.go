package codec

import "github.com/patmonardo/adjgraph/errs"

// strategies maps each Kind to its singleton Strategy value; every
// concrete Strategy here is a zero-size struct, so a package-level table
// avoids allocating one per lookup.
var strategies = map[Kind]Strategy{
	KindDeltaVarLong:          DeltaVarLong{},
	KindPackedTail:            PackedTail{},
	KindVarLongTail:           VarLongTail{},
	KindBlockAlignedTail:      BlockAlignedTail{},
	KindInlinedHeadPackedTail: InlinedHeadPackedTail{},
}

// ForKind resolves a Kind to its Strategy, for a compressor or cursor that
// only has the enum value on hand (e.g. read back out of a per-source
// metadata table).
func ForKind(k Kind) (Strategy, error) {
	s, ok := strategies[k]
	if !ok {
		return nil, errs.ErrUnknownStrategy
	}

	return s, nil
}

// NewDecoder resolves k and returns a fresh Decoder in one call.
func NewDecoder(k Kind) (Decoder, error) {
	s, err := ForKind(k)
	if err != nil {
		return nil, err
	}

	return s.NewDecoder(), nil
}
