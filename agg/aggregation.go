// Package agg provides the property-aggregation identities applied to
// parallel edges (duplicate targets) during compression.
package agg

// Aggregation reduces the property values of two parallel edges (edges
// sharing a source and, after sorting, a target) into one. The core only
// requires this binary reducer; the identities below are the ones
// spec.md §4.3/§8 requires the test suite to exercise.
type Aggregation interface {
	// Merge combines the existing accumulated value with an incoming one.
	Merge(existing, incoming float64) float64
	String() string
}

// None means "preserve duplicates" — no aggregation is applied and every
// edge, including exact duplicates, survives compression when every
// property stream uses None. A duplicate target under None while another
// stream aggregates is rejected (see errs.ErrAggregationMissing); the zero Aggregation value is intentionally
// not a usable None so that "forgot to set an aggregation" fails loudly.
var None Aggregation = noneAggregation{}

type noneAggregation struct{}

func (noneAggregation) Merge(existing, incoming float64) float64 {
	panic("agg: NONE aggregation does not merge; duplicates must be preserved upstream")
}

func (noneAggregation) String() string { return "NONE" }

// IsNone reports whether a is the distinguished None sentinel.
func IsNone(a Aggregation) bool {
	_, ok := a.(noneAggregation)
	return ok
}

// Sum accumulates the running total of every duplicate's value.
var Sum Aggregation = sumAggregation{}

type sumAggregation struct{}

func (sumAggregation) Merge(existing, incoming float64) float64 { return existing + incoming }
func (sumAggregation) String() string                           { return "SUM" }

// Min keeps the smallest value seen across duplicates.
var Min Aggregation = minAggregation{}

type minAggregation struct{}

func (minAggregation) Merge(existing, incoming float64) float64 {
	if incoming < existing {
		return incoming
	}

	return existing
}
func (minAggregation) String() string { return "MIN" }

// Max keeps the largest value seen across duplicates.
var Max Aggregation = maxAggregation{}

type maxAggregation struct{}

func (maxAggregation) Merge(existing, incoming float64) float64 {
	if incoming > existing {
		return incoming
	}

	return existing
}
func (maxAggregation) String() string { return "MAX" }

// Single keeps the first value seen and ignores every later duplicate.
var Single Aggregation = singleAggregation{}

type singleAggregation struct{}

func (singleAggregation) Merge(existing, incoming float64) float64 { return existing }
func (singleAggregation) String() string                          { return "SINGLE" }

// Count replaces the value with a running count of how many edges landed
// in this bucket. The "value" being merged is not itself meaningful;
// Merge treats existing as the running count and ignores incoming's
// magnitude, incrementing by one per duplicate.
var Count Aggregation = countAggregation{}

type countAggregation struct{}

func (countAggregation) Merge(existing, incoming float64) float64 { return existing + 1 }
func (countAggregation) String() string                          { return "COUNT" }

// IsCount reports whether a is the distinguished Count sentinel. A
// compressor needs this because Count's "first value" is not the first
// edge's raw property — unlike every other aggregation, which copies the
// first edge's value verbatim, Count's first slot must start at 1 (one
// edge counted so far) for Merge's "+1 per duplicate" rule to produce a
// correct running total.
func IsCount(a Aggregation) bool {
	_, ok := a.(countAggregation)
	return ok
}

// SeedValue returns the value a newly-opened bucket should start at for
// aggregation a, given the first edge's raw property value raw. Every
// aggregation except Count starts at the raw value itself; Count starts
// at 1.
func SeedValue(a Aggregation, raw float64) float64 {
	if IsCount(a) {
		return 1
	}

	return raw
}
