package codec

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStrategies = []Strategy{
	DeltaVarLong{},
	PackedTail{},
	VarLongTail{},
	BlockAlignedTail{},
	InlinedHeadPackedTail{},
}

var degrees = []int{0, 1, 2, 63, 64, 65, 127, 128, 1000}

// sortedUniqueTargets builds a deterministic strictly-increasing target
// list of length n and returns both the targets and their delta chain.
func sortedUniqueTargets(n int, seed int64) []uint64 {
	r := rand.New(rand.NewSource(seed))
	targets := make([]uint64, n)
	var next uint64
	for i := 0; i < n; i++ {
		next += 1 + uint64(r.Intn(5))
		targets[i] = next
	}

	return targets
}

func deltasOf(targets []uint64) []uint64 {
	deltas := make([]uint64, len(targets))
	var prev uint64
	for i, v := range targets {
		deltas[i] = v - prev
		prev = v
	}

	return deltas
}

func decodeAll(t *testing.T, dec Decoder, data []byte, degree int) []uint64 {
	t.Helper()
	dec.Init(data, degree)

	out := make([]uint64, 0, degree)
	for {
		v := dec.Next()
		if v == NotFound {
			break
		}
		out = append(out, v)
	}

	return out
}

func TestRoundTrip_AllStrategies_AllDegrees(t *testing.T) {
	for _, s := range allStrategies {
		for _, d := range degrees {
			t.Run(s.Kind().String(), func(t *testing.T) {
				targets := sortedUniqueTargets(d, int64(d)+1)
				deltas := deltasOf(targets)

				data := s.Compress(deltas, d)
				got := decodeAll(t, s.NewDecoder(), data, d)

				require.Equal(t, targets, got)
			})
		}
	}
}

func TestScenario1_DegreeZero(t *testing.T) {
	for _, s := range allStrategies {
		data := s.Compress(nil, 0)
		dec := s.NewDecoder()
		dec.Init(data, 0)

		assert.Equal(t, NotFound, dec.Next())
		assert.Equal(t, 0, dec.Remaining())
	}
}

func TestScenario2_InlinedHeadPackedTail_SingleValue(t *testing.T) {
	s := InlinedHeadPackedTail{}
	deltas := []uint64{42}

	data := s.Compress(deltas, 1)
	require.Equal(t, byte(0), data[0], "single block byte must be 0: no tail values")

	dec := s.NewDecoder()
	dec.Init(data, 1)

	assert.Equal(t, uint64(42), dec.Next())
	assert.Equal(t, NotFound, dec.Next())
}

func TestScenario3_DuplicatesUnderSum(t *testing.T) {
	targets := []uint64{5, 3, 5, 5, 1}
	props := []float64{2.0, 1.0, 4.0, 8.0, 0.5}

	type pair struct {
		target uint64
		prop   float64
		order  int
	}
	pairs := make([]pair, len(targets))
	for i := range targets {
		pairs[i] = pair{targets[i], props[i], i}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].target < pairs[j].target })

	var uniqueTargets []uint64
	var uniqueProps []float64
	for _, p := range pairs {
		if len(uniqueTargets) > 0 && uniqueTargets[len(uniqueTargets)-1] == p.target {
			uniqueProps[len(uniqueProps)-1] += p.prop
			continue
		}
		uniqueTargets = append(uniqueTargets, p.target)
		uniqueProps = append(uniqueProps, p.prop)
	}

	assert.Equal(t, []uint64{1, 3, 5}, uniqueTargets)
	assert.Equal(t, []float64{0.5, 1.0, 14.0}, uniqueProps)
	assert.Equal(t, 3, len(uniqueTargets))
}

func TestScenario4_PackedTail_BlockBoundary(t *testing.T) {
	targets := make([]uint64, 128)
	for i := range targets {
		targets[i] = uint64(i)
	}
	deltas := deltasOf(targets)

	s := PackedTail{}
	data := s.Compress(deltas, 128)

	assert.Equal(t, byte(1), data[0], "block 0 width must be bitsNeeded(1)=1")
	assert.Equal(t, byte(1), data[1], "block 1 width must be bitsNeeded(1)=1")

	got := decodeAll(t, s.NewDecoder(), data, 128)
	require.Equal(t, targets, got)
}

func TestScenario5_VarLongTail_100Values(t *testing.T) {
	targets := make([]uint64, 100)
	for i := range targets {
		targets[i] = uint64(i)
	}
	deltas := deltasOf(targets)

	s := VarLongTail{}
	data := s.Compress(deltas, 100)

	require.Equal(t, byte(1), data[0], "one packed block at bit width 1")

	got := decodeAll(t, s.NewDecoder(), data, 100)
	require.Equal(t, targets, got)
}

func TestBlockAlignedTail_RejectsProperties(t *testing.T) {
	assert.False(t, BlockAlignedTail{}.SupportsProperties())
}

func TestCursorLaws_SizeAndRemaining(t *testing.T) {
	for _, s := range allStrategies {
		targets := sortedUniqueTargets(65, 7)
		deltas := deltasOf(targets)
		data := s.Compress(deltas, 65)

		dec := s.NewDecoder()
		dec.Init(data, 65)

		assert.Equal(t, 65, dec.Remaining())
		for i := 0; i < 65; i++ {
			before := dec.Remaining()
			dec.Next()
			assert.Equal(t, before-1, dec.Remaining())
		}
		assert.Equal(t, 0, dec.Remaining())
		assert.Equal(t, NotFound, dec.Next())
	}
}

func TestCursorLaws_PeekThenNextEqualsTwoPeeks(t *testing.T) {
	for _, s := range allStrategies {
		targets := sortedUniqueTargets(40, 11)
		deltas := deltasOf(targets)
		data := s.Compress(deltas, 40)

		dec := s.NewDecoder()
		dec.Init(data, 40)

		p1 := dec.Peek()
		v := dec.Next()
		assert.Equal(t, p1, v)

		p2a := dec.Peek()
		p2b := dec.Peek()
		assert.Equal(t, p2a, p2b)
	}
}

func TestCursorLaws_AdvanceByMatchesRepeatedNext(t *testing.T) {
	for _, s := range allStrategies {
		targets := sortedUniqueTargets(200, 13)
		deltas := deltasOf(targets)
		data := s.Compress(deltas, 200)

		n := 37

		decA := s.NewDecoder()
		decA.Init(data, 200)
		want := decA.AdvanceBy(n)

		decB := s.NewDecoder()
		decB.Init(data, 200)
		var got uint64
		for i := 0; i < n+1; i++ {
			got = decB.Next()
		}

		assert.Equal(t, want, got)
	}
}

func TestCursorLaws_AdvanceEqualsSkipUntilMinusOne(t *testing.T) {
	for _, s := range allStrategies {
		targets := sortedUniqueTargets(90, 17)
		deltas := deltasOf(targets)
		data := s.Compress(deltas, 90)

		target := targets[len(targets)/2]

		decAdvance := s.NewDecoder()
		decAdvance.Init(data, 90)
		got := decAdvance.Advance(target)

		decSkip := s.NewDecoder()
		decSkip.Init(data, 90)
		want := decSkip.SkipUntil(target - 1)

		assert.Equal(t, want, got)
	}
}

func TestCopy_ProducesIndependentCursor(t *testing.T) {
	for _, s := range allStrategies {
		targets := sortedUniqueTargets(70, 19)
		deltas := deltasOf(targets)
		data := s.Compress(deltas, 70)

		dec := s.NewDecoder()
		dec.Init(data, 70)
		dec.Next()
		dec.Next()

		cp := dec.Copy()

		v1 := dec.Next()
		v2 := cp.Next()
		assert.Equal(t, v1, v2)

		// advancing the copy must not affect the original
		cp.Next()
		assert.Equal(t, dec.Remaining()-1, cp.Remaining())
	}
}

func TestForKind_UnknownKind(t *testing.T) {
	_, err := ForKind(Kind(255))
	require.Error(t, err)
}

func TestForKind_KnownKinds(t *testing.T) {
	for _, k := range []Kind{
		KindDeltaVarLong, KindPackedTail, KindVarLongTail,
		KindBlockAlignedTail, KindInlinedHeadPackedTail,
	} {
		s, err := ForKind(k)
		require.NoError(t, err)
		assert.Equal(t, k, s.Kind())
	}
}
