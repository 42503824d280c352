package agg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	assert.Equal(t, 3.0, Sum.Merge(1, 2))
	assert.Equal(t, "SUM", Sum.String())
}

func TestMin(t *testing.T) {
	assert.Equal(t, 1.0, Min.Merge(5, 1))
	assert.Equal(t, 5.0, Min.Merge(5, 9))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 9.0, Max.Merge(5, 9))
	assert.Equal(t, 5.0, Max.Merge(5, 1))
}

func TestSingle(t *testing.T) {
	assert.Equal(t, 5.0, Single.Merge(5, 999))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2.0, Count.Merge(1, 0))
	assert.Equal(t, 3.0, Count.Merge(2, 0))
}

func TestIsNone(t *testing.T) {
	assert.True(t, IsNone(None))
	assert.False(t, IsNone(Sum))
}

func TestIsCount(t *testing.T) {
	assert.True(t, IsCount(Count))
	assert.False(t, IsCount(Sum))
}

func TestSeedValue(t *testing.T) {
	assert.Equal(t, 1.0, SeedValue(Count, 42.0))
	assert.Equal(t, 42.0, SeedValue(Sum, 42.0))
	assert.Equal(t, 42.0, SeedValue(Min, 42.0))
}

func TestNone_MergePanics(t *testing.T) {
	assert.Panics(t, func() {
		None.Merge(1, 2)
	})
}

// TestDuplicatesUnderSum pins the literal scenario from spec.md §8:
// targets=[5,3,5,5,1], props=[[2.0,1.0,4.0,8.0,0.5]], aggregation=[SUM]
// -> sorted unique [1,3,5], props [[0.5,1.0,14.0]], newDegree=3.
func TestDuplicatesUnderSum_LiteralScenario(t *testing.T) {
	type edge struct {
		target int
		prop   float64
	}
	edges := []edge{{5, 2.0}, {3, 1.0}, {5, 4.0}, {5, 8.0}, {1, 0.5}}

	// Stable sort by target, ties keep input order (mirrors an indirect
	// stable sort order over targets).
	order := make([]int, len(edges))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && edges[order[j-1]].target > edges[order[j]].target; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}

	var targets []int
	var props []float64
	for _, idx := range order {
		e := edges[idx]
		if len(targets) > 0 && targets[len(targets)-1] == e.target {
			props[len(props)-1] = Sum.Merge(props[len(props)-1], e.prop)
			continue
		}
		targets = append(targets, e.target)
		props = append(props, e.prop)
	}

	assert.Equal(t, []int{1, 3, 5}, targets)
	assert.Equal(t, []float64{0.5, 1.0, 14.0}, props)
	assert.Equal(t, 3, len(targets))
}
