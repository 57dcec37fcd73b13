package rangetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// effectiveAt returns the count of the narrowest range in ranges (a
// pre-order flat list) that covers offset, or 0 if none does. Among ranges
// with identical spans the latest (deepest-nested) wins.
func effectiveAt(ranges []Range, offset uint32) uint32 {
	var (
		best      Range
		bestWidth uint32
		found     bool
	)
	for _, r := range ranges {
		if r.Start <= offset && offset < r.End {
			w := r.End - r.Start
			if !found || w <= bestWidth {
				best, bestWidth, found = r, w, true
			}
		}
	}
	if !found {
		return 0
	}
	return best.Count
}

func TestMergeSameInnerRangeSumsCounts(t *testing.T) {
	a := FromSorted([]Range{{0, 10, 1}, {2, 4, 3}})
	b := FromSorted([]Range{{0, 10, 1}, {2, 4, 5}})

	merged := Merge([]*Tree{a, b})
	Normalize(merged)
	got := merged.ToRanges()

	want := []Range{{0, 10, 2}, {2, 4, 8}}
	assert.Equal(t, want, got)
}

func TestMergeRespectsPerOffsetCountLaw(t *testing.T) {
	inputs := [][]Range{
		{{0, 10, 1}, {2, 6, 3}},
		{{0, 10, 1}, {4, 8, 5}},
	}
	trees := make([]*Tree, len(inputs))
	for i, rs := range inputs {
		trees[i] = FromSorted(rs)
	}
	merged := Merge(trees)
	Normalize(merged)
	out := merged.ToRanges()

	for offset := uint32(0); offset < 10; offset++ {
		var want uint32
		for _, rs := range inputs {
			want += effectiveAt(rs, offset)
		}
		got := effectiveAt(out, offset)
		require.Equalf(t, want, got, "offset %d", offset)
	}
}

func TestMergeIsCommutative(t *testing.T) {
	a := FromSorted([]Range{{0, 10, 1}, {2, 6, 3}, {3, 5, 9}})
	b := FromSorted([]Range{{0, 10, 2}, {4, 8, 5}})

	m1 := Merge([]*Tree{FromSorted(a.ToRanges()), FromSorted(b.ToRanges())})
	Normalize(m1)
	m2 := Merge([]*Tree{FromSorted(b.ToRanges()), FromSorted(a.ToRanges())})
	Normalize(m2)

	assert.Equal(t, m1.ToRanges(), m2.ToRanges())
}

func TestNormalizeFusesEqualAdjacentSiblings(t *testing.T) {
	// Two disjoint children with identical counts should fuse into one.
	a := FromSorted([]Range{{0, 10, 1}, {2, 4, 5}})
	b := FromSorted([]Range{{0, 10, 1}, {4, 6, 5}})

	merged := Merge([]*Tree{a, b})
	Normalize(merged)
	got := merged.ToRanges()

	// [2,4) sums 5+1, [4,6) sums 1+5; equal counts, so the two fuse.
	want := []Range{{0, 10, 2}, {2, 6, 6}}
	assert.Equal(t, want, got)
}

func TestNormalizePrunesDegenerateWrapper(t *testing.T) {
	// a's inner range carries its parent's count (delta 0) and b has none, so
	// the merged child is a zero-delta leaf that normalization must drop.
	a := FromSorted([]Range{{0, 10, 1}, {2, 4, 1}})
	b := FromSorted([]Range{{0, 10, 1}})

	merged := Merge([]*Tree{a, b})
	Normalize(merged)
	got := merged.ToRanges()

	want := []Range{{0, 10, 2}}
	assert.Equal(t, want, got)
}
