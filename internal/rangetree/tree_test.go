package rangetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSortedToRangesRoundTrip(t *testing.T) {
	cases := [][]Range{
		{{0, 10, 1}},
		{{0, 10, 1}, {2, 6, 3}},
		{{0, 10, 1}, {2, 4, 3}, {4, 8, 5}, {5, 6, 9}},
		{{0, 20, 2}, {0, 5, 2}, {5, 10, 7}, {10, 20, 2}},
	}
	for _, ranges := range cases {
		tree := FromSorted(ranges)
		got := tree.ToRanges()
		assert.Equal(t, ranges, got)
	}
}

func TestFromSortedNesting(t *testing.T) {
	ranges := []Range{{0, 10, 1}, {2, 8, 3}, {4, 6, 5}}
	tree := FromSorted(ranges)

	require.Equal(t, uint32(0), tree.Start)
	require.Equal(t, uint32(10), tree.End)
	require.Equal(t, int64(1), tree.Delta)
	require.Len(t, tree.Children, 1)

	mid := tree.Children[0]
	assert.Equal(t, uint32(2), mid.Start)
	assert.Equal(t, uint32(8), mid.End)
	assert.Equal(t, int64(2), mid.Delta) // 3 - 1
	require.Len(t, mid.Children, 1)

	inner := mid.Children[0]
	assert.Equal(t, uint32(4), inner.Start)
	assert.Equal(t, uint32(6), inner.End)
	assert.Equal(t, int64(2), inner.Delta) // 5 - 3
}

func TestFromSortedSiblings(t *testing.T) {
	ranges := []Range{{0, 10, 1}, {1, 3, 5}, {4, 6, 7}}
	tree := FromSorted(ranges)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, uint32(1), tree.Children[0].Start)
	assert.Equal(t, uint32(4), tree.Children[1].Start)
}

func TestSplitTruncatesAndMovesChildren(t *testing.T) {
	ranges := []Range{{0, 10, 1}, {2, 4, 3}, {6, 8, 5}}
	tree := FromSorted(ranges)

	right := tree.Split(5)

	assert.Equal(t, uint32(0), tree.Start)
	assert.Equal(t, uint32(5), tree.End)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, uint32(2), tree.Children[0].Start)

	assert.Equal(t, uint32(5), right.Start)
	assert.Equal(t, uint32(10), right.End)
	assert.Equal(t, tree.Delta, right.Delta)
	require.Len(t, right.Children, 1)
	assert.Equal(t, uint32(6), right.Children[0].Start)
}

func TestSplitStraddlingChildRecurses(t *testing.T) {
	ranges := []Range{{0, 10, 1}, {2, 8, 3}}
	tree := FromSorted(ranges)

	// offset 5 straddles the single child [2,8).
	right := tree.Split(5)

	require.Len(t, tree.Children, 1)
	straddled := tree.Children[0]
	assert.Equal(t, uint32(2), straddled.Start)
	assert.Equal(t, uint32(5), straddled.End)

	require.Len(t, right.Children, 1)
	movedHalf := right.Children[0]
	assert.Equal(t, uint32(5), movedHalf.Start)
	assert.Equal(t, uint32(8), movedHalf.End)
	assert.Equal(t, straddled.Delta, movedHalf.Delta)
}
