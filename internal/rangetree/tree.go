// internal/rangetree/tree.go
// Package rangetree implements the ordered rose tree used to merge
// overlapping coverage ranges in time proportional to the number of range
// boundaries, never to source length. A Tree node stores its execution
// count as a delta relative to the accumulated count of its ancestors;
// walking root→node and summing deltas gives the node's effective count.
package rangetree

import "go.uber.org/atomic"

// SplitOps counts calls to (*Tree).Split across the process, for callers
// that want to expose it as a metric (internal/metrics.SplitOpsTotal).
// The core never reads it itself — exposing it here, rather than having
// this package import internal/metrics, keeps the merge algorithm free of
// ambient-stack dependencies.
var SplitOps atomic.Int64

// Range is a flat half-open interval with an absolute execution count, the
// shape a function's ranges take before tree construction and after
// flattening.
type Range struct {
	Start, End uint32
	Count      uint32
}

// Tree is one node of the merge-time rose tree. Children are disjoint,
// ordered by Start ascending, and each lies strictly inside its parent's
// [Start, End).
type Tree struct {
	Start, End uint32
	Delta      int64
	Children   []*Tree
}

// FromSorted reconstructs a Tree from a flat range list in the canonical
// total order (start ascending, end descending at ties), as produced by a
// single FunctionCov's ranges. The stack-based pre-order reconstruction:
// push the first range as root; for each subsequent range, pop until the
// top's End is >= the range's End, then attach it as a child of the new
// top.
func FromSorted(ranges []Range) *Tree {
	root := &Tree{Start: ranges[0].Start, End: ranges[0].End, Delta: int64(ranges[0].Count)}
	stack := []*Tree{root}
	effective := []int64{int64(ranges[0].Count)}

	for _, r := range ranges[1:] {
		for len(stack) > 1 && stack[len(stack)-1].End < r.End {
			stack = stack[:len(stack)-1]
			effective = effective[:len(effective)-1]
		}
		parentEff := effective[len(effective)-1]
		node := &Tree{Start: r.Start, End: r.End, Delta: int64(r.Count) - parentEff}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)

		stack = append(stack, node)
		effective = append(effective, parentEff+node.Delta)
	}
	return root
}

// ToRanges flattens the tree back to a sorted flat range list via pre-order
// traversal, one RangeCov-shaped Range per node carrying its effective
// (accumulated-delta) count.
func (t *Tree) ToRanges() []Range {
	var out []Range
	var walk func(n *Tree, parentEffective int64)
	walk = func(n *Tree, parentEffective int64) {
		eff := parentEffective + n.Delta
		out = append(out, Range{Start: n.Start, End: n.End, Count: uint32(eff)})
		for _, c := range n.Children {
			walk(c, eff)
		}
	}
	walk(t, 0)
	return out
}

// Split divides the receiver at offset, which must satisfy
// t.Start < offset < t.End. The receiver is truncated in place to
// [t.Start, offset) and a new node covering [offset, t.End) is returned.
// Children fully left of offset stay with the receiver, children fully
// right move to the new node, and any child straddling offset is split
// recursively. Both halves keep the receiver's Delta.
func (t *Tree) Split(offset uint32) *Tree {
	SplitOps.Inc()
	right := &Tree{Start: offset, End: t.End, Delta: t.Delta}
	t.End = offset

	var left, straddleRight []*Tree
	for _, c := range t.Children {
		switch {
		case c.End <= offset:
			left = append(left, c)
		case c.Start >= offset:
			straddleRight = append(straddleRight, c)
		default:
			rc := c.Split(offset)
			left = append(left, c)
			straddleRight = append(straddleRight, rc)
		}
	}
	t.Children = left
	right.Children = straddleRight
	return right
}
