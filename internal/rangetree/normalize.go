// internal/rangetree/normalize.go
// Post-merge canonicalization: a merged Tree is not yet in minimal shape.
// Normalize rewrites it so that no two adjacent siblings share an effective
// count, zero-delta leaf wrappers that contribute nothing beyond their
// parent's count are dropped, and a sole surviving child spanning its
// parent exactly is absorbed into the parent.
package rangetree

// Normalize canonicalizes t and its subtree in place.
func Normalize(t *Tree) {
	normalizeNode(t)
}

// normalizeNode rewrites t's children. Every child is normalized first, so
// the deltas compared below are final. Runs of adjacent siblings carrying
// the same delta then fuse into one node inheriting the union of their
// children, and each fused node is normalized again so seams between the
// fused siblings' children fuse too.
// Fusion compares deltas rather than effective counts: siblings share a
// parent, so equal deltas and equal effective counts are the same test.
func normalizeNode(t *Tree) {
	for _, child := range t.Children {
		normalizeNode(child)
	}

	children := make([]*Tree, 0, len(t.Children))
	var head *Tree
	var tail []*Tree
	var curEnd uint32

	endChain := func() {
		if len(tail) > 0 {
			head.End = tail[len(tail)-1].End
			for _, tt := range tail {
				head.Children = append(head.Children, tt.Children...)
			}
			tail = tail[:0]
			normalizeNode(head)
		}
		// A zero-delta leaf carries exactly its parent's count.
		if head.Delta != 0 || len(head.Children) > 0 {
			children = append(children, head)
		}
	}

	for _, child := range t.Children {
		switch {
		case head == nil:
			head = child
		case child.Delta == head.Delta && child.Start == curEnd:
			tail = append(tail, child)
		default:
			endChain()
			head = child
		}
		curEnd = child.End
	}
	if head != nil {
		endChain()
	}

	// A sole child covering t exactly would flatten to a duplicate range;
	// t takes over its delta and children instead.
	if len(children) == 1 {
		c := children[0]
		if c.Start == t.Start && c.End == t.End {
			t.Delta += c.Delta
			t.Children = c.Children
			return
		}
	}
	t.Children = children
}
