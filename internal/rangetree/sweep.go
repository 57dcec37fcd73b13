// internal/rangetree/sweep.go
// The sweep-line merge: given several Trees known to share the same
// [Start, End), merges them into one by recursively merging their children
// left to right. Children from different source trees nest, overlap, and
// straddle one another at arbitrary offsets; the sweep carves them into
// aligned output slots, splitting any child that overruns the current slot
// and re-injecting the right fragment at the slot's end offset.
package rangetree

import "sort"

// nodeRef tags a child node with the index of the source tree it was
// contributed by (the source's position in the Merge call's input slice).
type nodeRef struct {
	source int
	tree   *Tree
}

// Merge merges trees that all share the same [Start, End). The merged
// node's Delta is the sum of the inputs' deltas; its children come from
// sweeping and recombining every input's children.
func Merge(trees []*Tree) *Tree {
	var delta int64
	for _, t := range trees {
		delta += t.Delta
	}
	return &Tree{
		Start:    trees[0].Start,
		End:      trees[0].End,
		Delta:    delta,
		Children: mergeChildren(trees),
	}
}

// mergeChildren is the heart of the algorithm: it sweeps all children of
// all parentTrees left to right, opening an output slot at each new start
// offset and closing it once no more events fall inside, splitting any
// child that extends past the slot's end so its right fragment can be
// re-enqueued at that offset.
func mergeChildren(parentTrees []*Tree) []*Tree {
	q := newEventQueue(parentTrees)

	var out []*Tree
	open := false
	var openStart, openEnd uint32
	parentToNested := make(map[int][]*Tree)

	closeSlot := func() {
		out = append(out, nextChild(openStart, openEnd, parentToNested))
		parentToNested = make(map[int][]*Tree)
		open = false
	}

	for !q.empty() {
		ev := q.next()

		if open && openEnd <= ev.offset {
			closeSlot()
		}

		if !open {
			openStart = ev.offset
			openEnd = ev.offset + 1
			for _, nr := range ev.nodes {
				if nr.tree.End > openEnd {
					openEnd = nr.tree.End
				}
			}
			q.setPendingOffset(openEnd)
			for _, nr := range ev.nodes {
				parentToNested[nr.source] = append(parentToNested[nr.source], nr.tree)
			}
			open = true
			continue
		}

		for _, nr := range ev.nodes {
			tree := nr.tree
			if tree.End > openEnd {
				right := tree.Split(openEnd)
				q.addPending(nodeRef{nr.source, right})
			}
			parentToNested[nr.source] = append(parentToNested[nr.source], tree)
		}
	}

	if open {
		closeSlot()
	}
	return out
}

// nextChild closes the currently open slot [start, end), producing one
// merged child. For each contributing source: if it supplied exactly one
// tree that already spans [start, end), that tree is used directly;
// otherwise its contributions are wrapped in a synthetic zero-delta node
// covering [start, end) whose children are the source's nested fragments.
// The synthetic wrapper lets the recursion treat "this source only
// partially covers the slot" uniformly, without special cases.
func nextChild(start, end uint32, parentToNested map[int][]*Tree) *Tree {
	sources := make([]int, 0, len(parentToNested))
	for src := range parentToNested {
		sources = append(sources, src)
	}
	sort.Ints(sources)

	collected := make([]*Tree, 0, len(sources))
	for _, src := range sources {
		nested := parentToNested[src]
		if len(nested) == 1 && nested[0].Start == start && nested[0].End == end {
			collected = append(collected, nested[0])
			continue
		}
		collected = append(collected, &Tree{Start: start, End: end, Delta: 0, Children: nested})
	}
	return Merge(collected)
}

// event is one offset's worth of newly-starting child nodes.
type event struct {
	offset uint32
	nodes  []nodeRef
}

// eventQueue drains the start-offset-keyed schedule built from every
// parent's children, splicing in "pending" trees produced mid-sweep by
// Split. Pending trees always start at exactly pendingOffset (the open
// slot's end at the moment they were produced), so at most one pending
// offset is ever live — a hand-rolled priority-of-one queue suffices.
type eventQueue struct {
	offsets  []uint32
	byOffset map[uint32][]nodeRef
	idx      int

	hasPending    bool
	pendingOffset uint32
	pending       []nodeRef
}

func newEventQueue(parentTrees []*Tree) *eventQueue {
	q := &eventQueue{byOffset: make(map[uint32][]nodeRef)}
	seen := make(map[uint32]bool)
	for src, parent := range parentTrees {
		for _, child := range parent.Children {
			q.byOffset[child.Start] = append(q.byOffset[child.Start], nodeRef{src, child})
			if !seen[child.Start] {
				seen[child.Start] = true
				q.offsets = append(q.offsets, child.Start)
			}
		}
	}
	sort.Slice(q.offsets, func(i, j int) bool { return q.offsets[i] < q.offsets[j] })
	return q
}

func (q *eventQueue) empty() bool {
	return q.idx >= len(q.offsets) && !q.hasPending
}

// setPendingOffset records the offset at which any trees split during the
// slot about to be processed must be re-injected. It is set unconditionally
// when a slot opens, per the algorithm's pendingOffset bookkeeping.
func (q *eventQueue) setPendingOffset(offset uint32) {
	q.pendingOffset = offset
}

// addPending enqueues a right-fragment produced by Split, tagged at the
// current pendingOffset.
func (q *eventQueue) addPending(nr nodeRef) {
	q.hasPending = true
	q.pending = append(q.pending, nr)
}

// next returns the next event in offset order. If pending fragments exist,
// they are spliced into (or returned ahead of) the next scheduled event
// according to how pendingOffset compares to it.
func (q *eventQueue) next() event {
	if !q.hasPending {
		off := q.offsets[q.idx]
		nodes := q.byOffset[off]
		q.idx++
		return event{off, nodes}
	}

	if q.idx >= len(q.offsets) {
		return q.drainPending(event{})
	}

	nextOff := q.offsets[q.idx]
	switch {
	case q.pendingOffset < nextOff:
		return q.drainPending(event{})
	case q.pendingOffset == nextOff:
		scheduled := q.byOffset[nextOff]
		q.idx++
		return q.drainPending(event{nextOff, scheduled})
	default:
		nodes := q.byOffset[nextOff]
		q.idx++
		return event{nextOff, nodes}
	}
}

func (q *eventQueue) drainPending(base event) event {
	if base.nodes == nil {
		base.offset = q.pendingOffset
		base.nodes = q.pending
	} else {
		base.nodes = append(append([]nodeRef{}, q.pending...), base.nodes...)
	}
	q.hasPending = false
	q.pending = nil
	return base
}
