package tree

import "github.com/vanderheijden86/canopy/pkg/debug"

// The sibling chain threads every materialized entry into the currently
// visible flattened order. Three transitions mutate it, and nothing
// else does:
//
//	relinkOnLoad:     link freshly constructed children under a container
//	relinkOnExpand:   repoint the resume entry's prev when a subtree reappears
//	relinkOnCollapse: point it back at the container when the subtree hides
//
// "Resume entry" is the entry the visible order continues at after a
// container's whole subtree, which is simply the container's structural
// next. Downward traversal needs no patching at all: the last child's
// next is spliced past the subtree at load time, and expansion state
// decides per entry whether to descend (childHead) or move along (next).
// Upward traversal is the fragile half, because the resume entry's prev
// must name "the last visible descendant of the thing above me", and
// that changes every time the subtree above it expands or collapses.

// relinkOnLoad links ordered, freshly allocated children into the chain
// under container c. The first child's prev is c; each later child pairs
// with its predecessor; the last child's next is spliced back to c's own
// successor so that walking down through an arbitrarily deep subtree
// falls out at the right place without a backtracking stack.
func (t *Tree) relinkOnLoad(c EntryID, kids []EntryID) {
	if len(kids) == 0 {
		return
	}
	ce := t.arena.at(c)
	resume := ce.next
	ce.childHead = kids[0]
	ce.lastChild = kids[len(kids)-1]

	prev := c
	for _, kid := range kids {
		t.arena.at(kid).prev = prev
		if prev != c {
			t.arena.at(prev).next = kid
		}
		prev = kid
	}
	t.arena.at(prev).next = resume
}

// relinkOnExpand makes c's subtree count again for upward traversal: the
// resume entry's prev is pointed at the subtree's last visible
// descendant. That is the deep descendant, not c's own last child: if
// the last child is itself an expanded container, walking up from the
// resume entry must land inside it. Idempotent, and safe on containers
// with no loaded children (the resume entry's prev then stays on the
// container's chain, because lastVisibleDescendant returns c itself).
func (t *Tree) relinkOnExpand(c EntryID) {
	resume := t.arena.at(c).next
	if resume == None {
		return
	}
	tail := t.lastVisibleDescendant(c)
	t.arena.at(resume).prev = tail
	// The splice telescopes: every level's last child points past its
	// subtree at the parent's successor, so the deep tail's next must
	// already be the resume entry.
	debug.Assert(t.arena.at(tail).next == resume, "resume prev/next not mutual after expand")
}

// relinkOnCollapse hides c's subtree from upward traversal: the resume
// entry's prev is restored to c itself, so the chain skips everything
// under c. Descendant links are left untouched; they are unreachable
// while collapsed and the next relinkOnExpand makes them consistent
// again.
func (t *Tree) relinkOnCollapse(c EntryID) {
	resume := t.arena.at(c).next
	if resume == None {
		return
	}
	t.arena.at(resume).prev = c
}

// lastVisibleDescendant follows lastChild links through expanded,
// loaded, non-empty containers and returns the deepest entry of id's
// subtree that the visible order currently reaches, or id itself when
// the subtree contributes nothing below it.
func (t *Tree) lastVisibleDescendant(id EntryID) EntryID {
	cur := id
	for {
		e := t.arena.at(cur)
		if e.kind != KindContainer || !e.expanded || e.children != childrenLoaded {
			return cur
		}
		cur = e.lastChild
	}
}

// visibleNext returns the entry below id in the visible order: the first
// child for an expanded container with children, the structural
// successor for everything else.
func (t *Tree) visibleNext(id EntryID) EntryID {
	e := t.arena.at(id)
	if e.kind == KindContainer && e.expanded && e.children == childrenLoaded {
		return e.childHead
	}
	return e.next
}

// visiblePrev returns the entry above id in the visible order.
func (t *Tree) visiblePrev(id EntryID) EntryID {
	return t.arena.at(id).prev
}
