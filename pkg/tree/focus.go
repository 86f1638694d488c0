package tree

// Command is one navigation request from the host layer.
type Command uint8

const (
	CmdUp Command = iota
	CmdDown
	CmdEnter
	CmdExit
)

// Navigate applies one navigation command to the focused entry.
func (t *Tree) Navigate(cmd Command) {
	switch cmd {
	case CmdUp:
		t.Move(-1)
	case CmdDown:
		t.Move(+1)
	case CmdEnter:
		t.Enter()
	case CmdExit:
		t.Exit()
	}
}

// Move shifts focus delta steps through the visible order. Running past
// either end clamps: focus stays where it is, no error.
func (t *Tree) Move(delta int) {
	step := delta
	down := true
	if step < 0 {
		step, down = -step, false
	}
	for ; step > 0; step-- {
		var next EntryID
		if down {
			next = t.visibleNext(t.focus)
		} else {
			next = t.visiblePrev(t.focus)
		}
		if next == None {
			return
		}
		t.setFocus(next)
	}
}

// Enter expands the focused container, loading its children on first
// use. On a leaf it does nothing.
func (t *Tree) Enter() {
	t.dispatch(t.enterEntry(t.focus))
}

// Exit collapses the focused container when it is expanded; on a leaf or
// an already collapsed container it bubbles focus to the parent instead.
// Exiting the root a second time is a no-op.
func (t *Tree) Exit() {
	t.dispatch(t.exitEntry(t.focus))
}

// Focus moves focus directly to id, forcing its ancestors open so the
// entry lands in the visible order. Hosts use it to jump between search
// matches. Reports whether id names a materialized entry.
func (t *Tree) Focus(id EntryID) bool {
	if id < 0 || int(id) >= t.arena.len() {
		return false
	}
	t.expandAncestors(id)
	t.setFocus(id)
	return true
}

// FocusedID returns the currently focused entry's ID.
func (t *Tree) FocusedID() EntryID { return t.focus }

// Focused snapshots the currently focused entry.
func (t *Tree) Focused() EntryView { return t.At(t.focus) }

// VisibleIndexOf returns id's zero-based position in the visible order,
// or -1 when id is not currently visible. Hosts use it to keep the
// focused line inside a scrolling viewport.
func (t *Tree) VisibleIndexOf(id EntryID) int {
	i := 0
	for cur := t.root; cur != None; cur = t.visibleNext(cur) {
		if cur == id {
			return i
		}
		i++
	}
	return -1
}

// enterEntry is the per-entry half of Enter: leaves are a no-op,
// containers load children if absent, mark themselves expanded and
// re-splice the chain. Always idempotent.
func (t *Tree) enterEntry(id EntryID) event {
	if t.arena.at(id).kind == KindContainer {
		t.ensureChildren(id)
		t.arena.at(id).expanded = true
		t.relinkOnExpand(id)
	}
	return eventNone()
}

// exitEntry is the per-entry half of Exit: an expanded container
// collapses in place; anything else asks for focus to move to its
// parent (None for the root, which the dispatcher drops).
func (t *Tree) exitEntry(id EntryID) event {
	e := t.arena.at(id)
	if e.kind == KindContainer && e.expanded {
		e.expanded = false
		t.relinkOnCollapse(id)
		return eventNone()
	}
	return focusChanged(e.parent)
}

// setFocus moves the focus flag. A None id keeps the current focus, per
// the boundary-clamp rule.
func (t *Tree) setFocus(id EntryID) {
	if id == None || id == t.focus {
		return
	}
	t.arena.at(t.focus).focused = false
	t.arena.at(id).focused = true
	t.focus = id
}
