package tree

// Entries never call back into their ancestors. enter, exit and the
// per-entry search test return plain event values instead, and the
// tree-owned dispatcher below is the single place that interprets them.

type eventKind uint8

const (
	evNone eventKind = iota
	evFocusChanged
	evMatchFound
)

type event struct {
	kind   eventKind
	target EntryID
}

func eventNone() event              { return event{kind: evNone, target: None} }
func focusChanged(id EntryID) event { return event{kind: evFocusChanged, target: id} }
func matchFound(id EntryID) event   { return event{kind: evMatchFound, target: id} }

// dispatch applies one event: a bubbled focus change moves the focus
// flag, a match forces the matched entry's ancestor chain open. A None
// target is a no-op, so exiting the root quietly does nothing.
func (t *Tree) dispatch(ev event) {
	switch ev.kind {
	case evFocusChanged:
		t.setFocus(ev.target)
	case evMatchFound:
		t.expandAncestors(ev.target)
	}
}

// expandAncestors forces every ancestor container of id open so that id
// is reachable in the visible order. id itself is left as it is: a
// matched directory is revealed, not opened.
func (t *Tree) expandAncestors(id EntryID) {
	for p := t.arena.at(id).parent; p != None; p = t.arena.at(p).parent {
		t.enterEntry(p)
	}
}
