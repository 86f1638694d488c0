package tree

import (
	"strings"

	"github.com/vanderheijden86/canopy/pkg/metrics"
)

// Find marks every entry whose display name contains term and forces the
// ancestor chain of each match open, so all matches end up visible. The
// whole tree is materialized first, which is deliberately expensive: the
// search must see descendants that have never been expanded. Matching is
// case-sensitive and the recorded span covers the first occurrence only.
// An empty term means zero matches: all marks are cleared and no
// expansion happens. Returned IDs are in depth-first display order,
// which is also their visible order, so hosts can cycle through them.
func (t *Tree) Find(term string) []EntryID {
	defer metrics.Timer(metrics.Search)()

	for i := range t.arena.entries {
		e := &t.arena.entries[i]
		e.matched = false
		e.match = Span{}
	}
	if term == "" {
		return nil
	}

	t.loadAll(t.root)

	var matches []EntryID
	t.findWalk(t.root, term, &matches)
	return matches
}

// loadAll force-loads every container in id's subtree, depth first.
// Loading alone is invisible: it never changes expansion state or the
// reachable part of the chain.
func (t *Tree) loadAll(id EntryID) {
	if t.arena.at(id).kind != KindContainer {
		return
	}
	t.ensureChildren(id)
	for kid := range t.Children(id) {
		t.loadAll(kid)
	}
}

// findWalk applies the match test over id's subtree in display order,
// dispatching each match event as it is produced.
func (t *Tree) findWalk(id EntryID, term string, matches *[]EntryID) {
	ev := t.findEntry(id, term)
	if ev.kind == evMatchFound {
		*matches = append(*matches, id)
		t.dispatch(ev)
	}
	for kid := range t.Children(id) {
		t.findWalk(kid, term, matches)
	}
}

// findEntry runs the substring test against one entry, recording or
// clearing its span.
func (t *Tree) findEntry(id EntryID, term string) event {
	e := t.arena.at(id)
	idx := strings.Index(e.name, term)
	if idx < 0 {
		e.matched = false
		e.match = Span{}
		return eventNone()
	}
	e.matched = true
	e.match = Span{Start: idx, End: idx + len(term)}
	return matchFound(id)
}
