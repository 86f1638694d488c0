package tree

import (
	"iter"
	"strings"
)

// Style tags a fragment. Focus and match compose as bits, so a matched
// segment of the focused line carries both. Zero is the default style.
type Style uint8

const (
	StyleDefault Style = 0
	StyleFocus   Style = 1 << 0
	StyleMatch   Style = 1 << 1
)

// Fragment is one styled run of text within a rendered line.
type Fragment struct {
	Style Style
	Text  string
}

// Line is one visible entry, rendered.
type Line struct {
	ID        EntryID
	Focused   bool
	Fragments []Fragment
}

const indentStep = "  "

const (
	iconLeaf      = "• "
	iconCollapsed = "▸ "
	iconExpanded  = "▾ "
)

// fragmentsFor renders one entry: indentation proportional to depth, a
// state icon, then the name split around the match span into up to
// three runs (before, highlighted, after).
func (t *Tree) fragmentsFor(id EntryID) []Fragment {
	e := t.arena.at(id)
	base := StyleDefault
	if e.focused {
		base |= StyleFocus
	}

	icon := iconLeaf
	if e.kind == KindContainer {
		if e.expanded {
			icon = iconExpanded
		} else {
			icon = iconCollapsed
		}
	}

	frags := make([]Fragment, 0, 5)
	if e.depth > 0 {
		frags = append(frags, Fragment{Style: base, Text: strings.Repeat(indentStep, e.depth)})
	}
	frags = append(frags, Fragment{Style: base, Text: icon})

	if !e.matched {
		return append(frags, Fragment{Style: base, Text: e.name})
	}
	if pre := e.name[:e.match.Start]; pre != "" {
		frags = append(frags, Fragment{Style: base, Text: pre})
	}
	frags = append(frags, Fragment{Style: base | StyleMatch, Text: e.name[e.match.Start:e.match.End]})
	if post := e.name[e.match.End:]; post != "" {
		frags = append(frags, Fragment{Style: base, Text: post})
	}
	return frags
}

// Fragments renders a single entry on demand.
func (t *Tree) Fragments(id EntryID) []Fragment { return t.fragmentsFor(id) }

// VisibleFragments walks the visible order from the root and yields one
// rendered Line per entry, top to bottom. The sequence is regenerated
// fresh on every call and is restartable; it is always finite because
// the splice invariant ends the chain at the root's last visible
// descendant.
func (t *Tree) VisibleFragments() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for id := t.root; id != None; id = t.visibleNext(id) {
			line := Line{ID: id, Focused: t.arena.at(id).focused, Fragments: t.fragmentsFor(id)}
			if !yield(line) {
				return
			}
		}
	}
}
