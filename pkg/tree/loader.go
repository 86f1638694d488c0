package tree

import (
	"path/filepath"
	"sort"

	"github.com/vanderheijden86/canopy/pkg/debug"
	"github.com/vanderheijden86/canopy/pkg/metrics"
)

// ensureChildren materializes c's children on first use: enumerate,
// filter, sort, allocate, link. Memoized by the three-state children
// field, so repeated expand/collapse of the same container costs exactly
// one enumeration. An enumeration failure downgrades the container to an
// empty directory; one unreadable subtree must not take navigation of
// the rest of the tree down with it.
func (t *Tree) ensureChildren(c EntryID) {
	if e := t.arena.at(c); e.kind != KindContainer || e.children != childrenNotLoaded {
		return
	}
	defer metrics.Timer(metrics.TreeLoad)()

	parentPath := t.arena.at(c).path
	listing, err := t.enum.ListChildren(parentPath)
	if err != nil {
		debug.Log("load %s: %v", parentPath, err)
		t.loadErrs++
		t.arena.at(c).children = childrenEmpty
		return
	}

	kept := make([]DirEntry, 0, len(listing))
	for _, de := range listing {
		if t.oracle != nil && t.oracle.IsIgnored(filepath.Join(parentPath, de.Name), de.IsDir) {
			continue
		}
		kept = append(kept, de)
	}
	// Plain name order. Children are never re-sorted afterwards.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Name < kept[j].Name })

	if len(kept) == 0 {
		t.arena.at(c).children = childrenEmpty
		return
	}

	// Allocation grows the arena, so the parent slot is re-fetched
	// afterwards rather than held across the loop.
	depth := t.arena.at(c).depth + 1
	kids := make([]EntryID, 0, len(kept))
	for _, de := range kept {
		kind := KindLeaf
		if de.IsDir {
			kind = KindContainer
		}
		kids = append(kids, t.arena.alloc(entry{
			kind:      kind,
			name:      de.Name,
			path:      filepath.Join(parentPath, de.Name),
			depth:     depth,
			parent:    c,
			next:      None,
			prev:      None,
			childHead: None,
			lastChild: None,
		}))
	}
	t.arena.at(c).children = childrenLoaded
	t.relinkOnLoad(c, kids)
}
