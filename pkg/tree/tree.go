package tree

import (
	"errors"
	"iter"
	"path/filepath"
	"strings"
)

// DirEntry is one child reported by an Enumerator.
type DirEntry struct {
	Name  string
	IsDir bool
}

// Enumerator lists the immediate children of a directory. The tree calls
// it at most once per container; implementations are free to cache or
// pre-warm on top of that.
type Enumerator interface {
	ListChildren(path string) ([]DirEntry, error)
}

// Oracle decides whether a path is hidden from the tree. A nil Oracle
// disables filtering entirely.
type Oracle interface {
	IsIgnored(path string, isDir bool) bool
}

// Config carries the construction parameters for New.
type Config struct {
	// RootPath is the directory the tree browses. It is used as given;
	// callers that want absolute paths resolve before handing it over.
	RootPath string
	// Enumerator supplies directory listings. Required.
	Enumerator Enumerator
	// Oracle filters ignored paths during child loading. Optional.
	Oracle Oracle
}

var (
	ErrNoRoot       = errors.New("root path required")
	ErrNoEnumerator = errors.New("enumerator required")
)

// Tree owns the entry arena, the current focus and the collaborators.
// One Tree is driven by one caller at a time; every operation runs to
// completion inline and there is no internal locking.
type Tree struct {
	arena  arena
	root   EntryID
	focus  EntryID
	enum   Enumerator
	oracle Oracle

	loadErrs int
}

// New builds a tree rooted at cfg.RootPath. The root container is
// enumerated and expanded immediately and starts focused; everything
// below it materializes on demand.
func New(cfg Config) (*Tree, error) {
	if cfg.RootPath == "" {
		return nil, ErrNoRoot
	}
	if cfg.Enumerator == nil {
		return nil, ErrNoEnumerator
	}

	t := &Tree{enum: cfg.Enumerator, oracle: cfg.Oracle}
	path := filepath.Clean(cfg.RootPath)
	t.root = t.arena.alloc(entry{
		kind:      KindContainer,
		name:      filepath.Base(path),
		path:      path,
		parent:    None,
		next:      None,
		prev:      None,
		childHead: None,
		lastChild: None,
	})
	t.enterEntry(t.root)
	t.focus = t.root
	t.arena.at(t.root).focused = true
	return t, nil
}

// Root returns the root entry's ID.
func (t *Tree) Root() EntryID { return t.root }

// Len reports how many entries have been materialized so far.
func (t *Tree) Len() int { return t.arena.len() }

// LoadErrors reports how many child enumerations failed and were
// downgraded to empty directories.
func (t *Tree) LoadErrors() int { return t.loadErrs }

// IgnoreFiltering reports whether an ignore oracle is filtering loads.
func (t *Tree) IgnoreFiltering() bool { return t.oracle != nil }

// EntryView is a read-only snapshot of one entry.
type EntryView struct {
	ID       EntryID
	Kind     Kind
	Name     string
	Path     string
	Depth    int
	Expanded bool
	Focused  bool
	Matched  bool
	Match    Span
}

// At snapshots the entry with the given ID.
func (t *Tree) At(id EntryID) EntryView {
	e := t.arena.at(id)
	return EntryView{
		ID:       id,
		Kind:     e.kind,
		Name:     e.name,
		Path:     e.path,
		Depth:    e.depth,
		Expanded: e.expanded,
		Focused:  e.focused,
		Matched:  e.matched,
		Match:    e.match,
	}
}

// Children yields a container's direct children in display order. It
// yields nothing for leaves and for unloaded or empty containers.
func (t *Tree) Children(id EntryID) iter.Seq[EntryID] {
	return func(yield func(EntryID) bool) {
		e := t.arena.at(id)
		if e.kind != KindContainer || e.children != childrenLoaded {
			return
		}
		last := e.lastChild
		for kid := e.childHead; kid != None; kid = t.arena.at(kid).next {
			if !yield(kid) || kid == last {
				return
			}
		}
	}
}

// ExpandedPaths returns the paths of every expanded container, including
// ones currently hidden under a collapsed ancestor. Hosts use this to
// carry expansion state across a rebuild; the tree itself never
// persists or reloads anything.
func (t *Tree) ExpandedPaths() []string {
	var paths []string
	for i := range t.arena.entries {
		e := &t.arena.entries[i]
		if e.kind == KindContainer && e.expanded {
			paths = append(paths, e.path)
		}
	}
	return paths
}

// ExpandPath expands the container at path, materializing and expanding
// ancestors on the way down. It reports whether path exists in the tree.
func (t *Tree) ExpandPath(path string) bool {
	id := t.descend(path)
	if id == None {
		return false
	}
	t.enterEntry(id)
	return true
}

// FocusPath moves focus to the entry at path, expanding ancestors so it
// is visible. It reports whether path exists in the tree.
func (t *Tree) FocusPath(path string) bool {
	id := t.descend(path)
	if id == None {
		return false
	}
	t.setFocus(id)
	return true
}

// descend walks from the root toward path, expanding containers as it
// goes, and returns the entry at path. None when path lies outside the
// root or a component is missing (filtered out, or gone from disk).
func (t *Tree) descend(path string) EntryID {
	path = filepath.Clean(path)
	cur := t.root
	for {
		e := t.arena.at(cur)
		if e.path == path {
			return cur
		}
		if e.kind != KindContainer {
			return None
		}
		rel, err := filepath.Rel(e.path, path)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return None
		}
		name, _, _ := strings.Cut(rel, string(filepath.Separator))

		t.enterEntry(cur)
		next := None
		for kid := range t.Children(cur) {
			if t.arena.at(kid).name == name {
				next = kid
				break
			}
		}
		if next == None {
			return None
		}
		cur = next
	}
}
