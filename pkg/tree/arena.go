// Package tree implements the navigable file-tree core: a lazily
// populated hierarchy whose entries are threaded with secondary
// visible-order pointers, so moving focus up or down is a pointer follow
// instead of a re-flatten of the whole visible tree. Child loading is
// lazy and filtered, substring search forces the ancestor chain of every
// match open, and the visible order is rendered on demand as styled
// fragments.
//
// Entries live in an arena owned by the Tree and reference each other by
// EntryID, never by pointer. The visible-order threading is maintained
// incrementally by the relink transitions in chain.go.
package tree

// EntryID addresses an entry in a Tree's arena. IDs are stable for the
// lifetime of the tree; None marks an absent link.
type EntryID int32

// None is the null EntryID.
const None EntryID = -1

// Kind discriminates the two entry variants.
type Kind uint8

const (
	// KindLeaf is a regular file. It has no children; entering it does
	// nothing and exiting it moves focus to its parent.
	KindLeaf Kind = iota
	// KindContainer is a directory with lazily loaded children and
	// expand/collapse state.
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "file"
	case KindContainer:
		return "directory"
	default:
		return "unknown"
	}
}

// childState tracks lazy-load progress for a container. A directory that
// turned out empty (or unreadable) is distinguishable from one that was
// never enumerated, which is what makes the load memoizable.
type childState uint8

const (
	childrenNotLoaded childState = iota
	childrenEmpty
	childrenLoaded
)

// Span is a half-open [Start, End) byte range into an entry's display
// name, marking the highlighted part of a search match.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// entry is a single arena slot. All links are EntryIDs so the arena can
// grow without invalidating anything.
type entry struct {
	kind  Kind
	name  string
	path  string
	depth int

	parent EntryID

	// Sibling-chain threading. next and prev give the neighbor in the
	// currently visible flattened order; childHead and lastChild frame a
	// loaded container's children. next is structural, written once at
	// load time (a container's last child points past the subtree, at
	// the container's own successor). prev of the entry after a subtree
	// is the volatile half, patched by the expand/collapse transitions.
	next      EntryID
	prev      EntryID
	childHead EntryID
	lastChild EntryID

	expanded bool
	children childState

	focused bool
	matched bool
	match   Span
}

// arena is the growable entry store.
type arena struct {
	entries []entry
}

func (a *arena) alloc(e entry) EntryID {
	a.entries = append(a.entries, e)
	return EntryID(len(a.entries) - 1)
}

// at returns the slot for id. The pointer is invalidated by the next
// alloc; callers must not hold it across child loading.
func (a *arena) at(id EntryID) *entry {
	return &a.entries[id]
}

func (a *arena) len() int { return len(a.entries) }
