package tree

import (
	"errors"
	"testing"
)

// countingFS wraps mapFS and tallies ListChildren calls per path.
type countingFS struct {
	inner mapFS
	calls map[string]int
}

func newCountingFS(inner mapFS) *countingFS {
	return &countingFS{inner: inner, calls: make(map[string]int)}
}

func (c *countingFS) ListChildren(path string) ([]DirEntry, error) {
	c.calls[path]++
	return c.inner.ListChildren(path)
}

func TestLoadIsMemoized(t *testing.T) {
	enum := newCountingFS(scenarioFS())
	tr := buildTree(t, enum, nil)
	src := idByName(t, tr, "src")

	tr.enterEntry(src)
	tr.exitEntry(src)
	tr.enterEntry(src)
	tr.ensureChildren(src)

	if got := enum.calls[p("src")]; got != 1 {
		t.Errorf("src enumerated %d times, want 1", got)
	}
	if got := enum.calls[testRoot]; got != 1 {
		t.Errorf("root enumerated %d times, want 1", got)
	}
}

func TestEmptyDirLoadedOnceAndDistinguished(t *testing.T) {
	enum := newCountingFS(mapFS{
		testRoot:  {{Name: "void", IsDir: true}},
		p("void"): {},
	})
	tr := buildTree(t, enum, nil)
	void := idByName(t, tr, "void")

	if got := tr.arena.at(void).children; got != childrenNotLoaded {
		t.Fatalf("children state = %v before first enter, want not-loaded", got)
	}
	tr.enterEntry(void)
	if got := tr.arena.at(void).children; got != childrenEmpty {
		t.Errorf("children state = %v after loading empty dir, want empty", got)
	}
	tr.exitEntry(void)
	tr.enterEntry(void)
	if got := enum.calls[p("void")]; got != 1 {
		t.Errorf("empty dir enumerated %d times, want 1", got)
	}
}

func TestEnumerationErrorDowngradesToEmpty(t *testing.T) {
	enum := scenarioFS()
	delete(enum, p("tests")) // listing now fails with ErrNotExist
	tr := buildTree(t, enum, nil)
	tests := idByName(t, tr, "tests")

	tr.enterEntry(tests)

	if got := tr.arena.at(tests).children; got != childrenEmpty {
		t.Errorf("children state = %v after failed load, want empty", got)
	}
	if got := tr.LoadErrors(); got != 1 {
		t.Errorf("LoadErrors = %d, want 1", got)
	}
	// The rest of the tree must keep navigating.
	src := idByName(t, tr, "src")
	tr.enterEntry(src)
	if !hasEntry(tr, "main.py") {
		t.Errorf("sibling subtree failed to load after an unrelated error")
	}
}

func TestRootLoadErrorYieldsLoneRoot(t *testing.T) {
	tr := buildTree(t, mapFS{}, nil)

	if got := tr.Len(); got != 1 {
		t.Errorf("Len = %d with unreadable root, want 1", got)
	}
	if got := tr.LoadErrors(); got != 1 {
		t.Errorf("LoadErrors = %d, want 1", got)
	}
	tr.Move(+1) // must clamp, not panic
	if tr.FocusedID() != tr.Root() {
		t.Errorf("focus moved off the root of an empty tree")
	}
}

func TestChildrenSortedByNameStable(t *testing.T) {
	enum := mapFS{
		testRoot: {
			{Name: "zeta.txt"},
			{Name: "alpha", IsDir: true},
			{Name: "midway.txt"},
			{Name: "beta.txt"},
		},
		p("alpha"): {},
	}
	tr := buildTree(t, enum, nil)

	want := []string{"alpha", "beta.txt", "midway.txt", "zeta.txt"}
	var got []string
	for kid := range tr.Children(tr.Root()) {
		got = append(got, tr.arena.at(kid).name)
	}
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("children[%d] = %q, want %q (plain name order, no directories-first)", i, got[i], want[i])
		}
	}
}

func TestOracleFiltersAtLoad(t *testing.T) {
	oracle := mapOracle{
		p("pyproject.toml"): true,
		p("src", "my_lib"):  true,
	}
	tr := buildTree(t, scenarioFS(), oracle)

	if hasEntry(tr, "pyproject.toml") {
		t.Errorf("ignored file materialized at root")
	}
	src := idByName(t, tr, "src")
	tr.enterEntry(src)
	if hasEntry(tr, "my_lib") {
		t.Errorf("ignored directory materialized under src")
	}
	if !hasEntry(tr, "main.py") {
		t.Errorf("non-ignored sibling missing")
	}
}

func TestNilOracleShowsEverything(t *testing.T) {
	tr := buildTree(t, scenarioFS(), nil)
	if !hasEntry(tr, "pyproject.toml") {
		t.Fatalf("root children missing without oracle")
	}
	if tr.IgnoreFiltering() {
		t.Errorf("IgnoreFiltering = true with nil oracle")
	}
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{Enumerator: mapFS{}}); !errors.Is(err, ErrNoRoot) {
		t.Errorf("missing root: err = %v, want ErrNoRoot", err)
	}
	if _, err := New(Config{RootPath: testRoot}); !errors.Is(err, ErrNoEnumerator) {
		t.Errorf("missing enumerator: err = %v, want ErrNoEnumerator", err)
	}
}
