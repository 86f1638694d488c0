package tree

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"
)

// In-package test fixtures. The black-box tests use pkg/testutil instead;
// these stay local because testutil imports this package.

const testRoot = "/project"

// p joins path parts under the test root with OS separators.
func p(parts ...string) string {
	return filepath.Join(append([]string{testRoot}, parts...)...)
}

// mapFS is a minimal in-memory Enumerator. Missing keys fail with
// fs.ErrNotExist, which doubles as the unreadable-directory case.
type mapFS map[string][]DirEntry

func (m mapFS) ListChildren(path string) ([]DirEntry, error) {
	kids, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", path, fs.ErrNotExist)
	}
	return kids, nil
}

// mapOracle ignores exactly the listed paths.
type mapOracle map[string]bool

func (o mapOracle) IsIgnored(path string, _ bool) bool { return o[path] }

// scenarioFS is the canonical layout: a file and two directories at the
// root, one nested two levels deep.
//
//	/project
//	├── pyproject.toml
//	├── src
//	│   ├── main.py
//	│   └── my_lib
//	│       └── base.py
//	└── tests
//	    └── test_main.py
func scenarioFS() mapFS {
	return mapFS{
		testRoot:           {{Name: "pyproject.toml"}, {Name: "src", IsDir: true}, {Name: "tests", IsDir: true}},
		p("src"):           {{Name: "main.py"}, {Name: "my_lib", IsDir: true}},
		p("src", "my_lib"): {{Name: "base.py"}},
		p("tests"):         {{Name: "test_main.py"}},
	}
}

func buildTree(t *testing.T, enum Enumerator, oracle Oracle) *Tree {
	t.Helper()
	tr, err := New(Config{RootPath: testRoot, Enumerator: enum, Oracle: oracle})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr
}

// idByName finds a materialized entry by display name. Names in the
// fixtures are unique on purpose.
func idByName(t *testing.T, tr *Tree, name string) EntryID {
	t.Helper()
	for i := range tr.arena.entries {
		if tr.arena.entries[i].name == name {
			return EntryID(i)
		}
	}
	t.Fatalf("no entry named %q materialized", name)
	return None
}

func hasEntry(tr *Tree, name string) bool {
	for i := range tr.arena.entries {
		if tr.arena.entries[i].name == name {
			return true
		}
	}
	return false
}
