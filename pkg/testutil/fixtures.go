// Package testutil provides deterministic file-tree fixtures for tests
// and benchmarks: an in-memory directory enumerator, call-counting and
// fault-injecting wrappers, a static ignore oracle, on-disk tree
// builders, and a seeded random tree generator.
package testutil

import (
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/vanderheijden86/canopy/pkg/tree"
)

// TreeFS is an in-memory Enumerator mapping directory paths to their
// children, in the order they will be reported (unsorted on purpose, so
// tests can verify the loader's own ordering). Listing a path without an
// entry fails with fs.ErrNotExist.
type TreeFS map[string][]tree.DirEntry

// ListChildren implements tree.Enumerator.
func (m TreeFS) ListChildren(path string) ([]tree.DirEntry, error) {
	kids, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", path, fs.ErrNotExist)
	}
	return kids, nil
}

// NewFS builds a TreeFS rooted at root from slash-separated relative
// paths. Intermediate components become directories; a trailing slash
// marks the final component as an (empty) directory too.
func NewFS(root string, paths ...string) TreeFS {
	m := TreeFS{root: {}}
	for _, p := range paths {
		dir := strings.HasSuffix(p, "/")
		segs := strings.Split(strings.Trim(p, "/"), "/")
		cur := root
		for i, seg := range segs {
			full := filepath.Join(cur, seg)
			isDir := i < len(segs)-1 || dir
			if !hasChild(m[cur], seg) {
				m[cur] = append(m[cur], tree.DirEntry{Name: seg, IsDir: isDir})
			}
			if isDir {
				if _, ok := m[full]; !ok {
					m[full] = []tree.DirEntry{}
				}
			}
			cur = full
		}
	}
	return m
}

func hasChild(kids []tree.DirEntry, name string) bool {
	for _, k := range kids {
		if k.Name == name {
			return true
		}
	}
	return false
}

// ScenarioPaths is the canonical small project layout used across the
// navigation tests: a file and two directories at the root, one of them
// nested two levels deep.
func ScenarioPaths() []string {
	return []string{
		"pyproject.toml",
		"src/main.py",
		"src/my_lib/base.py",
		"tests/test_main.py",
	}
}

// ScenarioFS returns ScenarioPaths as an in-memory enumerator.
func ScenarioFS(root string) TreeFS {
	return NewFS(root, ScenarioPaths()...)
}

// CountingEnumerator wraps an Enumerator and counts ListChildren calls
// per path. Safe for concurrent use.
type CountingEnumerator struct {
	Inner tree.Enumerator

	mu    sync.Mutex
	calls map[string]int
}

// Count wraps inner with call counting.
func Count(inner tree.Enumerator) *CountingEnumerator {
	return &CountingEnumerator{Inner: inner, calls: make(map[string]int)}
}

// ListChildren implements tree.Enumerator.
func (c *CountingEnumerator) ListChildren(path string) ([]tree.DirEntry, error) {
	c.mu.Lock()
	c.calls[path]++
	c.mu.Unlock()
	return c.Inner.ListChildren(path)
}

// CallsFor returns how often path has been listed.
func (c *CountingEnumerator) CallsFor(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[path]
}

// Total returns the total number of ListChildren calls.
func (c *CountingEnumerator) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

// FaultyFS wraps an Enumerator and fails listed paths with the given
// errors, delegating everything else.
type FaultyFS struct {
	Inner  tree.Enumerator
	FailOn map[string]error
}

// ListChildren implements tree.Enumerator.
func (f FaultyFS) ListChildren(path string) ([]tree.DirEntry, error) {
	if err, ok := f.FailOn[path]; ok {
		return nil, err
	}
	return f.Inner.ListChildren(path)
}

// StaticOracle is a fixed ignore set keyed by absolute path.
type StaticOracle map[string]bool

// IsIgnored implements tree.Oracle.
func (o StaticOracle) IsIgnored(path string, _ bool) bool {
	return o[path]
}

// WriteTree materializes slash-separated relative paths under a fresh
// temp dir and returns its root. Trailing-slash entries become empty
// directories; files get one line of content naming themselves.
func WriteTree(t testing.TB, paths []string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(p, "/")))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", full, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte("// "+p+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
	return root
}

// GeneratorConfig controls the random tree generator. The zero value is
// usable; New fills in defaults.
type GeneratorConfig struct {
	Seed        int64   // default 42
	MaxDepth    int     // default 4
	MaxChildren int     // max entries per directory, default 8
	DirRatio    float64 // chance a child is a directory, default 0.3
}

// Generator produces reproducible random directory trees. Same config,
// same output.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with defaults applied.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = 4
	}
	if cfg.MaxChildren == 0 {
		cfg.MaxChildren = 8
	}
	if cfg.DirRatio == 0 {
		cfg.DirRatio = 0.3
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Paths generates approximately n file paths in a random nested layout.
// Directories appear implicitly as parents.
func (g *Generator) Paths(n int) []string {
	var out []string
	g.fill("", 0, &n, &out)
	for n > 0 {
		// Top up at the root if the random walk ran dry early.
		out = append(out, fmt.Sprintf("extra_%03d.txt", n))
		n--
	}
	return out
}

func (g *Generator) fill(prefix string, depth int, budget *int, out *[]string) {
	if *budget <= 0 || depth > g.cfg.MaxDepth {
		return
	}
	kids := 1 + g.rng.Intn(g.cfg.MaxChildren)
	for i := 0; i < kids && *budget > 0; i++ {
		if depth < g.cfg.MaxDepth && g.rng.Float64() < g.cfg.DirRatio {
			dir := join(prefix, fmt.Sprintf("dir_%d_%02d", depth, i))
			g.fill(dir, depth+1, budget, out)
		} else {
			*budget--
			*out = append(*out, join(prefix, fmt.Sprintf("file_%d_%03d.txt", depth, i)))
		}
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// FS renders generated paths as an in-memory enumerator rooted at root.
func (g *Generator) FS(root string, n int) TreeFS {
	return NewFS(root, g.Paths(n)...)
}

// Write materializes paths under dir on disk (for benchmarks and the
// testdata script; tests prefer WriteTree).
func Write(dir string, paths []string) error {
	for _, p := range paths {
		full := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(p, "/")))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(full, []byte("// "+p+"\n"), 0o644); err != nil {
			return err
		}
	}
	return nil
}
