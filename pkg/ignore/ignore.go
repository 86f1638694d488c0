// Package ignore supplies the gitignore oracle that filters directory
// loads. Patterns come from the enclosing git worktree's .gitignore
// files; without a worktree the oracle is simply absent and nothing is
// filtered.
package ignore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/vanderheijden86/canopy/pkg/debug"
)

// ErrNoRepository reports that no enclosing git worktree was found.
var ErrNoRepository = errors.New("no git repository found")

// Matcher decides whether paths are gitignored within one worktree.
type Matcher struct {
	repoRoot string
	matcher  gitignore.Matcher
}

// Detect walks up from start to the nearest directory containing .git
// and loads that worktree's ignore patterns. ErrNoRepository when no
// repository encloses start.
func Detect(start string) (*Matcher, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", start, err)
	}
	root, err := findRepoRoot(abs)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// Load reads the .gitignore patterns of the worktree rooted at
// repoRoot, including nested .gitignore files.
func Load(repoRoot string) (*Matcher, error) {
	patterns, err := gitignore.ReadPatterns(osfs.New(repoRoot), nil)
	if err != nil {
		return nil, fmt.Errorf("read gitignore patterns: %w", err)
	}
	debug.Log("ignore: worktree %s, %d patterns", repoRoot, len(patterns))
	return &Matcher{repoRoot: repoRoot, matcher: gitignore.NewMatcher(patterns)}, nil
}

// RepoRoot returns the worktree root the patterns were loaded from.
func (m *Matcher) RepoRoot() string { return m.repoRoot }

// IsIgnored implements tree.Oracle. Paths outside the worktree are
// never ignored; the .git directory itself always is.
func (m *Matcher) IsIgnored(path string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(m.repoRoot, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, part := range parts {
		if part == ".git" {
			return true
		}
	}
	return m.matcher.Match(parts, isDir)
}

func findRepoRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoRepository
		}
		dir = parent
	}
}
