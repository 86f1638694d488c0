// Package fsx adapts the local filesystem to the tree's enumerator
// contract: os.ReadDir listings with optional hidden-entry filtering, a
// serialized per-path cache, and a concurrent cache pre-warmer.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vanderheijden86/canopy/pkg/tree"
)

// Lister enumerates directories on disk. Results are cached per path so
// a pre-warmed listing is never read twice; Invalidate drops the cache
// when the host wants fresh data after a refresh.
type Lister struct {
	// ShowHidden includes dotfiles (and, on Windows, attribute-hidden
	// entries) in listings.
	ShowHidden bool

	mu    sync.Mutex
	cache map[string][]tree.DirEntry
}

// NewLister returns a Lister that filters hidden entries unless
// showHidden is set.
func NewLister(showHidden bool) *Lister {
	return &Lister{ShowHidden: showHidden, cache: make(map[string][]tree.DirEntry)}
}

// ListChildren implements tree.Enumerator.
func (l *Lister) ListChildren(path string) ([]tree.DirEntry, error) {
	l.mu.Lock()
	if l.cache == nil {
		l.cache = make(map[string][]tree.DirEntry)
	}
	if kids, ok := l.cache[path]; ok {
		l.mu.Unlock()
		return kids, nil
	}
	l.mu.Unlock()

	kids, err := l.list(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[path] = kids
	l.mu.Unlock()
	return kids, nil
}

func (l *Lister) list(path string) ([]tree.DirEntry, error) {
	ents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	kids := make([]tree.DirEntry, 0, len(ents))
	for _, de := range ents {
		if !l.ShowHidden && isHidden(filepath.Join(path, de.Name()), de.Name()) {
			continue
		}
		kids = append(kids, tree.DirEntry{Name: de.Name(), IsDir: entryIsDir(path, de)})
	}
	return kids, nil
}

// entryIsDir resolves symlinked directories so they browse like
// directories; broken links degrade to leaves.
func entryIsDir(parent string, de fs.DirEntry) bool {
	if de.IsDir() {
		return true
	}
	if de.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, de.Name()))
	return err == nil && info.IsDir()
}

// Invalidate drops every cached listing.
func (l *Lister) Invalidate() {
	l.mu.Lock()
	l.cache = make(map[string][]tree.DirEntry)
	l.mu.Unlock()
}
