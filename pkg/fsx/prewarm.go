package fsx

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/canopy/pkg/metrics"
)

// Prewarm fills the Lister's cache for every directory within depth
// levels of root, breadth first, so the first expansions in the UI hit
// warm listings. Unreadable directories are skipped silently; the only
// reported failure is context cancellation.
func Prewarm(ctx context.Context, l *Lister, root string, depth int) error {
	defer metrics.Timer(metrics.Prewarm)()

	level := []string{root}
	for d := 0; d < depth && len(level) > 0; d++ {
		g, gctx := errgroup.WithContext(ctx)
		// Limit concurrency to avoid file descriptor exhaustion
		g.SetLimit(16)

		var mu sync.Mutex
		var next []string
		for _, dir := range level {
			dir := dir // capture loop variable

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				kids, err := l.ListChildren(dir)
				if err != nil {
					return nil // unreadable subtree; the tree degrades it on demand
				}
				mu.Lock()
				for _, kid := range kids {
					if kid.IsDir {
						next = append(next, filepath.Join(dir, kid.Name))
					}
				}
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		level = next
	}
	return nil
}
