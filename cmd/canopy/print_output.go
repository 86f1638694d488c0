package main

import (
	"io"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/canopy/pkg/tree"
)

type printEntry struct {
	Path      string     `json:"path"`
	Name      string     `json:"name"`
	Depth     int        `json:"depth"`
	Kind      string     `json:"kind"`
	Expanded  bool       `json:"expanded"`
	Matched   bool       `json:"matched"`
	MatchSpan *tree.Span `json:"match_span,omitempty"`
}

type printOutput struct {
	Root            string       `json:"root"`
	GeneratedAt     string       `json:"generated_at"`
	IgnoreFiltering bool         `json:"ignore_filtering"`
	Query           string       `json:"query,omitempty"`
	Matches         int          `json:"matches,omitempty"`
	Entries         []printEntry `json:"entries"`
}

// buildPrintOutput pre-expands containers down to depth, optionally runs
// one search, and flattens the visible order into the wire shape.
func buildPrintOutput(t *tree.Tree, root string, depth int, term string) printOutput {
	expandToDepth(t, t.Root(), depth)

	out := printOutput{
		Root:            root,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		IgnoreFiltering: t.IgnoreFiltering(),
		Query:           term,
	}
	if term != "" {
		out.Matches = len(t.Find(term))
	}

	for line := range t.VisibleFragments() {
		ent := t.At(line.ID)
		pe := printEntry{
			Path:     ent.Path,
			Name:     ent.Name,
			Depth:    ent.Depth,
			Kind:     ent.Kind.String(),
			Expanded: ent.Expanded,
			Matched:  ent.Matched,
		}
		if ent.Matched {
			span := ent.Match
			pe.MatchSpan = &span
		}
		out.Entries = append(out.Entries, pe)
	}
	return out
}

// expandToDepth opens every container lying strictly above depth n, so
// n=1 shows the root's children and n=2 one level below that.
func expandToDepth(t *tree.Tree, id tree.EntryID, n int) {
	ent := t.At(id)
	if ent.Kind != tree.KindContainer || ent.Depth >= n {
		return
	}
	t.ExpandPath(ent.Path)
	for kid := range t.Children(id) {
		expandToDepth(t, kid, n)
	}
}

func writePrintOutput(w io.Writer, out printOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
