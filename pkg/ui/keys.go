package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/canopy/pkg/debug"
	"github.com/vanderheijden86/canopy/pkg/tree"
)

func (m Model) handleTreeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true

	case "j", "down":
		m.tree.Navigate(tree.CmdDown)
		m.syncViewport()

	case "k", "up":
		m.tree.Navigate(tree.CmdUp)
		m.syncViewport()

	case "l", "right":
		m.tree.Navigate(tree.CmdEnter)
		m.syncViewport()

	case "h", "left":
		m.tree.Navigate(tree.CmdExit)
		m.syncViewport()

	case "enter":
		ent := m.tree.Focused()
		if ent.Kind == tree.KindLeaf {
			// Picking a file ends the session; the host prints the path
			// after teardown.
			m.SelectedPath = ent.Path
			return m, tea.Quit
		}
		m.tree.Enter()
		m.syncViewport()

	case "g", "home":
		m.tree.Move(-m.tree.Len())
		m.syncViewport()

	case "G", "end":
		m.tree.Move(m.tree.Len())
		m.syncViewport()

	case "ctrl+d", "pgdown":
		m.tree.Move(m.pageSize())
		m.syncViewport()

	case "ctrl+u", "pgup":
		m.tree.Move(-m.pageSize())
		m.syncViewport()

	case "/":
		m.searchMode = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case "n":
		m.cycleMatch(+1)

	case "p", "N":
		m.cycleMatch(-1)

	case "esc":
		m.clearSearch()

	case "y":
		m.yankFocused()

	case "r":
		m.refreshTree()
	}
	return m, nil
}

// handleSearchKeys drives the search overlay: enter submits, esc
// cancels, everything else edits the input.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.clearSearch()
		return m, nil
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		m.runSearch(m.searchInput.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// runSearch executes one search over the whole tree and moves focus to
// the first match. An empty term clears all highlights.
func (m *Model) runSearch(term string) {
	m.lastQuery = term
	m.matches = m.tree.Find(term)
	m.matchIndex = 0
	debug.Log("search %q: %d matches", term, len(m.matches))

	switch {
	case term == "":
	case len(m.matches) == 0:
		m.statusMsg = fmt.Sprintf("no matches for %q", term)
	default:
		m.tree.Focus(m.matches[0])
		m.statusMsg = fmt.Sprintf("match 1/%d", len(m.matches))
	}
	m.syncViewport()
}

// cycleMatch moves focus to the next or previous match, wrapping at
// either end. With no match set it only reports.
func (m *Model) cycleMatch(dir int) {
	if len(m.matches) == 0 {
		if m.lastQuery != "" {
			m.statusMsg = fmt.Sprintf("no matches for %q", m.lastQuery)
		}
		return
	}
	m.matchIndex = (m.matchIndex + dir + len(m.matches)) % len(m.matches)
	m.tree.Focus(m.matches[m.matchIndex])
	m.statusMsg = fmt.Sprintf("match %d/%d", m.matchIndex+1, len(m.matches))
	m.syncViewport()
}

// clearSearch drops the match set and un-marks every entry.
func (m *Model) clearSearch() {
	m.lastQuery = ""
	m.matches = nil
	m.matchIndex = 0
	m.tree.Find("")
	m.syncViewport()
}

// yankFocused copies the focused entry's absolute path to the system
// clipboard.
func (m *Model) yankFocused() {
	path := m.tree.Focused().Path
	if err := clipboard.WriteAll(path); err != nil {
		m.statusMsg = "clipboard unavailable: " + err.Error()
		m.statusIsError = true
		return
	}
	m.statusMsg = "copied " + shortenPath(path, m.home)
}

// refreshTree rebuilds the tree against a cold cache, re-expands the
// paths that still exist and restores focus by path. A vanished focus
// path quietly falls back to the root.
func (m *Model) refreshTree() {
	m.lister.Invalidate()
	expanded := m.tree.ExpandedPaths()
	focusPath := m.tree.Focused().Path

	fresh, err := tree.New(tree.Config{
		RootPath:   m.rootPath,
		Enumerator: m.lister,
		Oracle:     m.oracle,
	})
	if err != nil {
		m.statusMsg = "refresh failed: " + err.Error()
		m.statusIsError = true
		return
	}
	for _, path := range expanded {
		fresh.ExpandPath(path)
	}
	fresh.FocusPath(focusPath)
	m.tree = fresh
	debug.Log("refreshed %s: %d entries materialized", m.rootPath, fresh.Len())

	// Re-run the last search so highlights survive the rebuild.
	if m.lastQuery != "" {
		m.matches = m.tree.Find(m.lastQuery)
		m.matchIndex = 0
	} else {
		m.matches = nil
		m.matchIndex = 0
	}
	m.statusMsg = "refreshed"
	m.syncViewport()
}
