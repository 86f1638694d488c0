package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/canopy/pkg/config"
	"github.com/vanderheijden86/canopy/pkg/fsx"
	"github.com/vanderheijden86/canopy/pkg/tree"
)

// Options carries the collaborators the browser is built around. Tree,
// Lister and RootPath are required; a nil Oracle means no ignore
// filtering.
type Options struct {
	Tree     *tree.Tree
	Lister   *fsx.Lister
	Oracle   tree.Oracle
	Config   config.Config
	RootPath string
}

// Model is the Bubble Tea model for the interactive browser. It owns
// one tree, routes keys into it and windows the visible order through a
// viewport. Rebuilds (refresh) happen here, never inside the core.
type Model struct {
	tree   *tree.Tree
	lister *fsx.Lister
	oracle tree.Oracle
	cfg    config.Config
	theme  Theme

	rootPath string
	home     string

	width  int
	height int

	viewport    viewport.Model
	searchInput textinput.Model

	// cursor is the focused entry's index in the visible order; total is
	// the visible order's length. Both are recomputed by syncViewport.
	cursor int
	total  int

	searchMode bool
	lastQuery  string
	matches    []tree.EntryID
	matchIndex int

	showHelp bool

	statusMsg     string
	statusIsError bool

	// SelectedPath is set when enter picks a file. The host prints it to
	// stdout after the program tears down.
	SelectedPath string
}

// NewModel creates the browser model. The model starts ready with
// default dimensions; the first WindowSizeMsg resizes it.
func NewModel(opts Options) Model {
	r := lipgloss.NewRenderer(os.Stdout)
	switch opts.Config.Theme {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}

	ti := textinput.New()
	ti.Placeholder = "name substring"
	ti.Prompt = "/"
	ti.CharLimit = 128

	home, _ := os.UserHomeDir()

	m := Model{
		tree:        opts.Tree,
		lister:      opts.Lister,
		oracle:      opts.Oracle,
		cfg:         opts.Config,
		theme:       DefaultTheme(r),
		rootPath:    opts.RootPath,
		home:        home,
		width:       120,
		height:      40,
		searchInput: ti,
	}
	m.viewport = viewport.New(m.width, m.bodyHeight())
	m.syncViewport()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = m.bodyHeight()
		if w := msg.Width - 4; w > 0 {
			m.searchInput.Width = w
		}
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		// Clear status message on any keypress
		m.statusMsg = ""
		m.statusIsError = false

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showHelp {
			// Any key closes the overlay.
			m.showHelp = false
			return m, nil
		}

		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleTreeKeys(msg)
	}

	// Non-key messages (cursor blink) belong to the search input.
	if m.searchMode {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// bodyHeight is the viewport height: everything minus the header, the
// position line and the footer.
func (m Model) bodyHeight() int {
	h := m.height - 3
	if h < 3 {
		h = 3
	}
	return h
}

// pageSize is one viewport worth of lines, used by ctrl+u/ctrl+d.
func (m Model) pageSize() int {
	p := m.viewport.Height
	if p < 1 {
		p = 1
	}
	return p
}

// =============================================================================
// ACCESSORS
// =============================================================================

// FocusedPath returns the focused entry's absolute path.
func (m Model) FocusedPath() string { return m.tree.Focused().Path }

// FocusedName returns the focused entry's display name.
func (m Model) FocusedName() string { return m.tree.Focused().Name }

// VisibleCount returns how many entries the visible order holds.
func (m Model) VisibleCount() int { return m.total }

// SearchActive reports whether the search input is capturing keys.
func (m Model) SearchActive() bool { return m.searchMode }

// MatchCount returns the size of the last search's match set.
func (m Model) MatchCount() int { return len(m.matches) }

// StatusMessage returns the current footer status text.
func (m Model) StatusMessage() string { return m.statusMsg }

// HelpVisible reports whether the help overlay is up.
func (m Model) HelpVisible() bool { return m.showHelp }
