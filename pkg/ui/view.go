package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/canopy/pkg/metrics"
	"github.com/vanderheijden86/canopy/pkg/tree"
)

func (m Model) View() string {
	defer metrics.Timer(metrics.Render)()

	if m.showHelp {
		return m.renderHelp()
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.renderPositionLine())
	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

// syncViewport re-renders the visible order into the viewport and
// scrolls so the focused line stays on screen. Called after every
// operation that can change focus or the visible set.
func (m *Model) syncViewport() {
	var sb strings.Builder
	total := 0
	cursor := 0
	for line := range m.tree.VisibleFragments() {
		if line.Focused {
			cursor = total
		}
		sb.WriteString(m.renderLine(line))
		sb.WriteByte('\n')
		total++
	}
	m.total = total
	m.cursor = cursor
	m.viewport.SetContent(strings.TrimSuffix(sb.String(), "\n"))
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls the viewport the minimal distance that
// brings the focused line back inside the window.
func (m *Model) ensureCursorVisible() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// renderLine styles one visible entry: kind color for the name, the
// highlight style over match spans, selection background over every
// fragment of the focused line. Output is clipped to the window width.
func (m Model) renderLine(line tree.Line) string {
	kind := m.tree.At(line.ID).Kind
	var sb strings.Builder
	remaining := m.width
	for _, frag := range line.Fragments {
		text := frag.Text
		if w := runewidth.StringWidth(text); w > remaining {
			text = truncateRunesHelper(text, remaining, "…")
		}
		sb.WriteString(m.fragmentStyle(frag.Style, kind).Render(text))
		remaining -= runewidth.StringWidth(text)
		if remaining <= 0 {
			break
		}
	}
	return sb.String()
}

func (m Model) fragmentStyle(st tree.Style, kind tree.Kind) lipgloss.Style {
	style := m.theme.FileText
	if kind == tree.KindContainer {
		style = m.theme.DirText
	}
	if st&tree.StyleMatch != 0 {
		style = m.theme.MatchText
	}
	if st&tree.StyleFocus != 0 {
		style = style.Background(m.theme.Highlight).Bold(true)
	}
	return style
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Render("canopy")

	pathWidth := m.width - lipgloss.Width(title) - 16
	if pathWidth < 8 {
		pathWidth = 8
	}
	path := m.theme.SecondaryText.Render(" " + truncate(shortenPath(m.rootPath, m.home), pathWidth))

	badge := ""
	if !m.tree.IgnoreFiltering() {
		badge = m.theme.MutedText.Render(" [no-ignore]")
	}
	pos := m.theme.MutedText.Render(fmt.Sprintf(" %d/%d", m.cursor+1, m.total))
	return title + path + badge + pos
}

// renderPositionLine is the scroll indicator row. It goes blank when the
// whole tree fits, keeping the layout stable.
func (m Model) renderPositionLine() string {
	if m.total <= m.viewport.Height || m.viewport.Height <= 0 {
		return ""
	}
	start := m.viewport.YOffset
	end := start + m.viewport.Height
	if end > m.total {
		end = m.total
	}
	pageSize := m.viewport.Height
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (m.total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	currentPage := start/pageSize + 1
	if currentPage > totalPages {
		currentPage = totalPages
	}
	return m.theme.MutedText.Render(
		fmt.Sprintf(" Page %d/%d (%d-%d of %d)", currentPage, totalPages, start+1, end, m.total))
}

func (m Model) renderFooter() string {
	if m.searchMode {
		return " " + m.searchInput.View()
	}
	if m.statusMsg != "" {
		style := m.theme.MutedText
		if m.statusIsError {
			style = m.theme.DangerText
		}
		return style.Render(" " + m.statusMsg)
	}
	return m.renderShortcutBar()
}

type hint struct {
	key   string
	label string
}

func (m Model) renderShortcutBar() string {
	r := m.theme.Renderer
	keyStyle := r.NewStyle().Foreground(m.theme.Primary).Bold(true)
	labelStyle := r.NewStyle().Foreground(m.theme.Muted)

	hints := []hint{
		{"↑↓", "move"},
		{"←→", "close/open"},
		{"enter", "select"},
		{"/", "search"},
		{"n/p", "match"},
		{"y", "yank"},
		{"r", "refresh"},
		{"?", "help"},
		{"q", "quit"},
	}
	if n := m.tree.LoadErrors(); n > 0 {
		hints = append(hints, hint{"!", fmt.Sprintf("%d unreadable", n)})
	}

	var hintParts []string
	for _, h := range hints {
		hintParts = append(hintParts, keyStyle.Render(h.key)+":"+labelStyle.Render(h.label))
	}
	return " " + strings.Join(hintParts, "  ")
}

// renderHelp renders the full-screen key reference overlay.
func (m Model) renderHelp() string {
	t := m.theme

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3)

	titleStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	keyStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	labelStyle := t.Renderer.NewStyle().Foreground(t.Subtext)

	rows := []hint{
		{"↑/k  ↓/j", "move focus"},
		{"→/l", "expand directory"},
		{"←/h", "collapse, or jump to parent"},
		{"enter", "expand dir / select file and quit"},
		{"g  G", "jump to top / bottom"},
		{"ctrl+u/d", "page up / down"},
		{"/", "search names"},
		{"n  p", "next / previous match"},
		{"esc", "clear search highlights"},
		{"y", "copy focused path"},
		{"r", "refresh from disk"},
		{"q", "quit"},
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("canopy keys"))
	sb.WriteString("\n\n")
	for _, row := range rows {
		sb.WriteString(keyStyle.Render(padRight(row.key, 12)))
		sb.WriteString(labelStyle.Render(row.label))
		sb.WriteByte('\n')
	}
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("press any key to close"))

	box := boxStyle.Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
