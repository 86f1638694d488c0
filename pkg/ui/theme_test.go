package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDefaultTheme(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := DefaultTheme(renderer)

	if theme.Renderer != renderer {
		t.Error("DefaultTheme renderer mismatch")
	}
	// Check a few known colors are set (not zero value)
	if isColorEmpty(theme.Primary) {
		t.Error("DefaultTheme Primary color is empty")
	}
	if isColorEmpty(theme.Directory) {
		t.Error("DefaultTheme Directory color is empty")
	}
	if isColorEmpty(theme.Match) {
		t.Error("DefaultTheme Match color is empty")
	}
}

func isColorEmpty(c lipgloss.AdaptiveColor) bool {
	return c.Light == "" && c.Dark == ""
}

func TestThemeStylesDistinguishKinds(t *testing.T) {
	theme := TestTheme()
	if theme.DirText.GetForeground() == theme.FileText.GetForeground() {
		t.Error("directory and file styles share a foreground")
	}
	if !theme.MatchText.GetBold() {
		t.Error("match style should be bold")
	}
}
