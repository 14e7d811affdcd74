// Package tabs renders the document tab row.
package tabs

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui/styles"
)

const (
	closeGlyph  = " ×"
	ellipsis    = "…"
	maxTitleLen = 24
)

// Tab is one rendered tab.
type Tab struct {
	Title    string
	Selected bool
	Closable bool
}

// Row renders a row of tabs.
type Row struct {
	styles *styles.Styles
	width  int
}

// NewRow creates a tab row.
func NewRow(s *styles.Styles) *Row {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Row{styles: s, width: 80}
}

// SetWidth sets the row width.
func (r *Row) SetWidth(width int) {
	r.width = width
}

// Render draws the tabs and fills the rest of the row with the gap border.
func (r *Row) Render(tabs []Tab) string {
	if len(tabs) == 0 {
		return r.styles.Muted.Render("no open documents, press n for a new note")
	}

	rendered := make([]string, 0, len(tabs)+1)
	for _, t := range tabs {
		label := Truncate(t.Title, maxTitleLen)
		if t.Closable {
			label += r.styles.TabClose.Render(closeGlyph)
		}
		if t.Selected {
			rendered = append(rendered, r.styles.ActiveTab.Render(label))
		} else {
			rendered = append(rendered, r.styles.Tab.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	gap := r.width - lipgloss.Width(row) - 2
	if gap > 0 {
		row = lipgloss.JoinHorizontal(lipgloss.Bottom, row, r.styles.TabGap.Render(strings.Repeat(" ", gap)))
	}
	return row
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return ellipsis
	}
	return string(runes[:n-1]) + ellipsis
}
