package tabs

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRow_NilStyles(t *testing.T) {
	row := NewRow(nil)

	require.NotNil(t, row)
	assert.NotNil(t, row.styles)
}

func TestRow_RenderEmpty(t *testing.T) {
	row := NewRow(nil)

	assert.Contains(t, row.Render(nil), "no open documents")
}

func TestRow_RenderTabs(t *testing.T) {
	row := NewRow(nil)
	row.SetWidth(100)

	out := row.Render([]Tab{
		{Title: "alpha", Closable: true},
		{Title: "beta", Selected: true},
	})

	assert.Contains(t, out, "alpha ×")
	assert.Contains(t, out, "beta")
	assert.NotContains(t, out, "beta ×")
	assert.Equal(t, 3, lipgloss.Height(out))
}

func TestRow_RenderNarrow(t *testing.T) {
	row := NewRow(nil)
	row.SetWidth(5)

	out := row.Render([]Tab{{Title: "a very long document title indeed"}})

	assert.Contains(t, out, "…")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		n        int
		expected string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdef", 5, "abcd…"},
		{"one", "abc", 1, "…"},
		{"unlimited", "abc", 0, "abc"},
		{"runes", "ééééé", 3, "éé…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.in, tt.n))
		})
	}
}
