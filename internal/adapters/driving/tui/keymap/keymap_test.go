package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ help.KeyMap = (*KeyMap)(nil)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"new note", km.NewNote, []string{"n"}},
		{"open", km.Open, []string{"o"}},
		{"next tab", km.NextTab, []string{"tab", "right", "l"}},
		{"prev tab", km.PrevTab, []string{"shift+tab", "left", "h"}},
		{"go to tab", km.GoToTab, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		{"show", km.Show, []string{"s"}},
		{"hide", km.Hide, []string{"x"}},
		{"close", km.Close, []string{"w"}},
		{"force close", km.ForceClose, []string{"W"}},
		{"close tab", km.CloseTab, []string{"ctrl+w"}},
		{"rename", km.Rename, []string{"r"}},
		{"append", km.Append, []string{"a"}},
		{"save", km.Save, []string{"ctrl+s"}},
		{"confirm", km.Confirm, []string{"enter"}},
		{"cancel", km.Cancel, []string{"esc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_NoConflictsInNormalMode(t *testing.T) {
	km := DefaultKeyMap()
	seen := make(map[string]string)

	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				assert.False(t, dup, "key %q bound to %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	short := km.ShortHelp()

	assert.Len(t, short, 5)
	assert.Equal(t, km.Quit.Keys(), short[len(short)-1].Keys())
}

func TestKeyMap_PromptHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.PromptHelp(), 2)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Quit))
}
