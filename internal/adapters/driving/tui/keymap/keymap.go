// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit saves the session and exits.
	Quit key.Binding

	// Help toggles the full key reference.
	Help key.Binding

	// NewNote opens an empty note.
	NewNote key.Binding

	// Open asks for a file to open as a note.
	Open key.Binding

	// NextTab selects the next visible tab.
	NextTab key.Binding

	// PrevTab selects the previous visible tab.
	PrevTab key.Binding

	// GoToTab selects a visible tab by its position.
	GoToTab key.Binding

	// Show brings back the next hidden document.
	Show key.Binding

	// Hide hides the active document.
	Hide key.Binding

	// Close closes the active document; content may refuse.
	Close key.Binding

	// ForceClose closes the active document unconditionally.
	ForceClose key.Binding

	// CloseTab presses the close button of the selected tab.
	CloseTab key.Binding

	// Rename edits the active tab title.
	Rename key.Binding

	// Append adds a line to the active note.
	Append key.Binding

	// Save writes the active note to its file.
	Save key.Binding

	// Up scrolls the content up.
	Up key.Binding

	// Down scrolls the content down.
	Down key.Binding

	// Confirm accepts a prompt.
	Confirm key.Binding

	// Cancel dismisses a prompt or the help view.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NewNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "prev tab"),
		),
		GoToTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to tab"),
		),
		Show: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "show hidden"),
		),
		Hide: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "hide"),
		),
		Close: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "close"),
		),
		ForceClose: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "force close"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close tab"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Append: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append line"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help line.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewNote, k.NextTab, k.Close, k.Help, k.Quit}
}

// PromptHelp returns keybindings shown while a prompt is open.
func (k *KeyMap) PromptHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewNote, k.Open, k.Rename, k.Append, k.Save},
		{k.NextTab, k.PrevTab, k.GoToTab, k.Show, k.Hide},
		{k.Close, k.ForceClose, k.CloseTab, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
