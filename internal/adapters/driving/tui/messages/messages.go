// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// DeckChanged is sent when the manager reports a change the UI did not
// initiate: a document was added, removed or activated elsewhere.
type DeckChanged struct{}

// DocumentOpened carries the result of opening a document.
type DocumentOpened struct {
	DocumentID string
	Title      string
	Err        error
}

// DocumentClosed carries the result of closing a document.
type DocumentClosed struct {
	DocumentID string
	// Closed is false when the content refused the close.
	Closed bool
	Err    error
}

// DocumentSaved carries the result of saving a document's content.
type DocumentSaved struct {
	DocumentID string
	Err        error
}

// ShutdownCompleted is sent after the deck has drained on quit.
type ShutdownCompleted struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Mode identifies what the keyboard is currently driving.
type Mode int

const (
	// ModeNormal routes keys to deck commands.
	ModeNormal Mode = iota
	// ModeRename edits the active tab title.
	ModeRename
	// ModeOpen asks for a file to open as a note.
	ModeOpen
	// ModeAppend appends a line to the active note.
	ModeAppend
	// ModeHelp shows the full key reference.
	ModeHelp
	// ModeQuitting waits for shutdown.
	ModeQuitting
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeRename:
		return "rename"
	case ModeOpen:
		return "open"
	case ModeAppend:
		return "append"
	case ModeHelp:
		return "help"
	case ModeQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Prompting reports whether the mode reads a line of text.
func (m Mode) Prompting() bool {
	return m == ModeRename || m == ModeOpen || m == ModeAppend
}
