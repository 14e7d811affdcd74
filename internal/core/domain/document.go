package domain

// DocumentState is the lifecycle state of a document.
type DocumentState int

const (
	// DocumentHidden is the initial state. The document is registered but its
	// slot is not shown.
	DocumentHidden DocumentState = iota

	// DocumentVisible means the slot is shown and was last selected by the document.
	DocumentVisible

	// DocumentDestroyed is terminal. The content has been released and the
	// document has left the registry.
	DocumentDestroyed
)

// String returns the string representation of the state.
func (s DocumentState) String() string {
	switch s {
	case DocumentHidden:
		return "hidden"
	case DocumentVisible:
		return "visible"
	case DocumentDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if no further transition is possible.
func (s DocumentState) IsTerminal() bool {
	return s == DocumentDestroyed
}

// CloseEvent is delivered to content before a non-forced close.
// Content sets Cancel to veto the close.
type CloseEvent struct {
	// DocumentID is the caller-supplied key of the closing document.
	DocumentID string

	// ContentType is the view resolution rule that produced the content.
	ContentType string

	// Cancel vetoes the close when set.
	Cancel bool
}

// DocumentInfo is a read-only snapshot of a document for display and persistence.
type DocumentInfo struct {
	ID             string
	Title          string
	ContentType    string
	State          DocumentState
	DestroyOnClose bool
	Active         bool
}

// RegistryChange describes a registry mutation.
type RegistryChange struct {
	// DocumentID is the key of the added or removed document.
	DocumentID string

	// Added is true for additions and false for removals.
	Added bool

	// Count is the number of registered documents after the change.
	Count int
}
