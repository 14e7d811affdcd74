package domain

import "time"

// DocumentEventKind identifies a lifecycle transition.
type DocumentEventKind string

// Lifecycle transitions reported by the manager.
const (
	EventCreated   DocumentEventKind = "created"
	EventShown     DocumentEventKind = "shown"
	EventHidden    DocumentEventKind = "hidden"
	EventClosed    DocumentEventKind = "closed"
	EventDestroyed DocumentEventKind = "destroyed"
	EventActivated DocumentEventKind = "activated"
)

// IsValid returns true if the kind is recognised.
func (k DocumentEventKind) IsValid() bool {
	switch k {
	case EventCreated, EventShown, EventHidden, EventClosed, EventDestroyed, EventActivated:
		return true
	default:
		return false
	}
}

// DocumentEvent is a lifecycle transition of a single document.
type DocumentEvent struct {
	// ID uniquely identifies the event in the journal.
	ID string

	// DocumentID is the caller-supplied key of the document.
	DocumentID string

	// ContentType is the content type of the document.
	ContentType string

	// Title is the document title at the time of the event.
	Title string

	// Kind is the transition.
	Kind DocumentEventKind

	// At is when the transition happened.
	At time.Time
}

// SessionEntry is a document recorded as open when the deck shut down.
type SessionEntry struct {
	// DocumentID is the caller-supplied key of the document.
	DocumentID string

	// ContentType selects the view used to restore the document.
	ContentType string

	// Title is the last known title.
	Title string

	// Parameter is the serialised parameter the content was opened with.
	Parameter string

	// Position is the ordinal position in the tab strip.
	Position int

	// Active marks the document that was active.
	Active bool
}
