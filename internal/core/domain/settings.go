package domain

import "time"

// DefaultDocumentTitle is the slot header given to new documents.
const DefaultDocumentTitle = "Item"

// DocumentSettings configures how the manager creates documents.
type DocumentSettings struct {
	// CloseButtonEnabled shows a close glyph on new slots.
	CloseButtonEnabled bool

	// DefaultTitle is the header given to new slots.
	DefaultTitle string

	// FallbackContentType is resolved when a document is created
	// without a content type.
	FallbackContentType string

	// DestroyOnClose is the default policy applied by the opener.
	DestroyOnClose bool
}

// SessionSettings configures session persistence.
type SessionSettings struct {
	// Restore reopens the documents of the previous session at startup.
	Restore bool

	// JournalLimit is the number of lifecycle events kept in the journal.
	JournalLimit int
}

// ShutdownSettings configures bulk shutdown.
type ShutdownSettings struct {
	// Timeout bounds how long shutdown waits for documents to drain.
	// Zero waits forever.
	Timeout time.Duration
}

// AppSettings holds all persisted configuration.
type AppSettings struct {
	Documents DocumentSettings
	Session   SessionSettings
	Shutdown  ShutdownSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Documents: DefaultDocumentSettings(),
		Session: SessionSettings{
			Restore:      true,
			JournalLimit: 500,
		},
		Shutdown: ShutdownSettings{
			Timeout: 10 * time.Second,
		},
	}
}

// DefaultDocumentSettings returns the document defaults.
func DefaultDocumentSettings() DocumentSettings {
	return DocumentSettings{
		CloseButtonEnabled: true,
		DefaultTitle:       DefaultDocumentTitle,
		DestroyOnClose:     true,
	}
}

// Validate checks the settings for values the deck cannot honour.
func (s AppSettings) Validate() error {
	if s.Session.JournalLimit < 0 {
		return ErrInvalidInput
	}
	if s.Shutdown.Timeout < 0 {
		return ErrInvalidInput
	}
	return nil
}
