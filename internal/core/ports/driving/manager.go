package driving

import (
	"context"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// DocumentManager manages the documents open in one container.
type DocumentManager interface {
	// CreateDocument resolves and binds a view for the content, allocates a
	// slot and returns a hidden, registered document. The caller initialises
	// the content and calls Show.
	CreateDocument(ctx context.Context, contentType string, model, parameter, parent any) (Document, error)

	// ActiveDocument returns the active document, or nil.
	ActiveDocument() Document

	// SetActiveDocument makes doc active and shows it. nil clears the
	// active document without hiding anything.
	SetActiveDocument(doc Document) error

	// FindDocumentByID returns the first document with the key. An empty
	// contentType matches any type.
	FindDocumentByID(id, contentType string) Document

	// FindDocumentByContent returns the document bound to a content model.
	FindDocumentByContent(model any) Document

	// Documents returns the registered documents in insertion order.
	Documents() []Document

	// Count returns the number of registered documents.
	Count() int

	// OnCountChanged observes registry size changes.
	OnCountChanged(fn func(count int)) (release func())

	// OnActiveDocumentChanged observes active document changes.
	OnActiveDocumentChanged(fn func(old, current Document)) (release func())

	// OnDocumentEvent observes lifecycle transitions of every document.
	OnDocumentEvent(fn func(ev domain.DocumentEvent)) (release func())

	// ApplySettings replaces the settings used for new documents.
	ApplySettings(settings domain.DocumentSettings)

	// Shutdown force-closes every document and waits until all of them
	// are destroyed or ctx is done.
	Shutdown(ctx context.Context) error
}
