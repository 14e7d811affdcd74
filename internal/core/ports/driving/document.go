package driving

import (
	"context"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Document is a single open unit of work hosted in one container slot.
// Lifecycle calls on a destroyed document are no-ops.
type Document interface {
	// ID returns the caller-supplied key.
	ID() string

	// SetID sets the caller-supplied key. Uniqueness is not enforced.
	SetID(id string)

	// Title returns the slot header.
	Title() string

	// SetTitle writes the slot header.
	SetTitle(title string)

	// ContentType returns the view resolution rule that produced the content.
	ContentType() string

	// Content returns the bound content model, or nil once destroyed.
	Content() any

	// Slot returns the hosting slot, or "" once destroyed.
	Slot() driven.SlotID

	// DestroyOnClose reports whether Close cascades into Dispose.
	DestroyOnClose() bool

	// SetDestroyOnClose sets the close policy.
	SetDestroyOnClose(destroy bool)

	// State returns the lifecycle state.
	State() domain.DocumentState

	// Show makes the slot visible and selects it.
	Show()

	// Hide hides the slot when the document is visible.
	Hide()

	// Close hides the document, disposing it when DestroyOnClose is set.
	// A non-forced close may be vetoed by the content.
	Close(ctx context.Context, force bool) error

	// Dispose tears the document down. The returned error, if any, is a
	// *domain.ContentDisposalError raised after teardown completed.
	Dispose(ctx context.Context) error

	// Done is closed when the document is destroyed.
	Done() <-chan struct{}

	// OnTitleChanged observes title changes.
	OnTitleChanged(fn func(title string)) (release func())

	// Info returns a snapshot of the document.
	Info() domain.DocumentInfo
}
