package driven

import (
	"context"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// Initializer is implemented by content that needs asynchronous setup
// after its document is created.
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Disposer is implemented by content that holds resources.
// Dispose is awaited during document disposal.
type Disposer interface {
	Dispose(ctx context.Context) error
}

// CloseHandler is implemented by content that may veto a non-forced close.
type CloseHandler interface {
	// OnClose is called before the close. Setting ev.Cancel vetoes it.
	OnClose(ev *domain.CloseEvent)
}

// Destroyer is implemented by content that wants to tell a destroy
// apart from a close. OnDestroy is the last call the content receives.
type Destroyer interface {
	OnDestroy()
}

// Persister is implemented by content that can be reopened in a later
// session. SessionParameter is stored with the document and handed back
// when the session is restored.
type Persister interface {
	SessionParameter() string
}
