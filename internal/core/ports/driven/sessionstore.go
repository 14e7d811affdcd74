package driven

import (
	"context"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// SessionStore persists the lifecycle journal and the saved session.
// Backed by SQLite; an in-memory implementation is used in tests.
type SessionStore interface {
	// AppendEvent records a lifecycle event.
	AppendEvent(ctx context.Context, ev domain.DocumentEvent) error

	// ListEvents returns the most recent events, newest first.
	ListEvents(ctx context.Context, limit int) ([]domain.DocumentEvent, error)

	// PruneEvents keeps only the newest keep events.
	PruneEvents(ctx context.Context, keep int) error

	// SaveSession replaces the saved session.
	SaveSession(ctx context.Context, entries []domain.SessionEntry) error

	// LoadSession returns the saved session ordered by position.
	LoadSession(ctx context.Context) ([]domain.SessionEntry, error)
}
