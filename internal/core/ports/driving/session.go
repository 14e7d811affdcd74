package driving

import (
	"context"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// SessionService records document lifecycles and restores sessions.
type SessionService interface {
	// Attach starts journaling a manager's lifecycle events.
	Attach(manager DocumentManager) (release func())

	// Snapshot saves the manager's open documents as the session.
	Snapshot(ctx context.Context, manager DocumentManager) error

	// Restore reopens the saved session through open.
	Restore(ctx context.Context, open func(ctx context.Context, entry domain.SessionEntry) error) (int, error)

	// History returns recent lifecycle events, newest first.
	History(ctx context.Context, limit int) ([]domain.DocumentEvent, error)

	// Saved returns the saved session.
	Saved(ctx context.Context) ([]domain.SessionEntry, error)
}
