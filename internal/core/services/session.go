package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService journals document lifecycles and saves the set of open
// documents so a later run can reopen them.
type SessionService struct {
	store driven.SessionStore
	limit int
}

// NewSessionService creates a session service. journalLimit bounds the
// number of journal rows kept; zero keeps everything.
func NewSessionService(store driven.SessionStore, journalLimit int) *SessionService {
	return &SessionService{store: store, limit: journalLimit}
}

// Attach journals every lifecycle event raised by manager until released.
func (s *SessionService) Attach(manager driving.DocumentManager) (release func()) {
	return manager.OnDocumentEvent(func(ev domain.DocumentEvent) {
		if err := s.store.AppendEvent(context.Background(), ev); err != nil {
			logger.Error("journal %s event for %q: %v", ev.Kind, ev.DocumentID, err)
		}
	})
}

// Snapshot saves the manager's open documents as the session and prunes
// the journal. Documents without a key cannot be found again and are skipped.
func (s *SessionService) Snapshot(ctx context.Context, manager driving.DocumentManager) error {
	docs := manager.Documents()
	entries := make([]domain.SessionEntry, 0, len(docs))
	for _, doc := range docs {
		info := doc.Info()
		if info.ID == "" || info.State == domain.DocumentDestroyed {
			continue
		}
		entry := domain.SessionEntry{
			DocumentID:  info.ID,
			ContentType: info.ContentType,
			Title:       info.Title,
			Position:    len(entries),
			Active:      info.Active,
		}
		if p, ok := doc.Content().(driven.Persister); ok {
			entry.Parameter = p.SessionParameter()
		}
		entries = append(entries, entry)
	}

	if err := s.store.SaveSession(ctx, entries); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	logger.Debug("saved session with %d documents", len(entries))

	if s.limit > 0 {
		if err := s.store.PruneEvents(ctx, s.limit); err != nil {
			return fmt.Errorf("prune journal: %w", err)
		}
	}
	return nil
}

// Restore reopens the saved session in order through open. The entry that
// was active is opened once more at the end so it is shown last.
// Returns the number of entries reopened; failures are joined.
func (s *SessionService) Restore(
	ctx context.Context,
	open func(ctx context.Context, entry domain.SessionEntry) error,
) (int, error) {
	entries, err := s.store.LoadSession(ctx)
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}

	var (
		opened int
		errs   []error
		active *domain.SessionEntry
	)
	for i := range entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		entry := entries[i]
		if err := open(ctx, entry); err != nil {
			errs = append(errs, fmt.Errorf("restore %q: %w", entry.DocumentID, err))
			continue
		}
		opened++
		if entry.Active {
			active = &entry
		}
	}

	if active != nil && ctx.Err() == nil {
		if err := open(ctx, *active); err != nil {
			errs = append(errs, fmt.Errorf("activate %q: %w", active.DocumentID, err))
		}
	}

	return opened, errors.Join(errs...)
}

// History returns recent lifecycle events, newest first.
func (s *SessionService) History(ctx context.Context, limit int) ([]domain.DocumentEvent, error) {
	if limit <= 0 {
		limit = s.limit
	}
	return s.store.ListEvents(ctx, limit)
}

// Saved returns the saved session.
func (s *SessionService) Saved(ctx context.Context) ([]domain.SessionEntry, error) {
	return s.store.LoadSession(ctx)
}
