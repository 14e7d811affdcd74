package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// AppendEvent records a lifecycle event.
func (s *sessionStore) AppendEvent(ctx context.Context, ev domain.DocumentEvent) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO document_events (id, document_id, content_type, title, kind, at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ev.ID, ev.DocumentID, ev.ContentType, ev.Title, string(ev.Kind), ev.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// ListEvents returns the most recent events, newest first.
// A non-positive limit returns every event.
func (s *sessionStore) ListEvents(ctx context.Context, limit int) ([]domain.DocumentEvent, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, content_type, title, kind, at
		FROM document_events
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []domain.DocumentEvent
	for rows.Next() {
		var (
			ev   domain.DocumentEvent
			kind string
			at   string
		)
		if err := rows.Scan(&ev.ID, &ev.DocumentID, &ev.ContentType, &ev.Title, &kind, &at); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		ev.Kind = domain.DocumentEventKind(kind)
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			ev.At = t
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// PruneEvents keeps only the newest keep events.
func (s *sessionStore) PruneEvents(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM document_events
		WHERE seq NOT IN (SELECT seq FROM document_events ORDER BY seq DESC LIMIT ?)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning events: %w", err)
	}
	return nil
}

// SaveSession replaces the saved session.
func (s *sessionStore) SaveSession(ctx context.Context, entries []domain.SessionEntry) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM session_documents"); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session_documents (position, document_id, content_type, title, parameter, active)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.Position, e.DocumentID, e.ContentType, e.Title, e.Parameter, boolToInt(e.Active))
		if err != nil {
			return fmt.Errorf("saving session entry %q: %w", e.DocumentID, err)
		}
	}

	return tx.Commit()
}

// LoadSession returns the saved session ordered by position.
func (s *sessionStore) LoadSession(ctx context.Context) ([]domain.SessionEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT position, document_id, content_type, title, parameter, active
		FROM session_documents
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	defer rows.Close()

	var entries []domain.SessionEntry
	for rows.Next() {
		var (
			e      domain.SessionEntry
			active int
		)
		if err := rows.Scan(&e.Position, &e.DocumentID, &e.ContentType, &e.Title, &e.Parameter, &active); err != nil {
			return nil, fmt.Errorf("scanning session entry: %w", err)
		}
		e.Active = active != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
