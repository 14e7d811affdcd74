package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu      sync.RWMutex
	events  []domain.DocumentEvent
	session []domain.SessionEntry
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// AppendEvent records a lifecycle event.
func (s *SessionStore) AppendEvent(_ context.Context, ev domain.DocumentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// ListEvents returns the most recent events, newest first.
// A non-positive limit returns every event.
func (s *SessionStore) ListEvents(_ context.Context, limit int) ([]domain.DocumentEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.DocumentEvent, 0, n)
	for i := len(s.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

// PruneEvents keeps only the newest keep events.
func (s *SessionStore) PruneEvents(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keep < 0 {
		keep = 0
	}
	if len(s.events) > keep {
		s.events = append([]domain.DocumentEvent(nil), s.events[len(s.events)-keep:]...)
	}
	return nil
}

// SaveSession replaces the saved session.
func (s *SessionStore) SaveSession(_ context.Context, entries []domain.SessionEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = append([]domain.SessionEntry(nil), entries...)
	return nil
}

// LoadSession returns the saved session ordered by position.
func (s *SessionStore) LoadSession(_ context.Context) ([]domain.SessionEntry, error) {
	s.mu.RLock()
	out := append([]domain.SessionEntry(nil), s.session...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}
