package services

import (
	"context"
	"reflect"
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// Registry is the insertion-ordered set of live documents.
// Documents enter it when constructed and leave it when destroyed.
type Registry struct {
	mu   sync.RWMutex
	docs []*tabbedDocument

	changes observerList[domain.RegistryChange]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) add(d *tabbedDocument) {
	r.mu.Lock()
	r.docs = append(r.docs, d)
	count := len(r.docs)
	r.mu.Unlock()

	r.changes.notify(domain.RegistryChange{DocumentID: d.ID(), Added: true, Count: count})
}

func (r *Registry) remove(d *tabbedDocument) bool {
	r.mu.Lock()
	idx := -1
	for i, doc := range r.docs {
		if doc == d {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	r.docs = append(r.docs[:idx:idx], r.docs[idx+1:]...)
	count := len(r.docs)
	r.mu.Unlock()

	r.changes.notify(domain.RegistryChange{DocumentID: d.ID(), Added: false, Count: count})
	return true
}

func (r *Registry) contains(d *tabbedDocument) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.docs {
		if doc == d {
			return true
		}
	}
	return false
}

func (r *Registry) snapshot() []*tabbedDocument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*tabbedDocument, len(r.docs))
	copy(out, r.docs)
	return out
}

func (r *Registry) findBySlot(slot driven.SlotID) *tabbedDocument {
	if slot == "" {
		return nil
	}
	for _, d := range r.snapshot() {
		if d.Slot() == slot {
			return d
		}
	}
	return nil
}

// FindByID returns the first document with the key. An empty contentType
// matches any type. Returns nil when nothing matches.
func (r *Registry) FindByID(id, contentType string) driving.Document {
	for _, d := range r.snapshot() {
		if d.ID() != id {
			continue
		}
		if contentType != "" && d.ContentType() != contentType {
			continue
		}
		return d
	}
	return nil
}

// FindByContent returns the document bound to model, or nil.
func (r *Registry) FindByContent(model any) driving.Document {
	for _, d := range r.snapshot() {
		if sameModel(d.Content(), model) {
			return d
		}
	}
	return nil
}

// FindBySlot returns the document hosted in slot, or nil.
func (r *Registry) FindBySlot(slot driven.SlotID) driving.Document {
	if d := r.findBySlot(slot); d != nil {
		return d
	}
	return nil
}

// All returns the registered documents in insertion order.
func (r *Registry) All() []driving.Document {
	docs := r.snapshot()
	out := make([]driving.Document, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out
}

// Len returns the number of registered documents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// OnChange observes additions and removals. Observers run after the
// registry lock is released.
func (r *Registry) OnChange(fn func(domain.RegistryChange)) (release func()) {
	return r.changes.add(fn)
}

// WaitEmpty blocks until the registry has no documents or ctx is done.
func (r *Registry) WaitEmpty(ctx context.Context) error {
	done := make(chan struct{})
	var once sync.Once
	release := r.OnChange(func(c domain.RegistryChange) {
		if c.Count == 0 {
			once.Do(func() { close(done) })
		}
	})
	defer release()

	// The last removal may have happened before the subscription existed.
	if r.Len() == 0 {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sameModel compares content models by identity without panicking on
// values of uncomparable types.
func sameModel(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
