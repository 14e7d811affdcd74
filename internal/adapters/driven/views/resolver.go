package views

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Ensure Resolver implements the interface.
var _ driven.ViewResolver = (*Resolver)(nil)

// Factory builds a new, unbound view.
type Factory func() driven.View

// Resolver maps content types to view factories.
type Resolver struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{factories: make(map[string]Factory)}
}

// Register maps a content type to a factory. Registering the same type
// twice replaces the earlier factory.
func (r *Resolver) Register(contentType string, factory Factory) error {
	if contentType == "" {
		return fmt.Errorf("%w: content type is required", domain.ErrInvalidInput)
	}
	if factory == nil {
		return fmt.Errorf("%w: factory for %q is nil", domain.ErrInvalidInput, contentType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[contentType] = factory
	return nil
}

// ContentTypes returns the registered content types in sorted order.
func (r *Resolver) ContentTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ResolveView builds a view for the content type.
func (r *Resolver) ResolveView(contentType string) (driven.View, error) {
	r.mu.RLock()
	factory, ok := r.factories[contentType]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ResolutionError(contentType)
	}
	view := factory()
	if view == nil {
		return nil, domain.ResolutionError(contentType)
	}
	return view, nil
}

// BindView binds content to a view that implements Bindable.
func (r *Resolver) BindView(view driven.View, model, parameter, parent any) error {
	b, ok := view.(Bindable)
	if !ok {
		return fmt.Errorf("%w: view %T cannot be bound", domain.ErrInvalidInput, view)
	}
	return b.Bind(model, parameter, parent)
}

// UnbindView detaches content from a view.
func (r *Resolver) UnbindView(view driven.View) {
	if b, ok := view.(Bindable); ok {
		b.Unbind()
	}
}
