// Package content builds content models by content type. Front ends and
// session restore use it to turn a (content type, parameter) pair into a
// model the document manager can host.
package content

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// Constructor builds a content model from a parameter string.
type Constructor func(parameter string) (any, error)

// Identified is implemented by models that carry their own document key.
type Identified interface {
	ID() string
}

// Titled is implemented by models that suggest a tab title.
type Titled interface {
	Title() string
}

// Catalog maps content types to constructors.
type Catalog struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{ctors: make(map[string]Constructor)}
}

// Register maps a content type to a constructor.
func (c *Catalog) Register(contentType string, ctor Constructor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctors[contentType] = ctor
}

// New builds a model for the content type.
func (c *Catalog) New(contentType, parameter string) (any, error) {
	c.mu.RLock()
	ctor, ok := c.ctors[contentType]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no content type %q", domain.ErrNotFound, contentType)
	}
	return ctor(parameter)
}

// ContentTypes returns the registered content types in sorted order.
func (c *Catalog) ContentTypes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	types := make([]string, 0, len(c.ctors))
	for t := range c.ctors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// IDOf returns the model's own key, or "".
func IDOf(model any) string {
	if m, ok := model.(Identified); ok {
		return m.ID()
	}
	return ""
}

// TitleOf returns the model's suggested title, or "".
func TitleOf(model any) string {
	if m, ok := model.(Titled); ok {
		return m.Title()
	}
	return ""
}
