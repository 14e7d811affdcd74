package views

import "sync"

// Bindable is implemented by views the resolver can bind.
type Bindable interface {
	Bind(model, parameter, parent any) error
	Unbind()
}

// Binding holds the content a view is bound to. Embed it in a view type
// to satisfy driven.View and Bindable.
type Binding struct {
	mu        sync.RWMutex
	model     any
	parameter any
	parent    any
}

// Model returns the bound content model, or nil.
func (b *Binding) Model() any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

// Parameter returns the parameter passed at bind time.
func (b *Binding) Parameter() any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.parameter
}

// Parent returns the parent context passed at bind time.
func (b *Binding) Parent() any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.parent
}

// Bind attaches content to the view.
func (b *Binding) Bind(model, parameter, parent any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model, b.parameter, b.parent = model, parameter, parent
	return nil
}

// Unbind drops every reference to the content.
func (b *Binding) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model, b.parameter, b.parent = nil, nil, nil
}
