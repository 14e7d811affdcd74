// Package tui provides an interactive terminal user interface for docdeck.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docdeck/internal/adapters/driven/container/tabstrip"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// Tabs is the tab strip as the user drives it.
type Tabs interface {
	VisibleTabs() []tabstrip.Tab
	UserSelect(id driven.SlotID) bool
	UserSelectNext(delta int) driven.SlotID
	UserRename(id driven.SlotID, header string) bool
	UserClose(id driven.SlotID) bool
}

// ContentFactory builds content models for new documents.
type ContentFactory interface {
	New(contentType, parameter string) (any, error)
}

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Manager hosts the documents.
	Manager driving.DocumentManager

	// Opener finds or creates documents by key.
	Opener driving.DocumentOpener

	// Tabs is the container the manager places documents in.
	Tabs Tabs

	// Content builds models for new documents.
	Content ContentFactory

	// Session saves the open documents on quit. Optional.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Manager == nil {
		return ErrMissingManager
	}
	if p.Opener == nil {
		return ErrMissingOpener
	}
	if p.Tabs == nil {
		return ErrMissingTabs
	}
	if p.Content == nil {
		return ErrMissingContent
	}
	return nil
}
