package mcp

import (
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// ContentFactory builds content models for the open tool.
type ContentFactory interface {
	New(contentType, parameter string) (any, error)
	ContentTypes() []string
}

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Manager hosts the documents.
	Manager driving.DocumentManager

	// Opener finds or creates documents by key.
	Opener driving.DocumentOpener

	// Content builds models for newly opened documents.
	Content ContentFactory

	// Session serves the lifecycle journal. Optional.
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
	if p.Content == nil {
		return ErrMissingContent
	}
	return nil
}
