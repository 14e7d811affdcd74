// Package mcp provides an MCP (Model Context Protocol) server adapter for docdeck.
// It lets AI assistants list, open, show, hide and close the documents
// hosted by a running deck.
package mcp

import "errors"

var (
	// ErrMissingManager is returned when the document manager is not provided.
	ErrMissingManager = errors.New("mcp: document manager is required")

	// ErrMissingOpener is returned when the document opener is not provided.
	ErrMissingOpener = errors.New("mcp: document opener is required")

	// ErrMissingContent is returned when the content factory is not provided.
	ErrMissingContent = errors.New("mcp: content factory is required")

	// ErrNoSession is returned by history tools when no session service is wired.
	ErrNoSession = errors.New("mcp: session journal is not enabled")
)
