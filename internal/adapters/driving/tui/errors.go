package tui

import "errors"

// ErrMissingManager is returned when the document manager is not provided.
var ErrMissingManager = errors.New("tui: document manager is required")

// ErrMissingOpener is returned when the document opener is not provided.
var ErrMissingOpener = errors.New("tui: document opener is required")

// ErrMissingTabs is returned when the tab strip is not provided.
var ErrMissingTabs = errors.New("tui: tab strip is required")

// ErrMissingContent is returned when the content factory is not provided.
var ErrMissingContent = errors.New("tui: content factory is required")

// ErrNoActiveDocument is reported when a command needs an active document.
var ErrNoActiveDocument = errors.New("tui: no active document")

// ErrUnsupported is reported when the active content lacks a capability.
var ErrUnsupported = errors.New("tui: not supported by this document")
