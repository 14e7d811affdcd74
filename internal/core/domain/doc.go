// Package domain defines the core entities for docdeck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentState: The lifecycle state of an open document
//   - CloseEvent: A cancelable pre-close notification
//   - DocumentEvent: A lifecycle transition observed by the manager
//   - SessionEntry: A document recorded as open when the deck shut down
//   - AppSettings: Persisted configuration for the deck
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
