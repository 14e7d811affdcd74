// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the deck to function:
//
//   - Container: The tab strip that hosts document slots
//   - ViewResolver: Turns a content type into a bound view
//
// # Optional Interfaces
//
// These can be nil - the deck degrades gracefully:
//
//   - ConfigStore: Persisted settings. Defaults are used without it.
//   - SessionStore: Lifecycle journal and saved session. Nothing is recorded without it.
//
// # Content Hooks
//
// Content models may implement any of Initializer, Disposer, CloseHandler
// and Destroyer. The core discovers them with type assertions.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
