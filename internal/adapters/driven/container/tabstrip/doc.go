// Package tabstrip provides a thread-safe, in-memory tab strip that hosts
// document slots. It has no rendering of its own: the TUI draws it and the
// MCP server drives it headless.
//
// The strip implements driven.Container for the document manager and
// exposes the user-side actions (select, close glyph, rename) that a
// front end forwards to it.
package tabstrip
