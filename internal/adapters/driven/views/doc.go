// Package views provides the view resolver used by the document manager.
//
// Content types are registered with a factory that builds a fresh view.
// Views embed Binding so the resolver can attach and detach content.
package views
