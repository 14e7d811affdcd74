// Package note provides a plain-text note content model and its view.
// Notes exercise every document content hook: they load on initialise,
// refuse a polite close while edits are unsaved, and flush on dispose.
package note

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// ContentType is the view resolution key for notes.
const ContentType = "note"

var (
	_ driven.Initializer  = (*Note)(nil)
	_ driven.Disposer     = (*Note)(nil)
	_ driven.CloseHandler = (*Note)(nil)
	_ driven.Destroyer    = (*Note)(nil)
	_ driven.Persister    = (*Note)(nil)
)

// ErrDestroyed is returned when a destroyed note is edited.
var ErrDestroyed = errors.New("note: destroyed")

// Note is a text note, optionally backed by a file.
type Note struct {
	id   string
	path string

	mu        sync.RWMutex
	body      string
	dirty     bool
	destroyed bool
}

// New creates a note. An empty path keeps the note in memory only.
func New(path string) *Note {
	return &Note{id: uuid.NewString(), path: path}
}

// NewWithBody creates an in-memory note with initial text.
func NewWithBody(body string) *Note {
	n := New("")
	n.body = body
	return n
}

// ID returns a key unique to the note. File-backed notes use their
// absolute path so reopening the same file finds the open document.
func (n *Note) ID() string {
	if n.path != "" {
		if abs, err := filepath.Abs(n.path); err == nil {
			return abs
		}
		return n.path
	}
	return n.id
}

// Path returns the backing file, or "".
func (n *Note) Path() string {
	return n.path
}

// Title returns a tab title for the note.
func (n *Note) Title() string {
	if n.path != "" {
		return filepath.Base(n.path)
	}
	return "Untitled"
}

// Body returns the text.
func (n *Note) Body() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.body
}

// SetBody replaces the text and marks the note dirty.
func (n *Note) SetBody(body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.destroyed {
		return ErrDestroyed
	}
	if body != n.body {
		n.body = body
		n.dirty = true
	}
	return nil
}

// Append adds a line to the end of the text.
func (n *Note) Append(line string) error {
	body := n.Body()
	if body != "" {
		body += "\n"
	}
	return n.SetBody(body + line)
}

// Dirty reports unsaved edits.
func (n *Note) Dirty() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.dirty
}

// Save writes the text to the backing file. In-memory notes just clear
// the dirty flag.
func (n *Note) Save(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path != "" {
		if err := os.MkdirAll(filepath.Dir(n.path), 0700); err != nil {
			return fmt.Errorf("save note: %w", err)
		}
		if err := os.WriteFile(n.path, []byte(n.body), 0600); err != nil {
			return fmt.Errorf("save note: %w", err)
		}
	}
	n.dirty = false
	return nil
}

// Discard drops unsaved edits so the next close is not refused.
func (n *Note) Discard() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dirty = false
}

// Initialize loads the backing file. A missing file starts an empty note.
func (n *Note) Initialize(ctx context.Context) error {
	if n.path == "" {
		return ctx.Err()
	}
	data, err := os.ReadFile(n.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load note %s: %w", n.path, err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.body = string(data)
	n.dirty = false
	return ctx.Err()
}

// OnClose refuses a non-forced close while there are unsaved edits.
func (n *Note) OnClose(ev *domain.CloseEvent) {
	if n.Dirty() {
		ev.Cancel = true
	}
}

// Dispose flushes unsaved edits of a file-backed note.
func (n *Note) Dispose(ctx context.Context) error {
	if n.path == "" || !n.Dirty() {
		return nil
	}
	return n.Save(ctx)
}

// OnDestroy releases the text.
func (n *Note) OnDestroy() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.destroyed = true
	n.body = ""
}

// Destroyed reports whether the note's document was destroyed.
func (n *Note) Destroyed() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.destroyed
}

// SessionParameter returns what is needed to reopen the note: its path,
// or its text when it has no file.
func (n *Note) SessionParameter() string {
	if n.path != "" {
		return "file:" + n.path
	}
	return "text:" + n.Body()
}

// FromSessionParameter rebuilds a note saved with SessionParameter.
func FromSessionParameter(param string) (*Note, error) {
	if path, ok := strings.CutPrefix(param, "file:"); ok {
		return New(path), nil
	}
	if body, ok := strings.CutPrefix(param, "text:"); ok {
		return NewWithBody(body), nil
	}
	return nil, fmt.Errorf("%w: note parameter %q", domain.ErrInvalidInput, param)
}
