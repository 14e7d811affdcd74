// Package pane provides the view that shows the active document's content.
package pane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// headerLines is the number of rows used above the viewport.
const headerLines = 2

// textContent is implemented by models with a plain-text body.
type textContent interface {
	Body() string
}

// dirtyContent is implemented by models that track unsaved edits.
type dirtyContent interface {
	Dirty() bool
}

// View shows the body of one document in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	viewport viewport.Model

	doc    driving.Document
	body   string
	width  int
	height int
}

// NewView creates a new content pane.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   20 + headerLines,
	}
}

// SetDocument shows doc, or an empty pane when doc is nil.
func (v *View) SetDocument(doc driving.Document) {
	if doc != v.doc {
		v.viewport.GotoTop()
	}
	v.doc = doc
	v.Refresh()
}

// Refresh reloads the body of the current document.
func (v *View) Refresh() {
	v.body = ""
	if v.doc != nil {
		if t, ok := v.doc.Content().(textContent); ok {
			v.body = t.Body()
		}
	}
	v.viewport.SetContent(v.body)
}

// SetDimensions sets the pane size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-headerLines, 1)
}

// ScrollUp scrolls up one line.
func (v *View) ScrollUp() {
	v.viewport.LineUp(1)
}

// ScrollDown scrolls down one line.
func (v *View) ScrollDown() {
	v.viewport.LineDown(1)
}

// View renders the pane.
func (v *View) View() string {
	if v.doc == nil {
		return v.styles.Muted.Render("Nothing to show.")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.doc.Title()))
	b.WriteString(v.styles.Muted.Render(v.describe()))
	if d, ok := v.doc.Content().(dirtyContent); ok && d.Dirty() {
		b.WriteString(v.styles.Muted.Render(" · "))
		b.WriteString(v.styles.Modified.Render("modified"))
	}
	b.WriteString("\n\n")

	if _, ok := v.doc.Content().(textContent); !ok {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("(no preview for %s content)", v.doc.ContentType())))
		return b.String()
	}
	if v.body == "" {
		b.WriteString(v.styles.Muted.Render("(empty)"))
		return b.String()
	}
	b.WriteString(v.viewport.View())
	return b.String()
}

func (v *View) describe() string {
	return "  " + v.doc.ContentType() + " · " + v.doc.State().String()
}

// Document returns the shown document.
func (v *View) Document() driving.Document {
	return v.doc
}

// Body returns the shown text.
func (v *View) Body() string {
	return v.body
}

// YOffset returns the scroll position.
func (v *View) YOffset() int {
	return v.viewport.YOffset
}
