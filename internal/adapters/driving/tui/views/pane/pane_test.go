package pane

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

type stubText struct {
	body  string
	dirty bool
}

func (s *stubText) Body() string { return s.body }
func (s *stubText) Dirty() bool  { return s.dirty }

type stubDoc struct {
	title   string
	ct      string
	content any
	state   domain.DocumentState
}

var _ driving.Document = (*stubDoc)(nil)

func (d *stubDoc) ID() string                                   { return "stub" }
func (d *stubDoc) SetID(string)                                 {}
func (d *stubDoc) Title() string                                { return d.title }
func (d *stubDoc) SetTitle(title string)                        { d.title = title }
func (d *stubDoc) ContentType() string                          { return d.ct }
func (d *stubDoc) Content() any                                 { return d.content }
func (d *stubDoc) Slot() driven.SlotID                          { return "slot" }
func (d *stubDoc) DestroyOnClose() bool                         { return true }
func (d *stubDoc) SetDestroyOnClose(bool)                       {}
func (d *stubDoc) State() domain.DocumentState                  { return d.state }
func (d *stubDoc) Show()                                        {}
func (d *stubDoc) Hide()                                        {}
func (d *stubDoc) Close(context.Context, bool) error            { return nil }
func (d *stubDoc) Dispose(context.Context) error                { return nil }
func (d *stubDoc) Done() <-chan struct{}                        { return nil }
func (d *stubDoc) OnTitleChanged(func(string)) (release func()) { return func() {} }
func (d *stubDoc) Info() domain.DocumentInfo                    { return domain.DocumentInfo{Title: d.title} }

func TestNewView_NilStyles(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Nil(t, v.Document())
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil)

	assert.Contains(t, v.View(), "Nothing to show")
}

func TestView_TextDocument(t *testing.T) {
	v := NewView(nil)
	doc := &stubDoc{title: "todo", ct: "note", content: &stubText{body: "milk\neggs", dirty: true}, state: domain.DocumentVisible}

	v.SetDocument(doc)
	out := v.View()

	assert.Equal(t, "milk\neggs", v.Body())
	assert.Contains(t, out, "todo")
	assert.Contains(t, out, "note · visible")
	assert.Contains(t, out, "modified")
	assert.Contains(t, out, "milk")
}

func TestView_EmptyBody(t *testing.T) {
	v := NewView(nil)
	v.SetDocument(&stubDoc{title: "blank", ct: "note", content: &stubText{}})

	assert.Contains(t, v.View(), "(empty)")
}

func TestView_NoPreview(t *testing.T) {
	v := NewView(nil)
	v.SetDocument(&stubDoc{title: "chart", ct: "chart", content: 42})

	assert.Contains(t, v.View(), "no preview for chart content")
	assert.Empty(t, v.Body())
}

func TestView_RefreshPicksUpEdits(t *testing.T) {
	v := NewView(nil)
	text := &stubText{body: "one"}
	v.SetDocument(&stubDoc{title: "t", ct: "note", content: text})

	text.body = "two"
	v.Refresh()

	assert.Equal(t, "two", v.Body())
}

func TestView_Scroll(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(40, 5)
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	doc := &stubDoc{title: "long", ct: "note", content: &stubText{body: strings.Join(lines, "\n")}}
	v.SetDocument(doc)

	v.ScrollDown()
	v.ScrollDown()
	assert.Equal(t, 2, v.YOffset())

	v.ScrollUp()
	assert.Equal(t, 1, v.YOffset())

	v.SetDocument(&stubDoc{title: "other", ct: "note", content: &stubText{body: "x"}})
	assert.Equal(t, 0, v.YOffset())
}
