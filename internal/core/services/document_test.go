package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

type documentFixture struct {
	manager   *Manager
	container *mockContainer
	resolver  *mockResolver
	content   *mockContent
	doc       driving.Document
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	container := newMockContainer()
	resolver := newMockResolver("note")
	m := NewManager(container, resolver)
	content := &mockContent{name: "note"}

	doc, err := m.CreateDocument(context.Background(), "note", content, nil, nil)
	require.NoError(t, err)

	return &documentFixture{
		manager:   m,
		container: container,
		resolver:  resolver,
		content:   content,
		doc:       doc,
	}
}

func TestDocument_ShowFromHidden(t *testing.T) {
	f := newDocumentFixture(t)
	slot := f.doc.Slot()

	f.doc.Show()

	s, ok := f.container.slot(slot)
	require.True(t, ok)
	assert.True(t, s.visible)
	assert.Equal(t, slot, f.container.Selected())
	assert.Equal(t, domain.DocumentVisible, f.doc.State())
}

func TestDocument_ShowWhenVisibleReassertsSelection(t *testing.T) {
	f := newDocumentFixture(t)
	other, err := f.manager.CreateDocument(context.Background(), "note", &mockContent{}, nil, nil)
	require.NoError(t, err)

	f.doc.Show()
	other.Show()
	require.Equal(t, other.Slot(), f.container.Selected())

	f.doc.Show()

	assert.Equal(t, f.doc.Slot(), f.container.Selected())
	assert.Equal(t, domain.DocumentVisible, f.doc.State())
}

func TestDocument_Hide(t *testing.T) {
	f := newDocumentFixture(t)
	slot := f.doc.Slot()

	f.doc.Hide()
	assert.Equal(t, domain.DocumentHidden, f.doc.State())

	f.doc.Show()
	f.doc.Hide()

	s, _ := f.container.slot(slot)
	assert.False(t, s.visible)
	assert.Equal(t, domain.DocumentHidden, f.doc.State())
}

func TestDocument_TitleFollowsSlotHeader(t *testing.T) {
	f := newDocumentFixture(t)
	assert.Equal(t, domain.DefaultDocumentTitle, f.doc.Title())

	var seen []string
	release := f.doc.OnTitleChanged(func(title string) { seen = append(seen, title) })

	f.container.SetSlotHeader(f.doc.Slot(), "Renamed")
	f.doc.SetTitle("Set by code")
	release()
	f.doc.SetTitle("Unobserved")

	assert.Equal(t, []string{"Renamed", "Set by code"}, seen)
	assert.Equal(t, "Unobserved", f.doc.Title())
}

func TestDocument_TitleSurvivesDestroy(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.SetTitle("Last")

	require.NoError(t, f.doc.Dispose(context.Background()))

	assert.Equal(t, "Last", f.doc.Title())
	f.doc.SetTitle("ignored")
	assert.Equal(t, "Last", f.doc.Title())
}

func TestDocument_CloseWithoutDestroyHides(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.Show()

	require.NoError(t, f.doc.Close(context.Background(), true))

	assert.Equal(t, domain.DocumentHidden, f.doc.State())
	assert.Equal(t, 1, f.manager.Count())
	assert.Zero(t, f.content.count("close"), "forced close skips the veto check")
	assert.Zero(t, f.content.count("dispose"))
}

func TestDocument_CloseWithDestroyDisposes(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.SetDestroyOnClose(true)
	f.doc.Show()

	require.NoError(t, f.doc.Close(context.Background(), false))

	assert.Equal(t, domain.DocumentDestroyed, f.doc.State())
	assert.Equal(t, []string{"close", "dispose", "destroy"}, f.content.Calls())
	assert.Equal(t, 0, f.manager.Count())
}

func TestDocument_CloseVetoed(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.SetDestroyOnClose(true)
	f.doc.Show()
	f.content.setVeto(true)

	require.NoError(t, f.doc.Close(context.Background(), false))

	s, ok := f.container.slot(f.doc.Slot())
	require.True(t, ok)
	assert.True(t, s.visible)
	assert.Equal(t, domain.DocumentVisible, f.doc.State())
	assert.Equal(t, 1, f.manager.Count())
	assert.Equal(t, []string{"close"}, f.content.Calls())
}

func TestDocument_ForceCloseIgnoresVeto(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.SetDestroyOnClose(true)
	f.content.setVeto(true)

	require.NoError(t, f.doc.Close(context.Background(), true))

	assert.Equal(t, domain.DocumentDestroyed, f.doc.State())
}

func TestDocument_DisposeOrder(t *testing.T) {
	f := newDocumentFixture(t)
	slot := f.doc.Slot()

	var slotAtDestroy, watchersAtDestroy int
	f.content.onDestroy = func() {
		if _, ok := f.container.slot(slot); ok {
			slotAtDestroy = 1
		}
		watchersAtDestroy = f.container.watcherCount(slot)
	}

	require.NoError(t, f.doc.Dispose(context.Background()))

	assert.Equal(t, []string{"dispose", "destroy"}, f.content.Calls())
	assert.Zero(t, slotAtDestroy, "slot removed before the destroy hook")
	assert.Zero(t, watchersAtDestroy, "header watch released before the destroy hook")
	assert.Equal(t, 1, f.resolver.unbindCount())
	assert.Equal(t, domain.DocumentDestroyed, f.doc.State())
	assert.Nil(t, f.doc.Content())
	assert.Empty(t, f.doc.Slot())

	select {
	case <-f.doc.Done():
	default:
		t.Fatal("Done not closed after dispose")
	}
}

func TestDocument_CreateThenDisposeIsNetZero(t *testing.T) {
	container := newMockContainer()
	m := NewManager(container, newMockResolver("note"))
	before := m.Count()

	doc, err := m.CreateDocument(context.Background(), "note", &mockContent{}, nil, nil)
	require.NoError(t, err)
	slot := doc.Slot()
	view := container.SlotContent(slot).(*mockView)

	require.NoError(t, doc.Dispose(context.Background()))

	assert.Equal(t, before, m.Count())
	assert.Nil(t, container.SlotContent(slot))
	assert.Nil(t, view.Model())
	_, ok := container.slot(slot)
	assert.False(t, ok)
}

func TestDocument_DisposeErrorStillTearsDown(t *testing.T) {
	f := newDocumentFixture(t)
	boom := errors.New("flush failed")
	f.content.disposeErr = boom
	f.doc.SetID("doc-1")

	err := f.doc.Dispose(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrContentDisposal)
	assert.ErrorIs(t, err, boom)
	var cde *domain.ContentDisposalError
	require.ErrorAs(t, err, &cde)
	assert.Equal(t, "doc-1", cde.DocumentID)

	assert.Equal(t, domain.DocumentDestroyed, f.doc.State())
	assert.Equal(t, 0, f.manager.Count())
	assert.Equal(t, []string{"dispose", "destroy"}, f.content.Calls())
}

func TestDocument_ConcurrentTeardownRunsOnce(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.SetDestroyOnClose(true)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = f.doc.Close(context.Background(), true)
			} else {
				_ = f.doc.Dispose(context.Background())
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, f.content.count("dispose"))
	assert.Equal(t, 1, f.content.count("destroy"))
	assert.Equal(t, 1, f.resolver.unbindCount())
	assert.Equal(t, domain.DocumentDestroyed, f.doc.State())
}

func TestDocument_DestroyedIsTerminal(t *testing.T) {
	f := newDocumentFixture(t)
	require.NoError(t, f.doc.Dispose(context.Background()))

	f.doc.Show()
	f.doc.Hide()
	require.NoError(t, f.doc.Close(context.Background(), false))
	require.NoError(t, f.doc.Dispose(context.Background()))

	assert.Equal(t, domain.DocumentDestroyed, f.doc.State())
	assert.Equal(t, 0, f.manager.Count())
	assert.Equal(t, 1, f.content.count("destroy"))
}

func TestDocument_Info(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.SetID("doc-1")
	f.doc.SetTitle("Notes")
	require.NoError(t, f.manager.SetActiveDocument(f.doc))

	info := f.doc.Info()

	assert.Equal(t, domain.DocumentInfo{
		ID:          "doc-1",
		Title:       "Notes",
		ContentType: "note",
		State:       domain.DocumentVisible,
		Active:      true,
	}, info)
}

func TestDocument_CloseHandlerDisposes(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.Show()
	f.content.onClose = func() {
		_ = f.doc.Dispose(context.Background())
	}

	var kinds []domain.DocumentEventKind
	release := f.manager.OnDocumentEvent(func(ev domain.DocumentEvent) { kinds = append(kinds, ev.Kind) })
	defer release()

	require.NoError(t, f.doc.Close(context.Background(), false))

	assert.Equal(t, domain.DocumentDestroyed, f.doc.State())
	assert.Equal(t, 0, f.manager.Count())
	assert.Equal(t, []domain.DocumentEventKind{domain.EventDestroyed}, kinds)
	assert.Equal(t, []string{"close", "dispose", "destroy"}, f.content.Calls())
}

func TestDocument_DisposeWhileCloseHandlerRuns(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.Show()
	entered := make(chan struct{})
	unblock := make(chan struct{})
	f.content.onClose = func() {
		close(entered)
		<-unblock
	}

	closed := make(chan error, 1)
	go func() { closed <- f.doc.Close(context.Background(), false) }()
	<-entered

	require.NoError(t, f.doc.Dispose(context.Background()))
	close(unblock)
	require.NoError(t, <-closed)

	assert.Equal(t, domain.DocumentDestroyed, f.doc.State())
	assert.Empty(t, f.doc.Slot())
	assert.Equal(t, 0, f.manager.Count())
	assert.Equal(t, 1, f.content.count("destroy"))
}

// closeOnSelect closes a document as soon as the container selects it.
type closeOnSelect struct {
	doc driving.Document
}

func (l *closeOnSelect) SelectionChanged(driven.SlotID) {
	_ = l.doc.Close(context.Background(), true)
}
func (l *closeOnSelect) SlotClosing(driven.SlotID) bool { return false }
func (l *closeOnSelect) SlotRemoved(driven.SlotID)      {}

func TestDocument_ShowDoesNotUndoOverlappingClose(t *testing.T) {
	f := newDocumentFixture(t)
	slot := f.doc.Slot()
	release := f.container.Subscribe(&closeOnSelect{doc: f.doc})
	defer release()

	f.doc.Show()

	assert.Equal(t, domain.DocumentHidden, f.doc.State())
	s, ok := f.container.slot(slot)
	require.True(t, ok)
	assert.False(t, s.visible)
}

func TestDocument_UnregisteredBeforeDestroyNotifications(t *testing.T) {
	f := newDocumentFixture(t)
	f.doc.SetID("k")

	var atDestroyHook, atEvent driving.Document
	var countAtEvent int
	f.content.onDestroy = func() {
		atDestroyHook = f.manager.FindDocumentByID("k", "")
	}
	release := f.manager.OnDocumentEvent(func(ev domain.DocumentEvent) {
		if ev.Kind == domain.EventDestroyed {
			atEvent = f.manager.FindDocumentByID("k", "")
			countAtEvent = f.manager.Count()
		}
	})
	defer release()

	require.NoError(t, f.doc.Dispose(context.Background()))

	assert.Nil(t, atDestroyHook)
	assert.Nil(t, atEvent)
	assert.Zero(t, countAtEvent)
}

func TestDocument_RemovalSeenBeforeDestroyedState(t *testing.T) {
	f := newDocumentFixture(t)

	var stateAtRemoval domain.DocumentState
	release := f.manager.Registry().OnChange(func(c domain.RegistryChange) {
		if !c.Added {
			stateAtRemoval = f.doc.State()
		}
	})
	defer release()

	require.NoError(t, f.doc.Dispose(context.Background()))

	assert.NotEqual(t, domain.DocumentDestroyed, stateAtRemoval)
	select {
	case <-f.doc.Done():
	default:
		t.Fatal("Done not closed after dispose")
	}
}
