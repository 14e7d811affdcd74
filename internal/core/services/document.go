package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// Ensure tabbedDocument implements the interface.
var _ driving.Document = (*tabbedDocument)(nil)

// documentHooks lets the owning manager observe a document without the
// document depending on the manager.
type documentHooks struct {
	event    func(kind domain.DocumentEventKind, d *tabbedDocument)
	isActive func(d *tabbedDocument) bool
}

// tabbedDocument is a document hosted in one container slot.
type tabbedDocument struct {
	container   driven.Container
	resolver    driven.ViewResolver
	registry    *Registry
	hooks       documentHooks
	contentType string
	lifetime    *Lifetime
	done        chan struct{}
	titles      observerList[string]

	mu             sync.Mutex
	id             string
	title          string
	content        any
	view           driven.View
	slot           driven.SlotID
	state          domain.DocumentState
	destroyOnClose bool
	closing        bool
	disposing      bool
	// transitions counts state writes so a caller that dropped the lock
	// can tell whether someone else moved the document meanwhile.
	transitions uint64
}

type documentParams struct {
	container   driven.Container
	resolver    driven.ViewResolver
	registry    *Registry
	hooks       documentHooks
	contentType string
	content     any
	view        driven.View
	slot        driven.SlotID
}

// newTabbedDocument wires a document to its slot and registers it.
// The slot must already hold the view.
func newTabbedDocument(p documentParams) *tabbedDocument {
	d := &tabbedDocument{
		container:   p.container,
		resolver:    p.resolver,
		registry:    p.registry,
		hooks:       p.hooks,
		contentType: p.contentType,
		lifetime:    NewLifetime(),
		done:        make(chan struct{}),
		content:     p.content,
		view:        p.view,
		slot:        p.slot,
		state:       domain.DocumentHidden,
	}
	d.title = p.container.SlotHeader(p.slot)

	// Released last: the document leaves the registry before its destroy
	// hook runs and before it is marked destroyed.
	d.lifetime.AddBracket(func() { d.registry.add(d) }, func() { d.registry.remove(d) })

	slot := p.slot
	d.lifetime.Add(func() { d.container.RemoveSlot(slot) })
	d.lifetime.Add(d.container.WatchHeader(slot, d.headerChanged))
	return d
}

func (d *tabbedDocument) ID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

func (d *tabbedDocument) SetID(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.id = id
}

// Title returns the slot header, or the last observed header once destroyed.
func (d *tabbedDocument) Title() string {
	d.mu.Lock()
	slot, title := d.slot, d.title
	d.mu.Unlock()
	if slot == "" {
		return title
	}
	return d.container.SlotHeader(slot)
}

// SetTitle writes the slot header. Observers are notified through the
// header watch.
func (d *tabbedDocument) SetTitle(title string) {
	d.mu.Lock()
	slot := d.slot
	d.mu.Unlock()
	if slot == "" {
		return
	}
	d.container.SetSlotHeader(slot, title)
}

func (d *tabbedDocument) headerChanged(header string) {
	d.mu.Lock()
	if d.state == domain.DocumentDestroyed {
		d.mu.Unlock()
		return
	}
	d.title = header
	d.mu.Unlock()
	d.titles.notify(header)
}

func (d *tabbedDocument) OnTitleChanged(fn func(title string)) (release func()) {
	return d.titles.add(fn)
}

func (d *tabbedDocument) ContentType() string {
	return d.contentType
}

func (d *tabbedDocument) Content() any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

func (d *tabbedDocument) Slot() driven.SlotID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slot
}

func (d *tabbedDocument) DestroyOnClose() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyOnClose
}

func (d *tabbedDocument) SetDestroyOnClose(destroy bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyOnClose = destroy
}

func (d *tabbedDocument) State() domain.DocumentState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *tabbedDocument) Done() <-chan struct{} {
	return d.done
}

// Info returns a snapshot of the document.
func (d *tabbedDocument) Info() domain.DocumentInfo {
	d.mu.Lock()
	info := domain.DocumentInfo{
		ID:             d.id,
		ContentType:    d.contentType,
		State:          d.state,
		DestroyOnClose: d.destroyOnClose,
	}
	d.mu.Unlock()

	info.Title = d.Title()
	if d.hooks.isActive != nil {
		info.Active = d.hooks.isActive(d)
	}
	return info
}

// Show makes the slot visible if hidden, then selects it.
func (d *tabbedDocument) Show() {
	d.mu.Lock()
	if d.state == domain.DocumentDestroyed || d.disposing {
		d.mu.Unlock()
		return
	}
	slot, wasHidden, seen := d.slot, d.state == domain.DocumentHidden, d.transitions
	d.mu.Unlock()

	if wasHidden {
		d.container.SetSlotVisible(slot, true)
	}
	d.container.SelectSlot(slot)

	d.mu.Lock()
	if d.state == domain.DocumentDestroyed || d.disposing || d.transitions != seen {
		d.mu.Unlock()
		return
	}
	d.setStateLocked(domain.DocumentVisible)
	d.mu.Unlock()

	if wasHidden {
		d.emit(domain.EventShown)
	}
}

// Hide hides the slot of a visible document.
func (d *tabbedDocument) Hide() {
	d.mu.Lock()
	if d.state != domain.DocumentVisible || d.disposing {
		d.mu.Unlock()
		return
	}
	slot := d.slot
	d.setStateLocked(domain.DocumentHidden)
	d.mu.Unlock()

	d.container.SetSlotVisible(slot, false)
	d.emit(domain.EventHidden)
}

// Close hides the document and disposes it when DestroyOnClose is set.
// Overlapping calls collapse into the one already in flight.
func (d *tabbedDocument) Close(ctx context.Context, force bool) error {
	d.mu.Lock()
	if d.state == domain.DocumentDestroyed || d.closing || d.disposing {
		d.mu.Unlock()
		return nil
	}
	d.closing = true
	id, content := d.id, d.content
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.closing = false
		d.mu.Unlock()
	}()

	if !force {
		if h, ok := content.(driven.CloseHandler); ok {
			ev := &domain.CloseEvent{DocumentID: id, ContentType: d.contentType}
			h.OnClose(ev)
			if ev.Cancel {
				return nil
			}
		}
	}

	d.mu.Lock()
	// The close handler may have disposed the document, or a Dispose may
	// have started while the lock was dropped.
	if d.state == domain.DocumentDestroyed || d.disposing {
		d.mu.Unlock()
		return nil
	}
	slot := d.slot
	d.setStateLocked(domain.DocumentHidden)
	destroy := d.destroyOnClose
	d.mu.Unlock()

	d.container.SetSlotVisible(slot, false)
	d.emit(domain.EventClosed)

	if destroy {
		return d.Dispose(ctx)
	}
	return nil
}

// Dispose tears the document down. Bookkeeping is always released; a
// content disposal failure is returned after teardown completes.
func (d *tabbedDocument) Dispose(ctx context.Context) error {
	d.mu.Lock()
	if d.state == domain.DocumentDestroyed || d.disposing {
		d.mu.Unlock()
		return nil
	}
	d.disposing = true
	id, slot, view, content := d.id, d.slot, d.view, d.content
	d.mu.Unlock()

	d.container.SetSlotContent(slot, nil)
	if view != nil {
		d.resolver.UnbindView(view)
	}

	var disposeErr error
	if dc, ok := content.(driven.Disposer); ok {
		if err := dc.Dispose(ctx); err != nil {
			disposeErr = &domain.ContentDisposalError{
				DocumentID:  id,
				ContentType: d.contentType,
				Err:         err,
			}
		}
	}

	// Drops the header watch, removes the slot and unregisters.
	d.lifetime.Release()

	if ds, ok := content.(driven.Destroyer); ok {
		ds.OnDestroy()
	}

	d.mu.Lock()
	d.setStateLocked(domain.DocumentDestroyed)
	d.content = nil
	d.view = nil
	d.slot = ""
	d.mu.Unlock()
	close(d.done)

	d.emit(domain.EventDestroyed)
	return disposeErr
}

func (d *tabbedDocument) setStateLocked(state domain.DocumentState) {
	d.state = state
	d.transitions++
}

func (d *tabbedDocument) emit(kind domain.DocumentEventKind) {
	if d.hooks.event != nil {
		d.hooks.event(kind, d)
	}
}
