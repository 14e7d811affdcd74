package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Ensure Manager implements the interface.
var _ driving.DocumentManager = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithSettings sets the document settings used for new documents.
func WithSettings(settings domain.DocumentSettings) Option {
	return func(m *Manager) {
		m.settings = settings
	}
}

// WithRegistry shares a registry with the manager.
func WithRegistry(r *Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithClock overrides the clock used to stamp document events.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

type activeChange struct {
	old, current driving.Document
}

// Manager creates documents in a container, tracks the active document and
// keeps it in step with the container's selection, and drains every
// document on shutdown.
type Manager struct {
	container driven.Container
	resolver  driven.ViewResolver
	registry  *Registry
	now       func() time.Time
	subs      *Lifetime

	// setMu serialises SetActiveDocument so concurrent callers cannot
	// interleave their Show calls.
	setMu sync.Mutex

	mu       sync.Mutex
	settings domain.DocumentSettings
	active   *tabbedDocument
	changing bool
	closed   bool
	// drainers counts Shutdown calls in progress. emptied is set once any
	// of them saw the registry drain; settled once background work may no
	// longer be added.
	drainers int
	emptied  bool
	settled  bool

	activeObservers observerList[activeChange]
	countObservers  observerList[int]
	eventObservers  observerList[domain.DocumentEvent]

	background sync.WaitGroup
}

// NewManager creates a manager hosting documents in container and
// subscribes to the container's notifications.
func NewManager(container driven.Container, resolver driven.ViewResolver, opts ...Option) *Manager {
	m := &Manager{
		container: container,
		resolver:  resolver,
		registry:  NewRegistry(),
		now:       time.Now,
		subs:      NewLifetime(),
		settings:  domain.DefaultDocumentSettings(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.subs.Add(m.registry.OnChange(m.registryChanged))
	m.subs.Add(container.Subscribe(&containerListener{m: m}))
	return m
}

// Registry returns the manager's registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// ApplySettings replaces the settings used for new documents.
// Existing documents keep their slots as they are.
func (m *Manager) ApplySettings(settings domain.DocumentSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings
}

// Settings returns the settings used for new documents.
func (m *Manager) Settings() domain.DocumentSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// CreateDocument resolves a view for the content, binds it, places it in a
// new hidden slot and returns the registered, hidden document.
func (m *Manager) CreateDocument(
	ctx context.Context,
	contentType string,
	model, parameter, parent any,
) (driving.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	closed, settings := m.closed, m.settings
	m.mu.Unlock()
	if closed {
		return nil, domain.ErrManagerClosed
	}

	if contentType == "" {
		contentType = settings.FallbackContentType
	}

	view, err := m.resolver.ResolveView(contentType)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ResolutionError(contentType)
	}
	if err := m.resolver.BindView(view, model, parameter, parent); err != nil {
		return nil, fmt.Errorf("bind view for %q: %w", contentType, err)
	}

	title := settings.DefaultTitle
	if title == "" {
		title = domain.DefaultDocumentTitle
	}
	slot := m.container.AddSlot(driven.SlotOptions{
		Header:   title,
		Closable: settings.CloseButtonEnabled,
	})
	m.container.SetSlotContent(slot, view)

	doc := newTabbedDocument(documentParams{
		container:   m.container,
		resolver:    m.resolver,
		registry:    m.registry,
		hooks:       documentHooks{event: m.documentEvent, isActive: m.isActive},
		contentType: contentType,
		content:     model,
		view:        view,
		slot:        slot,
	})

	logger.Debug("document created in slot %s (content type %q)", slot, contentType)
	m.documentEvent(domain.EventCreated, doc)
	return doc, nil
}

// ActiveDocument returns the active document, or nil.
func (m *Manager) ActiveDocument() driving.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return asDocument(m.active)
}

// SetActiveDocument makes doc active and shows it. Passing nil clears the
// active document and leaves every document as it is.
func (m *Manager) SetActiveDocument(doc driving.Document) error {
	var target *tabbedDocument
	if doc != nil {
		td, ok := doc.(*tabbedDocument)
		if !ok || td == nil || !m.registry.contains(td) {
			return fmt.Errorf("%w: document is not registered", domain.ErrInvalidState)
		}
		target = td
	}

	m.setMu.Lock()
	defer m.setMu.Unlock()

	m.mu.Lock()
	if m.active == target {
		m.mu.Unlock()
		return nil
	}
	if target != nil && target.State() == domain.DocumentDestroyed {
		m.mu.Unlock()
		return fmt.Errorf("%w: document is destroyed", domain.ErrInvalidState)
	}
	old := m.active
	m.active = target
	show := target != nil && !m.changing
	if show {
		m.changing = true
	}
	m.mu.Unlock()

	if show {
		target.Show()
		m.mu.Lock()
		m.changing = false
		m.mu.Unlock()
	}

	m.activeChanged(old, target)
	return nil
}

// FindDocumentByID returns the first document with the key.
func (m *Manager) FindDocumentByID(id, contentType string) driving.Document {
	return m.registry.FindByID(id, contentType)
}

// FindDocumentByContent returns the document bound to model.
func (m *Manager) FindDocumentByContent(model any) driving.Document {
	return m.registry.FindByContent(model)
}

// Documents returns the registered documents in insertion order.
func (m *Manager) Documents() []driving.Document {
	return m.registry.All()
}

// Count returns the number of registered documents.
func (m *Manager) Count() int {
	return m.registry.Len()
}

// OnCountChanged observes registry size changes.
func (m *Manager) OnCountChanged(fn func(count int)) (release func()) {
	return m.countObservers.add(fn)
}

// OnActiveDocumentChanged observes active document changes.
func (m *Manager) OnActiveDocumentChanged(fn func(old, current driving.Document)) (release func()) {
	return m.activeObservers.add(func(c activeChange) {
		fn(c.old, c.current)
	})
}

// OnDocumentEvent observes lifecycle transitions of every document.
func (m *Manager) OnDocumentEvent(fn func(ev domain.DocumentEvent)) (release func()) {
	return m.eventObservers.add(fn)
}

// Shutdown force-closes every document concurrently and waits until the
// registry is empty. Documents that survive their close (DestroyOnClose
// unset) keep Shutdown waiting until they are disposed or ctx is done.
// Close failures are joined and returned once the drain completes.
// Concurrent callers share the drain; the last one to return after the
// registry emptied releases the manager's subscriptions.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.drainers++
	m.mu.Unlock()

	drained, err := m.drain(ctx)

	m.mu.Lock()
	m.drainers--
	if drained {
		m.emptied = true
	}
	last := m.emptied && m.drainers == 0
	if last {
		m.settled = true
	}
	m.mu.Unlock()

	if last {
		m.background.Wait()
		m.subs.Release()
	}
	return err
}

// drain closes every registered document and waits for the registry to
// empty. The flag reports whether it did.
func (m *Manager) drain(ctx context.Context) (bool, error) {
	docs := m.registry.snapshot()
	if len(docs) > 0 {
		logger.Section("Shutdown")
		logger.Debug("closing %d documents", len(docs))
	}

	var (
		wg     sync.WaitGroup
		errsMu sync.Mutex
		errs   []error
	)
	for _, d := range docs {
		wg.Add(1)
		go func(d *tabbedDocument) {
			defer wg.Done()
			if err := d.Close(ctx, true); err != nil {
				errsMu.Lock()
				errs = append(errs, err)
				errsMu.Unlock()
			}
		}(d)
	}
	wg.Wait()

	if n := m.registry.Len(); n > 0 {
		logger.Debug("waiting for %d documents to be destroyed", n)
		if err := m.registry.WaitEmpty(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain documents: %w", err))
			return false, errors.Join(errs...)
		}
	}
	return true, errors.Join(errs...)
}

func (m *Manager) isActive(d *tabbedDocument) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active == d
}

func (m *Manager) registryChanged(c domain.RegistryChange) {
	if !c.Added {
		m.mu.Lock()
		var old *tabbedDocument
		if m.active != nil && !m.registry.contains(m.active) {
			old = m.active
			m.active = nil
		}
		m.mu.Unlock()
		if old != nil {
			m.activeChanged(old, nil)
		}
	}
	m.countObservers.notify(c.Count)
}

func (m *Manager) activeChanged(old, current *tabbedDocument) {
	if current != nil {
		m.documentEvent(domain.EventActivated, current)
	}
	m.activeObservers.notify(activeChange{old: asDocument(old), current: asDocument(current)})
}

func (m *Manager) documentEvent(kind domain.DocumentEventKind, d *tabbedDocument) {
	if m.eventObservers.len() == 0 {
		return
	}
	m.eventObservers.notify(domain.DocumentEvent{
		ID:          uuid.New().String(),
		DocumentID:  d.ID(),
		ContentType: d.ContentType(),
		Title:       d.Title(),
		Kind:        kind,
		At:          m.now(),
	})
}

// selectionChanged follows a selection made in the container.
func (m *Manager) selectionChanged(slot driven.SlotID) {
	m.mu.Lock()
	guarded := m.changing
	m.mu.Unlock()
	if guarded {
		return
	}

	var target *tabbedDocument
	if slot != "" {
		target = m.registry.findBySlot(slot)
		if target == nil {
			logger.Debug("selection moved to unknown slot %s", slot)
			return
		}
	}

	m.mu.Lock()
	if m.changing || m.active == target {
		m.mu.Unlock()
		return
	}
	old := m.active
	m.active = target
	m.mu.Unlock()

	m.activeChanged(old, target)
}

// slotClosing forwards a user close request to the content.
func (m *Manager) slotClosing(slot driven.SlotID) bool {
	d := m.registry.findBySlot(slot)
	if d == nil {
		return false
	}
	h, ok := d.Content().(driven.CloseHandler)
	if !ok {
		return false
	}
	ev := &domain.CloseEvent{DocumentID: d.ID(), ContentType: d.ContentType()}
	h.OnClose(ev)
	return ev.Cancel
}

// slotRemoved force-closes the document whose slot the container dropped.
func (m *Manager) slotRemoved(slot driven.SlotID) {
	d := m.registry.findBySlot(slot)
	if d == nil {
		logger.Warn("container removed slot %s with no registered document", slot)
		return
	}

	teardown := func() {
		ctx := context.Background()
		if err := d.Close(ctx, true); err != nil {
			logger.Error("close document %q after slot removal: %v", d.ID(), err)
		}
		if d.State() != domain.DocumentDestroyed {
			if err := d.Dispose(ctx); err != nil {
				logger.Error("dispose document %q after slot removal: %v", d.ID(), err)
			}
		}
	}

	// Once Shutdown is waiting on background work nothing may be added.
	m.mu.Lock()
	if m.settled {
		m.mu.Unlock()
		teardown()
		return
	}
	m.background.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.background.Done()
		teardown()
	}()
}

// containerListener adapts container notifications to the manager.
type containerListener struct {
	m *Manager
}

var _ driven.ContainerListener = (*containerListener)(nil)

func (l *containerListener) SelectionChanged(id driven.SlotID) { l.m.selectionChanged(id) }
func (l *containerListener) SlotClosing(id driven.SlotID) bool  { return l.m.slotClosing(id) }
func (l *containerListener) SlotRemoved(id driven.SlotID)       { l.m.slotRemoved(id) }

func asDocument(d *tabbedDocument) driving.Document {
	if d == nil {
		return nil
	}
	return d
}
