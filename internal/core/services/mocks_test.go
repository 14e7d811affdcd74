package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// mockContainer is a synchronous in-memory container that records calls.
type mockContainer struct {
	mu          sync.Mutex
	nextSlot    int
	nextSub     int
	slots       map[driven.SlotID]*mockSlot
	order       []driven.SlotID
	selected    driven.SlotID
	listeners   map[int]driven.ContainerListener
	watchers    map[driven.SlotID]map[int]func(string)
	selectCalls int
}

type mockSlot struct {
	header   string
	closable bool
	visible  bool
	content  driven.View
}

var _ driven.Container = (*mockContainer)(nil)

func newMockContainer() *mockContainer {
	return &mockContainer{
		slots:     make(map[driven.SlotID]*mockSlot),
		listeners: make(map[int]driven.ContainerListener),
		watchers:  make(map[driven.SlotID]map[int]func(string)),
	}
}

func (c *mockContainer) AddSlot(opts driven.SlotOptions) driven.SlotID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSlot++
	id := driven.SlotID(fmt.Sprintf("slot-%d", c.nextSlot))
	c.slots[id] = &mockSlot{header: opts.Header, closable: opts.Closable, visible: opts.Visible}
	c.order = append(c.order, id)
	return id
}

func (c *mockContainer) RemoveSlot(id driven.SlotID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *mockContainer) removeLocked(id driven.SlotID) {
	delete(c.slots, id)
	delete(c.watchers, id)
	for i, s := range c.order {
		if s == id {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
	if c.selected == id {
		c.selected = ""
	}
}

func (c *mockContainer) SetSlotContent(id driven.SlotID, view driven.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[id]; ok {
		s.content = view
	}
}

func (c *mockContainer) SlotContent(id driven.SlotID) driven.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[id]; ok {
		return s.content
	}
	return nil
}

func (c *mockContainer) SetSlotVisible(id driven.SlotID, visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[id]; ok {
		s.visible = visible
	}
}

func (c *mockContainer) SelectSlot(id driven.SlotID) {
	c.mu.Lock()
	c.selectCalls++
	if _, ok := c.slots[id]; !ok || c.selected == id {
		c.mu.Unlock()
		return
	}
	c.selected = id
	listeners := c.listenerSnapshot()
	c.mu.Unlock()

	for _, l := range listeners {
		l.SelectionChanged(id)
	}
}

func (c *mockContainer) Selected() driven.SlotID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *mockContainer) SetSlotHeader(id driven.SlotID, header string) {
	c.mu.Lock()
	s, ok := c.slots[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	s.header = header
	var fns []func(string)
	for _, fn := range c.watchers[id] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(header)
	}
}

func (c *mockContainer) SlotHeader(id driven.SlotID) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.slots[id]; ok {
		return s.header
	}
	return ""
}

func (c *mockContainer) WatchHeader(id driven.SlotID, fn func(string)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSub++
	sub := c.nextSub
	if c.watchers[id] == nil {
		c.watchers[id] = make(map[int]func(string))
	}
	c.watchers[id][sub] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.watchers[id], sub)
	}
}

func (c *mockContainer) Subscribe(l driven.ContainerListener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSub++
	sub := c.nextSub
	c.listeners[sub] = l
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, sub)
	}
}

func (c *mockContainer) listenerSnapshot() []driven.ContainerListener {
	out := make([]driven.ContainerListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		out = append(out, l)
	}
	return out
}

// userSelect selects a slot the way a click on the tab would.
func (c *mockContainer) userSelect(id driven.SlotID) {
	c.SelectSlot(id)
}

// userClose removes a slot the way the close glyph would, asking
// listeners first. Returns false when the close was vetoed.
func (c *mockContainer) userClose(id driven.SlotID) bool {
	c.mu.Lock()
	listeners := c.listenerSnapshot()
	c.mu.Unlock()

	for _, l := range listeners {
		if l.SlotClosing(id) {
			return false
		}
	}

	c.mu.Lock()
	c.removeLocked(id)
	c.mu.Unlock()

	for _, l := range listeners {
		l.SlotRemoved(id)
	}
	return true
}

func (c *mockContainer) slot(id driven.SlotID) (mockSlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.slots[id]
	if !ok {
		return mockSlot{}, false
	}
	return *s, true
}

func (c *mockContainer) listenerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

func (c *mockContainer) watcherCount(id driven.SlotID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.watchers[id])
}

func (c *mockContainer) selectCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectCalls
}

// mockView is a view that records its bound model.
type mockView struct {
	mu          sync.Mutex
	contentType string
	model       any
	parameter   any
}

var _ driven.View = (*mockView)(nil)

func (v *mockView) Model() any {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.model
}

// mockResolver resolves the registered content types to mock views.
type mockResolver struct {
	mu      sync.Mutex
	types   map[string]bool
	bindErr error
	unbinds int
}

var _ driven.ViewResolver = (*mockResolver)(nil)

func newMockResolver(types ...string) *mockResolver {
	r := &mockResolver{types: make(map[string]bool)}
	for _, t := range types {
		r.types[t] = true
	}
	return r
}

func (r *mockResolver) ResolveView(contentType string) (driven.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.types[contentType] {
		return nil, domain.ResolutionError(contentType)
	}
	return &mockView{contentType: contentType}, nil
}

func (r *mockResolver) BindView(view driven.View, model, parameter, _ any) error {
	r.mu.Lock()
	err := r.bindErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	v := view.(*mockView)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.model = model
	v.parameter = parameter
	return nil
}

func (r *mockResolver) UnbindView(view driven.View) {
	r.mu.Lock()
	r.unbinds++
	r.mu.Unlock()
	v := view.(*mockView)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.model = nil
	v.parameter = nil
}

func (r *mockResolver) unbindCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unbinds
}

// mockContent implements every content hook and records the calls it receives.
type mockContent struct {
	mu         sync.Mutex
	name       string
	veto       bool
	initErr    error
	initBlock  chan struct{}
	disposeErr error
	calls      []string
	onClose    func()
	onDestroy  func()
	parameter  string
}

var (
	_ driven.Initializer  = (*mockContent)(nil)
	_ driven.Disposer     = (*mockContent)(nil)
	_ driven.CloseHandler = (*mockContent)(nil)
	_ driven.Destroyer    = (*mockContent)(nil)
	_ driven.Persister    = (*mockContent)(nil)
)

func (c *mockContent) record(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func (c *mockContent) Initialize(ctx context.Context) error {
	c.record("initialize")
	if c.initBlock != nil {
		select {
		case <-c.initBlock:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return c.initErr
}

func (c *mockContent) Dispose(context.Context) error {
	c.record("dispose")
	return c.disposeErr
}

func (c *mockContent) OnClose(ev *domain.CloseEvent) {
	c.record("close")
	if c.onClose != nil {
		c.onClose()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ev.Cancel = c.veto
}

func (c *mockContent) OnDestroy() {
	c.record("destroy")
	if c.onDestroy != nil {
		c.onDestroy()
	}
}

func (c *mockContent) SessionParameter() string {
	return c.parameter
}

func (c *mockContent) setVeto(veto bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.veto = veto
}

func (c *mockContent) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}

func (c *mockContent) count(call string) int {
	n := 0
	for _, got := range c.Calls() {
		if got == call {
			n++
		}
	}
	return n
}
