package tabstrip

import (
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Ensure Strip implements the interface.
var _ driven.Container = (*Strip)(nil)

// Tab is a snapshot of one slot for rendering.
type Tab struct {
	ID       driven.SlotID
	Header   string
	Closable bool
	Visible  bool
	Selected bool
	Content  driven.View
}

type slot struct {
	id       driven.SlotID
	header   string
	closable bool
	visible  bool
	content  driven.View
	watchers map[uint64]func(string)
}

type listenerEntry struct {
	id uint64
	l  driven.ContainerListener
}

// Option configures a Strip.
type Option func(*Strip)

// WithOnChange registers a callback invoked after every mutation, outside
// the strip's lock. The TUI uses it to schedule a redraw.
func WithOnChange(fn func()) Option {
	return func(s *Strip) {
		s.onChange = fn
	}
}

// Strip is an ordered set of slots with at most one selected.
type Strip struct {
	onChange func()

	mu        sync.Mutex
	slots     []*slot
	selected  driven.SlotID
	listeners []listenerEntry
	nextID    uint64
}

// New creates an empty strip.
func New(opts ...Option) *Strip {
	s := &Strip{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddSlot appends a slot and returns its ID.
func (s *Strip) AddSlot(opts driven.SlotOptions) driven.SlotID {
	id := driven.SlotID(uuid.NewString())

	s.mu.Lock()
	s.slots = append(s.slots, &slot{
		id:       id,
		header:   opts.Header,
		closable: opts.Closable,
		visible:  opts.Visible,
		watchers: make(map[uint64]func(string)),
	})
	s.mu.Unlock()

	s.changed()
	return id
}

// RemoveSlot removes a slot without reporting SlotRemoved. When the slot
// was selected the selection moves to the nearest visible neighbour.
func (s *Strip) RemoveSlot(id driven.SlotID) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	moved, next := s.removeLocked(idx)
	listeners := s.listenersLocked()
	s.mu.Unlock()

	if moved {
		notifySelection(listeners, next)
	}
	s.changed()
}

// SetSlotContent places a view in a slot.
func (s *Strip) SetSlotContent(id driven.SlotID, view driven.View) {
	s.mu.Lock()
	sl := s.slotLocked(id)
	if sl == nil {
		s.mu.Unlock()
		return
	}
	sl.content = view
	s.mu.Unlock()

	s.changed()
}

// SlotContent returns the view in a slot, or nil.
func (s *Strip) SlotContent(id driven.SlotID) driven.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl := s.slotLocked(id); sl != nil {
		return sl.content
	}
	return nil
}

// SetSlotVisible shows or hides a slot. Hiding the selected slot moves the
// selection to the nearest visible neighbour.
func (s *Strip) SetSlotVisible(id driven.SlotID, visible bool) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 || s.slots[idx].visible == visible {
		s.mu.Unlock()
		return
	}
	s.slots[idx].visible = visible

	var moved bool
	var next driven.SlotID
	if !visible && s.selected == id {
		next = s.neighbourLocked(idx)
		s.selected = next
		moved = true
	}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	if moved {
		notifySelection(listeners, next)
	}
	s.changed()
}

// SelectSlot selects a slot. SelectionChanged is reported only when the
// selection moves.
func (s *Strip) SelectSlot(id driven.SlotID) {
	s.mu.Lock()
	if s.slotLocked(id) == nil || s.selected == id {
		s.mu.Unlock()
		return
	}
	s.selected = id
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notifySelection(listeners, id)
	s.changed()
}

// Selected returns the selected slot, or "".
func (s *Strip) Selected() driven.SlotID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SetSlotHeader writes a slot header and notifies its watchers.
func (s *Strip) SetSlotHeader(id driven.SlotID, header string) {
	s.mu.Lock()
	sl := s.slotLocked(id)
	if sl == nil || sl.header == header {
		s.mu.Unlock()
		return
	}
	sl.header = header
	watchers := make([]func(string), 0, len(sl.watchers))
	for _, fn := range sl.watchers {
		watchers = append(watchers, fn)
	}
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(header)
	}
	s.changed()
}

// SlotHeader returns a slot header.
func (s *Strip) SlotHeader(id driven.SlotID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl := s.slotLocked(id); sl != nil {
		return sl.header
	}
	return ""
}

// WatchHeader observes header changes on one slot.
func (s *Strip) WatchHeader(id driven.SlotID, fn func(string)) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slotLocked(id)
	if sl == nil {
		return func() {}
	}
	s.nextID++
	key := s.nextID
	sl.watchers[key] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(sl.watchers, key)
	}
}

// Subscribe registers a listener for container notifications.
func (s *Strip) Subscribe(l driven.ContainerListener) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	key := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: key, l: l})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, e := range s.listeners {
				if e.id == key {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Tabs returns a snapshot of every slot in order.
func (s *Strip) Tabs() []Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	tabs := make([]Tab, 0, len(s.slots))
	for _, sl := range s.slots {
		tabs = append(tabs, Tab{
			ID:       sl.id,
			Header:   sl.header,
			Closable: sl.closable,
			Visible:  sl.visible,
			Selected: sl.id == s.selected,
			Content:  sl.content,
		})
	}
	return tabs
}

// VisibleTabs returns a snapshot of the visible slots in order.
func (s *Strip) VisibleTabs() []Tab {
	all := s.Tabs()
	tabs := all[:0]
	for _, t := range all {
		if t.Visible {
			tabs = append(tabs, t)
		}
	}
	return tabs
}

// Len returns the number of slots, visible or not.
func (s *Strip) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

func (s *Strip) indexLocked(id driven.SlotID) int {
	for i, sl := range s.slots {
		if sl.id == id {
			return i
		}
	}
	return -1
}

func (s *Strip) slotLocked(id driven.SlotID) *slot {
	if idx := s.indexLocked(id); idx >= 0 {
		return s.slots[idx]
	}
	return nil
}

// removeLocked drops the slot at idx and reports whether the selection moved.
func (s *Strip) removeLocked(idx int) (bool, driven.SlotID) {
	id := s.slots[idx].id
	wasSelected := s.selected == id
	s.slots = append(s.slots[:idx:idx], s.slots[idx+1:]...)
	if !wasSelected {
		return false, ""
	}
	// idx now points at the slot that followed the removed one.
	s.selected = s.nearestVisibleLocked(idx, idx-1)
	return true, s.selected
}

// neighbourLocked finds the nearest visible slot around idx, excluding idx.
func (s *Strip) neighbourLocked(idx int) driven.SlotID {
	return s.nearestVisibleLocked(idx+1, idx-1)
}

// nearestVisibleLocked scans right from right, then left from left.
func (s *Strip) nearestVisibleLocked(right, left int) driven.SlotID {
	for i := right; i < len(s.slots); i++ {
		if s.slots[i].visible {
			return s.slots[i].id
		}
	}
	for i := left; i >= 0; i-- {
		if i < len(s.slots) && s.slots[i].visible {
			return s.slots[i].id
		}
	}
	return ""
}

func (s *Strip) listenersLocked() []driven.ContainerListener {
	out := make([]driven.ContainerListener, len(s.listeners))
	for i, e := range s.listeners {
		out[i] = e.l
	}
	return out
}

func (s *Strip) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

func notifySelection(listeners []driven.ContainerListener, id driven.SlotID) {
	for _, l := range listeners {
		l.SelectionChanged(id)
	}
}
