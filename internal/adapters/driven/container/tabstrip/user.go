package tabstrip

import "github.com/custodia-labs/docdeck/internal/core/ports/driven"

// UserSelect selects a visible slot on behalf of the user.
// Returns false when the slot is unknown or hidden.
func (s *Strip) UserSelect(id driven.SlotID) bool {
	s.mu.Lock()
	sl := s.slotLocked(id)
	ok := sl != nil && sl.visible
	s.mu.Unlock()

	if ok {
		s.SelectSlot(id)
	}
	return ok
}

// UserSelectNext moves the selection by delta visible slots, wrapping
// around. Returns the newly selected slot.
func (s *Strip) UserSelectNext(delta int) driven.SlotID {
	tabs := s.VisibleTabs()
	if len(tabs) == 0 {
		return ""
	}

	current := -1
	for i, t := range tabs {
		if t.Selected {
			current = i
			break
		}
	}

	next := 0
	if current >= 0 {
		next = ((current+delta)%len(tabs) + len(tabs)) % len(tabs)
	}
	id := tabs[next].ID
	s.SelectSlot(id)
	return id
}

// UserClose activates a slot's close glyph. Listeners may veto through
// SlotClosing; otherwise the slot is removed and SlotRemoved is reported.
// Returns false when the slot is unknown, not closable or the close was
// vetoed.
func (s *Strip) UserClose(id driven.SlotID) bool {
	s.mu.Lock()
	sl := s.slotLocked(id)
	if sl == nil || !sl.closable {
		s.mu.Unlock()
		return false
	}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	for _, l := range listeners {
		if l.SlotClosing(id) {
			return false
		}
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	moved, next := s.removeLocked(idx)
	listeners = s.listenersLocked()
	s.mu.Unlock()

	if moved {
		notifySelection(listeners, next)
	}
	for _, l := range listeners {
		l.SlotRemoved(id)
	}
	s.changed()
	return true
}

// UserRename edits a slot header the way an inline tab editor would.
func (s *Strip) UserRename(id driven.SlotID, header string) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.SetSlotHeader(id, header)
	return true
}

func (s *Strip) indexOf(id driven.SlotID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(id)
}
