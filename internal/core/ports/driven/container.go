package driven

// SlotID identifies a slot in the hosting container.
type SlotID string

// SlotOptions configures a new slot.
type SlotOptions struct {
	// Header is the initial header text.
	Header string

	// Closable shows a close glyph the user can activate.
	Closable bool

	// Visible adds the slot shown. Slots are hidden by default.
	Visible bool
}

// Container is the hosting tab strip. It owns the visual slots that
// documents reference.
//
// Implementations must not hold internal locks while invoking listeners or
// header watchers; the manager calls back into the container from them.
type Container interface {
	// AddSlot allocates a new slot.
	AddSlot(opts SlotOptions) SlotID

	// RemoveSlot removes a slot. Unknown slots are ignored.
	// Removals made through RemoveSlot are not reported as SlotRemoved.
	RemoveSlot(id SlotID)

	// SetSlotContent places a view in a slot. A nil view clears it.
	SetSlotContent(id SlotID, view View)

	// SlotContent returns the view in a slot, or nil.
	SlotContent(id SlotID) View

	// SetSlotVisible shows or hides a slot.
	SetSlotVisible(id SlotID, visible bool)

	// SelectSlot selects a slot and reports SelectionChanged if the
	// selection moved.
	SelectSlot(id SlotID)

	// Selected returns the selected slot, or "" when nothing is selected.
	Selected() SlotID

	// SetSlotHeader writes a slot header and notifies header watchers.
	SetSlotHeader(id SlotID, header string)

	// SlotHeader returns a slot header.
	SlotHeader(id SlotID) string

	// WatchHeader observes header changes on one slot.
	WatchHeader(id SlotID, fn func(header string)) (release func())

	// Subscribe registers a listener for container notifications.
	Subscribe(l ContainerListener) (release func())
}

// ContainerListener receives notifications raised by the container.
type ContainerListener interface {
	// SelectionChanged reports that the selected slot changed.
	// id is "" when nothing is selected.
	SelectionChanged(id SlotID)

	// SlotClosing asks whether a user-initiated close may proceed.
	// Returning true cancels the close.
	SlotClosing(id SlotID) (cancel bool)

	// SlotRemoved reports a slot removed without RemoveSlot, for example
	// by the user activating its close glyph.
	SlotRemoved(id SlotID)
}
