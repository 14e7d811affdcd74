package services

import "sync"

// observerList is a set of callbacks notified outside its own lock, so
// observers may subscribe or release from inside a notification.
type observerList[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []observerEntry[T]
}

type observerEntry[T any] struct {
	id uint64
	fn func(T)
}

// add registers fn and returns its release handle. Release is idempotent.
func (o *observerList[T]) add(fn func(T)) (release func()) {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.entries = append(o.entries, observerEntry[T]{id: id, fn: fn})
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, e := range o.entries {
				if e.id == id {
					o.entries = append(o.entries[:i:i], o.entries[i+1:]...)
					return
				}
			}
		})
	}
}

// notify calls every observer registered at the time of the call.
func (o *observerList[T]) notify(v T) {
	o.mu.Lock()
	snapshot := make([]observerEntry[T], len(o.entries))
	copy(snapshot, o.entries)
	o.mu.Unlock()

	for _, e := range snapshot {
		e.fn(v)
	}
}

func (o *observerList[T]) len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}
