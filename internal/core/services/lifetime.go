package services

import "sync"

// Lifetime collects release handles and runs them in reverse order when
// released. Handles added after Release run immediately.
type Lifetime struct {
	mu       sync.Mutex
	releases []func()
	released bool
}

// NewLifetime creates an empty lifetime.
func NewLifetime() *Lifetime {
	return &Lifetime{}
}

// Add records a release handle. Nil handles are ignored.
func (l *Lifetime) Add(release func()) {
	if release == nil {
		return
	}
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		release()
		return
	}
	l.releases = append(l.releases, release)
	l.mu.Unlock()
}

// AddBracket runs acquire now and records release for later.
func (l *Lifetime) AddBracket(acquire, release func()) {
	if acquire != nil {
		acquire()
	}
	l.Add(release)
}

// Release runs every recorded handle, last added first.
// Calling Release more than once has no further effect.
func (l *Lifetime) Release() {
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		return
	}
	l.released = true
	releases := l.releases
	l.releases = nil
	l.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}

// Released reports whether Release has been called.
func (l *Lifetime) Released() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.released
}
