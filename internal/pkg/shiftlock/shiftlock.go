package shiftlock

import "sync"

// Locker serializes check-then-act sequences against a single shift.
// Capacity checks and assignment writes must run under the shift's lock
// so two concurrent calls cannot both observe the same free slot.
type Locker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// New creates a new locker
func New() *Locker {
	return &Locker{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the lock for a shift, creating it on first use.
// Locks are retained for the process lifetime; the map grows with the
// number of distinct shifts touched, which is bounded by the catalog.
func (l *Locker) Lock(shiftID uint) {
	l.mu.Lock()
	m, ok := l.locks[shiftID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[shiftID] = m
	}
	l.mu.Unlock()
	m.Lock()
}

// Unlock releases the lock for a shift
func (l *Locker) Unlock(shiftID uint) {
	l.mu.Lock()
	m := l.locks[shiftID]
	l.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
}
