package reslock

import "sync"

// Locker serializes check-then-write sequences per resource so that two
// concurrent admissions for the same resource cannot both pass the
// availability check. Operations on different resources never contend.
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New() *Locker {
	return &Locker{locks: make(map[int64]*sync.Mutex)}
}

func (l *Locker) lockFor(resourceID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[resourceID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[resourceID] = m
	}
	return m
}

func (l *Locker) Lock(resourceID int64)   { l.lockFor(resourceID).Lock() }
func (l *Locker) Unlock(resourceID int64) { l.lockFor(resourceID).Unlock() }
