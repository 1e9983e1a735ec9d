package engine

import "sync"

// lockTable hands out one mutex per game pin so operations on the same game are strictly
// serialized while unrelated games proceed independently. Entries are reference counted and
// removed once idle, keeping the table bounded by the number of games currently in flight.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func newLockTable() lockTable {
	return lockTable{locks: make(map[string]*gameLock)}
}

func (t *lockTable) acquire(pin string) {
	t.mu.Lock()
	l, ok := t.locks[pin]
	if !ok {
		l = &gameLock{}
		t.locks[pin] = l
	}
	l.refs++
	t.mu.Unlock()

	l.mu.Lock()
}

func (t *lockTable) release(pin string) {
	t.mu.Lock()
	l := t.locks[pin]
	l.refs--
	if l.refs == 0 {
		delete(t.locks, pin)
	}
	t.mu.Unlock()

	l.mu.Unlock()
}
