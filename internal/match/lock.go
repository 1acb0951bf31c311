package match

import "sync"

// matchLocks serializes mutations per match id inside one process. The row
// lock taken by LockMatch covers other processes sharing the database.
type matchLocks struct {
	mu    sync.Mutex
	locks map[uint]*matchLock
}

type matchLock struct {
	mu   sync.Mutex
	refs int
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[uint]*matchLock)}
}

// lock blocks until the caller owns id and returns the release func.
func (l *matchLocks) lock(id uint) func() {
	l.mu.Lock()
	ml, ok := l.locks[id]
	if !ok {
		ml = &matchLock{}
		l.locks[id] = ml
	}
	ml.refs++
	l.mu.Unlock()

	ml.mu.Lock()
	return func() {
		ml.mu.Unlock()

		l.mu.Lock()
		ml.refs--
		if ml.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *matchLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
