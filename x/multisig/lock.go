package multisig

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v2"
)

// recordLocks serializes the read-validate-write cycle of a single
// proposal. An entry lives only while somebody holds or waits for it.
type recordLocks struct {
	locks *xsync.MapOf[string, *recordLock]
}

type recordLock struct {
	mu sync.Mutex
	// refs counts holders and waiters. Guarded by the map bucket.
	refs int
}

func newRecordLocks() *recordLocks {
	return &recordLocks{locks: xsync.NewMapOf[*recordLock]()}
}

// Lock blocks until the record is free and returns its release function.
func (r *recordLocks) Lock(key []byte) (unlock func()) {
	k := string(key)
	l, _ := r.locks.Compute(k, func(l *recordLock, loaded bool) (*recordLock, bool) {
		if !loaded {
			l = &recordLock{}
		}
		l.refs++
		return l, false
	})
	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		r.locks.Compute(k, func(l *recordLock, _ bool) (*recordLock, bool) {
			l.refs--
			return l, l.refs == 0
		})
	}
}
