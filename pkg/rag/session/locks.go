// FILE: pkg/rag/session/locks.go
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Locks serializes writers per session. Requests racing on one session queue
// behind each other so turns are appended in a single order; requests on
// different sessions never contend.
//
// Entries are reference counted and dropped on final release, keeping the
// registry proportional to in-flight requests rather than to session history.
type Locks struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewLocks() *Locks {
	return &Locks{entries: make(map[uuid.UUID]*lockEntry)}
}

// Acquire blocks until the session lock is held and returns its release
// function. The release function is idempotent; callers must invoke it on
// every path, including error returns.
func (l *Locks) Acquire(sessionId uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.entries[sessionId]
	if !ok {
		entry = &lockEntry{}
		l.entries[sessionId] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()
			l.mu.Lock()
			entry.refs--
			if entry.refs == 0 {
				delete(l.entries, sessionId)
			}
			l.mu.Unlock()
		})
	}
}

// InFlight reports how many sessions currently have a holder or waiters.
func (l *Locks) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
