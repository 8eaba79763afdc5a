// FILE: pkg/rag/session/locks_test.go
package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLocksSerializeSameSession(t *testing.T) {
	locks := NewLocks()
	sessionId := uuid.New()

	var mu sync.Mutex
	inside := 0
	maxInside := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.Acquire(sessionId)
			defer release()

			mu.Lock()
			inside++
			if inside > maxInside {
				maxInside = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxInside)
	}
	if got := locks.InFlight(); got != 0 {
		t.Errorf("InFlight() = %d after all releases, want 0", got)
	}
}

func TestLocksIndependentSessions(t *testing.T) {
	locks := NewLocks()
	blocked := uuid.New()
	free := uuid.New()

	releaseBlocked := locks.Acquire(blocked)
	defer releaseBlocked()

	done := make(chan struct{})
	go func() {
		release := locks.Acquire(free)
		release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("acquiring an unrelated session blocked behind a held lock")
	}
}

func TestLocksReleaseIsIdempotent(t *testing.T) {
	locks := NewLocks()
	sessionId := uuid.New()

	release := locks.Acquire(sessionId)
	release()
	release() // second call must be a no-op, not an unlock of a free mutex

	// The lock must still be acquirable afterwards.
	release2 := locks.Acquire(sessionId)
	release2()

	if got := locks.InFlight(); got != 0 {
		t.Errorf("InFlight() = %d, want 0", got)
	}
}

func TestLocksEntryDroppedOnlyAfterLastWaiter(t *testing.T) {
	locks := NewLocks()
	sessionId := uuid.New()

	first := locks.Acquire(sessionId)

	acquired := make(chan func(), 1)
	go func() {
		acquired <- locks.Acquire(sessionId)
	}()

	// Give the second goroutine time to register as a waiter.
	time.Sleep(20 * time.Millisecond)
	if got := locks.InFlight(); got != 1 {
		t.Fatalf("InFlight() = %d with a holder and a waiter, want 1", got)
	}

	first()
	second := <-acquired
	second()

	if got := locks.InFlight(); got != 0 {
		t.Errorf("InFlight() = %d after final release, want 0", got)
	}
}
