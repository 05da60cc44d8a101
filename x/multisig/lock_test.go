package multisig

import (
	"sync"
	"testing"
	"time"
)

func TestRecordLocks(t *testing.T) {
	locks := newRecordLocks()

	const workers = 20
	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock([]byte("proposal"))
			defer unlock()

			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("want %d, got %d", workers, counter)
	}
	if n := locks.locks.Size(); n != 0 {
		t.Fatalf("%d locks kept after release", n)
	}
}

func TestRecordLocksReleased(t *testing.T) {
	locks := newRecordLocks()
	for i := 0; i < 100; i++ {
		unlock := locks.Lock(ProposalKey([]byte("wallet"), uint64(i)))
		unlock()
	}
	if n := locks.locks.Size(); n != 0 {
		t.Fatalf("%d locks kept after release", n)
	}

	first := locks.Lock([]byte("p"))
	waiting := make(chan func())
	go func() { waiting <- locks.Lock([]byte("p")) }()

	// The waiter keeps the entry alive after the first holder is gone.
	time.Sleep(10 * time.Millisecond)
	first()
	second := <-waiting
	if n := locks.locks.Size(); n != 1 {
		t.Fatalf("want 1 lock, got %d", n)
	}
	second()
	if n := locks.locks.Size(); n != 0 {
		t.Fatalf("%d locks kept after release", n)
	}
}

func TestRecordLocksIndependentKeys(t *testing.T) {
	locks := newRecordLocks()

	unlock := locks.Lock([]byte("a"))
	defer unlock()

	done := make(chan struct{})
	go func() {
		locks.Lock([]byte("b"))()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on another record must not block")
	}
}
