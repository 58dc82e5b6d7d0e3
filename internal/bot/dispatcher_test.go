package bot

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatchSerializesPerChat(t *testing.T) {
	d := newDispatcher()

	var inFlight, maxInFlight int32
	for i := 0; i < 20; i++ {
		d.dispatch(1, func() {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				prev := atomic.LoadInt32(&maxInFlight)
				if n <= prev || atomic.CompareAndSwapInt32(&maxInFlight, prev, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
		})
	}
	d.wait()

	if got := atomic.LoadInt32(&maxInFlight); got != 1 {
		t.Fatalf("max concurrent handlers for one chat = %d, want 1", got)
	}
}

func TestDispatchPreservesArrivalOrder(t *testing.T) {
	d := newDispatcher()

	gate := make(chan struct{})
	var mu sync.Mutex
	var order []int

	d.dispatch(1, func() {
		<-gate
		mu.Lock()
		order = append(order, 0)
		mu.Unlock()
	})
	// The first handler is blocked on gate, so these stack up in the queue.
	for i := 1; i < 10; i++ {
		n := i
		d.dispatch(1, func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		})
	}
	close(gate)
	d.wait()

	if len(order) != 10 {
		t.Fatalf("ran %d handlers, want 10", len(order))
	}
	for i, n := range order {
		if n != i {
			t.Fatalf("order = %v, want handlers in arrival order", order)
		}
	}
}

func TestDispatchRemovesIdleChats(t *testing.T) {
	d := newDispatcher()

	for chatID := int64(1); chatID <= 5; chatID++ {
		d.dispatch(chatID, func() {})
	}
	d.wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.chats) != 0 {
		t.Fatalf("chat map holds %d entries after drain, want 0", len(d.chats))
	}
}

func TestDispatchRunsChatsConcurrently(t *testing.T) {
	d := newDispatcher()

	var mu sync.Mutex
	started := map[int64]bool{}
	release := make(chan struct{})
	ready := make(chan int64, 2)

	for _, chatID := range []int64{1, 2} {
		id := chatID
		d.dispatch(id, func() {
			mu.Lock()
			started[id] = true
			mu.Unlock()
			ready <- id
			<-release
		})
	}

	for i := 0; i < 2; i++ {
		select {
		case <-ready:
		case <-time.After(2 * time.Second):
			t.Fatal("handlers for different chats must not block each other")
		}
	}
	close(release)
	d.wait()

	mu.Lock()
	defer mu.Unlock()
	if !started[1] || !started[2] {
		t.Fatalf("started = %v, want both chats", started)
	}
}
