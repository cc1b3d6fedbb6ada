package sketch

import (
	"sync"
	"testing"
)

func TestEventQueueConcurrentPost(t *testing.T) {
	q := newEventQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.post(func() {})
			}
		}()
	}
	wg.Wait()

	select {
	case <-q.wake:
	default:
		t.Error("wake channel not signaled")
	}
	if n := len(q.take()); n != 800 {
		t.Errorf("take() returned %d ops, want 800", n)
	}
	if n := len(q.take()); n != 0 {
		t.Errorf("second take() returned %d ops, want 0", n)
	}
}

func TestEventQueuePreservesOrder(t *testing.T) {
	q := newEventQueue()
	var got []int
	for i := 0; i < 5; i++ {
		q.post(func() { got = append(got, i) })
	}
	for _, op := range q.take() {
		op()
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("ops ran as %v, want arrival order", got)
		}
	}
}
