package sketch

import "sync"

// eventQueue collects operations posted from other goroutines so that they
// run on the board owner's goroutine, in arrival order, between other edits.
type eventQueue struct {
	mu   sync.Mutex
	ops  []func()
	wake chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{wake: make(chan struct{}, 1)}
}

// post appends op and signals the wake channel without blocking.
func (q *eventQueue) post(op func()) {
	q.mu.Lock()
	q.ops = append(q.ops, op)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// take removes and returns every queued operation.
func (q *eventQueue) take() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	ops := q.ops
	q.ops = nil
	return ops
}
