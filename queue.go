package vtcurses

import (
	"sync"
	"time"
)

// queueItem is a raw input value, or an error reported by the byte source
type queueItem struct {
	code int
	err  error
}

// rawQueue is an unbounded FIFO shared between the input goroutine and the
// consumers. Dequeueing can block, block with a timeout or return at once.
type rawQueue struct {
	mu     sync.Mutex
	items  []queueItem
	closed bool
	notify chan struct{} // holds at most one pending wakeup
}

func newRawQueue() *rawQueue {
	return &rawQueue{notify: make(chan struct{}, 1)}
}

// wake leaves a wakeup for the next waiting consumer, if there is none pending already
func (q *rawQueue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// put appends an item. Items put after close are dropped.
func (q *rawQueue) put(it queueItem) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, it)
	q.mu.Unlock()
	q.wake()
}

// close wakes every waiter. Items already queued can still be taken.
func (q *rawQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

// isClosed reports whether close has been called
func (q *rawQueue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// len returns the number of queued items
func (q *rawQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// get takes the oldest item. A negative timeout waits until an item arrives
// or the queue is closed, a zero timeout never waits.
func (q *rawQueue) get(timeout time.Duration) (queueItem, bool) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			it := q.items[0]
			q.items[0] = queueItem{}
			q.items = q.items[1:]
			more := len(q.items) > 0
			q.mu.Unlock()
			if more {
				q.wake()
			}
			return it, true
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			q.wake()
			return queueItem{}, false
		}
		if timeout == 0 {
			return queueItem{}, false
		}
		select {
		case <-q.notify:
		case <-deadline:
			return queueItem{}, false
		}
	}
}
