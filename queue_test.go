package vtcurses

import (
	"testing"
	"time"
)

func TestQueueOrder(t *testing.T) {
	q := newRawQueue()
	for i := 1; i <= 5; i++ {
		q.put(queueItem{code: i})
	}
	if q.len() != 5 {
		t.Fatalf("expected 5 queued items, got %d", q.len())
	}
	for i := 1; i <= 5; i++ {
		it, ok := q.get(0)
		if !ok || it.code != i {
			t.Fatalf("expected %d, got %d (ok: %v)", i, it.code, ok)
		}
	}
	if _, ok := q.get(0); ok {
		t.Fatalf("expected the queue to be empty")
	}
}

func TestQueueTimeout(t *testing.T) {
	q := newRawQueue()
	start := time.Now()
	if _, ok := q.get(20 * time.Millisecond); ok {
		t.Fatalf("expected no item")
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("get returned after %s, before the timeout", elapsed)
	}
}

func TestQueueWaitsForPut(t *testing.T) {
	q := newRawQueue()
	go func() {
		time.Sleep(10 * time.Millisecond)
		q.put(queueItem{code: 42})
	}()
	it, ok := q.get(-1)
	if !ok || it.code != 42 {
		t.Fatalf("expected 42, got %d (ok: %v)", it.code, ok)
	}
}

func TestQueueClose(t *testing.T) {
	q := newRawQueue()
	q.put(queueItem{code: 1})
	done := make(chan bool)
	go func() {
		q.get(-1)
		_, ok := q.get(-1)
		done <- ok
	}()
	time.Sleep(10 * time.Millisecond)
	q.close()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected no item after close")
		}
	case <-time.After(time.Second):
		t.Fatalf("a waiting get was not woken up by close")
	}
	q.put(queueItem{code: 2})
	if q.len() != 0 {
		t.Errorf("expected items put after close to be dropped")
	}
	if !q.isClosed() {
		t.Errorf("expected the queue to report that it is closed")
	}
}
