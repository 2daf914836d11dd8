package vtcurses

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultEscDelay is how long the reader waits for more bytes after an ESC
// before deciding that Escape was pressed on its own.
const DefaultEscDelay = 10 * time.Millisecond

// readerActive is set while a KeyReader exists
var readerActive atomic.Bool

// KeyReader turns the byte stream from a terminal into key codes.
// A goroutine performs one blocking single-byte read at a time and queues
// the result; consumers take keys from the queue with or without waiting.
// The goroutine and the queue belong to the byte source and outlive the
// reader, only the consumer side is per session.
type KeyReader struct {
	queue    *rawQueue
	nodelay  atomic.Bool
	escDelay time.Duration
	released atomic.Bool

	mu         sync.Mutex
	stored     []queueItem // bytes left over from an unrecognized escape sequence
	escPending bool        // an ESC ended the last escape window
}

// newKeyReader claims the process-wide reader slot and attaches to the
// input of src, which is started the first time it is used.
func newKeyReader(src io.ByteReader, escDelay time.Duration) (*KeyReader, error) {
	if !readerActive.CompareAndSwap(false, true) {
		return nil, ErrReaderExists
	}
	if escDelay <= 0 {
		escDelay = DefaultEscDelay
	}
	return &KeyReader{
		queue:    inputFor(src).queue,
		escDelay: escDelay,
	}, nil
}

// push queues a synthetic key, such as KeyInterrupt or KeyResize
func (r *KeyReader) push(k KeyCode) {
	r.queue.put(queueItem{code: int(k)})
}

// release frees the reader slot so that a new session can create a reader.
// Input that has not been read yet stays queued for the next reader.
func (r *KeyReader) release() {
	if r.released.CompareAndSwap(false, true) {
		readerActive.Store(false)
	}
}

// SetBlocking switches between waiting for input and returning at once.
// It only changes how keys are taken from the queue, not how it is filled.
func (r *KeyReader) SetBlocking(block bool) {
	r.nodelay.Store(!block)
}

// Blocking reports whether Get and ReadKey wait for input
func (r *KeyReader) Blocking() bool {
	return !r.nodelay.Load()
}

// EscDelay returns the escape sequence disambiguation window
func (r *KeyReader) EscDelay() time.Duration {
	return r.escDelay
}

// Get returns the next raw value from the input queue.
// A negative timeout waits for as long as it takes, zero does not wait at all.
// In non-blocking mode Get never waits. ErrNoInput is returned when nothing arrived in time.
func (r *KeyReader) Get(timeout time.Duration) (int, error) {
	if r.nodelay.Load() {
		timeout = 0
	}
	it, ok := r.queue.get(timeout)
	if !ok {
		if r.queue.isClosed() {
			return int(Err), ErrInputClosed
		}
		return int(Err), ErrNoInput
	}
	if it.err != nil {
		return int(Err), it.err
	}
	return it.code, nil
}

// takeStored returns the oldest leftover value, if any
func (r *KeyReader) takeStored() (queueItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stored) == 0 {
		return queueItem{}, false
	}
	it := r.stored[0]
	r.stored = r.stored[1:]
	return it, true
}

// store appends leftovers that are returned before the queue is read again
func (r *KeyReader) store(items ...queueItem) {
	if len(items) == 0 {
		return
	}
	r.mu.Lock()
	r.stored = append(r.stored, items...)
	r.mu.Unlock()
}

// next returns an ESC that ended the previous escape window, or else the
// next value from the queue
func (r *KeyReader) next(timeout time.Duration) (int, error) {
	r.mu.Lock()
	if r.escPending {
		r.escPending = false
		r.mu.Unlock()
		return int(KeyEscape), nil
	}
	r.mu.Unlock()
	return r.Get(timeout)
}

// ReadKey returns the next key. When an ESC is read and keypad is enabled,
// the bytes that arrive within the escape delay are collected. If they form
// a known sequence, a single composite key is returned. Otherwise every
// collected byte is returned as its own key, in the order it was received.
// Another ESC ends the window and starts the next sequence. With keypad
// disabled, ESC and the bytes after it are returned as they are.
func (r *KeyReader) ReadKey(timeout time.Duration, keypad bool) (KeyCode, error) {
	if it, ok := r.takeStored(); ok {
		if it.err != nil {
			return Err, it.err
		}
		return KeyCode(it.code), nil
	}

	first, err := r.next(timeout)
	if err != nil {
		return Err, err
	}
	if KeyCode(first) != KeyEscape || !keypad {
		return KeyCode(first), nil
	}

	seq := []int{first}
	var pending []queueItem
	deadline := time.Now().Add(r.escDelay)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		it, ok := r.queue.get(remaining)
		if !ok {
			break
		}
		if it.err != nil {
			pending = append(pending, it)
			break
		}
		if KeyCode(it.code) == KeyEscape {
			r.mu.Lock()
			r.escPending = true
			r.mu.Unlock()
			break
		}
		seq = accumulate(seq, it.code)
	}

	if len(seq) > 1 {
		if code, ok := lookupSequence(seq); ok {
			r.store(pending...)
			return code, nil
		}
	}

	leftovers := make([]queueItem, 0, len(seq)-1+len(pending))
	for _, b := range seq[1:] {
		leftovers = append(leftovers, queueItem{code: b})
	}
	r.store(append(leftovers, pending...)...)
	return KeyEscape, nil
}

// String describes the reader state, for debugging
func (r *KeyReader) String() string {
	r.mu.Lock()
	stored := len(r.stored)
	r.mu.Unlock()
	return fmt.Sprintf("KeyReader{blocking: %v, escDelay: %s, queued: %d, stored: %d}", r.Blocking(), r.escDelay, r.queue.len(), stored)
}
