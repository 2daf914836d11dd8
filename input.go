package vtcurses

import (
	"errors"
	"io"
	"sync"
)

// input owns the goroutine that reads one byte source and the queue it
// fills. Both live for as long as the process, so sessions that follow each
// other read from the same queue and never from two goroutines at once.
type input struct {
	src   io.ByteReader
	queue *rawQueue
}

var (
	inputsMu sync.Mutex
	inputs   = make(map[io.ByteReader]*input)
)

// inputFor returns the input for src, starting its goroutine the first time.
// src must be comparable, for instance a pointer.
func inputFor(src io.ByteReader) *input {
	inputsMu.Lock()
	defer inputsMu.Unlock()
	if in, ok := inputs[src]; ok {
		return in
	}
	in := &input{src: src, queue: newRawQueue()}
	inputs[src] = in
	go in.fill()
	return in
}

// fill reads from src until it fails. Unsupported keys are queued as errors
// and reading continues; any other error ends the input.
func (in *input) fill() {
	for {
		b, err := in.src.ReadByte()
		if err != nil {
			if errors.Is(err, ErrUnsupportedKey) {
				in.queue.put(queueItem{err: err})
				continue
			}
			if errors.Is(err, io.EOF) {
				err = ErrInputClosed
			}
			in.queue.put(queueItem{err: err})
			in.queue.close()
			return
		}
		in.queue.put(queueItem{code: int(b)})
	}
}
