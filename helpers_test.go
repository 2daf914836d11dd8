package vtcurses

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// recorder keeps every call to Write as a separate entry
type recorder struct {
	mu     sync.Mutex
	writes []string
}

func (r *recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.writes) == 0 {
		return ""
	}
	return r.writes[len(r.writes)-1]
}

func (r *recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.writes, "")
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = nil
}

// newTestWindow returns a window at the top left of a screen without input
func newTestWindow(t *testing.T, height, width int) (*Window, *recorder) {
	t.Helper()
	rec := &recorder{}
	w, err := newWindow(&screen{out: rec}, height, width, 0, 0)
	if err != nil {
		t.Fatalf("newWindow(%d, %d): %v", height, width, err)
	}
	return w, rec
}

// startReader returns a running key reader that reads what is written to the returned pipe
func startReader(t *testing.T, escDelay time.Duration) (*KeyReader, *io.PipeWriter) {
	t.Helper()
	pr, pw := io.Pipe()
	r, err := newKeyReader(bufio.NewReader(pr), escDelay)
	if err != nil {
		t.Fatalf("newKeyReader: %v", err)
	}
	t.Cleanup(func() {
		r.release()
		pw.Close()
	})
	return r, pw
}

// typeChunks writes each chunk to w, pausing between them so that
// every chunk falls in its own escape delay window
func typeChunks(w io.Writer, pause time.Duration, chunks ...string) {
	for _, chunk := range chunks {
		time.Sleep(pause)
		if _, err := io.WriteString(w, chunk); err != nil {
			return
		}
	}
}
