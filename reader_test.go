package vtcurses

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"
)

const testEscDelay = 50 * time.Millisecond

func readKeys(t *testing.T, r *KeyReader, keypad bool, n int) []KeyCode {
	t.Helper()
	var keys []KeyCode
	for i := 0; i < n; i++ {
		k, err := r.ReadKey(time.Second, keypad)
		if err != nil {
			t.Fatalf("key %d: %v", i, err)
		}
		keys = append(keys, k)
	}
	return keys
}

func sameKeys(a, b []KeyCode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReadKeyUpArrow(t *testing.T) {
	r, pw := startReader(t, testEscDelay)
	go io.WriteString(pw, "\x1b[A")
	if k, err := r.ReadKey(time.Second, true); err != nil || k != KeyUp {
		t.Fatalf("expected %v, got %v (%v)", KeyUp, k, err)
	}
}

func TestReadKeySplitSequence(t *testing.T) {
	r, pw := startReader(t, 200*time.Millisecond)
	go func() {
		io.WriteString(pw, "\x1b")
		time.Sleep(20 * time.Millisecond)
		io.WriteString(pw, "[A")
	}()
	if k, err := r.ReadKey(time.Second, true); err != nil || k != KeyUp {
		t.Fatalf("expected %v, got %v (%v)", KeyUp, k, err)
	}
}

func TestReadKeyLoneEscape(t *testing.T) {
	r, pw := startReader(t, testEscDelay)
	go io.WriteString(pw, "\x1b")
	if k, err := r.ReadKey(time.Second, true); err != nil || k != KeyEscape {
		t.Fatalf("expected %v, got %v (%v)", KeyEscape, k, err)
	}
	if _, err := r.ReadKey(0, true); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput after a lone escape, got %v", err)
	}
}

func TestReadKeyUnknownSequence(t *testing.T) {
	r, pw := startReader(t, testEscDelay)
	go io.WriteString(pw, "\x1bxy")
	got := readKeys(t, r, true, 3)
	want := []KeyCode{KeyEscape, 'x', 'y'}
	if !sameKeys(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestReadKeyKeypadOff(t *testing.T) {
	r, pw := startReader(t, testEscDelay)
	go io.WriteString(pw, "\x1b[A")
	got := readKeys(t, r, false, 3)
	want := []KeyCode{KeyEscape, '[', 'A'}
	if !sameKeys(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestReadKeyKeypadOffDoesNotWait(t *testing.T) {
	r, pw := startReader(t, 500*time.Millisecond)
	go io.WriteString(pw, "\x1b")
	start := time.Now()
	if k, err := r.ReadKey(time.Second, false); err != nil || k != KeyEscape {
		t.Fatalf("expected %v, got %v (%v)", KeyEscape, k, err)
	}
	if elapsed := time.Since(start); elapsed >= 250*time.Millisecond {
		t.Errorf("expected ESC right away with keypad off, it took %s", elapsed)
	}
}

func TestReadKeyEscapeEndsWindow(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want []KeyCode
	}{
		{"repeated up", "\x1b[A\x1b[A\x1b[A", []KeyCode{KeyUp, KeyUp, KeyUp}},
		{"double escape", "\x1b\x1b", []KeyCode{KeyEscape, KeyEscape}},
		{"unknown then left", "\x1bx\x1b[D", []KeyCode{KeyEscape, 'x', KeyLeft}},
	}
	for _, tt := range tests {
		r, pw := startReader(t, testEscDelay)
		go io.WriteString(pw, tt.seq)
		got := readKeys(t, r, true, len(tt.want))
		if !sameKeys(got, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
		r.release()
	}
}

func TestReadKeyRepeatedConsoleEvent(t *testing.T) {
	seq, err := ConsoleKeyEvent{VirtualKeyCode: vkUp, RepeatCount: 3}.Encode()
	if err != nil {
		t.Fatal(err)
	}
	r, pw := startReader(t, testEscDelay)
	go pw.Write(seq)
	got := readKeys(t, r, true, 3)
	if want := []KeyCode{KeyUp, KeyUp, KeyUp}; !sameKeys(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestReadKeyCtrlLeftIsNotLeft(t *testing.T) {
	r, pw := startReader(t, testEscDelay)
	go typeChunks(pw, 2*testEscDelay, "\x1b[1;5D", "\x1b[D")
	ctrlLeft, err := r.ReadKey(time.Second, true)
	if err != nil {
		t.Fatal(err)
	}
	left, err := r.ReadKey(time.Second, true)
	if err != nil {
		t.Fatal(err)
	}
	if ctrlLeft != KeyCtrlLeft {
		t.Errorf("expected %v, got %v", KeyCtrlLeft, ctrlLeft)
	}
	if left != KeyLeft {
		t.Errorf("expected %v, got %v", KeyLeft, left)
	}
	if ctrlLeft == left {
		t.Errorf("ctrl-left and left gave the same key")
	}
}

func TestReadKeyTable(t *testing.T) {
	tests := []struct {
		seq  string
		want KeyCode
	}{
		{"\x1b[B", KeyDown},
		{"\x1bOC", KeyRight},
		{"\x1b[H", KeyHome},
		{"\x1b[4~", KeyEnd},
		{"\x1b[3~", KeyDelete},
		{"\x1b[5~", KeyPageUp},
		{"\x1b[Z", KeyShiftTab},
		{"\x1b\x7f", KeyCtrlBackspace},
		{"\x1bOP", KeyF1},
		{"\x1b[24~", KeyF12},
		{"\x1b[12~", KeyF2},
		{"\x1b[13~", KeyF3},
		{"\x1b[14~", KeyF4},
		{"\x1b[3;2~", KeyShiftDelete},
		{"\x1b[3;3~", KeyAltDelete},
		{"\x1b[1;5C", KeyCtrlRight},
		{"\x1b[1;3A", KeyAltUp},
	}
	r, pw := startReader(t, testEscDelay)
	for _, tt := range tests {
		go io.WriteString(pw, tt.seq)
		if k, err := r.ReadKey(time.Second, true); err != nil || k != tt.want {
			t.Errorf("%q: expected %v, got %v (%v)", tt.seq, tt.want, k, err)
		}
	}
}

func TestReadKeyOrder(t *testing.T) {
	r, pw := startReader(t, testEscDelay)
	go io.WriteString(pw, "abc")
	got := readKeys(t, r, true, 3)
	want := []KeyCode{'a', 'b', 'c'}
	if !sameKeys(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSingleReader(t *testing.T) {
	r, _ := startReader(t, testEscDelay)
	if _, err := newKeyReader(&scriptedSource{}, testEscDelay); !errors.Is(err, ErrReaderExists) {
		t.Fatalf("expected ErrReaderExists, got %v", err)
	}
	r.release()
	second, err := newKeyReader(&scriptedSource{}, testEscDelay)
	if err != nil {
		t.Fatalf("expected a new reader after release, got %v", err)
	}
	second.release()
}

func TestNonBlockingGet(t *testing.T) {
	r, _ := startReader(t, testEscDelay)
	r.SetBlocking(false)
	if r.Blocking() {
		t.Fatalf("expected the reader to be non-blocking")
	}
	start := time.Now()
	code, err := r.Get(time.Second)
	if !errors.Is(err, ErrNoInput) || code != int(Err) {
		t.Fatalf("expected ErrNoInput and %d, got %d and %v", Err, code, err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("a non-blocking get waited for %s", elapsed)
	}
}

func TestGetTimeout(t *testing.T) {
	r, _ := startReader(t, testEscDelay)
	if _, err := r.Get(20 * time.Millisecond); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestInputClosed(t *testing.T) {
	r, pw := startReader(t, testEscDelay)
	pw.Close()
	if _, err := r.ReadKey(time.Second, true); !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
	if _, err := r.Get(0); !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed on the next read, got %v", err)
	}
}

func TestPush(t *testing.T) {
	r, _ := startReader(t, testEscDelay)
	r.push(KeyResize)
	if k, err := r.ReadKey(time.Second, true); err != nil || k != KeyResize {
		t.Fatalf("expected %v, got %v (%v)", KeyResize, k, err)
	}
}

// scriptedSource returns its results in order, then io.EOF
type scriptedSource struct {
	results []error
	bytes   []byte
}

func (s *scriptedSource) ReadByte() (byte, error) {
	if len(s.results) == 0 {
		return 0, io.EOF
	}
	b, err := s.bytes[0], s.results[0]
	s.bytes, s.results = s.bytes[1:], s.results[1:]
	return b, err
}

func TestUnsupportedKeyKeepsReading(t *testing.T) {
	unsupported := fmt.Errorf("%w: virtual key code 0x70", ErrUnsupportedKey)
	r, err := newKeyReader(&scriptedSource{
		results: []error{unsupported, nil},
		bytes:   []byte{0, 'q'},
	}, testEscDelay)
	if err != nil {
		t.Fatal(err)
	}
	defer r.release()
	if _, err := r.Get(time.Second); !errors.Is(err, ErrUnsupportedKey) {
		t.Fatalf("expected ErrUnsupportedKey, got %v", err)
	}
	if code, err := r.Get(time.Second); err != nil || code != 'q' {
		t.Fatalf("expected 'q' after the unsupported key, got %d (%v)", code, err)
	}
	if _, err := r.Get(time.Second); !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed at the end of input, got %v", err)
	}
}
