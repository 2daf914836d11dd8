package vtcurses

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTextboxGeometry(t *testing.T) {
	tests := []struct {
		height, width int
		want          error
	}{
		{2, 20, ErrGeometry},
		{4, 20, ErrMultiline},
		{3, 2, ErrGeometry},
	}
	for _, tt := range tests {
		w, _ := newTestWindow(t, tt.height, tt.width)
		if _, err := NewTextbox(w, ""); !errors.Is(err, tt.want) {
			t.Errorf("%dx%d: expected %v, got %v", tt.height, tt.width, tt.want, err)
		}
	}
}

func newTestTextbox(t *testing.T, initial string) *Textbox {
	t.Helper()
	w, _ := newTestWindow(t, 3, 20)
	tb, err := NewTextbox(w, initial)
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func TestTextboxEditing(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		keys    []KeyCode
		want    string
		cursor  int
	}{
		{"typing", "", []KeyCode{'h', 'i'}, "hi", 2},
		{"insert in the middle", "ac", []KeyCode{KeyLeft, 'b'}, "abc", 2},
		{"backspace", "abc", []KeyCode{KeyDEL}, "ab", 2},
		{"backspace key", "abc", []KeyCode{KeyBackspace, KeyCtrlH}, "a", 1},
		{"backspace at start", "abc", []KeyCode{KeyHome, KeyDEL}, "abc", 0},
		{"delete", "abc", []KeyCode{KeyHome, KeyDelete}, "bc", 0},
		{"delete at end", "abc", []KeyCode{KeyDelete}, "abc", 3},
		{"home and end", "abc", []KeyCode{KeyCtrlA, 'x', KeyEnd, 'y'}, "xabcy", 5},
		{"right stops at end", "ab", []KeyCode{KeyRight, KeyRight}, "ab", 2},
		{"left stops at start", "ab", []KeyCode{KeyLeft, KeyLeft, KeyLeft}, "ab", 0},
		{"word left", "hello big world", []KeyCode{KeyCtrlLeft}, "hello big world", 9},
		{"word right", "hello big world", []KeyCode{KeyHome, KeyCtrlRight}, "hello big world", 5},
		{"word right at end", "hello", []KeyCode{KeyHome, KeyCtrlRight}, "hello", 5},
		{"ctrl w", "hello world", []KeyCode{KeyCtrlW}, "hello", 5},
		{"ctrl backspace", "a b", []KeyCode{KeyCtrlBackspace, KeyCtrlBackspace}, "", 0},
		{"ctrl delete", "hello world", []KeyCode{KeyHome, KeyCtrlDelete}, "world", 0},
		{"kill to end", "hello world", []KeyCode{KeyHome, KeyCtrlRight, KeyCtrlK}, "hello", 5},
		{"utf-8", "", []KeyCode{0xc3, 0xa9}, "é", 1},
		{"invalid utf-8 is dropped", "", []KeyCode{0xc3, 'a'}, "a", 1},
		{"unknown keys are ignored", "a", []KeyCode{KeyF5, KeyUp, KeyInsert}, "a", 1},
	}
	for _, tt := range tests {
		tb := newTestTextbox(t, tt.initial)
		for _, k := range tt.keys {
			if tb.handle(k) {
				t.Fatalf("%s: %v should not finish editing", tt.name, k)
			}
		}
		if tb.Text() != tt.want || tb.Cursor() != tt.cursor {
			t.Errorf("%s: expected %q with the cursor at %d, got %q at %d", tt.name, tt.want, tt.cursor, tb.Text(), tb.Cursor())
		}
	}
}

func TestTextboxEnterFinishes(t *testing.T) {
	tb := newTestTextbox(t, "x")
	if !tb.handle(KeyEnter) {
		t.Errorf("expected enter to finish editing")
	}
	if !tb.handle(KeyReturn) {
		t.Errorf("expected return to finish editing")
	}
}

func TestTextboxScrolls(t *testing.T) {
	w, rec := newTestWindow(t, 3, 6)
	tb, err := NewTextbox(w, "abcdefgh")
	if err != nil {
		t.Fatal(err)
	}
	if err := tb.display(); err != nil {
		t.Fatal(err)
	}
	// four columns of text, with the cursor after the last character
	if !strings.Contains(rec.String(), "fgh") || strings.Contains(rec.String(), "e") {
		t.Errorf("expected the end of the text to be visible, got %q", rec.String())
	}
	rec.reset()
	tb.handle(KeyHome)
	tb.display()
	if !strings.Contains(rec.String(), "bcd") {
		t.Errorf("expected the start of the text to be visible, got %q", rec.String())
	}
}

func newEditTextbox(t *testing.T, initial string) (*Textbox, func(chunks ...string)) {
	t.Helper()
	r, pw := startReader(t, testEscDelay)
	rec := &recorder{}
	w, err := newWindow(&screen{out: rec, reader: r}, 3, 20, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	tb, err := NewTextbox(w, initial)
	if err != nil {
		t.Fatal(err)
	}
	return tb, func(chunks ...string) {
		go typeChunks(pw, 2*testEscDelay, chunks...)
	}
}

func TestTextboxEditAccept(t *testing.T) {
	tb, typeKeys := newEditTextbox(t, "")
	typeKeys("ac", "\x1b[D", "b", "\r")
	text, ok, err := tb.Edit()
	if err != nil {
		t.Fatal(err)
	}
	if !ok || text != "abc" {
		t.Errorf("expected abc to be accepted, got %q (%v)", text, ok)
	}
}

func TestTextboxEditEscapeCancels(t *testing.T) {
	tb, typeKeys := newEditTextbox(t, "initial")
	typeKeys("xyz", "\x1b")
	start := time.Now()
	text, ok, err := tb.Edit()
	if err != nil {
		t.Fatal(err)
	}
	if ok || text != "initial" {
		t.Errorf("expected the edit to be cancelled, got %q (%v)", text, ok)
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("cancelling took too long")
	}
}

func TestTextboxEditUnknownSequence(t *testing.T) {
	tb, typeKeys := newEditTextbox(t, "")
	typeKeys("a", "\x1b[1;9A", "b", "\r")
	text, ok, err := tb.Edit()
	if err != nil {
		t.Fatal(err)
	}
	if !ok || text != "ab" {
		t.Errorf("expected the unknown sequence to be dropped, got %q (%v)", text, ok)
	}
}

func TestTextboxEditInterrupt(t *testing.T) {
	tb, _ := newEditTextbox(t, "keep")
	tb.win.scr.reader.push(KeyInterrupt)
	text, ok, err := tb.Edit()
	if err != nil {
		t.Fatal(err)
	}
	if ok || text != "keep" {
		t.Errorf("expected the interrupt to cancel, got %q (%v)", text, ok)
	}
}
