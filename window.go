package vtcurses

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

// Line drawing glyphs
const (
	ACSHline    = '─'
	ACSVline    = '│'
	ACSULCorner = '┌'
	ACSURCorner = '┐'
	ACSLLCorner = '└'
	ACSLRCorner = '┘'
	ACSLTee     = '├'
	ACSRTee     = '┤'
)

// screen is the output surface and input source that all windows of a session share
type screen struct {
	mu      sync.Mutex
	out     io.Writer
	backend Backend
	reader  *KeyReader
	noColor bool
}

func (s *screen) write(data string) error {
	if data == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeAll(s.out, []byte(data))
}

// Window is a rectangular area of the terminal. Characters written with
// Addch are collected and written out in one go for as long as they are
// next to each other on the same row, with the same attributes.
// A Window is not safe for concurrent use.
type Window struct {
	scr    *screen
	root   bool
	begY   int
	begX   int
	height int
	width  int
	cy, cx int

	buf     []rune
	bufY    int
	bufX    int
	bufCols int
	bufAttr Attr

	attrs  Attr
	keypad bool
	delay  time.Duration
}

func newWindow(scr *screen, nlines, ncols, begY, begX int) (*Window, error) {
	if nlines < 1 || ncols < 1 {
		return nil, fmt.Errorf("%w: %dx%d, a window needs at least one row and one column", ErrGeometry, nlines, ncols)
	}
	if begY < 0 || begX < 0 {
		return nil, fmt.Errorf("%w: origin (%d, %d) is negative", ErrGeometry, begY, begX)
	}
	return &Window{
		scr:    scr,
		begY:   begY,
		begX:   begX,
		height: nlines,
		width:  ncols,
		delay:  -1,
	}, nil
}

// inside reports whether (y, x) is a position in the window
func (w *Window) inside(y, x int) bool {
	return y >= 0 && y < w.height && x >= 0 && x < w.width
}

func (w *Window) outOfBounds(y, x int) error {
	return fmt.Errorf("%w: (%d, %d) is not inside a %dx%d window", ErrOutOfBounds, y, x, w.height, w.width)
}

// effective combines attr with the background attributes of the window
func (w *Window) effective(attr Attr) Attr {
	attr |= w.attrs
	if w.scr.noColor {
		attr = attr.WithoutColors()
	}
	return attr
}

// emission returns one positioned write: move, attributes, text and a reset
// if any attributes were selected
func (w *Window) emission(y, x int, text string, attr Attr) string {
	var sb strings.Builder
	sb.WriteString(moveTo(w.begY+y, w.begX+x))
	seq := attr.Sequence()
	sb.WriteString(seq)
	sb.WriteString(text)
	if seq != "" {
		sb.WriteString(NoColor)
	}
	return sb.String()
}

// flush writes out the collected characters, if any
func (w *Window) flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	data := w.emission(w.bufY, w.bufX, string(w.buf), w.bufAttr)
	w.buf = w.buf[:0]
	w.bufCols = 0
	return w.scr.write(data)
}

// advance places the cursor after n columns from x, staying inside the window
func (w *Window) advance(y, x, n int) {
	w.cy = y
	w.cx = min(x+n, w.width-1)
}

// Addch puts the character ch with the attributes attr at (y, x).
// The character is collected and only written when the window is refreshed,
// or when a character that does not continue the current run is added.
func (w *Window) Addch(y, x int, ch rune, attr Attr) error {
	cols := runewidth.RuneWidth(ch)
	if cols < 1 {
		cols = 1
	}
	if !w.inside(y, x) || x+cols > w.width {
		return w.outOfBounds(y, x)
	}
	attr = w.effective(attr)
	if len(w.buf) > 0 && (y != w.bufY || attr != w.bufAttr || x != w.bufX+w.bufCols) {
		if err := w.flush(); err != nil {
			return err
		}
	}
	if len(w.buf) == 0 {
		w.bufY, w.bufX, w.bufAttr = y, x, attr
	}
	w.buf = append(w.buf, ch)
	w.bufCols += cols
	w.advance(y, x, cols)
	return nil
}

// Addstr writes text with the attributes attr at (y, x), right away.
// Text that does not fit on the row is cut off, it is never wrapped.
func (w *Window) Addstr(y, x int, text string, attr Attr) error {
	if err := w.flush(); err != nil {
		return err
	}
	if !w.inside(y, x) {
		return w.outOfBounds(y, x)
	}
	text = runewidth.Truncate(text, w.width-x, "")
	if text == "" {
		return nil
	}
	w.advance(y, x, runewidth.StringWidth(text))
	return w.scr.write(w.emission(y, x, text, w.effective(attr)))
}

// Move places the cursor at (y, x)
func (w *Window) Move(y, x int) error {
	if !w.inside(y, x) {
		return w.outOfBounds(y, x)
	}
	if err := w.flush(); err != nil {
		return err
	}
	w.cy, w.cx = y, x
	return w.scr.write(moveTo(w.begY+y, w.begX+x))
}

// drawable checks that the window is large enough for line drawing
func (w *Window) drawable() error {
	if w.height < 2 || w.width < 2 {
		return fmt.Errorf("%w: %dx%d is too small for line drawing, it must be at least 2x2", ErrGeometry, w.height, w.width)
	}
	return nil
}

// Box draws a border along the edges of the window
func (w *Window) Box() error {
	if err := w.drawable(); err != nil {
		return err
	}
	inner := strings.Repeat(string(ACSHline), w.width-2)
	if err := w.Addstr(0, 0, string(ACSULCorner)+inner+string(ACSURCorner), AttrNormal); err != nil {
		return err
	}
	for y := 1; y < w.height-1; y++ {
		if err := w.Addch(y, 0, ACSVline, AttrNormal); err != nil {
			return err
		}
		if err := w.Addstr(y, w.width-1, string(ACSVline), AttrNormal); err != nil {
			return err
		}
	}
	return w.Addstr(w.height-1, 0, string(ACSLLCorner)+inner+string(ACSLRCorner), AttrNormal)
}

// Hline draws a horizontal line of n characters, starting at (y, x).
// If ch is 0, ACSHline is used.
func (w *Window) Hline(y, x int, ch rune, n int) error {
	if err := w.drawable(); err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: line length %d", ErrGeometry, n)
	}
	if ch == 0 {
		ch = ACSHline
	}
	return w.Addstr(y, x, strings.Repeat(string(ch), n), AttrNormal)
}

// Clear blanks the window and moves the cursor to the top left corner
func (w *Window) Clear() error {
	if err := w.flush(); err != nil {
		return err
	}
	var sb strings.Builder
	seq := w.effective(AttrNormal).Sequence()
	sb.WriteString(seq)
	blank := strings.Repeat(" ", w.width)
	for y := 0; y < w.height; y++ {
		sb.WriteString(moveTo(w.begY+y, w.begX))
		sb.WriteString(blank)
	}
	if seq != "" {
		sb.WriteString(NoColor)
	}
	sb.WriteString(moveTo(w.begY, w.begX))
	w.cy, w.cx = 0, 0
	return w.scr.write(sb.String())
}

// Refresh writes out any characters collected by Addch
func (w *Window) Refresh() error {
	return w.flush()
}

// Getmaxyx returns the height and width of the window
func (w *Window) Getmaxyx() (int, int) {
	return w.height, w.width
}

// Getbegyx returns the position of the top left corner of the window on the screen
func (w *Window) Getbegyx() (int, int) {
	return w.begY, w.begX
}

// Getyx returns the cursor position within the window
func (w *Window) Getyx() (int, int) {
	return w.cy, w.cx
}

// Attron adds attributes that are applied to everything written to the window
func (w *Window) Attron(attr Attr) {
	w.attrs |= attr
}

// Attroff removes attributes added by Attron or Attrset
func (w *Window) Attroff(attr Attr) {
	w.attrs &^= attr
}

// Attrset replaces the attributes that are applied to everything written to the window
func (w *Window) Attrset(attr Attr) {
	w.attrs = attr
}

// Attrs returns the attributes set with Attron and Attrset
func (w *Window) Attrs() Attr {
	return w.attrs
}

// Keypad enables or disables the translation of escape sequences into composite keys
func (w *Window) Keypad(flag bool) {
	w.keypad = flag
}

// Nodelay makes Getch return Err right away when no key is waiting.
// The setting is shared by all windows, since they share the key reader.
func (w *Window) Nodelay(flag bool) {
	if w.scr.reader != nil {
		w.scr.reader.SetBlocking(!flag)
	}
}

// Timeout sets how long Getch waits for a key. A negative duration waits
// until a key is pressed, zero does not wait at all.
func (w *Window) Timeout(d time.Duration) {
	w.delay = d
}

// CursSet hides (0) or shows (1) the cursor
func (w *Window) CursSet(visibility int) error {
	switch visibility {
	case 0:
		return w.scr.write(hideCursor)
	case 1:
		return w.scr.write(showCursor)
	}
	return fmt.Errorf("%w: cursor visibility %d", ErrUnsupported, visibility)
}

// GetKey flushes collected output and returns the next key.
// ErrNoInput is returned if no key arrived in time.
func (w *Window) GetKey() (KeyCode, error) {
	if err := w.flush(); err != nil {
		return Err, err
	}
	if w.scr.reader == nil {
		return Err, ErrInputClosed
	}
	k, err := w.scr.reader.ReadKey(w.delay, w.keypad)
	if err != nil {
		return Err, err
	}
	if k == KeyResize && w.root {
		w.resize()
	}
	return k, nil
}

// Getch is like GetKey, but returns Err instead of an error
func (w *Window) Getch() KeyCode {
	k, err := w.GetKey()
	if err != nil {
		return Err
	}
	return k
}

// resize updates the size of the root window after the terminal was resized
func (w *Window) resize() {
	if w.scr.backend == nil {
		return
	}
	height, width, err := w.scr.backend.Size()
	if err != nil || height < 1 || width < 1 {
		return
	}
	w.height, w.width = height, width
	w.cy = min(w.cy, height-1)
	w.cx = min(w.cx, width-1)
}
