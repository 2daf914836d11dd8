package vtcurses

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Textbox is a single line input field, drawn inside the border of a
// window that is exactly three rows tall
type Textbox struct {
	win     *Window
	initial string
	chars   []rune
	pos     int
	offset  int
	partial []byte // bytes of an incomplete UTF-8 sequence
}

// NewTextbox returns a text box that edits initial inside win
func NewTextbox(win *Window, initial string) (*Textbox, error) {
	height, width := win.Getmaxyx()
	if height < 3 {
		return nil, fmt.Errorf("%w: the window is %d rows tall, which is too short to display one line of text inside a border", ErrGeometry, height)
	}
	if height > 3 {
		return nil, fmt.Errorf("%w: the window is %d rows tall", ErrMultiline, height)
	}
	if width < 3 {
		return nil, fmt.Errorf("%w: the window is %d columns wide, which leaves no room for text inside a border", ErrGeometry, width)
	}
	chars := []rune(initial)
	return &Textbox{
		win:     win,
		initial: initial,
		chars:   chars,
		pos:     len(chars),
	}, nil
}

// Text returns the current contents
func (t *Textbox) Text() string {
	return string(t.chars)
}

// Cursor returns the position of the cursor, in characters
func (t *Textbox) Cursor() int {
	return t.pos
}

// inner returns the number of columns available for text
func (t *Textbox) inner() int {
	return t.win.width - 2
}

// scroll keeps the cursor in view
func (t *Textbox) scroll() {
	if t.pos < t.offset {
		t.offset = t.pos
	}
	if t.pos >= t.offset+t.inner() {
		t.offset = t.pos - t.inner() + 1
	}
}

// display draws the visible part of the text, with the cursor in standout
func (t *Textbox) display() error {
	t.scroll()
	for i := 0; i < t.inner(); i++ {
		idx := t.offset + i
		ch := ' '
		if idx < len(t.chars) {
			ch = t.chars[idx]
		}
		attr := AttrNormal
		if idx == t.pos {
			attr = AttrStandout
		}
		if err := t.win.Addch(1, i+1, ch, attr); err != nil {
			return err
		}
	}
	return t.win.Refresh()
}

func (t *Textbox) insert(r rune) {
	t.chars = append(t.chars, 0)
	copy(t.chars[t.pos+1:], t.chars[t.pos:])
	t.chars[t.pos] = r
	t.pos++
}

// remove deletes the character at i
func (t *Textbox) remove(i int) {
	t.chars = append(t.chars[:i], t.chars[i+1:]...)
}

func (t *Textbox) backspace() {
	if t.pos > 0 {
		t.pos--
		t.remove(t.pos)
	}
}

func (t *Textbox) deleteForward() {
	if t.pos < len(t.chars) {
		t.remove(t.pos)
	}
}

// wordLeft moves to the previous space, or to the start of the text
func (t *Textbox) wordLeft() {
	for t.pos > 0 {
		t.pos--
		if t.chars[t.pos] == ' ' {
			break
		}
	}
}

// wordRight moves to the next space, or to the end of the text
func (t *Textbox) wordRight() {
	for t.pos < len(t.chars) {
		t.pos++
		if t.pos < len(t.chars) && t.chars[t.pos] == ' ' {
			break
		}
	}
}

// deleteWordLeft deletes backwards up to and including the previous space
func (t *Textbox) deleteWordLeft() {
	for t.pos > 0 {
		t.pos--
		r := t.chars[t.pos]
		t.remove(t.pos)
		if r == ' ' {
			break
		}
	}
}

// deleteWordRight deletes forwards up to and including the next space
func (t *Textbox) deleteWordRight() {
	for t.pos < len(t.chars) {
		r := t.chars[t.pos]
		t.remove(t.pos)
		if r == ' ' {
			break
		}
	}
}

// feed collects the bytes of a multi-byte character and inserts it once complete
func (t *Textbox) feed(b byte) {
	t.partial = append(t.partial, b)
	if !utf8.FullRune(t.partial) {
		return
	}
	r, _ := utf8.DecodeRune(t.partial)
	t.partial = t.partial[:0]
	if r != utf8.RuneError {
		t.insert(r)
	}
}

// escape is called after a lone ESC. If nothing follows, editing is cancelled.
// Otherwise the keys that follow are an unsupported sequence, and are dropped.
func (t *Textbox) escape() (bool, error) {
	t.win.Nodelay(true)
	defer t.win.Nodelay(false)
	cancel := true
	for {
		_, err := t.win.GetKey()
		if errors.Is(err, ErrNoInput) {
			return cancel, nil
		}
		if err != nil {
			return false, err
		}
		cancel = false
	}
}

// handle applies one key. It returns true when editing is finished.
func (t *Textbox) handle(k KeyCode) bool {
	if k != KeyEscape && (k < 0x80 || k > KeyLastByte) {
		t.partial = t.partial[:0]
	}
	switch k {
	case KeyLeft:
		if t.pos > 0 {
			t.pos--
		}
	case KeyRight:
		if t.pos < len(t.chars) {
			t.pos++
		}
	case KeyHome, KeyCtrlA:
		t.pos = 0
	case KeyEnd, KeyCtrlE:
		t.pos = len(t.chars)
	case KeyCtrlLeft:
		t.wordLeft()
	case KeyCtrlRight:
		t.wordRight()
	case KeyBackspace, KeyDEL, KeyCtrlH:
		t.backspace()
	case KeyDelete:
		t.deleteForward()
	case KeyCtrlBackspace, KeyCtrlW:
		t.deleteWordLeft()
	case KeyCtrlDelete:
		t.deleteWordRight()
	case KeyCtrlK:
		t.chars = t.chars[:t.pos]
	case KeyEnter, KeyReturn:
		return true
	default:
		switch {
		case k >= KeySpace && k < KeyDEL:
			t.insert(rune(k))
		case k >= 0x80 && k <= KeyLastByte:
			t.feed(byte(k))
		}
	}
	return false
}

// Edit lets the user edit the text until Enter is pressed, which returns
// the text and true. Escape or an interrupt cancels the edit and returns the
// initial text and false.
func (t *Textbox) Edit() (string, bool, error) {
	t.win.Keypad(true)
	t.win.Nodelay(false)
	if err := t.win.Box(); err != nil {
		return t.initial, false, err
	}
	for {
		if err := t.display(); err != nil {
			return t.initial, false, err
		}
		k, err := t.win.GetKey()
		if err != nil {
			return t.initial, false, err
		}
		switch k {
		case KeyInterrupt:
			return t.initial, false, nil
		case KeyEscape:
			cancel, err := t.escape()
			if err != nil {
				return t.initial, false, err
			}
			if cancel {
				return t.initial, false, nil
			}
			continue
		}
		if t.handle(k) {
			return t.Text(), true, nil
		}
	}
}
