package vtcurses

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Control key state flags of a console key event
const (
	rightAltPressed  = 0x0001
	leftAltPressed   = 0x0002
	rightCtrlPressed = 0x0004
	leftCtrlPressed  = 0x0008
	shiftPressed     = 0x0010

	altPressed  = leftAltPressed | rightAltPressed
	ctrlPressed = leftCtrlPressed | rightCtrlPressed
)

// Virtual key codes that are encoded as escape sequences
const (
	vkBack    = 0x08
	vkTab     = 0x09
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkPrior   = 0x21
	vkNext    = 0x22
	vkEnd     = 0x23
	vkHome    = 0x24
	vkLeft    = 0x25
	vkUp      = 0x26
	vkRight   = 0x27
	vkDown    = 0x28
	vkInsert  = 0x2D
	vkDelete  = 0x2E
)

// arrowFinals is indexed by the virtual key code minus vkLeft
var arrowFinals = [...]byte{'D', 'A', 'C', 'B'}

var specialSequences = map[uint16]string{
	vkInsert: "\x1b[2~",
	vkDelete: "\x1b[3~",
	vkPrior:  "\x1b[5~",
	vkNext:   "\x1b[6~",
	vkEnd:    "\x1b[F",
	vkHome:   "\x1b[H",
}

// ConsoleKeyEvent is a key event as reported by the Windows console
type ConsoleKeyEvent struct {
	KeyDown         bool
	RepeatCount     uint16
	VirtualKeyCode  uint16
	Char            rune
	ControlKeyState uint32
}

// Modifiers returns the pressed modifiers as a combination of ModCtrl, ModAlt and ModShift
func (e ConsoleKeyEvent) Modifiers() int {
	mods := ModNone
	if e.ControlKeyState&ctrlPressed != 0 {
		mods |= ModCtrl
	}
	if e.ControlKeyState&altPressed != 0 {
		mods |= ModAlt
	}
	if e.ControlKeyState&shiftPressed != 0 {
		mods |= ModShift
	}
	return mods
}

// ModifierOnly reports whether the event is just Shift, Ctrl or Alt being pressed
func (e ConsoleKeyEvent) ModifierOnly() bool {
	switch e.VirtualKeyCode {
	case vkShift, vkControl, vkMenu:
		return e.Char == 0
	}
	return false
}

// modifierParameter returns the CSI modifier parameter, ie. "5" for Ctrl
func modifierParameter(mods int) string {
	switch {
	case mods&ModCtrl != 0:
		return "5"
	case mods&ModAlt != 0:
		return "3"
	case mods&ModShift != 0:
		return "2"
	}
	return ""
}

// encodeOnce returns the bytes a POSIX terminal would send for one press of the key
func (e ConsoleKeyEvent) encodeOnce() ([]byte, error) {
	mods := e.Modifiers()
	ctrl := mods&ModCtrl != 0
	alt := mods&ModAlt != 0
	shift := mods&ModShift != 0
	vk := e.VirtualKeyCode

	// AltGr is reported as Ctrl and Alt together, with the resulting character
	if ctrl && alt && e.Char >= ' ' && unicode.IsPrint(e.Char) {
		return []byte(string(e.Char)), nil
	}
	if ctrl {
		if vk >= 'A' && vk <= 'Z' {
			return []byte{byte(vk - 'A' + 1)}, nil
		}
		if e.Char < utf8.RuneSelf && unicode.IsLetter(e.Char) {
			return []byte{byte(unicode.ToUpper(e.Char) - 'A' + 1)}, nil
		}
	}
	if alt && e.Char != 0 {
		return append([]byte{0x1b}, string(e.Char)...), nil
	}
	if vk == vkTab && shift {
		return []byte("\x1b[Z"), nil
	}
	if vk == vkBack && ctrl {
		return []byte{0x1b, 0x7f}, nil
	}
	if vk >= vkLeft && vk <= vkDown {
		seq := []byte("\x1b[")
		if p := modifierParameter(mods); p != "" {
			seq = append(seq, "1;"+p...)
		}
		return append(seq, arrowFinals[vk-vkLeft]), nil
	}
	if vk == vkDelete {
		if p := modifierParameter(mods); p != "" {
			return []byte("\x1b[3;" + p + "~"), nil
		}
	}
	if seq, ok := specialSequences[vk]; ok {
		return []byte(seq), nil
	}
	if e.Char != 0 {
		return []byte(string(e.Char)), nil
	}
	return nil, fmt.Errorf("%w: virtual key code %#x with character %q", ErrUnsupportedKey, vk, e.Char)
}

// Encode returns the bytes for the event, repeated as many times as the
// console reports the key was repeated.
func (e ConsoleKeyEvent) Encode() ([]byte, error) {
	seq, err := e.encodeOnce()
	if err != nil {
		return nil, err
	}
	count := int(e.RepeatCount)
	if count < 1 {
		count = 1
	}
	return bytes.Repeat(seq, count), nil
}
