//go:build windows

package vtcurses

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

const keyEvent = 0x0001

var (
	modkernel32           = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW = modkernel32.NewProc("ReadConsoleInputW")
)

// TerminalMode holds the console modes of the input and output handles
type TerminalMode struct {
	in  uint32
	out uint32
}

// keyEventRecord is KEY_EVENT_RECORD
type keyEventRecord struct {
	KeyDown         int32
	RepeatCount     uint16
	VirtualKeyCode  uint16
	VirtualScanCode uint16
	Char            uint16
	ControlKeyState uint32
}

// inputRecord is INPUT_RECORD, with room for the largest event in the union
type inputRecord struct {
	EventType uint16
	_         [2]byte
	Event     [16]byte
}

type consoleBackend struct {
	in      windows.Handle
	out     windows.Handle
	pending []byte
	surr    uint16 // high surrogate waiting for its pair
}

// NewConsoleBackend returns a backend for the console attached to the process
func NewConsoleBackend() (Backend, error) {
	in, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return nil, fmt.Errorf("could not get the console input handle: %w", err)
	}
	out, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return nil, fmt.Errorf("could not get the console output handle: %w", err)
	}
	return &consoleBackend{in: in, out: out}, nil
}

func newPlatformBackend() (Backend, error) {
	return NewConsoleBackend()
}

// SetRawMode disables line input and echo, and enables processing of
// virtual terminal sequences on the output
func (b *consoleBackend) SetRawMode() (TerminalMode, error) {
	var m TerminalMode
	if err := windows.GetConsoleMode(b.in, &m.in); err != nil {
		return TerminalMode{}, fmt.Errorf("%w: could not read the console input mode: %v", ErrNotTerminal, err)
	}
	if err := windows.GetConsoleMode(b.out, &m.out); err != nil {
		return TerminalMode{}, fmt.Errorf("%w: could not read the console output mode: %v", ErrNotTerminal, err)
	}
	if err := windows.SetConsoleMode(b.in, m.in&^(windows.ENABLE_LINE_INPUT|windows.ENABLE_ECHO_INPUT)); err != nil {
		return TerminalMode{}, fmt.Errorf("could not set the console input mode: %w", err)
	}
	if err := windows.SetConsoleMode(b.out, m.out|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		windows.SetConsoleMode(b.in, m.in)
		return TerminalMode{}, fmt.Errorf("could not enable virtual terminal processing: %w", err)
	}
	return m, nil
}

func (b *consoleBackend) RestoreMode(m TerminalMode) error {
	return errors.Join(
		windows.SetConsoleMode(b.in, m.in),
		windows.SetConsoleMode(b.out, m.out),
	)
}

// readEvent blocks until the next key down event that is not a lone modifier
func (b *consoleBackend) readEvent() (ConsoleKeyEvent, error) {
	for {
		var rec inputRecord
		var n uint32
		r1, _, err := procReadConsoleInputW.Call(
			uintptr(b.in),
			uintptr(unsafe.Pointer(&rec)),
			1,
			uintptr(unsafe.Pointer(&n)),
		)
		if r1 == 0 {
			return ConsoleKeyEvent{}, fmt.Errorf("ReadConsoleInputW failed: %w", err)
		}
		if n == 0 || rec.EventType != keyEvent {
			continue
		}
		ke := *(*keyEventRecord)(unsafe.Pointer(&rec.Event[0]))
		if ke.KeyDown == 0 {
			continue
		}
		ch := rune(ke.Char)
		switch {
		case utf16.IsSurrogate(ch) && ch < 0xdc00:
			b.surr = ke.Char
			continue
		case utf16.IsSurrogate(ch):
			ch = utf16.DecodeRune(rune(b.surr), ch)
			b.surr = 0
		}
		ev := ConsoleKeyEvent{
			KeyDown:         true,
			RepeatCount:     ke.RepeatCount,
			VirtualKeyCode:  ke.VirtualKeyCode,
			Char:            ch,
			ControlKeyState: ke.ControlKeyState,
		}
		if ev.ModifierOnly() {
			continue
		}
		return ev, nil
	}
}

// ReadByte returns the next byte of the encoded key stream. Key events that
// can not be encoded are reported as ErrUnsupportedKey.
func (b *consoleBackend) ReadByte() (byte, error) {
	if len(b.pending) == 0 {
		ev, err := b.readEvent()
		if err != nil {
			return 0, err
		}
		seq, err := ev.Encode()
		if err != nil {
			return 0, err
		}
		b.pending = seq
	}
	c := b.pending[0]
	b.pending = b.pending[1:]
	return c, nil
}

func (b *consoleBackend) Write(p []byte) (int, error) {
	var n uint32
	if err := windows.WriteFile(b.out, p, &n, nil); err != nil {
		return int(n), err
	}
	return int(n), nil
}

func (b *consoleBackend) Size() (int, int, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(b.out, &info); err != nil {
		if height, width, ok := queryConsoleSize(); ok {
			return height, width, nil
		}
		height, width := termSize(int(os.Stdout.Fd()))
		return height, width, nil
	}
	// Window.Right and Window.Bottom are inclusive
	width := int(info.Window.Right-info.Window.Left) + 1
	height := int(info.Window.Bottom-info.Window.Top) + 1
	return height, width, nil
}
