//go:build !windows

package vtcurses

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"github.com/xyproto/env/v2"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TerminalMode is a snapshot of the termios settings of a terminal
type TerminalMode struct {
	termios unix.Termios
}

type posixBackend struct {
	in  *os.File
	out *os.File
	buf [1]byte
}

// NewFileBackend returns a backend that reads keys from in and writes to out.
// in must be a terminal for SetRawMode to succeed.
func NewFileBackend(in, out *os.File) Backend {
	return &posixBackend{in: in, out: out}
}

func newPlatformBackend() (Backend, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewFileBackend(os.Stdin, os.Stdout), nil
	}
	path := ttyPath()
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: stdin is not a terminal and %s could not be opened: %v", ErrNotTerminal, path, err)
	}
	return NewFileBackend(f, os.Stdout), nil
}

// ttyPath returns the path of the controlling terminal
func ttyPath() string {
	// Check for tmux pane TTY
	if tmuxTTY := env.Str("TMUX_PANE_TTY"); tmuxTTY != "" {
		return tmuxTTY
	}
	// Check for SSH TTY
	if sshTTY := env.Str("SSH_TTY"); sshTTY != "" {
		return sshTTY
	}
	const defaultTTY = "/dev/tty"
	if _, err := os.Stat(defaultTTY); err == nil {
		return defaultTTY
	}
	return "/dev/stdin"
}

// SetRawMode puts the terminal in cbreak mode: no canonical input and no echo
func (b *posixBackend) SetRawMode() (TerminalMode, error) {
	fd := b.in.Fd()
	var orig unix.Termios
	if err := termios.Tcgetattr(fd, &orig); err != nil {
		return TerminalMode{}, fmt.Errorf("could not read the terminal mode of %s: %w", b.in.Name(), err)
	}
	raw := orig
	termios.Cfmakecbreak(&raw)
	if err := termios.Tcsetattr(fd, termios.TCSANOW, &raw); err != nil {
		return TerminalMode{}, fmt.Errorf("could not enable cbreak mode on %s: %w", b.in.Name(), err)
	}
	return TerminalMode{termios: orig}, nil
}

// RestoreMode waits for pending output to drain, then reapplies the mode
func (b *posixBackend) RestoreMode(m TerminalMode) error {
	if err := termios.Tcsetattr(b.in.Fd(), termios.TCSADRAIN, &m.termios); err != nil {
		return fmt.Errorf("could not restore the terminal mode of %s: %w", b.in.Name(), err)
	}
	return nil
}

func (b *posixBackend) ReadByte() (byte, error) {
	for {
		n, err := b.in.Read(b.buf[:])
		if n == 1 {
			return b.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

func (b *posixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *posixBackend) Size() (int, int, error) {
	height, width := termSize(int(b.out.Fd()), int(b.in.Fd()))
	return height, width, nil
}
