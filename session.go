package vtcurses

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/mgutz/ansi"
	"github.com/xyproto/env/v2"
)

// multiplexedEscDelay is the default escape delay inside tmux, screen and
// zellij, which pass escape sequences on in more than one write
const multiplexedEscDelay = 25 * time.Millisecond

// Config selects the backend and the behavior of a Session.
// It is read once, by NewSession.
type Config struct {
	// Backend is the terminal to use. If nil, the backend for the current platform is used.
	Backend Backend

	// EscDelay is how long to wait for the rest of an escape sequence
	EscDelay time.Duration

	// AltScreen switches to the alternate screen buffer while the session runs
	AltScreen bool

	// Title is set as the terminal title while the session runs, if not empty
	Title string

	// NoColor drops all colors, but keeps other attributes like bold and underline
	NoColor bool

	// HandleSignals delivers interrupts as KeyInterrupt and terminal size changes as KeyResize
	HandleSignals bool

	// Logger receives errors that happen while the terminal is restored
	Logger *log.Logger
}

// DefaultConfig returns a configuration based on the environment.
// ESCDELAY is read in milliseconds, and NO_COLOR disables colors.
func DefaultConfig() Config {
	delay := DefaultEscDelay
	if Multiplexed() {
		delay = multiplexedEscDelay
	}
	if ms := env.Int("ESCDELAY", 0); ms > 0 {
		delay = time.Duration(ms) * time.Millisecond
	}
	return Config{
		EscDelay:      delay,
		AltScreen:     true,
		Title:         filepath.Base(os.Args[0]),
		NoColor:       env.Has("NO_COLOR"),
		HandleSignals: true,
		Logger:        log.New(os.Stderr, "", 0),
	}
}

// Session owns the terminal while an application runs: raw mode, the
// alternate screen, the key reader and the color pairs.
type Session struct {
	cfg     Config
	backend Backend
	pairs   *ColorPairTable
	scr     *screen
	stdscr  *Window
}

// EntryPoint is the application code that runs inside a session
type EntryPoint func(s *Session, stdscr *Window) error

// NewSession prepares a session. The terminal is not touched until Run is called.
func NewSession(cfg Config) (*Session, error) {
	b := cfg.Backend
	if b == nil {
		var err error
		if b, err = NewBackend(); err != nil {
			return nil, err
		}
	}
	if cfg.EscDelay <= 0 {
		cfg.EscDelay = DefaultEscDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "", 0)
	}
	return &Session{
		cfg:     cfg,
		backend: b,
		pairs:   NewColorPairTable(),
		scr:     &screen{out: b, backend: b, noColor: cfg.NoColor},
	}, nil
}

// Wrapper runs fn in a session configured from the environment
func Wrapper(fn EntryPoint) error {
	s, err := NewSession(DefaultConfig())
	if err != nil {
		return err
	}
	return s.Run(fn)
}

// Run enters raw mode, prepares the screen, starts the key reader and calls
// fn with the root window. When fn returns or panics, the terminal is
// always restored. An error from restoring the terminal is logged, and only
// returned if fn itself succeeded. A panic is raised again after the
// terminal has been restored.
func (s *Session) Run(fn EntryPoint) (err error) {
	guard, err := EnterRawMode(s.backend)
	if err != nil {
		return err
	}
	reader, err := newKeyReader(s.backend, s.cfg.EscDelay)
	if err != nil {
		if restoreErr := guard.Restore(); restoreErr != nil {
			s.report(restoreErr)
		}
		return err
	}
	s.scr.reader = reader
	stopSignals := func() {}

	defer func() {
		r := recover()
		if teardownErr := s.teardown(guard, reader, stopSignals); teardownErr != nil {
			s.report(teardownErr)
			if err == nil && r == nil {
				err = teardownErr
			}
		}
		if r != nil {
			panic(r)
		}
	}()

	if err := s.scr.write(enterSequence(s.cfg.AltScreen, s.cfg.Title)); err != nil {
		return fmt.Errorf("could not prepare the screen: %w", err)
	}
	stopSignals = s.forwardSignals(reader)

	height, width, err := s.backend.Size()
	if err != nil {
		return fmt.Errorf("could not get the terminal size: %w", err)
	}
	stdscr, err := newWindow(s.scr, height, width, 0, 0)
	if err != nil {
		return err
	}
	stdscr.root = true
	stdscr.keypad = true
	s.stdscr = stdscr

	return fn(s, stdscr)
}

// teardown undoes everything Run set up, in reverse order
func (s *Session) teardown(guard *RawModeGuard, reader *KeyReader, stopSignals func()) error {
	var errs []error
	if s.stdscr != nil {
		errs = append(errs, s.stdscr.flush())
	}
	errs = append(errs, s.scr.write(leaveSequence(s.cfg.AltScreen, s.cfg.Title)))
	stopSignals()
	reader.release()
	s.scr.reader = nil
	errs = append(errs, guard.Restore())
	return errors.Join(errs...)
}

// report logs an error that happened while the terminal was being restored
func (s *Session) report(err error) {
	msg := "could not restore the terminal: " + err.Error()
	if !s.cfg.NoColor {
		msg = ansi.Color(msg, "red")
	}
	s.cfg.Logger.Println(msg)
}

// forwardSignals delivers the interrupt signal as KeyInterrupt and resize
// signals as KeyResize. The returned function stops the forwarding.
func (s *Session) forwardSignals(reader *KeyReader) func() {
	if !s.cfg.HandleSignals {
		return func() {}
	}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, append([]os.Signal{os.Interrupt}, resizeSignals...)...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigChan:
				if sig == os.Interrupt {
					reader.push(KeyInterrupt)
				} else {
					reader.push(KeyResize)
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}

// NewWindow creates a window with nlines rows and ncols columns, with the
// top left corner at (begY, begX) on the screen. Keypad translation is off
// for new windows.
func (s *Session) NewWindow(nlines, ncols, begY, begX int) (*Window, error) {
	return newWindow(s.scr, nlines, ncols, begY, begX)
}

// InitPair defines color pair n as the foreground fg on the background bg
func (s *Session) InitPair(n int, fg, bg Color) error {
	return s.pairs.InitPair(n, fg, bg)
}

// ColorPair returns the attribute for color pair n
func (s *Session) ColorPair(n int) (Attr, error) {
	return s.pairs.ColorPair(n)
}

// Colors returns the number of supported colors, or 0 if colors are disabled
func (s *Session) Colors() int {
	if s.cfg.NoColor {
		return 0
	}
	return Colors
}

// Reader returns the key reader, or nil if the session is not running
func (s *Session) Reader() *KeyReader {
	return s.scr.reader
}

// Stdscr returns the root window, or nil if the session has not been started
func (s *Session) Stdscr() *Window {
	return s.stdscr
}
