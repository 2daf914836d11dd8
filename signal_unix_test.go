//go:build linux || darwin

package vtcurses

import (
	"io"
	"log"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestSignalsBecomeKeys(t *testing.T) {
	f, _ := newFakeBackend(t)
	s, err := NewSession(Config{
		Backend:       f,
		EscDelay:      testEscDelay,
		HandleSignals: true,
		Logger:        log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatal(err)
	}
	err = s.Run(func(s *Session, stdscr *Window) error {
		stdscr.Timeout(time.Second)
		for _, tt := range []struct {
			sig unix.Signal
			key KeyCode
		}{
			{unix.SIGINT, KeyInterrupt},
			{unix.SIGWINCH, KeyResize},
		} {
			if err := unix.Kill(unix.Getpid(), tt.sig); err != nil {
				t.Fatal(err)
			}
			if k, err := stdscr.GetKey(); err != nil || k != tt.key {
				t.Errorf("%v: expected %v, got %v (%v)", tt.sig, tt.key, k, err)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
