package vtcurses

import (
	"fmt"
	"sync"
)

// RawModeGuard holds the terminal mode that was active before raw mode was
// entered, and puts it back exactly once.
type RawModeGuard struct {
	backend Backend
	saved   TerminalMode
	once    sync.Once
	err     error
}

// EnterRawMode switches the terminal behind b to raw mode.
// An error means that the terminal mode could not be read or changed,
// and that nothing needs to be restored.
func EnterRawMode(b Backend) (*RawModeGuard, error) {
	saved, err := b.SetRawMode()
	if err != nil {
		return nil, fmt.Errorf("could not enter raw mode: %w", err)
	}
	return &RawModeGuard{backend: b, saved: saved}, nil
}

// Restore puts back the terminal mode that was active before EnterRawMode.
// Only the first call has an effect; later calls return the same result.
func (g *RawModeGuard) Restore() error {
	g.once.Do(func() {
		g.err = g.backend.RestoreMode(g.saved)
	})
	return g.err
}

// Saved returns the terminal mode that Restore puts back
func (g *RawModeGuard) Saved() TerminalMode {
	return g.saved
}
