package vtcurses

import (
	"fmt"
	"sync"
)

// MaxColorPairs is the number of color pairs that can be defined, including pair 0
const MaxColorPairs = 256

// ColorPairTable maps small integers to foreground and background color
// combinations. Pair 0 is the default foreground on the default background,
// and can not be changed.
type ColorPairTable struct {
	mu    sync.RWMutex
	pairs map[int]Attr
}

// NewColorPairTable returns a table where only pair 0 is defined
func NewColorPairTable() *ColorPairTable {
	return &ColorPairTable{
		pairs: map[int]Attr{0: FgColor(ColorDefault) | BgColor(ColorDefault)},
	}
}

// InitPair defines or redefines color pair n
func (t *ColorPairTable) InitPair(n int, fg, bg Color) error {
	switch {
	case n == 0:
		return ErrReservedPair
	case n < 0 || n >= MaxColorPairs:
		return fmt.Errorf("%w: %d is not in the range 1..%d", ErrInvalidPair, n, MaxColorPairs-1)
	case !fg.Valid():
		return fmt.Errorf("%w: foreground %d", ErrInvalidColor, fg)
	case !bg.Valid():
		return fmt.Errorf("%w: background %d", ErrInvalidColor, bg)
	}
	t.mu.Lock()
	t.pairs[n] = FgColor(fg) | BgColor(bg)
	t.mu.Unlock()
	return nil
}

// ColorPair returns the attribute for color pair n
func (t *ColorPairTable) ColorPair(n int) (Attr, error) {
	t.mu.RLock()
	a, ok := t.pairs[n]
	t.mu.RUnlock()
	if !ok {
		return AttrNormal, fmt.Errorf("%w: color pair %d is not defined, call InitPair(%d, fg, bg) first", ErrInvalidPair, n, n)
	}
	return a, nil
}

// Len returns the number of defined pairs, including pair 0
func (t *ColorPairTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.pairs)
}
