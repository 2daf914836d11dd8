package vtcurses

import "errors"

var (
	// ErrReaderExists is returned when a second key reader is created while one is active
	ErrReaderExists = errors.New("only one key reader can be active at a time")

	// ErrNoInput means that no key arrived before the timeout. It is an empty result, not a failure.
	ErrNoInput = errors.New("no input available")

	// ErrInputClosed means that the input stream has ended
	ErrInputClosed = errors.New("input closed")

	ErrGeometry     = errors.New("invalid window geometry")
	ErrOutOfBounds  = errors.New("position outside of window")
	ErrInvalidPair  = errors.New("invalid color pair number")
	ErrReservedPair = errors.New("color pair 0 is reserved and cannot be changed")
	ErrInvalidColor = errors.New("invalid color number")
	ErrInvalidSGR   = errors.New("invalid SGR parameter")

	// ErrMultiline is returned for input windows taller than a single line of text
	ErrMultiline = errors.New("multi-line text editing is not supported")

	// ErrUnsupportedKey is reported for console key events that have no byte encoding
	ErrUnsupportedKey = errors.New("unsupported key")

	ErrUnsupported = errors.New("not supported")

	// ErrNotTerminal is returned when no terminal can be found for input
	ErrNotTerminal = errors.New("not a terminal")
)
