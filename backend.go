package vtcurses

// Backend is the OS facing part of a session. There is one implementation
// for POSIX terminals (termios) and one for the Windows console.
type Backend interface {
	// SetRawMode switches off line buffering and echo, and returns the mode
	// that was active before, so that it can be restored.
	SetRawMode() (TerminalMode, error)

	// RestoreMode reapplies a mode returned by SetRawMode
	RestoreMode(TerminalMode) error

	// ReadByte blocks until one byte of input is available
	ReadByte() (byte, error)

	// Write sends output to the terminal
	Write(p []byte) (int, error)

	// Size returns the number of rows and columns of the terminal
	Size() (height, width int, err error)
}

// NewBackend returns the backend for the current platform
func NewBackend() (Backend, error) {
	return newPlatformBackend()
}
