//go:build !windows

package vtcurses

import (
	"os"
	"syscall"
)

// resizeSignals are the signals that report a change of terminal size
var resizeSignals = []os.Signal{syscall.SIGWINCH}
