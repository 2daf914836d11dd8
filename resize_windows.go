//go:build windows

package vtcurses

import "os"

// resizeSignals is empty, the Windows console does not signal size changes
var resizeSignals []os.Signal
