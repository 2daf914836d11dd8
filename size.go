package vtcurses

import (
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// termSize returns the height and width of the terminal behind one of the
// given file descriptors. When none of them is a terminal, the COLUMNS and
// LINES environment variables are used.
func termSize(fds ...int) (int, int) {
	for _, fd := range fds {
		if !term.IsTerminal(fd) {
			continue
		}
		if width, height, err := term.GetSize(fd); err == nil && width > 0 && height > 0 {
			return height, width
		}
	}
	width := fallbackWidth
	if cols := env.Int("COLS", 0); cols > 0 {
		width = cols
	} else if cols := env.Int("COLUMNS", 0); cols > 0 {
		width = cols
	}
	height := env.Int("LINES", fallbackHeight)
	if height <= 0 {
		height = fallbackHeight
	}
	return height, width
}

// parseModeCon reads the number of lines and columns from the output of
// the "mode con" command
func parseModeCon(output string) (int, int, bool) {
	var width, height int
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "Lines:":
			height, _ = strconv.Atoi(fields[1])
		case "Columns:":
			width, _ = strconv.Atoi(fields[1])
		}
	}
	if width > 0 && height > 0 {
		return height, width, true
	}
	return 0, 0, false
}
